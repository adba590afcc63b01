package pairing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// pool builds n participants named prefix1..prefixN with IDs 1..n.
func pool(prefix string, n int) []ir.Participant {
	out := make([]ir.Participant, n)
	for i := range out {
		name := fmt.Sprintf("%s%d", prefix, i+1)
		out[i] = ir.Participant{ID: i + 1, FullName: name, Email: name + "@edu.gen.istc.ci"}
	}
	return out
}

func mentorNames(p ir.Pairing) []string {
	names := make([]string, len(p.Mentors))
	for i, m := range p.Mentors {
		names[i] = m.FullName
	}
	return names
}

func TestAssign_MoreMentorsThanMentees(t *testing.T) {
	// Three mentors, one mentee: the mentee gets two mentors and the
	// third mentor stays unassigned.
	mentors := pool("M", 3)
	mentees := pool("E", 1)

	pairings, err := Assign(mentors, mentees)
	require.NoError(t, err)
	require.Len(t, pairings, 1)

	assert.Equal(t, 1, pairings[0].Index)
	assert.Equal(t, "E1", pairings[0].Mentee.FullName)
	assert.Equal(t, []string{"M1", "M2"}, mentorNames(pairings[0]))

	s := Summarize(mentors, mentees, pairings)
	assert.Equal(t, []int{3}, s.UnassignedMentors)
}

func TestAssign_MoreMenteesThanMentors(t *testing.T) {
	mentors := pool("M", 2)
	mentees := pool("E", 3)

	pairings, err := Assign(mentors, mentees)
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	got := make([]string, len(pairings))
	for i, p := range pairings {
		require.Len(t, p.Mentors, 1)
		got[i] = p.Primary().FullName + "->" + p.Mentee.FullName
		assert.Equal(t, i+1, p.Index)
	}
	assert.Equal(t, []string{"M1->E1", "M1->E2", "M2->E3"}, got)
}

func TestAssign_EqualPools(t *testing.T) {
	mentors := pool("M", 3)
	mentees := pool("E", 3)

	pairings, err := Assign(mentors, mentees)
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	for i, p := range pairings {
		assert.Equal(t, []string{fmt.Sprintf("M%d", i+1)}, mentorNames(p))
		assert.Equal(t, fmt.Sprintf("E%d", i+1), p.Mentee.FullName)
		_, ok := p.Secondary()
		assert.False(t, ok)
	}
}

func TestAssign_SecondariesComeFirst(t *testing.T) {
	// Five mentors, three mentees: the surplus of two is absorbed by the
	// first two mentees in traversal order.
	pairings, err := Assign(pool("M", 5), pool("E", 3))
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	assert.Equal(t, []string{"M1", "M2"}, mentorNames(pairings[0]))
	assert.Equal(t, []string{"M3", "M4"}, mentorNames(pairings[1]))
	assert.Equal(t, []string{"M5"}, mentorNames(pairings[2]))
}

func TestAssign_CeilingGroups(t *testing.T) {
	// Seven mentees over three mentors: 3, 2, 2.
	pairings, err := Assign(pool("M", 3), pool("E", 7))
	require.NoError(t, err)
	require.Len(t, pairings, 7)

	perMentor := map[string]int{}
	order := []string{}
	for _, p := range pairings {
		name := p.Primary().FullName
		if perMentor[name] == 0 {
			order = append(order, name)
		}
		perMentor[name]++
	}
	assert.Equal(t, []string{"M1", "M2", "M3"}, order, "groups are contiguous in mentor order")
	assert.Equal(t, map[string]int{"M1": 3, "M2": 2, "M3": 2}, perMentor)
}

func TestAssign_EmptyPools(t *testing.T) {
	_, err := Assign(nil, pool("E", 2))
	require.Error(t, err)
	assert.True(t, IsPreconditionError(err))
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeEmptyMentors, pe.Code)

	_, err = Assign(pool("M", 2), []ir.Participant{})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeEmptyMentees, pe.Code)
	assert.Contains(t, err.Error(), "EMPTY_MENTEE_POOL")

	_, err = Assign(nil, nil)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeEmptyMentors, pe.Code)
}

func TestAssign_DoesNotMutateInput(t *testing.T) {
	mentors := pool("M", 4)
	mentees := pool("E", 2)
	mentorsBefore := append([]ir.Participant(nil), mentors...)
	menteesBefore := append([]ir.Participant(nil), mentees...)

	_, err := Assign(mentors, mentees)
	require.NoError(t, err)

	assert.Equal(t, mentorsBefore, mentors)
	assert.Equal(t, menteesBefore, mentees)
}

// TestAssign_Properties checks the structural guarantees for every pool
// size combination up to 12x12.
func TestAssign_Properties(t *testing.T) {
	for nMentors := 1; nMentors <= 12; nMentors++ {
		for nMentees := 1; nMentees <= 12; nMentees++ {
			mentors := pool("M", nMentors)
			mentees := pool("E", nMentees)

			pairings, err := Assign(mentors, mentees)
			require.NoError(t, err)

			name := fmt.Sprintf("%d mentors/%d mentees", nMentors, nMentees)
			s := Summarize(mentors, mentees, pairings)

			// Every mentee appears exactly once.
			require.Len(t, pairings, nMentees, name)
			assert.Empty(t, s.UnassignedMentees, name)
			seen := map[int]int{}
			for i, p := range pairings {
				assert.Equal(t, i+1, p.Index, name)
				seen[p.Mentee.ID]++
				assert.NotEmpty(t, p.Mentors, name)
			}
			for _, m := range mentees {
				assert.Equal(t, 1, seen[m.ID], name)
			}

			if nMentors >= nMentees {
				assert.Equal(t, ir.RegimeByMentee, s.Regime, name)
				assert.LessOrEqual(t, s.MaxMentorsPerMentee, 2, name)
				assert.Equal(t, 1, s.MaxLoad, "%s: a mentor is used at most once", name)

				extra := nMentors - nMentees
				if extra > nMentees {
					extra = nMentees
				}
				assert.Equal(t, extra, s.DoubleMentored, name)
				assert.Equal(t, nMentees+extra, s.Edges, name)
				assert.Len(t, s.UnassignedMentors, nMentors-nMentees-extra, name)
			} else {
				assert.Equal(t, ir.RegimeByMentor, s.Regime, name)
				assert.Equal(t, 1, s.MaxMentorsPerMentee, name)
				assert.Empty(t, s.UnassignedMentors, name)
				assert.LessOrEqual(t, s.MaxLoad-s.MinLoad, 1, name)
				assert.GreaterOrEqual(t, s.MinLoad, 1, name)
				ceil := (nMentees + nMentors - 1) / nMentors
				assert.LessOrEqual(t, s.MaxLoad, ceil, name)
				assert.Equal(t, nMentees, s.Edges, name)
			}
		}
	}
}

func TestRegimeFor(t *testing.T) {
	assert.Equal(t, ir.RegimeByMentee, RegimeFor(3, 3))
	assert.Equal(t, ir.RegimeByMentee, RegimeFor(4, 1))
	assert.Equal(t, ir.RegimeByMentor, RegimeFor(2, 3))
}
