package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/pairing"
)

func participant(id int, name string) ir.Participant {
	return ir.Participant{ID: id, FullName: name, Email: name + "@example.org"}
}

// resultFor builds a Result around a hand-made session.
func resultFor(regime ir.Regime, mentors, mentees []ir.Participant, pairings []ir.Pairing) *Result {
	sess := &ir.Session{
		RunContext: ir.RunContext{SessionID: "s", Program: "EAIN"},
		Regime:     regime,
		Mentors:    mentors,
		Mentees:    mentees,
		Pairings:   pairings,
	}
	r := NewResult()
	r.Session = sess
	r.Summary = pairing.Summarize(mentors, mentees, pairings)
	return r
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertPairingCount,
		Expected: "3",
		Actual:   "2",
		Pairings: []ir.Pairing{{
			Index:   1,
			Mentee:  participant(1, "Kone Marie"),
			Mentors: []ir.Participant{participant(1, "Kouassi Jean"), participant(2, "Traore Awa")},
		}},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: pairing_count")
	assert.Contains(t, msg, "Expected: 3")
	assert.Contains(t, msg, "Actual: 2")
	assert.Contains(t, msg, "[1] Kone Marie <- Kouassi Jean, Traore Awa")
}

func TestEvaluateAssertions_Counts(t *testing.T) {
	m1, m2, m3 := participant(1, "m1"), participant(2, "m2"), participant(3, "m3")
	e1, e2 := participant(1, "e1"), participant(2, "e2")
	r := resultFor(ir.RegimeByMentee, []ir.Participant{m1, m2, m3}, []ir.Participant{e1, e2}, []ir.Pairing{
		{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1, m2}, Program: "EAIN"},
		{Index: 2, Mentee: e2, Mentors: []ir.Participant{m3}, Program: "EAIN"},
	})
	r.Rejected = 2

	errs := EvaluateAssertions(r, []Assertion{
		{Type: AssertRegime, Regime: "A"},
		{Type: AssertPairingCount, Count: 2},
		{Type: AssertDoubleMentored, Count: 1},
		{Type: AssertUnassignedMentors, Count: 0},
		{Type: AssertRejected, Count: 2},
		{Type: AssertLoadRange, Min: 1, Max: 1},
		{Type: AssertPaired, Mentee: "e1", Mentors: []string{"m1", "m2"}},
		{Type: AssertEmail, Name: "m3", Email: "m3@example.org"},
		{Type: AssertWellFormed},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	m1, e1 := participant(1, "m1"), participant(1, "e1")
	r := resultFor(ir.RegimeByMentee, []ir.Participant{m1}, []ir.Participant{e1}, []ir.Pairing{
		{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EAIN"},
	})

	tests := []struct {
		name string
		a    Assertion
		want string
	}{
		{"regime", Assertion{Type: AssertRegime, Regime: "B"}, "Actual: A"},
		{"load range", Assertion{Type: AssertLoadRange, Min: 2, Max: 3}, "loads within [1, 1]"},
		{"unknown mentee", Assertion{Type: AssertPaired, Mentee: "ghost", Mentors: []string{"m1"}}, "mentee not paired"},
		{"unknown participant", Assertion{Type: AssertEmail, Name: "ghost", Email: "g@x"}, "participant not found"},
		{"unknown type", Assertion{Type: "final_state"}, `unknown assertion type "final_state"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(r, []Assertion{tt.a})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestEvaluateAssertions_Error(t *testing.T) {
	r := NewResult()
	r.RunError = "VALIDATION: mentee pool is empty"

	assert.Empty(t, EvaluateAssertions(r, []Assertion{{Type: AssertError, Contains: "mentee pool"}}))

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertError, Contains: "mentor pool"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "mentee pool is empty")
}

func TestAssertWellFormed_DetectsBrokenSets(t *testing.T) {
	m1, m2 := participant(1, "m1"), participant(2, "m2")
	e1, e2, e3 := participant(1, "e1"), participant(2, "e2"), participant(3, "e3")

	tests := []struct {
		name     string
		regime   ir.Regime
		mentors  []ir.Participant
		mentees  []ir.Participant
		pairings []ir.Pairing
		want     string
	}{
		{
			name:    "gap in numbering",
			regime:  ir.RegimeByMentee,
			mentors: []ir.Participant{m1, m2},
			mentees: []ir.Participant{e1, e2},
			pairings: []ir.Pairing{
				{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EAIN"},
				{Index: 3, Mentee: e2, Mentors: []ir.Participant{m2}, Program: "EAIN"},
			},
			want: "pairing 2 has index 3",
		},
		{
			name:    "mentee missing",
			regime:  ir.RegimeByMentee,
			mentors: []ir.Participant{m1, m2},
			mentees: []ir.Participant{e1, e2},
			pairings: []ir.Pairing{
				{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EAIN"},
			},
			want: "mentee 2 appears in 0 pairings",
		},
		{
			name:    "mentor reused in regime A",
			regime:  ir.RegimeByMentee,
			mentors: []ir.Participant{m1, m2},
			mentees: []ir.Participant{e1, e2},
			pairings: []ir.Pairing{
				{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EAIN"},
				{Index: 2, Mentee: e2, Mentors: []ir.Participant{m1}, Program: "EAIN"},
			},
			want: "mentor 1 mentors 2 mentees in regime A",
		},
		{
			name:    "unbalanced regime B",
			regime:  ir.RegimeByMentor,
			mentors: []ir.Participant{m1, m2},
			mentees: []ir.Participant{e1, e2, e3},
			pairings: []ir.Pairing{
				{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EAIN"},
				{Index: 2, Mentee: e2, Mentors: []ir.Participant{m1}, Program: "EAIN"},
				{Index: 3, Mentee: e3, Mentors: []ir.Participant{m1}, Program: "EAIN"},
			},
			want: "mentors [2] unassigned in regime B",
		},
		{
			name:    "interleaved regime B",
			regime:  ir.RegimeByMentor,
			mentors: []ir.Participant{m1, m2},
			mentees: []ir.Participant{e1, e2, e3},
			pairings: []ir.Pairing{
				{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EAIN"},
				{Index: 2, Mentee: e2, Mentors: []ir.Participant{m2}, Program: "EAIN"},
				{Index: 3, Mentee: e3, Mentors: []ir.Participant{m1}, Program: "EAIN"},
			},
			want: "pairings of mentor 1 are not contiguous",
		},
		{
			name:    "wrong program",
			regime:  ir.RegimeByMentee,
			mentors: []ir.Participant{m1},
			mentees: []ir.Participant{e1},
			pairings: []ir.Pairing{
				{Index: 1, Mentee: e1, Mentors: []ir.Participant{m1}, Program: "EJ"},
			},
			want: `pairing 1 has program "EJ"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resultFor(tt.regime, tt.mentors, tt.mentees, tt.pairings)
			err := assertWellFormed(r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
