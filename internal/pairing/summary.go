package pairing

import "github.com/yepeleya/projet-parrainage-aeistc/internal/ir"

// Summary describes the shape of a pairing set.
type Summary struct {
	Regime              ir.Regime `json:"regime" yaml:"regime"`
	Mentors             int       `json:"mentors" yaml:"mentors"`
	Mentees             int       `json:"mentees" yaml:"mentees"`
	Pairings            int       `json:"pairings" yaml:"pairings"`
	Edges               int       `json:"edges" yaml:"edges"`
	DoubleMentored      int       `json:"double_mentored" yaml:"double_mentored"` // Pairings with a secondary mentor
	MaxMentorsPerMentee int       `json:"max_mentors_per_mentee" yaml:"max_mentors_per_mentee"`
	MinLoad             int       `json:"min_load" yaml:"min_load"`                     // Fewest mentees of an assigned mentor
	MaxLoad             int       `json:"max_load" yaml:"max_load"`                     // Most mentees of an assigned mentor
	UnassignedMentors   []int     `json:"unassigned_mentors" yaml:"unassigned_mentors"` // IDs of mentors in no pairing
	UnassignedMentees   []int     `json:"unassigned_mentees" yaml:"unassigned_mentees"`
}

// Summarize computes the Summary of pairings built from the given pools.
// Participants are matched by ID within their own pool.
func Summarize(mentors, mentees []ir.Participant, pairings []ir.Pairing) Summary {
	s := Summary{
		Regime:            RegimeFor(len(mentors), len(mentees)),
		Mentors:           len(mentors),
		Mentees:           len(mentees),
		Pairings:          len(pairings),
		UnassignedMentors: []int{},
		UnassignedMentees: []int{},
	}

	load := make(map[int]int, len(mentors))
	seenMentees := make(map[int]bool, len(mentees))
	for _, p := range pairings {
		seenMentees[p.Mentee.ID] = true
		if len(p.Mentors) > 1 {
			s.DoubleMentored++
		}
		if len(p.Mentors) > s.MaxMentorsPerMentee {
			s.MaxMentorsPerMentee = len(p.Mentors)
		}
		for _, m := range p.Mentors {
			load[m.ID]++
			s.Edges++
		}
	}

	first := true
	for _, m := range mentors {
		n, ok := load[m.ID]
		if !ok {
			s.UnassignedMentors = append(s.UnassignedMentors, m.ID)
			continue
		}
		if first || n < s.MinLoad {
			s.MinLoad = n
		}
		if first || n > s.MaxLoad {
			s.MaxLoad = n
		}
		first = false
	}

	for _, m := range mentees {
		if !seenMentees[m.ID] {
			s.UnassignedMentees = append(s.UnassignedMentees, m.ID)
		}
	}

	return s
}
