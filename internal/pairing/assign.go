package pairing

import "github.com/yepeleya/projet-parrainage-aeistc/internal/ir"

// RegimeFor selects the assignment regime for the given pool sizes.
// Equal sizes use RegimeByMentee, which degenerates to one-to-one pairs.
func RegimeFor(mentors, mentees int) ir.Regime {
	if mentors >= mentees {
		return ir.RegimeByMentee
	}
	return ir.RegimeByMentor
}

// Assign pairs mentors with mentees.
//
// Both pools must already be shuffled by the caller; Assign itself is
// deterministic. Every mentee appears in exactly one pairing, and pairings
// are numbered from 1 in output order. The Program field of the returned
// pairings is left empty for the caller to stamp.
//
// Returns *PreconditionError if either pool is empty.
func Assign(mentors, mentees []ir.Participant) ([]ir.Pairing, error) {
	if len(mentors) == 0 {
		return nil, &PreconditionError{Code: ErrCodeEmptyMentors, Mentors: len(mentors), Mentees: len(mentees)}
	}
	if len(mentees) == 0 {
		return nil, &PreconditionError{Code: ErrCodeEmptyMentees, Mentors: len(mentors), Mentees: len(mentees)}
	}

	switch RegimeFor(len(mentors), len(mentees)) {
	case ir.RegimeByMentee:
		return assignByMentee(mentors, mentees), nil
	default:
		return assignByMentor(mentors, mentees), nil
	}
}

// assignByMentee walks mentees with a running mentor cursor. A mentee
// takes a second mentor while more mentors than mentees remain.
func assignByMentee(mentors, mentees []ir.Participant) []ir.Pairing {
	pairings := make([]ir.Pairing, 0, len(mentees))
	cursor := 0

	for i, mentee := range mentees {
		assigned := []ir.Participant{mentors[cursor]}
		cursor++

		mentorsLeft := len(mentors) - cursor
		menteesLeft := len(mentees) - (i + 1)
		if mentorsLeft > menteesLeft && cursor < len(mentors) {
			assigned = append(assigned, mentors[cursor])
			cursor++
		}

		pairings = append(pairings, ir.Pairing{
			Index:   len(pairings) + 1,
			Mentee:  mentee,
			Mentors: assigned,
		})
	}

	return pairings
}

// assignByMentor walks mentors with a running mentee cursor. Each mentor
// takes ceil(remaining mentees / remaining mentors) mentees.
func assignByMentor(mentors, mentees []ir.Participant) []ir.Pairing {
	pairings := make([]ir.Pairing, 0, len(mentees))
	cursor := 0

	for i, mentor := range mentors {
		menteesLeft := len(mentees) - cursor
		mentorsLeft := len(mentors) - i
		share := (menteesLeft + mentorsLeft - 1) / mentorsLeft

		for n := 0; n < share && cursor < len(mentees); n++ {
			pairings = append(pairings, ir.Pairing{
				Index:   len(pairings) + 1,
				Mentee:  mentees[cursor],
				Mentors: []ir.Participant{mentor},
			})
			cursor++
		}
	}

	return pairings
}
