package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes the pairing set to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Pairings []ir.Pairing // Pairing set for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Pairings) > 0 {
		fmt.Fprintf(&buf, "\nPairings:\n")
		for _, p := range e.Pairings {
			fmt.Fprintf(&buf, "  [%d] %s <- %s\n", p.Index, p.Mentee.FullName, strings.Join(mentorNames(p), ", "))
		}
	}

	return buf.String()
}

func mentorNames(p ir.Pairing) []string {
	names := make([]string, len(p.Mentors))
	for i, m := range p.Mentors {
		names[i] = m.FullName
	}
	return names
}

func (r *Result) fail(typ, expected, actual string) error {
	var pairings []ir.Pairing
	if r.Session != nil {
		pairings = r.Session.Pairings
	}
	return &AssertionError{Type: typ, Expected: expected, Actual: actual, Pairings: pairings}
}

func assertCount(r *Result, a Assertion, actual int) error {
	if actual != a.Count {
		return r.fail(a.Type, fmt.Sprintf("%d", a.Count), fmt.Sprintf("%d", actual))
	}
	return nil
}

// assertPaired checks the mentors of one mentee, primary first.
func assertPaired(r *Result, a Assertion) error {
	for _, p := range r.Session.Pairings {
		if p.Mentee.FullName != a.Mentee {
			continue
		}
		got := mentorNames(p)
		if !slices.Equal(got, a.Mentors) {
			return r.fail(a.Type,
				fmt.Sprintf("%s mentored by %v", a.Mentee, a.Mentors),
				fmt.Sprintf("mentored by %v", got))
		}
		return nil
	}
	return r.fail(a.Type, fmt.Sprintf("%s mentored by %v", a.Mentee, a.Mentors), "mentee not paired")
}

// assertEmail checks the derived address of a participant of either pool.
func assertEmail(r *Result, a Assertion) error {
	for _, pool := range [][]ir.Participant{r.Session.Mentors, r.Session.Mentees} {
		for _, p := range pool {
			if p.FullName == a.Name {
				if p.Email != a.Email {
					return r.fail(a.Type, fmt.Sprintf("%s <%s>", a.Name, a.Email), p.Email)
				}
				return nil
			}
		}
	}
	return r.fail(a.Type, fmt.Sprintf("%s <%s>", a.Name, a.Email), "participant not found")
}

// assertWellFormed checks the structural rules every pairing set obeys:
// numbering, mentee coverage, mentor multiplicity and load balance.
func assertWellFormed(r *Result) error {
	sess := r.Session
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	menteeSeen := make(map[int]int, len(sess.Mentees))
	load := make(map[int]int, len(sess.Mentors))
	lastMentor, runs := 0, make(map[int]int)

	for i, p := range sess.Pairings {
		if p.Index != i+1 {
			addf("pairing %d has index %d", i+1, p.Index)
		}
		if p.Program != sess.Program {
			addf("pairing %d has program %q", p.Index, p.Program)
		}
		menteeSeen[p.Mentee.ID]++

		switch {
		case len(p.Mentors) == 0 || len(p.Mentors) > 2:
			addf("pairing %d has %d mentors", p.Index, len(p.Mentors))
		case sess.Regime == ir.RegimeByMentor && len(p.Mentors) != 1:
			addf("pairing %d has %d mentors in regime B", p.Index, len(p.Mentors))
		case len(p.Mentors) == 2 && p.Mentors[0].ID == p.Mentors[1].ID:
			addf("pairing %d repeats mentor %d", p.Index, p.Mentors[0].ID)
		}

		for _, m := range p.Mentors {
			load[m.ID]++
		}
		if id := p.Primary().ID; id != lastMentor {
			runs[id]++
			lastMentor = id
		}
	}

	for _, m := range sess.Mentees {
		if n := menteeSeen[m.ID]; n != 1 {
			addf("mentee %d appears in %d pairings", m.ID, n)
		}
	}

	switch sess.Regime {
	case ir.RegimeByMentee:
		for id, n := range load {
			if n > 1 {
				addf("mentor %d mentors %d mentees in regime A", id, n)
			}
		}
		mentors, mentees := len(sess.Mentors), len(sess.Mentees)
		if want := min(mentors-mentees, mentees); r.Summary.DoubleMentored != want {
			addf("%d mentees double mentored, want %d", r.Summary.DoubleMentored, want)
		}
	case ir.RegimeByMentor:
		if len(r.Summary.UnassignedMentors) > 0 {
			addf("mentors %v unassigned in regime B", r.Summary.UnassignedMentors)
		}
		if r.Summary.MaxLoad-r.Summary.MinLoad > 1 {
			addf("mentor loads range from %d to %d", r.Summary.MinLoad, r.Summary.MaxLoad)
		}
		for id, n := range runs {
			if n > 1 {
				addf("pairings of mentor %d are not contiguous", id)
			}
		}
	}

	if len(problems) > 0 {
		return r.fail(AssertWellFormed, "a well-formed pairing set", strings.Join(problems, "; "))
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch {
		case a.Type == AssertError:
			if result.RunError == "" {
				err = result.fail(a.Type, fmt.Sprintf("failure containing %q", a.Contains), "generation succeeded")
			} else if !strings.Contains(result.RunError, a.Contains) {
				err = result.fail(a.Type, fmt.Sprintf("failure containing %q", a.Contains), result.RunError)
			}
		case a.Type == AssertRejected:
			err = assertCount(result, a, result.Rejected)
		case result.Session == nil:
			err = fmt.Errorf("assertion[%d]: %s requires a generated session", i, a.Type)
		case a.Type == AssertRegime:
			if string(result.Session.Regime) != a.Regime {
				err = result.fail(a.Type, a.Regime, string(result.Session.Regime))
			}
		case a.Type == AssertPairingCount:
			err = assertCount(result, a, len(result.Session.Pairings))
		case a.Type == AssertDoubleMentored:
			err = assertCount(result, a, result.Summary.DoubleMentored)
		case a.Type == AssertUnassignedMentors:
			err = assertCount(result, a, len(result.Summary.UnassignedMentors))
		case a.Type == AssertLoadRange:
			if result.Summary.MinLoad < a.Min || result.Summary.MaxLoad > a.Max {
				err = result.fail(a.Type,
					fmt.Sprintf("loads within [%d, %d]", a.Min, a.Max),
					fmt.Sprintf("loads within [%d, %d]", result.Summary.MinLoad, result.Summary.MaxLoad))
			}
		case a.Type == AssertPaired:
			err = assertPaired(result, a)
		case a.Type == AssertEmail:
			err = assertEmail(result, a)
		case a.Type == AssertWellFormed:
			err = assertWellFormed(result)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
