package identity

import (
	"fmt"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// DefaultDomain is the institution domain appended to derived addresses.
const DefaultDomain = "istc.ci"

// Reason explains why a row did not produce a participant.
type Reason string

const (
	// ReasonNone means the row was accepted.
	ReasonNone Reason = ""

	// ReasonEmpty means the row is blank after cleaning.
	ReasonEmpty Reason = "empty"

	// ReasonHeader means the row is a column header.
	ReasonHeader Reason = "header"

	// ReasonIncompleteName means fewer than two name tokens were found.
	ReasonIncompleteName Reason = "incomplete_name"

	// ReasonShortName means a name token kept fewer than two letters
	// once reduced to a-z.
	ReasonShortName Reason = "short_name"
)

// Deriver derives participants from raw names.
//
// Thread-safety: a Deriver is immutable and safe for concurrent use.
type Deriver struct {
	programs ir.ProgramTable
	domain   string
}

// NewDeriver creates a Deriver using the given program table and
// institution domain. An empty domain falls back to DefaultDomain.
func NewDeriver(programs ir.ProgramTable, domain string) *Deriver {
	if domain == "" {
		domain = DefaultDomain
	}
	return &Deriver{programs: programs, domain: domain}
}

// Domain returns the institution domain used in addresses.
func (d *Deriver) Domain() string {
	return d.domain
}

// Derive builds a participant from one raw list row. The returned
// participant has no ID; IDs are positions assigned by the caller.
// The boolean is false when the row is rejected.
//
//	d.Derive("Jean Martin", "EAIN")
//	// Participant{FullName: "Jean Martin", Email: "jean.martin@edu.eain.istc.ci"}, true
func (d *Deriver) Derive(raw, program string) (ir.Participant, bool) {
	p, reason := d.Diagnose(raw, program)
	return p, reason == ReasonNone
}

// Diagnose is like Derive but reports why a row was rejected.
func (d *Deriver) Diagnose(raw, program string) (ir.Participant, Reason) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return ir.Participant{}, ReasonEmpty
	}
	if IsHeader(cleaned) {
		return ir.Participant{}, ReasonHeader
	}

	tokens := nameTokens(cleaned)
	if len(tokens) < 2 {
		return ir.Participant{}, ReasonIncompleteName
	}

	given := addressPart(tokens[0])
	family := addressPart(tokens[1])
	if len(given) < 2 || len(family) < 2 {
		return ir.Participant{}, ReasonShortName
	}

	return ir.Participant{
		FullName: cleaned,
		Email:    fmt.Sprintf("%s.%s@edu.%s.%s", given, family, d.programs.Slug(program), d.domain),
	}, ReasonNone
}
