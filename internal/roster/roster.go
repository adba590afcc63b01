package roster

import (
	"errors"
	"strings"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/identity"
	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// ErrNoParticipants is returned when no row of a list yields a participant.
var ErrNoParticipants = errors.New("no valid participant in list")

// Rejection records a non-blank row that did not become a participant.
type Rejection struct {
	Row    int             `json:"row"` // 1-based row number in the source
	Text   string          `json:"text"`
	Reason identity.Reason `json:"reason"`
}

// Roster is an imported list.
type Roster struct {
	Program      string           `json:"program"`
	Participants []ir.Participant `json:"participants"`
	Rejected     []Rejection      `json:"rejected"`
	Total        int              `json:"total"` // Non-blank rows
}

// Filtered returns how many non-blank rows were dropped.
func (r *Roster) Filtered() int {
	return r.Total - len(r.Participants)
}

// Build derives participants from raw rows.
//
// Blank rows are skipped silently. Header rows are rejected and do not
// consume an ID. Every other row is numbered from 1 in order, whether or
// not it derives, so IDs can have gaps where names were rejected.
//
// Returns the roster together with ErrNoParticipants when nothing derives;
// the roster still lists the rejected rows.
func Build(rows []string, d *identity.Deriver, program string) (*Roster, error) {
	r := &Roster{
		Program:      program,
		Participants: []ir.Participant{},
		Rejected:     []Rejection{},
	}

	position := 0
	for i, raw := range rows {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		r.Total++

		if identity.IsHeader(raw) {
			r.Rejected = append(r.Rejected, Rejection{Row: i + 1, Text: raw, Reason: identity.ReasonHeader})
			continue
		}
		position++

		p, reason := d.Diagnose(raw, program)
		if reason != identity.ReasonNone {
			r.Rejected = append(r.Rejected, Rejection{Row: i + 1, Text: raw, Reason: reason})
			continue
		}
		p.ID = position
		r.Participants = append(r.Participants, p)
	}

	if len(r.Participants) == 0 {
		return r, ErrNoParticipants
	}
	return r, nil
}

// Load reads a list file and builds its roster.
func Load(path string, d *identity.Deriver, program string) (*Roster, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	return Build(rows, d, program)
}
