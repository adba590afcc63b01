package ir

import "time"

// Participant is one mentor ("parrain") or one mentee ("filleul").
type Participant struct {
	ID       int    `json:"id"`        // Position in its source list, unique within that list
	FullName string `json:"full_name"` // Cleaned display name
	Email    string `json:"email"`     // Derived institutional address
}

// Regime identifies which pool drives the assignment loop.
type Regime string

const (
	// RegimeByMentee iterates mentees; used when mentors >= mentees.
	RegimeByMentee Regime = "A"

	// RegimeByMentor iterates mentors; used when mentees > mentors.
	RegimeByMentor Regime = "B"
)

// Role is the position of a mentor within a pairing.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// Pairing links one mentee to one or two mentors.
//
// In RegimeByMentee a pairing has one or two mentors. In RegimeByMentor
// it always has exactly one mentor, and the pairings of the same mentor
// are contiguous.
type Pairing struct {
	Index   int           `json:"index"` // 1-based output position
	Mentee  Participant   `json:"mentee"`
	Mentors []Participant `json:"mentors"`
	Program string        `json:"program"`
}

// Primary returns the first mentor of the pairing.
func (p Pairing) Primary() Participant {
	return p.Mentors[0]
}

// Secondary returns the extra mentor, if the pairing has one.
func (p Pairing) Secondary() (Participant, bool) {
	if len(p.Mentors) < 2 {
		return Participant{}, false
	}
	return p.Mentors[1], true
}

// Edge is one (mentor, mentee) row of a flattened pairing set.
type Edge struct {
	SessionID    string      `json:"session_id"`
	PairingIndex int         `json:"pairing_index"`
	Role         Role        `json:"role"`
	Mentor       Participant `json:"mentor"`
	Mentee       Participant `json:"mentee"`
	Program      string      `json:"program"`
}

// Flatten expands pairings into one edge per (mentor, mentee) couple,
// preserving pairing order and mentor order within a pairing.
func Flatten(sessionID string, pairings []Pairing) []Edge {
	edges := make([]Edge, 0, len(pairings))
	for _, p := range pairings {
		for i, m := range p.Mentors {
			role := RolePrimary
			if i > 0 {
				role = RoleSecondary
			}
			edges = append(edges, Edge{
				SessionID:    sessionID,
				PairingIndex: p.Index,
				Role:         role,
				Mentor:       m,
				Mentee:       p.Mentee,
				Program:      p.Program,
			})
		}
	}
	return edges
}

// RunContext is the ambient configuration of one generation.
type RunContext struct {
	SessionID string    `json:"session_id"` // Opaque, unique per run
	Program   string    `json:"program"`    // Program display name, e.g. "EAIN"
	CreatedAt time.Time `json:"created_at"`
}

// Session is the complete outcome of one generation: its context, both
// pools and the pairing set.
type Session struct {
	RunContext
	Regime   Regime        `json:"regime"`
	Mentors  []Participant `json:"mentors"`
	Mentees  []Participant `json:"mentees"`
	Pairings []Pairing     `json:"pairings"`
	Digest   string        `json:"digest"`
}

// Edges returns the flattened pairing set of the session.
func (s Session) Edges() []Edge {
	return Flatten(s.SessionID, s.Pairings)
}

// ReportKind names a family of generated files.
type ReportKind string

const (
	ReportMentors      ReportKind = "parrains"
	ReportMentees      ReportKind = "filleuls"
	ReportAttributions ReportKind = "attributions"
	ReportPDF          ReportKind = "pdfs"
)

// ReportKinds lists every report kind in a stable order.
var ReportKinds = []ReportKind{ReportMentors, ReportMentees, ReportAttributions, ReportPDF}

// ReportFile describes one generated file.
type ReportFile struct {
	Kind  ReportKind `json:"kind"`
	Name  string     `json:"name"`
	Path  string     `json:"path"`
	Count int        `json:"count"` // Rows written
}
