package testutil

// DefaultSessionID is used by FixedSessionGenerator when no id is given.
const DefaultSessionID = "test-session-default"

// FixedSessionGenerator generates the same session id every time, so a
// scenario run twice produces byte-identical output.
//
// Unlike engine.FixedGenerator which returns ids in sequence, this
// generator never runs out.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a fixed session id generator.
// If id is empty, Generate returns DefaultSessionID.
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session id.
//
// Implements engine.SessionIDGenerator.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
