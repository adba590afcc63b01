package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testParticipant(prefix string, id int, program string) ir.Participant {
	return ir.Participant{
		ID:       id,
		FullName: fmt.Sprintf("%s Nom%d", prefix, id),
		Email:    fmt.Sprintf("%s.nom%d@edu.%s.istc.ci", prefix, id, program),
	}
}

// createTestSession builds a digested session with three mentors and two
// mentees: pairing 1 has a secondary mentor.
func createTestSession(id, program string, created time.Time) ir.Session {
	slug := "gen"
	if program == "EAIN" {
		slug = "eain"
	}
	m1, m2, m3 := testParticipant("parrain", 1, slug), testParticipant("parrain", 2, slug), testParticipant("parrain", 3, slug)
	f1, f2 := testParticipant("filleul", 1, slug), testParticipant("filleul", 2, slug)

	sess := ir.Session{
		RunContext: ir.RunContext{SessionID: id, Program: program, CreatedAt: created},
		Regime:     ir.RegimeByMentee,
		Mentors:    []ir.Participant{m1, m2, m3},
		Mentees:    []ir.Participant{f1, f2},
		Pairings: []ir.Pairing{
			{Index: 1, Mentee: f2, Mentors: []ir.Participant{m3, m1}, Program: program},
			{Index: 2, Mentee: f1, Mentors: []ir.Participant{m2}, Program: program},
		},
	}
	sess.Digest = ir.MustSessionDigest(sess)
	return sess
}

var testTime = time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC)
