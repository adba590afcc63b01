package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

// timeLayout is the text encoding of created_at. It sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// WriteSession persists a session, its pools and its edges in one
// transaction.
//
// Uses ON CONFLICT(id) DO NOTHING on the session row for idempotency: if a
// session with the same id already exists nothing is written and inserted
// is false. Every edge must reference participants of the session's pools.
func (s *Store) WriteSession(ctx context.Context, sess ir.Session) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO sessions
		(id, filiere, regime, mentor_count, mentee_count, pairing_count, digest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.SessionID,
		sess.Program,
		string(sess.Regime),
		len(sess.Mentors),
		len(sess.Mentees),
		len(sess.Pairings),
		sess.Digest,
		sess.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("write session: insert: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write session: rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	mentorRows, err := insertParticipants(ctx, tx, "parrains", sess.SessionID, sess.Program, sess.Mentors)
	if err != nil {
		return false, fmt.Errorf("write session: %w", err)
	}
	menteeRows, err := insertParticipants(ctx, tx, "filleuls", sess.SessionID, sess.Program, sess.Mentees)
	if err != nil {
		return false, fmt.Errorf("write session: %w", err)
	}

	for _, e := range sess.Edges() {
		mentorRow, ok := mentorRows[e.Mentor.ID]
		if !ok {
			return false, fmt.Errorf("write session: pairing %d references unknown mentor %d", e.PairingIndex, e.Mentor.ID)
		}
		menteeRow, ok := menteeRows[e.Mentee.ID]
		if !ok {
			return false, fmt.Errorf("write session: pairing %d references unknown mentee %d", e.PairingIndex, e.Mentee.ID)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO attributions
			(session_id, pairing_index, role, parrain_id, filleul_id, filiere)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(session_id, parrain_id, filleul_id) DO NOTHING
		`,
			sess.SessionID,
			e.PairingIndex,
			string(e.Role),
			mentorRow,
			menteeRow,
			programOf(e.Program, sess.Program),
		)
		if err != nil {
			return false, fmt.Errorf("write session: insert attribution %d: %w", e.PairingIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write session: commit: %w", err)
	}
	return true, nil
}

// insertParticipants writes one pool and returns row ids keyed by
// participant id.
func insertParticipants(ctx context.Context, tx *sql.Tx, table, sessionID, program string, pool []ir.Participant) (map[int]int64, error) {
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (session_id, seq, full_name, email, filiere)
		VALUES (?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", table, err)
	}
	defer stmt.Close()

	rows := make(map[int]int64, len(pool))
	for _, p := range pool {
		res, err := stmt.ExecContext(ctx, sessionID, p.ID, p.FullName, p.Email, program)
		if err != nil {
			return nil, fmt.Errorf("insert %s %d: %w", table, p.ID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert %s %d: last insert id: %w", table, p.ID, err)
		}
		rows[p.ID] = id
	}
	return rows, nil
}

func programOf(edgeProgram, sessionProgram string) string {
	if edgeProgram != "" {
		return edgeProgram
	}
	return sessionProgram
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t, nil
}

// DeleteSession removes a session and, through cascading foreign keys,
// its pools and edges. Returns false if the session did not exist.
func (s *Store) DeleteSession(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete session: rows affected: %w", err)
	}
	return n > 0, nil
}
