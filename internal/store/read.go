package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/ir"
)

var (
	// ErrNotFound is returned when a session id is unknown.
	ErrNotFound = errors.New("session not found")

	// ErrDigestMismatch is returned when a stored session no longer hashes
	// to its recorded digest.
	ErrDigestMismatch = errors.New("session digest mismatch")
)

// SessionInfo summarizes a stored session without its participants.
type SessionInfo struct {
	ID        string    `json:"id"`
	Program   string    `json:"program"`
	Regime    ir.Regime `json:"regime"`
	Mentors   int       `json:"mentors"`
	Mentees   int       `json:"mentees"`
	Pairings  int       `json:"pairings"`
	Digest    string    `json:"digest"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadSession loads a session with its pools and pairing set and verifies
// its digest.
//
// Returns ErrNotFound if the session does not exist and ErrDigestMismatch
// (with the session as read) if the rebuilt pairing set does not match the
// stored digest.
func (s *Store) ReadSession(ctx context.Context, id string) (ir.Session, error) {
	info, err := s.readInfo(ctx, id)
	if err != nil {
		return ir.Session{}, err
	}

	sess := ir.Session{
		RunContext: ir.RunContext{
			SessionID: info.ID,
			Program:   info.Program,
			CreatedAt: info.CreatedAt,
		},
		Regime: info.Regime,
		Digest: info.Digest,
	}

	if sess.Mentors, err = s.readPool(ctx, "parrains", id); err != nil {
		return ir.Session{}, err
	}
	if sess.Mentees, err = s.readPool(ctx, "filleuls", id); err != nil {
		return ir.Session{}, err
	}

	edges, err := s.ReadEdges(ctx, id)
	if err != nil {
		return ir.Session{}, err
	}
	sess.Pairings = rebuildPairings(edges)

	digest, err := ir.SessionDigest(sess)
	if err != nil {
		return ir.Session{}, fmt.Errorf("read session: %w", err)
	}
	if digest != info.Digest {
		return sess, fmt.Errorf("%w: session %s", ErrDigestMismatch, id)
	}

	return sess, nil
}

func (s *Store) readInfo(ctx context.Context, id string) (SessionInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filiere, regime, mentor_count, mentee_count, pairing_count, digest, created_at
		FROM sessions
		WHERE id = ?
	`, id)

	info, err := scanSessionInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return SessionInfo{}, fmt.Errorf("read session: %w", err)
	}
	return info, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionInfo(row rowScanner) (SessionInfo, error) {
	var (
		info    SessionInfo
		regime  string
		created string
	)
	if err := row.Scan(
		&info.ID,
		&info.Program,
		&regime,
		&info.Mentors,
		&info.Mentees,
		&info.Pairings,
		&info.Digest,
		&created,
	); err != nil {
		return SessionInfo{}, err
	}

	t, err := parseTime(created)
	if err != nil {
		return SessionInfo{}, err
	}
	info.Regime = ir.Regime(regime)
	info.CreatedAt = t
	return info, nil
}

func (s *Store) readPool(ctx context.Context, table, sessionID string) ([]ir.Participant, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT seq, full_name, email
		FROM %s
		WHERE session_id = ?
		ORDER BY seq ASC
	`, table), sessionID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	pool := []ir.Participant{}
	for rows.Next() {
		var p ir.Participant
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		pool = append(pool, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return pool, nil
}

// ReadEdges returns the flattened pairing set of a session, ordered by
// pairing index with the primary mentor first.
//
// Returns an empty slice (not nil) if the session has no edges.
func (s *Store) ReadEdges(ctx context.Context, sessionID string) ([]ir.Edge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.pairing_index, a.role, a.filiere,
		       p.seq, p.full_name, p.email,
		       f.seq, f.full_name, f.email
		FROM attributions a
		JOIN parrains p ON p.id = a.parrain_id
		JOIN filleuls f ON f.id = a.filleul_id
		WHERE a.session_id = ?
		ORDER BY a.pairing_index ASC, a.role COLLATE BINARY ASC, a.id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query attributions: %w", err)
	}
	defer rows.Close()

	edges := []ir.Edge{}
	for rows.Next() {
		e := ir.Edge{SessionID: sessionID}
		var role string
		if err := rows.Scan(
			&e.PairingIndex, &role, &e.Program,
			&e.Mentor.ID, &e.Mentor.FullName, &e.Mentor.Email,
			&e.Mentee.ID, &e.Mentee.FullName, &e.Mentee.Email,
		); err != nil {
			return nil, fmt.Errorf("scan attribution: %w", err)
		}
		e.Role = ir.Role(role)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attributions: %w", err)
	}
	return edges, nil
}

// rebuildPairings groups ordered edges back into pairings.
func rebuildPairings(edges []ir.Edge) []ir.Pairing {
	pairings := []ir.Pairing{}
	for _, e := range edges {
		n := len(pairings)
		if n > 0 && pairings[n-1].Index == e.PairingIndex {
			pairings[n-1].Mentors = append(pairings[n-1].Mentors, e.Mentor)
			continue
		}
		pairings = append(pairings, ir.Pairing{
			Index:   e.PairingIndex,
			Mentee:  e.Mentee,
			Mentors: []ir.Participant{e.Mentor},
			Program: e.Program,
		})
	}
	return pairings
}

// ListSessions returns stored sessions, oldest first. An empty program
// lists every program.
//
// Returns an empty slice (not nil) if no session matches.
func (s *Store) ListSessions(ctx context.Context, program string) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filiere, regime, mentor_count, mentee_count, pairing_count, digest, created_at
		FROM sessions
		WHERE ? = '' OR filiere = ?
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`, program, program)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	infos := []SessionInfo{}
	for rows.Next() {
		info, err := scanSessionInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return infos, nil
}
