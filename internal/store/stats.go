package store

import (
	"context"
	"fmt"
	"time"
)

// ProgramStats aggregates the sessions of one program.
type ProgramStats struct {
	Program      string    `json:"program"`
	Sessions     int       `json:"sessions"`
	Mentors      int       `json:"mentors"`
	Mentees      int       `json:"mentees"`
	Attributions int       `json:"attributions"`
	LastRun      time.Time `json:"last_run"`
}

// Stats aggregates every stored session.
type Stats struct {
	Sessions     int            `json:"sessions"`
	Mentors      int            `json:"mentors"`
	Mentees      int            `json:"mentees"`
	Attributions int            `json:"attributions"`
	Programs     []ProgramStats `json:"programs"`
}

// Stats returns global and per-program totals. Programs are sorted by
// name.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.filiere,
		       COUNT(*),
		       SUM(s.mentor_count),
		       SUM(s.mentee_count),
		       SUM((SELECT COUNT(*) FROM attributions a WHERE a.session_id = s.id)),
		       MAX(s.created_at)
		FROM sessions s
		GROUP BY s.filiere
		ORDER BY s.filiere COLLATE BINARY ASC
	`)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	st := Stats{Programs: []ProgramStats{}}
	for rows.Next() {
		var (
			ps   ProgramStats
			last string
		)
		if err := rows.Scan(&ps.Program, &ps.Sessions, &ps.Mentors, &ps.Mentees, &ps.Attributions, &last); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		if ps.LastRun, err = parseTime(last); err != nil {
			return Stats{}, err
		}

		st.Sessions += ps.Sessions
		st.Mentors += ps.Mentors
		st.Mentees += ps.Mentees
		st.Attributions += ps.Attributions
		st.Programs = append(st.Programs, ps)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return st, nil
}
