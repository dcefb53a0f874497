package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/montage/internal/engine"
)

// Journal persists an editing session's command history for one named
// project. It implements engine.Journal.
type Journal struct {
	store   *Store
	project string
}

// Journal returns the command journal scoped to a project name.
func (s *Store) Journal(project string) *Journal {
	return &Journal{store: s, project: project}
}

// Record appends one history transition.
func (j *Journal) Record(ctx context.Context, entry engine.JournalEntry) error {
	_, err := j.store.db.ExecContext(ctx, `
		INSERT INTO journal (project, seq, command, op, at)
		VALUES (?, ?, ?, ?, ?)
	`, j.project, entry.Seq, entry.Command, entry.Op, entry.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("journal %q seq %d: %w", j.project, entry.Seq, err)
	}
	return nil
}

// History returns the recorded transitions in sequence order.
func (j *Journal) History(ctx context.Context) ([]engine.JournalEntry, error) {
	rows, err := j.store.db.QueryContext(ctx, `
		SELECT seq, command, op, at FROM journal
		WHERE project = ?
		ORDER BY seq ASC
	`, j.project)
	if err != nil {
		return nil, fmt.Errorf("journal %q history: %w", j.project, err)
	}
	defer rows.Close()

	var out []engine.JournalEntry
	for rows.Next() {
		var entry engine.JournalEntry
		var at string
		if err := rows.Scan(&entry.Seq, &entry.Command, &entry.Op, &at); err != nil {
			return nil, fmt.Errorf("journal %q history: %w", j.project, err)
		}
		if entry.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("journal %q history: bad timestamp at seq %d: %w", j.project, entry.Seq, err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// LastSeq returns the highest recorded sequence number, or 0 when the
// journal is empty. Sessions resume their logical clock from here.
func (j *Journal) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := j.store.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM journal WHERE project = ?
	`, j.project).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("journal %q last seq: %w", j.project, err)
	}
	return seq, nil
}
