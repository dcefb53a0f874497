package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/montage/internal/document"
)

// ErrNotFound is returned when a named project has never been saved.
var ErrNotFound = errors.New("project not found")

// SavedProject is one row of the project listing.
type SavedProject struct {
	Name      string
	UpdatedAt time.Time
}

// SaveProject upserts a project document under its name. The document
// is stored in its canonical JSON encoding.
func (s *Store) SaveProject(ctx context.Context, name string, doc *document.Document) error {
	data, err := document.Encode(doc, document.FormatJSON)
	if err != nil {
		return fmt.Errorf("encode project %q: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (name, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, name, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save project %q: %w", name, err)
	}
	return nil
}

// LoadProject reads and decodes a saved project document.
func (s *Store) LoadProject(ctx context.Context, name string) (*document.Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM projects WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load project %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %q: %w", name, err)
	}
	return document.Decode([]byte(data), document.FormatJSON)
}

// ListProjects returns saved projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context) ([]SavedProject, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, updated_at FROM projects
		ORDER BY updated_at DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []SavedProject
	for rows.Next() {
		var p SavedProject
		var updated string
		if err := rows.Scan(&p.Name, &updated); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("list projects: bad timestamp for %q: %w", p.Name, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProject removes a saved project and its journal rows.
func (s *Store) DeleteProject(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete project %q: %w", name, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM journal WHERE project = ?`, name); err != nil {
		return fmt.Errorf("delete project %q journal: %w", name, err)
	}
	return tx.Commit()
}
