package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/ledger/reflection"
)

const reflectionColumns = `id, reflected_at, grp, prompt, answer`

func (s *SQLite) InsertReflection(ctx context.Context, r reflection.Reflection) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reflections (id, reflected_at, reflected_unix, grp, prompt, answer)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, formatTime(r.Date), r.Date.UnixNano(), r.Group, r.Prompt, r.Answer,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reflection %q: %w", r.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert reflection %q: %w", r.ID, err)
	}
	return nil
}

func (s *SQLite) GetReflection(ctx context.Context, id string) (reflection.Reflection, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reflectionColumns+` FROM reflections WHERE id = ?`, id)
	r, err := scanReflection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reflection.Reflection{}, &NotFoundError{Kind: "reflection", ID: id}
	}
	return r, err
}

// ListReflections returns all reflections, newest first.
func (s *SQLite) ListReflections(ctx context.Context) ([]reflection.Reflection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+reflectionColumns+` FROM reflections
		ORDER BY reflected_unix DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query reflections: %w", err)
	}
	defer rows.Close()

	out := []reflection.Reflection{}
	for rows.Next() {
		r, err := scanReflection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReflectionAnswer replaces the answer text and returns the updated
// record.
func (s *SQLite) UpdateReflectionAnswer(ctx context.Context, id, answer string) (reflection.Reflection, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE reflections SET answer = ? WHERE id = ?`, answer, id)
	if err != nil {
		return reflection.Reflection{}, fmt.Errorf("update reflection %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return reflection.Reflection{}, &NotFoundError{Kind: "reflection", ID: id}
	}
	return s.GetReflection(ctx, id)
}

func (s *SQLite) DeleteReflection(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reflections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reflection %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &NotFoundError{Kind: "reflection", ID: id}
	}
	return nil
}

func scanReflection(row scanner) (reflection.Reflection, error) {
	var (
		r  reflection.Reflection
		at string
	)
	if err := row.Scan(&r.ID, &at, &r.Group, &r.Prompt, &r.Answer); err != nil {
		return reflection.Reflection{}, err
	}
	t, err := parseTime(at)
	if err != nil {
		return reflection.Reflection{}, err
	}
	r.Date = t
	return r, nil
}
