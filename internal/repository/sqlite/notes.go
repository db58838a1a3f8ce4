package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

const noteColumns = `id, author_id, title, text, slug, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (entity.Note, error) {
	var (
		n                    entity.Note
		createdAt, updatedAt int64
	)
	if err := s.Scan(&n.ID, &n.AuthorID, &n.Title, &n.Text, &n.Slug, &createdAt, &updatedAt); err != nil {
		return entity.Note{}, err
	}

	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updatedAt)

	return n, nil
}

func (r *Repo) CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error) {
	now := r.now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (author_id, title, text, slug, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		authorID, in.Title, in.Text, in.Slug, toMillis(now), toMillis(now),
	)
	if err != nil {
		if uniqueViolation(err, "notes.slug") {
			return entity.Note{}, entity.ErrSlugExists
		}
		return entity.Note{}, fmt.Errorf("create note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entity.Note{}, fmt.Errorf("create note: last insert id: %w", err)
	}

	slogx.Debug(ctx, "success to create note", slogx.UserId(authorID), slogx.NoteSlug(in.Slug))

	return entity.Note{
		ID:        id,
		AuthorID:  authorID,
		Title:     in.Title,
		Text:      in.Text,
		Slug:      in.Slug,
		CreatedAt: fromMillis(toMillis(now)),
		UpdatedAt: fromMillis(toMillis(now)),
	}, nil
}

func (r *Repo) GetNoteBySlug(ctx context.Context, authorID int64, slug string) (entity.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE author_id = ? AND slug = ?`,
		authorID, slug,
	)

	n, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("get note: %w", err)
	}

	return n, nil
}

func (r *Repo) GetNotesByAuthor(ctx context.Context, authorID int64) ([]entity.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE author_id = ? ORDER BY id`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("get notes by author: %w", err)
	}
	defer rows.Close()

	notes := make([]entity.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("get notes by author: scan: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get notes by author: %w", err)
	}

	return notes, nil
}

func (r *Repo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE slug = ? AND id <> ?)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}

	return exists, nil
}

func (r *Repo) UpdateNote(ctx context.Context, id int64, in entity.NoteInput) (entity.Note, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, text = ?, slug = ?, updated_at = ? WHERE id = ?`,
		in.Title, in.Text, in.Slug, toMillis(r.now()), id,
	)
	if err != nil {
		if uniqueViolation(err, "notes.slug") {
			return entity.Note{}, entity.ErrSlugExists
		}
		return entity.Note{}, fmt.Errorf("update note: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.Note{}, entity.ErrNoteNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	n, err := scanNote(row)
	if err != nil {
		return entity.Note{}, fmt.Errorf("update note: reload: %w", err)
	}

	return n, nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}
