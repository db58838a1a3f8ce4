package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

const noteColumns = `id, author_id, title, text, slug, created_at, updated_at`

func (r *Repo) CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO notes (author_id, title, text, slug)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+noteColumns,
		authorID, in.Title, in.Text, in.Slug,
	)

	row, err := collectNote(rows, err)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == notesSlugKey {
			return entity.Note{}, entity.ErrSlugExists
		}
		return entity.Note{}, fmt.Errorf("create note: %w", err)
	}

	slogx.Debug(ctx, "success to create note", slogx.UserId(authorID), slogx.NoteSlug(row.Slug))

	return row.toEntity(), nil
}

func (r *Repo) GetNoteBySlug(ctx context.Context, authorID int64, slug string) (entity.Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE author_id = $1 AND slug = $2`,
		authorID, slug,
	)

	row, err := collectNote(rows, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("get note: %w", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetNotesByAuthor(ctx context.Context, authorID int64) ([]entity.Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE author_id = $1 ORDER BY id`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("get notes by author: %w", err)
	}

	notes, err := pgx.CollectRows(rows, pgx.RowToStructByName[noteRow])
	if err != nil {
		return nil, fmt.Errorf("get notes by author: %w", err)
	}

	return notesToEntity(notes), nil
}

func (r *Repo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}

	return exists, nil
}

func (r *Repo) UpdateNote(ctx context.Context, id int64, in entity.NoteInput) (entity.Note, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE notes
		 SET title = $2, text = $3, slug = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+noteColumns,
		id, in.Title, in.Text, in.Slug,
	)

	row, err := collectNote(rows, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		if name, ok := uniqueConstraint(err); ok && name == notesSlugKey {
			return entity.Note{}, entity.ErrSlugExists
		}
		return entity.Note{}, fmt.Errorf("update note: %w", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}

func collectNote(rows pgx.Rows, err error) (noteRow, error) {
	if err != nil {
		return noteRow{}, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToStructByName[noteRow])
}
