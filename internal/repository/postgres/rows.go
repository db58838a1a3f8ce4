package postgres

import (
	"time"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

type noteRow struct {
	ID        int64     `db:"id"`
	AuthorID  int64     `db:"author_id"`
	Title     string    `db:"title"`
	Text      string    `db:"text"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r noteRow) toEntity() entity.Note {
	return entity.Note{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		Title:     r.Title,
		Text:      r.Text,
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func notesToEntity(rows []noteRow) []entity.Note {
	notes := make([]entity.Note, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, r.toEntity())
	}

	return notes
}

type userRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toEntity() entity.User {
	return entity.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}
