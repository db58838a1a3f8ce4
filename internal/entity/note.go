package entity

import (
	"errors"
	"time"
)

const (
	TitleMaxLength = 100
	SlugMaxLength  = 100
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrSlugExists   = errors.New("slug already exists")
	// ErrSlugRequired is returned when no slug was given and none can be
	// derived from the title.
	ErrSlugRequired = errors.New("slug required")
)

type Note struct {
	ID        int64
	AuthorID  int64
	Title     string
	Text      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteInput carries the mutable fields of a note as submitted by its author.
type NoteInput struct {
	Title string
	Text  string
	Slug  string
}
