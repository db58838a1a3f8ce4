package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/internal/slugify"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

type notesRepository interface {
	CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error)
	GetNoteBySlug(ctx context.Context, authorID int64, slug string) (entity.Note, error)
	GetNotesByAuthor(ctx context.Context, authorID int64) ([]entity.Note, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	UpdateNote(ctx context.Context, id int64, in entity.NoteInput) (entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type transactor interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo notesRepository `option:"mandatory" validate:"required"`
	tx   transactor      `option:"mandatory" validate:"required"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

// SlugWarning is the message shown next to the slug field when the slug is
// already used by another note.
func SlugWarning(slug string) string {
	return slug + " - такой slug уже существует, придумайте уникальное значение!"
}

// ResolveSlug returns the slug a note will be stored with: the submitted one
// when present, otherwise one derived from the title.
func ResolveSlug(slug, title string) string {
	if slug = strings.TrimSpace(slug); slug != "" {
		return slug
	}

	return slugify.Truncate(slugify.Make(title), entity.SlugMaxLength)
}

func (u *Usecase) CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error) {
	in.Slug = ResolveSlug(in.Slug, in.Title)
	if in.Slug == "" {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", entity.ErrSlugRequired)
	}

	var note entity.Note
	err := u.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.ensureSlugFree(ctx, in.Slug, 0); err != nil {
			return err
		}

		var err error
		note, err = u.repo.CreateNote(ctx, authorID, in)
		return err
	})
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", err)
	}

	slogx.Info(ctx, "success to create note", slogx.UserId(authorID), slogx.NoteSlug(note.Slug))
	return note, nil
}

func (u *Usecase) ListNotes(ctx context.Context, authorID int64) ([]entity.Note, error) {
	notes, err := u.repo.GetNotesByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("usecase list notes: %w", err)
	}

	return notes, nil
}

// GetNote returns the note only to its author. Anybody else gets
// entity.ErrNoteNotFound.
func (u *Usecase) GetNote(ctx context.Context, authorID int64, slug string) (entity.Note, error) {
	note, err := u.repo.GetNoteBySlug(ctx, authorID, slug)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase get note: %w", err)
	}

	return note, nil
}

func (u *Usecase) UpdateNote(ctx context.Context, authorID int64, slug string, in entity.NoteInput) (entity.Note, error) {
	in.Slug = ResolveSlug(in.Slug, in.Title)
	if in.Slug == "" {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", entity.ErrSlugRequired)
	}

	var note entity.Note
	err := u.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := u.repo.GetNoteBySlug(ctx, authorID, slug)
		if err != nil {
			return err
		}

		if err := u.ensureSlugFree(ctx, in.Slug, current.ID); err != nil {
			return err
		}

		note, err = u.repo.UpdateNote(ctx, current.ID, in)
		return err
	})
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", err)
	}

	slogx.Info(ctx, "success to update note", slogx.UserId(authorID), slogx.NoteSlug(note.Slug))
	return note, nil
}

func (u *Usecase) DeleteNote(ctx context.Context, authorID int64, slug string) error {
	err := u.tx.RunInTx(ctx, func(ctx context.Context) error {
		note, err := u.repo.GetNoteBySlug(ctx, authorID, slug)
		if err != nil {
			return err
		}

		return u.repo.DeleteNote(ctx, note.ID)
	})
	if err != nil {
		return fmt.Errorf("usecase delete note: %w", err)
	}

	slogx.Info(ctx, "success to delete note", slogx.UserId(authorID), slogx.NoteSlug(slug))
	return nil
}

func (u *Usecase) ensureSlugFree(ctx context.Context, slug string, excludeID int64) error {
	exists, err := u.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return entity.ErrSlugExists
	}

	return nil
}
