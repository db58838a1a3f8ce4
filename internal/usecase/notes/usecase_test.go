package notes_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite/sqlitetest"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/notes"
)

type fixture struct {
	uc     *notes.Usecase
	repo   *sqlite.Repo
	author entity.User
	reader entity.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, repo := sqlitetest.New(t)

	uc, err := notes.New(notes.NewOptions(repo, db))
	require.NoError(t, err)

	author, err := repo.CreateUser(context.Background(), "Автор", []byte("x"))
	require.NoError(t, err)
	reader, err := repo.CreateUser(context.Background(), "Читатель", []byte("x"))
	require.NoError(t, err)

	return fixture{uc: uc, repo: repo, author: author, reader: reader}
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := notes.New(notes.NewOptions(nil, nil))
	assert.Error(t, err)
}

func TestResolveSlug(t *testing.T) {
	assert.Equal(t, "given", notes.ResolveSlug("  given ", "Заголовок"))
	assert.Equal(t, "zagolovok", notes.ResolveSlug("", "Заголовок"))
	assert.Equal(t, "zagolovok", notes.ResolveSlug("   ", "Заголовок"))

	long := notes.ResolveSlug("", strings.Repeat("я", 120))
	assert.Len(t, long, entity.SlugMaxLength)
	assert.Equal(t, strings.Repeat("ya", 50), long)
}

func TestSlugWarning(t *testing.T) {
	assert.Equal(t,
		"note-slug - такой slug уже существует, придумайте уникальное значение!",
		notes.SlugWarning("note-slug"),
	)
}

func TestCreateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "Новый заголовок", Text: "Новый текст", Slug: "new-slug"})
	require.NoError(t, err)
	assert.Equal(t, "new-slug", n.Slug)
	assert.Equal(t, f.author.ID, n.AuthorID)

	list, err := f.uc.ListNotes(ctx, f.author.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Новый заголовок", list[0].Title)
	assert.Equal(t, "Новый текст", list[0].Text)
}

func TestCreateNoteDerivesEmptySlug(t *testing.T) {
	f := newFixture(t)

	n, err := f.uc.CreateNote(context.Background(), f.author.ID, entity.NoteInput{Title: "Новый заголовок", Text: "текст"})
	require.NoError(t, err)
	assert.Equal(t, "novyj-zagolovok", n.Slug)
}

func TestCreateNoteRejectsUnderivableSlug(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateNote(context.Background(), f.author.ID, entity.NoteInput{Title: "!!!", Text: "текст"})
	assert.ErrorIs(t, err, entity.ErrSlugRequired)
}

func TestCreateNoteDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "same"})
	require.NoError(t, err)

	_, err = f.uc.CreateNote(ctx, f.reader.ID, entity.NoteInput{Title: "b", Text: "b", Slug: "same"})
	assert.ErrorIs(t, err, entity.ErrSlugExists)

	list, err := f.uc.ListNotes(ctx, f.reader.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetNoteIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "private"})
	require.NoError(t, err)

	got, err := f.uc.GetNote(ctx, f.author.ID, "private")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)

	_, err = f.uc.GetNote(ctx, f.reader.ID, "private")
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestListNotesOnlyOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, slug := range []string{"one", "two"} {
		_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: slug, Text: slug, Slug: slug})
		require.NoError(t, err)
	}
	_, err := f.uc.CreateNote(ctx, f.reader.ID, entity.NoteInput{Title: "r", Text: "r", Slug: "theirs"})
	require.NoError(t, err)

	list, err := f.uc.ListNotes(ctx, f.author.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Slug)
	assert.Equal(t, "two", list[1].Slug)
}

func TestUpdateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orig, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "old"})
	require.NoError(t, err)

	updated, err := f.uc.UpdateNote(ctx, f.author.ID, "old", entity.NoteInput{Title: "Новый", Text: "b", Slug: "new"})
	require.NoError(t, err)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, f.author.ID, updated.AuthorID)
	assert.Equal(t, "Новый", updated.Title)
	assert.Equal(t, "b", updated.Text)
	assert.Equal(t, "new", updated.Slug)
}

func TestUpdateNoteKeepsOwnSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "keep"})
	require.NoError(t, err)

	updated, err := f.uc.UpdateNote(ctx, f.author.ID, "keep", entity.NoteInput{Title: "b", Text: "b", Slug: "keep"})
	require.NoError(t, err)
	assert.Equal(t, "keep", updated.Slug)
	assert.Equal(t, "b", updated.Title)
}

func TestUpdateNoteRederivesEmptySlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "custom"})
	require.NoError(t, err)

	updated, err := f.uc.UpdateNote(ctx, f.author.ID, "custom", entity.NoteInput{Title: "Щука", Text: "a"})
	require.NoError(t, err)
	assert.Equal(t, "schuka", updated.Slug)
}

func TestUpdateNoteByOtherUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "mine"})
	require.NoError(t, err)

	_, err = f.uc.UpdateNote(ctx, f.reader.ID, "mine", entity.NoteInput{Title: "hacked", Text: "hacked", Slug: "mine"})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	got, err := f.uc.GetNote(ctx, f.author.ID, "mine")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
}

func TestUpdateNoteDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.reader.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "taken"})
	require.NoError(t, err)
	_, err = f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "b", Text: "b", Slug: "mine"})
	require.NoError(t, err)

	_, err = f.uc.UpdateNote(ctx, f.author.ID, "mine", entity.NoteInput{Title: "c", Text: "c", Slug: "taken"})
	assert.ErrorIs(t, err, entity.ErrSlugExists)

	got, err := f.uc.GetNote(ctx, f.author.ID, "mine")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
}

func TestDeleteNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateNote(ctx, f.author.ID, entity.NoteInput{Title: "a", Text: "a", Slug: "bye"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.DeleteNote(ctx, f.reader.ID, "bye"), entity.ErrNoteNotFound)

	list, err := f.uc.ListNotes(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.uc.DeleteNote(ctx, f.author.ID, "bye"))

	list, err = f.uc.ListNotes(ctx, f.author.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
