// Package repotest is the behaviour suite every notes storage must pass.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

type Repository interface {
	CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error)
	GetNoteBySlug(ctx context.Context, authorID int64, slug string) (entity.Note, error)
	GetNotesByAuthor(ctx context.Context, authorID int64) ([]entity.Note, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	UpdateNote(ctx context.Context, id int64, in entity.NoteInput) (entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, username string, passwordHash []byte) (entity.User, error)
	GetUserByID(ctx context.Context, id int64) (entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (entity.User, error)
}

// Run executes the suite. newRepo must return a repository over an empty,
// migrated database for every call.
func Run(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("users", func(t *testing.T) { testUsers(t, newRepo(t)) })
	t.Run("create and get note", func(t *testing.T) { testCreateAndGet(t, newRepo(t)) })
	t.Run("notes are scoped by author", func(t *testing.T) { testAuthorScope(t, newRepo(t)) })
	t.Run("list is ordered by id", func(t *testing.T) { testListOrder(t, newRepo(t)) })
	t.Run("slug is unique", func(t *testing.T) { testSlugUnique(t, newRepo(t)) })
	t.Run("update note", func(t *testing.T) { testUpdate(t, newRepo(t)) })
	t.Run("delete note", func(t *testing.T) { testDelete(t, newRepo(t)) })
}

func createUser(t *testing.T, repo Repository, name string) entity.User {
	t.Helper()

	u, err := repo.CreateUser(context.Background(), name, []byte("hash-"+name))
	require.NoError(t, err)

	return u
}

func testUsers(t *testing.T, repo Repository) {
	ctx := context.Background()

	u := createUser(t, repo, "Автор")
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Автор", byID.Username)
	assert.Equal(t, []byte("hash-Автор"), byID.PasswordHash)

	byName, err := repo.GetUserByUsername(ctx, "Автор")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = repo.CreateUser(ctx, "Автор", []byte("other"))
	assert.ErrorIs(t, err, entity.ErrUserExists)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	_, err = repo.GetUserByID(ctx, u.ID+100)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func testCreateAndGet(t *testing.T, repo Repository) {
	ctx := context.Background()
	author := createUser(t, repo, "author")

	created, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: "Заголовок", Text: "Текст", Slug: "test-slug"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, author.ID, created.AuthorID)

	got, err := repo.GetNoteBySlug(ctx, author.ID, "test-slug")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Заголовок", got.Title)
	assert.Equal(t, "Текст", got.Text)
	assert.Equal(t, "test-slug", got.Slug)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.GetNoteBySlug(ctx, author.ID, "missing")
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func testAuthorScope(t *testing.T, repo Repository) {
	ctx := context.Background()
	author := createUser(t, repo, "author")
	reader := createUser(t, repo, "reader")

	_, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: "t", Text: "x", Slug: "mine"})
	require.NoError(t, err)

	_, err = repo.GetNoteBySlug(ctx, reader.ID, "mine")
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	notes, err := repo.GetNotesByAuthor(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func testListOrder(t *testing.T, repo Repository) {
	ctx := context.Background()
	author := createUser(t, repo, "author")
	other := createUser(t, repo, "other")

	var want []int64
	for _, slug := range []string{"c", "a", "b"} {
		n, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: slug, Text: slug, Slug: slug})
		require.NoError(t, err)
		want = append(want, n.ID)
	}
	_, err := repo.CreateNote(ctx, other.ID, entity.NoteInput{Title: "z", Text: "z", Slug: "z"})
	require.NoError(t, err)

	notes, err := repo.GetNotesByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)

	var got []int64
	for _, n := range notes {
		got = append(got, n.ID)
	}
	assert.Equal(t, want, got)
	assert.IsIncreasing(t, got)
}

func testSlugUnique(t *testing.T, repo Repository) {
	ctx := context.Background()
	author := createUser(t, repo, "author")
	reader := createUser(t, repo, "reader")

	first, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: "t", Text: "x", Slug: "taken"})
	require.NoError(t, err)

	_, err = repo.CreateNote(ctx, reader.ID, entity.NoteInput{Title: "t", Text: "x", Slug: "taken"})
	assert.ErrorIs(t, err, entity.ErrSlugExists)

	exists, err := repo.SlugExists(ctx, "taken", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "taken", first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists(ctx, "free", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	second, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: "t", Text: "x", Slug: "second"})
	require.NoError(t, err)

	_, err = repo.UpdateNote(ctx, second.ID, entity.NoteInput{Title: "t", Text: "x", Slug: "taken"})
	assert.ErrorIs(t, err, entity.ErrSlugExists)
}

func testUpdate(t *testing.T, repo Repository) {
	ctx := context.Background()
	author := createUser(t, repo, "author")

	n, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: "old", Text: "old", Slug: "old"})
	require.NoError(t, err)

	updated, err := repo.UpdateNote(ctx, n.ID, entity.NoteInput{Title: "new", Text: "new text", Slug: "new"})
	require.NoError(t, err)
	assert.Equal(t, n.ID, updated.ID)
	assert.Equal(t, author.ID, updated.AuthorID)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "new text", updated.Text)
	assert.Equal(t, "new", updated.Slug)

	_, err = repo.GetNoteBySlug(ctx, author.ID, "old")
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	_, err = repo.UpdateNote(ctx, n.ID+100, entity.NoteInput{Title: "x", Text: "x", Slug: "x"})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func testDelete(t *testing.T, repo Repository) {
	ctx := context.Background()
	author := createUser(t, repo, "author")

	n, err := repo.CreateNote(ctx, author.ID, entity.NoteInput{Title: "t", Text: "x", Slug: "gone"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteNote(ctx, n.ID))

	notes, err := repo.GetNotesByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.ErrorIs(t, repo.DeleteNote(ctx, n.ID), entity.ErrNoteNotFound)
}
