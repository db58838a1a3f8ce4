package web_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmitry-Bulhin/ya-note/internal/api/web"
	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

var newNoteForm = url.Values{
	"title": {"Новый заголовок"},
	"text":  {"Новый текст"},
	"slug":  {"new-slug"},
}

func TestListShowsOwnNotesInOrder(t *testing.T) {
	e := newEnv(t)
	author := e.user("testuser")
	other := e.user("other")

	const count = 5
	for i := range count {
		e.note(author, fmt.Sprintf("Заметка %d", i), fmt.Sprintf("Текст заметки %d", i), fmt.Sprintf("test-note-%d", i))
	}
	e.note(other, "Чужая заметка", "Текст", "foreign")

	rec := e.loggedIn(author).get(e.url(web.RouteList))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.NotContains(t, body, "Чужая заметка")
	assert.NotContains(t, body, e.url(web.RouteDetail, "foreign"))

	prev := -1
	for i := range count {
		link := e.url(web.RouteDetail, fmt.Sprintf("test-note-%d", i))
		assert.Contains(t, body, link)
		assert.Contains(t, body, fmt.Sprintf("Заметка %d", i))

		pos := strings.Index(body, link)
		assert.Greater(t, pos, prev, "notes are listed by ascending id")
		prev = pos
	}
}

func TestAddAndEditPagesContainForm(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	n := e.note(author, "Заголовок", "Текст", "test-slug")
	c := e.loggedIn(author)

	for _, target := range []string{e.url(web.RouteAdd), e.url(web.RouteEdit, n.Slug)} {
		rec := c.get(target)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="note-form"`)
	}

	rec := c.get(e.url(web.RouteEdit, n.Slug))
	assert.Contains(t, rec.Body.String(), `value="test-slug"`)
}

func TestAnonymousCantCreateNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")

	rec := e.anonymous().post(e.url(web.RouteAdd), newNoteForm)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, 0, e.countNotes(author))
}

func TestUserCanCreateNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")

	rec := e.loggedIn(author).post(e.url(web.RouteAdd), newNoteForm)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.url(web.RouteSuccess), rec.Header().Get("Location"))

	n, err := e.notes.GetNote(context.Background(), author.ID, "new-slug")
	require.NoError(t, err)
	assert.Equal(t, "Новый заголовок", n.Title)
	assert.Equal(t, "Новый текст", n.Text)
	assert.Equal(t, author.ID, n.AuthorID)
	assert.Equal(t, 1, e.countNotes(author))
}

func TestCreateNoteValidation(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	c := e.loggedIn(author)

	cases := map[string]url.Values{
		"no title":     {"title": {""}, "text": {"x"}, "slug": {"a"}},
		"no text":      {"title": {"x"}, "text": {" "}, "slug": {"b"}},
		"long title":   {"title": {strings.Repeat("я", entity.TitleMaxLength+1)}, "text": {"x"}, "slug": {"c"}},
		"bad slug":     {"title": {"x"}, "text": {"x"}, "slug": {"слаг"}},
		"long slug":    {"title": {"x"}, "text": {"x"}, "slug": {strings.Repeat("s", entity.SlugMaxLength+1)}},
		"no slug left": {"title": {"!!!"}, "text": {"x"}, "slug": {""}},
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			rec := c.post(e.url(web.RouteAdd), form)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `class="error"`)
		})
	}

	assert.Equal(t, 0, e.countNotes(author))
}

func TestEmptySlugIsDerivedFromTitle(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")

	rec := e.loggedIn(author).post(e.url(web.RouteAdd), url.Values{
		"title": {"Заголовок для пустого slug"},
		"text":  {"Текст заметки"},
		"slug":  {""},
	})
	require.Equal(t, http.StatusFound, rec.Code)

	list, err := e.notes.ListNotes(context.Background(), author.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "zagolovok-dlya-pustogo-slug", list[0].Slug)
}

func TestNotUniqueSlug(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	n := e.note(author, "Заголовок", "Текст", "test-slug")

	rec := e.loggedIn(author).post(e.url(web.RouteAdd), url.Values{
		"title": {"Заголовок"},
		"text":  {"Текст заметки"},
		"slug":  {n.Slug},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), n.Slug+" - такой slug уже существует, придумайте уникальное значение!")
	assert.Equal(t, 1, e.countNotes(author))
}

func TestNotUniqueDerivedSlug(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	e.note(author, "Заголовок", "Текст", "zagolovok")

	rec := e.loggedIn(author).post(e.url(web.RouteAdd), url.Values{
		"title": {"Заголовок"},
		"text":  {"Другой текст"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "zagolovok - такой slug уже существует")
}

func TestAuthorCanEditNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	n := e.note(author, "Заголовок", "Текст", "test-slug")

	rec := e.loggedIn(author).post(e.url(web.RouteEdit, n.Slug), newNoteForm)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.url(web.RouteSuccess), rec.Header().Get("Location"))

	updated, err := e.notes.GetNote(context.Background(), author.ID, "new-slug")
	require.NoError(t, err)
	assert.Equal(t, n.ID, updated.ID)
	assert.Equal(t, author.ID, updated.AuthorID)
	assert.Equal(t, "Новый заголовок", updated.Title)
	assert.Equal(t, "Новый текст", updated.Text)
	assert.Equal(t, 1, e.countNotes(author))
}

func TestOtherUserCantEditNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	reader := e.user("Читатель")
	n := e.note(author, "Заголовок", "Текст", "test-slug")

	rec := e.loggedIn(reader).post(e.url(web.RouteEdit, n.Slug), newNoteForm)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	got, err := e.notes.GetNote(context.Background(), author.ID, n.Slug)
	require.NoError(t, err)
	assert.Equal(t, n.Title, got.Title)
	assert.Equal(t, n.Text, got.Text)
	assert.Equal(t, n.Slug, got.Slug)
}

func TestOtherUserGetsNotFoundBeforeValidation(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	reader := e.user("Читатель")
	n := e.note(author, "Заголовок", "Текст", "test-slug")

	rec := e.loggedIn(reader).post(e.url(web.RouteEdit, n.Slug), url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditDuplicateSlug(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	reader := e.user("Читатель")
	e.note(reader, "Чужая", "Текст", "taken")
	n := e.note(author, "Моя", "Текст", "mine")

	rec := e.loggedIn(author).post(e.url(web.RouteEdit, n.Slug), url.Values{
		"title": {"Моя"},
		"text":  {"Текст"},
		"slug":  {"taken"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "taken - такой slug уже существует, придумайте уникальное значение!")

	got, err := e.notes.GetNote(context.Background(), author.ID, "mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Slug)
}

func TestAuthorCanDeleteNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	n := e.note(author, "Заголовок", "Текст", "test-slug")

	rec := e.loggedIn(author).post(e.url(web.RouteDelete, n.Slug), url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, e.url(web.RouteSuccess), rec.Header().Get("Location"))
	assert.Equal(t, 0, e.countNotes(author))
}

func TestOtherUserCantDeleteNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	reader := e.user("Читатель")
	n := e.note(author, "Заголовок", "Текст", "test-slug")

	rec := e.loggedIn(reader).post(e.url(web.RouteDelete, n.Slug), url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, e.countNotes(author))
}

func TestDetailShowsNote(t *testing.T) {
	e := newEnv(t)
	author := e.user("Автор")
	n := e.note(author, "Заголовок", "Текст заметки", "test-slug")

	rec := e.loggedIn(author).get(e.url(web.RouteDetail, n.Slug))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Текст заметки")
	assert.Contains(t, body, e.url(web.RouteEdit, n.Slug))
	assert.Contains(t, body, e.url(web.RouteDelete, n.Slug))
}
