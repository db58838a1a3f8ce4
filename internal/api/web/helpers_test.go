package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dmitry-Bulhin/ya-note/internal/api/web"
	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite/sqlitetest"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/notes"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/users"
)

const testPassword = "password-123"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type env struct {
	t     *testing.T
	srv   *web.Server
	repo  *sqlite.Repo
	notes *notes.Usecase
	users *users.Usecase
}

func newEnv(t *testing.T, opts ...web.OptOptionsSetter) *env {
	t.Helper()

	db, repo := sqlitetest.New(t)

	notesUC, err := notes.New(notes.NewOptions(repo, db))
	require.NoError(t, err)

	usersUC, err := users.New(users.NewOptions(repo, users.WithHashCost(bcrypt.MinCost)))
	require.NoError(t, err)

	opts = append([]web.OptOptionsSetter{web.WithCsrf(false)}, opts...)
	srv, err := web.New(web.NewOptions(notesUC, usersUC, testSecret, opts...))
	require.NoError(t, err)

	return &env{t: t, srv: srv, repo: repo, notes: notesUC, users: usersUC}
}

func (e *env) user(name string) entity.User {
	e.t.Helper()

	u, err := e.users.Signup(context.Background(), name, testPassword)
	require.NoError(e.t, err)

	return u
}

func (e *env) note(author entity.User, title, text, slug string) entity.Note {
	e.t.Helper()

	n, err := e.notes.CreateNote(context.Background(), author.ID, entity.NoteInput{Title: title, Text: text, Slug: slug})
	require.NoError(e.t, err)

	return n
}

func (e *env) countNotes(authors ...entity.User) int {
	e.t.Helper()

	total := 0
	for _, a := range authors {
		list, err := e.notes.ListNotes(context.Background(), a.ID)
		require.NoError(e.t, err)
		total += len(list)
	}

	return total
}

func (e *env) url(name string, params ...any) string {
	return e.srv.Reverse(name, params...)
}

// client keeps cookies between requests like a browser does.
type client struct {
	e       *env
	cookies map[string]*http.Cookie
}

func (e *env) anonymous() *client {
	return &client{e: e, cookies: map[string]*http.Cookie{}}
}

func (e *env) loggedIn(u entity.User) *client {
	e.t.Helper()

	c := e.anonymous()
	rec := c.post(e.url(web.RouteLogin), url.Values{"username": {u.Username}, "password": {testPassword}})
	require.Equal(e.t, http.StatusFound, rec.Code, rec.Body.String())

	return c
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.e.srv.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}

	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}
