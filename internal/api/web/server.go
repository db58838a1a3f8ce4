// Package web serves the HTML interface: notes CRUD and accounts.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

type notesUsecase interface {
	CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error)
	ListNotes(ctx context.Context, authorID int64) ([]entity.Note, error)
	GetNote(ctx context.Context, authorID int64, slug string) (entity.Note, error)
	UpdateNote(ctx context.Context, authorID int64, slug string, in entity.NoteInput) (entity.Note, error)
	DeleteNote(ctx context.Context, authorID int64, slug string) error
}

type usersUsecase interface {
	Signup(ctx context.Context, username, password string) (entity.User, error)
	Authenticate(ctx context.Context, username, password string) (entity.User, error)
	GetUser(ctx context.Context, id int64) (entity.User, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=server_options.gen.go -from-struct=Options
type Options struct {
	notes         notesUsecase `option:"mandatory" validate:"required"`
	users         usersUsecase `option:"mandatory" validate:"required"`
	sessionSecret []byte       `option:"mandatory" validate:"required,min=16"`

	csrf         bool `default:"true"`
	secureCookie bool
	registry     *prometheus.Registry
}

type Server struct {
	Options
	e       *echo.Echo
	store   *sessions.CookieStore
	metrics *metrics
}

func New(opts Options) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate web server options: %v", err)
	}

	if opts.registry == nil {
		opts.registry = newRegistry()
	}

	store := sessions.NewCookieStore(opts.sessionSecret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   opts.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		Options: opts,
		e:       echo.New(),
		store:   store,
		metrics: newMetrics(opts.registry),
	}

	renderer, err := newRenderer(template.FuncMap{"url": s.Reverse})
	if err != nil {
		return nil, fmt.Errorf("init templates: %v", err)
	}

	s.e.Renderer = renderer
	s.e.HTTPErrorHandler = s.handleError
	s.e.HideBanner = true
	s.e.HidePort = true

	s.middlewares()
	s.routes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Reverse builds the path of a named route.
func (s *Server) Reverse(name string, params ...any) string {
	return s.e.Reverse(name, params...)
}
