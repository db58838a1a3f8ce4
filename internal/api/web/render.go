package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/Dmitry-Bulhin/ya-note/internal/ctxtr"
	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "layout.html"

// page is the data every template receives.
type page struct {
	User *entity.User
	CSRF string

	Notes []entity.Note
	Note  *entity.Note
	Form  any

	Status  int
	Message string
}

// TemplateRenderer executes a page inside the shared layout.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func newRenderer(funcs template.FuncMap) (*TemplateRenderer, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/"+layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %v", err)
	}

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %v", err)
	}

	r := &TemplateRenderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := path.Base(file)
		if name == layoutFile {
			continue
		}

		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %v", name, err)
		}
		if _, err := t.ParseFS(templatesFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %v", name, err)
		}

		r.pages[name] = t
	}

	return r, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func (s *Server) render(c echo.Context, status int, name string, p page) error {
	if user, ok := ctxtr.User(c.Request().Context()); ok {
		p.User = &user
	}
	p.CSRF, _ = c.Get(csrfContextKey).(string)

	return c.Render(status, name, p)
}
