package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) home(c echo.Context) error {
	return s.render(c, http.StatusOK, "home.html", page{})
}

func (s *Server) success(c echo.Context) error {
	return s.render(c, http.StatusOK, "success.html", page{})
}

func (s *Server) listNotes(c echo.Context) error {
	list, err := s.notes.ListNotes(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}

	return s.render(c, http.StatusOK, "list.html", page{Notes: list})
}

func (s *Server) noteDetail(c echo.Context) error {
	note, err := s.notes.GetNote(c.Request().Context(), userID(c), c.Param("slug"))
	if err != nil {
		return err
	}

	return s.render(c, http.StatusOK, "detail.html", page{Note: &note})
}

func (s *Server) addNote(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return s.render(c, http.StatusOK, "form.html", page{Form: noteForm{}})
	}

	form := parseNoteForm(c)
	if !form.valid() {
		return s.render(c, http.StatusOK, "form.html", page{Form: form})
	}

	if _, err := s.notes.CreateNote(c.Request().Context(), userID(c), form.input()); err != nil {
		if form.reject(err) {
			return s.render(c, http.StatusOK, "form.html", page{Form: form})
		}
		return err
	}

	return c.Redirect(http.StatusFound, s.Reverse(RouteSuccess))
}

func (s *Server) editNote(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	note, err := s.notes.GetNote(ctx, userID(c), slug)
	if err != nil {
		return err
	}

	if c.Request().Method != http.MethodPost {
		return s.render(c, http.StatusOK, "form.html", page{Note: &note, Form: noteFormFrom(note)})
	}

	form := parseNoteForm(c)
	if !form.valid() {
		return s.render(c, http.StatusOK, "form.html", page{Note: &note, Form: form})
	}

	if _, err := s.notes.UpdateNote(ctx, userID(c), slug, form.input()); err != nil {
		if form.reject(err) {
			return s.render(c, http.StatusOK, "form.html", page{Note: &note, Form: form})
		}
		return err
	}

	return c.Redirect(http.StatusFound, s.Reverse(RouteSuccess))
}

func (s *Server) deleteNote(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	if c.Request().Method != http.MethodPost {
		note, err := s.notes.GetNote(ctx, userID(c), slug)
		if err != nil {
			return err
		}

		return s.render(c, http.StatusOK, "delete.html", page{Note: &note})
	}

	if err := s.notes.DeleteNote(ctx, userID(c), slug); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, s.Reverse(RouteSuccess))
}
