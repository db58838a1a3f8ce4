package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

func (s *Server) login(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		form := accountForm{Next: safeNext(c.QueryParam("next"))}
		return s.render(c, http.StatusOK, "login.html", page{Form: form})
	}

	form := accountForm{
		Username: strings.TrimSpace(c.FormValue("username")),
		Next:     safeNext(c.FormValue("next")),
		Errors:   fieldErrors{},
	}
	password := c.FormValue("password")

	if form.Username == "" {
		form.Errors.add("username", msgRequired)
	}
	if password == "" {
		form.Errors.add("password", msgRequired)
	}
	if len(form.Errors) > 0 {
		return s.render(c, http.StatusOK, "login.html", page{Form: form})
	}

	user, err := s.users.Authenticate(c.Request().Context(), form.Username, password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			form.Errors.add(nonField, msgBadCredentials)
			return s.render(c, http.StatusOK, "login.html", page{Form: form})
		}
		return err
	}

	if err := s.startSession(c, user); err != nil {
		return err
	}

	target := form.Next
	if target == "" {
		target = s.Reverse(RouteList)
	}

	return c.Redirect(http.StatusFound, target)
}

func (s *Server) logout(c echo.Context) error {
	if err := s.endSession(c); err != nil {
		return err
	}

	return s.render(c, http.StatusOK, "logged_out.html", page{})
}

func (s *Server) signup(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return s.render(c, http.StatusOK, "signup.html", page{Form: accountForm{}})
	}

	form := accountForm{
		Username: strings.TrimSpace(c.FormValue("username")),
		Errors:   fieldErrors{},
	}
	password := c.FormValue("password1")

	if !form.validSignup(password, c.FormValue("password2")) {
		return s.render(c, http.StatusOK, "signup.html", page{Form: form})
	}

	if _, err := s.users.Signup(c.Request().Context(), form.Username, password); err != nil {
		if errors.Is(err, entity.ErrUserExists) {
			form.Errors.add("username", msgUsernameTaken)
			return s.render(c, http.StatusOK, "signup.html", page{Form: form})
		}
		return err
	}

	return c.Redirect(http.StatusFound, s.Reverse(RouteLogin))
}
