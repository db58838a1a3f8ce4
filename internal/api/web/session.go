package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Dmitry-Bulhin/ya-note/internal/ctxtr"
	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

const (
	sessionName   = "notes_session"
	sessionUserID = "user_id"
	sessionMaxAge = 14 * 24 * 60 * 60
)

// authenticate puts the user from the session cookie into the request
// context. Broken cookies and deleted users leave the request anonymous.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		sess, err := s.store.Get(req, sessionName)
		if err != nil {
			slogx.Debug(req.Context(), "drop invalid session", slogx.Err(err))
			return next(c)
		}

		id, ok := sess.Values[sessionUserID].(int64)
		if !ok {
			return next(c)
		}

		user, err := s.users.GetUser(req.Context(), id)
		if err != nil {
			if errors.Is(err, entity.ErrUserNotFound) {
				return next(c)
			}
			return fmt.Errorf("load session user: %w", err)
		}

		ctx := ctxtr.WithUser(req.Context(), user)
		ctx = slogx.ContextWithAttrs(ctx, slogx.UserId(user.ID))
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}

func (s *Server) loginRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := ctxtr.User(c.Request().Context()); ok {
			return next(c)
		}

		return c.Redirect(http.StatusFound, s.loginURL(c.Request().URL.RequestURI()))
	}
}

func (s *Server) loginURL(next string) string {
	return s.Reverse(RouteLogin) + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func (s *Server) startSession(c echo.Context, user entity.User) error {
	sess, _ := s.store.Get(c.Request(), sessionName)
	sess.Values[sessionUserID] = user.ID

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *Server) endSession(c echo.Context) error {
	sess, _ := s.store.Get(c.Request(), sessionName)
	delete(sess.Values, sessionUserID)
	sess.Options.MaxAge = -1

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	c.SetRequest(c.Request().WithContext(ctxtr.WithoutUser(c.Request().Context())))

	return nil
}

// safeNext returns next when it is a path on this site, "" otherwise.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}

	return next
}

func userID(c echo.Context) int64 {
	id, _ := ctxtr.UserID(c.Request().Context())
	return id
}
