package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

// handleError renders an error page. Notes that are missing or belong to
// somebody else are both reported as 404.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	switch {
	case errors.Is(err, entity.ErrNoteNotFound):
		code = http.StatusNotFound
		msg = http.StatusText(code)
	case errors.As(err, &he):
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = s.render(c, code, "error.html", page{Status: code, Message: msg})
	}
	if err != nil {
		slogx.Error(c.Request().Context(), "render error page", slogx.Err(err))
	}
}
