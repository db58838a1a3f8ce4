package web

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

const (
	RouteHome    = "notes:home"
	RouteList    = "notes:list"
	RouteAdd     = "notes:add"
	RouteDetail  = "notes:detail"
	RouteEdit    = "notes:edit"
	RouteDelete  = "notes:delete"
	RouteSuccess = "notes:success"

	RouteLogin  = "users:login"
	RouteLogout = "users:logout"
	RouteSignup = "users:signup"

	RouteMetrics = "metrics"
)

const csrfContextKey = "csrf"

var getPost = []string{http.MethodGet, http.MethodPost}

func (s *Server) middlewares() {
	s.e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		s.metrics.middleware,
		slogx.EchoMiddleware(),
		middleware.Recover(),
	)

	if s.csrf {
		s.e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:_csrf,header:" + echo.HeaderXCSRFToken,
			ContextKey:     csrfContextKey,
			CookieName:     "csrftoken",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   s.secureCookie,
			CookieSameSite: http.SameSiteLaxMode,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}

	s.e.Use(s.authenticate)
}

func (s *Server) routes() {
	e := s.e
	auth := s.loginRequired

	e.GET("/", s.home).Name = RouteHome
	e.GET("/notes/", s.listNotes, auth).Name = RouteList
	name(e.Match(getPost, "/add/", s.addNote, auth), RouteAdd)
	e.GET("/note/:slug/", s.noteDetail, auth).Name = RouteDetail
	name(e.Match(getPost, "/edit/:slug/", s.editNote, auth), RouteEdit)
	name(e.Match(getPost, "/delete/:slug/", s.deleteNote, auth), RouteDelete)
	e.GET("/done/", s.success, auth).Name = RouteSuccess

	name(e.Match(getPost, "/auth/login/", s.login), RouteLogin)
	name(e.Match(getPost, "/auth/logout/", s.logout), RouteLogout)
	name(e.Match(getPost, "/auth/signup/", s.signup), RouteSignup)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))).Name = RouteMetrics
}

func name(routes []*echo.Route, n string) {
	for _, r := range routes {
		r.Name = n
	}
}
