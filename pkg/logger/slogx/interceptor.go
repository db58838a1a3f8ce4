package slogx

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"
)

func LoggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	start := time.Now()
	logger := Default()

	method := slog.String("method", info.FullMethod)
	logger.Debug(ctx, "start handling grpc method", method)

	resp, err = handler(ctx, req)

	durAttr := slog.Duration("duration", time.Since(start))
	if err != nil {
		logger.Error(
			ctx,
			"finish with error",
			method,
			durAttr,
			Err(err),
		)
	} else {
		logger.Debug(ctx, "finish success", method, durAttr)
	}

	return
}

// EchoMiddleware logs one line per HTTP request. The request id set by the
// RequestID middleware is attached to the request context so that logs
// written by handlers carry it too.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			ctx := req.Context()
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				ctx = ContextWithAttrs(ctx, RequestId(id))
				c.SetRequest(req.WithContext(ctx))
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Int("status", c.Response().Status),
				slog.Duration("duration", time.Since(start)),
			}

			level := slog.LevelInfo
			if err != nil {
				attrs = append(attrs, Err(err))
				level = slog.LevelWarn
			}
			if c.Response().Status >= 500 {
				level = slog.LevelError
			}

			Log(ctx, level, "handle http request", attrs...)

			return nil
		}
	}
}
