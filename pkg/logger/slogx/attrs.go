package slogx

import (
	"context"
	"log/slog"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "<nil>")
	}

	return slog.String("err", err.Error())
}

func UserId(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

func NoteSlug(slug string) slog.Attr {
	return slog.String("note_slug", slug)
}

func RequestId(id string) slog.Attr {
	return slog.String("request_id", id)
}

type attrsCtxKey struct{}

// ContextWithAttrs returns ctx carrying attrs that every log call made with it
// will include.
func ContextWithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing := attrsFromContext(ctx)

	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)

	return context.WithValue(ctx, attrsCtxKey{}, merged)
}

func attrsFromContext(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsCtxKey{}).([]slog.Attr)
	return attrs
}
