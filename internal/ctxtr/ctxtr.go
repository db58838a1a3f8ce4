// Package ctxtr carries the authenticated user through request contexts.
package ctxtr

import (
	"context"
	"errors"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

type ctxKey string

const userKey ctxKey = "user"

var ErrAnonymous = errors.New("anonymous request")

func WithUser(ctx context.Context, user entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func User(ctx context.Context) (entity.User, bool) {
	user, ok := ctx.Value(userKey).(entity.User)
	return user, ok
}

func UserID(ctx context.Context) (int64, error) {
	user, ok := User(ctx)
	if !ok {
		return 0, ErrAnonymous
	}

	return user.ID, nil
}

// WithoutUser hides any user stored in ctx.
func WithoutUser(ctx context.Context) context.Context {
	return context.WithValue(ctx, userKey, nil)
}
