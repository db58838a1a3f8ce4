package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

type usersRepository interface {
	CreateUser(ctx context.Context, username string, passwordHash []byte) (entity.User, error)
	GetUserByID(ctx context.Context, id int64) (entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (entity.User, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo     usersRepository `option:"mandatory" validate:"required"`
	hashCost int             `default:"10" validate:"min=4,max=31"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate users usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

// ValidateUsername accepts 1 to 150 letters, digits and the characters
// "_.@+-".
func ValidateUsername(username string) error {
	if username == "" || utf8.RuneCountInString(username) > entity.UsernameMaxLength || !usernameRe.MatchString(username) {
		return entity.ErrInvalidUsername
	}

	return nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < entity.PasswordMinLength {
		return entity.ErrWeakPassword
	}

	return nil
}

func (u *Usecase) Signup(ctx context.Context, username, password string) (entity.User, error) {
	if err := ValidateUsername(username); err != nil {
		return entity.User{}, fmt.Errorf("usecase signup: %w", err)
	}
	if err := ValidatePassword(password); err != nil {
		return entity.User{}, fmt.Errorf("usecase signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.hashCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("usecase signup: hash password: %w", err)
	}

	user, err := u.repo.CreateUser(ctx, username, hash)
	if err != nil {
		return entity.User{}, fmt.Errorf("usecase signup: %w", err)
	}

	slogx.Info(ctx, "success to sign up", slogx.UserId(user.ID))
	return user, nil
}

// Authenticate returns entity.ErrInvalidCredentials for both an unknown
// username and a wrong password.
func (u *Usecase) Authenticate(ctx context.Context, username, password string) (entity.User, error) {
	user, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return entity.User{}, entity.ErrInvalidCredentials
		}
		return entity.User{}, fmt.Errorf("usecase authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return entity.User{}, entity.ErrInvalidCredentials
		}
		return entity.User{}, fmt.Errorf("usecase authenticate: compare password: %w", err)
	}

	return user, nil
}

func (u *Usecase) GetUser(ctx context.Context, id int64) (entity.User, error) {
	user, err := u.repo.GetUserByID(ctx, id)
	if err != nil {
		return entity.User{}, fmt.Errorf("usecase get user: %w", err)
	}

	return user, nil
}
