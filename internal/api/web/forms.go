package web

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/internal/slugify"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/notes"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/users"
)

const (
	msgRequired        = "Обязательное поле."
	msgSlugInvalid     = "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса."
	msgUsernameInvalid = "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	msgUsernameTaken   = "Пользователь с таким именем уже существует."
	msgPasswordShort   = "Введённый пароль слишком короткий. Он должен содержать как минимум 8 символов."
	msgPasswordsDiffer = "Введенные пароли не совпадают."
	msgBadCredentials  = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."
)

// nonField collects errors that belong to the form as a whole.
const nonField = "form"

type fieldErrors map[string][]string

func (e fieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func tooLong(max, got int) string {
	return fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов (сейчас %d).", max, got)
}

type noteForm struct {
	Title  string
	Text   string
	Slug   string
	Errors fieldErrors
}

func parseNoteForm(c echo.Context) noteForm {
	return noteForm{
		Title:  strings.TrimSpace(c.FormValue("title")),
		Text:   strings.TrimSpace(c.FormValue("text")),
		Slug:   strings.TrimSpace(c.FormValue("slug")),
		Errors: fieldErrors{},
	}
}

func noteFormFrom(n entity.Note) noteForm {
	return noteForm{Title: n.Title, Text: n.Text, Slug: n.Slug}
}

func (f noteForm) valid() bool {
	if f.Title == "" {
		f.Errors.add("title", msgRequired)
	} else if n := utf8.RuneCountInString(f.Title); n > entity.TitleMaxLength {
		f.Errors.add("title", tooLong(entity.TitleMaxLength, n))
	}

	if f.Text == "" {
		f.Errors.add("text", msgRequired)
	}

	if f.Slug != "" {
		if n := utf8.RuneCountInString(f.Slug); n > entity.SlugMaxLength {
			f.Errors.add("slug", tooLong(entity.SlugMaxLength, n))
		}
		if !slugify.IsValid(f.Slug) {
			f.Errors.add("slug", msgSlugInvalid)
		}
	}

	return len(f.Errors) == 0
}

func (f noteForm) input() entity.NoteInput {
	return entity.NoteInput{Title: f.Title, Text: f.Text, Slug: f.Slug}
}

// reject turns a usecase error into a form error. It reports false for
// errors the form cannot explain.
func (f noteForm) reject(err error) bool {
	switch {
	case errors.Is(err, entity.ErrSlugExists):
		f.Errors.add("slug", notes.SlugWarning(notes.ResolveSlug(f.Slug, f.Title)))
	case errors.Is(err, entity.ErrSlugRequired):
		f.Errors.add("slug", msgRequired)
	default:
		return false
	}

	return true
}

type accountForm struct {
	Username string
	Next     string
	Errors   fieldErrors
}

func (f accountForm) validSignup(password, confirmation string) bool {
	switch {
	case f.Username == "":
		f.Errors.add("username", msgRequired)
	case utf8.RuneCountInString(f.Username) > entity.UsernameMaxLength:
		f.Errors.add("username", tooLong(entity.UsernameMaxLength, utf8.RuneCountInString(f.Username)))
	case users.ValidateUsername(f.Username) != nil:
		f.Errors.add("username", msgUsernameInvalid)
	}

	switch {
	case password == "":
		f.Errors.add("password1", msgRequired)
	case users.ValidatePassword(password) != nil:
		f.Errors.add("password1", msgPasswordShort)
	}

	if confirmation == "" {
		f.Errors.add("password2", msgRequired)
	} else if password != "" && password != confirmation {
		f.Errors.add("password2", msgPasswordsDiffer)
	}

	return len(f.Errors) == 0
}
