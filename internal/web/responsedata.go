package web

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goserg/storeserver/auth/users"
	"github.com/goserg/storeserver/internal/web/webpath"
)

type data struct {
	Title  string
	Path   map[string]string
	User   users.User
	Flash  string
	Errors []string
	Data   map[string]any
}

func newData(title string) data {
	return data{
		Title: title,
		Path:  webpath.Path(),
		Data:  make(map[string]any),
	}
}

func (m data) WithUser(user users.User) data {
	m.User = user
	return m
}

func (m data) With(key string, value any) data {
	if m.Data == nil {
		m.Data = make(map[string]any)
	}
	m.Data[key] = value
	return m
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}

func (m data) WithErrors(err error) data {
	for _, err := range unwrap(err) {
		m.Errors = append(m.Errors, err.Error())
	}
	return m
}

const flashCookie = "flash"

// flash survives exactly one redirect.
func setFlash(ctx *fiber.Ctx, msg string) {
	ctx.Cookie(&fiber.Cookie{
		Name:    flashCookie,
		Value:   url.QueryEscape(msg),
		Expires: time.Now().Add(time.Minute),
	})
}

func (m data) WithFlash(ctx *fiber.Ctx) data {
	raw := ctx.Cookies(flashCookie)
	if raw == "" {
		return m
	}
	ctx.ClearCookie(flashCookie)
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return m
	}
	m.Flash = msg
	return m
}
