package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goserg/storeserver/internal/normalize"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegistration checks every registration rule and reports all
// violations at once.
func ValidateRegistration(name, email, password, passwordConfirm string) error {
	var errs []error
	if strings.TrimSpace(name) == "" {
		errs = append(errs, errors.New("you must supply a name"))
	}
	if !emailRegexp.MatchString(normalize.Email(email)) {
		errs = append(errs, errors.New("that email is not valid"))
	}
	if password == "" {
		errs = append(errs, errors.New("password cannot be blank"))
	}
	if passwordConfirm == "" {
		errs = append(errs, errors.New("confirmed password cannot be blank"))
	}
	if passwordConfirm != "" && password != passwordConfirm {
		errs = append(errs, ErrPasswordMismatch)
	}
	return errors.Join(errs...)
}
