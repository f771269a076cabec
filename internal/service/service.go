// Package service holds the use cases behind the HTTP API. Every operation is
// scoped to the authenticated user's family; repositories never see a query
// that is not.
package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// Error kinds. Use errors.Is against these; the concrete *Error carries the
// client-facing message.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)

// Error is a failure the client can act on.
type Error struct {
	Kind    error
	Message string
	// Field names the offending input field for validation errors.
	Field string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func invalid(field, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func unavailable(format string, args ...any) error {
	return &Error{Kind: ErrUnavailable, Message: fmt.Sprintf(format, args...)}
}

// fromRepo maps repository sentinels onto service errors for the named resource.
func fromRepo(err error, resource string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound("%s not found", resource)
	case errors.Is(err, repository.ErrConflict):
		return conflict("%s already exists", resource)
	}
	return err
}

// familyOf returns the caller's family or a forbidden error.
func familyOf(u *model.User) (string, error) {
	if u == nil || u.FamilyID == "" {
		return "", forbidden("user is not a member of a family")
	}
	return u.FamilyID, nil
}

// Clock returns the current instant in the application timezone.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) today() model.Date { return model.DateOf(c()) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates struct tags and reports the first failure as an *Error.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("", "invalid input")
	}
	fe := fieldErrs[0]
	return invalid(fe.Field(), "%s", fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "email":
		return name + " must be a valid email address"
	case "uuid":
		return name + " must be a valid id"
	case "e164":
		return name + " must be an E.164 phone number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", name, fe.Param())
	}
	return name + " is invalid"
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Page is 1-based pagination input.
type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p Page) query() repository.PageQuery {
	return repository.PageQuery{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit}
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
