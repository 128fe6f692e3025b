package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates API request models against their `validate`
// struct tags. It adds two rules: "notblank" rejects strings made of
// whitespace only, and "maxbytes=N" limits the UTF-8 length of a string
// (max counts runes).
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a ready-to-use [RequestValidator].
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("maxbytes", maxBytes)

	return &RequestValidator{validate: v}
}

// Validate implements [Validator]. value must be a struct or a pointer to
// one. When fields are given, only those struct fields (by Go name) are
// checked.
func (r *RequestValidator) Validate(ctx context.Context, value any, fields ...string) error {
	if value == nil {
		return ErrUnsupportedType
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrUnsupportedType
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}

	var err error
	if len(fields) > 0 {
		err = r.validate.StructPartialCtx(ctx, value, fields...)
	} else {
		err = r.validate.StructCtx(ctx, value)
	}

	return wrapValidationError(err)
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(messages, "; "))
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}

	return strings.TrimSpace(field.String()) != ""
}

func maxBytes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}

	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(field.String()) <= limit
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}
