package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/classifieds/internal/client/pwpolicy"
	"github.com/go-playground/validator"
)

var (
	// ErrInvalidInput wraps every failure of a local check. Such failures
	// are detected before any request is sent.
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("you are not logged in")
	ErrNotAdmin         = errors.New("admin rights required")
	ErrNotHydrated      = errors.New("session is not restored yet")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldLabel)
	return v
}

// fieldLabel names a field by its json tag, or by its Go name in snake case.
func fieldLabel(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name != "" && name != "-" {
		return name
	}
	return snake(f.Name)
}

func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// check validates v against its validate tags.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return invalid(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	counted := fe.Kind() == reflect.Slice

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "eqfield":
		return field + " does not match"
	case "min":
		if counted {
			return fmt.Sprintf("at least %s %s required", fe.Param(), field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if counted {
			return fmt.Sprintf("at most %s %s allowed", fe.Param(), field)
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// checkPassword applies the password policy as a local check.
func checkPassword(p string) error {
	if err := pwpolicy.Validate(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
