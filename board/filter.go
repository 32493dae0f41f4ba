package board

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// DefaultAllowedText accepts ASCII letters, digits, whitespace and the marks
// . , ! ? and nothing else. Whitespace covers the Unicode space separators,
// the line/paragraph separators and U+FEFF as well as the ASCII controls.
var DefaultAllowedText = regexp.MustCompile(`^[A-Za-z0-9\p{Zs}\t\n\v\f\r\x{2028}\x{2029}\x{feff}.,!?]*$`)

const textTag = "boardtext"

// newValidator returns a validator whose boardtext tag checks against pattern.
func newValidator(pattern *regexp.Regexp) *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(textTag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering %s validation: %s", textTag, err))
	}
	return v
}

// validate maps validator failures onto the board's error kinds. Missing
// fields take precedence over forbidden content.
func validate(v *validator.Validate, c NewComment) error {
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validating comment: %w", err)
	}

	var missing []string
	forbidden := false
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, jsonName(fe.Field()))
		case textTag:
			forbidden = true
		}
	}

	if len(missing) > 0 {
		return MissingFieldError{Fields: missing}
	}
	if forbidden {
		return ErrForbiddenContent
	}
	return fmt.Errorf("validating comment: %w", err)
}

func jsonName(field string) string {
	switch field {
	case "Username":
		return "username"
	case "City":
		return "city"
	case "Language":
		return "language"
	case "Text":
		return "text"
	}
	return field
}
