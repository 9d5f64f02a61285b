package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var customMessages = map[string]map[string]string{
	"Email": {
		"required": "email is required",
		"email":    "email must be a valid email address",
		"max":      "email is too long",
	},
	"Password": {
		"required": "password is required",
		"min":      "password must be at least 6 characters",
		"max":      "password must be at most 72 characters",
	},
	"ProfileImageURL": {
		"url": "profileImageUrl must be a valid URL",
	},
}

// CustomMessage returns the per-tag overrides for a struct field, or nil.
func CustomMessage(field string) map[string]string {
	return customMessages[field]
}

func DefaultMessage(field, tag, param string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "boolean":
		return fmt.Sprintf("%s must be true or false", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, tag)
	}
}

// Messages turns a validator error into client-facing strings. Errors that
// are not validation failures yield a single generic message.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"request body is not valid JSON"}
	}

	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if fieldMessages := CustomMessage(e.Field()); fieldMessages != nil {
			if msg, ok := fieldMessages[e.Tag()]; ok {
				out = append(out, msg)
				continue
			}
		}
		out = append(out, DefaultMessage(e.Field(), e.Tag(), e.Param()))
	}
	return out
}
