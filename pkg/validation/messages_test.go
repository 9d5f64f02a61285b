package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"max=3"`
}

func TestMessages(t *testing.T) {
	err := validator.New().Struct(sample{Email: "nope", Password: "abc", Name: "toolong"})

	msgs := Messages(err)
	assert.ElementsMatch(t, []string{
		"email must be a valid email address",
		"password must be at least 6 characters",
		"name must be at most 3 characters",
	}, msgs)
}

func TestMessages_NonValidationError(t *testing.T) {
	assert.Equal(t, []string{"request body is not valid JSON"}, Messages(errors.New("unexpected EOF")))
}
