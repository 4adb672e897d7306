package contact

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the message a visitor composes on the contact page.
type Form struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Message string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Ready reports whether every field has been filled in.
func (f Form) Ready() bool {
	return len(f.Missing()) == 0
}

// Missing lists the blank fields by their form name, in display order.
func (f Form) Missing() []string {
	trimmed := Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"name", "email", "message"}
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return missing
}
