package cli

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// loginForm is the input of the login view.
type loginForm struct {
	Email    string
	Password []byte
}

// Validate checks the form before anything is sent to the backend.
func (f loginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

// registerForm is the input of the register view.
type registerForm struct {
	Email    string
	Username string
	Password []byte
}

func (f registerForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&f.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Password, validation.Required),
	)
}
