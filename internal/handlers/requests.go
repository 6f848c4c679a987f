package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SignUpRequest defines the DTO for the sign-up form.
type SignUpRequest struct {
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

// ResetRequest defines the DTO for the "send me a recovery link" form.
type ResetRequest struct {
	Email string `form:"email" validate:"required,email"`
}

// NewPasswordRequest defines the DTO for the new password form.
type NewPasswordRequest struct {
	Password string `form:"password" validate:"required,min=6"`
}
