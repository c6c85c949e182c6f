package client

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Field-shape validation lives here; the lifecycle re-checks the permission
// invariants independently - form validation and business rules are
// different concerns.

var validate = validator.New()

var (
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasLower = regexp.MustCompile(`[a-z]`)
	hasDigit = regexp.MustCompile(`[0-9]`)
)

type RegisterForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	FullName string `validate:"required"`
}

func ValidateRegisterForm(form RegisterForm) error {
	if err := validate.Struct(form); err != nil {
		return asValidationError(err)
	}
	return validatePasswordComposition(form.Password)
}

func ValidateLoginForm(email, password string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return &ValidationError{Field: "email", Reason: "invalid email address"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "password is required"}
	}
	return nil
}

func ValidateInvitationForm(form InvitationForm) error {
	if err := validate.Struct(form); err != nil {
		return asValidationError(err)
	}
	if form.Reviewer == form.Owner {
		return &ValidationError{Field: "reviewer", Reason: "owner cannot invite themselves"}
	}
	return nil
}

func validatePasswordComposition(password string) error {
	if !hasUpper.MatchString(password) {
		return &ValidationError{Field: "password", Reason: "must contain at least one uppercase letter"}
	}
	if !hasLower.MatchString(password) {
		return &ValidationError{Field: "password", Reason: "must contain at least one lowercase letter"}
	}
	if !hasDigit.MatchString(password) {
		return &ValidationError{Field: "password", Reason: "must contain at least one number"}
	}
	return nil
}

func asValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &ValidationError{Field: errs[0].Field(), Reason: "failed " + errs[0].Tag() + " validation"}
	}
	return err
}
