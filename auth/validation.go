package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/pocket-auth-server/internal/errors"
)

// Validator checks caller input before anything leaves the process. URI syntax
// is left to Pocket.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) ValidateRedirectURI(redirectURI string) error {
	if err := v.validate.Var(redirectURI, "required"); err != nil {
		return fmt.Errorf("redirect_uri: %w", apperrors.ErrMissingField)
	}
	return nil
}

func (v *Validator) ValidateRequestToken(requestToken string) error {
	if err := v.validate.Var(requestToken, "required"); err != nil {
		return fmt.Errorf("request_token: %w", apperrors.ErrMissingField)
	}
	return nil
}

// ValidateStruct applies `validate` tags.
func (v *Validator) ValidateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}
	return nil
}
