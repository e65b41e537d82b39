package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names the way clients sent them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// translate turns validator failures into domain validation errors. Only the
// first failure is reported; clients fix one thing at a time anyway.
func translate(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return domain.ErrInvalidJSON(err)
	}
	fe := errs[0]
	if fe.Tag() == "required" {
		return domain.ErrMissingField(fe.Field())
	}
	return domain.ErrInvalidField(fe.Field(), "must satisfy "+fe.Tag())
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	return translate(validate.Struct(r))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return translate(validate.Struct(r))
}

// UpdateProfileRequest carries partial updates; empty fields keep current
// values. Changing the password requires the old one.
type UpdateProfileRequest struct {
	Username    string `json:"username" validate:"omitempty,max=64"`
	Email       string `json:"email" validate:"omitempty,email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (r *UpdateProfileRequest) Validate() error {
	return translate(validate.Struct(r))
}

type AdminUpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (r *AdminUpdateUserRequest) Validate() error {
	return translate(validate.Struct(r))
}
