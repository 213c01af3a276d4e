// Package validation checks form input before any request leaves the client, using validator/v10.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/storefront/storefront-admin/internal/errors"
)

// Message is the summary carried by every validation error.
const Message = "اطلاعات وارد شده معتبر نیست."

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			// Client-only fields still report in camelCase.
			return strings.ToLower(fld.Name[:1]) + fld.Name[1:]
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct. Failures are VALIDATION errors whose Details
// map each JSON field name to a localized message.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "validation could not run")
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails(Message, fieldErrors)
}

// FieldErrors returns the per-field messages of a validation error, or nil.
func FieldErrors(err error) map[string]string {
	var coded *domainerrors.Error
	if !errors.As(err, &coded) || coded.Code != domainerrors.CodeValidation {
		return nil
	}
	fields, _ := coded.Details.(map[string]string)
	return fields
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "این فیلد الزامی است."
	case "email":
		return "ایمیل باید یک آدرس ایمیل معتبر باشد"
	case "min":
		return fmt.Sprintf("باید حداقل %s کاراکتر باشد.", e.Param())
	case "max":
		return fmt.Sprintf("نباید بیشتر از %s کاراکتر باشد.", e.Param())
	case "eqfield":
		return "کلمه عبور و تایید کلمه عبور یکسان نیستند."
	case "gt", "gte":
		return "مقدار باید بزرگ‌تر از " + e.Param() + " باشد."
	case "hexcolor", "iscolor":
		return "رنگ معتبر نیست."
	default:
		return "مقدار نامعتبر است."
	}
}
