package service

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const allowedNameExtras = "-._@+"

// Правила длины - в символах (max у validator считает руны),
// как и VARCHAR(256) в схеме.
type userInput struct {
	UserName string `json:"user_name" validate:"required,max=256,username"`
	Email    string `json:"email" validate:"omitempty,max=256,email"`
}

type roleInput struct {
	Name string `json:"role_name" validate:"notblank,max=256"`
}

type claimInput struct {
	Type  string `json:"claim_type" validate:"notblank,max=256"`
	Value string `json:"claim_value" validate:"max=4000"`
}

type loginInput struct {
	LoginProvider string `json:"login_provider" validate:"required,max=128"`
	ProviderKey   string `json:"provider_key" validate:"required,max=128"`
}

type tokenInput struct {
	LoginProvider string `json:"login_provider" validate:"required,max=128"`
	Name          string `json:"name" validate:"required,max=128"`
}

// NewValidator создает validator с правилами identity-схемы:
// username (буквы, цифры и -._@+) и notblank.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// ошибки регистрации возможны только при пустом теге или nil-функции
	_ = v.RegisterValidation("username", isUserName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return v
}

func isUserName(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(allowedNameExtras, r) {
			continue
		}
		return false
	}
	return true
}

// validateStruct переводит ошибки validator в VALIDATION
func validateStruct(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required", "notblank":
			return domain.NewValidationError("%s is required", fe.Field())
		case "max":
			return domain.NewValidationError("%s must be at most %s characters", fe.Field(), fe.Param())
		case "username":
			return domain.NewValidationError("%s %q contains invalid characters", fe.Field(), fe.Value())
		default:
			return domain.NewValidationError("%s is invalid (%s)", fe.Field(), fe.Tag())
		}
	}
	return domain.NewValidationError("%s", err.Error())
}

func validateUser(v *validator.Validate, user *domain.ApplicationUser) error {
	return validateStruct(v, userInput{UserName: user.UserName, Email: user.Email})
}

func validateRoleName(v *validator.Validate, name string) error {
	return validateStruct(v, roleInput{Name: name})
}

func validateClaim(v *validator.Validate, claim domain.Claim) error {
	return validateStruct(v, claimInput{Type: claim.Type, Value: claim.Value})
}
