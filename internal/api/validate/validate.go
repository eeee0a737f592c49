// Package validate wraps go-playground/validator for the request DTOs,
// including the custom student-id rule.
package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spectropro/spectro-backend/internal/adminlist"
)

var v = func() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	_ = val.RegisterValidation("studentid", func(fl validator.FieldLevel) bool {
		return adminlist.IsValidFormat(fl.Field().String())
	})
	_ = val.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "user" || s == "researcher"
	})
	return val
}()

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Struct validates a tagged DTO and converts validator errors into the
// field/message list the API returns inline.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errs{{Field: "", Msg: err.Error()}}
	}
	out := make(Errs, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ErrField{Field: strings.ToLower(fe.Field()), Msg: msgFor(fe)})
	}
	return out
}

func msgFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "studentid":
		return "must be in EC/YYYY/XXX format"
	case "role":
		return "must be user or researcher"
	default:
		return "invalid"
	}
}
