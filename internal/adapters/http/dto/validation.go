package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrBinding    = errors.New("binding failed")
)

// Validator is shared by every request DTO. Field errors are named after
// the json tag, or the form tag for query parameters.
var Validator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
})

// Validate checks v's validate tags. Failures wrap ErrValidation.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes a JSON body into v, then validates it.
func BindAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindJSON, v)
}

// BindQueryAndValidate decodes query parameters into v, then validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindQuery, v)
}

func bindThenValidate(bind func(any) error, v any) error {
	if err := bind(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

var tagMessages = map[string]string{
	"required": "this field is required",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
}

// ValidationErrors lists a message per failing field. Errors that did not
// come from the validator yield an empty map.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out
	}

	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		switch {
		case !ok:
			msg = "failed validation: " + fe.Tag()
		case strings.Contains(msg, "%s"):
			msg = fmt.Sprintf(msg, fe.Param())
		}

		out[fe.Field()] = msg
	}

	return out
}
