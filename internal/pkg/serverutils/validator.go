package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-assistant-be/pkg/fault"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a bound request body and
// flattens failures into a single readable input fault.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var messages []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
		}
		return fault.New(fault.Input, strings.Join(messages, "; "))
	}
	return nil
}
