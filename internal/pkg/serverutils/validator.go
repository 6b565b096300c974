package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"realtime-chat-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into the
// InvalidInput kind so they never reach the store.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperror.InvalidInput("validation failed: " + strings.Join(fields, ", "))
		}
		return apperror.InvalidInput("validation failed")
	}
	return nil
}
