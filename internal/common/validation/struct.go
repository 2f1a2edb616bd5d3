// internal/common/validation/struct.go
package validation

import (
	"fmt"
	"strings"
	"sync"

	"career-workers/internal/common/grading"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce    sync.Once
	structValidator *validator.Validate
)

// Validator returns the shared struct validator with the "grade" tag
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
			return grading.Known(fl.Field().String())
		})
		structValidator = v
	})
	return structValidator
}

// Struct validates s and flattens field errors into one message.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
