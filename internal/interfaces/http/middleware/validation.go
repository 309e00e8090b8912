package middleware

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/retailpos/backend/internal/domain/refund"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

var setupOnce sync.Once

// SetupValidator registers the refund tags on gin's validator and reports fields by JSON name.
// Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("refund_method", func(fl validator.FieldLevel) bool {
			return refund.Method(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("item_condition", func(fl validator.FieldLevel) bool {
			return refund.ItemCondition(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("refund_state", func(fl validator.FieldLevel) bool {
			return refund.State(fl.Field().String()).IsValid()
		})
	})
}

// ValidationDetails converts binding errors into per-field details; nil when err is not a validation error
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "refund_method":
		return "Must be one of: cash, card, store_credit, original_payment_method, bank_transfer"
	case "item_condition":
		return "Must be one of: unworn, like_new, worn, damaged, defective"
	case "refund_state":
		return "Unknown refund state"
	default:
		return "Invalid value"
	}
}
