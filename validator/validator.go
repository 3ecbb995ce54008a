package validator

import (
	"fmt"
	"reflect"
	"strings"

	"roomkeeper/errors"
	"roomkeeper/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(jsonFieldName)
	// request DTOs are checked by gin's engine, give it the same names
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		engine.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports fields under their JSON name (price_day, not PriceDay).
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// ValidateClient validate thông tin client
func ValidateClient(client *models.Client) error {
	if err := validate.Struct(client); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, Message(err), err)
	}
	return nil
}

// ValidateRoom validate thông tin phòng
func ValidateRoom(room *models.Room) error {
	if err := validate.Struct(room); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, Message(err), err)
	}
	if !room.HasCapacity(len(room.Clients)) {
		return errors.ErrCapacityExceeded
	}
	return nil
}

// Message turns validator output into a one-line, client facing message.
func Message(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
