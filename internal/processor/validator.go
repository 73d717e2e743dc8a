package processor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"mysterymate/internal/board"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		return board.ValidSquare(fl.Field().String())
	})
	v.RegisterValidation("placement", func(fl validator.FieldLevel) bool {
		_, err := board.ParsePlacement(fl.Field().String())
		return err == nil
	})
	return v
}

// describe renders validation failures as one readable line
func describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	var details strings.Builder
	for _, fe := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required", "required_without":
			details.WriteString(fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "square":
			details.WriteString(fmt.Sprintf("%s must be a square a1-h8, got %q", fe.Field(), fe.Value()))
		case "placement":
			details.WriteString(fmt.Sprintf("%s is not a FEN piece placement", fe.Field()))
		case "nefield":
			details.WriteString(fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param()))
		case "min", "max":
			if fe.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s length must be %s %s", fe.Field(), bound(fe.Tag()), fe.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be %s %s", fe.Field(), bound(fe.Tag()), fe.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return details.String()
}

func bound(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}
