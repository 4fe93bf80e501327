package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var messageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
}

var messageWithParam = map[string]string{
	"gte": "%s must be greater than or equal to %s",
	"lte": "%s must be less than or equal to %s",
	"gt":  "%s must be greater than %s",
	"lt":  "%s must be less than %s",
}

// FromValidation translates validator errors into a 400 ApiErr listing every
// violation. It returns nil when err does not carry validator errors.
func FromValidation(err error) *ApiErr {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil
	}

	violations := make([]Violation, len(verrs))
	messages := make([]string, len(verrs))
	for i, fe := range verrs {
		violations[i] = Violation{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translate(fe),
		}
		messages[i] = violations[i].Message
	}

	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    strings.Join(messages, "; "),
		Field:      violations[0].Field,
		Cause:      err,
		Violations: violations,
	}
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if template, ok := messageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := messageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind().String() == "string"
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
