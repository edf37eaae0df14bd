package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the validator behind gin binding: errors carry JSON field names and
// a few aliases used by request structs are registered.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register applies the field naming and aliases to v. Init calls it for gin's engine.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("isodate", "datetime=2006-01-02")
	v.RegisterAlias("pwd", "min=6")
	v.RegisterAlias("id", "gt=0")
}

// ToDetails converts binding errors into a map[field]message for the error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be a " + ute.Type.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = Message(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

var fixedMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"isodate":  "must be a date in format YYYY-MM-DD",
	"pwd":      "min length 6",
	"id":       "must be a positive id",
	"numeric":  "must be numeric",
	"number":   "must be a valid number",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
	"boolean":  "must be a boolean value",
	"alpha":    "must contain alphabetic characters only",
	"alphanum": "must contain alphanumeric characters only",
}

var paramMessages = map[string]string{
	"datetime":         "must match datetime format: %s",
	"eq":               "must be equal to %s",
	"ne":               "must not be equal to %s",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"lt":               "must be less than %s",
	"lte":              "must be less than or equal to %s",
	"eqfield":          "must be equal to %s field",
	"gtfield":          "must be greater than %s field",
	"ltfield":          "must be less than %s field",
	"required_with":    "is required when %s is present",
	"required_without": "is required when %s is not present",
}

// Message renders a single field error as a short human readable phrase.
func Message(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()

	if msg, ok := fixedMessages[tag]; ok {
		return msg
	}
	if tpl, ok := paramMessages[tag]; ok && param != "" {
		return fmt.Sprintf(tpl, param)
	}

	switch tag {
	case "len":
		return "must be exactly " + param + " characters long"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	}

	if param != "" {
		return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
	}
	return fmt.Sprintf("validation failed for '%s'", tag)
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
