package resource

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/AnkaaDesign/apiclient/apierr"
)

// Shared validator instance; it caches struct metadata internally.
var payloadValidator = validator.New()

// validatePayload runs the validate tags declared on a payload struct and
// translates violations into a VALIDATION_FAILURE with per-field
// messages. Payloads that are not structs are passed through untouched.
func validatePayload(payload any) error {
	if payload == nil {
		return nil
	}

	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	err := payloadValidator.Struct(v.Interface())
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return fmt.Errorf("resource: validate payload: %w", err)
	}

	fields := make(map[string]string, len(violations))
	for _, violation := range violations {
		fields[violation.Field()] = describeViolation(violation)
	}
	return apierr.Validation("invalid payload", fields)
}

func describeViolation(v validator.FieldError) string {
	if v.Param() != "" {
		return fmt.Sprintf("failed %s=%s validation", v.Tag(), v.Param())
	}
	return fmt.Sprintf("failed %s validation", v.Tag())
}
