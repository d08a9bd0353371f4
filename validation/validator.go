/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package validation checks inbound query, path and body values before they
// reach the service layer.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tomoncle/resource-api/model"
)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field" example:"name"`
	Tag     string `json:"tag" example:"max"`
	Value   string `json:"value,omitempty" example:""`
	Message string `json:"message" example:"Name must be at most 100 characters"`
}

// Error carries every violated constraint of a single input.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newError(fields ...FieldError) *Error {
	return &Error{Fields: fields}
}

// Validator wraps go-playground validator
type Validator struct {
	validate *validator.Validate
}

// New creates a validator reporting fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("sortcolumn", func(fl validator.FieldLevel) bool {
		_, ok := model.SortColumn(fl.Field().String())
		return ok
	})

	return &Validator{validate: v}
}

// Struct validates i and returns an *Error listing every violation, or nil.
func (v *Validator) Struct(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toFieldError(fe, fe.Field()))
	}
	return newError(fields...)
}

// Var validates a single value reported under name.
func (v *Validator) Var(name string, field interface{}, tag string) error {
	err := v.validate.Var(field, tag)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toFieldError(fe, name))
	}
	return newError(fields...)
}

func toFieldError(fe validator.FieldError, field string) FieldError {
	return FieldError{
		Field:   field,
		Tag:     fe.Tag(),
		Value:   valueString(fe.Value()),
		Message: msgForTag(field, fe.Tag(), fe.Param()),
	}
}

func valueString(v interface{}) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	return fmt.Sprintf("%v", rv.Interface())
}

// fieldMessages overrides msgForTag for the resource body.
var fieldMessages = map[string]string{
	"name.required":   "Name is required",
	"name.max":        "Name must be at most 100 characters",
	"description.max": "Description must be at most 255 characters",
}

// msgForTag returns a human-readable message for a validation tag
func msgForTag(field, tag, param string) string {
	if msg, ok := fieldMessages[field+"."+tag]; ok {
		return msg
	}
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "sortcolumn":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(model.SortFields(), " "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "number", "int":
		return fmt.Sprintf("%s must be an integer", field)
	default:
		return fmt.Sprintf("%s failed validation for tag: %s", field, tag)
	}
}

var (
	globalValidator *Validator
	globalOnce      sync.Once
)

// Default returns the shared validator instance.
func Default() *Validator {
	globalOnce.Do(func() { globalValidator = New() })
	return globalValidator
}
