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

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomoncle/resource-api/service"
	"github.com/tomoncle/resource-api/validation"
)

const (
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request body"
	msgNotFound         = "Resource not found"
	msgDeleted          = "Resource deleted successfully"
)

// AppError is the error shape written by every handler.
type AppError struct {
	Status   int
	Message  string
	Details  []validation.FieldError
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Internal }

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string                  `json:"message" example:"Resource not found"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// MessageResponse is a plain acknowledgment.
type MessageResponse struct {
	Message string `json:"message" example:"Resource deleted successfully"`
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Internal: err}
}

// FromError maps service errors to an AppError. Anything that is neither a
// validation failure nor a missing record becomes a 500 carrying fallback.
func FromError(err error, fallback string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return &AppError{Status: http.StatusBadRequest, Message: msgValidationFailed, Details: verr.Fields, Internal: err}
	}
	if errors.Is(err, service.ErrNotFound) {
		return &AppError{Status: http.StatusNotFound, Message: msgNotFound, Internal: err}
	}
	return &AppError{Status: http.StatusInternalServerError, Message: fallback, Internal: err}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an AppError. Internal detail is never sent to clients.
func WriteError(w http.ResponseWriter, err *AppError) error {
	return WriteJSON(w, err.Status, ErrorResponse{Message: err.Message, Errors: err.Details})
}
