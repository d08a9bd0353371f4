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

package validation

import (
	"net/url"
	"strconv"
	"strings"
)

// ListQuery holds the accepted list parameters. Nil fields were not supplied.
type ListQuery struct {
	Take       *int    `json:"take" validate:"omitempty,min=0"`
	Skip       *int    `json:"skip" validate:"omitempty,min=0"`
	Search     *string `json:"search"`
	ColumnSort *string `json:"columnSort" validate:"omitempty,sortcolumn"`
	ValueSort  *string `json:"valueSort" validate:"omitempty,oneof=asc desc"`
}

// ResourceBody is the create and update payload.
type ResourceBody struct {
	Name        string  `json:"name" validate:"required,max=100" example:"Resource Name"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255" example:"This is a description of the resource."`
}

// ParseListQuery reads list parameters from a URL query and validates them.
// Empty values count as absent.
func (v *Validator) ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{}
	var bad []FieldError

	parseInt := func(name string) *int {
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			bad = append(bad, FieldError{Field: name, Tag: "int", Value: raw, Message: msgForTag(name, "int", "")})
			return nil
		}
		return &n
	}
	optional := func(name string) *string {
		if raw := values.Get(name); raw != "" {
			return &raw
		}
		return nil
	}

	q.Take = parseInt("take")
	q.Skip = parseInt("skip")
	q.Search = optional("search")
	q.ColumnSort = optional("columnSort")
	q.ValueSort = optional("valueSort")

	if err := v.Struct(q); err != nil {
		verr, ok := err.(*Error)
		if !ok {
			return nil, err
		}
		bad = append(bad, verr.Fields...)
	}
	if len(bad) > 0 {
		return nil, newError(bad...)
	}
	return q, nil
}

// ParseID validates a path id and converts it to a positive integer.
func (v *Validator) ParseID(raw string) (int64, error) {
	if err := v.Var("id", raw, "required,number"); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, newError(FieldError{Field: "id", Tag: "gt", Value: raw, Message: msgForTag("id", "gt", "0")})
	}
	return id, nil
}
