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

package types

import "strings"

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// SortDirection is an ORDER BY direction accepted from clients.
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

var _ BaseEnum = SortAsc

var sortDirectionNames = map[SortDirection]string{
	SortAsc:  "asc",
	SortDesc: "desc",
}

// ParseSortDirection accepts exactly "asc" or "desc".
func ParseSortDirection(s string) (SortDirection, bool) {
	for d, name := range sortDirectionNames {
		if name == s {
			return d, true
		}
	}
	return SortDirection(IllegalValue), false
}

func (d SortDirection) IsValid() bool {
	_, ok := sortDirectionNames[d]
	return ok
}

func (d SortDirection) Number() int {
	if !d.IsValid() {
		return IllegalValue
	}
	return int(d)
}

// String returns the wire value, "asc" or "desc".
func (d SortDirection) String() string {
	if name, ok := sortDirectionNames[d]; ok {
		return name
	}
	return IllegalName
}

func (d SortDirection) Desc() string {
	switch d {
	case SortAsc:
		return "ascending"
	case SortDesc:
		return "descending"
	default:
		return IllegalDesc
	}
}

// Name returns the SQL keyword, ASC or DESC.
func (d SortDirection) Name() string {
	if !d.IsValid() {
		return IllegalName
	}
	return strings.ToUpper(d.String())
}
