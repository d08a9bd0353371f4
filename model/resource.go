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

// Package model holds the bun models persisted by the service.
package model

import (
	"time"

	"github.com/tomoncle/resource-api/database"
	"github.com/uptrace/bun"
)

// SoftDeleteColumn flags logically removed rows.
const SoftDeleteColumn = "is_deleted"

// Resource is the single entity managed by the API.
type Resource struct {
	bun.BaseModel `bun:"table:resources,alias:r" swaggerignore:"true" json:"-"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id" example:"1"`
	Name        string    `bun:"name,type:varchar(100),notnull" json:"name" example:"Resource Name"`
	Description *string   `bun:"description,type:varchar(255)" json:"description" example:"This is a description of the resource."`
	IsDeleted   bool      `bun:"is_deleted,notnull,default:false" json:"isDeleted" example:"false"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt" example:"2023-01-01T00:00:00Z"`
}

// sortableColumns maps client-facing field names to columns.
var sortableColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
	"createdAt":   "created_at",
}

// SortColumn resolves a client sort field to its column.
func SortColumn(field string) (string, bool) {
	col, ok := sortableColumns[field]
	return col, ok
}

// SortFields lists the accepted client sort field names.
func SortFields() []string {
	return []string{"id", "name", "description", "createdAt"}
}

func init() {
	database.RegisteredModel(database.NewModelAdapter((*Resource)(nil), 1))
}
