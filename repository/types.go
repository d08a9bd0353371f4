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

package repository

import (
	"context"

	"github.com/tomoncle/resource-api/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
// Lookups, updates and deletes of missing rows return sql.ErrNoRows.
type CrudRepository[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)

	Create(ctx context.Context, entity ...*T) error

	// Update writes the given columns, or every non-pk column when none are
	// named, of the row matching the entity's primary key.
	Update(ctx context.Context, entity *T, columns ...string) error

	Delete(ctx context.Context, id any) error
}

// ListQueryRepository lists entities through a ListRequest.
type ListQueryRepository[T any] interface {
	List(ctx context.Context, req *types.ListRequest) ([]*T, error)
}

// Repository combines CRUD and list operations and exposes a Bun select
// builder that already carries the soft-delete predicate.
type Repository[T any] interface {
	CrudRepository[T]
	ListQueryRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
}

// Option configures a repository.
type Option func(*options)

type options struct {
	softDeleteColumn string
}

// WithSoftDelete makes Delete flip column to true and hides flagged rows
// from every other operation.
func WithSoftDelete(column string) Option {
	return func(o *options) {
		o.softDeleteColumn = column
	}
}
