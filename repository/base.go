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
	"database/sql"
	"math"

	"github.com/tomoncle/resource-api/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type baseRepositoryImpl[T any] struct {
	db         *bun.DB
	softDelete string
}

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB, opts ...Option) Repository[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &baseRepositoryImpl[T]{db: db, softDelete: o.softDeleteColumn}
}

// ExcludeDeleted returns the predicate hiding rows whose column is true.
// An empty column yields a no-op.
func ExcludeDeleted(column string) func(bun.QueryBuilder) bun.QueryBuilder {
	return func(q bun.QueryBuilder) bun.QueryBuilder {
		if column == "" {
			return q
		}
		return q.Where("? = ?", bun.Ident(column), false)
	}
}

func (r *baseRepositoryImpl[T]) notDeleted() func(bun.QueryBuilder) bun.QueryBuilder {
	return ExcludeDeleted(r.softDelete)
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery {
	return r.db.NewSelect().Model((*T)(nil)).ApplyQueryBuilder(r.notDeleted())
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.NewSelect().
		Model(&entity).
		Where("id = ?", id).
		ApplyQueryBuilder(r.notDeleted()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, req *types.ListRequest) ([]*T, error) {
	if req == nil {
		req = types.NewListRequest()
	}
	entities := make([]*T, 0)
	limit, hasLimit := req.GetLimit()
	if hasLimit && limit == 0 {
		return entities, nil
	}

	query := r.db.NewSelect().Model(&entities).ApplyQueryBuilder(r.notDeleted())
	for _, filter := range req.GetFilters() {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if orders := req.GetOrders(); len(orders) > 0 {
		query = query.Order(orders...)
	}
	offset, hasOffset := req.GetOffset()
	if hasOffset {
		query = query.Offset(offset)
	}
	if hasLimit {
		query = query.Limit(limit)
	} else if hasOffset && offset > 0 {
		// mysql and sqlite reject OFFSET without LIMIT
		query = query.Limit(math.MaxInt32)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	if len(entity) == 1 {
		_, err := r.db.NewInsert().Model(entity[0]).Exec(ctx)
		return err
	}
	_, err := r.db.NewInsert().Model(&entity).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T, columns ...string) error {
	query := r.db.NewUpdate().
		Model(entity).
		WherePK().
		ApplyQueryBuilder(r.notDeleted())
	if len(columns) > 0 {
		query = query.Column(columns...)
	} else {
		query = query.OmitZero()
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) error {
	var entity T
	if r.softDelete == "" {
		res, err := r.db.NewDelete().Model(&entity).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		return requireAffected(res)
	}
	res, err := r.db.NewUpdate().
		Model(&entity).
		Set("? = ?", bun.Ident(r.softDelete), true).
		Where("id = ?", id).
		ApplyQueryBuilder(r.notDeleted()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
