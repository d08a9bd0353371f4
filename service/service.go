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

// Package service implements the resource operations on top of the generic
// repository.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tomoncle/resource-api/database"
	"github.com/tomoncle/resource-api/repository"
	"github.com/tomoncle/resource-api/types"
	"github.com/uptrace/bun"
)

// maxReadRetries bounds the extra attempts made for a failed read.
const maxReadRetries = 2

// Service exposes entity operations with errors already translated into
// ErrNotFound or *PersistenceError.
type Service[T any] interface {
	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id any) (*T, error)

	// List returns entities matching the request.
	List(ctx context.Context, req *types.ListRequest) ([]*T, error)

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// Update writes the named columns of an existing entity.
	Update(ctx context.Context, model *T, columns ...string) error

	// Delete removes an entity by its identifier.
	Delete(ctx context.Context, id any) error

	// SelectBuilder returns a Bun select query builder for the entity.
	SelectBuilder() *bun.SelectQuery
}

type baseServiceImpl[T any] struct {
	// fixed is set by NewServiceWithRepository and bypasses the global handle.
	fixed   repository.Repository[T]
	opts    []repository.Option
	backoff func() backoff.BackOff

	mu   sync.Mutex
	db   *bun.DB
	repo repository.Repository[T]
}

// NewService returns a Service bound to the global database connection. The
// handle is resolved on every call, so a reconnect is picked up.
func NewService[T any](opts ...repository.Option) Service[T] {
	return &baseServiceImpl[T]{opts: opts, backoff: defaultBackOff}
}

// NewServiceWithRepository returns a Service over an explicit repository.
func NewServiceWithRepository[T any](repo repository.Repository[T]) Service[T] {
	return &baseServiceImpl[T]{fixed: repo, backoff: defaultBackOff}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	return backoff.WithMaxRetries(b, maxReadRetries)
}

func (s *baseServiceImpl[T]) baseRepo() repository.Repository[T] {
	if s.fixed != nil {
		return s.fixed
	}
	db := database.GetDB()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo == nil || s.db != db {
		s.repo = repository.NewRepository[T](db, s.opts...)
		s.db = db
	}
	return s.repo
}

// retryRead runs an idempotent read, retrying transient failures only.
func retryRead[R any](ctx context.Context, newBackOff func() backoff.BackOff, fn func() (R, error)) (R, error) {
	return backoff.RetryWithData[R](func() (R, error) {
		res, err := fn()
		if err != nil && !isTransient(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, backoff.WithContext(newBackOff(), ctx))
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	entity, err := retryRead(ctx, s.backoff, func() (*T, error) {
		return s.baseRepo().GetOne(ctx, id)
	})
	if err != nil {
		return nil, translate(OpGet, err)
	}
	return entity, nil
}

func (s *baseServiceImpl[T]) List(ctx context.Context, req *types.ListRequest) ([]*T, error) {
	entities, err := retryRead(ctx, s.backoff, func() ([]*T, error) {
		return s.baseRepo().List(ctx, req)
	})
	if err != nil {
		return nil, translate(OpList, err)
	}
	return entities, nil
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, model ...*T) error {
	return translate(OpCreate, s.baseRepo().Create(ctx, model...))
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, model *T, columns ...string) error {
	return translate(OpUpdate, s.baseRepo().Update(ctx, model, columns...))
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, id any) error {
	return translate(OpDelete, s.baseRepo().Delete(ctx, id))
}

func (s *baseServiceImpl[T]) SelectBuilder() *bun.SelectQuery {
	return s.baseRepo().NewSelect()
}
