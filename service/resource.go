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

package service

import (
	"context"
	"strings"
	"time"

	"github.com/tomoncle/resource-api/model"
	"github.com/tomoncle/resource-api/repository"
	"github.com/tomoncle/resource-api/types"
	"github.com/tomoncle/resource-api/validation"
)

var defaultOrders = []string{"created_at DESC", "id DESC"}

// ResourceService implements create, list, get, update and soft delete of
// resources. Every input is validated before any storage call.
type ResourceService struct {
	base      Service[model.Resource]
	validator *validation.Validator
	now       func() time.Time
}

// NewResourceService builds the service over the global database.
func NewResourceService(v *validation.Validator) *ResourceService {
	return NewResourceServiceWith(NewService[model.Resource](repository.WithSoftDelete(model.SoftDeleteColumn)), v)
}

// NewResourceServiceWith builds the service over an explicit base service.
func NewResourceServiceWith(base Service[model.Resource], v *validation.Validator) *ResourceService {
	if v == nil {
		v = validation.Default()
	}
	return &ResourceService{base: base, validator: v, now: time.Now}
}

func (s *ResourceService) Create(ctx context.Context, body validation.ResourceBody) (*model.Resource, error) {
	if err := s.validator.Struct(body); err != nil {
		return nil, err
	}
	res := &model.Resource{
		Name:        body.Name,
		Description: body.Description,
		IsDeleted:   false,
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.base.Save(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// List returns non-deleted resources. With no sort given the newest come
// first; take=0 yields an empty result.
func (s *ResourceService) List(ctx context.Context, q *validation.ListQuery) ([]*model.Resource, error) {
	if q == nil {
		q = &validation.ListQuery{}
	}
	if err := s.validator.Struct(q); err != nil {
		return nil, err
	}

	req := types.NewListRequest().WithOrders(orderClauses(q)...)
	if q.Search != nil && *q.Search != "" {
		req.WithFilter(searchFilter(*q.Search))
	}
	if q.Skip != nil {
		req.WithOffset(*q.Skip)
	}
	if q.Take != nil {
		req.WithLimit(*q.Take)
	}
	return s.base.List(ctx, req)
}

func (s *ResourceService) Get(ctx context.Context, id int64) (*model.Resource, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	return s.base.Get(ctx, id)
}

// Update replaces name, and description when one is supplied, of a
// non-deleted resource and returns the stored record.
func (s *ResourceService) Update(ctx context.Context, id int64, body validation.ResourceBody) (*model.Resource, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(body); err != nil {
		return nil, err
	}
	columns := []string{"name"}
	if body.Description != nil {
		columns = append(columns, "description")
	}
	res := &model.Resource{ID: id, Name: body.Name, Description: body.Description}
	if err := s.base.Update(ctx, res, columns...); err != nil {
		return nil, err
	}
	updated, err := s.base.Get(ctx, id)
	if err != nil {
		if pe, ok := err.(*PersistenceError); ok {
			pe.Op = OpUpdate
		}
		return nil, err
	}
	return updated, nil
}

// Delete flags a non-deleted resource as deleted. A second call reports
// ErrNotFound.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	if err := s.checkID(id); err != nil {
		return err
	}
	return s.base.Delete(ctx, id)
}

func (s *ResourceService) checkID(id int64) error {
	return s.validator.Var("id", id, "gt=0")
}

// orderClauses honors the caller's sort only when both column and direction
// are present. id breaks ties so paging is stable.
func orderClauses(q *validation.ListQuery) []string {
	if q.ColumnSort == nil || q.ValueSort == nil {
		return defaultOrders
	}
	column, ok := model.SortColumn(*q.ColumnSort)
	if !ok {
		return defaultOrders
	}
	dir, ok := types.ParseSortDirection(*q.ValueSort)
	if !ok {
		return defaultOrders
	}
	orders := []string{column + " " + dir.Name()}
	if column != "id" {
		orders = append(orders, "id "+dir.Name())
	}
	return orders
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// searchFilter matches name or description containing search, ignoring case.
func searchFilter(search string) *types.QueryFilter {
	pattern := "%" + likeEscaper.Replace(search) + "%"
	return types.NewQueryFilter(
		"(LOWER(name) LIKE LOWER(?) ESCAPE '!' OR LOWER(description) LIKE LOWER(?) ESCAPE '!')",
		pattern, pattern,
	)
}
