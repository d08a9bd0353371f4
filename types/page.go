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

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// ListRequest describes the filters, ordering and window of a list query.
// A nil offset or limit leaves that side of the window unbounded.
type ListRequest struct {
	filters []*QueryFilter
	orders  []string // "created_at DESC", "id DESC"
	offset  *int
	limit   *int
}

// NewListRequest returns an unfiltered, unordered and unbounded request.
func NewListRequest() *ListRequest {
	return &ListRequest{filters: make([]*QueryFilter, 0), orders: make([]string, 0)}
}

// WithFilter adds a filter; filters are combined with AND.
func (r *ListRequest) WithFilter(filter *QueryFilter) *ListRequest {
	if filter != nil {
		r.filters = append(r.filters, filter)
	}
	return r
}

func (r *ListRequest) WithOrders(orders ...string) *ListRequest {
	r.orders = append(r.orders, orders...)
	return r
}

func (r *ListRequest) WithOffset(offset int) *ListRequest {
	r.offset = &offset
	return r
}

func (r *ListRequest) WithLimit(limit int) *ListRequest {
	r.limit = &limit
	return r
}

func (r *ListRequest) GetFilters() []*QueryFilter {
	return r.filters
}

func (r *ListRequest) GetOrders() []string {
	return r.orders
}

// GetOffset reports the offset and whether one was set.
func (r *ListRequest) GetOffset() (int, bool) {
	if r.offset == nil {
		return 0, false
	}
	return *r.offset, true
}

// GetLimit reports the limit and whether one was set.
func (r *ListRequest) GetLimit() (int, bool) {
	if r.limit == nil {
		return 0, false
	}
	return *r.limit, true
}
