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

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/resource-api/database"
)

func TestSortColumn(t *testing.T) {
	col, ok := SortColumn("createdAt")
	assert.True(t, ok)
	assert.Equal(t, "created_at", col)

	for _, f := range SortFields() {
		_, ok := SortColumn(f)
		assert.True(t, ok, f)
	}

	_, ok = SortColumn("created_at")
	assert.False(t, ok)
	_, ok = SortColumn("isDeleted")
	assert.False(t, ok)
	_, ok = SortColumn("name; DROP TABLE resources")
	assert.False(t, ok)
}

func TestResourceJSON(t *testing.T) {
	r := Resource{ID: 7, Name: "n", CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"n","description":null,"isDeleted":false,"createdAt":"2024-05-01T10:00:00Z"}`, string(b))
}

func TestResourceIsRegistered(t *testing.T) {
	found := false
	for _, m := range database.RegisteredModelInstances() {
		if _, ok := m.(*Resource); ok {
			found = true
		}
	}
	assert.True(t, found)
}
