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
	"context"
	"net/http"

	"github.com/tomoncle/resource-api/database"
)

// HealthHandler reports database connectivity.
type HealthHandler struct {
	check func(ctx context.Context) *database.HealthStatus
}

// NewHealthHandler uses check, or the global database when check is nil.
func NewHealthHandler(check func(ctx context.Context) *database.HealthStatus) *HealthHandler {
	if check == nil {
		check = database.GetHealthStatus
	}
	return &HealthHandler{check: check}
}

// Health writes the database health status, with 503 when unhealthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.check(r.Context())
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	_ = WriteJSON(w, code, status)
}
