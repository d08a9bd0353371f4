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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/resource-api/config"
	"github.com/tomoncle/resource-api/database"
	"github.com/tomoncle/resource-api/model"
	"github.com/tomoncle/resource-api/repository"
	"github.com/tomoncle/resource-api/service"
	"github.com/tomoncle/resource-api/validation"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRouter(t *testing.T, svc ResourceService) http.Handler {
	t.Helper()
	h := &Handlers{
		Health: NewHealthHandler(func(ctx context.Context) *database.HealthStatus {
			return &database.HealthStatus{Healthy: true, Connected: true}
		}),
		Resource: NewResourceHandler(svc, quietLogger(), validation.New()),
	}
	return NewRouter(config.Default(), quietLogger(), h)
}

func newSQLiteRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	cfg := database.DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.HealthCheckInterval = 0
	dm := database.NewDatabaseManager(cfg)
	require.NoError(t, dm.Connect(ctx))
	t.Cleanup(func() { _ = dm.Disconnect() })
	require.NoError(t, dm.RunMigrations(ctx))

	repo := repository.NewRepository[model.Resource](dm.GetDB(), repository.WithSoftDelete(model.SoftDeleteColumn))
	svc := service.NewResourceServiceWith(service.NewServiceWithRepository[model.Resource](repo), nil)
	return newTestRouter(t, svc)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestResourceLifecycle(t *testing.T) {
	h := newSQLiteRouter(t)

	rec := do(t, h, http.MethodPost, "/api/resources", `{"name":"Alpha","description":"first one"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Resource](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Alpha", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "first one", *created.Description)
	assert.False(t, created.IsDeleted)
	assert.False(t, created.CreatedAt.IsZero())

	path := fmt.Sprintf("/api/resources/%d", created.ID)
	rec = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[model.Resource](t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Description, fetched.Description)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))

	rec = do(t, h, http.MethodPut, path, `{"name":"Alpha 2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Resource](t, rec)
	assert.Equal(t, "Alpha 2", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "first one", *updated.Description)

	rec = do(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Resource deleted successfully"}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Resource not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, path, `{"name":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/resources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListQueryParameters(t *testing.T) {
	h := newSQLiteRouter(t)
	for _, name := range []string{"apple", "Banana", "cherry", "Pineapple", "date"} {
		rec := do(t, h, http.MethodPost, "/api/resources", fmt.Sprintf(`{"name":%q}`, name))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	names := func(rec *httptest.ResponseRecorder) []string {
		items := decode[[]model.Resource](t, rec)
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Name)
		}
		return out
	}

	rec := do(t, h, http.MethodGet, "/api/resources?columnSort=name&valueSort=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Banana", "Pineapple", "apple", "cherry", "date"}, names(rec))

	rec = do(t, h, http.MethodGet, "/api/resources?columnSort=id&valueSort=asc&take=2&skip=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Banana", "cherry"}, names(rec))

	rec = do(t, h, http.MethodGet, "/api/resources?search=APPLE&columnSort=id&valueSort=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"apple", "Pineapple"}, names(rec))

	rec = do(t, h, http.MethodGet, "/api/resources?take=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestValidationFailures(t *testing.T) {
	h := newSQLiteRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{"empty name", http.MethodPost, "/api/resources", `{"name":""}`, "name"},
		{"missing name", http.MethodPost, "/api/resources", `{}`, "name"},
		{"long name", http.MethodPost, "/api/resources", fmt.Sprintf(`{"name":%q}`, strings.Repeat("n", 101)), "name"},
		{"long description", http.MethodPost, "/api/resources", fmt.Sprintf(`{"name":"ok","description":%q}`, strings.Repeat("d", 256)), "description"},
		{"bad take", http.MethodGet, "/api/resources?take=abc", "", "take"},
		{"negative skip", http.MethodGet, "/api/resources?skip=-1", "", "skip"},
		{"unknown sort column", http.MethodGet, "/api/resources?columnSort=password&valueSort=asc", "", "columnSort"},
		{"bad sort direction", http.MethodGet, "/api/resources?columnSort=name&valueSort=up", "", "valueSort"},
		{"non numeric id", http.MethodGet, "/api/resources/abc", "", "id"},
		{"zero id", http.MethodDelete, "/api/resources/0", "", "id"},
		{"update long name", http.MethodPut, "/api/resources/1", fmt.Sprintf(`{"name":%q}`, strings.Repeat("n", 101)), "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			resp := decode[ErrorResponse](t, rec)
			assert.Equal(t, "Validation failed", resp.Message)
			require.NotEmpty(t, resp.Errors)
			assert.Equal(t, tt.field, resp.Errors[0].Field)
			assert.NotEmpty(t, resp.Errors[0].Message)
		})
	}
}

func TestValidationMessages(t *testing.T) {
	h := newSQLiteRouter(t)
	rec := do(t, h, http.MethodPost, "/api/resources", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Name is required", resp.Errors[0].Message)
}

func TestMalformedBody(t *testing.T) {
	h := newSQLiteRouter(t)
	rec := do(t, h, http.MethodPost, "/api/resources", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/resources/1", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())

	for _, body := range []string{`{"name":"a"} junk`, `{"name":"a"}{"name":"b"}`, `{"name":"a"}}`} {
		rec = do(t, h, http.MethodPost, "/api/resources", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/resources", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/resources", "{\"name\":\"a\"}\n\t ")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUpdateWithNullDescriptionKeepsStoredValue(t *testing.T) {
	h := newSQLiteRouter(t)
	rec := do(t, h, http.MethodPost, "/api/resources", `{"name":"Alpha","description":"kept"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Resource](t, rec)

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/resources/%d", created.ID), `{"name":"Beta","description":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Resource](t, rec)
	assert.Equal(t, "Beta", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "kept", *updated.Description)
}

type failingService struct {
	err error
}

func (s failingService) Create(ctx context.Context, body validation.ResourceBody) (*model.Resource, error) {
	return nil, s.err
}

func (s failingService) List(ctx context.Context, q *validation.ListQuery) ([]*model.Resource, error) {
	return nil, s.err
}

func (s failingService) Get(ctx context.Context, id int64) (*model.Resource, error) {
	return nil, s.err
}

func (s failingService) Update(ctx context.Context, id int64, body validation.ResourceBody) (*model.Resource, error) {
	return nil, s.err
}

func (s failingService) Delete(ctx context.Context, id int64) error {
	return s.err
}

func TestPersistenceFailuresMapTo500(t *testing.T) {
	svcErr := &service.PersistenceError{Op: service.OpGet, Kind: database.UnknownErr, Err: errors.New("connection refused")}
	h := newTestRouter(t, failingService{err: svcErr})

	tests := []struct {
		method, target, body, message string
	}{
		{http.MethodPost, "/api/resources", `{"name":"x"}`, "Error creating resource"},
		{http.MethodGet, "/api/resources", "", "Error fetching resources"},
		{http.MethodGet, "/api/resources/1", "", "Error fetching resource"},
		{http.MethodPut, "/api/resources/1", `{"name":"x"}`, "Error updating resource"},
		{http.MethodDelete, "/api/resources/1", "", "Error deleting resource"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.message), rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestFromError(t *testing.T) {
	verr := validation.New().Var("id", 0, "gt=0")
	require.Error(t, verr)

	assert.Equal(t, http.StatusBadRequest, FromError(verr, "x").Status)
	assert.Equal(t, http.StatusNotFound, FromError(fmt.Errorf("wrap: %w", service.ErrNotFound), "x").Status)
	assert.Equal(t, http.StatusInternalServerError, FromError(errors.New("boom"), "fallback").Status)
	assert.Equal(t, "fallback", FromError(errors.New("boom"), "fallback").Message)

	bad := BadRequest("Invalid request body", errors.New("eof"))
	assert.Same(t, bad, FromError(bad, "x"))
	assert.Contains(t, bad.Error(), "eof")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestRouter(t, failingService{})

	rec := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"not found"}`, rec.Body.String())

	rec = do(t, h, http.MethodPatch, "/api/resources/1", `{"name":"x"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"method not allowed"}`, rec.Body.String())
}

func TestDocsEndpoint(t *testing.T) {
	h := newTestRouter(t, failingService{})

	rec := do(t, h, http.MethodGet, "/api-docs/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		BasePath string                 `json:"basePath"`
		Paths    map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Resource API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Equal(t, "/api/resources", doc.BasePath)
	assert.Contains(t, doc.Paths, "/")
	assert.Contains(t, doc.Paths, "/{id}")

	rec = do(t, h, http.MethodGet, "/api-docs", "")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/api-docs/index.html", rec.Header().Get("Location"))
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHealthHandler(func(ctx context.Context) *database.HealthStatus {
		return &database.HealthStatus{Healthy: false, LastError: "down"}
	})
	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "down")

	h := newTestRouter(t, failingService{})
	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	status := decode[database.HealthStatus](t, rec)
	assert.True(t, status.Healthy)
}

func TestMetricsAndRequestID(t *testing.T) {
	h := newTestRouter(t, failingService{})

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte("resource_api_http_requests_total")))
}

type panickingService struct{ failingService }

func (panickingService) Get(ctx context.Context, id int64) (*model.Resource, error) {
	panic("unexpected")
}

func TestPanicRecovered(t *testing.T) {
	h := newTestRouter(t, panickingService{})
	rec := do(t, h, http.MethodGet, "/api/resources/7", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
