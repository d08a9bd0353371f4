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
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/tomoncle/resource-api/api/middleware"
	"github.com/tomoncle/resource-api/model"
	"github.com/tomoncle/resource-api/service"
	"github.com/tomoncle/resource-api/validation"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")

// ResourceService is the behavior the resource handler depends on.
type ResourceService interface {
	Create(ctx context.Context, body validation.ResourceBody) (*model.Resource, error)
	List(ctx context.Context, q *validation.ListQuery) ([]*model.Resource, error)
	Get(ctx context.Context, id int64) (*model.Resource, error)
	Update(ctx context.Context, id int64, body validation.ResourceBody) (*model.Resource, error)
	Delete(ctx context.Context, id int64) error
}

var _ ResourceService = (*service.ResourceService)(nil)

type ResourceHandler struct {
	service   ResourceService
	logger    *logrus.Logger
	validator *validation.Validator
}

func NewResourceHandler(svc ResourceService, log *logrus.Logger, val *validation.Validator) *ResourceHandler {
	if val == nil {
		val = validation.Default()
	}
	return &ResourceHandler{
		service:   svc,
		logger:    log,
		validator: val,
	}
}

// Create adds a resource
// @Summary Create a new resource
// @Description Add a new resource with a name and an optional description.
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource body validation.ResourceBody true "Resource to create"
// @Success 201 {object} model.Resource "Resource created successfully."
// @Failure 400 {object} api.ErrorResponse "Invalid input."
// @Failure 500 {object} api.ErrorResponse "Internal server error."
// @Router / [post]
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	res, err := h.service.Create(r.Context(), body)
	if err != nil {
		h.fail(w, r, err, "Error creating resource")
		return
	}
	_ = WriteJSON(w, http.StatusCreated, res)
}

// List returns resources that are not deleted
// @Summary List all resources
// @Description Retrieve a list of all resources.
// @Tags Resources
// @Produce json
// @Param take query int false "Number of resources to retrieve."
// @Param skip query int false "Number of resources to skip."
// @Param search query string false "Search term to filter resources."
// @Param columnSort query string false "Field to sort by (id, name, description, createdAt)."
// @Param valueSort query string false "Sort direction (asc, desc)."
// @Success 200 {array} model.Resource "List of resources retrieved successfully."
// @Failure 400 {object} api.ErrorResponse "Invalid query."
// @Failure 500 {object} api.ErrorResponse "Internal server error."
// @Router / [get]
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.validator.ParseListQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err, "Error fetching resources")
		return
	}
	resources, err := h.service.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err, "Error fetching resources")
		return
	}
	_ = WriteJSON(w, http.StatusOK, resources)
}

// Get returns a single resource
// @Summary Get a resource by ID
// @Description Retrieve a single resource by its ID.
// @Tags Resources
// @Produce json
// @Param id path int true "The ID of the resource to retrieve."
// @Success 200 {object} model.Resource "Resource retrieved successfully."
// @Failure 400 {object} api.ErrorResponse "Invalid id."
// @Failure 404 {object} api.ErrorResponse "Resource not found."
// @Failure 500 {object} api.ErrorResponse "Internal server error."
// @Router /{id} [get]
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.validator.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Error fetching resource")
		return
	}
	res, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Error fetching resource")
		return
	}
	_ = WriteJSON(w, http.StatusOK, res)
}

// Update replaces name and description of a resource
// @Summary Update a resource by ID
// @Description Update the details of an existing resource by its ID.
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path int true "The ID of the resource to update."
// @Param resource body validation.ResourceBody true "New resource values"
// @Success 200 {object} model.Resource "Resource updated successfully."
// @Failure 400 {object} api.ErrorResponse "Invalid input."
// @Failure 404 {object} api.ErrorResponse "Resource not found."
// @Failure 500 {object} api.ErrorResponse "Internal server error."
// @Router /{id} [put]
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.validator.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Error updating resource")
		return
	}
	body, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	res, err := h.service.Update(r.Context(), id, body)
	if err != nil {
		h.fail(w, r, err, "Error updating resource")
		return
	}
	_ = WriteJSON(w, http.StatusOK, res)
}

// Delete soft-deletes a resource
// @Summary Delete a resource
// @Description Mark a resource as deleted by setting its isDeleted flag to true.
// @Tags Resources
// @Produce json
// @Param id path int true "The ID of the resource to delete."
// @Success 200 {object} api.MessageResponse "Resource deleted successfully."
// @Failure 400 {object} api.ErrorResponse "Invalid id."
// @Failure 404 {object} api.ErrorResponse "Resource not found."
// @Failure 500 {object} api.ErrorResponse "Internal server error."
// @Router /{id} [delete]
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.validator.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Error deleting resource")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Error deleting resource")
		return
	}
	_ = WriteJSON(w, http.StatusOK, MessageResponse{Message: msgDeleted})
}

func (h *ResourceHandler) decodeBody(w http.ResponseWriter, r *http.Request) (validation.ResourceBody, bool) {
	var body validation.ResourceBody
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		h.fail(w, r, BadRequest(msgInvalidBody, err), msgInvalidBody)
		return body, false
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.fail(w, r, BadRequest(msgInvalidBody, errTrailingData), msgInvalidBody)
		return body, false
	}
	return body, true
}

// fail writes err and logs it. Only server errors are logged at ERROR.
func (h *ResourceHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	appErr := FromError(err, fallback)
	entry := h.logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     appErr.Status,
		"request_id": middleware.GetRequestID(r),
	}).WithError(err)
	if appErr.Status >= http.StatusInternalServerError {
		entry.Error(fallback)
	} else {
		entry.Debug(appErr.Message)
	}
	_ = WriteError(w, appErr)
}
