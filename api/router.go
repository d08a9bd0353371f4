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

// Package api exposes the resource operations over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/tomoncle/resource-api/api/middleware"
	"github.com/tomoncle/resource-api/config"
	"github.com/tomoncle/resource-api/docs"
	"github.com/tomoncle/resource-api/metrics"
)

type Handlers struct {
	Health   *HealthHandler
	Resource *ResourceHandler
}

// NewRouter mounts the resource routes under cfg.Server.BasePath together
// with docs, health and metrics endpoints.
func NewRouter(cfg *config.Config, log *logrus.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteJSON(w, http.StatusNotFound, MessageResponse{Message: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteJSON(w, http.StatusMethodNotAllowed, MessageResponse{Message: "method not allowed"})
	})

	// API documentation
	docs.SwaggerInfo.BasePath = cfg.Server.BasePath
	docsPath := cfg.Server.DocsPath
	r.Get(docsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPath+"/index.html", http.StatusMovedPermanently)
	})
	r.Get(docsPath+"/*", httpSwagger.Handler(httpSwagger.URL(docsPath+"/doc.json")))

	r.Get("/healthz", h.Health.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route(cfg.Server.BasePath, func(r chi.Router) {
		r.Get("/", h.Resource.List)
		r.Post("/", h.Resource.Create)
		r.Get("/{id}", h.Resource.Get)
		r.Put("/{id}", h.Resource.Update)
		r.Delete("/{id}", h.Resource.Delete)
	})

	return r
}
