// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/version"
)

const (
	okValue     = "ok"
	failedValue = "unavailable"

	pingTimeout = 2 * time.Second
)

type Status struct {
	Status       string            `json:"status"`
	BuildInfo    *BuildInfo        `json:"buildInfo,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type BuildInfo struct {
	Version string `json:"version"`
}

type API struct {
	dependencies map[string]DependencyInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/status/ready", a.ready)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	a.write(w, http.StatusOK, Status{Status: okValue, BuildInfo: &BuildInfo{Version: version.Version}})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	status := Status{Status: okValue, Dependencies: make(map[string]string, len(a.dependencies))}
	code := http.StatusOK

	names := make([]string, 0, len(a.dependencies))
	for name := range a.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		available := a.ping(ctx, name)

		value := 0.0
		status.Dependencies[name] = failedValue
		if available {
			value = 1.0
			status.Dependencies[name] = okValue
		} else {
			status.Status = failedValue
			code = http.StatusServiceUnavailable
		}

		if err := a.monitor.SetDependencyAvailability(map[string]string{"component": name}, value); err != nil {
			a.logger.Debugf("error when setting dependency availability metric: %s", err)
		}
	}

	a.write(w, code, status)
}

func (a *API) ping(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.dependencies[name].Ping(ctx); err != nil {
		a.logger.Warnf("dependency %s is unavailable: %v", name, err)
		return false
	}

	return true
}

func (a *API) write(w http.ResponseWriter, code int, status Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(status); err != nil {
		a.logger.Errorf("failed to encode status response: %v", err)
	}
}

func NewAPI(dependencies map[string]DependencyInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		dependencies: dependencies,
		tracer:       tracer,
		monitor:      monitor,
		logger:       logger,
	}
}
