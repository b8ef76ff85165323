// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/metrics"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/status"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/webhooks"
)

// Dependencies groups what the HTTP surface is built from.
type Dependencies struct {
	Garages  garage.ServiceInterface
	Users    garage.UserCacheInterface
	Webhooks webhooks.ServiceInterface

	// Authenticate guards the garage API and must put the user ID on the request context.
	Authenticate func(http.Handler) http.Handler

	// Probes are pinged by the readiness endpoint.
	Probes map[string]status.DependencyInterface
}

func NewRouter(
	deps Dependencies,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		logging.RequestLogger(logger),
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(deps.Probes, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(deps.Webhooks, logger).RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		if deps.Authenticate != nil {
			r.Use(deps.Authenticate)
		}

		garage.NewAPI(deps.Garages, deps.Users, tracer, monitor, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
