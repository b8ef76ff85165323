// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	cacheSync              *prometheus.HistogramVec

	registerer prometheus.Registerer
	logger     logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(m.withService(tags)).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencyAvailability.With(m.withService(tags)).Set(value)

	return nil
}

// SetCacheSyncMetric observes the number of attempts a profile cache reconciliation took,
// labelled by outcome.
func (m *Monitor) SetCacheSyncMetric(tags map[string]string, value float64) error {
	if m.cacheSync == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.cacheSync.With(m.withService(tags)).Observe(value)

	return nil
}

func (m *Monitor) withService(tags map[string]string) prometheus.Labels {
	labels := prometheus.Labels{"service": m.service}
	for k, v := range tags {
		labels[k] = v
	}
	return labels
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status", "service"},
	)

	m.cacheSync = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_profile_cache_sync_attempts",
			Help:    "attempts needed to converge the profile cache with memberships",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
		[]string{"outcome", "service"},
	)

	for _, c := range []prometheus.Collector{m.responseTime, m.cacheSync} {
		if err := m.registerer.Register(c); err != nil {
			m.logger.Debugf("metric already registered: %v", err)
		}
	}
}

func (m *Monitor) registerGauges() {
	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	)

	if err := m.registerer.Register(m.dependencyAvailability); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

// NewMonitor registers the service collectors on the default prometheus registry.
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	return newMonitor(service, prometheus.DefaultRegisterer, logger)
}

func newMonitor(service string, registerer prometheus.Registerer, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.registerer = registerer
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()

	return m
}
