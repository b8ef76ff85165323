// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTraceable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/api/v0/status", want: false},
		{path: "/api/v0/metrics", want: false},
		{path: "/api/v0/garage/members", want: true},
		{path: "/webhooks/registration", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if got := traceable(r); got != tt.want {
				t.Errorf("traceable(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
