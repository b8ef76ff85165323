// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"
)

func TestNoopTracerStart(t *testing.T) {
	tracer := NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "garage.Service.ResolveActiveGarage")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected a context")
	}
	if span.SpanContext().IsValid() {
		t.Error("noop tracer should not produce a valid span context")
	}
}

func TestNewTracerDisabled(t *testing.T) {
	tracer := NewTracer(NewNoopConfig())

	_, span := tracer.Start(context.Background(), "test")
	span.End()
}
