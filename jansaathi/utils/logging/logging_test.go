package logging

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogDurationCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := RequestLogger
	RequestLogger = zap.New(core)
	defer func() { RequestLogger = prev }()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	LogDuration(ctx, "test_op")()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one timing entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["func"] != "test_op" {
		t.Errorf("unexpected func field: %v", fields["func"])
	}
	if fields["request_id"] != "req-123" {
		t.Errorf("request id from the router middleware must appear in timing logs, got %v", fields["request_id"])
	}
}

func TestLogDurationWithoutRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := RequestLogger
	RequestLogger = zap.New(core)
	defer func() { RequestLogger = prev }()

	LogDuration(context.Background(), "test_op")()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one timing entry, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["request_id"]; ok {
		t.Error("no request id in context, none should be logged")
	}
}
