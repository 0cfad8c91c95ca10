package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestTraceHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTraceHandler(slog.NewTextHandler(&buf, nil))).With(slog.String("component", "test"))

	logger.InfoContext(context.Background(), "no span")
	assert.NotContains(t, buf.String(), "trace_id=")
	assert.Contains(t, buf.String(), "component=test")
	buf.Reset()

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.InfoContext(ctx, "inside span")
	assert.Contains(t, buf.String(), "trace_id="+span.SpanContext().TraceID().String())
	assert.Contains(t, buf.String(), "span_id="+span.SpanContext().SpanID().String())
	assert.Contains(t, buf.String(), "component=test")
}
