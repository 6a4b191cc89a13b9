// Package telemetry provides observability primitives for the histflow library.
//
// # Overview
//
// The telemetry package offers:
//   - Distributed tracing support (OpenTelemetry-compatible interface)
//   - Structured logger construction (zap)
//
// # Tracing
//
// The package provides a Tracer interface compatible with OpenTelemetry:
//
//	// Use the simple tracer for testing
//	tracer := telemetry.NewSimpleTracer()
//	telemetry.SetTracer(tracer)
//
//	// OpenTelemetry adapter (uses global provider)
//	otelTracer := telemetry.NewOTelTracer("histflow")
//	telemetry.SetTracer(otelTracer)
//	// Build with -tags otel to enable the adapter.
//
//	// Start spans
//	ctx, end := telemetry.StartSpan(ctx, telemetry.SpanEmit)
//	defer end(nil) // or end(err) on error
//
// # Logging
//
// Build a structured logger from CLI-style level and format names:
//
//	logger, err := telemetry.NewLogger("info", "json")
//	if err != nil {
//		return err
//	}
//	defer logger.Sync()
//
//	logger.Info("histogram filled",
//		zap.String("name", "likelihood"),
//		zap.Uint64("samples", total),
//	)
package telemetry
