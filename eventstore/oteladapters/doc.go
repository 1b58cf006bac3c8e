// Package oteladapters implements the eventstore observability ports on top of OpenTelemetry.
//
//   - MetricsCollector: histograms, counters and gauges created lazily per metric name
//   - TracingCollector: spans on an OTel tracer
//   - SlogBridgeLogger: slog routed through the OTel log bridge, trace-correlated
//   - OTelLogger: direct use of the OTel log API
package oteladapters
