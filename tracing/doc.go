// Package tracing integrates OpenTelemetry with the lineage packages to
// record identifier derivations as spans.  All instrumentation is kept in a
// separate package; without Init every span is a no-op.
package tracing
