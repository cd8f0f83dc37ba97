// Package helper provides shared testing infrastructure: a slog handler spy, metrics and tracing
// collector spies, and an in-memory SQLite rule database seeded with a small, known rule graph.
package helper
