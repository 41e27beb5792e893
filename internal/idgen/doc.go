// Package idgen wraps the random sources used for identifiers and session
// names so that they can be stubbed in tests. It lives under `internal`
// because callers should treat the generated values as opaque.
package idgen
