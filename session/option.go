package session

import "github.com/viant/lineage/id"

// Option configures a Session.
type Option func(s *Session)

// WithGenerator sets the task identifier generator
func WithGenerator(generator *id.Generator) Option {
	return func(s *Session) {
		s.generator = generator
	}
}

// WithName sets the session name
func WithName(name string) Option {
	return func(s *Session) {
		s.name = name
	}
}
