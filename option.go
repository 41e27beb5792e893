package lineage

import "github.com/viant/lineage/id"

// Option configures a Service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithGenerator sets the task identifier generator, overriding Config.Digest
func WithGenerator(generator *id.Generator) Option {
	return func(s *Service) {
		s.generator = generator
	}
}
