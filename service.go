package lineage

import (
	"context"
	"fmt"

	"github.com/viant/lineage/digest"
	"github.com/viant/lineage/id"
	"github.com/viant/lineage/session"
	"github.com/viant/lineage/tracing"
)

// Version is reported as the tracing service version.
const Version = "0.1.0"

// Service wires configuration, the task identifier generator and tracing.
type Service struct {
	config    *Config
	generator *id.Generator
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.generator == nil {
		fn, err := digest.Lookup(s.config.Digest)
		if err != nil {
			return err
		}
		s.generator = id.NewGenerator(id.WithDigest(fn))
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.Service, Version, s.config.Tracing.Output); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	return nil
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Generator returns the task identifier generator.
func (s *Service) Generator() *id.Generator {
	return s.generator
}

// NewSession creates a worker session for driver; a nil driver gets a random identifier.
func (s *Service) NewSession(driver id.DriverID, options ...session.Option) *session.Session {
	if driver.IsNil() {
		driver = id.FromRandom[id.Driver]()
	}
	options = append([]session.Option{session.WithGenerator(s.generator)}, options...)
	return session.New(driver, options...)
}

// GenerateTaskID derives a task identifier with the configured digest.
func (s *Service) GenerateTaskID(ctx context.Context, driver id.DriverID, parent id.TaskID, counter uint32) id.TaskID {
	_, span := tracing.StartSpan(ctx, "lineage.GenerateTaskID")
	ret := s.generator.GenerateTaskID(driver, parent, counter)
	span.WithIDs(map[string]fmt.Stringer{"lineage.driver": driver, "lineage.parent": parent, "lineage.task": ret})
	tracing.EndSpan(span, nil)
	return ret
}

// Decode recovers the task and index that created object.
func (s *Service) Decode(ctx context.Context, object id.ObjectID) (id.Origin, error) {
	_, span := tracing.StartSpan(ctx, "lineage.Decode")
	ret, err := id.Decode(object)
	span.WithIDs(map[string]fmt.Stringer{"lineage.object": object})
	tracing.EndSpan(span, err)
	return ret, err
}

// New creates a lineage service.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
