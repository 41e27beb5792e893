package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/viant/lineage"

// parentPrefix prefixes identifiers inherited from the enclosing lineage span.
const parentPrefix = "parent."

// Init configures OpenTelemetry with the stdout exporter backed by either os.Stdout or the
// specified file. Only the first call installs a provider; later calls neither open nor
// truncate outputFile.
func Init(serviceName, serviceVersion, outputFile string) error {
	return installProvider(serviceName, serviceVersion, func() (sdktrace.SpanExporter, io.Closer, error) {
		var w io.Writer = os.Stdout
		var closer io.Closer
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return nil, nil, err
			}
			w, closer = f, f
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, nil, err
		}
		return exporter, closer, nil
	})
}

// InitWithExporter configures OpenTelemetry using the supplied SpanExporter, e.g. OTLP or an
// in-memory exporter in tests. The first successful initialisation wins.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	return installProvider(serviceName, serviceVersion, func() (sdktrace.SpanExporter, io.Closer, error) {
		return exporter, nil, nil
	})
}

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider
	output       io.Closer
)

type exporterFactory func() (sdktrace.SpanExporter, io.Closer, error)

// installProvider builds the exporter and registers it globally exactly once; subsequent
// invocations return the error (if any) from the first attempt without calling newExporter.
func installProvider(serviceName, serviceVersion string, newExporter exporterFactory) error {
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}
		exporter, closer, err := newExporter()
		if err != nil {
			providerErr = err
			return
		}
		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		output = closer
		otel.SetTracerProvider(provider)
	})
	return providerErr
}

// Shutdown flushes the installed provider and closes its output file.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if output != nil {
		if cErr := output.Close(); err == nil {
			err = cErr
		}
	}
	return err
}

// Span wraps an OpenTelemetry span and remembers the identifiers attached to it so that
// nested lineage spans can record them as parent.* attributes.
type Span struct {
	span trace.Span

	mu  sync.Mutex
	ids map[string]string
}

type spanKey struct{}

// FromContext returns the lineage span started by StartSpan, or nil.
func FromContext(ctx context.Context) *Span {
	sp, _ := ctx.Value(spanKey{}).(*Span)
	return sp
}

// WithAttributes attaches all provided attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// WithIDs attaches identifiers in their hex form, e.g. lineage.task=<hex>.
func (s *Span) WithIDs(ids map[string]fmt.Stringer) *Span {
	if s == nil || len(ids) == 0 {
		return s
	}
	attrs := make(map[string]string, len(ids))
	s.mu.Lock()
	if s.ids == nil {
		s.ids = make(map[string]string, len(ids))
	}
	for k, v := range ids {
		attrs[k] = v.String()
		s.ids[k] = attrs[k]
	}
	s.mu.Unlock()
	return s.WithAttributes(attrs)
}

func (s *Span) parentAttributes() []attribute.KeyValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]attribute.KeyValue, 0, len(s.ids))
	for k, v := range s.ids {
		ret = append(ret, attribute.String(parentPrefix+k, v))
	}
	return ret
}

// SetStatus records an error status on the span. If err is nil an OK status is recorded instead.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
}

// StartSpan starts an internal span for a derivation step. Identifiers already attached to an
// enclosing lineage span are recorded as parent.<key>, e.g. parent.lineage.task.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	parent := FromContext(ctx)
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if parent != nil {
		if attrs := parent.parentAttributes(); len(attrs) > 0 {
			span.SetAttributes(attrs...)
		}
	}
	ret := &Span{span: span}
	return context.WithValue(ctx, spanKey{}, ret), ret
}

// EndSpan finalises the span and records status depending on the provided error.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
