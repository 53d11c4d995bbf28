package warden

import (
	"github.com/opsfabric/warden/model/decision"
	"github.com/opsfabric/warden/model/execution"
	"github.com/opsfabric/warden/policy"
	"github.com/opsfabric/warden/service/dao"
	"github.com/opsfabric/warden/service/executor"
	"github.com/opsfabric/warden/service/governance"
	"github.com/opsfabric/warden/service/messaging"
	"github.com/opsfabric/warden/service/notification"
	"github.com/opsfabric/warden/service/validation"
	"github.com/opsfabric/warden/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the warden service.
type Option func(s *Service)

// WithConfig sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithRegistry sets the command policy registry (required).
func WithRegistry(registry *policy.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithHandlers sets the side-effect handler map consulted by the executor.
func WithHandlers(handlers map[string]executor.Handler) Option {
	return func(s *Service) { s.handlers = handlers }
}

// WithDispatchers sets the decision-type dispatch map used by the
// governance workflow.
func WithDispatchers(dispatchers map[string]governance.DispatchFunc) Option {
	return func(s *Service) { s.dispatchers = dispatchers }
}

// WithExecutionStore overrides the execution audit store.
func WithExecutionStore(store dao.Service[string, execution.Record]) Option {
	return func(s *Service) { s.executionStore = store }
}

// WithDecisionStore overrides the decision store.
func WithDecisionStore(store dao.Service[string, decision.Record]) Option {
	return func(s *Service) { s.decisionStore = store }
}

// WithNotifier sets the approver notification collaborator.
func WithNotifier(sender notification.Sender) Option {
	return func(s *Service) { s.notifier = sender }
}

// WithApprovers sets the recipients notified about pending decisions.
func WithApprovers(approvers ...string) Option {
	return func(s *Service) { s.approvers = approvers }
}

// WithRules appends caller-supplied validation rules to the built-in set.
func WithRules(rules ...validation.Rule) Option {
	return func(s *Service) { s.extraRules = append(s.extraRules, rules...) }
}

// WithExecutionEvents overrides the execution event queue.
func WithExecutionEvents(queue messaging.Queue[execution.Event]) Option {
	return func(s *Service) { s.executionEvents = queue }
}

// WithDecisionEvents overrides the decision event queue.
func WithDecisionEvents(queue messaging.Queue[decision.Event]) Option {
	return func(s *Service) { s.decisionEvents = queue }
}

// WithTracing enables OpenTelemetry tracing with the built-in stdout
// exporter; outputFile empty means os.Stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter enables OpenTelemetry tracing using a custom
// SpanExporter, e.g. OTLP, Jaeger or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
