package observability

import "context"

// Setup initializes logging and tracing for a service and returns the
// tracing shutdown hook.
func Setup(serviceName string) func(context.Context) error {
	InitLogger(serviceName)
	return InitTracing(serviceName)
}
