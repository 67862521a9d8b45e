// Package observable provides wrapper components for instrumenting command and query handlers
// with observability (metrics, tracing, logging) while keeping the business logic pure.
//
// The wrappers are applied externally at wiring time, not hidden inside factory functions:
//
//	// 1. Create the pure business logic handler
//	coreHandler, err := createorder.NewCommandHandler(bookstore)
//
//	// 2. Wrap it with observability
//	observableHandler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[createorder.Command](metricsCollector),
//		observable.WithCommandTracing[createorder.Command](tracingCollector),
//		observable.WithCommandContextualLogging[createorder.Command](contextualLogger),
//	)
//
//	// 3. Use the wrapped handler in the transport layer
//	result, err := observableHandler.Handle(ctx, command)
//
// Each concern is optional. For unit tests focused on business logic, use the core handlers directly.
package observable
