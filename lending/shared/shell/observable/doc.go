// Package observable wraps command and query handlers with metrics, tracing and logging,
// so that the handlers themselves contain only Query -> Unmarshal -> Decide -> Append.
//
// Wrapping happens at wiring time:
//
//	handler := borrowbook.NewCommandHandler(eventStore, policy)
//	wrapped, err := observable.NewCommandWrapper[borrowbook.Command](
//		handler,
//		observable.WithMetrics(metricsCollector),
//		observable.WithTracing(tracingCollector),
//		observable.WithContextualLogging(logger),
//	)
//
// Business rule rejections (any core error kind) are logged at info level and counted with
// status "rejected". ErrOverRelease is the exception: it is logged at error level and counted
// in lending_over_release_total, since it means the counters of a book were already inconsistent.
package observable
