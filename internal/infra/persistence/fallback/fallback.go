// Package fallback pairs the durable PostgreSQL gateways with the volatile
// in-process gateways. Every operation tries the durable store first and
// transparently serves from the volatile store when the durable side returns
// an infrastructure error. Domain not-found results are passed through
// untouched, since those are answers, not failures.
package fallback

import (
	"log/slog"

	"gymgate/internal/domain/repository"
	"gymgate/internal/observability"
)

type resilience struct {
	logger *slog.Logger
}

// attempt runs the durable operation and, on infrastructure failure, retries
// against the volatile store.
func attempt[T any](f *resilience, operation string, durable func() (T, error), local func() (T, error)) (T, error) {
	out, err := durable()
	if err == nil || repository.IsNotFound(err) {
		return out, err
	}

	f.fellBack(operation, err)

	return local()
}

// attemptErr is attempt for operations without a return value.
func attemptErr(f *resilience, operation string, durable func() error, local func() error) error {
	if err := durable(); err != nil {
		if repository.IsNotFound(err) {
			return err
		}
		f.fellBack(operation, err)

		return local()
	}

	return nil
}

func (f *resilience) fellBack(operation string, err error) {
	f.logger.Warn("Durable store unavailable, serving from volatile store",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	observability.StoreFallbacksTotal.WithLabelValues(operation).Inc()
}
