package persistence

import (
	"context"
	"errors"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/redis"
	"github.com/tutorbook/tutorbook/pkg/circuitbreaker"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GUARDED BACKEND
// ══════════════════════════════════════════════════════════════════════════════

// guarded routes Load and Save of a remote backend through a circuit breaker.
type guarded struct {
	Backend
	breaker *circuitbreaker.Breaker
}

// Guard wraps b so that repeated server failures are rejected with
// circuitbreaker.ErrCircuitOpen until the cool-down passes.
func Guard(b Backend, log *logger.Logger, opts ...circuitbreaker.Option) Backend {
	if log == nil {
		log = logger.Nop()
	}
	opts = append([]circuitbreaker.Option{
		circuitbreaker.WithIsFailure(isServerFailure),
		circuitbreaker.WithOnStateChange(func(name string, from, to circuitbreaker.State) {
			log.Warn("storage circuit changed state",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		}),
	}, opts...)
	return &guarded{
		Backend: b,
		breaker: circuitbreaker.New(b.Location(), opts...),
	}
}

func (g *guarded) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	var book *addressbook.AddressBook
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		book, err = g.Backend.Load(ctx)
		return err
	})
	return book, err
}

func (g *guarded) Save(ctx context.Context, book *addressbook.AddressBook) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.Backend.Save(ctx, book)
	})
}

// isServerFailure excludes outcomes that say nothing about server health:
// missing or damaged documents, write conflicts and caller cancellation.
func isServerFailure(err error) bool {
	var rec *shared.RecordError
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case shared.IsRecoverable(err), errors.As(err, &rec):
		return false
	case errors.Is(err, redis.ErrConflict):
		return false
	}
	return true
}

// Unwrap returns the guarded backend.
func (g *guarded) Unwrap() Backend {
	return g.Backend
}

// Watcher is implemented by backends that announce saves made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context, fn func(fingerprint string)) error
}

// AsWatcher finds a Watcher in b, looking through guards.
func AsWatcher(b Backend) (Watcher, bool) {
	for b != nil {
		if w, ok := b.(Watcher); ok {
			return w, true
		}
		u, ok := b.(interface{ Unwrap() Backend })
		if !ok {
			return nil, false
		}
		b = u.Unwrap()
	}
	return nil, false
}
