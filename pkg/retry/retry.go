// Package retry runs operations with exponential backoff and jitter, used
// when opening storage backends that may not be reachable yet.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Permanent marks err as not worth retrying. Do stops at once and returns
// err unwrapped. A nil err stays nil.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// IsPermanent reports whether err, or an error it wraps, was marked Permanent.
func IsPermanent(err error) bool {
	var perm *backoff.PermanentError
	return errors.As(err, &perm)
}

// Notify is called before each retry with the attempt that just failed.
type Notify func(attempt int, err error, delay time.Duration)

// Policy describes a retry schedule.
type Policy struct {
	// Attempts counts the first call; values below 1 mean one call.
	Attempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// Jitter randomises each delay by up to this fraction.
	Jitter float64
}

// StorePolicy is used while connecting to a storage server: five attempts
// within roughly four seconds.
func StorePolicy() Policy {
	return Policy{
		Attempts:     5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
		Jitter:       0.1,
	}
}

func (p Policy) schedule(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialDelay
	exp.MaxInterval = p.MaxDelay
	exp.Multiplier = p.Multiplier
	exp.RandomizationFactor = p.Jitter
	exp.MaxElapsedTime = 0

	retries := 0
	if p.Attempts > 1 {
		retries = p.Attempts - 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// Do calls op until it succeeds, returns a Permanent error, the context ends
// or the policy runs out of attempts. A failure after ctx is done is not
// retried; dial timeouts inside op still are.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error, notify Notify) error {
	_, err := DoWithData(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, notify)
	return err
}

// DoWithData is Do for operations that produce a value.
func DoWithData[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error), notify Notify) (T, error) {
	attempt := 0
	return backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, backoff.Permanent(err)
		}
		v, err := op(ctx)
		if err != nil && ctx.Err() != nil {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, p.schedule(ctx), func(err error, delay time.Duration) {
		if notify != nil {
			notify(attempt, err, delay)
		}
	})
}
