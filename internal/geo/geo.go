// Package geo resolves the customer's coordinates through a pluggable
// position provider. There is no reverse geocoding; a successful fix is
// rendered as a plain "lat, lon" pair the customer can submit as their
// delivery location.
//
// A Resolver caches its last fix for MaximumAge and serves it to every
// caller. The provider positions the terminal the server runs at, not the
// individual customer, so the cache is deliberately shared across requests.
package geo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// FailureKind classifies why a resolution failed. Each kind maps to a
// distinct user-facing message; beyond the message they are treated the same
// (fall back to manual entry).
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailurePermissionDenied
	FailurePositionUnavailable
	FailureTimeout
)

var failureMessages = map[FailureKind]string{
	FailurePermissionDenied:    "Location access was denied",
	FailurePositionUnavailable: "Location information is unavailable",
	FailureTimeout:             "Locating you timed out",
	FailureUnknown:             "Something went wrong while locating you",
}

type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return failureMessages[f.Kind]
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Position struct {
	Latitude  float64
	Longitude float64
	Taken     time.Time
}

// Address renders the coordinates as a fixed 6-decimal pair.
func (p Position) Address() string {
	return fmt.Sprintf("%.6f, %.6f", p.Latitude, p.Longitude)
}

// Options mirror the one-shot lookup contract: high accuracy requested, a
// hard timeout, and a tolerance for serving a recent cached fix.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

var DefaultOptions = Options{
	HighAccuracy: true,
	Timeout:      10 * time.Second,
	MaximumAge:   60 * time.Second,
}

// Provider produces a single position fix. Implementations classify their own
// failures by returning *Failure; anything else is treated as unknown.
type Provider interface {
	Position(ctx context.Context, opts Options) (Position, error)
}

// Resolver wraps a Provider with caching and failure classification. It keeps
// the last result and the last failure; Clear resets both.
type Resolver struct {
	provider Provider
	opts     Options

	mu       sync.Mutex
	position *Position
	failure  *Failure
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider, opts: DefaultOptions}
}

// Resolve performs a one-shot lookup. A cached fix younger than MaximumAge is
// returned without consulting the provider.
func (r *Resolver) Resolve(ctx context.Context) (Position, error) {
	r.mu.Lock()
	if r.position != nil && time.Since(r.position.Taken) < r.opts.MaximumAge {
		pos := *r.position
		r.mu.Unlock()
		return pos, nil
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	pos, err := r.provider.Position(ctx, r.opts)
	if err != nil {
		failure := classify(err)
		r.mu.Lock()
		r.position = nil
		r.failure = failure
		r.mu.Unlock()
		return Position{}, failure
	}

	if pos.Taken.IsZero() {
		pos.Taken = time.Now()
	}

	r.mu.Lock()
	r.position = &pos
	r.failure = nil
	r.mu.Unlock()
	return pos, nil
}

// Clear resets both the cached position and the last failure.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.position = nil
	r.failure = nil
	r.mu.Unlock()
}

// Last returns the cached position, if any.
func (r *Resolver) Last() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.position == nil {
		return Position{}, false
	}
	return *r.position, true
}

// LastFailure returns the most recent classified failure, if any.
func (r *Resolver) LastFailure() *Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

func classify(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: FailureTimeout, Err: err}
	}
	return &Failure{Kind: FailureUnknown, Err: err}
}
