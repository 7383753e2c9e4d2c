package geo_test

import (
	"context"
	"testing"
	"time"

	"github.com/diorsolutions/eco-shop/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	position geo.Position
	err      error
	delay    time.Duration
	calls    int
}

func (f *fakeProvider) Position(ctx context.Context, opts geo.Options) (geo.Position, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return geo.Position{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return geo.Position{}, f.err
	}
	return f.position, nil
}

func TestResolver_Success(t *testing.T) {
	p := &fakeProvider{position: geo.Position{Latitude: 41.311081, Longitude: 69.240562}}
	r := geo.NewResolver(p)

	pos, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "41.311081, 69.240562", pos.Address())
	assert.Nil(t, r.LastFailure())
}

func TestResolver_AddressRendersSixDecimals(t *testing.T) {
	p := &fakeProvider{position: geo.Position{Latitude: 41.3, Longitude: -69.24}}
	r := geo.NewResolver(p)

	pos, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "41.300000, -69.240000", pos.Address())
}

func TestResolver_CachedFixWithinMaximumAge(t *testing.T) {
	p := &fakeProvider{position: geo.Position{Latitude: 1, Longitude: 2}}
	r := geo.NewResolver(p)

	_, err := r.Resolve(context.Background())
	require.NoError(t, err)
	_, err = r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls, "second resolve within 60s must serve the cached fix")
}

func TestResolver_FailureClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want geo.FailureKind
	}{
		{"permission_denied", &geo.Failure{Kind: geo.FailurePermissionDenied}, geo.FailurePermissionDenied},
		{"position_unavailable", &geo.Failure{Kind: geo.FailurePositionUnavailable}, geo.FailurePositionUnavailable},
		{"unknown", assert.AnError, geo.FailureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := geo.NewResolver(&fakeProvider{err: tt.err})

			_, err := r.Resolve(context.Background())
			require.Error(t, err)

			var failure *geo.Failure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.want, failure.Kind)
			assert.NotEmpty(t, failure.Error())

			_, ok := r.Last()
			assert.False(t, ok, "failed resolve leaves no position")
		})
	}
}

func TestResolver_DistinctFailureMessages(t *testing.T) {
	kinds := []geo.FailureKind{
		geo.FailurePermissionDenied,
		geo.FailurePositionUnavailable,
		geo.FailureTimeout,
		geo.FailureUnknown,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		msg := (&geo.Failure{Kind: k}).Error()
		assert.False(t, seen[msg], "message %q reused", msg)
		seen[msg] = true
	}
}

func TestResolver_Timeout(t *testing.T) {
	p := &fakeProvider{delay: time.Hour}
	r := geo.NewResolver(p)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Resolve(ctx)
	require.Error(t, err)

	var failure *geo.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, geo.FailureTimeout, failure.Kind)

	_, ok := r.Last()
	assert.False(t, ok, "timeout leaves location unset")
}

func TestResolver_Clear(t *testing.T) {
	p := &fakeProvider{position: geo.Position{Latitude: 1, Longitude: 2}}
	r := geo.NewResolver(p)

	_, err := r.Resolve(context.Background())
	require.NoError(t, err)

	r.Clear()

	_, ok := r.Last()
	assert.False(t, ok)
	assert.Nil(t, r.LastFailure())

	// A resolve after Clear consults the provider again.
	_, err = r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}
