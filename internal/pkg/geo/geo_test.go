package geo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineMeters(t *testing.T) {
	// Marina Bay Sands to Merlion Park, roughly 650m.
	mbs := Coordinates{Latitude: 1.2834, Longitude: 103.8607}
	merlion := Coordinates{Latitude: 1.2868, Longitude: 103.8545}

	d := HaversineMeters(mbs, merlion)
	assert.InDelta(t, 790, d, 150)

	// Symmetric and zero at identity.
	assert.InDelta(t, d, HaversineMeters(merlion, mbs), 0.001)
	assert.Zero(t, HaversineMeters(mbs, mbs))
}

func TestCoordinatesValid(t *testing.T) {
	assert.True(t, Coordinates{Latitude: 1.3, Longitude: 103.8}.Valid())
	assert.False(t, Coordinates{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Coordinates{Latitude: 0, Longitude: -181}.Valid())
}

// scriptedLocator returns canned results per call, recording the requests it
// received.
type scriptedLocator struct {
	results []func(ctx context.Context) (Coordinates, error)
	calls   []FixRequest
}

func (s *scriptedLocator) Fix(ctx context.Context, req FixRequest) (Coordinates, error) {
	s.calls = append(s.calls, req)
	idx := len(s.calls) - 1
	if idx >= len(s.results) {
		return Coordinates{}, &LocationError{Kind: KindUnavailable}
	}
	return s.results[idx](ctx)
}

func fixOK(c Coordinates) func(context.Context) (Coordinates, error) {
	return func(context.Context) (Coordinates, error) { return c, nil }
}

func fixErr(kind ErrorKind) func(context.Context) (Coordinates, error) {
	return func(context.Context) (Coordinates, error) {
		return Coordinates{}, &LocationError{Kind: kind}
	}
}

func testPolicy() TimeoutPolicy {
	return TimeoutPolicy{Fast: 50 * time.Millisecond, Accurate: 50 * time.Millisecond, Warmup: 50 * time.Millisecond}
}

func TestAcquire_FastTierShortCircuits(t *testing.T) {
	want := Coordinates{Latitude: 1.3, Longitude: 103.8}
	loc := &scriptedLocator{results: []func(context.Context) (Coordinates, error){fixOK(want)}}

	got, err := Acquire(context.Background(), loc, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.Len(t, loc.calls, 1)
	assert.False(t, loc.calls[0].HighAccuracy)
	assert.NotZero(t, loc.calls[0].MaxAge, "fast tier accepts cached fixes")
}

func TestAcquire_FallsBackToAccurateTier(t *testing.T) {
	want := Coordinates{Latitude: 1.3, Longitude: 103.8}
	loc := &scriptedLocator{results: []func(context.Context) (Coordinates, error){
		fixErr(KindTimeout),
		fixOK(want),
	}}

	got, err := Acquire(context.Background(), loc, testPolicy())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.Len(t, loc.calls, 2)
	assert.True(t, loc.calls[1].HighAccuracy)
	assert.Zero(t, loc.calls[1].MaxAge, "accurate tier forbids cached fixes")
}

func TestAcquire_AllTiersFail(t *testing.T) {
	loc := &scriptedLocator{results: []func(context.Context) (Coordinates, error){
		fixErr(KindTimeout),
		fixErr(KindTimeout),
		fixErr(KindTimeout),
	}}

	_, err := Acquire(context.Background(), loc, testPolicy())
	le, ok := AsLocationError(err)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, le.Kind)
	assert.Len(t, loc.calls, 3)
}

func TestAcquire_PermissionDeniedStopsChain(t *testing.T) {
	loc := &scriptedLocator{results: []func(context.Context) (Coordinates, error){
		fixErr(KindPermissionDenied),
	}}

	_, err := Acquire(context.Background(), loc, testPolicy())
	le, ok := AsLocationError(err)
	require.True(t, ok)
	assert.Equal(t, KindPermissionDenied, le.Kind)
	assert.Len(t, loc.calls, 1, "longer timeouts cannot fix a denied permission")
}

func TestAcquire_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loc := &scriptedLocator{}
	_, err := Acquire(ctx, loc, testPolicy())
	le, ok := AsLocationError(err)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, le.Kind)
	assert.Empty(t, loc.calls)
}
