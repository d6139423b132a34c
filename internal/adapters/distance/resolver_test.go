package distance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

var (
	pointA = domain.Coordinates{Lat: 10.7769, Lon: 106.7009}
	pointB = domain.Coordinates{Lat: 10.8231, Lon: 106.6297}
	pointC = domain.Coordinates{Lat: 10.7626, Lon: 106.6602}
)

type stubGeocoder struct {
	coords map[string]domain.Coordinates
	err    error
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if g.err != nil {
		return domain.Coordinates{}, g.err
	}
	c, ok := g.coords[normalizeAddress(address)]
	if !ok {
		return domain.Coordinates{}, errors.New("no result")
	}
	return c, nil
}

type memoryDistanceCache struct {
	mu      sync.Mutex
	entries map[string]ports.DistanceResult
	puts    int
}

func newMemoryDistanceCache() *memoryDistanceCache {
	return &memoryDistanceCache{entries: map[string]ports.DistanceResult{}}
}

func (c *memoryDistanceCache) Get(ctx context.Context, key string) (ports.DistanceResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[key]
	return r, ok, nil
}

func (c *memoryDistanceCache) Put(ctx context.Context, key string, r ports.DistanceResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = r
	c.puts++
	return nil
}

type batchingMatrix struct {
	*MockPointProvider
	batchCalls int
}

func (b *batchingMatrix) DistanceBetweenMany(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]ports.DistanceResult, error) {
	b.batchCalls++
	out := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		r, err := b.MockPointProvider.DistanceBetween(ctx, origin, d)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func newTestResolver(t *testing.T, matrix, proxy ports.PointDistanceProvider, cache ports.DistanceCache) *Resolver {
	t.Helper()

	r, err := NewResolver(matrix, proxy, &stubGeocoder{coords: map[string]domain.Coordinates{
		"origin st":      pointA,
		"destination st": pointB,
	}}, cache)
	require.NoError(t, err)
	return r
}

func TestResolverUsesMatrixFirst(t *testing.T) {
	matrix := NewMockPointProvider([]MockPair{{From: pointA, To: pointB, Meters: 9000, Seconds: 1200}})
	proxy := NewMockPointProvider([]MockPair{{From: pointA, To: pointB, Meters: 9500, Seconds: 1400}})

	r := newTestResolver(t, matrix, proxy, nil)

	got, err := r.DistanceBetween(context.Background(), pointA, pointB)
	require.NoError(t, err)
	assert.Equal(t, 9000, got.DistanceMeters)
	assert.Equal(t, int32(1), matrix.Calls.Load())
	assert.Equal(t, int32(0), proxy.Calls.Load(), "proxy tier must not be consulted when matrix succeeds")
}

func TestResolverFallsBackToProxy(t *testing.T) {
	matrix := NewMockPointProvider(nil)
	matrix.Err = errors.New("quota exceeded")
	proxy := NewMockPointProvider([]MockPair{{From: pointA, To: pointB, Meters: 9500, Seconds: 1400}})

	r := newTestResolver(t, matrix, proxy, nil)

	got, err := r.DistanceBetween(context.Background(), pointA, pointB)
	require.NoError(t, err)
	assert.Equal(t, 9500, got.DistanceMeters)
	assert.Equal(t, int32(1), matrix.Calls.Load())
	assert.Equal(t, int32(1), proxy.Calls.Load())
}

func TestResolverFallsBackToHaversine(t *testing.T) {
	matrix := NewMockPointProvider(nil)
	matrix.Err = errors.New("down")
	proxy := NewMockPointProvider(nil)
	proxy.Err = errors.New("down too")

	cache := newMemoryDistanceCache()
	r := newTestResolver(t, matrix, proxy, cache)

	got, err := r.DistanceBetween(context.Background(), pointA, pointB)
	require.NoError(t, err, "local tier never fails on resolved coordinates")

	// Straight-line distance between the two test points is about 9.3 km.
	assert.InDelta(t, 9300, got.DistanceMeters, 300)
	assert.Greater(t, got.DurationSeconds, 0)

	// Local estimates are not persisted.
	assert.Equal(t, 0, cache.puts)
}

func TestResolverCachesRemoteResults(t *testing.T) {
	matrix := NewMockPointProvider([]MockPair{{From: pointA, To: pointB, Meters: 9000, Seconds: 1200}})
	cache := newMemoryDistanceCache()

	r := newTestResolver(t, matrix, nil, cache)

	_, err := r.DistanceBetween(context.Background(), pointA, pointB)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	// Second lookup is served from cache without touching the provider.
	got, err := r.DistanceBetween(context.Background(), pointA, pointB)
	require.NoError(t, err)
	assert.Equal(t, 9000, got.DistanceMeters)
	assert.Equal(t, int32(1), matrix.Calls.Load())
}

func TestResolverServesPersistentCacheHits(t *testing.T) {
	matrix := NewMockPointProvider(nil)
	matrix.Err = errors.New("should not be called")

	cache := newMemoryDistanceCache()
	key := ports.PairKey(pointKey(pointA), pointKey(pointB))
	cache.entries[key] = ports.DistanceResult{DistanceMeters: 7777, DurationSeconds: 999}

	r := newTestResolver(t, matrix, nil, cache)

	got, err := r.DistanceBetween(context.Background(), pointA, pointB)
	require.NoError(t, err)
	assert.Equal(t, 7777, got.DistanceMeters)
	assert.Equal(t, int32(0), matrix.Calls.Load())
}

func TestResolverRejectsUnresolvedPoints(t *testing.T) {
	r := newTestResolver(t, nil, nil, nil)

	_, err := r.DistanceBetween(context.Background(), domain.Coordinates{}, pointB)
	assert.Error(t, err)

	_, err = r.DistanceBetween(context.Background(), pointA, domain.Coordinates{})
	assert.Error(t, err)
}

func TestResolveAddressSentinel(t *testing.T) {
	r, err := NewResolver(nil, nil, &stubGeocoder{err: errors.New("backend down")}, nil)
	require.NoError(t, err)

	coords := r.ResolveAddress(context.Background(), "1 Nowhere Lane")
	assert.True(t, coords.IsZero(), "failed geocoding must yield the zero sentinel")
}

func TestGetDistanceGeocodesBothEnds(t *testing.T) {
	matrix := NewMockPointProvider([]MockPair{{From: pointA, To: pointB, Meters: 9000, Seconds: 1200}})
	r := newTestResolver(t, matrix, nil, nil)

	got, err := r.GetDistance(context.Background(), " origin   st ", "destination st")
	require.NoError(t, err)
	assert.Equal(t, 9000, got.DistanceMeters)

	_, err = r.GetDistance(context.Background(), "unknown place", "destination st")
	assert.Error(t, err)
}

func TestDistanceBetweenManyBatchesMisses(t *testing.T) {
	inner := NewMockPointProvider([]MockPair{
		{From: pointA, To: pointB, Meters: 9000, Seconds: 1200},
		{From: pointA, To: pointC, Meters: 5000, Seconds: 700},
	})
	matrix := &batchingMatrix{MockPointProvider: inner}
	cache := newMemoryDistanceCache()

	r := newTestResolver(t, matrix, nil, cache)

	results, err := r.DistanceBetweenMany(context.Background(), pointA, []domain.Coordinates{pointB, pointC})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 9000, results[0].DistanceMeters)
	assert.Equal(t, 5000, results[1].DistanceMeters)
	assert.Equal(t, 1, matrix.batchCalls)
	assert.Equal(t, 2, cache.puts)

	// All pairs cached now: a repeat touches no tier.
	_, err = r.DistanceBetweenMany(context.Background(), pointA, []domain.Coordinates{pointB, pointC})
	require.NoError(t, err)
	assert.Equal(t, 1, matrix.batchCalls)
}
