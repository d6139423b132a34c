package distance

import (
	"context"
	"fmt"
	"sync/atomic"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

// MockPair seeds a MockPointProvider with a known origin/destination
// result.
type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockPointProvider serves canned distance results for tests. When
// Err is set every call fails with it. Calls counts invocations.
type MockPointProvider struct {
	m     map[string]ports.DistanceResult
	Err   error
	Calls atomic.Int32
}

func NewMockPointProvider(pairs []MockPair) *MockPointProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		key := ports.PairKey(pointKey(p.From), pointKey(p.To))
		m[key] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockPointProvider{m: m}
}

func (p *MockPointProvider) DistanceBetween(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	p.Calls.Add(1)

	if p.Err != nil {
		return ports.DistanceResult{}, p.Err
	}

	key := ports.PairKey(pointKey(origin), pointKey(destination))
	r, ok := p.m[key]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q", key)
	}
	return r, nil
}
