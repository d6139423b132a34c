// Package distance implements the three-tier travel distance
// resolution chain: a remote Distance-Matrix-style vendor API, the
// marketplace backend's distance proxy, and a local great-circle
// fallback, fronted by a TTL cache.
package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/platform/obs"
	"storefront-gateway-service/internal/ports"
)

// MatrixProvider is the first tier of the distance chain: a direct
// call to the map vendor's matrix endpoint. Vendor quotas are modest,
// so calls go through a client-side rate limiter.
type MatrixProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	limiter *rate.Limiter
}

func NewMatrixProvider(apiKey string) (*MatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("matrix api key is empty")
	}

	return &MatrixProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
		// Free-tier matrix quota is 40 requests/minute.
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 5),
	}, nil
}

// SetBaseURL overrides the vendor endpoint, used by tests and
// self-hosted vendor deployments.
func (m *MatrixProvider) SetBaseURL(u string) { m.baseURL = u }

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// DistanceBetween delegates to the batched path.
func (m *MatrixProvider) DistanceBetween(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	results, err := m.DistanceBetweenMany(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return ports.DistanceResult{}, err
	}
	return results[0], nil
}

// DistanceBetweenMany fetches a single origin->many matrix row from
// the vendor. Results are index-aligned with destinations.
func (m *MatrixProvider) DistanceBetweenMany(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.Time(ctx, "matrix.DistanceBetweenMany")(&err)

	if origin.IsZero() {
		return nil, errors.New("matrix: origin must be resolved")
	}
	if len(destinations) == 0 {
		return []ports.DistanceResult{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", m.baseURL, m.profile)

	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, origin.CoordsToList())
	for _, c := range destinations {
		if c.IsZero() {
			return nil, errors.New("matrix: destinations must be resolved")
		}
		locations = append(locations, c.CoordsToList())
	}

	destIdx := make([]int, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		return m.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]

	if len(rowDistances) != len(destinations) || len(rowDurations) != len(destinations) {
		return nil, fmt.Errorf(
			"row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			len(rowDistances), len(rowDurations), len(destinations),
		)
	}

	out := make([]ports.DistanceResult, len(destinations))
	for i := range destinations {
		metersPtr := rowDistances[i]
		secondsPtr := rowDurations[i]

		if metersPtr == nil || secondsPtr == nil {
			return nil, fmt.Errorf("matrix returned invalid metrics for destination %d", i)
		}

		// The vendor returns float metrics; round to nearest integer
		// for domain consistency.
		out[i] = ports.DistanceResult{
			DistanceMeters:  int(math.Round(*metersPtr)),
			DurationSeconds: int(math.Round(*secondsPtr)),
		}
	}

	return out, nil
}
