package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

// TransitEstimatorInterface produces the transit hint attached to an
// activity: how to reach it from the previous stop.
type TransitEstimatorInterface interface {
	EstimateHop(ctx context.Context, from, to domain_models.LatLng) domain_models.TransitHint
}

const (
	walkCutoffKm      = 1.5
	walkMinutesPerKm  = 12.0
	driveMinutesPerKm = 3.0
	driveOverheadMin  = 5
)

// HaversineTransitEstimator is the deterministic default: short hops are
// walks, anything longer is a drive with a fixed pickup overhead. The
// scheduler stays reproducible with no network in the loop.
type HaversineTransitEstimator struct{}

func NewHaversineTransitEstimator() TransitEstimatorInterface {
	return &HaversineTransitEstimator{}
}

func (h *HaversineTransitEstimator) EstimateHop(_ context.Context, from, to domain_models.LatLng) domain_models.TransitHint {
	km := utils.HaversineKm(from.Lat, from.Lng, to.Lat, to.Lng)
	if km <= walkCutoffKm {
		return domain_models.TransitHint{Mode: "walking", Minutes: int(km*walkMinutesPerKm) + 1}
	}
	return domain_models.TransitHint{Mode: "driving", Minutes: int(km*driveMinutesPerKm) + driveOverheadMin}
}

// --------- In-memory cache per (mode, A, B) pair ---------

type pairKey struct {
	Mode string
	A    string
	B    string
}

type matrixPairCacheEntry struct {
	Minutes   int
	ExpiresAt time.Time
}

type MatrixPairCache interface {
	Get(k pairKey) (int, bool)
	Set(k pairKey, minutes int, ttl time.Duration)
}

type inMemoryPairCache struct {
	mu    sync.RWMutex
	store map[pairKey]matrixPairCacheEntry
}

func NewInMemoryPairCache() MatrixPairCache {
	return &inMemoryPairCache{store: make(map[pairKey]matrixPairCacheEntry)}
}

func (c *inMemoryPairCache) Get(k pairKey) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return 0, false
	}
	return it.Minutes, true
}

func (c *inMemoryPairCache) Set(k pairKey, minutes int, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = matrixPairCacheEntry{Minutes: minutes, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Mapbox Matrix client (duration-only) ---------------

// MapboxTransitEstimator asks the Mapbox directions-matrix API for real
// drive durations, caches pairs, and falls back to the haversine heuristic
// on any failure so generation never blocks on the network.
type MapboxTransitEstimator struct {
	HTTP        *http.Client
	AccessToken string
	Cache       MatrixPairCache
	DefaultTTL  time.Duration
	Profile     string

	fallback TransitEstimatorInterface
}

func NewMapboxTransitEstimator(cache MatrixPairCache) *MapboxTransitEstimator {
	return &MapboxTransitEstimator{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		AccessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
		Cache:       cache,
		DefaultTTL:  7 * 24 * time.Hour,
		Profile:     "driving",
		fallback:    NewHaversineTransitEstimator(),
	}
}

func (c *MapboxTransitEstimator) EstimateHop(ctx context.Context, from, to domain_models.LatLng) domain_models.TransitHint {
	heuristic := c.fallback.EstimateHop(ctx, from, to)
	if c.AccessToken == "" || heuristic.Mode == "walking" {
		return heuristic
	}

	key := pairKey{
		Mode: c.Profile,
		A:    fmt.Sprintf("%.5f,%.5f", from.Lat, from.Lng),
		B:    fmt.Sprintf("%.5f,%.5f", to.Lat, to.Lng),
	}
	if minutes, ok := c.Cache.Get(key); ok {
		return domain_models.TransitHint{Mode: "driving", Minutes: minutes}
	}

	minutes, err := c.fetchDriveMinutes(ctx, from, to)
	if err != nil {
		return heuristic
	}
	c.Cache.Set(key, minutes, c.DefaultTTL)
	return domain_models.TransitHint{Mode: "driving", Minutes: minutes}
}

func (c *MapboxTransitEstimator) fetchDriveMinutes(ctx context.Context, from, to domain_models.LatLng) (int, error) {
	coords := strings.Join([]string{
		fmt.Sprintf("%f,%f", from.Lng, from.Lat),
		fmt.Sprintf("%f,%f", to.Lng, to.Lat),
	}, ";")

	u := url.URL{
		Scheme: "https",
		Host:   "api.mapbox.com",
		Path:   fmt.Sprintf("/directions-matrix/v1/mapbox/%s/%s", c.Profile, coords),
	}
	q := url.Values{}
	q.Set("annotations", "duration")
	q.Set("sources", "0")
	q.Set("destinations", "1")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("mapbox matrix: status %d", resp.StatusCode)
	}

	var body struct {
		Durations [][]float64 `json:"durations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if len(body.Durations) == 0 || len(body.Durations[0]) == 0 {
		return 0, fmt.Errorf("mapbox matrix: empty durations")
	}
	return int(body.Durations[0][0]/60) + 1, nil
}
