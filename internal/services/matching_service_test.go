package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

type fakeCityService struct {
	city domain_models.City
}

func (f *fakeCityService) ResolveCity(_ context.Context, idOrSlug string) (domain_models.City, error) {
	if idOrSlug != f.city.Slug && idOrSlug != f.city.ID {
		return domain_models.City{}, utils.ErrCityNotFound
	}
	return f.city, nil
}

type fakeDiscovery struct {
	pool     []domain_models.Candidate
	quotas   []CandidateQuota
	refreshs []bool
	err      error
}

func (f *fakeDiscovery) FindCandidates(_ context.Context, _ domain_models.City, quota CandidateQuota, forceRefresh bool) ([]domain_models.Candidate, error) {
	f.quotas = append(f.quotas, quota)
	f.refreshs = append(f.refreshs, forceRefresh)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain_models.Candidate, len(f.pool))
	copy(out, f.pool)
	return out, nil
}

// fakeEnricher counts calls under a lock; the batch loop runs enrichment
// from concurrent goroutines.
type fakeEnricher struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeEnricher) Enrich(_ context.Context, _ *domain_models.Candidate) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return nil
}

func (f *fakeEnricher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeScheduler returns sparse results for the first sparseRuns calls and a
// dense one afterwards.
type fakeScheduler struct {
	sparseRuns int
	calls      int
	dayCounts  []int
	pools      [][]domain_models.Candidate
}

func (f *fakeScheduler) BuildItinerary(_ context.Context, city domain_models.City, startDate time.Time, dayCount int, candidates []domain_models.Candidate, _ ProgressObserver) *domain_models.Itinerary {
	f.calls++
	f.dayCounts = append(f.dayCounts, dayCount)
	f.pools = append(f.pools, candidates)

	endTime := "19:00"
	if f.calls <= f.sparseRuns {
		endTime = "14:00"
	}

	days := make([]domain_models.DayPlan, dayCount)
	for i := range days {
		days[i] = domain_models.DayPlan{
			Date:      startDate.AddDate(0, 0, i),
			DayNumber: i + 1,
			Activities: []domain_models.TripActivity{
				{Vibe: domain_models.Vibe{POIID: "x"}, StartTime: "09:00", EndTime: endTime},
			},
		}
	}
	return &domain_models.Itinerary{ID: "itin", CityID: city.ID, Days: days}
}

func newTestMatching(discovery *fakeDiscovery, scheduler *fakeScheduler, enricher *fakeEnricher) MatchingServiceInterface {
	cfg := domain_models.DefaultMatchingConfig()
	return NewMatchingService(
		&fakeCityService{city: testCity()},
		discovery,
		NewScoringService(cfg),
		NewCandidateClassifier(engineTestTable()),
		enricher,
		scheduler,
		cfg,
	)
}

func twoDayPrefs() domain_models.Preferences {
	return domain_models.Preferences{
		CityID:    "hanoi",
		StartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateItineraryUnknownCity(t *testing.T) {
	matching := newTestMatching(&fakeDiscovery{}, &fakeScheduler{}, &fakeEnricher{})

	prefs := twoDayPrefs()
	prefs.CityID = "atlantis"

	_, err := matching.GenerateItinerary(context.Background(), prefs, nil)
	assert.ErrorIs(t, err, utils.ErrCityNotFound)
}

func TestGenerateItineraryInvalidDateRange(t *testing.T) {
	matching := newTestMatching(&fakeDiscovery{}, &fakeScheduler{}, &fakeEnricher{})

	prefs := twoDayPrefs()
	prefs.StartDate, prefs.EndDate = prefs.EndDate, prefs.StartDate

	_, err := matching.GenerateItinerary(context.Background(), prefs, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
}

func TestGenerateItineraryFirstAttemptDense(t *testing.T) {
	discovery := &fakeDiscovery{pool: richPool()}
	scheduler := &fakeScheduler{}
	matching := newTestMatching(discovery, scheduler, &fakeEnricher{})

	itinerary, err := matching.GenerateItinerary(context.Background(), twoDayPrefs(), nil)
	require.NoError(t, err)
	require.NotNil(t, itinerary)

	assert.Equal(t, 1, scheduler.calls)
	require.Len(t, discovery.quotas, 1)
	assert.Equal(t, 4, discovery.quotas[0].MinMeals, "2 days x 2 meals")
	assert.Equal(t, 10, discovery.quotas[0].MinActivities, "2 days x 5 activities")
	assert.False(t, discovery.refreshs[0])
}

func TestGenerateItineraryRetriesOnSparse(t *testing.T) {
	discovery := &fakeDiscovery{pool: richPool()}
	scheduler := &fakeScheduler{sparseRuns: 99}
	matching := newTestMatching(discovery, scheduler, &fakeEnricher{})

	var sparseEvents int
	observer := ProgressObserver(func(event ProgressEvent, _ map[string]interface{}) {
		if event == ProgressSparseResult {
			sparseEvents++
		}
	})

	itinerary, err := matching.GenerateItinerary(context.Background(), twoDayPrefs(), observer)
	require.NoError(t, err)
	require.NotNil(t, itinerary, "a sparse result is still a result")

	assert.Equal(t, 3, scheduler.calls, "three attempts, then give up")
	assert.Equal(t, 3, sparseEvents)

	require.Len(t, discovery.quotas, 3)
	assert.Equal(t, []bool{false, true, true}, discovery.refreshs, "retries bypass the pool cache")
	assert.Equal(t, 4, discovery.quotas[0].MinMeals)
	assert.Equal(t, 8, discovery.quotas[1].MinMeals, "quotas scale with the attempt")
	assert.Equal(t, 12, discovery.quotas[2].MinMeals)
	assert.Equal(t, 30, discovery.quotas[2].MinActivities)
}

func TestGenerateItineraryDropsDisliked(t *testing.T) {
	discovery := &fakeDiscovery{pool: richPool()}
	scheduler := &fakeScheduler{}
	matching := newTestMatching(discovery, scheduler, &fakeEnricher{})

	prefs := twoDayPrefs()
	prefs.DislikedIDs = []string{"War Museum"}

	_, err := matching.GenerateItinerary(context.Background(), prefs, nil)
	require.NoError(t, err)

	require.Len(t, scheduler.pools, 1)
	for _, c := range scheduler.pools[0] {
		assert.NotEqual(t, "War Museum", c.ID)
	}
}

func TestGenerateItineraryCapsTripLength(t *testing.T) {
	discovery := &fakeDiscovery{pool: richPool()}
	scheduler := &fakeScheduler{}
	matching := newTestMatching(discovery, scheduler, &fakeEnricher{})

	prefs := twoDayPrefs()
	prefs.EndDate = prefs.StartDate.AddDate(0, 0, 30)

	_, err := matching.GenerateItinerary(context.Background(), prefs, nil)
	require.NoError(t, err)
	require.Len(t, scheduler.dayCounts, 1)
	assert.Equal(t, 14, scheduler.dayCounts[0])
}

func TestGenerateItineraryEnrichesPool(t *testing.T) {
	discovery := &fakeDiscovery{pool: richPool()}
	enricher := &fakeEnricher{}
	matching := newTestMatching(discovery, &fakeScheduler{}, enricher)

	_, err := matching.GenerateItinerary(context.Background(), twoDayPrefs(), nil)
	require.NoError(t, err)
	assert.Equal(t, len(richPool()), enricher.callCount(), "everything under the enrich limit gets hydrated")
}

func TestDropDislikedLeavesInputIntact(t *testing.T) {
	pool := []domain_models.Candidate{
		poi("Morning Cafe", "Cafe"),
		poi("War Museum", "Museum"),
		poi("Riverside Park", "Park"),
	}

	got := dropDisliked(pool, map[string]bool{"Morning Cafe": true})

	require.Len(t, got, 2)
	assert.Equal(t, "War Museum", got[0].ID)
	assert.Equal(t, "Riverside Park", got[1].ID)

	names := []string{pool[0].ID, pool[1].ID, pool[2].ID}
	assert.Equal(t, []string{"Morning Cafe", "War Museum", "Riverside Park"}, names,
		"discovery may hand over a cached slice shared across requests")
}

func TestGenerateItineraryDiscoveryErrorWithoutResult(t *testing.T) {
	discovery := &fakeDiscovery{err: utils.ErrDiscoveryFailed}
	matching := newTestMatching(discovery, &fakeScheduler{}, &fakeEnricher{})

	_, err := matching.GenerateItinerary(context.Background(), twoDayPrefs(), nil)
	assert.ErrorIs(t, err, utils.ErrDiscoveryFailed)
}
