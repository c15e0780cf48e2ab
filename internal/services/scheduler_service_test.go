package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

func newTestScheduler() SchedulerInterface {
	cfg := domain_models.DefaultMatchingConfig()
	classifier := NewCandidateClassifier(engineTestTable())
	transit := NewHaversineTransitEstimator()
	zones := NewZoneService(cfg)

	meals := NewAnchorMealsStage(classifier, transit, cfg)
	fill := NewFillActivitiesStage(
		classifier,
		NewDurationEstimator(engineTestTable()),
		zones,
		NewTimeWindowService(cfg),
		NewQualityService(),
		transit,
		cfg,
	)
	return NewScheduler(zones, meals, fill)
}

func testCity() domain_models.City {
	return domain_models.City{
		ID:   "11111111-1111-1111-1111-111111111111",
		Name: "Hanoi",
		Slug: "hanoi",
		Lat:  21.0278,
		Lng:  105.8342,
	}
}

func richPool() []domain_models.Candidate {
	names := []struct {
		name     string
		category string
		score    float64
	}{
		{"Morning Cafe", "Cafe", 80},
		{"Old Town Bakery", "Bakery", 75},
		{"Riverside Restaurant", "Restaurant", 70},
		{"Hillside Steakhouse", "Steakhouse", 65},
		{"War Museum", "Museum", 60},
		{"City Gallery", "Gallery", 55},
		{"Riverside Park", "Park", 50},
		{"Botanic Garden", "Garden", 45},
		{"Old Temple", "Temple", 40},
		{"Skyline Viewpoint", "Viewpoint", 35},
		{"Night Market", "Market", 30},
		{"Grand Theater", "Theater", 25},
		{"Ancient Citadel", "Fortress", 20},
		{"Stone Bridge", "Bridge", 15},
	}

	var pool []domain_models.Candidate
	for i, n := range names {
		c := poi(n.name, n.category)
		c.Lat = 21.0278 + float64(i)*0.001
		c.Lng = 105.8342
		c.Rating = 4
		c.Photos = []string{"p.jpg"}
		c.Score = n.score
		c.Scored = true
		pool = append(pool, c)
	}
	return pool
}

func TestBuildItineraryTwoDays(t *testing.T) {
	scheduler := newTestScheduler()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	itinerary := scheduler.BuildItinerary(context.Background(), testCity(), start, 2, richPool(), nil)

	require.NotNil(t, itinerary)
	assert.Equal(t, testCity().ID, itinerary.CityID)
	assert.NotEmpty(t, itinerary.ID)
	require.Len(t, itinerary.Days, 2)

	// Two meals per day, then at least four extra stops on day one and
	// three on day two out of the shared pool.
	minStops := []int{6, 5}

	seen := map[string]bool{}
	for di, day := range itinerary.Days {
		assert.Equal(t, di+1, day.DayNumber)
		assert.Equal(t, start.AddDate(0, 0, di), day.Date)
		require.GreaterOrEqual(t, len(day.Activities), minStops[di], "each day gets meals plus activities")

		assert.Equal(t, "08:00", day.Activities[0].StartTime, "breakfast opens the day")
		last := day.Activities[len(day.Activities)-1]
		assert.Equal(t, "19:30", last.StartTime, "dinner closes the day")
		assert.Equal(t, "21:00", last.EndTime)

		for i := 1; i < len(day.Activities); i++ {
			prevEnd := utils.ParseClock(day.Activities[i-1].EndTime)
			assert.GreaterOrEqual(t, utils.ParseClock(day.Activities[i].StartTime), prevEnd)
		}
		for _, act := range day.Activities {
			assert.False(t, seen[act.Vibe.POIID], "%s appears twice", act.Vibe.Name)
			seen[act.Vibe.POIID] = true
		}
		assert.NotEmpty(t, day.Neighborhood)
	}
}

func TestBuildItinerarySteakhouseAndParkOnly(t *testing.T) {
	scheduler := newTestScheduler()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	steakhouse := poi("Hillside Steakhouse", "Steakhouse")
	steakhouse.Lat, steakhouse.Lng = 21.03, 105.84
	steakhouse.Score, steakhouse.Scored = 50, true
	park := poi("Riverside Park", "Park")
	park.Lat, park.Lng = 21.031, 105.841
	park.Score, park.Scored = 40, true

	itinerary := scheduler.BuildItinerary(context.Background(), testCity(), start, 1,
		[]domain_models.Candidate{steakhouse, park}, nil)

	require.Len(t, itinerary.Days, 1)
	day := itinerary.Days[0]
	require.Len(t, day.Activities, 2)

	// The steakhouse is the only meal venue; the park can only be an
	// activity, so one meal slot stays empty.
	assert.Equal(t, "Hillside Steakhouse", day.Activities[0].Vibe.Name)
	assert.Equal(t, "08:00", day.Activities[0].StartTime)
	assert.Equal(t, "Riverside Park", day.Activities[1].Vibe.Name)
	assert.Equal(t, "09:00", day.Activities[1].StartTime)
}

func TestBuildItineraryDateProgression(t *testing.T) {
	scheduler := newTestScheduler()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	itinerary := scheduler.BuildItinerary(context.Background(), testCity(), start, 3, richPool(), nil)

	require.Len(t, itinerary.Days, 3)
	for i, day := range itinerary.Days {
		assert.Equal(t, time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC), day.Date)
		assert.Equal(t, i+1, day.DayNumber)
	}
}

func TestBuildItineraryEmptyPool(t *testing.T) {
	scheduler := newTestScheduler()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	itinerary := scheduler.BuildItinerary(context.Background(), testCity(), start, 2, nil, nil)

	require.Len(t, itinerary.Days, 2)
	for _, day := range itinerary.Days {
		assert.Empty(t, day.Activities)
		assert.Empty(t, day.Neighborhood)
	}
}

func TestBuildItineraryEmitsDayEvents(t *testing.T) {
	scheduler := newTestScheduler()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	var events []ProgressEvent
	observer := ProgressObserver(func(event ProgressEvent, params map[string]interface{}) {
		events = append(events, event)
	})

	scheduler.BuildItinerary(context.Background(), testCity(), start, 2, richPool(), observer)

	count := 0
	for _, e := range events {
		if e == ProgressDayScheduled {
			count++
		}
	}
	assert.Equal(t, 2, count)
}
