package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tripweaver/internal/models/domain_models"
)

// SchedulerInterface builds the day skeleton and runs the scheduling
// pipeline over it.
type SchedulerInterface interface {
	BuildItinerary(ctx context.Context, city domain_models.City, startDate time.Time, dayCount int, candidates []domain_models.Candidate, observer ProgressObserver) *domain_models.Itinerary
}

type Scheduler struct {
	zones  ZoneServiceInterface
	stages []ScheduleStage
}

// NewScheduler wires the pipeline in its fixed order: meals anchor first,
// activities fill around them.
func NewScheduler(zones ZoneServiceInterface, meals *AnchorMealsStage, fill *FillActivitiesStage) SchedulerInterface {
	return &Scheduler{
		zones:  zones,
		stages: []ScheduleStage{meals, fill},
	}
}

var neighborhoodNames = map[string]string{
	ZoneCenter: "City Center",
	ZoneNorth:  "North Side",
	ZoneEast:   "East Side",
	ZoneSouth:  "South Side",
	ZoneWest:   "West Side",
}

func (s *Scheduler) BuildItinerary(ctx context.Context, city domain_models.City, startDate time.Time, dayCount int, candidates []domain_models.Candidate, observer ProgressObserver) *domain_models.Itinerary {
	var center *domain_models.LatLng
	if city.Lat != 0 || city.Lng != 0 {
		center = &domain_models.LatLng{Lat: city.Lat, Lng: city.Lng}
	}

	s.zones.AssignZones(candidates, center)

	state := domain_models.NewScheduleState(candidates, center)
	for i := 0; i < dayCount; i++ {
		state.Days = append(state.Days, domain_models.DayPlan{
			Date:      startDate.AddDate(0, 0, i),
			DayNumber: i + 1,
		})
	}

	for _, stage := range s.stages {
		stage.Apply(ctx, state)
	}

	for i := range state.Days {
		state.Days[i].Neighborhood = s.neighborhoodFor(&state.Days[i], center)
		observer.emit(ProgressDayScheduled, map[string]interface{}{
			"day":        state.Days[i].DayNumber,
			"activities": len(state.Days[i].Activities),
		})
	}

	return &domain_models.Itinerary{
		ID:        uuid.New().String(),
		CityID:    city.ID,
		Days:      state.Days,
		CreatedAt: time.Now(),
	}
}

// neighborhoodFor labels a day by the zone its activities spend the most
// stops in.
func (s *Scheduler) neighborhoodFor(day *domain_models.DayPlan, center *domain_models.LatLng) string {
	counts := make(map[string]int)
	for _, act := range day.Activities {
		zone := s.zones.ZoneOf(act.Vibe.Lat, act.Vibe.Lng, center)
		if zone != "" {
			counts[zone]++
		}
	}

	best, bestCount := "", 0
	for _, zone := range []string{ZoneCenter, ZoneNorth, ZoneEast, ZoneSouth, ZoneWest} {
		if counts[zone] > bestCount {
			best, bestCount = zone, counts[zone]
		}
	}
	if name, ok := neighborhoodNames[best]; ok {
		return name
	}
	return ""
}
