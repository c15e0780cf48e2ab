package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

const (
	dayStartMinute = 9 * 60
	dayEndMinute   = 19*60 + 30
	matineeCutoff  = 14 * 60
	cozyStart      = 16 * 60
	cozyEnd        = 19 * 60
)

// FillActivitiesStage walks the free time around each day's anchors and
// greedily fills it, one candidate at a time, under the competing
// penalties: proximity, diversity, daylight, opening hours, zones, POI
// quality and season.
type FillActivitiesStage struct {
	classifier  CandidateClassifier
	estimator   DurationEstimatorInterface
	zones       ZoneServiceInterface
	timeWindows TimeWindowServiceInterface
	quality     QualityServiceInterface
	transit     TransitEstimatorInterface
	cfg         domain_models.MatchingConfig
}

func NewFillActivitiesStage(
	classifier CandidateClassifier,
	estimator DurationEstimatorInterface,
	zones ZoneServiceInterface,
	timeWindows TimeWindowServiceInterface,
	quality QualityServiceInterface,
	transit TransitEstimatorInterface,
	cfg domain_models.MatchingConfig,
) *FillActivitiesStage {
	return &FillActivitiesStage{
		classifier:  classifier,
		estimator:   estimator,
		zones:       zones,
		timeWindows: timeWindows,
		quality:     quality,
		transit:     transit,
		cfg:         cfg,
	}
}

func (s *FillActivitiesStage) Name() string { return "fill-activities" }

// dayGap is a stretch of unscheduled time plus the location context at its
// start (the anchor just before it, if any).
type dayGap struct {
	start    int
	end      int
	fromLoc  *domain_models.LatLng
	fromZone string
}

func (s *FillActivitiesStage) Apply(ctx context.Context, state *domain_models.ScheduleState) {
	// The thin-POI cap stops applying when most of the pool is thin;
	// otherwise sparse inventories would schedule almost nothing.
	mostlyThin := s.quality.CountHighQualityPOIs(state.Original)*2 < len(state.Original)

	for di := range state.Days {
		day := &state.Days[di]
		sortActivitiesByStart(day.Activities)

		tracker := NewDiversityTracker(s.cfg)
		for _, act := range day.Activities {
			tracker.Record([]string{act.Vibe.Category})
		}

		sunsetLat := 0.0
		if state.Center != nil {
			sunsetLat = state.Center.Lat
		}
		sunset := s.timeWindows.SunsetMinutes(sunsetLat, day.Date)

		thinUsed := 0
		for _, gap := range s.gapsFor(day, state.Center) {
			if gap.end-gap.start <= s.cfg.MinGapMinutes {
				continue
			}
			s.fillGap(ctx, state, day, gap, tracker, sunset, mostlyThin, &thinUsed)
		}

		sortActivitiesByStart(day.Activities)
	}
}

func (s *FillActivitiesStage) gapsFor(day *domain_models.DayPlan, center *domain_models.LatLng) []dayGap {
	if len(day.Activities) == 0 {
		return []dayGap{{start: dayStartMinute, end: dayEndMinute, fromLoc: center}}
	}

	var gaps []dayGap
	first := utils.ParseClock(day.Activities[0].StartTime)
	if first > dayStartMinute {
		gaps = append(gaps, dayGap{start: dayStartMinute, end: first, fromLoc: center})
	}

	for i := 0; i < len(day.Activities)-1; i++ {
		prev := day.Activities[i]
		next := day.Activities[i+1]
		gaps = append(gaps, dayGap{
			start:    utils.ParseClock(prev.EndTime),
			end:      utils.ParseClock(next.StartTime),
			fromLoc:  &domain_models.LatLng{Lat: prev.Vibe.Lat, Lng: prev.Vibe.Lng},
			fromZone: s.zones.ZoneOf(prev.Vibe.Lat, prev.Vibe.Lng, center),
		})
	}

	last := day.Activities[len(day.Activities)-1]
	lastEnd := utils.ParseClock(last.EndTime)
	if lastEnd < dayEndMinute {
		gaps = append(gaps, dayGap{
			start:    lastEnd,
			end:      dayEndMinute,
			fromLoc:  &domain_models.LatLng{Lat: last.Vibe.Lat, Lng: last.Vibe.Lng},
			fromZone: s.zones.ZoneOf(last.Vibe.Lat, last.Vibe.Lng, center),
		})
	}

	return gaps
}

func (s *FillActivitiesStage) fillGap(
	ctx context.Context,
	state *domain_models.ScheduleState,
	day *domain_models.DayPlan,
	gap dayGap,
	tracker *DiversityTracker,
	sunset int,
	mostlyThin bool,
	thinUsed *int,
) {
	cursor := gap.start
	loc := gap.fromLoc
	zone := gap.fromZone
	zoneChanges := 0

	// Bounded loop as a runaway guard; a healthy gap exhausts its time or
	// its pool long before 20 picks.
	for iter := 0; iter < s.cfg.MaxGapIterations; iter++ {
		pool := s.activityPool(state)
		if len(pool) == 0 {
			return
		}

		bestIdx := -1
		bestScore := 0.0
		for _, idx := range pool {
			score := s.gapScore(&state.Remaining[idx], loc, zone, cursor, day.Date, tracker, sunset, zoneChanges, mostlyThin, *thinUsed)
			if bestIdx == -1 || score > bestScore {
				bestIdx = idx
				bestScore = score
			}
		}

		pick := state.Remaining[bestIdx]
		duration := s.estimator.EstimateDuration(&pick)
		if cursor+duration > gap.end-s.cfg.GapSafetyMinutes {
			return
		}

		activity := domain_models.TripActivity{
			Vibe:      vibeFrom(&pick),
			StartTime: utils.FormatClock(cursor),
			EndTime:   utils.FormatClock(cursor + duration),
			Note:      fmt.Sprintf("Visit %s", pick.Name),
		}
		if loc != nil {
			hint := s.transit.EstimateHop(ctx, *loc, domain_models.LatLng{Lat: pick.Lat, Lng: pick.Lng})
			activity.Transit = &hint
		}
		day.Activities = append(day.Activities, activity)

		state.Commit(&pick)
		tracker.Record(pick.Meta.Categories)
		if s.quality.IsThinPOI(&pick) {
			*thinUsed++
		}

		friction := s.zones.CenterFrictionMinutes(zone, pick.Zone)
		if zone != "" && pick.Zone != "" && zone != pick.Zone {
			zoneChanges++
		}

		cursor += duration + s.cfg.TransitBufferMinutes + friction
		loc = &domain_models.LatLng{Lat: pick.Lat, Lng: pick.Lng}
		if pick.Zone != "" {
			zone = pick.Zone
		}
	}
}

// activityPool returns indexes into Remaining for unused activity
// candidates. An empty pool ends the gap and feeds the sparse-day signal.
func (s *FillActivitiesStage) activityPool(state *domain_models.ScheduleState) []int {
	var pool []int
	for i := range state.Remaining {
		if state.IsUsed(&state.Remaining[i]) {
			continue
		}
		if s.classifier.IsActivity(&state.Remaining[i]) {
			pool = append(pool, i)
		}
	}
	return pool
}

func (s *FillActivitiesStage) gapScore(
	c *domain_models.Candidate,
	loc *domain_models.LatLng,
	zone string,
	nowMinutes int,
	date time.Time,
	tracker *DiversityTracker,
	sunset int,
	zoneChanges int,
	mostlyThin bool,
	thinUsed int,
) float64 {
	score := c.Score

	if loc != nil {
		score += s.proximityAdjustment(c, loc)
	}

	score -= tracker.Penalty(c.Meta.Categories)
	score -= s.timeWindows.OutdoorPenalty(c, nowMinutes, sunset)

	if !s.timeWindows.IsOpenAt(c, date.Weekday(), nowMinutes) {
		score -= s.cfg.ClosedPenalty
	}

	score -= s.zones.ZoneChangePenalty(zone, c.Zone)

	// Cinemas, theaters and bars waste a morning; push them past 14:00.
	text := candidateText(c)
	if nowMinutes < matineeCutoff && (indoorSeated.MatchString(text) || s.classifier.IsNightlife(c)) {
		score -= s.cfg.MatineePenalty
	}

	if zoneChanges >= s.cfg.ZoneChangeLimit && zone != "" && c.Zone != "" && c.Zone != zone {
		score -= s.cfg.ZoneLimitPenalty
	}

	if thinUsed >= s.cfg.ThinPOILimit && !mostlyThin && s.quality.IsThinPOI(c) {
		score -= s.cfg.ThinPOIPenalty
	}

	score -= s.timeWindows.SeasonPenalty(c, date)

	if nowMinutes >= cozyStart && nowMinutes < cozyEnd && cozyPattern.MatchString(text) {
		score += s.cfg.CozyBonus
	}

	return score
}

// proximityAdjustment rewards staying close and punishes long hops, with
// an extra penalty when a far candidate is not even well rated; a weak POI
// has to be nearby to be worth the travel.
func (s *FillActivitiesStage) proximityAdjustment(c *domain_models.Candidate, loc *domain_models.LatLng) float64 {
	dist := utils.HaversineKm(loc.Lat, loc.Lng, c.Lat, c.Lng)

	adj := 0.0
	switch {
	case dist <= s.cfg.ProximityNearKm:
		adj = s.cfg.ProximityNearBonus
	case dist <= s.cfg.ProximityMidKm:
		adj = s.cfg.ProximityMidBonus
	case dist <= s.cfg.ProximityFarKm:
		adj = -s.cfg.ProximityFarPenalty
	case dist <= s.cfg.ProximityEdgeKm:
		adj = -s.cfg.ProximityEdgePenalty
	default:
		adj = -s.cfg.ProximityBeyondPenalty
	}

	if dist > s.cfg.ProximityFarKm && c.Score < s.cfg.LongHopScoreFloor {
		adj -= s.cfg.LongHopLowScorePenalty
	}
	return adj
}

func sortActivitiesByStart(activities []domain_models.TripActivity) {
	sort.SliceStable(activities, func(a, b int) bool {
		return utils.ParseClock(activities[a].StartTime) < utils.ParseClock(activities[b].StartTime)
	})
}
