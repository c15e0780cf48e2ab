package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

// ScheduleStage is one step of the pipeline. Exactly one stage owns the
// schedule state at a time; the scheduler passes it through the stage list
// in fixed order.
type ScheduleStage interface {
	Name() string
	Apply(ctx context.Context, state *domain_models.ScheduleState)
}

type mealSlot struct {
	label      string
	startMin   int
	duration   int
	strictTags *regexp.Regexp
	isDinner   bool
}

var mealSlots = []mealSlot{
	{
		label:      "Breakfast",
		startMin:   8 * 60,
		duration:   60,
		strictTags: regexp.MustCompile(`breakfast|cafe|bakery`),
	},
	{
		label:      "Dinner",
		startMin:   19*60 + 30,
		duration:   90,
		strictTags: regexp.MustCompile(`restaurant|dinner|steakhouse`),
		isDinner:   true,
	},
}

var explicitActivityPattern = regexp.MustCompile(`park|museum|monument|gallery|theater|cinema|movie`)

// AnchorMealsStage pins two meals per day at fixed times before the gap
// filler runs. Meals anchor the day's rhythm; everything else is scheduled
// around them.
type AnchorMealsStage struct {
	classifier CandidateClassifier
	transit    TransitEstimatorInterface
	cfg        domain_models.MatchingConfig
}

func NewAnchorMealsStage(classifier CandidateClassifier, transit TransitEstimatorInterface, cfg domain_models.MatchingConfig) *AnchorMealsStage {
	return &AnchorMealsStage{classifier: classifier, transit: transit, cfg: cfg}
}

func (s *AnchorMealsStage) Name() string { return "anchor-meals" }

func (s *AnchorMealsStage) Apply(ctx context.Context, state *domain_models.ScheduleState) {
	for di := range state.Days {
		day := &state.Days[di]
		for _, slot := range mealSlots {
			pick, ok := s.pickForSlot(state, slot)
			if !ok {
				// An unfillable slot stays empty; generation never fails
				// on a thin pool.
				continue
			}

			activity := domain_models.TripActivity{
				Vibe:      vibeFrom(&pick),
				StartTime: utils.FormatClock(slot.startMin),
				EndTime:   utils.FormatClock(slot.startMin + slot.duration),
				Note:      fmt.Sprintf("%s at %s", slot.label, pick.Name),
			}
			if len(day.Activities) > 0 {
				prev := day.Activities[len(day.Activities)-1]
				hint := s.transit.EstimateHop(ctx,
					domain_models.LatLng{Lat: prev.Vibe.Lat, Lng: prev.Vibe.Lng},
					domain_models.LatLng{Lat: pick.Lat, Lng: pick.Lng})
				activity.Transit = &hint
			}

			day.Activities = append(day.Activities, activity)
			state.Commit(&pick)
		}
	}
}

// pickForSlot runs three escalating tiers and takes the first candidate of
// the first non-empty one. The remaining pool keeps its ranking order, so
// "first" means "best surviving".
func (s *AnchorMealsStage) pickForSlot(state *domain_models.ScheduleState, slot mealSlot) (domain_models.Candidate, bool) {
	tiers := []func(c *domain_models.Candidate) bool{
		func(c *domain_models.Candidate) bool {
			return slot.strictTags.MatchString(candidateText(c)) && s.slotAllows(c, slot)
		},
		func(c *domain_models.Candidate) bool {
			return s.classifier.IsMeal(c) && s.slotAllows(c, slot)
		},
		func(c *domain_models.Candidate) bool {
			return !explicitActivityPattern.MatchString(candidateText(c)) && s.slotAllows(c, slot)
		},
	}

	for _, accepts := range tiers {
		for i := range state.Remaining {
			if accepts(&state.Remaining[i]) {
				return state.Remaining[i], true
			}
		}
	}
	return domain_models.Candidate{}, false
}

// Nightlife venues are fine for dinner but not for earlier meal slots.
func (s *AnchorMealsStage) slotAllows(c *domain_models.Candidate, slot mealSlot) bool {
	return slot.isDinner || !s.classifier.IsNightlife(c)
}

func vibeFrom(c *domain_models.Candidate) domain_models.Vibe {
	photo := ""
	if len(c.Photos) > 0 {
		photo = c.Photos[0]
	}
	return domain_models.Vibe{
		POIID:    c.ID,
		Name:     c.Name,
		Category: strings.Join(c.Meta.Categories, ", "),
		Address:  c.Address,
		Lat:      c.Lat,
		Lng:      c.Lng,
		Rating:   c.Rating,
		PhotoURL: photo,
	}
}
