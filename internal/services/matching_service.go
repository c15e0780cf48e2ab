package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

// MatchingServiceInterface is the generation entry point: discover, rank,
// enrich, schedule, and retry with a wider net when the result comes back
// sparse.
type MatchingServiceInterface interface {
	GenerateItinerary(ctx context.Context, prefs domain_models.Preferences, observer ProgressObserver) (*domain_models.Itinerary, error)
}

type matchingService struct {
	cities     CityServiceInterface
	discovery  DiscoveryServiceInterface
	scoring    ScoringServiceInterface
	classifier CandidateClassifier
	enricher   EnrichmentServiceInterface
	scheduler  SchedulerInterface
	cfg        domain_models.MatchingConfig
}

func NewMatchingService(
	cities CityServiceInterface,
	discovery DiscoveryServiceInterface,
	scoring ScoringServiceInterface,
	classifier CandidateClassifier,
	enricher EnrichmentServiceInterface,
	scheduler SchedulerInterface,
	cfg domain_models.MatchingConfig,
) MatchingServiceInterface {
	return &matchingService{
		cities:     cities,
		discovery:  discovery,
		scoring:    scoring,
		classifier: classifier,
		enricher:   enricher,
		scheduler:  scheduler,
		cfg:        cfg,
	}
}

func (s *matchingService) GenerateItinerary(ctx context.Context, prefs domain_models.Preferences, observer ProgressObserver) (*domain_models.Itinerary, error) {
	city, err := s.cities.ResolveCity(ctx, prefs.CityID)
	if err != nil {
		return nil, err
	}

	dayCount := utils.DayCountInclusive(prefs.StartDate, prefs.EndDate)
	if dayCount == 0 {
		return nil, utils.ErrInvalidDateRange
	}
	if dayCount > s.cfg.MaxTripDays {
		dayCount = s.cfg.MaxTripDays
	}

	disliked := make(map[string]bool, len(prefs.DislikedIDs))
	for _, id := range prefs.DislikedIDs {
		disliked[id] = true
	}
	biasText := s.biasText(prefs)

	var best *domain_models.Itinerary
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		quota := CandidateQuota{
			MinMeals:      dayCount * 2 * attempt,
			MinActivities: dayCount * 5 * attempt,
			BiasText:      biasText,
		}

		pool, err := s.discovery.FindCandidates(ctx, city, quota, attempt > 1)
		if err != nil {
			log.Printf("matching: discovery attempt %d: %v", attempt, err)
			if best != nil {
				return best, nil
			}
			return nil, err
		}

		pool = dropDisliked(pool, disliked)
		ranked := s.scoring.RankCandidates(pool, prefs)
		keep := s.cutPool(ranked, quota, prefs.LikedIDs)

		s.enrichBatch(ctx, keep, observer)

		best = s.scheduler.BuildItinerary(ctx, city, prefs.StartDate, dayCount, keep, observer)
		if !s.isSparse(best) {
			break
		}

		observer.emit(ProgressSparseResult, map[string]interface{}{"attempt": attempt})
		if attempt < s.cfg.MaxAttempts {
			observer.emit(ProgressPoolExpand, map[string]interface{}{"attempt": attempt + 1})
		}
	}

	return best, nil
}

// biasText turns positive trait weights into a discovery bias phrase.
func (s *matchingService) biasText(prefs domain_models.Preferences) string {
	traits := make([]string, 0, len(prefs.TraitWeights))
	for trait, weight := range prefs.TraitWeights {
		if weight > 0 {
			traits = append(traits, trait)
		}
	}
	if len(traits) == 0 {
		return ""
	}
	sort.Strings(traits)
	return strings.Join(traits, " ")
}

// dropDisliked filters into a fresh slice. The input may be a cached pool
// shared with other requests, so it must stay untouched.
func dropDisliked(pool []domain_models.Candidate, disliked map[string]bool) []domain_models.Candidate {
	if len(disliked) == 0 {
		return pool
	}
	out := make([]domain_models.Candidate, 0, len(pool))
	for _, c := range pool {
		skip := disliked[c.ID]
		for _, ext := range c.ExternalIDs {
			if disliked[ext] {
				skip = true
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

// cutPool trims the ranked list to the quota size, keeping rank order.
// Liked candidates survive the cut unconditionally, and meals below the cut
// line are pulled up so the anchor stage does not run dry.
func (s *matchingService) cutPool(ranked []domain_models.Candidate, quota CandidateQuota, likedIDs []string) []domain_models.Candidate {
	liked := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	limit := quota.MinMeals + quota.MinActivities
	if limit >= len(ranked) {
		return ranked
	}

	keep := make([]domain_models.Candidate, 0, limit)
	mealCount := 0
	for i := range ranked[:limit] {
		if s.classifier.IsMeal(&ranked[i]) {
			mealCount++
		}
		keep = append(keep, ranked[i])
	}

	for i := limit; i < len(ranked); i++ {
		c := ranked[i]
		switch {
		case liked[c.ID]:
			keep = append(keep, c)
		case mealCount < quota.MinMeals && s.classifier.IsMeal(&c):
			keep = append(keep, c)
			mealCount++
		}
	}
	return keep
}

// enrichBatch hydrates the head of the pool with provider details, a fixed
// number of candidates at a time. A failed candidate stays unenriched.
func (s *matchingService) enrichBatch(ctx context.Context, pool []domain_models.Candidate, observer ProgressObserver) {
	limit := s.cfg.EnrichLimit
	if limit > len(pool) {
		limit = len(pool)
	}

	for start := 0; start < limit; start += s.cfg.EnrichBatchSize {
		end := start + s.cfg.EnrichBatchSize
		if end > limit {
			end = limit
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(c *domain_models.Candidate) {
				defer wg.Done()
				if err := s.enricher.Enrich(ctx, c); err != nil {
					log.Printf("matching: enriching %s: %v", c.ID, err)
				}
			}(&pool[i])
		}
		wg.Wait()

		observer.emit(ProgressEnrichBatch, map[string]interface{}{
			"from": start,
			"to":   end,
		})
	}
}

// isSparse flags a result worth retrying: an empty day, or a day that winds
// down before the evening.
func (s *matchingService) isSparse(itinerary *domain_models.Itinerary) bool {
	if itinerary == nil {
		return true
	}
	for _, day := range itinerary.Days {
		if len(day.Activities) == 0 {
			return true
		}
		last := day.Activities[len(day.Activities)-1]
		if end := utils.ParseClock(last.EndTime); end >= 0 && end < s.cfg.SparseDayEndMinute {
			return true
		}
	}
	return false
}
