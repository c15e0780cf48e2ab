package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/memcache"
	"tripweaver/pkg/utils"
)

// CandidateQuota is what an engine attempt needs from discovery. BiasText,
// when set, pulls extra candidates by embedding similarity on top of the
// city listing.
type CandidateQuota struct {
	MinMeals      int
	MinActivities int
	BiasText      string
}

func (q CandidateQuota) total() int {
	return q.MinMeals + q.MinActivities
}

type DiscoveryServiceInterface interface {
	FindCandidates(ctx context.Context, city domain_models.City, quota CandidateQuota, forceRefresh bool) ([]domain_models.Candidate, error)
}

type discoveryService struct {
	pois       repositories.POIRepository
	embeddings repositories.IPoiEmbeddingRepository
	embedder   utils.EmbeddingClientInterface
	classifier CandidateClassifier
	cache      memcache.CandidatePoolCache
	cacheTTL   time.Duration
}

func NewDiscoveryService(
	pois repositories.POIRepository,
	embeddings repositories.IPoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
	classifier CandidateClassifier,
	cache memcache.CandidatePoolCache,
) DiscoveryServiceInterface {
	return &discoveryService{
		pois:       pois,
		embeddings: embeddings,
		embedder:   embedder,
		classifier: classifier,
		cache:      cache,
		cacheTTL:   15 * time.Minute,
	}
}

func (s *discoveryService) FindCandidates(ctx context.Context, city domain_models.City, quota CandidateQuota, forceRefresh bool) ([]domain_models.Candidate, error) {
	if forceRefresh {
		s.cache.Invalidate(city.ID)
	} else if pool, ok := s.cache.Get(city.ID); ok && s.quotaMet(pool, quota) {
		return pool, nil
	}

	// Over-fetch so classification shortfalls in one bucket do not starve
	// the other.
	limit := quota.total() * 4
	if limit < 40 {
		limit = 40
	}

	rows, err := s.pois.ListByCity(ctx, city.ID, limit)
	if err != nil {
		log.Printf("discovery: listing pois for city %s: %v", city.ID, err)
		return nil, utils.ErrDiscoveryFailed
	}

	pool := make([]domain_models.Candidate, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		c := candidateFromRow(row)
		pool = append(pool, c)
		seen[c.ID] = true
	}

	if quota.BiasText != "" {
		biased := s.biasedCandidates(ctx, quota)
		for _, c := range biased {
			if !seen[c.ID] {
				pool = append(pool, c)
				seen[c.ID] = true
			}
		}
	}

	s.cache.Set(city.ID, pool, s.cacheTTL)
	return pool, nil
}

// biasedCandidates embeds the bias text and pulls the nearest stored rows.
// Any failure here degrades to the plain city listing.
func (s *discoveryService) biasedCandidates(ctx context.Context, quota CandidateQuota) []domain_models.Candidate {
	if s.embedder == nil {
		return nil
	}

	vector, err := s.embedder.GetEmbedding(ctx, quota.BiasText)
	if err != nil {
		log.Printf("discovery: embedding bias text: %v", err)
		return nil
	}

	matches, err := s.embeddings.ListByVector(vector, quota.total())
	if err != nil {
		log.Printf("discovery: vector search: %v", err)
		return nil
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.PoiID)
	}

	rows, err := s.pois.ListByIDs(ctx, ids)
	if err != nil {
		log.Printf("discovery: loading biased pois: %v", err)
		return nil
	}

	out := make([]domain_models.Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, candidateFromRow(row))
	}
	return out
}

func (s *discoveryService) quotaMet(pool []domain_models.Candidate, quota CandidateQuota) bool {
	meals, activities := 0, 0
	for i := range pool {
		if s.classifier.IsMeal(&pool[i]) {
			meals++
		}
		if s.classifier.IsActivity(&pool[i]) {
			activities++
		}
	}
	return meals >= quota.MinMeals && activities >= quota.MinActivities
}

// candidateFromRow projects a stored POI into the engine's candidate shape.
// Opening hours arrive as the provider's JSON payload; an unparseable blob
// leaves Hours nil, which the time window service treats as open.
func candidateFromRow(row *db_models.POI) domain_models.Candidate {
	ids := make([]int, 0, len(row.CategoryIDs))
	for _, id := range row.CategoryIDs {
		ids = append(ids, int(id))
	}

	c := domain_models.Candidate{
		ID:      row.ID.String(),
		Name:    row.Name,
		CityID:  row.CityID.String(),
		Lat:     row.Lat,
		Lng:     row.Lng,
		Address: row.Address,
		Rating:  row.Rating,
		Website: row.Website,
		Phone:   row.Phone,
		Photos:  []string(row.Photos),
		Meta: domain_models.CandidateMeta{
			Categories:  []string(row.Categories),
			CategoryIDs: ids,
			Chain:       row.IsChain,
		},
	}
	if row.ExternalID != "" {
		c.ExternalIDs = []string{row.ExternalID}
	}
	if row.OpeningHours != "" {
		c.Hours = parseOpeningHours(row.OpeningHours)
	}
	return c
}

func parseOpeningHours(raw string) *domain_models.OpeningHours {
	var payload struct {
		Periods []struct {
			Day   int    `json:"day"`
			Open  string `json:"open"`
			Close string `json:"close"`
		} `json:"periods"`
		WeekdayText []string `json:"weekday_text"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("discovery: unparseable opening hours payload: %v", err)
		return nil
	}

	hours := &domain_models.OpeningHours{WeekdayText: payload.WeekdayText}
	for _, p := range payload.Periods {
		hours.Periods = append(hours.Periods, domain_models.OpenPeriod{
			Day:   p.Day,
			Open:  p.Open,
			Close: p.Close,
		})
	}
	return hours
}
