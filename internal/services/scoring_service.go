package services

import (
	"regexp"
	"sort"
	"strings"

	"tripweaver/internal/models/domain_models"
)

// ScoringServiceInterface ranks the whole candidate pool once, globally,
// before any scheduling happens.
type ScoringServiceInterface interface {
	RankCandidates(candidates []domain_models.Candidate, prefs domain_models.Preferences) []domain_models.Candidate
}

type ScoringService struct {
	cfg domain_models.MatchingConfig
}

func NewScoringService(cfg domain_models.MatchingConfig) ScoringServiceInterface {
	return &ScoringService{cfg: cfg}
}

// traitSynonyms maps a preference trait to category keywords that indicate
// a match. Weights accumulate in the preference profile; matching traits
// add weight×TraitMultiplier.
var traitSynonyms = map[string][]string{
	"nature":    {"park", "garden", "mountain", "beach", "lake", "nature", "trail", "waterfall", "forest"},
	"urban":     {"city", "downtown", "skyline", "street", "plaza", "rooftop", "district"},
	"food":      {"restaurant", "food", "cafe", "culinary", "market", "bakery"},
	"nightlife": {"bar", "club", "pub", "lounge", "nightlife", "brewery"},
	"luxury":    {"spa", "resort", "fine dining", "boutique", "luxury", "yacht"},
	"culture":   {"museum", "gallery", "theater", "art", "cultural", "temple", "opera"},
	"history":   {"historic", "heritage", "monument", "castle", "ruins", "memorial", "pagoda"},
	"adventure": {"hike", "climb", "kayak", "zipline", "adventure", "dive", "rafting"},
	"relaxing":  {"spa", "park", "garden", "beach", "cafe", "tea house"},
	"social":    {"market", "plaza", "bar", "festival", "square", "food hall"},
}

// genericChains is the brand blacklist; the chain flag from metadata covers
// the rest.
var genericChains = []string{
	"mcdonald", "starbucks", "kfc", "burger king", "subway",
	"domino", "pizza hut", "7-eleven", "dunkin", "costa coffee",
}

var iconicPattern = regexp.MustCompile(`landmark|monument|palace|cathedral|tower|castle|bridge|opera house|world heritage`)

// RankCandidates returns a new slice sorted by descending score. The input
// is never mutated. Equal scores keep discovery order (stable sort), which
// pins deterministic output for identical inputs.
func (s *ScoringService) RankCandidates(candidates []domain_models.Candidate, prefs domain_models.Preferences) []domain_models.Candidate {
	ranked := make([]domain_models.Candidate, len(candidates))
	copy(ranked, candidates)

	categoryShare := categoryCounts(ranked)

	for i := range ranked {
		ranked[i].Score = s.scoreOne(&ranked[i], prefs, categoryShare, len(ranked))
		ranked[i].Scored = true
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}

func (s *ScoringService) scoreOne(c *domain_models.Candidate, prefs domain_models.Preferences, share map[string]int, poolSize int) float64 {
	score := c.Rating * s.cfg.RatingMultiplier
	if c.HasPhoto() {
		score += s.cfg.PhotoBonus
	}

	categoryText := strings.ToLower(strings.Join(c.Meta.Categories, " "))
	for trait, weight := range prefs.TraitWeights {
		if weight <= 0 {
			continue
		}
		for _, keyword := range traitSynonyms[trait] {
			if strings.Contains(categoryText, keyword) {
				score += weight * s.cfg.TraitMultiplier
				break
			}
		}
	}

	// A category flooding the pool drags every one of its members down a
	// little, so the top of the ranking keeps some variety.
	if poolSize > s.cfg.RedundancyMinPool {
		primary := strings.ToLower(c.PrimaryCategory())
		if primary != "" && float64(share[primary]) > s.cfg.RedundancyShare*float64(poolSize) {
			score -= s.cfg.RedundancyPenalty
		}
	}

	if c.Meta.Chain || matchesChainBlacklist(c.Name) {
		score -= s.cfg.ChainPenalty
	}

	if iconicPattern.MatchString(categoryText) {
		score += s.cfg.IconicBonus
	}

	return score
}

func categoryCounts(pool []domain_models.Candidate) map[string]int {
	counts := make(map[string]int)
	for i := range pool {
		primary := strings.ToLower(pool[i].PrimaryCategory())
		if primary != "" {
			counts[primary]++
		}
	}
	return counts
}

func matchesChainBlacklist(name string) bool {
	lower := strings.ToLower(name)
	for _, brand := range genericChains {
		if strings.Contains(lower, brand) {
			return true
		}
	}
	return false
}
