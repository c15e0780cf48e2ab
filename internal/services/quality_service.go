package services

import (
	"regexp"

	"tripweaver/internal/models/domain_models"
)

// Thin POIs are low-information candidates: structural or utility records,
// or entries with neither photos nor a rating. The gap filler caps them
// unless most of the pool is thin.
type QualityServiceInterface interface {
	IsThinPOI(c *domain_models.Candidate) bool
	CountHighQualityPOIs(pool []domain_models.Candidate) int
}

type QualityService struct{}

func NewQualityService() QualityServiceInterface {
	return &QualityService{}
}

var structuralPattern = regexp.MustCompile(`parking|station|terminal|atm|office|warehouse|intersection|bus stop|toll|depot`)

func (q *QualityService) IsThinPOI(c *domain_models.Candidate) bool {
	if structuralPattern.MatchString(candidateText(c)) {
		return true
	}
	return !c.HasPhoto() && c.Rating == 0
}

func (q *QualityService) CountHighQualityPOIs(pool []domain_models.Candidate) int {
	count := 0
	for i := range pool {
		if !q.IsThinPOI(&pool[i]) {
			count++
		}
	}
	return count
}
