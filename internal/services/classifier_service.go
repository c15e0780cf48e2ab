package services

import (
	"regexp"
	"strings"

	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/taxonomy"
)

// CandidateClassifier decides whether a candidate is a meal stop, an
// activity, or nightlife. The taxonomy path is authoritative; the legacy
// text path only handles records that carry no category ids and should be
// removed once all sources ship ids.
type CandidateClassifier interface {
	IsMeal(c *domain_models.Candidate) bool
	IsActivity(c *domain_models.Candidate) bool
	IsNightlife(c *domain_models.Candidate) bool
	IsCategoryDescendant(categoryID, rootID int) bool
}

type taxonomyClassifier struct {
	table  *taxonomy.Table
	legacy *legacyTextClassifier
}

func NewCandidateClassifier(table *taxonomy.Table) CandidateClassifier {
	return &taxonomyClassifier{
		table:  table,
		legacy: newLegacyTextClassifier(),
	}
}

func (t *taxonomyClassifier) IsCategoryDescendant(categoryID, rootID int) bool {
	return t.table.IsDescendant(categoryID, rootID)
}

func (t *taxonomyClassifier) descendsFromRoot(categoryID int, rootName string) bool {
	rootID, ok := t.table.RootIDByName(rootName)
	if !ok {
		return false
	}
	return t.table.IsDescendant(categoryID, rootID)
}

func (t *taxonomyClassifier) IsMeal(c *domain_models.Candidate) bool {
	if id := c.FirstCategoryID(); id != 0 {
		if _, known := t.table.Node(id); known {
			return t.descendsFromRoot(id, taxonomy.RootDining)
		}
	}
	return t.legacy.isMeal(c)
}

var activityRoots = []string{
	taxonomy.RootArts,
	taxonomy.RootLandmarks,
	taxonomy.RootSports,
	taxonomy.RootEvents,
}

func (t *taxonomyClassifier) IsActivity(c *domain_models.Candidate) bool {
	if id := c.FirstCategoryID(); id != 0 {
		if _, known := t.table.Node(id); known {
			for _, root := range activityRoots {
				if t.descendsFromRoot(id, root) {
					return true
				}
			}
			return false
		}
	}
	return t.legacy.isActivity(c)
}

// Nightlife has no dedicated taxonomy root; category labels and names are
// the signal on both paths.
func (t *taxonomyClassifier) IsNightlife(c *domain_models.Candidate) bool {
	return t.legacy.isNightlife(c)
}

// legacyTextClassifier matches category labels and names against fixed
// token sets. Hybrids like "market" count as both meal and activity.
type legacyTextClassifier struct {
	food      *regexp.Regexp
	nightlife *regexp.Regexp
	hybrid    *regexp.Regexp
}

func newLegacyTextClassifier() *legacyTextClassifier {
	return &legacyTextClassifier{
		food:      regexp.MustCompile(`\b(restaurant|cafe|coffee|bakery|breakfast|brunch|diner|eatery|bistro|pho|noodle|bbq|steakhouse|pizzeria|buffet|food)\b`),
		nightlife: regexp.MustCompile(`\b(bar|pub|club|nightclub|lounge|karaoke|brewery|speakeasy)\b`),
		hybrid:    regexp.MustCompile(`\b(market|food hall|food court|winery|night market)\b`),
	}
}

func classifierText(c *domain_models.Candidate) string {
	parts := make([]string, 0, len(c.Meta.Categories)+1)
	parts = append(parts, c.Meta.Categories...)
	parts = append(parts, c.Name)
	return strings.ToLower(strings.Join(parts, " "))
}

func (l *legacyTextClassifier) isMeal(c *domain_models.Candidate) bool {
	text := classifierText(c)
	return l.food.MatchString(text) || l.hybrid.MatchString(text)
}

// Activities are everything that is not a pure meal venue; hybrids stay in
// both buckets by design.
func (l *legacyTextClassifier) isActivity(c *domain_models.Candidate) bool {
	text := classifierText(c)
	if l.hybrid.MatchString(text) {
		return true
	}
	return !l.food.MatchString(text)
}

func (l *legacyTextClassifier) isNightlife(c *domain_models.Candidate) bool {
	return l.nightlife.MatchString(classifierText(c))
}
