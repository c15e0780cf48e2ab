package services

import (
	"regexp"
	"strings"

	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/taxonomy"
)

// DurationEstimatorInterface guesses how long a visit takes, in minutes.
type DurationEstimatorInterface interface {
	EstimateDuration(c *domain_models.Candidate) int
}

type DurationEstimator struct {
	table *taxonomy.Table
}

func NewDurationEstimator(table *taxonomy.Table) DurationEstimatorInterface {
	return &DurationEstimator{table: table}
}

type durationRule struct {
	minutes int
	pattern *regexp.Regexp
}

// Most specific patterns first: a "monument viewpoint" inside a park must
// hit the 30-minute rule before the generic park rule.
var durationRules = []durationRule{
	{180, regexp.MustCompile(`zoo|theme park|amusement|aquarium|safari|water park`)},
	{120, regexp.MustCompile(`museum|stadium|gallery|palace|fortress`)},
	{90, regexp.MustCompile(`castle|spa|onsen|hot spring|botanical`)},
	{75, regexp.MustCompile(`arcade|bowling|escape room|karaoke`)},
	{30, regexp.MustCompile(`viewpoint|monument|statue|bridge|overlook|observation`)},
	{60, regexp.MustCompile(`park|temple|pagoda|church|cathedral|shrine|market`)},
}

// Per-root defaults are too coarse on their own (a viewpoint and a zoo can
// share a root); they only back up the pattern tier.
var rootDefaults = map[string]int{
	taxonomy.RootArts:      120,
	taxonomy.RootLandmarks: 60,
	taxonomy.RootSports:    90,
	taxonomy.RootEvents:    120,
	taxonomy.RootDining:    60,
}

func (d *DurationEstimator) EstimateDuration(c *domain_models.Candidate) int {
	text := strings.ToLower(strings.Join(c.Meta.Categories, " ") + " " + c.Name)

	for _, rule := range durationRules {
		if rule.pattern.MatchString(text) {
			return rule.minutes
		}
	}

	if id := c.FirstCategoryID(); id != 0 {
		if root, ok := d.table.RootOf(id); ok {
			if minutes, ok := rootDefaults[root.Name]; ok {
				return minutes
			}
		}
	}

	return 60
}
