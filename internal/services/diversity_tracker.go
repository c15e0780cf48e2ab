package services

import (
	"math"
	"regexp"
	"strings"

	"tripweaver/internal/models/domain_models"
)

// DiversityTracker discourages scheduling the same kind of stop twice in a
// day. Its lifecycle is per-day: re-seeded from the day's anchored meals
// before gap filling and discarded afterwards.
type DiversityTracker struct {
	cfg    domain_models.MatchingConfig
	counts map[string]int
}

type diversityRule struct {
	group   string
	pattern *regexp.Regexp
}

var diversityRules = []diversityRule{
	{"cinema", regexp.MustCompile(`cinema|movie`)},
	{"museum", regexp.MustCompile(`museum|gallery|exhibit`)},
	{"performing-arts", regexp.MustCompile(`theater|theatre|concert|opera|performing`)},
	{"outdoor-space", regexp.MustCompile(`park|garden|trail|beach|lake|botanical`)},
	{"restaurant", regexp.MustCompile(`restaurant|diner|eatery|steakhouse|bbq`)},
	{"cafe", regexp.MustCompile(`cafe|coffee|bakery|tea`)},
	{"bar", regexp.MustCompile(`bar|pub|lounge|club|brewery`)},
}

func NewDiversityTracker(cfg domain_models.MatchingConfig) *DiversityTracker {
	return &DiversityTracker{cfg: cfg, counts: make(map[string]int)}
}

// groupFor normalizes raw category labels to a coarse group; unmatched
// labels fall through to the raw first label.
func groupFor(categories []string) string {
	text := strings.ToLower(strings.Join(categories, " "))
	for _, rule := range diversityRules {
		if rule.pattern.MatchString(text) {
			return rule.group
		}
	}
	if len(categories) > 0 {
		return strings.ToLower(categories[0])
	}
	return "unknown"
}

func (d *DiversityTracker) Record(categories []string) {
	d.counts[groupFor(categories)]++
}

// Penalty grows exponentially with repeats: 0 at count 0, mild on the
// first repeat, prohibitive from the third on.
func (d *DiversityTracker) Penalty(categories []string) float64 {
	count := d.counts[groupFor(categories)]
	if count == 0 {
		return 0
	}
	return math.Round(d.cfg.DiversityMultiplier * math.Pow(float64(count), d.cfg.DiversityExponent))
}
