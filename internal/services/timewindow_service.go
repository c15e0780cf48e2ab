package services

import (
	"math"
	"regexp"
	"strings"
	"time"

	"tripweaver/internal/models/domain_models"
)

// TimeWindowServiceInterface groups the clock-aware heuristics: daylight,
// opening hours and seasonality.
type TimeWindowServiceInterface interface {
	SunsetMinutes(lat float64, date time.Time) int
	OutdoorPenalty(c *domain_models.Candidate, nowMinutes, sunsetMinutes int) float64
	IsOpenAt(c *domain_models.Candidate, day time.Weekday, clockMinutes int) bool
	SeasonPenalty(c *domain_models.Candidate, date time.Time) float64
}

type TimeWindowService struct {
	cfg domain_models.MatchingConfig
}

func NewTimeWindowService(cfg domain_models.MatchingConfig) TimeWindowServiceInterface {
	return &TimeWindowService{cfg: cfg}
}

var (
	outdoorPattern = regexp.MustCompile(`park|garden|trail|beach|viewpoint|outdoor|lake|mountain|zoo|waterfall`)
	summerPattern  = regexp.MustCompile(`beach|water park|outdoor pool|snorkel`)
	winterPattern  = regexp.MustCompile(`ski|snowboard|ice skating|snow`)
	indoorSeated   = regexp.MustCompile(`cinema|movie|theater|theatre|bar|pub|club|lounge|karaoke`)
	cozyPattern    = regexp.MustCompile(`cafe|coffee|tea|bar|pub|wine|bakery`)
)

// SunsetMinutes approximates local sunset as minutes since midnight using
// the standard solar-declination formula. A few minutes of error is fine;
// the penalty band is an hour wide.
func (t *TimeWindowService) SunsetMinutes(lat float64, date time.Time) int {
	day := float64(date.YearDay())
	decl := 23.44 * math.Sin(2*math.Pi*(284+day)/365) * math.Pi / 180
	latRad := lat * math.Pi / 180

	cosH := -math.Tan(latRad) * math.Tan(decl)
	switch {
	case cosH <= -1: // polar day
		return 23*60 + 59
	case cosH >= 1: // polar night
		return 12 * 60
	}
	hourAngle := math.Acos(cosH) * 180 / math.Pi
	return 720 + int(hourAngle/15*60)
}

func isOutdoor(c *domain_models.Candidate) bool {
	return outdoorPattern.MatchString(candidateText(c))
}

func candidateText(c *domain_models.Candidate) string {
	return strings.ToLower(strings.Join(c.Meta.Categories, " ") + " " + c.Name)
}

// OutdoorPenalty discourages outdoor venues near and after dusk: half
// penalty in the last hour of light, full penalty after sunset.
func (t *TimeWindowService) OutdoorPenalty(c *domain_models.Candidate, nowMinutes, sunsetMinutes int) float64 {
	if !isOutdoor(c) {
		return 0
	}
	switch {
	case nowMinutes >= sunsetMinutes:
		return t.cfg.OutdoorDuskPenalty
	case nowMinutes >= sunsetMinutes-60:
		return t.cfg.OutdoorDuskPenalty / 2
	}
	return 0
}

// IsOpenAt checks opening-hours periods. Missing or unknown hours count
// as open.
func (t *TimeWindowService) IsOpenAt(c *domain_models.Candidate, day time.Weekday, clockMinutes int) bool {
	if c.Hours == nil || len(c.Hours.Periods) == 0 {
		return true
	}
	for _, p := range c.Hours.Periods {
		open := hhmmToMinutes(p.Open)
		close := hhmmToMinutes(p.Close)
		if open < 0 || close < 0 {
			continue
		}
		if p.Day == int(day) {
			if close > open && clockMinutes >= open && clockMinutes < close {
				return true
			}
			// Overnight period: open until close on the next day.
			if close <= open && clockMinutes >= open {
				return true
			}
		}
		// Spillover from the previous day's overnight period.
		prev := (int(day) + 6) % 7
		if p.Day == prev && close <= open && clockMinutes < close {
			return true
		}
	}
	return false
}

func hhmmToMinutes(s string) int {
	if len(s) != 4 {
		return -1
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[2]-'0')*10 + int(s[3]-'0')
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// SeasonPenalty discourages weather-bound venues outside their season,
// with the hemisphere flipped below the equator.
func (t *TimeWindowService) SeasonPenalty(c *domain_models.Candidate, date time.Time) float64 {
	text := candidateText(c)
	month := int(date.Month())
	northern := c.Lat >= 0

	coldMonth := month <= 3 || month >= 11
	warmMonth := month >= 5 && month <= 9
	if !northern {
		coldMonth, warmMonth = warmMonth, coldMonth
	}

	if summerPattern.MatchString(text) && coldMonth {
		return t.cfg.SeasonPenalty
	}
	if winterPattern.MatchString(text) && warmMonth {
		return t.cfg.SeasonPenalty
	}
	return 0
}
