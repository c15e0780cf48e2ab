package domain_models

import "time"

// Vibe is the display-facing projection of a candidate inside a scheduled
// activity.
type Vibe struct {
	POIID    string
	Name     string
	Category string
	Address  string
	Lat      float64
	Lng      float64
	Rating   float64
	PhotoURL string
}

type TransitHint struct {
	Mode    string // "walking" or "driving"
	Minutes int
}

type TripActivity struct {
	Vibe      Vibe
	StartTime string // "HH:MM", 24h
	EndTime   string
	Note      string
	Transit   *TransitHint // hop from the previous activity, nil for the first
}

type DayPlan struct {
	Date         time.Time
	DayNumber    int
	Activities   []TripActivity
	Neighborhood string
}

type Itinerary struct {
	ID        string
	CityID    string
	Days      []DayPlan
	CreatedAt time.Time
}

type Preferences struct {
	CityID       string
	StartDate    time.Time
	EndDate      time.Time
	Budget       string
	LikedIDs     []string
	DislikedIDs  []string
	TraitWeights map[string]float64
}
