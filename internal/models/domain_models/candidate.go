package domain_models

// CandidateMeta is the loosely-typed bag discovery providers fill from
// whatever the upstream source returns. Category ids refer to the shared
// taxonomy table; labels are raw provider strings.
type CandidateMeta struct {
	Categories  []string
	CategoryIDs []int
	Chain       bool
}

type OpenPeriod struct {
	Day   int    // 0 = Sunday .. 6 = Saturday
	Open  string // "HHMM"
	Close string // "HHMM", may roll past midnight
}

type OpeningHours struct {
	Periods     []OpenPeriod
	WeekdayText []string
}

// Candidate is a POI record eligible for scheduling. Score is attached by
// ranking only; it is undefined while Scored is false.
type Candidate struct {
	ID          string
	ExternalIDs []string
	Name        string
	CityID      string
	Lat         float64
	Lng         float64
	Address     string
	Rating      float64 // 0..5
	Website     string
	Phone       string
	Photos      []string
	Hours       *OpeningHours
	Meta        CandidateMeta

	Zone   string
	Score  float64
	Scored bool
}

// PrimaryCategory returns the first category label, or "".
func (c *Candidate) PrimaryCategory() string {
	if len(c.Meta.Categories) == 0 {
		return ""
	}
	return c.Meta.Categories[0]
}

// FirstCategoryID returns the first taxonomy id, or 0 when the record
// carries none (legacy records classified by text instead).
func (c *Candidate) FirstCategoryID() int {
	if len(c.Meta.CategoryIDs) == 0 {
		return 0
	}
	return c.Meta.CategoryIDs[0]
}

func (c *Candidate) HasPhoto() bool {
	return len(c.Photos) > 0
}

type City struct {
	ID   string
	Name string
	Slug string
	Lat  float64
	Lng  float64
}

type LatLng struct {
	Lat float64
	Lng float64
}
