package request_models

type GenerateItineraryRequest struct {
	City        string             `json:"city" binding:"required"`
	StartDate   string             `json:"start_date" binding:"required"` // "2006-01-02"
	EndDate     string             `json:"end_date" binding:"required"`
	Budget      string             `json:"budget"`
	LikedIDs    []string           `json:"liked_ids"`
	DislikedIDs []string           `json:"disliked_ids"`
	Traits      map[string]float64 `json:"traits"`
}

type SaveItineraryRequest struct {
	ID     string             `json:"id" binding:"required,uuid4"`
	CityID string             `json:"city_id" binding:"required,uuid4"`
	Title  string             `json:"title"`
	Days   []SaveItineraryDay `json:"days" binding:"required,min=1"`
}

type SaveItineraryDay struct {
	Date         string               `json:"date" binding:"required"` // "2006-01-02"
	DayNumber    int                  `json:"day_number" binding:"required"`
	Neighborhood string               `json:"neighborhood"`
	Activities   []SaveItineraryEntry `json:"activities"`
}

type SaveItineraryEntry struct {
	POIID          string  `json:"poi_id"`
	Name           string  `json:"name" binding:"required"`
	Category       string  `json:"category"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	Note           string  `json:"note"`
	TransitMode    string  `json:"transit_mode"`
	TransitMinutes int     `json:"transit_minutes"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Rating         float64 `json:"rating"`
	PhotoURL       string  `json:"photo_url"`
}
