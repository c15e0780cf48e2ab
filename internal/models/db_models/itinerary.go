package db_models

import (
	"github.com/google/uuid"
	"time"
)

type Itinerary struct {
	BaseModel
	CityID uuid.UUID
	UserID string
	Title  string

	Days []ItineraryDay
}

type ItineraryDay struct {
	BaseModel
	ItineraryID  uuid.UUID
	Date         time.Time
	DayNumber    int
	Neighborhood string

	Activities []ItineraryActivity
}

type ItineraryActivity struct {
	BaseModel
	ItineraryDayID uuid.UUID
	POIID          string
	Name           string
	Category       string
	StartTime      string // "HH:MM"
	EndTime        string
	Note           string
	TransitMode    string
	TransitMinutes int
	Lat            float64
	Lng            float64
	Rating         float64
	PhotoURL       string
}
