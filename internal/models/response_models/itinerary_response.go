package response_models

import (
	"tripweaver/internal/models/domain_models"
)

type TransitResponse struct {
	Mode    string `json:"mode"`
	Minutes int    `json:"minutes"`
}

type ActivityResponse struct {
	POIID     string           `json:"poi_id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Address   string           `json:"address,omitempty"`
	Lat       float64          `json:"lat"`
	Lng       float64          `json:"lng"`
	Rating    float64          `json:"rating,omitempty"`
	PhotoURL  string           `json:"photo_url,omitempty"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Note      string           `json:"note,omitempty"`
	Transit   *TransitResponse `json:"transit,omitempty"`
}

type DayResponse struct {
	Date         string             `json:"date"` // "2006-01-02"
	DayNumber    int                `json:"day_number"`
	Neighborhood string             `json:"neighborhood,omitempty"`
	Activities   []ActivityResponse `json:"activities"`
}

type ItineraryResponse struct {
	ID      string        `json:"id"`
	CityID  string        `json:"city_id"`
	Summary string        `json:"summary,omitempty"`
	Days    []DayResponse `json:"days"`
}

type CityResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func ItineraryToResponse(itinerary *domain_models.Itinerary, summary string) ItineraryResponse {
	resp := ItineraryResponse{
		ID:      itinerary.ID,
		CityID:  itinerary.CityID,
		Summary: summary,
		Days:    make([]DayResponse, 0, len(itinerary.Days)),
	}
	for _, day := range itinerary.Days {
		dayResp := DayResponse{
			Date:         day.Date.Format("2006-01-02"),
			DayNumber:    day.DayNumber,
			Neighborhood: day.Neighborhood,
			Activities:   make([]ActivityResponse, 0, len(day.Activities)),
		}
		for _, act := range day.Activities {
			actResp := ActivityResponse{
				POIID:     act.Vibe.POIID,
				Name:      act.Vibe.Name,
				Category:  act.Vibe.Category,
				Address:   act.Vibe.Address,
				Lat:       act.Vibe.Lat,
				Lng:       act.Vibe.Lng,
				Rating:    act.Vibe.Rating,
				PhotoURL:  act.Vibe.PhotoURL,
				StartTime: act.StartTime,
				EndTime:   act.EndTime,
				Note:      act.Note,
			}
			if act.Transit != nil {
				actResp.Transit = &TransitResponse{
					Mode:    act.Transit.Mode,
					Minutes: act.Transit.Minutes,
				}
			}
			dayResp.Activities = append(dayResp.Activities, actResp)
		}
		resp.Days = append(resp.Days, dayResp)
	}
	return resp
}

func CityToResponse(city domain_models.City) CityResponse {
	return CityResponse{
		ID:   city.ID,
		Name: city.Name,
		Slug: city.Slug,
		Lat:  city.Lat,
		Lng:  city.Lng,
	}
}
