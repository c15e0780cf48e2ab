package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

type ItineraryServiceInterface interface {
	SaveItinerary(ctx context.Context, itinerary *domain_models.Itinerary, userID, title string) error
	GetItinerary(ctx context.Context, id string) (*domain_models.Itinerary, error)
	ListItinerariesByCity(ctx context.Context, cityID string, page, pageSize int) ([]domain_models.Itinerary, error)
}

type itineraryService struct {
	itineraries repositories.ItineraryRepository
}

func NewItineraryService(itineraries repositories.ItineraryRepository) ItineraryServiceInterface {
	return &itineraryService{itineraries: itineraries}
}

func (s *itineraryService) SaveItinerary(ctx context.Context, itinerary *domain_models.Itinerary, userID, title string) error {
	if itinerary == nil || len(itinerary.Days) == 0 {
		return utils.ErrInvalidInput
	}

	row, err := itineraryToRow(itinerary, userID, title)
	if err != nil {
		return utils.ErrInvalidInput
	}

	if err := s.itineraries.Create(ctx, row); err != nil {
		log.Printf("itinerary: persisting %s: %v", itinerary.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *itineraryService) GetItinerary(ctx context.Context, id string) (*domain_models.Itinerary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrInvalidInput
	}

	row, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if row == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return itineraryFromRow(row), nil
}

// ListItinerariesByCity returns saved itineraries without their day detail;
// callers fetch a single itinerary for the full schedule.
func (s *itineraryService) ListItinerariesByCity(ctx context.Context, cityID string, page, pageSize int) ([]domain_models.Itinerary, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	rows, err := s.itineraries.ListByCity(ctx, cityID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]domain_models.Itinerary, 0, len(rows))
	for i := range rows {
		out = append(out, *itineraryFromRow(&rows[i]))
	}
	return out, nil
}

func itineraryToRow(itinerary *domain_models.Itinerary, userID, title string) (*db_models.Itinerary, error) {
	id, err := uuid.Parse(itinerary.ID)
	if err != nil {
		return nil, err
	}
	cityID, err := uuid.Parse(itinerary.CityID)
	if err != nil {
		return nil, err
	}

	row := &db_models.Itinerary{
		BaseModel: db_models.BaseModel{ID: id},
		CityID:    cityID,
		UserID:    userID,
		Title:     title,
	}
	for _, day := range itinerary.Days {
		dayRow := db_models.ItineraryDay{
			ItineraryID:  id,
			Date:         day.Date,
			DayNumber:    day.DayNumber,
			Neighborhood: day.Neighborhood,
		}
		for _, act := range day.Activities {
			actRow := db_models.ItineraryActivity{
				POIID:     act.Vibe.POIID,
				Name:      act.Vibe.Name,
				Category:  act.Vibe.Category,
				StartTime: act.StartTime,
				EndTime:   act.EndTime,
				Note:      act.Note,
				Lat:       act.Vibe.Lat,
				Lng:       act.Vibe.Lng,
				Rating:    act.Vibe.Rating,
				PhotoURL:  act.Vibe.PhotoURL,
			}
			if act.Transit != nil {
				actRow.TransitMode = act.Transit.Mode
				actRow.TransitMinutes = act.Transit.Minutes
			}
			dayRow.Activities = append(dayRow.Activities, actRow)
		}
		row.Days = append(row.Days, dayRow)
	}
	return row, nil
}

func itineraryFromRow(row *db_models.Itinerary) *domain_models.Itinerary {
	itinerary := &domain_models.Itinerary{
		ID:        row.ID.String(),
		CityID:    row.CityID.String(),
		CreatedAt: utils.UnixToTime(row.CreatedAt),
	}
	for _, dayRow := range row.Days {
		day := domain_models.DayPlan{
			Date:         dayRow.Date,
			DayNumber:    dayRow.DayNumber,
			Neighborhood: dayRow.Neighborhood,
		}
		for _, actRow := range dayRow.Activities {
			act := domain_models.TripActivity{
				Vibe: domain_models.Vibe{
					POIID:    actRow.POIID,
					Name:     actRow.Name,
					Category: actRow.Category,
					Lat:      actRow.Lat,
					Lng:      actRow.Lng,
					Rating:   actRow.Rating,
					PhotoURL: actRow.PhotoURL,
				},
				StartTime: actRow.StartTime,
				EndTime:   actRow.EndTime,
				Note:      actRow.Note,
			}
			if actRow.TransitMode != "" {
				act.Transit = &domain_models.TransitHint{
					Mode:    actRow.TransitMode,
					Minutes: actRow.TransitMinutes,
				}
			}
			day.Activities = append(day.Activities, act)
		}
		itinerary.Days = append(itinerary.Days, day)
	}
	return itinerary
}
