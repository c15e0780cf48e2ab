package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type ItinerariesController struct {
	matchingService  services.MatchingServiceInterface
	itineraryService services.ItineraryServiceInterface
	summaryService   services.SummaryServiceInterface
	cityService      services.CityServiceInterface
}

func NewItinerariesController(
	matchingService services.MatchingServiceInterface,
	itineraryService services.ItineraryServiceInterface,
	summaryService services.SummaryServiceInterface,
	cityService services.CityServiceInterface,
) *ItinerariesController {
	return &ItinerariesController{
		matchingService:  matchingService,
		itineraryService: itineraryService,
		summaryService:   summaryService,
		cityService:      cityService,
	}
}

// Generate godoc
// @Summary Generate a multi-day itinerary
// @Description Build a day-by-day plan for a city and date range from the stored POI inventory
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Generation parameters"
// @Param save query bool false "Persist the result (requires bearer token)"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/generate [post]
func (ic *ItinerariesController) Generate(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid start_date (expected YYYY-MM-DD)")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid end_date (expected YYYY-MM-DD)")
		return
	}

	prefs := domain_models.Preferences{
		CityID:       req.City,
		StartDate:    startDate,
		EndDate:      endDate,
		Budget:       req.Budget,
		LikedIDs:     req.LikedIDs,
		DislikedIDs:  req.DislikedIDs,
		TraitWeights: req.Traits,
	}

	itinerary, err := ic.matchingService.GenerateItinerary(c.Request.Context(), prefs, nil)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	city, err := ic.cityService.ResolveCity(c.Request.Context(), req.City)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	summary := ic.summaryService.SummarizeItinerary(c.Request.Context(), city, itinerary)

	if c.Query("save") == "true" {
		userID, ok := bearerUserID(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			return
		}
		title := city.Name + " trip"
		if err := ic.itineraryService.SaveItinerary(c.Request.Context(), itinerary, userID, title); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
	}

	utils.RespondSuccess(c, response_models.ItineraryToResponse(itinerary, summary), "Itinerary generated successfully")
}

// bearerUserID validates the Authorization header on routes where auth is
// optional and only required for a side effect.
func bearerUserID(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	claims, err := utils.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return "", false
	}
	return claims.UserID, true
}

// Save godoc
// @Summary Save a generated itinerary
// @Description Persist a previously generated itinerary for the authenticated user
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.SaveItineraryRequest true "Itinerary to save"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries [post]
func (ic *ItinerariesController) Save(c *gin.Context) {
	var req request_models.SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	itinerary, err := saveRequestToDomain(&req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid date in itinerary days (expected YYYY-MM-DD)")
		return
	}

	userID := c.GetString("user_id")
	if err := ic.itineraryService.SaveItinerary(c.Request.Context(), itinerary, userID, req.Title); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": itinerary.ID}, "Itinerary saved successfully")
}

// GetByID godoc
// @Summary Get a saved itinerary by ID
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{itineraryId} [get]
func (ic *ItinerariesController) GetByID(c *gin.Context) {
	id := c.Param("itineraryId")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	itinerary, err := ic.itineraryService.GetItinerary(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ItineraryToResponse(itinerary, ""), "Itinerary fetched successfully")
}

// ListByCity godoc
// @Summary List saved itineraries for a city
// @Tags Itinerary
// @Produce json
// @Param slug path string true "City slug or ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5)
// @Success 200 {array} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /cities/{slug}/itineraries [get]
func (ic *ItinerariesController) ListByCity(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "5"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid pageSize parameter")
		return
	}

	city, err := ic.cityService.ResolveCity(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	itineraries, err := ic.itineraryService.ListItinerariesByCity(c.Request.Context(), city.ID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	responses := make([]response_models.ItineraryResponse, 0, len(itineraries))
	for i := range itineraries {
		responses = append(responses, response_models.ItineraryToResponse(&itineraries[i], ""))
	}

	utils.RespondSuccess(c, responses, "Itineraries fetched successfully")
}

func saveRequestToDomain(req *request_models.SaveItineraryRequest) (*domain_models.Itinerary, error) {
	itinerary := &domain_models.Itinerary{
		ID:     req.ID,
		CityID: req.CityID,
	}
	for _, day := range req.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, err
		}
		dayPlan := domain_models.DayPlan{
			Date:         date,
			DayNumber:    day.DayNumber,
			Neighborhood: day.Neighborhood,
		}
		for _, entry := range day.Activities {
			act := domain_models.TripActivity{
				Vibe: domain_models.Vibe{
					POIID:    entry.POIID,
					Name:     entry.Name,
					Category: entry.Category,
					Lat:      entry.Lat,
					Lng:      entry.Lng,
					Rating:   entry.Rating,
					PhotoURL: entry.PhotoURL,
				},
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
				Note:      entry.Note,
			}
			if entry.TransitMode != "" {
				act.Transit = &domain_models.TransitHint{
					Mode:    entry.TransitMode,
					Minutes: entry.TransitMinutes,
				}
			}
			dayPlan.Activities = append(dayPlan.Activities, act)
		}
		itinerary.Days = append(itinerary.Days, dayPlan)
	}
	return itinerary, nil
}
