package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type CitiesController struct {
	cityService services.CityServiceInterface
}

func NewCitiesController(cityService services.CityServiceInterface) *CitiesController {
	return &CitiesController{cityService: cityService}
}

// GetBySlug godoc
// @Summary Get a city by slug or ID
// @Tags City
// @Produce json
// @Param slug path string true "City slug or ID"
// @Success 200 {object} response_models.CityResponse
// @Failure 404 {object} utils.APIResponse
// @Router /cities/{slug} [get]
func (cc *CitiesController) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.RespondError(c, http.StatusBadRequest, "City slug is required")
		return
	}

	city, err := cc.cityService.ResolveCity(c.Request.Context(), slug)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.CityToResponse(city), "City fetched successfully")
}
