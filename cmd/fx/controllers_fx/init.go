package controllers_fx

import (
	"go.uber.org/fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/internal/services"
)

var Module = fx.Provide(provideItinerariesController, provideCitiesController)

func provideItinerariesController(
	matchingService services.MatchingServiceInterface,
	itineraryService services.ItineraryServiceInterface,
	summaryService services.SummaryServiceInterface,
	cityService services.CityServiceInterface,
) *controllers.ItinerariesController {
	return controllers.NewItinerariesController(matchingService, itineraryService, summaryService, cityService)
}

func provideCitiesController(cityService services.CityServiceInterface) *controllers.CitiesController {
	return controllers.NewCitiesController(cityService)
}
