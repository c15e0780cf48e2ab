package matching_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	provideEnricher,
	provideTextGenClient,
	provideSummaryService,
	provideMatchingService,
)

func provideEnricher() services.EnrichmentServiceInterface {
	baseURL := os.Getenv("PLACES_DETAILS_URL")
	if baseURL == "" {
		return services.NewNoopEnricher()
	}
	return services.NewPlacesDetailsEnricher(baseURL, os.Getenv("PLACES_API_KEY"))
}

func provideTextGenClient() utils.TextGenClientInterface {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}

	client, err := utils.NewGeminiTextClient(apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Printf("Error creating Gemini client, summaries disabled: %v", err)
		return nil
	}
	return client
}

func provideSummaryService(textGen utils.TextGenClientInterface) services.SummaryServiceInterface {
	return services.NewSummaryService(textGen)
}

func provideMatchingService(
	cities services.CityServiceInterface,
	discovery services.DiscoveryServiceInterface,
	scoring services.ScoringServiceInterface,
	classifier services.CandidateClassifier,
	enricher services.EnrichmentServiceInterface,
	scheduler services.SchedulerInterface,
	cfg domain_models.MatchingConfig,
) services.MatchingServiceInterface {
	return services.NewMatchingService(cities, discovery, scoring, classifier, enricher, scheduler, cfg)
}
