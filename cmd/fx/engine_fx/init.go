package engine_fx

import (
	"go.uber.org/fx"
	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/services"
	"tripweaver/internal/taxonomy"
)

var Module = fx.Provide(
	provideConfig,
	provideClassifier,
	provideScoring,
	provideZones,
	provideTimeWindows,
	provideQuality,
	provideDurations,
	providePairCache,
	provideTransit,
	provideMealStage,
	provideFillStage,
	provideScheduler,
)

func provideConfig() domain_models.MatchingConfig {
	return domain_models.DefaultMatchingConfig()
}

func provideClassifier(table *taxonomy.Table) services.CandidateClassifier {
	return services.NewCandidateClassifier(table)
}

func provideScoring(cfg domain_models.MatchingConfig) services.ScoringServiceInterface {
	return services.NewScoringService(cfg)
}

func provideZones(cfg domain_models.MatchingConfig) services.ZoneServiceInterface {
	return services.NewZoneService(cfg)
}

func provideTimeWindows(cfg domain_models.MatchingConfig) services.TimeWindowServiceInterface {
	return services.NewTimeWindowService(cfg)
}

func provideQuality() services.QualityServiceInterface {
	return services.NewQualityService()
}

func provideDurations(table *taxonomy.Table) services.DurationEstimatorInterface {
	return services.NewDurationEstimator(table)
}

func providePairCache() services.MatrixPairCache {
	return services.NewInMemoryPairCache()
}

func provideTransit(cache services.MatrixPairCache) services.TransitEstimatorInterface {
	return services.NewMapboxTransitEstimator(cache)
}

func provideMealStage(classifier services.CandidateClassifier, transit services.TransitEstimatorInterface, cfg domain_models.MatchingConfig) *services.AnchorMealsStage {
	return services.NewAnchorMealsStage(classifier, transit, cfg)
}

func provideFillStage(
	classifier services.CandidateClassifier,
	durations services.DurationEstimatorInterface,
	zones services.ZoneServiceInterface,
	timeWindows services.TimeWindowServiceInterface,
	quality services.QualityServiceInterface,
	transit services.TransitEstimatorInterface,
	cfg domain_models.MatchingConfig,
) *services.FillActivitiesStage {
	return services.NewFillActivitiesStage(classifier, durations, zones, timeWindows, quality, transit, cfg)
}

func provideScheduler(zones services.ZoneServiceInterface, meals *services.AnchorMealsStage, fill *services.FillActivitiesStage) services.SchedulerInterface {
	return services.NewScheduler(zones, meals, fill)
}
