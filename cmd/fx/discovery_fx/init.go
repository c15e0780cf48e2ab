package discovery_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripweaver/internal/repositories"
	"tripweaver/internal/services"
	mem "tripweaver/pkg/memcache"
	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	providePOIRepo,
	provideEmbeddingRepo,
	provideEmbeddingClient,
	provideDiscoveryService,
)

func providePOIRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.IPoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient()
}

func provideDiscoveryService(
	pois repositories.POIRepository,
	embeddings repositories.IPoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
	classifier services.CandidateClassifier,
	cache mem.CandidatePoolCache,
) services.DiscoveryServiceInterface {
	return services.NewDiscoveryService(pois, embeddings, embedder, classifier, cache)
}
