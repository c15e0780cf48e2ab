package repositories

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"tripweaver/internal/models/db_models"
)

type IPoiEmbeddingRepository interface {
	ListByVector(vector pgvector.Vector, limit int) ([]db_models.PoiEmbedding, error)
	Create(embedding db_models.PoiEmbedding) error
}

type poiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) IPoiEmbeddingRepository {
	return &poiEmbeddingRepository{db: db}
}

// ListByVector runs a cosine-distance search; only reasonably similar rows
// come back so a vague bias text cannot flood discovery with noise.
func (r *poiEmbeddingRepository) ListByVector(vector pgvector.Vector, limit int) ([]db_models.PoiEmbedding, error) {
	var results []db_models.PoiEmbedding

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM poi_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	if err := r.db.Raw(query, vector.String(), limit).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *poiEmbeddingRepository) Create(embedding db_models.PoiEmbedding) error {
	return r.db.Create(&embedding).Error
}
