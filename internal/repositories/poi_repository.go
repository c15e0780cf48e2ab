package repositories

import (
	"context"

	"gorm.io/gorm"
	"tripweaver/internal/models/db_models"
)

type POIRepository interface {
	ListByCity(ctx context.Context, cityID string, limit int) ([]*db_models.POI, error)
	ListByIDs(ctx context.Context, ids []string) ([]*db_models.POI, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

// ListByCity returns the city's candidate rows, best rated first so the
// discovery cap keeps the strongest inventory.
func (r *poiRepository) ListByCity(ctx context.Context, cityID string, limit int) ([]*db_models.POI, error) {
	var pois []*db_models.POI
	err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order("rating DESC").
		Limit(limit).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) ListByIDs(ctx context.Context, ids []string) ([]*db_models.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var pois []*db_models.POI
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&pois).Error; err != nil {
		return nil, err
	}
	return pois, nil
}
