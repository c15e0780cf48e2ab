package services

import (
	"context"

	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

type CityServiceInterface interface {
	ResolveCity(ctx context.Context, idOrSlug string) (domain_models.City, error)
}

type cityService struct {
	cities repositories.CityRepository
}

func NewCityService(cities repositories.CityRepository) CityServiceInterface {
	return &cityService{cities: cities}
}

func (s *cityService) ResolveCity(ctx context.Context, idOrSlug string) (domain_models.City, error) {
	if idOrSlug == "" {
		return domain_models.City{}, utils.ErrCityNotFound
	}

	row, err := s.cities.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return domain_models.City{}, utils.ErrDatabaseError
	}
	if row == nil {
		return domain_models.City{}, utils.ErrCityNotFound
	}

	return domain_models.City{
		ID:   row.ID.String(),
		Name: row.Name,
		Slug: row.Slug,
		Lat:  row.Lat,
		Lng:  row.Lng,
	}, nil
}
