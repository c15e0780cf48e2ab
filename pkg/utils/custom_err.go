package utils

import "errors"

var (
	ErrCityNotFound      = errors.New("city not found")
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrDatabaseError     = errors.New("database error")
	ErrDiscoveryFailed   = errors.New("candidate discovery failed")
	ErrEnrichmentFailed  = errors.New("candidate enrichment failed")
)
