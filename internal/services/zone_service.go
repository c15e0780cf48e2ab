package services

import (
	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

// Zone names are coarse geographic buckets around the city center. They
// exist to stop the gap filler from zig-zagging across town.
const (
	ZoneCenter = "center"
	ZoneNorth  = "north"
	ZoneEast   = "east"
	ZoneSouth  = "south"
	ZoneWest   = "west"
)

const centerRadiusKm = 2.0

type ZoneServiceInterface interface {
	AssignZones(candidates []domain_models.Candidate, center *domain_models.LatLng)
	ZoneOf(lat, lng float64, center *domain_models.LatLng) string
	ZoneChangePenalty(from, to string) float64
	CenterFrictionMinutes(from, to string) int
}

type ZoneService struct {
	cfg domain_models.MatchingConfig
}

func NewZoneService(cfg domain_models.MatchingConfig) ZoneServiceInterface {
	return &ZoneService{cfg: cfg}
}

// AssignZones buckets every candidate by distance and bearing from the
// city center, in place. Without a center everything stays unzoned and the
// zone penalties become no-ops.
func (z *ZoneService) AssignZones(candidates []domain_models.Candidate, center *domain_models.LatLng) {
	if center == nil {
		return
	}
	for i := range candidates {
		candidates[i].Zone = z.ZoneOf(candidates[i].Lat, candidates[i].Lng, center)
	}
}

func (z *ZoneService) ZoneOf(lat, lng float64, center *domain_models.LatLng) string {
	if center == nil {
		return ""
	}
	dist := utils.HaversineKm(center.Lat, center.Lng, lat, lng)
	if dist <= centerRadiusKm {
		return ZoneCenter
	}
	bearing := utils.BearingDeg(center.Lat, center.Lng, lat, lng)
	switch {
	case bearing >= 315 || bearing < 45:
		return ZoneNorth
	case bearing < 135:
		return ZoneEast
	case bearing < 225:
		return ZoneSouth
	default:
		return ZoneWest
	}
}

func (z *ZoneService) ZoneChangePenalty(from, to string) float64 {
	if from == "" || to == "" || from == to {
		return 0
	}
	return z.cfg.ZoneChangePenalty
}

// CenterFrictionMinutes models drive friction as clock minutes, separate
// from the explicit transit estimate: hopping through the center is
// cheaper than crossing between outer zones.
func (z *ZoneService) CenterFrictionMinutes(from, to string) int {
	if from == "" || to == "" || from == to {
		return 0
	}
	if from == ZoneCenter || to == ZoneCenter {
		return 8
	}
	return 15
}
