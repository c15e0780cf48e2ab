package domain_models

// MatchingConfig collects the tunable weights and limits of the scheduling
// pipeline. Values are plain data so callers can override individual knobs;
// tests pin the defaults.
type MatchingConfig struct {
	// Scoring
	RatingMultiplier  float64
	PhotoBonus        float64
	TraitMultiplier   float64
	RedundancyPenalty float64
	RedundancyShare   float64 // pool share above which a category is redundant
	RedundancyMinPool int
	ChainPenalty      float64
	IconicBonus       float64

	// Gap filling
	ProximityNearKm        float64
	ProximityMidKm         float64
	ProximityFarKm         float64
	ProximityEdgeKm        float64
	ProximityNearBonus     float64
	ProximityMidBonus      float64
	ProximityFarPenalty    float64
	ProximityEdgePenalty   float64
	ProximityBeyondPenalty float64
	LongHopLowScorePenalty float64
	LongHopScoreFloor      float64

	ClosedPenalty       float64
	MatineePenalty      float64
	CozyBonus           float64
	ZoneChangePenalty   float64
	ZoneChangeLimit     int
	ZoneLimitPenalty    float64
	ThinPOILimit        int
	ThinPOIPenalty      float64
	DiversityMultiplier float64
	DiversityExponent   float64
	OutdoorDuskPenalty  float64
	SeasonPenalty       float64

	TransitBufferMinutes int
	GapSafetyMinutes     int
	MinGapMinutes        int
	MaxGapIterations     int

	// Engine
	MaxTripDays        int
	MaxAttempts        int
	EnrichBatchSize    int
	EnrichLimit        int
	SparseDayEndMinute int // a day ending before this clock minute is sparse
}

func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		RatingMultiplier:  5,
		PhotoBonus:        20,
		TraitMultiplier:   3,
		RedundancyPenalty: 10,
		RedundancyShare:   0.2,
		RedundancyMinPool: 10,
		ChainPenalty:      30,
		IconicBonus:       15,

		ProximityNearKm:        1,
		ProximityMidKm:         2,
		ProximityFarKm:         4,
		ProximityEdgeKm:        8,
		ProximityNearBonus:     25,
		ProximityMidBonus:      10,
		ProximityFarPenalty:    10,
		ProximityEdgePenalty:   30,
		ProximityBeyondPenalty: 80,
		LongHopLowScorePenalty: 25,
		LongHopScoreFloor:      30,

		ClosedPenalty:       100,
		MatineePenalty:      20,
		CozyBonus:           15,
		ZoneChangePenalty:   25,
		ZoneChangeLimit:     2,
		ZoneLimitPenalty:    40,
		ThinPOILimit:        2,
		ThinPOIPenalty:      35,
		DiversityMultiplier: 50,
		DiversityExponent:   1.5,
		OutdoorDuskPenalty:  60,
		SeasonPenalty:       40,

		TransitBufferMinutes: 15,
		GapSafetyMinutes:     15,
		MinGapMinutes:        60,
		MaxGapIterations:     20,

		MaxTripDays:        14,
		MaxAttempts:        3,
		EnrichBatchSize:    10,
		EnrichLimit:        30,
		SparseDayEndMinute: 17 * 60,
	}
}
