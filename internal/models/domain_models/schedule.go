package domain_models

// ScheduleState is the pipeline's working value. Exactly one stage owns it
// at a time; stages mutate Remaining/Days/used sets and hand it on.
type ScheduleState struct {
	Original  []Candidate
	Remaining []Candidate
	Days      []DayPlan

	UsedIDs         map[string]struct{}
	UsedExternalIDs map[string]struct{}

	Center *LatLng
}

func NewScheduleState(candidates []Candidate, center *LatLng) *ScheduleState {
	remaining := make([]Candidate, len(candidates))
	copy(remaining, candidates)
	return &ScheduleState{
		Original:        candidates,
		Remaining:       remaining,
		UsedIDs:         make(map[string]struct{}),
		UsedExternalIDs: make(map[string]struct{}),
		Center:          center,
	}
}

func (s *ScheduleState) IsUsed(c *Candidate) bool {
	if _, ok := s.UsedIDs[c.ID]; ok {
		return true
	}
	for _, ext := range c.ExternalIDs {
		if _, ok := s.UsedExternalIDs[ext]; ok {
			return true
		}
	}
	return false
}

// Commit records both id sets and drops the candidate from the remaining
// pool. A committed candidate can never be scheduled again in this
// itinerary.
func (s *ScheduleState) Commit(c *Candidate) {
	s.UsedIDs[c.ID] = struct{}{}
	for _, ext := range c.ExternalIDs {
		s.UsedExternalIDs[ext] = struct{}{}
	}
	for i := range s.Remaining {
		if s.Remaining[i].ID == c.ID {
			s.Remaining = append(s.Remaining[:i], s.Remaining[i+1:]...)
			break
		}
	}
}
