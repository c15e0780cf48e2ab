package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tripweaver/internal/models/domain_models"
)

func TestDiversityPenaltyGrowth(t *testing.T) {
	tracker := NewDiversityTracker(domain_models.DefaultMatchingConfig())

	museum := []string{"Museum"}
	assert.Zero(t, tracker.Penalty(museum), "fresh group has no penalty")

	tracker.Record(museum)
	assert.InDelta(t, 50, tracker.Penalty(museum), 0.001)

	tracker.Record(museum)
	// round(50 x 2^1.5)
	assert.InDelta(t, 141, tracker.Penalty(museum), 0.001)

	tracker.Record(museum)
	assert.InDelta(t, 260, tracker.Penalty(museum), 0.001)
}

func TestDiversityGrouping(t *testing.T) {
	tracker := NewDiversityTracker(domain_models.DefaultMatchingConfig())

	tracker.Record([]string{"Art Museum"})
	assert.InDelta(t, 50, tracker.Penalty([]string{"Gallery"}), 0.001,
		"museums and galleries share a group")
	assert.Zero(t, tracker.Penalty([]string{"Park"}), "other groups unaffected")
}

func TestDiversityUnmatchedLabelFallsThrough(t *testing.T) {
	tracker := NewDiversityTracker(domain_models.DefaultMatchingConfig())

	tracker.Record([]string{"Planetarium"})
	assert.InDelta(t, 50, tracker.Penalty([]string{"Planetarium"}), 0.001)
	assert.Zero(t, tracker.Penalty([]string{"Observatory"}))
}
