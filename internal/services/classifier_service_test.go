package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tripweaver/internal/models/domain_models"
	"tripweaver/internal/taxonomy"
)

// engineTestTable is the taxonomy fixture shared by the engine tests.
func engineTestTable() *taxonomy.Table {
	return taxonomy.NewTable([]taxonomy.Node{
		{ID: 1, Name: taxonomy.RootDining},
		{ID: 2, Name: taxonomy.RootArts},
		{ID: 3, Name: taxonomy.RootLandmarks},
		{ID: 4, Name: taxonomy.RootSports},
		{ID: 5, Name: taxonomy.RootEvents},
		{ID: 10, Name: "Cafe", ParentID: 1},
		{ID: 11, Name: "Restaurant", ParentID: 1},
		{ID: 20, Name: "Museum", ParentID: 2},
		{ID: 30, Name: "Park", ParentID: 3},
		{ID: 40, Name: "Stadium", ParentID: 4},
	})
}

func poi(name string, categories ...string) domain_models.Candidate {
	return domain_models.Candidate{
		ID:   name,
		Name: name,
		Meta: domain_models.CandidateMeta{Categories: categories},
	}
}

func poiWithID(name string, categoryID int, categories ...string) domain_models.Candidate {
	c := poi(name, categories...)
	c.Meta.CategoryIDs = []int{categoryID}
	return c
}

func TestClassifierTaxonomyPath(t *testing.T) {
	classifier := NewCandidateClassifier(engineTestTable())

	tests := []struct {
		name         string
		candidate    domain_models.Candidate
		wantMeal     bool
		wantActivity bool
	}{
		{"cafe id is a meal", poiWithID("Quiet Corner", 10), true, false},
		{"museum id is an activity", poiWithID("City Museum", 20), false, true},
		{"park id is an activity", poiWithID("River Park", 30), false, true},
		{"stadium id is an activity", poiWithID("Arena", 40), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMeal, classifier.IsMeal(&tt.candidate))
			assert.Equal(t, tt.wantActivity, classifier.IsActivity(&tt.candidate))
		})
	}
}

func TestClassifierUnknownIDFallsBackToText(t *testing.T) {
	classifier := NewCandidateClassifier(engineTestTable())

	c := poiWithID("Pho Corner", 999, "Restaurant")
	assert.True(t, classifier.IsMeal(&c), "unknown taxonomy id falls back to the text path")
	assert.False(t, classifier.IsActivity(&c))
}

func TestClassifierTextPath(t *testing.T) {
	classifier := NewCandidateClassifier(engineTestTable())

	tests := []struct {
		name          string
		candidate     domain_models.Candidate
		wantMeal      bool
		wantActivity  bool
		wantNightlife bool
	}{
		{"restaurant label", poi("Riverside", "Restaurant"), true, false, false},
		{"bakery in name", poi("Old Town Bakery"), true, false, false},
		{"museum label", poi("History House", "Museum"), false, true, false},
		{"bar is nightlife not meal", poi("Jazz Bar"), false, true, true},
		{"night market is hybrid", poi("Hoan Kiem Night Market"), true, true, false},
		{"food hall is hybrid", poi("Grand Food Hall"), true, true, false},
		{"unlabeled defaults to activity", poi("Mystery Spot"), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMeal, classifier.IsMeal(&tt.candidate), "meal")
			assert.Equal(t, tt.wantActivity, classifier.IsActivity(&tt.candidate), "activity")
			assert.Equal(t, tt.wantNightlife, classifier.IsNightlife(&tt.candidate), "nightlife")
		})
	}
}

func TestClassifierWordBoundaries(t *testing.T) {
	classifier := NewCandidateClassifier(engineTestTable())

	// "Barber" must not match the "bar" token.
	c := poi("Barber Shop")
	assert.False(t, classifier.IsNightlife(&c))
}

func TestIsCategoryDescendant(t *testing.T) {
	classifier := NewCandidateClassifier(engineTestTable())

	assert.True(t, classifier.IsCategoryDescendant(10, 1))
	assert.False(t, classifier.IsCategoryDescendant(10, 2))
}
