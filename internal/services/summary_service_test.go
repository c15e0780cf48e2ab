package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"tripweaver/internal/models/domain_models"
)

type fakeTextGen struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeTextGen) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeTextGen) Close() error { return nil }

func sampleItinerary() *domain_models.Itinerary {
	return &domain_models.Itinerary{
		ID:     "itin",
		CityID: "city",
		Days: []domain_models.DayPlan{{
			Date:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			DayNumber:    1,
			Neighborhood: "City Center",
			Activities: []domain_models.TripActivity{
				{Vibe: domain_models.Vibe{Name: "Morning Cafe", Category: "Cafe"}, StartTime: "08:00", EndTime: "09:00"},
			},
		}},
	}
}

func TestSummarizeItinerary(t *testing.T) {
	gen := &fakeTextGen{reply: "A lovely day in Hanoi."}
	summary := NewSummaryService(gen)

	got := summary.SummarizeItinerary(context.Background(), testCity(), sampleItinerary())
	assert.Equal(t, "A lovely day in Hanoi.", got)
	assert.True(t, strings.Contains(gen.prompt, "Morning Cafe"), "the prompt carries the schedule")
	assert.True(t, strings.Contains(gen.prompt, "Hanoi"))
}

func TestSummarizeItineraryFailureIsEmpty(t *testing.T) {
	summary := NewSummaryService(&fakeTextGen{err: errors.New("quota")})
	assert.Empty(t, summary.SummarizeItinerary(context.Background(), testCity(), sampleItinerary()))
}

func TestSummarizeItineraryNilClient(t *testing.T) {
	summary := NewSummaryService(nil)
	assert.Empty(t, summary.SummarizeItinerary(context.Background(), testCity(), sampleItinerary()))
}
