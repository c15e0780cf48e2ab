package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

// SummaryServiceInterface produces a short human-readable blurb for a
// generated itinerary. Summaries are decoration; a failure never blocks the
// itinerary itself.
type SummaryServiceInterface interface {
	SummarizeItinerary(ctx context.Context, city domain_models.City, itinerary *domain_models.Itinerary) string
}

type summaryService struct {
	textGen utils.TextGenClientInterface
}

func NewSummaryService(textGen utils.TextGenClientInterface) SummaryServiceInterface {
	return &summaryService{textGen: textGen}
}

func (s *summaryService) SummarizeItinerary(ctx context.Context, city domain_models.City, itinerary *domain_models.Itinerary) string {
	if s.textGen == nil || itinerary == nil || len(itinerary.Days) == 0 {
		return ""
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Write a warm two-sentence teaser for this %d-day trip to %s. No markdown, no lists.\n\n", len(itinerary.Days), city.Name)
	for _, day := range itinerary.Days {
		fmt.Fprintf(&buf, "Day %d (%s):", day.DayNumber, day.Neighborhood)
		for _, act := range day.Activities {
			fmt.Fprintf(&buf, " %s (%s);", act.Vibe.Name, act.Vibe.Category)
		}
		buf.WriteString("\n")
	}

	summary, err := s.textGen.GenerateText(ctx, buf.String())
	if err != nil {
		log.Printf("summary: generation failed: %v", err)
		return ""
	}
	return summary
}
