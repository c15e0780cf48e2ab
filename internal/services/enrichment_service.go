package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripweaver/internal/models/domain_models"
	"tripweaver/pkg/utils"
)

// EnrichmentServiceInterface fills provider detail fields (hours, contact,
// photos) that the stored row lacks. Enrichment is best effort; callers keep
// the candidate as-is when it fails.
type EnrichmentServiceInterface interface {
	Enrich(ctx context.Context, c *domain_models.Candidate) error
}

type placesDetailsEnricher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewPlacesDetailsEnricher talks to a place-details endpoint keyed by the
// candidate's external id.
func NewPlacesDetailsEnricher(baseURL, apiKey string) EnrichmentServiceInterface {
	return &placesDetailsEnricher{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type placeDetailsPayload struct {
	Website string   `json:"website"`
	Phone   string   `json:"phone"`
	Photos  []string `json:"photos"`
	Hours   *struct {
		Periods []struct {
			Day   int    `json:"day"`
			Open  string `json:"open"`
			Close string `json:"close"`
		} `json:"periods"`
		WeekdayText []string `json:"weekday_text"`
	} `json:"hours"`
}

func (e *placesDetailsEnricher) Enrich(ctx context.Context, c *domain_models.Candidate) error {
	if len(c.ExternalIDs) == 0 {
		return nil
	}

	endpoint := fmt.Sprintf("%s/details?id=%s", e.baseURL, url.QueryEscape(c.ExternalIDs[0]))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return utils.ErrEnrichmentFailed
	}
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return utils.ErrEnrichmentFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return utils.ErrEnrichmentFailed
	}

	var payload placeDetailsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return utils.ErrEnrichmentFailed
	}

	// Details only fill gaps; stored values win.
	if c.Website == "" {
		c.Website = payload.Website
	}
	if c.Phone == "" {
		c.Phone = payload.Phone
	}
	if len(c.Photos) == 0 {
		c.Photos = payload.Photos
	}
	if c.Hours == nil && payload.Hours != nil {
		hours := &domain_models.OpeningHours{WeekdayText: payload.Hours.WeekdayText}
		for _, p := range payload.Hours.Periods {
			hours.Periods = append(hours.Periods, domain_models.OpenPeriod{
				Day:   p.Day,
				Open:  p.Open,
				Close: p.Close,
			})
		}
		c.Hours = hours
	}
	return nil
}

type noopEnricher struct{}

// NewNoopEnricher is the stand-in when no details provider is configured.
func NewNoopEnricher() EnrichmentServiceInterface {
	return noopEnricher{}
}

func (noopEnricher) Enrich(context.Context, *domain_models.Candidate) error {
	return nil
}
