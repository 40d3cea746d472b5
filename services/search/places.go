package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"roadcare/models"
)

// placesResponse represents the structure of the response from the Google
// Places text search API.
type placesResponse struct {
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		FormattedAddress string  `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"`
}

// GooglePlacesClient implements PlaceSearcher against the Google Places API.
type GooglePlacesClient struct {
	APIKey     string
	HTTPClient *http.Client
}

func NewGooglePlacesClient(apiKey string) *GooglePlacesClient {
	return &GooglePlacesClient{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *GooglePlacesClient) Search(ctx context.Context, term string, lat, lng float64) ([]models.PlaceResult, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("places: API key is not configured")
	}

	endpoint := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/place/textsearch/json?query=%s&location=%f,%f&key=%s",
		url.QueryEscape(term), lat, lng, c.APIKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("places: failed to build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("places: failed to decode response: %w", err)
	}
	if decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places: search for %q returned status %s", term, decoded.Status)
	}

	results := make([]models.PlaceResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, models.PlaceResult{
			ExternalID:  r.PlaceID,
			Name:        r.Name,
			Latitude:    r.Geometry.Location.Lat,
			Longitude:   r.Geometry.Location.Lng,
			Rating:      r.Rating,
			ReviewCount: r.UserRatingsTotal,
			Address:     r.FormattedAddress,
		})
	}
	return results, nil
}
