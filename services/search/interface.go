package search

import (
	"context"

	"roadcare/models"
)

// PlaceSearcher is the third-party geo-search collaborator. Each call fetches
// one result bucket for a single query term around the given coordinate.
type PlaceSearcher interface {
	Search(ctx context.Context, term string, lat, lng float64) ([]models.PlaceResult, error)
}
