// Package geo provides distance computation and candidate ranking for
// nearby-workshop discovery and external search aggregation. Everything here
// is a pure function.
package geo

import (
	"math"
	"sort"

	"roadcare/models"
)

// SortKey selects the ranking key for nearby-workshop results.
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByRating   SortKey = "rating"
)

// maxSearchResults caps the merged external search output.
const maxSearchResults = 20

// DistanceKm calculates the great-circle distance between two lat/lon points,
// rounded to one decimal place.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Round(haversine(lat1, lon1, lat2, lon2)*10) / 10
}

// haversine calculates the great-circle distance (in km) between two lat/lon points.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// RankNearby computes the distance from the user to each candidate workshop,
// optionally filters to radiusKm (ignored when <= 0), and sorts by the given
// key: distance ascending by default, rating descending for SortByRating. The
// sort is stable so equal keys keep their original relative order.
func RankNearby(userLat, userLng float64, candidates []models.Workshop, key SortKey, radiusKm float64) []models.NearbyWorkshop {
	ranked := make([]models.NearbyWorkshop, 0, len(candidates))
	for _, ws := range candidates {
		d := DistanceKm(userLat, userLng, ws.Latitude, ws.Longitude)
		if radiusKm > 0 && d > radiusKm {
			continue
		}
		ranked = append(ranked, models.NearbyWorkshop{Workshop: ws, DistanceKm: d})
	}

	switch key {
	case SortByRating:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Workshop.Rating > ranked[j].Workshop.Rating
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		})
	}
	return ranked
}

// MergeExternalResults merges per-term result buckets from the external search
// collaborator: de-duplicates by external place id (first occurrence wins),
// computes the distance from the user to each surviving result, orders by the
// weighted difference 0.7*(distanceA-distanceB) + 0.3*(ratingB-ratingA), and
// truncates to the top 20. Missing rating/distance values count as 0.
func MergeExternalResults(buckets [][]models.PlaceResult, userLat, userLng float64) []models.PlaceResult {
	var merged []models.PlaceResult
	seen := make(map[string]bool)

	for _, bucket := range buckets {
		for _, res := range bucket {
			if res.ExternalID != "" && seen[res.ExternalID] {
				continue
			}
			if res.ExternalID != "" {
				seen[res.ExternalID] = true
			}
			res.DistanceKm = DistanceKm(userLat, userLng, res.Latitude, res.Longitude)
			merged = append(merged, res)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		return 0.7*(a.DistanceKm-b.DistanceKm)+0.3*(b.Rating-a.Rating) < 0
	})

	if len(merged) > maxSearchResults {
		merged = merged[:maxSearchResults]
	}
	return merged
}
