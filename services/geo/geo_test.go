package geo

import (
	"math"
	"testing"

	"roadcare/models"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// Two points roughly 150m apart in Chandigarh.
	d := DistanceKm(30.7333, 76.7794, 30.7343, 76.7804)
	assert.InDelta(t, 0.15, d, 0.05)

	// Same point is zero.
	assert.Equal(t, 0.0, DistanceKm(30.7333, 76.7794, 30.7333, 76.7794))

	// Symmetric.
	assert.Equal(t,
		DistanceKm(30.7333, 76.7794, 28.7041, 77.1025),
		DistanceKm(28.7041, 77.1025, 30.7333, 76.7794))
}

func TestDistanceKmRoundsToOneDecimal(t *testing.T) {
	// Chandigarh to Delhi is about 229 km.
	d := DistanceKm(30.7333, 76.7794, 28.7041, 77.1025)
	assert.InDelta(t, 229, d, 5)
	assert.Equal(t, math.Round(d*10)/10, d)
}

func TestRankNearbySortsByDistance(t *testing.T) {
	userLat, userLng := 30.7333, 76.7794
	candidates := []models.Workshop{
		{ID: "far", Latitude: 30.9, Longitude: 76.95, Rating: 5.0},
		{ID: "near", Latitude: 30.7343, Longitude: 76.7804, Rating: 3.0},
		{ID: "mid", Latitude: 30.80, Longitude: 76.85, Rating: 4.0},
	}

	ranked := RankNearby(userLat, userLng, candidates, SortByDistance, 0)
	assert.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].Workshop.ID)
	assert.Equal(t, "mid", ranked[1].Workshop.ID)
	assert.Equal(t, "far", ranked[2].Workshop.ID)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.DistanceKm, 0.0)
	}
}

func TestRankNearbySortsByRating(t *testing.T) {
	candidates := []models.Workshop{
		{ID: "low", Latitude: 30.7343, Longitude: 76.7804, Rating: 2.5},
		{ID: "high", Latitude: 30.9, Longitude: 76.95, Rating: 4.8},
		{ID: "mid", Latitude: 30.80, Longitude: 76.85, Rating: 4.0},
	}

	ranked := RankNearby(30.7333, 76.7794, candidates, SortByRating, 0)
	assert.Equal(t, "high", ranked[0].Workshop.ID)
	assert.Equal(t, "mid", ranked[1].Workshop.ID)
	assert.Equal(t, "low", ranked[2].Workshop.ID)
}

func TestRankNearbyRadiusFilter(t *testing.T) {
	candidates := []models.Workshop{
		{ID: "near", Latitude: 30.7343, Longitude: 76.7804},
		{ID: "far", Latitude: 28.7041, Longitude: 77.1025},
	}

	ranked := RankNearby(30.7333, 76.7794, candidates, SortByDistance, 10)
	assert.Len(t, ranked, 1)
	assert.Equal(t, "near", ranked[0].Workshop.ID)

	// Zero radius disables the filter.
	ranked = RankNearby(30.7333, 76.7794, candidates, SortByDistance, 0)
	assert.Len(t, ranked, 2)
}

func TestRankNearbyStableOnEqualKeys(t *testing.T) {
	// Identical coordinates produce equal distances; input order must hold.
	candidates := []models.Workshop{
		{ID: "a", Latitude: 30.7343, Longitude: 76.7804},
		{ID: "b", Latitude: 30.7343, Longitude: 76.7804},
		{ID: "c", Latitude: 30.7343, Longitude: 76.7804},
	}

	ranked := RankNearby(30.7333, 76.7794, candidates, SortByDistance, 0)
	assert.Equal(t, "a", ranked[0].Workshop.ID)
	assert.Equal(t, "b", ranked[1].Workshop.ID)
	assert.Equal(t, "c", ranked[2].Workshop.ID)
}

func TestMergeExternalResultsDeduplicates(t *testing.T) {
	buckets := [][]models.PlaceResult{
		{
			{ExternalID: "p1", Name: "first occurrence", Latitude: 30.7343, Longitude: 76.7804, Rating: 4.0},
			{ExternalID: "p2", Latitude: 30.74, Longitude: 76.79, Rating: 3.5},
		},
		{
			{ExternalID: "p1", Name: "duplicate", Latitude: 30.7343, Longitude: 76.7804, Rating: 4.0},
			{ExternalID: "p3", Latitude: 30.75, Longitude: 76.80, Rating: 4.5},
		},
	}

	merged := MergeExternalResults(buckets, 30.7333, 76.7794)
	assert.Len(t, merged, 3)

	ids := make(map[string]string)
	for _, r := range merged {
		ids[r.ExternalID] = r.Name
	}
	assert.Equal(t, "first occurrence", ids["p1"])
}

func TestMergeExternalResultsRanking(t *testing.T) {
	buckets := [][]models.PlaceResult{
		{
			// Near but poorly rated.
			{ExternalID: "near-bad", Latitude: 30.7343, Longitude: 76.7804, Rating: 1.0},
			// Slightly farther, much better rated: the rating weight should
			// not overcome a large distance gap, but wins when distances tie.
			{ExternalID: "near-good", Latitude: 30.7343, Longitude: 76.7804, Rating: 5.0},
			// Far away regardless of rating.
			{ExternalID: "far", Latitude: 28.7041, Longitude: 77.1025, Rating: 5.0},
		},
	}

	merged := MergeExternalResults(buckets, 30.7333, 76.7794)
	assert.Equal(t, "near-good", merged[0].ExternalID)
	assert.Equal(t, "near-bad", merged[1].ExternalID)
	assert.Equal(t, "far", merged[2].ExternalID)
}

func TestMergeExternalResultsTruncates(t *testing.T) {
	var bucket []models.PlaceResult
	for i := 0; i < 30; i++ {
		bucket = append(bucket, models.PlaceResult{
			Latitude:  30.7333 + float64(i)*0.01,
			Longitude: 76.7794,
		})
	}

	merged := MergeExternalResults([][]models.PlaceResult{bucket}, 30.7333, 76.7794)
	assert.Len(t, merged, 20)
}

func TestMergeExternalResultsAnnotatesDistance(t *testing.T) {
	buckets := [][]models.PlaceResult{
		{{ExternalID: "p1", Latitude: 30.7343, Longitude: 76.7804}},
	}

	merged := MergeExternalResults(buckets, 30.7333, 76.7794)
	assert.InDelta(t, 0.15, merged[0].DistanceKm, 0.1)
}
