package models

// PlaceResult is one entry returned by the external geo-search collaborator,
// enriched with the distance from the querying user after merging.
type PlaceResult struct {
	ExternalID  string  `json:"externalId"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Address     string  `json:"address"`
	DistanceKm  float64 `json:"distanceKm"`
}
