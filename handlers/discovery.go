package handlers

import (
	"net/http"
	"strconv"
	"strings"

	workshopRepo "roadcare/database/repository/workshop"
	"roadcare/services/geo"
	"roadcare/services/search"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
)

// DiscoveryHandler serves nearby workshop ranking and external mechanic search.
type DiscoveryHandler struct {
	Workshops  workshopRepo.WorkshopRepository
	Aggregator *search.Aggregator
}

func NewDiscoveryHandler(workshops workshopRepo.WorkshopRepository, aggregator *search.Aggregator) *DiscoveryHandler {
	return &DiscoveryHandler{Workshops: workshops, Aggregator: aggregator}
}

// NearbyWorkshops handles GET /api/workshops/nearby.
func (h *DiscoveryHandler) NearbyWorkshops(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	radiusKm := 0.0
	if raw := c.Query("radiusKm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "radiusKm must be a non-negative number")
			return
		}
		radiusKm = parsed
	}

	sortKey := geo.SortByDistance
	if c.Query("sortBy") == string(geo.SortByRating) {
		sortKey = geo.SortByRating
	}

	workshops, err := h.Workshops.ListOpen(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	ranked := geo.RankNearby(lat, lng, workshops, sortKey, radiusKm)
	c.JSON(http.StatusOK, gin.H{"workshops": ranked})
}

// SearchMechanics handles GET /api/search/mechanics.
func (h *DiscoveryHandler) SearchMechanics(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	var terms []string
	for _, raw := range strings.Split(c.Query("q"), ",") {
		if term := strings.TrimSpace(raw); term != "" {
			terms = append(terms, term)
		}
	}

	results, err := h.Aggregator.SearchMechanics(c.Request.Context(), terms, lat, lng)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func parseLatLng(c *gin.Context) (float64, float64, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "lat and lng must be valid coordinates")
		return 0, 0, false
	}
	return lat, lng, true
}
