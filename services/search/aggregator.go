package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"roadcare/models"
	"roadcare/services/geo"
	"roadcare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Aggregator fans out one external search per query term, gathers the result
// buckets and merges them into a single deduplicated ranking.
type Aggregator struct {
	Searcher PlaceSearcher
	Cache    *redis.Client
	CacheTTL time.Duration
}

// SearchMechanics runs the per-term fetches concurrently. A failing bucket is
// logged and skipped so it never fails the whole gather.
func (a *Aggregator) SearchMechanics(ctx context.Context, terms []string, lat, lng float64) ([]models.PlaceResult, error) {
	if len(terms) == 0 {
		return nil, utils.NewValidationError("MISSING_FIELD", "at least one search term is required")
	}
	logger := utils.GetLogger()

	cacheKey := a.cacheKey(terms, lat, lng)
	if a.Cache != nil {
		if cached, err := a.Cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var results []models.PlaceResult
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				return results, nil
			}
			// If unmarshal fails, we fall through to re-computation.
		}
	}

	buckets := make([][]models.PlaceResult, len(terms))
	var wg sync.WaitGroup

	for i, term := range terms {
		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			results, err := a.Searcher.Search(ctx, term, lat, lng)
			if err != nil {
				logger.Warn("search: bucket fetch failed", zap.String("term", term), zap.Error(err))
				return
			}
			buckets[i] = results
		}(i, term)
	}
	wg.Wait()

	merged := geo.MergeExternalResults(buckets, lat, lng)

	if a.Cache != nil {
		if data, err := json.Marshal(merged); err == nil {
			ttl := a.CacheTTL
			if ttl <= 0 {
				ttl = 5 * time.Minute
			}
			a.Cache.Set(ctx, cacheKey, data, ttl)
		}
	}
	return merged, nil
}

func (a *Aggregator) cacheKey(terms []string, lat, lng float64) string {
	sorted := append([]string(nil), terms...)
	sort.Strings(sorted)
	return fmt.Sprintf("mechsearch:%.4f:%.4f:%s", lat, lng, strings.Join(sorted, ","))
}
