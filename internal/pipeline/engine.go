package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/spatial"
	"github.com/geolife-analytics/trajectory-backend-go/internal/temporal"
)

// dayKey identifies a (user, local date) partition.
type dayKey struct {
	UserID int
	Date   string
}

// weekKey identifies a (user, ISO week) partition.
type weekKey struct {
	UserID  int
	ISOYear int
	ISOWeek int
}

// Result is everything one pipeline run derives from the input batch.
// Slices are sorted deterministically so repeated runs over the same input
// produce identical output.
type Result struct {
	Normalized       []models.NormalizedPoint // Input order preserved
	SkippedNormalize int

	Daily  []models.DailyAggregate  // Sorted by (user, date)
	Weekly []models.WeeklyAggregate // Sorted by (user, year, week)

	BeijingCount  int
	BeijingVisits map[int]int // user -> count of points inside the fence
	Northernmost  map[int]models.NorthernmostRecord

	TotalDistanceKm float64
}

// Engine runs the trajectory aggregation pipeline: per-point normalization
// and geofence classification are sharded across a worker pool, each
// (user, date) partition is sorted and folded as one unit, and the final
// rankings are a deterministic single-threaded merge.
type Engine struct {
	workers  int
	fence    *spatial.Geofence
	distance spatial.DistanceFunc
}

// NewEngine creates a pipeline engine. A nil distance function defaults to
// the haversine formula.
func NewEngine(workers int, fence *spatial.Geofence, distance spatial.DistanceFunc) *Engine {
	if workers < 1 {
		workers = 1
	}
	if distance == nil {
		distance = spatial.HaversineDistance
	}
	return &Engine{workers: workers, fence: fence, distance: distance}
}

// Run executes the full pipeline over a bounded batch of points.
func (e *Engine) Run(ctx context.Context, points []models.Point) (*Result, error) {
	log.Printf("[Engine] Starting pipeline: %d points, %d workers", len(points), e.workers)

	normalized, skipped, err := e.normalizeAll(ctx, points)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Printf("[Engine] Skipped %d points during normalization", skipped)
	}

	res := &Result{
		Normalized:       normalized,
		SkippedNormalize: skipped,
		BeijingVisits:    make(map[int]int),
		Northernmost:     make(map[int]models.NorthernmostRecord),
	}

	days := make(map[dayKey][]models.NormalizedPoint)
	weeks := make(map[weekKey]int)

	for _, np := range normalized {
		dk := dayKey{UserID: np.UserID, Date: np.AdjustedDate}
		days[dk] = append(days[dk], np)

		year, week, err := temporal.ISOWeek(np.AdjustedDate)
		if err != nil {
			// Cannot happen for dates the normalizer produced itself.
			log.Printf("[Engine] Warning: unparseable adjusted date %q: %v", np.AdjustedDate, err)
			continue
		}
		weeks[weekKey{UserID: np.UserID, ISOYear: year, ISOWeek: week}]++

		if e.fence != nil && e.fence.Contains(np.Latitude, np.Longitude) {
			res.BeijingCount++
			res.BeijingVisits[np.UserID]++
		}

		best, ok := res.Northernmost[np.UserID]
		if !ok || np.Latitude > best.Latitude ||
			(np.Latitude == best.Latitude && np.AdjustedTimestamp < best.AdjustedTimestamp) {
			res.Northernmost[np.UserID] = models.NorthernmostRecord{
				UserID:            np.UserID,
				Latitude:          np.Latitude,
				Longitude:         np.Longitude,
				AdjustedDate:      np.AdjustedDate,
				AdjustedTimestamp: np.AdjustedTimestamp,
			}
		}
	}

	daily, err := e.foldPartitions(ctx, days)
	if err != nil {
		return nil, err
	}
	res.Daily = daily

	for _, agg := range res.Daily {
		res.TotalDistanceKm += agg.TotalDistanceKm
	}

	res.Weekly = make([]models.WeeklyAggregate, 0, len(weeks))
	for wk, count := range weeks {
		res.Weekly = append(res.Weekly, models.WeeklyAggregate{
			UserID:     wk.UserID,
			ISOYear:    wk.ISOYear,
			ISOWeek:    wk.ISOWeek,
			PointCount: count,
		})
	}
	sort.Slice(res.Weekly, func(i, j int) bool {
		a, b := res.Weekly[i], res.Weekly[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		if a.ISOYear != b.ISOYear {
			return a.ISOYear < b.ISOYear
		}
		return a.ISOWeek < b.ISOWeek
	})

	log.Printf("[Engine] Pipeline finished: %d daily partitions, %d weekly partitions, %.2f km total",
		len(res.Daily), len(res.Weekly), res.TotalDistanceKm)
	return res, nil
}

// normalizeAll runs the time normalizer over contiguous shards of the input.
// Each shard writes to its own index range, so input order is preserved and
// no shard shares mutable state with another.
func (e *Engine) normalizeAll(ctx context.Context, points []models.Point) ([]models.NormalizedPoint, int, error) {
	out := make([]*models.NormalizedPoint, len(points))

	chunk := (len(points) + e.workers - 1) / e.workers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < len(points); start += chunk {
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				np, err := temporal.Normalize(points[i])
				if err != nil {
					continue // Counted below; bad rows never abort the batch
				}
				out[i] = &np
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("normalization cancelled: %w", err)
	}

	normalized := make([]models.NormalizedPoint, 0, len(points))
	skipped := 0
	for _, np := range out {
		if np == nil {
			skipped++
			continue
		}
		normalized = append(normalized, *np)
	}
	return normalized, skipped, nil
}

// foldPartitions sorts and folds each (user, date) partition on the worker
// pool. A partition is always processed whole by a single worker; only the
// order in which finished partitions are collected varies, and the final
// sort removes that nondeterminism.
func (e *Engine) foldPartitions(ctx context.Context, days map[dayKey][]models.NormalizedPoint) ([]models.DailyAggregate, error) {
	jobs := make(chan dayKey)
	var mu sync.Mutex
	daily := make([]models.DailyAggregate, 0, len(days))

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dk := range jobs {
				agg := FoldDay(dk.UserID, dk.Date, days[dk], e.distance)
				mu.Lock()
				daily = append(daily, agg)
				mu.Unlock()
			}
		}()
	}

	for dk := range days {
		if ctx.Err() != nil {
			break
		}
		jobs <- dk
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregation cancelled: %w", err)
	}

	sort.Slice(daily, func(i, j int) bool {
		if daily[i].UserID != daily[j].UserID {
			return daily[i].UserID < daily[j].UserID
		}
		return daily[i].Date < daily[j].Date
	})
	return daily, nil
}

// SortByAdjustedTimestamp orders points ascending by adjusted timestamp.
// The sort is stable, so points sharing a timestamp keep their input order.
func SortByAdjustedTimestamp(points []models.NormalizedPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].AdjustedTimestamp < points[j].AdjustedTimestamp
	})
}

// FoldDay computes the daily aggregate for one partition. The points are
// sorted by adjusted timestamp first: distance accumulates between temporally
// adjacent points, and the first point of the day contributes zero. A
// single-point day is valid and yields zero distance and zero span.
func FoldDay(userID int, date string, points []models.NormalizedPoint, distance spatial.DistanceFunc) models.DailyAggregate {
	sorted := make([]models.NormalizedPoint, len(points))
	copy(sorted, points)
	SortByAdjustedTimestamp(sorted)

	agg := models.DailyAggregate{
		UserID:     userID,
		Date:       date,
		PointCount: len(sorted),
	}
	if len(sorted) == 0 {
		return agg
	}

	agg.MinAltitude = sorted[0].Altitude
	agg.MaxAltitude = sorted[0].Altitude
	for _, p := range sorted[1:] {
		if p.Altitude < agg.MinAltitude {
			agg.MinAltitude = p.Altitude
		}
		if p.Altitude > agg.MaxAltitude {
			agg.MaxAltitude = p.Altitude
		}
	}
	agg.AltitudeSpan = agg.MaxAltitude - agg.MinAltitude

	agg.TotalDistanceKm = PathDistanceKm(sorted, distance)
	return agg
}

// PathDistanceKm sums consecutive-point distances along the given sequence
// in its current order. The result depends on that order; callers that want
// the temporal path must sort by adjusted timestamp first.
func PathDistanceKm(points []models.NormalizedPoint, distance spatial.DistanceFunc) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		total += distance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	}
	return total
}
