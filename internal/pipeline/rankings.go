package pipeline

import (
	"fmt"
	"sort"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
)

// HighActivityDays filters daily aggregates whose point count strictly
// exceeds the threshold, ranked by count descending with ties broken by
// ascending user ID, then date. The ordering is total, so repeated runs over
// the same input produce byte-identical rankings.
func HighActivityDays(daily []models.DailyAggregate, threshold int) []models.ActivityEntry {
	var entries []models.ActivityEntry
	for _, agg := range daily {
		if agg.PointCount > threshold {
			entries = append(entries, models.ActivityEntry{
				UserID:     agg.UserID,
				Key:        agg.Date,
				PointCount: agg.PointCount,
			})
		}
	}
	sortActivity(entries)
	return entries
}

// HighActivityWeeks is the weekly counterpart of HighActivityDays. Week keys
// are rendered in ISO 8601 form (2008-W45).
func HighActivityWeeks(weekly []models.WeeklyAggregate, threshold int) []models.ActivityEntry {
	var entries []models.ActivityEntry
	for _, agg := range weekly {
		if agg.PointCount > threshold {
			entries = append(entries, models.ActivityEntry{
				UserID:     agg.UserID,
				Key:        fmt.Sprintf("%04d-W%02d", agg.ISOYear, agg.ISOWeek),
				PointCount: agg.PointCount,
			})
		}
	}
	sortActivity(entries)
	return entries
}

func sortActivity(entries []models.ActivityEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PointCount != entries[j].PointCount {
			return entries[i].PointCount > entries[j].PointCount
		}
		if entries[i].UserID != entries[j].UserID {
			return entries[i].UserID < entries[j].UserID
		}
		return entries[i].Key < entries[j].Key
	})
}

// QualifyingCounts folds a ranking into per-user counts of qualifying
// partitions, ranked by count descending, ties by ascending user ID.
func QualifyingCounts(entries []models.ActivityEntry) []models.UserActivityCount {
	byUser := make(map[int]int)
	for _, e := range entries {
		byUser[e.UserID]++
	}

	counts := make([]models.UserActivityCount, 0, len(byUser))
	for userID, n := range byUser {
		counts = append(counts, models.UserActivityCount{UserID: userID, QualifyingCount: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].QualifyingCount != counts[j].QualifyingCount {
			return counts[i].QualifyingCount > counts[j].QualifyingCount
		}
		return counts[i].UserID < counts[j].UserID
	})
	return counts
}

// MaxAltitudeSpans reduces daily aggregates to each user's largest
// single-day altitude span, ranked descending with ties by ascending user ID.
func MaxAltitudeSpans(daily []models.DailyAggregate) []models.UserAltitudeSpan {
	byUser := make(map[int]float64)
	for _, agg := range daily {
		if span, ok := byUser[agg.UserID]; !ok || agg.AltitudeSpan > span {
			byUser[agg.UserID] = agg.AltitudeSpan
		}
	}

	spans := make([]models.UserAltitudeSpan, 0, len(byUser))
	for userID, span := range byUser {
		spans = append(spans, models.UserAltitudeSpan{UserID: userID, MaxSpan: span})
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].MaxSpan != spans[j].MaxSpan {
			return spans[i].MaxSpan > spans[j].MaxSpan
		}
		return spans[i].UserID < spans[j].UserID
	})
	return spans
}

// LongestDayPerUser picks, for each user, the day with the greatest travel
// distance (earliest date on ties), and returns them ranked by distance
// descending, ties by ascending user ID.
func LongestDayPerUser(daily []models.DailyAggregate) []models.LongestDay {
	byUser := make(map[int]models.LongestDay)
	for _, agg := range daily {
		best, ok := byUser[agg.UserID]
		if !ok || agg.TotalDistanceKm > best.DistanceKm ||
			(agg.TotalDistanceKm == best.DistanceKm && agg.Date < best.Date) {
			byUser[agg.UserID] = models.LongestDay{
				UserID:     agg.UserID,
				Date:       agg.Date,
				DistanceKm: agg.TotalDistanceKm,
			}
		}
	}

	days := make([]models.LongestDay, 0, len(byUser))
	for _, d := range byUser {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].DistanceKm != days[j].DistanceKm {
			return days[i].DistanceKm > days[j].DistanceKm
		}
		return days[i].UserID < days[j].UserID
	})
	return days
}

// GlobalLongestDay selects the single daily aggregate with the maximum total
// distance. Ties go to the earliest date, then the lowest user ID. Returns
// nil for an empty batch.
func GlobalLongestDay(daily []models.DailyAggregate) *models.LongestDay {
	var best *models.LongestDay
	for _, agg := range daily {
		cand := models.LongestDay{UserID: agg.UserID, Date: agg.Date, DistanceKm: agg.TotalDistanceKm}
		if best == nil ||
			cand.DistanceKm > best.DistanceKm ||
			(cand.DistanceKm == best.DistanceKm && cand.Date < best.Date) ||
			(cand.DistanceKm == best.DistanceKm && cand.Date == best.Date && cand.UserID < best.UserID) {
			c := cand
			best = &c
		}
	}
	return best
}

// TopNorthernmost ranks per-user northernmost records by latitude descending,
// ties by ascending user ID.
func TopNorthernmost(records map[int]models.NorthernmostRecord) []models.NorthernmostRecord {
	out := make([]models.NorthernmostRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Latitude != out[j].Latitude {
			return out[i].Latitude > out[j].Latitude
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
