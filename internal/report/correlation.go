package report

import (
	"sort"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/spatial"
)

// BuildCorrelation joins Beijing visitors against their northernmost records.
// Only users with at least one point inside the fence appear; for each, the
// northernmost point is classified as inside or outside the rectangle.
// Rows are ordered by northernmost latitude descending, ties by user ID.
func BuildCorrelation(visits map[int]int, northernmost map[int]models.NorthernmostRecord, fence *spatial.Geofence) []models.CorrelationEntry {
	entries := make([]models.CorrelationEntry, 0, len(visits))
	for userID, count := range visits {
		rec, ok := northernmost[userID]
		if !ok {
			// A visitor has at least one point, so a northernmost record
			// must exist for them.
			continue
		}
		entries = append(entries, models.CorrelationEntry{
			UserID:             userID,
			VisitCount:         count,
			NorthernmostLat:    rec.Latitude,
			NorthernmostDate:   rec.AdjustedDate,
			NorthInsideBeijing: fence.Contains(rec.Latitude, rec.Longitude),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].NorthernmostLat != entries[j].NorthernmostLat {
			return entries[i].NorthernmostLat > entries[j].NorthernmostLat
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}

// FlagBeijingVisitors annotates ranked northernmost records with whether the
// owning user ever entered the fence.
func FlagBeijingVisitors(records []models.NorthernmostRecord, visits map[int]int) []models.NorthernmostReportRow {
	rows := make([]models.NorthernmostReportRow, 0, len(records))
	for _, rec := range records {
		_, visited := visits[rec.UserID]
		rows = append(rows, models.NorthernmostReportRow{
			NorthernmostRecord: rec,
			VisitedBeijing:     visited,
		})
	}
	return rows
}
