package report

import (
	"fmt"
	"io"

	"github.com/geolife-analytics/trajectory-backend-go/internal/ingest"
	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/pipeline"
	"github.com/geolife-analytics/trajectory-backend-go/internal/spatial"
)

// Options controls report assembly.
type Options struct {
	SampleSize     int
	TopN           int
	DailyThreshold int
	WeekThreshold  int
}

// Build assembles the batch report from a pipeline result.
func Build(res *pipeline.Result, loadStats ingest.Stats, fence *spatial.Geofence, opts Options) *models.BatchReport {
	activeDays := pipeline.HighActivityDays(res.Daily, opts.DailyThreshold)
	activeWeeks := pipeline.HighActivityWeeks(res.Weekly, opts.WeekThreshold)
	northern := pipeline.TopNorthernmost(res.Northernmost)

	r := &models.BatchReport{
		Stats: models.RunStats{
			TotalRows:        loadStats.TotalRows,
			ParsedRows:       loadStats.Parsed,
			SkippedParse:     loadStats.Skipped,
			SkippedNormalize: res.SkippedNormalize,
		},
		Sample:           sample(res.Normalized, opts.SampleSize),
		BeijingCount:     res.BeijingCount,
		TotalDistanceKm:  res.TotalDistanceKm,
		LongestDay:       pipeline.GlobalLongestDay(res.Daily),
		LongestDayByUser: topLongest(pipeline.LongestDayPerUser(res.Daily), opts.TopN),
		TopActiveDays:    topCounts(pipeline.QualifyingCounts(activeDays), opts.TopN),
		TopActiveWeeks:   topCounts(pipeline.QualifyingCounts(activeWeeks), opts.TopN),
		TopNorthernmost:  FlagBeijingVisitors(topNorthern(northern, opts.TopN), res.BeijingVisits),
		TopAltitudeSpans: topSpans(pipeline.MaxAltitudeSpans(res.Daily), opts.TopN),
		Correlation:      BuildCorrelation(res.BeijingVisits, res.Northernmost, fence),
	}
	return r
}

func sample(points []models.NormalizedPoint, n int) []models.AdjustedSample {
	if n > len(points) {
		n = len(points)
	}
	out := make([]models.AdjustedSample, 0, n)
	for _, np := range points[:n] {
		out = append(out, models.AdjustedSample{
			Longitude:         np.Longitude,
			TimezoneOffset:    np.TimezoneOffset,
			Timestamp:         np.Timestamp,
			AdjustedTimestamp: np.AdjustedTimestamp,
			Date:              np.Date,
			AdjustedDate:      np.AdjustedDate,
			Time:              np.Time,
			AdjustedTime:      np.AdjustedTime,
		})
	}
	return out
}

func topCounts(counts []models.UserActivityCount, n int) []models.UserActivityCount {
	if n < len(counts) {
		return counts[:n]
	}
	return counts
}

func topSpans(spans []models.UserAltitudeSpan, n int) []models.UserAltitudeSpan {
	if n < len(spans) {
		return spans[:n]
	}
	return spans
}

func topLongest(days []models.LongestDay, n int) []models.LongestDay {
	if n < len(days) {
		return days[:n]
	}
	return days
}

func topNorthern(records []models.NorthernmostRecord, n int) []models.NorthernmostRecord {
	if n < len(records) {
		return records[:n]
	}
	return records
}

// Render writes the report as plain text in the order the batch job reports
// its tasks: adjusted sample, Beijing count, activity rankings, northernmost
// records, altitude spans, distances.
func Render(w io.Writer, r *models.BatchReport) {
	fmt.Fprintf(w, "Input: %d rows, %d parsed, %d skipped at parse, %d skipped at normalization\n",
		r.Stats.TotalRows, r.Stats.ParsedRows, r.Stats.SkippedParse, r.Stats.SkippedNormalize)

	fmt.Fprintln(w, "\nSample of timezone adjusted data:")
	for _, s := range r.Sample {
		fmt.Fprintf(w, "  lon=%.6f offset=%+d ts=%.6f adj_ts=%.6f %s %s -> %s %s\n",
			s.Longitude, s.TimezoneOffset, s.Timestamp, s.AdjustedTimestamp,
			s.Date, s.Time, s.AdjustedDate, s.AdjustedTime)
	}

	fmt.Fprintf(w, "\nNumber of records in Beijing area: %d\n", r.BeijingCount)

	fmt.Fprintln(w, "\nUsers with >10 daily points:")
	for _, c := range r.TopActiveDays {
		fmt.Fprintf(w, "  user %d: %d days\n", c.UserID, c.QualifyingCount)
	}

	fmt.Fprintln(w, "\nUsers with >100 weekly points:")
	for _, c := range r.TopActiveWeeks {
		fmt.Fprintf(w, "  user %d: %d weeks\n", c.UserID, c.QualifyingCount)
	}

	fmt.Fprintln(w, "\nNorthernmost points and Beijing visits:")
	for _, row := range r.TopNorthernmost {
		fmt.Fprintf(w, "  user %d: lat=%.6f on %s visited_beijing=%t\n",
			row.UserID, row.Latitude, row.AdjustedDate, row.VisitedBeijing)
	}

	fmt.Fprintln(w, "\nMaximum altitude spans:")
	for _, s := range r.TopAltitudeSpans {
		fmt.Fprintf(w, "  user %d: %.1f\n", s.UserID, s.MaxSpan)
	}

	fmt.Fprintf(w, "\nTotal distance traveled by all users: %.2f km\n", r.TotalDistanceKm)

	if r.LongestDay != nil {
		fmt.Fprintf(w, "Longest daily distance: user %d on %s, %.2f km\n",
			r.LongestDay.UserID, r.LongestDay.Date, r.LongestDay.DistanceKm)
	}

	fmt.Fprintln(w, "\nLongest daily distances per user:")
	for _, d := range r.LongestDayByUser {
		fmt.Fprintf(w, "  user %d on %s: %.2f km\n", d.UserID, d.Date, d.DistanceKm)
	}

	fmt.Fprintln(w, "\nBeijing visitor correlation:")
	for _, c := range r.Correlation {
		fmt.Fprintf(w, "  user %d: %d visits, northernmost lat=%.6f on %s inside_beijing=%t\n",
			c.UserID, c.VisitCount, c.NorthernmostLat, c.NorthernmostDate, c.NorthInsideBeijing)
	}
}
