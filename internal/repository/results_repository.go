package repository

import (
	"database/sql"
	"fmt"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
)

// ResultsRepository persists the output of a batch run. All writes for one
// run happen inside a caller-provided transaction.
type ResultsRepository struct {
	db *sql.DB
}

// NewResultsRepository creates a new results repository.
func NewResultsRepository(db *sql.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

// InsertRun records the run header and returns its ID.
func (r *ResultsRepository) InsertRun(tx *sql.Tx, stats models.RunStats, beijingCount int, totalKm float64) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO batch_runs (total_rows, parsed_rows, skipped_parse, skipped_normalize, beijing_count, total_distance_km)
		VALUES (?, ?, ?, ?, ?, ?)
	`, stats.TotalRows, stats.ParsedRows, stats.SkippedParse, stats.SkippedNormalize, beijingCount, totalKm)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return runID, nil
}

// InsertDailyAggregates stores the per-(user, date) aggregates for a run.
func (r *ResultsRepository) InsertDailyAggregates(tx *sql.Tx, runID int64, daily []models.DailyAggregate) error {
	stmt, err := tx.Prepare(`
		INSERT INTO daily_aggregates (run_id, user_id, date, point_count, total_distance_km, min_altitude, max_altitude, altitude_span)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare daily insert: %w", err)
	}
	defer stmt.Close()

	for _, agg := range daily {
		if _, err := stmt.Exec(runID, agg.UserID, agg.Date, agg.PointCount,
			agg.TotalDistanceKm, agg.MinAltitude, agg.MaxAltitude, agg.AltitudeSpan); err != nil {
			return fmt.Errorf("failed to insert daily aggregate (user %d, %s): %w", agg.UserID, agg.Date, err)
		}
	}
	return nil
}

// InsertWeeklyAggregates stores the per-(user, ISO week) counts for a run.
func (r *ResultsRepository) InsertWeeklyAggregates(tx *sql.Tx, runID int64, weekly []models.WeeklyAggregate) error {
	stmt, err := tx.Prepare(`
		INSERT INTO weekly_aggregates (run_id, user_id, iso_year, iso_week, point_count)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare weekly insert: %w", err)
	}
	defer stmt.Close()

	for _, agg := range weekly {
		if _, err := stmt.Exec(runID, agg.UserID, agg.ISOYear, agg.ISOWeek, agg.PointCount); err != nil {
			return fmt.Errorf("failed to insert weekly aggregate (user %d, %d-W%d): %w",
				agg.UserID, agg.ISOYear, agg.ISOWeek, err)
		}
	}
	return nil
}

// InsertUserActivity stores a ranked activity list. granularity is "day" or
// "week"; rank follows slice order (already sorted by the pipeline).
func (r *ResultsRepository) InsertUserActivity(tx *sql.Tx, runID int64, granularity string, counts []models.UserActivityCount) error {
	stmt, err := tx.Prepare(`
		INSERT INTO user_activity (run_id, granularity, user_id, qualifying_count, rank)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare activity insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range counts {
		if _, err := stmt.Exec(runID, granularity, c.UserID, c.QualifyingCount, i+1); err != nil {
			return fmt.Errorf("failed to insert %s activity for user %d: %w", granularity, c.UserID, err)
		}
	}
	return nil
}

// InsertNorthernmost stores the ranked northernmost records with their
// Beijing-visit flags.
func (r *ResultsRepository) InsertNorthernmost(tx *sql.Tx, runID int64, rows []models.NorthernmostReportRow) error {
	stmt, err := tx.Prepare(`
		INSERT INTO northernmost (run_id, user_id, latitude, longitude, adjusted_date, adjusted_timestamp, visited_beijing)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare northernmost insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(runID, row.UserID, row.Latitude, row.Longitude,
			row.AdjustedDate, row.AdjustedTimestamp, row.VisitedBeijing); err != nil {
			return fmt.Errorf("failed to insert northernmost for user %d: %w", row.UserID, err)
		}
	}
	return nil
}

// InsertCorrelation stores the Beijing visitor correlation rows.
func (r *ResultsRepository) InsertCorrelation(tx *sql.Tx, runID int64, entries []models.CorrelationEntry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO beijing_correlation (run_id, user_id, visit_count, northernmost_lat, northernmost_date, north_inside_beijing)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare correlation insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(runID, e.UserID, e.VisitCount, e.NorthernmostLat,
			e.NorthernmostDate, e.NorthInsideBeijing); err != nil {
			return fmt.Errorf("failed to insert correlation for user %d: %w", e.UserID, err)
		}
	}
	return nil
}

// InsertLongestDays stores per-user longest days; the global extremum is
// flagged on its owning row.
func (r *ResultsRepository) InsertLongestDays(tx *sql.Tx, runID int64, perUser []models.LongestDay, global *models.LongestDay) error {
	stmt, err := tx.Prepare(`
		INSERT INTO longest_days (run_id, user_id, date, distance_km, is_global)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare longest-day insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range perUser {
		isGlobal := global != nil && global.UserID == d.UserID && global.Date == d.Date
		if _, err := stmt.Exec(runID, d.UserID, d.Date, d.DistanceKm, isGlobal); err != nil {
			return fmt.Errorf("failed to insert longest day for user %d: %w", d.UserID, err)
		}
	}
	return nil
}
