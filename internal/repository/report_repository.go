package repository

import (
	"database/sql"
	"fmt"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
)

// ReportRepository reads persisted analysis results for the API layer.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// LatestRunID returns the ID of the most recent batch run, or sql.ErrNoRows
// when no run has been persisted yet.
func (r *ReportRepository) LatestRunID() (int64, error) {
	var runID int64
	err := r.db.QueryRow("SELECT id FROM batch_runs ORDER BY id DESC LIMIT 1").Scan(&runID)
	if err != nil {
		return 0, err
	}
	return runID, nil
}

// GetSummary returns the headline numbers of a run.
func (r *ReportRepository) GetSummary(runID int64) (*models.RunSummary, error) {
	summary := &models.RunSummary{RunID: runID}

	err := r.db.QueryRow(`
		SELECT total_rows, parsed_rows, skipped_parse, skipped_normalize,
		       beijing_count, total_distance_km, created_at
		FROM batch_runs WHERE id = ?
	`, runID).Scan(
		&summary.Stats.TotalRows, &summary.Stats.ParsedRows,
		&summary.Stats.SkippedParse, &summary.Stats.SkippedNormalize,
		&summary.BeijingCount, &summary.TotalDistanceKm, &summary.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run summary: %w", err)
	}

	var day models.LongestDay
	err = r.db.QueryRow(`
		SELECT user_id, date, distance_km
		FROM longest_days WHERE run_id = ? AND is_global = 1
	`, runID).Scan(&day.UserID, &day.Date, &day.DistanceKm)
	if err == nil {
		summary.LongestDay = &day
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get longest day: %w", err)
	}

	return summary, nil
}

// GetDailyAggregates returns one page of daily aggregates, optionally
// filtered by user, ordered by (user, date).
func (r *ReportRepository) GetDailyAggregates(runID int64, userID, page, pageSize int) ([]models.DailyAggregate, int64, error) {
	where := "WHERE run_id = ?"
	args := []interface{}{runID}
	if userID > 0 {
		where += " AND user_id = ?"
		args = append(args, userID)
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM daily_aggregates "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily aggregates: %w", err)
	}

	query := `
		SELECT user_id, date, point_count, total_distance_km, min_altitude, max_altitude, altitude_span
		FROM daily_aggregates ` + where + `
		ORDER BY user_id, date
		LIMIT ? OFFSET ?
	`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query daily aggregates: %w", err)
	}
	defer rows.Close()

	var daily []models.DailyAggregate
	for rows.Next() {
		var agg models.DailyAggregate
		if err := rows.Scan(&agg.UserID, &agg.Date, &agg.PointCount, &agg.TotalDistanceKm,
			&agg.MinAltitude, &agg.MaxAltitude, &agg.AltitudeSpan); err != nil {
			return nil, 0, fmt.Errorf("failed to scan daily aggregate: %w", err)
		}
		daily = append(daily, agg)
	}
	return daily, total, rows.Err()
}

// GetUserActivity returns the ranked activity list for a granularity
// ("day" or "week"), in stored rank order.
func (r *ReportRepository) GetUserActivity(runID int64, granularity string) ([]models.UserActivityCount, error) {
	rows, err := r.db.Query(`
		SELECT user_id, qualifying_count
		FROM user_activity
		WHERE run_id = ? AND granularity = ?
		ORDER BY rank
	`, runID, granularity)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s activity: %w", granularity, err)
	}
	defer rows.Close()

	var counts []models.UserActivityCount
	for rows.Next() {
		var c models.UserActivityCount
		if err := rows.Scan(&c.UserID, &c.QualifyingCount); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetNorthernmost returns the stored northernmost records, southward.
func (r *ReportRepository) GetNorthernmost(runID int64) ([]models.NorthernmostReportRow, error) {
	rows, err := r.db.Query(`
		SELECT user_id, latitude, longitude, adjusted_date, adjusted_timestamp, visited_beijing
		FROM northernmost
		WHERE run_id = ?
		ORDER BY latitude DESC, user_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query northernmost: %w", err)
	}
	defer rows.Close()

	var out []models.NorthernmostReportRow
	for rows.Next() {
		var row models.NorthernmostReportRow
		if err := rows.Scan(&row.UserID, &row.Latitude, &row.Longitude,
			&row.AdjustedDate, &row.AdjustedTimestamp, &row.VisitedBeijing); err != nil {
			return nil, fmt.Errorf("failed to scan northernmost row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetCorrelation returns the Beijing visitor correlation rows.
func (r *ReportRepository) GetCorrelation(runID int64) ([]models.CorrelationEntry, error) {
	rows, err := r.db.Query(`
		SELECT user_id, visit_count, northernmost_lat, northernmost_date, north_inside_beijing
		FROM beijing_correlation
		WHERE run_id = ?
		ORDER BY northernmost_lat DESC, user_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query correlation: %w", err)
	}
	defer rows.Close()

	var out []models.CorrelationEntry
	for rows.Next() {
		var e models.CorrelationEntry
		if err := rows.Scan(&e.UserID, &e.VisitCount, &e.NorthernmostLat,
			&e.NorthernmostDate, &e.NorthInsideBeijing); err != nil {
			return nil, fmt.Errorf("failed to scan correlation row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLongestDays returns per-user longest days, longest first.
func (r *ReportRepository) GetLongestDays(runID int64) ([]models.LongestDay, error) {
	rows, err := r.db.Query(`
		SELECT user_id, date, distance_km
		FROM longest_days
		WHERE run_id = ?
		ORDER BY distance_km DESC, user_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query longest days: %w", err)
	}
	defer rows.Close()

	var out []models.LongestDay
	for rows.Next() {
		var d models.LongestDay
		if err := rows.Scan(&d.UserID, &d.Date, &d.DistanceKm); err != nil {
			return nil, fmt.Errorf("failed to scan longest day: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
