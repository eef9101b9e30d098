package service

import (
	"database/sql"
	"fmt"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/repository"
)

// ErrNoRuns is returned when no batch run has been persisted yet.
var ErrNoRuns = fmt.Errorf("no batch runs available")

// ReportService serves persisted analysis results. Queries default to the
// most recent run when no run ID is given.
type ReportService struct {
	reports *repository.ReportRepository
}

// NewReportService creates a new report service.
func NewReportService(db *sql.DB) *ReportService {
	return &ReportService{
		reports: repository.NewReportRepository(db),
	}
}

func (s *ReportService) resolveRun(runID int64) (int64, error) {
	if runID > 0 {
		return runID, nil
	}
	latest, err := s.reports.LatestRunID()
	if err == sql.ErrNoRows {
		return 0, ErrNoRuns
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve latest run: %w", err)
	}
	return latest, nil
}

// GetSummary returns the headline numbers of a run (0 = latest).
func (s *ReportService) GetSummary(runID int64) (*models.RunSummary, error) {
	id, err := s.resolveRun(runID)
	if err != nil {
		return nil, err
	}
	return s.reports.GetSummary(id)
}

// GetDailyAggregates returns a page of daily aggregates for a run.
func (s *ReportService) GetDailyAggregates(runID int64, userID, page, pageSize int) ([]models.DailyAggregate, int64, error) {
	id, err := s.resolveRun(runID)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 100
	}
	return s.reports.GetDailyAggregates(id, userID, page, pageSize)
}

// GetUserActivity returns the ranked activity list for "day" or "week".
func (s *ReportService) GetUserActivity(runID int64, granularity string) ([]models.UserActivityCount, error) {
	if granularity != "day" && granularity != "week" {
		return nil, fmt.Errorf("invalid granularity %q", granularity)
	}
	id, err := s.resolveRun(runID)
	if err != nil {
		return nil, err
	}
	return s.reports.GetUserActivity(id, granularity)
}

// GetNorthernmost returns the stored northernmost records of a run.
func (s *ReportService) GetNorthernmost(runID int64) ([]models.NorthernmostReportRow, error) {
	id, err := s.resolveRun(runID)
	if err != nil {
		return nil, err
	}
	return s.reports.GetNorthernmost(id)
}

// GetCorrelation returns the Beijing visitor correlation of a run.
func (s *ReportService) GetCorrelation(runID int64) ([]models.CorrelationEntry, error) {
	id, err := s.resolveRun(runID)
	if err != nil {
		return nil, err
	}
	return s.reports.GetCorrelation(id)
}

// GetLongestDays returns the per-user longest days of a run.
func (s *ReportService) GetLongestDays(runID int64) ([]models.LongestDay, error) {
	id, err := s.resolveRun(runID)
	if err != nil {
		return nil, err
	}
	return s.reports.GetLongestDays(id)
}
