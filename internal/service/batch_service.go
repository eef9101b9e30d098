package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/geolife-analytics/trajectory-backend-go/internal/config"
	"github.com/geolife-analytics/trajectory-backend-go/internal/database"
	"github.com/geolife-analytics/trajectory-backend-go/internal/ingest"
	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/pipeline"
	"github.com/geolife-analytics/trajectory-backend-go/internal/report"
	"github.com/geolife-analytics/trajectory-backend-go/internal/repository"
	"github.com/geolife-analytics/trajectory-backend-go/internal/spatial"
)

// BatchService runs the full analysis batch: load the dataset, execute the
// aggregation pipeline, assemble the report, and persist the results.
type BatchService struct {
	cfg     *config.Config
	results *repository.ResultsRepository
}

// NewBatchService creates a new batch service.
func NewBatchService(cfg *config.Config, db *sql.DB) *BatchService {
	return &BatchService{
		cfg:     cfg,
		results: repository.NewResultsRepository(db),
	}
}

// Run executes one batch over the configured dataset and stores the results
// as a new run. The returned report is the same data the run persists.
func (s *BatchService) Run(ctx context.Context) (*models.BatchReport, error) {
	fence, err := spatial.NewGeofence(
		s.cfg.GeofenceLatMin, s.cfg.GeofenceLatMax,
		s.cfg.GeofenceLonMin, s.cfg.GeofenceLonMax,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid geofence configuration: %w", err)
	}

	points, loadStats, err := ingest.NewLoader(s.cfg.DatasetPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	engine := pipeline.NewEngine(s.cfg.Workers, fence, spatial.HaversineDistance)
	res, err := engine.Run(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}

	rep := report.Build(res, loadStats, fence, report.Options{
		SampleSize:     s.cfg.SampleSize,
		TopN:           s.cfg.TopN,
		DailyThreshold: config.DailyActivityThreshold,
		WeekThreshold:  config.WeeklyActivityThreshold,
	})

	if err := s.persist(rep, res); err != nil {
		return nil, fmt.Errorf("failed to persist results: %w", err)
	}

	return rep, nil
}

func (s *BatchService) persist(rep *models.BatchReport, res *pipeline.Result) error {
	return database.Transaction(func(tx *sql.Tx) error {
		runID, err := s.results.InsertRun(tx, rep.Stats, rep.BeijingCount, rep.TotalDistanceKm)
		if err != nil {
			return err
		}

		if err := s.results.InsertDailyAggregates(tx, runID, res.Daily); err != nil {
			return err
		}
		if err := s.results.InsertWeeklyAggregates(tx, runID, res.Weekly); err != nil {
			return err
		}
		if err := s.results.InsertUserActivity(tx, runID, "day", rep.TopActiveDays); err != nil {
			return err
		}
		if err := s.results.InsertUserActivity(tx, runID, "week", rep.TopActiveWeeks); err != nil {
			return err
		}
		if err := s.results.InsertNorthernmost(tx, runID, rep.TopNorthernmost); err != nil {
			return err
		}
		if err := s.results.InsertCorrelation(tx, runID, rep.Correlation); err != nil {
			return err
		}
		if err := s.results.InsertLongestDays(tx, runID, rep.LongestDayByUser, rep.LongestDay); err != nil {
			return err
		}

		log.Printf("[BatchService] Persisted run %d (%d daily, %d weekly aggregates)",
			runID, len(res.Daily), len(res.Weekly))
		return nil
	})
}
