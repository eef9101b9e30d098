package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/spatial"
)

// Dataset column order: UserID, Latitude, Longitude, AllZero, Altitude,
// Timestamp, Date, Time. One record per line, header present.
const expectedFields = 8

// Only the first few rejects are logged; a corrupt multi-million-row file
// must not flood the log.
const maxLoggedRejects = 5

// RowError describes a rejected input row. Rejected rows are counted and
// skipped; they never abort the batch.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d rejected: %s", e.Line, e.Reason)
}

// Stats counts what the loader saw and what it dropped.
type Stats struct {
	TotalRows int
	Parsed    int
	Skipped   int
}

// Loader reads the trajectory dataset from a CSV-style text file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given dataset path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the whole dataset, returning the parsed points and skip counts.
// Malformed or out-of-range rows are dropped individually.
func (l *Loader) Load() ([]models.Point, Stats, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open dataset %s: %w", l.path, err)
	}
	defer f.Close()

	points, stats, err := l.read(f)
	if err != nil {
		return nil, stats, err
	}

	log.Printf("[Loader] Loaded %d points from %s (%d rows skipped)", len(points), l.path, stats.Skipped)
	return points, stats, nil
}

func (l *Loader) read(r io.Reader) ([]models.Point, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Field-count errors are handled per row
	reader.TrimLeadingSpace = true

	// Header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, Stats{}, fmt.Errorf("dataset is empty")
		}
		return nil, Stats{}, fmt.Errorf("failed to read header: %w", err)
	}

	var points []models.Point
	stats := Stats{}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.TotalRows++
			stats.Skipped++
			continue
		}

		stats.TotalRows++
		p, err := ParseRecord(record)
		if err != nil {
			stats.Skipped++
			if stats.Skipped <= maxLoggedRejects {
				log.Printf("[Loader] %v", &RowError{Line: line, Reason: err.Error()})
			}
			continue
		}

		points = append(points, p)
		stats.Parsed++
	}

	return points, stats, nil
}

// ParseRecord converts one CSV record into a Point, validating types and
// coordinate ranges.
func ParseRecord(fields []string) (models.Point, error) {
	if len(fields) != expectedFields {
		return models.Point{}, fmt.Errorf("expected %d fields, got %d", expectedFields, len(fields))
	}

	userID, err := strconv.Atoi(fields[0])
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid user id %q: %w", fields[0], err)
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid latitude %q: %w", fields[1], err)
	}
	lon, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid longitude %q: %w", fields[2], err)
	}
	if !spatial.ValidCoordinate(lat, lon) {
		return models.Point{}, fmt.Errorf("coordinate out of range: (%v, %v)", lat, lon)
	}

	// fields[3] is the always-zero column; only its type is checked.
	if _, err := strconv.Atoi(fields[3]); err != nil {
		return models.Point{}, fmt.Errorf("invalid zero column %q: %w", fields[3], err)
	}

	alt, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid altitude %q: %w", fields[4], err)
	}

	ts, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("invalid timestamp %q: %w", fields[5], err)
	}
	if math.IsNaN(ts) || math.IsInf(ts, 0) || ts < 0 {
		return models.Point{}, fmt.Errorf("timestamp out of range: %v", ts)
	}

	return models.Point{
		UserID:    userID,
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
		Timestamp: ts,
		Date:      fields[6],
		Time:      fields[7],
	}, nil
}
