package config

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
)

// Beijing-area rectangle used by the geofilter stage.
const (
	DefaultLatMin = 39.5
	DefaultLatMax = 40.5
	DefaultLonMin = 115.5
	DefaultLonMax = 117.5
)

// Activity thresholds: a day qualifies with more than 10 points, a week with
// more than 100.
const (
	DailyActivityThreshold  = 10
	WeeklyActivityThreshold = 100
)

// Config holds application configuration for both the batch CLI and the
// results API server.
type Config struct {
	Port        string
	DBPath      string
	DatasetPath string
	JWTSecret   string

	Workers    int // Worker pool size for the aggregation pipeline
	SampleSize int // Rows in the adjusted-timestamp verification sample
	TopN       int // Length of the ranked report lists

	GeofenceLatMin float64
	GeofenceLatMax float64
	GeofenceLonMin float64
	GeofenceLonMax float64
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Config {
	cfg := &Config{
		Port:           envOr("PORT", ":8080"),
		DBPath:         envOr("DB_PATH", "./data/trajectories.db"),
		DatasetPath:    envOr("DATASET_PATH", "./data/dataset.txt"),
		JWTSecret:      envOr("JWT_SECRET", "your-secret-key-change-in-production"),
		Workers:        envIntOr("WORKERS", runtime.NumCPU()),
		SampleSize:     envIntOr("SAMPLE_SIZE", 5),
		TopN:           envIntOr("TOP_N", 6),
		GeofenceLatMin: envFloatOr("GEOFENCE_LAT_MIN", DefaultLatMin),
		GeofenceLatMax: envFloatOr("GEOFENCE_LAT_MAX", DefaultLatMax),
		GeofenceLonMin: envFloatOr("GEOFENCE_LON_MIN", DefaultLonMin),
		GeofenceLonMax: envFloatOr("GEOFENCE_LON_MAX", DefaultLonMax),
	}
	return cfg
}

// Validate rejects configurations that would silently corrupt every result.
// Callers are expected to treat any error as fatal before processing starts.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("sample size must be non-negative, got %d", c.SampleSize)
	}
	if c.TopN < 1 {
		return fmt.Errorf("topN must be positive, got %d", c.TopN)
	}

	for name, v := range map[string]float64{
		"GEOFENCE_LAT_MIN": c.GeofenceLatMin,
		"GEOFENCE_LAT_MAX": c.GeofenceLatMax,
		"GEOFENCE_LON_MIN": c.GeofenceLonMin,
		"GEOFENCE_LON_MAX": c.GeofenceLonMax,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite: %v", name, v)
		}
	}
	if c.GeofenceLatMin > c.GeofenceLatMax {
		return fmt.Errorf("geofence latitude bounds inverted: [%v, %v]", c.GeofenceLatMin, c.GeofenceLatMax)
	}
	if c.GeofenceLonMin > c.GeofenceLonMax {
		return fmt.Errorf("geofence longitude bounds inverted: [%v, %v]", c.GeofenceLonMin, c.GeofenceLonMax)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
