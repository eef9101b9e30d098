package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const header = "UserID,Latitude,Longitude,AllZero,Altitude,Timestamp,Date,Time\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeDataset(t, header+
		"1,39.906631,116.385564,0,492,39745.5,2008-10-24,12:00\n"+
		"1,39.906554,116.385625,0,492,39745.501,2008-10-24,12:01\n"+
		"2,31.2,121.5,0,10,39746.25,2008-10-25,06:00\n")

	points, stats, err := NewLoader(path).Load()
	require.NoError(t, err)
	require.Len(t, points, 3)
	require.Equal(t, 3, stats.TotalRows)
	require.Equal(t, 3, stats.Parsed)
	require.Equal(t, 0, stats.Skipped)

	require.Equal(t, 1, points[0].UserID)
	require.InDelta(t, 39.906631, points[0].Latitude, 1e-9)
	require.InDelta(t, 116.385564, points[0].Longitude, 1e-9)
	require.InDelta(t, 492.0, points[0].Altitude, 1e-9)
	require.InDelta(t, 39745.5, points[0].Timestamp, 1e-9)
	require.Equal(t, "2008-10-24", points[0].Date)
	require.Equal(t, "12:00", points[0].Time)
}

func TestLoaderSkipsMalformedRows(t *testing.T) {
	path := writeDataset(t, header+
		"1,39.9,116.3,0,492,39745.5,2008-10-24,12:00\n"+
		"x,39.9,116.3,0,492,39745.5,2008-10-24,12:00\n"+ // Bad user id
		"2,91.0,116.3,0,492,39745.5,2008-10-24,12:00\n"+ // Latitude out of range
		"3,39.9,-180.5,0,492,39745.5,2008-10-24,12:00\n"+ // Longitude out of range
		"4,39.9,116.3,0,492,-1.0,2008-10-24,12:00\n"+ // Negative timestamp
		"5,39.9,116.3,0,492\n"+ // Too few fields
		"6,39.9,116.3,0,492,39745.5,2008-10-24,12:00\n")

	points, stats, err := NewLoader(path).Load()
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, 7, stats.TotalRows)
	require.Equal(t, 2, stats.Parsed)
	require.Equal(t, 5, stats.Skipped)
	require.Equal(t, 1, points[0].UserID)
	require.Equal(t, 6, points[1].UserID)
}

func TestLoaderEmptyFile(t *testing.T) {
	path := writeDataset(t, "")
	_, _, err := NewLoader(path).Load()
	require.Error(t, err)
}

func TestLoaderHeaderOnly(t *testing.T) {
	path := writeDataset(t, header)
	points, stats, err := NewLoader(path).Load()
	require.NoError(t, err)
	require.Empty(t, points)
	require.Zero(t, stats.TotalRows)
}

func TestLoaderMissingFile(t *testing.T) {
	_, _, err := NewLoader(filepath.Join(t.TempDir(), "missing.txt")).Load()
	require.Error(t, err)
}

func TestParseRecordBoundaryCoordinates(t *testing.T) {
	p, err := ParseRecord([]string{"1", "90", "-180", "0", "0", "39745.5", "2008-10-24", "12:00"})
	require.NoError(t, err)
	require.Equal(t, 90.0, p.Latitude)
	require.Equal(t, -180.0, p.Longitude)
}
