package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
	"github.com/geolife-analytics/trajectory-backend-go/internal/spatial"
)

func fence(t *testing.T) *spatial.Geofence {
	t.Helper()
	f, err := spatial.NewGeofence(39.5, 40.5, 115.5, 117.5)
	require.NoError(t, err)
	return f
}

func TestBuildCorrelationVisitorsOnly(t *testing.T) {
	visits := map[int]int{1: 12, 2: 3}
	northernmost := map[int]models.NorthernmostRecord{
		1: {UserID: 1, Latitude: 40.1, Longitude: 116.4, AdjustedDate: "2008-10-24"},
		2: {UserID: 2, Latitude: 52.5, Longitude: 13.4, AdjustedDate: "2008-06-01"},
		3: {UserID: 3, Latitude: 48.8, Longitude: 2.35, AdjustedDate: "2008-07-14"},
	}

	entries := BuildCorrelation(visits, northernmost, fence(t))

	// User 3 never visited Beijing and is out of scope.
	require.Len(t, entries, 2)

	require.Equal(t, 2, entries[0].UserID)
	require.Equal(t, 3, entries[0].VisitCount)
	require.False(t, entries[0].NorthInsideBeijing) // Berlin is well north of the box

	require.Equal(t, 1, entries[1].UserID)
	require.Equal(t, 12, entries[1].VisitCount)
	require.True(t, entries[1].NorthInsideBeijing)
}

func TestBuildCorrelationOrdering(t *testing.T) {
	visits := map[int]int{1: 1, 2: 1, 3: 1}
	northernmost := map[int]models.NorthernmostRecord{
		1: {UserID: 1, Latitude: 40.0, Longitude: 116.3},
		2: {UserID: 2, Latitude: 41.0, Longitude: 116.3},
		3: {UserID: 3, Latitude: 40.0, Longitude: 116.3},
	}

	entries := BuildCorrelation(visits, northernmost, fence(t))
	require.Len(t, entries, 3)
	require.Equal(t, 2, entries[0].UserID) // Highest latitude first
	require.Equal(t, 1, entries[1].UserID) // Then ties by user ID
	require.Equal(t, 3, entries[2].UserID)
}

func TestFlagBeijingVisitors(t *testing.T) {
	records := []models.NorthernmostRecord{
		{UserID: 1, Latitude: 45.0},
		{UserID: 2, Latitude: 44.0},
	}
	visits := map[int]int{2: 7}

	rows := FlagBeijingVisitors(records, visits)
	require.Len(t, rows, 2)
	require.False(t, rows[0].VisitedBeijing)
	require.True(t, rows[1].VisitedBeijing)
}
