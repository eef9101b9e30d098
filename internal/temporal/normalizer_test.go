package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
)

func TestOffsetHours(t *testing.T) {
	cases := []struct {
		lon  float64
		want int
	}{
		{0, 0},
		{116.3, 8},  // Beijing
		{-74.0, -5}, // New York
		{7.4, 0},    // Below the midpoint
		{7.5, 1},    // At the midpoint, rounds away from zero
		{-180, -12},
		{180, 12},
		{179.99, 12},
	}

	for _, tc := range cases {
		got, err := OffsetHours(tc.lon)
		require.NoError(t, err, "lon %v", tc.lon)
		require.Equal(t, tc.want, got, "lon %v", tc.lon)
	}
}

func TestOffsetHoursClampRange(t *testing.T) {
	for lon := -180.0; lon <= 180.0; lon += 0.25 {
		offset, err := OffsetHours(lon)
		require.NoError(t, err)
		require.GreaterOrEqual(t, offset, MinOffsetHours, "lon %v", lon)
		require.LessOrEqual(t, offset, MaxOffsetHours, "lon %v", lon)
	}
}

func TestOffsetHoursNotFinite(t *testing.T) {
	for _, lon := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := OffsetHours(lon)
		require.Error(t, err)
		var nf *ErrNotFinite
		require.ErrorAs(t, err, &nf)
	}
}

func TestNormalize(t *testing.T) {
	// 39745.5 is 2008-10-24 12:00:00 GMT; lon 120 shifts it +8 hours.
	p := models.Point{
		UserID:    7,
		Latitude:  39.9,
		Longitude: 120.0,
		Altitude:  55,
		Timestamp: 39745.5,
		Date:      "2008-10-24",
		Time:      "12:00",
	}

	np, err := Normalize(p)
	require.NoError(t, err)
	require.Equal(t, 8, np.TimezoneOffset)
	require.InDelta(t, 39745.5+8.0/24.0, np.AdjustedTimestamp, 1e-12)
	require.Equal(t, "2008-10-24", np.AdjustedDate)
	require.Equal(t, "20:00:00", np.AdjustedTime)
	require.Equal(t, p, np.Point)
}

func TestNormalizeRollsDate(t *testing.T) {
	// 22:00 GMT plus +8 hours lands on the next local day.
	p := models.Point{UserID: 1, Longitude: 120.0, Timestamp: 39745.0 + 22.0/24.0}

	np, err := Normalize(p)
	require.NoError(t, err)
	require.Equal(t, "2008-10-25", np.AdjustedDate)
	require.Equal(t, "06:00:00", np.AdjustedTime)
}

func TestNormalizeNotFinite(t *testing.T) {
	_, err := Normalize(models.Point{Timestamp: math.NaN(), Longitude: 0})
	require.Error(t, err)

	_, err = Normalize(models.Point{Timestamp: 39745, Longitude: math.Inf(1)})
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	// Decomposing an adjusted timestamp and re-deriving the fractional day
	// must agree within the half-second rounding of ToTime.
	for _, ts := range []float64{25569.0, 39745.5, 39745.123456, 40000.999999} {
		back := FractionalDays(ToTime(ts))
		require.InDelta(t, ts, back, 0.5/86400+1e-12, "ts %v", ts)
	}
}

func TestISOWeek(t *testing.T) {
	year, week, err := ISOWeek("2008-10-24")
	require.NoError(t, err)
	require.Equal(t, 2008, year)
	require.Equal(t, 43, week)

	// Dec 29 2008 belongs to ISO week 1 of 2009.
	year, week, err = ISOWeek("2008-12-29")
	require.NoError(t, err)
	require.Equal(t, 2009, year)
	require.Equal(t, 1, week)

	_, _, err = ISOWeek("not-a-date")
	require.Error(t, err)
}
