package pipeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
)

func daily(user int, date string, count int, distance, span float64) models.DailyAggregate {
	return models.DailyAggregate{
		UserID: user, Date: date, PointCount: count,
		TotalDistanceKm: distance, AltitudeSpan: span,
	}
}

func TestHighActivityDaysStrictThreshold(t *testing.T) {
	aggs := []models.DailyAggregate{
		daily(1, "2008-10-24", 11, 0, 0),
		daily(2, "2008-10-24", 10, 0, 0),
		daily(3, "2008-10-24", 200, 0, 0),
	}

	entries := HighActivityDays(aggs, 10)
	require.Len(t, entries, 2)
	require.Equal(t, 3, entries[0].UserID)
	require.Equal(t, 1, entries[1].UserID)
}

func TestActivityRankingTieBreak(t *testing.T) {
	aggs := []models.DailyAggregate{
		daily(7, "2008-10-24", 50, 0, 0),
		daily(2, "2008-10-25", 50, 0, 0),
		daily(5, "2008-10-26", 50, 0, 0),
		daily(2, "2008-10-27", 80, 0, 0),
	}

	entries := HighActivityDays(aggs, 10)
	require.Equal(t, []models.ActivityEntry{
		{UserID: 2, Key: "2008-10-27", PointCount: 80},
		{UserID: 2, Key: "2008-10-25", PointCount: 50},
		{UserID: 5, Key: "2008-10-26", PointCount: 50},
		{UserID: 7, Key: "2008-10-24", PointCount: 50},
	}, entries)
}

func TestActivityRankingDeterministic(t *testing.T) {
	var aggs []models.DailyAggregate
	for user := 1; user <= 20; user++ {
		for d := 0; d < 5; d++ {
			aggs = append(aggs, daily(user, "2008-10-2"+string(rune('0'+d)), 11+d%3, 0, 0))
		}
	}

	first := HighActivityDays(aggs, 10)

	// Shuffling the input must not change the ranking.
	shuffled := make([]models.DailyAggregate, len(aggs))
	copy(shuffled, aggs)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	second := HighActivityDays(shuffled, 10)

	require.Equal(t, first, second)
}

func TestQualifyingCounts(t *testing.T) {
	entries := []models.ActivityEntry{
		{UserID: 1, Key: "2008-10-24", PointCount: 11},
		{UserID: 1, Key: "2008-10-25", PointCount: 30},
		{UserID: 2, Key: "2008-10-24", PointCount: 12},
		{UserID: 3, Key: "2008-10-24", PointCount: 15},
		{UserID: 3, Key: "2008-10-26", PointCount: 15},
	}

	counts := QualifyingCounts(entries)
	require.Equal(t, []models.UserActivityCount{
		{UserID: 1, QualifyingCount: 2},
		{UserID: 3, QualifyingCount: 2},
		{UserID: 2, QualifyingCount: 1},
	}, counts)
}

func TestHighActivityWeeksKeyFormat(t *testing.T) {
	weekly := []models.WeeklyAggregate{
		{UserID: 1, ISOYear: 2008, ISOWeek: 43, PointCount: 150},
		{UserID: 2, ISOYear: 2009, ISOWeek: 1, PointCount: 101},
	}

	entries := HighActivityWeeks(weekly, 100)
	require.Len(t, entries, 2)
	require.Equal(t, "2008-W43", entries[0].Key)
	require.Equal(t, "2009-W01", entries[1].Key)
}

func TestMaxAltitudeSpans(t *testing.T) {
	aggs := []models.DailyAggregate{
		daily(1, "2008-10-24", 5, 0, 120),
		daily(1, "2008-10-25", 5, 0, 300),
		daily(2, "2008-10-24", 5, 0, 300),
		daily(3, "2008-10-24", 5, 0, 50),
	}

	spans := MaxAltitudeSpans(aggs)
	require.Equal(t, []models.UserAltitudeSpan{
		{UserID: 1, MaxSpan: 300},
		{UserID: 2, MaxSpan: 300},
		{UserID: 3, MaxSpan: 50},
	}, spans)
}

func TestLongestDayPerUser(t *testing.T) {
	aggs := []models.DailyAggregate{
		daily(1, "2008-10-25", 5, 40, 0),
		daily(1, "2008-10-24", 5, 40, 0), // Tie resolves to the earlier date
		daily(1, "2008-10-26", 5, 10, 0),
		daily(2, "2008-10-24", 5, 90, 0),
	}

	days := LongestDayPerUser(aggs)
	require.Equal(t, []models.LongestDay{
		{UserID: 2, Date: "2008-10-24", DistanceKm: 90},
		{UserID: 1, Date: "2008-10-24", DistanceKm: 40},
	}, days)
}

func TestGlobalLongestDay(t *testing.T) {
	require.Nil(t, GlobalLongestDay(nil))

	aggs := []models.DailyAggregate{
		daily(4, "2008-10-25", 5, 70, 0),
		daily(2, "2008-10-24", 5, 70, 0),
		daily(1, "2008-10-24", 5, 70, 0),
		daily(3, "2008-10-23", 5, 30, 0),
	}

	// Ties: earliest date first, then lowest user ID.
	best := GlobalLongestDay(aggs)
	require.NotNil(t, best)
	require.Equal(t, models.LongestDay{UserID: 1, Date: "2008-10-24", DistanceKm: 70}, *best)
}

func TestTopNorthernmost(t *testing.T) {
	records := map[int]models.NorthernmostRecord{
		3: {UserID: 3, Latitude: 41.0},
		1: {UserID: 1, Latitude: 45.5},
		2: {UserID: 2, Latitude: 41.0},
	}

	ranked := TopNorthernmost(records)
	require.Equal(t, []int{1, 2, 3}, []int{ranked[0].UserID, ranked[1].UserID, ranked[2].UserID})
	require.Equal(t, 45.5, ranked[0].Latitude)
}
