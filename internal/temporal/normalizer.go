package temporal

import (
	"fmt"
	"math"
	"time"

	"github.com/geolife-analytics/trajectory-backend-go/internal/models"
)

// The dataset encodes timestamps as fractional days since 1899-12-30
// (spreadsheet convention). 25569 is the day count from that epoch to
// 1970-01-01, which bridges to Unix time.
const (
	EpochOffsetDays = 25569
	secondsPerDay   = 86400

	// Valid UTC offset range in whole hours. Raw rounding of lon/15 can
	// produce ±12 at most, but the clamp also covers the +13/+14 zones
	// that a configured override could introduce.
	MinOffsetHours = -12
	MaxOffsetHours = 14
)

// ErrNotFinite reports a NaN or infinite timestamp/longitude. Records that
// trigger it are skipped and counted, never silently corrected.
type ErrNotFinite struct {
	Field string
	Value float64
}

func (e *ErrNotFinite) Error() string {
	return fmt.Sprintf("%s is not finite: %v", e.Field, e.Value)
}

// OffsetHours derives the whole-hour UTC offset from a longitude: one hour
// per 15 degrees, rounded to nearest, clamped to [-12, +14]. Near the
// antimeridian round(lon/15) can reach ±12 exactly; the clamp guarantees no
// out-of-range offset ever escapes regardless of input.
func OffsetHours(lon float64) (int, error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, &ErrNotFinite{Field: "longitude", Value: lon}
	}

	offset := int(math.Round(lon / 15.0))
	if offset < MinOffsetHours {
		offset = MinOffsetHours
	}
	if offset > MaxOffsetHours {
		offset = MaxOffsetHours
	}
	return offset, nil
}

// ToTime converts a fractional-day timestamp to a UTC time, rounded to the
// nearest whole second.
func ToTime(t float64) time.Time {
	seconds := math.Round((t - EpochOffsetDays) * secondsPerDay)
	return time.Unix(int64(seconds), 0).UTC()
}

// FractionalDays converts a time back to the fractional-day convention.
// Inverse of ToTime up to the whole-second rounding.
func FractionalDays(t time.Time) float64 {
	return float64(t.Unix())/secondsPerDay + EpochOffsetDays
}

// Normalize attaches the longitude-derived local-time fields to a point.
// The adjusted timestamp shifts the raw one by the offset in days; date and
// time strings are decomposed from it with the same epoch and second-level
// rounding as the originals, so the two sets of fields stay comparable.
func Normalize(p models.Point) (models.NormalizedPoint, error) {
	if math.IsNaN(p.Timestamp) || math.IsInf(p.Timestamp, 0) {
		return models.NormalizedPoint{}, &ErrNotFinite{Field: "timestamp", Value: p.Timestamp}
	}

	offset, err := OffsetHours(p.Longitude)
	if err != nil {
		return models.NormalizedPoint{}, err
	}

	adjusted := p.Timestamp + float64(offset)/24.0
	local := ToTime(adjusted)

	return models.NormalizedPoint{
		Point:             p,
		TimezoneOffset:    offset,
		AdjustedTimestamp: adjusted,
		AdjustedDate:      local.Format("2006-01-02"),
		AdjustedTime:      local.Format("15:04:05"),
	}, nil
}

// ISOWeek returns the ISO 8601 year and week number of an adjusted date
// string as produced by Normalize.
func ISOWeek(adjustedDate string) (year, week int, err error) {
	t, err := time.Parse("2006-01-02", adjustedDate)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse adjusted date %q: %w", adjustedDate, err)
	}
	year, week = t.ISOWeek()
	return year, week, nil
}
