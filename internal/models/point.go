package models

// Point represents one raw GPS trajectory record as read from the dataset.
// Timestamp is a fractional day count since 1899-12-30 (spreadsheet epoch),
// where the fractional part encodes the time of day in GMT.
type Point struct {
	UserID    int     `json:"userId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Timestamp float64 `json:"timestamp"`
	Date      string  `json:"date"` // As recorded in the dataset (GMT)
	Time      string  `json:"time"` // As recorded in the dataset (GMT)
}

// NormalizedPoint is a Point with the longitude-derived local-time fields
// attached. It is produced once by the time normalizer and never mutated.
type NormalizedPoint struct {
	Point
	TimezoneOffset    int     `json:"timezoneOffset"` // Whole hours, clamped to [-12, +14]
	AdjustedTimestamp float64 `json:"adjustedTimestamp"`
	AdjustedDate      string  `json:"adjustedDate"` // Format: 2006-01-02
	AdjustedTime      string  `json:"adjustedTime"` // Format: 15:04:05
}
