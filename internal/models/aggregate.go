package models

// DailyAggregate holds per-(user, local date) trajectory metrics. Distance is
// the sum of great-circle distances between temporally consecutive points of
// the day, so it depends on the intra-day ordering by adjusted timestamp.
type DailyAggregate struct {
	UserID          int     `json:"userId" db:"user_id"`
	Date            string  `json:"date" db:"date"`
	PointCount      int     `json:"pointCount" db:"point_count"`
	TotalDistanceKm float64 `json:"totalDistanceKm" db:"total_distance_km"`
	MinAltitude     float64 `json:"minAltitude" db:"min_altitude"`
	MaxAltitude     float64 `json:"maxAltitude" db:"max_altitude"`
	AltitudeSpan    float64 `json:"altitudeSpan" db:"altitude_span"`
}

// WeeklyAggregate holds the point count for one (user, ISO week) partition.
// The ISO year disambiguates week numbers across year boundaries.
type WeeklyAggregate struct {
	UserID     int `json:"userId" db:"user_id"`
	ISOYear    int `json:"isoYear" db:"iso_year"`
	ISOWeek    int `json:"isoWeek" db:"iso_week"`
	PointCount int `json:"pointCount" db:"point_count"`
}

// ActivityEntry is one row of an activity ranking: a partition key (a date or
// an ISO week label) together with its point count.
type ActivityEntry struct {
	UserID     int    `json:"userId" db:"user_id"`
	Key        string `json:"key" db:"partition_key"`
	PointCount int    `json:"pointCount" db:"point_count"`
}

// UserActivityCount counts how many partitions (days or weeks) of a user
// cleared the high-activity threshold.
type UserActivityCount struct {
	UserID          int `json:"userId" db:"user_id"`
	QualifyingCount int `json:"qualifyingCount" db:"qualifying_count"`
}

// NorthernmostRecord is the point with the maximum latitude a user ever
// recorded. Ties on latitude are resolved by the earliest adjusted timestamp.
type NorthernmostRecord struct {
	UserID            int     `json:"userId" db:"user_id"`
	Latitude          float64 `json:"latitude" db:"latitude"`
	Longitude         float64 `json:"longitude" db:"longitude"`
	AdjustedDate      string  `json:"adjustedDate" db:"adjusted_date"`
	AdjustedTimestamp float64 `json:"adjustedTimestamp" db:"adjusted_timestamp"`
}

// UserAltitudeSpan is the largest single-day altitude span of a user.
type UserAltitudeSpan struct {
	UserID  int     `json:"userId" db:"user_id"`
	MaxSpan float64 `json:"maxSpan" db:"max_span"`
}

// LongestDay identifies the daily aggregate with the greatest travel distance.
// Ties are resolved by earliest date, then lowest user ID.
type LongestDay struct {
	UserID     int     `json:"userId" db:"user_id"`
	Date       string  `json:"date" db:"date"`
	DistanceKm float64 `json:"distanceKm" db:"distance_km"`
}
