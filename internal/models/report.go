package models

// AdjustedSample is one row of the timezone-verification sample: the original
// GMT fields next to the longitude-adjusted ones.
type AdjustedSample struct {
	Longitude         float64 `json:"longitude"`
	TimezoneOffset    int     `json:"timezoneOffset"`
	Timestamp         float64 `json:"timestamp"`
	AdjustedTimestamp float64 `json:"adjustedTimestamp"`
	Date              string  `json:"date"`
	AdjustedDate      string  `json:"adjustedDate"`
	Time              string  `json:"time"`
	AdjustedTime      string  `json:"adjustedTime"`
}

// CorrelationEntry relates one Beijing visitor to their northernmost record.
// Users who never entered the Beijing rectangle do not appear.
type CorrelationEntry struct {
	UserID             int     `json:"userId" db:"user_id"`
	VisitCount         int     `json:"visitCount" db:"visit_count"`
	NorthernmostLat    float64 `json:"northernmostLat" db:"northernmost_lat"`
	NorthernmostDate   string  `json:"northernmostDate" db:"northernmost_date"`
	NorthInsideBeijing bool    `json:"northInsideBeijing" db:"north_inside_beijing"`
}

// NorthernmostReportRow is one row of the top-northernmost report: a user's
// extreme-latitude record flagged with whether that user ever visited Beijing.
type NorthernmostReportRow struct {
	NorthernmostRecord
	VisitedBeijing bool `json:"visitedBeijing" db:"visited_beijing"`
}

// RunStats describes one batch run: how much input was seen and how much of
// it was rejected at the ingestion or normalization boundary.
type RunStats struct {
	TotalRows        int `json:"totalRows" db:"total_rows"`
	ParsedRows       int `json:"parsedRows" db:"parsed_rows"`
	SkippedParse     int `json:"skippedParse" db:"skipped_parse"`
	SkippedNormalize int `json:"skippedNormalize" db:"skipped_normalize"`
}

// RunSummary is the persisted headline of a batch run, as served by the
// results API.
type RunSummary struct {
	RunID           int64       `json:"runId" db:"id"`
	Stats           RunStats    `json:"stats"`
	BeijingCount    int         `json:"beijingCount" db:"beijing_count"`
	TotalDistanceKm float64     `json:"totalDistanceKm" db:"total_distance_km"`
	LongestDay      *LongestDay `json:"longestDay,omitempty"`
	CreatedAt       string      `json:"createdAt" db:"created_at"`
}

// BatchReport is the complete output of one pipeline run.
type BatchReport struct {
	Stats            RunStats                `json:"stats"`
	Sample           []AdjustedSample        `json:"sample"`
	BeijingCount     int                     `json:"beijingCount"`
	TotalDistanceKm  float64                 `json:"totalDistanceKm"`
	LongestDay       *LongestDay             `json:"longestDay,omitempty"`
	LongestDayByUser []LongestDay            `json:"longestDayByUser"`
	TopActiveDays    []UserActivityCount     `json:"topActiveDays"`
	TopActiveWeeks   []UserActivityCount     `json:"topActiveWeeks"`
	TopNorthernmost  []NorthernmostReportRow `json:"topNorthernmost"`
	TopAltitudeSpans []UserAltitudeSpan      `json:"topAltitudeSpans"`
	Correlation      []CorrelationEntry      `json:"correlation"`
}
