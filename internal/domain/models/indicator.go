package models

import (
	"encoding/json"
	"time"
)

// IndicatorRecord is one live row of the indicator table. Composite records (quote, fundamentals,
// research) carry their JSON body in Payload.
type IndicatorRecord struct {
	Key           string          `json:"indicator_key"`
	Label         string          `json:"label"`
	Value         float64         `json:"value"`
	Unit          string          `json:"unit,omitempty"`
	ReferenceDate string          `json:"reference_date,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// Decode unmarshals the record payload into dst.
func (r *IndicatorRecord) Decode(dst any) error {
	if len(r.Payload) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(r.Payload, dst)
}

// SeriesPoint is a dated observation. Dates are always YYYY-MM-DD.
type SeriesPoint struct {
	SeriesKey string  `json:"-"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
}

// SeriesQuery narrows a series read. Since is an inclusive YYYY-MM-DD lower bound.
// Limit keeps the earliest Limit rows of the ascending result when positive.
type SeriesQuery struct {
	Since string
	Limit int
}

// SeriesStats summarizes one stored series.
type SeriesStats struct {
	SeriesKey string `json:"series_key"`
	Rows      int    `json:"rows"`
	MinDate   string `json:"min_date"`
	MaxDate   string `json:"max_date"`
}

// IndicatorSummary is the debug view of an indicator row.
type IndicatorSummary struct {
	Key           string  `json:"indicator_key"`
	Value         float64 `json:"value"`
	Unit          string  `json:"unit"`
	ReferenceDate string  `json:"reference_date"`
}

// Inventory lists what the store currently holds.
type Inventory struct {
	Indicators []IndicatorSummary `json:"indicators"`
	Series     []SeriesStats      `json:"series"`
}
