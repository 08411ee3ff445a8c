package models

import "time"

// IngestMessage is published by the economic-data workers. Exactly one of SeriesKey or IndicatorKey is set.
type IngestMessage struct {
	SeriesKey string        `json:"series_key,omitempty"`
	Points    []SeriesPoint `json:"points,omitempty"`

	IndicatorKey  string   `json:"indicator_key,omitempty"`
	Label         string   `json:"label,omitempty"`
	Value         *float64 `json:"value,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	ReferenceDate string   `json:"reference_date,omitempty"`
}

const (
	EventIndicatorUpdated = "indicator.updated"
	EventSeriesUpdated    = "series.updated"
)

// ChangeEvent announces a committed store write.
type ChangeEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Points     int       `json:"points,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RefreshPayload is the body of a refresh.ticker job.
type RefreshPayload struct {
	Ticker string `json:"ticker"`
}
