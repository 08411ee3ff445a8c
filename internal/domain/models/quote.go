package models

import "time"

// Quote is the latest price snapshot for a ticker.
type Quote struct {
	LatestValue   float64   `json:"latestValue"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	LatestDate    time.Time `json:"latestDate"`
	Currency      string    `json:"currency"`
}

// Trade is a single execution from the live stream.
type Trade struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}
