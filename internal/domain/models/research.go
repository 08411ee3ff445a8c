package models

import "time"

type EpsQuarter struct {
	Quarter     string   `json:"quarter"`
	Actual      *float64 `json:"actual"`
	Estimate    *float64 `json:"estimate"`
	Surprise    *float64 `json:"surprise"`
	SurprisePct *float64 `json:"surprisePct"`
	EndDate     *string  `json:"endDate"`
}

type RecommendationTrend struct {
	Period       string `json:"period"`
	StrongBuy    int    `json:"strongBuy"`
	Buy          int    `json:"buy"`
	Hold         int    `json:"hold"`
	Underperform int    `json:"underperform"`
	Sell         int    `json:"sell"`
}

type PriceTarget struct {
	Low          *float64 `json:"low"`
	High         *float64 `json:"high"`
	Mean         *float64 `json:"mean"`
	Median       *float64 `json:"median"`
	CurrentPrice *float64 `json:"currentPrice"`
	Currency     string   `json:"currency"`
}

// RevenueEarningsPoint is one reported quarter, labelled "Qn YY".
type RevenueEarningsPoint struct {
	Quarter  string  `json:"quarter"`
	Revenue  float64 `json:"revenue"`
	Earnings float64 `json:"earnings"`
}

type CalendarEvent struct {
	EarningsDate *time.Time `json:"earningsDate"`
}

type InstitutionalOwner struct {
	Organization string   `json:"organization"`
	PctHeld      *float64 `json:"pctHeld"`
}

// Research groups analyst and earnings data for a ticker.
type Research struct {
	EpsHistory             []EpsQuarter           `json:"epsHistory"`
	Recommendations        []RecommendationTrend  `json:"recommendations"`
	PriceTarget            PriceTarget            `json:"priceTarget"`
	RevenueEarningsHistory []RevenueEarningsPoint `json:"revenueEarningsHistory"`
	CalendarEvents         CalendarEvent          `json:"calendarEvents"`
	TopInstitutions        []InstitutionalOwner   `json:"topInstitutions"`
}
