package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// RawValue is a provider number that arrives either bare or wrapped as {"raw": n, "fmt": "..."}.
// A nil *RawValue or a null/fmt-only payload means the metric is absent.
type RawValue struct {
	Value float64
	Valid bool
}

func (v *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = RawValue{}
		return nil
	}
	if b[0] == '{' {
		var wrapped struct {
			Raw *float64 `json:"raw"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		if wrapped.Raw == nil {
			*v = RawValue{}
			return nil
		}
		*v = RawValue{Value: *wrapped.Raw, Valid: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		// strings and other shapes carry no usable number
		*v = RawValue{}
		return nil
	}
	*v = RawValue{Value: f, Valid: true}
	return nil
}

// MarshalJSON writes the bare number, or null when absent.
func (v RawValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// Ptr returns the value as an optional float.
func (v *RawValue) Ptr() *float64 {
	if v == nil || !v.Valid {
		return nil
	}
	f := v.Value
	return &f
}

// ProviderQuote is the subset of a provider quote the adapters consume.
type ProviderQuote struct {
	Symbol                     string    `json:"symbol"`
	ShortName                  string    `json:"shortName"`
	LongName                   string    `json:"longName"`
	Exchange                   string    `json:"exchange"`
	Currency                   string    `json:"currency"`
	RegularMarketPrice         *RawValue `json:"regularMarketPrice"`
	RegularMarketChange        *RawValue `json:"regularMarketChange"`
	RegularMarketChangePercent *RawValue `json:"regularMarketChangePercent"`
	RegularMarketTime          *RawValue `json:"regularMarketTime"`
	MarketCap                  *RawValue `json:"marketCap"`
	EpsTrailingTwelveMonths    *RawValue `json:"epsTrailingTwelveMonths"`
}

// DisplayName returns the first non-empty of the given names, falling back to the symbol.
func (q *ProviderQuote) DisplayName(preferLong bool) string {
	names := []string{q.ShortName, q.LongName}
	if preferLong {
		names = []string{q.LongName, q.ShortName}
	}
	for _, n := range names {
		if n != "" {
			return n
		}
	}
	return q.Symbol
}

// PriceBar is one daily bar of a provider chart.
type PriceBar struct {
	Date     time.Time
	Close    *float64
	AdjClose *float64
}

// QuoteSummary is the typed view of the provider summary modules.
type QuoteSummary struct {
	AssetProfile                    *AssetProfile          `json:"assetProfile"`
	SummaryDetail                   *SummaryDetail         `json:"summaryDetail"`
	DefaultKeyStatistics            *KeyStatistics         `json:"defaultKeyStatistics"`
	FinancialData                   *FinancialDataModule   `json:"financialData"`
	BalanceSheetHistoryQuarterly    *BalanceSheetHistory   `json:"balanceSheetHistoryQuarterly"`
	EarningsTrend                   *EarningsTrend         `json:"earningsTrend"`
	EarningsHistory                 *EarningsHistory       `json:"earningsHistory"`
	RecommendationTrend             *RecommendationModule  `json:"recommendationTrend"`
	IncomeStatementHistoryQuarterly *IncomeStatementModule `json:"incomeStatementHistoryQuarterly"`
	CalendarEvents                  *CalendarEventsModule  `json:"calendarEvents"`
	InstitutionOwnership            *OwnershipModule       `json:"institutionOwnership"`
}

type AssetProfile struct {
	Website string `json:"website"`
}

type SummaryDetail struct {
	Beta             *RawValue `json:"beta"`
	TrailingPE       *RawValue `json:"trailingPE"`
	DividendYield    *RawValue `json:"dividendYield"`
	FiftyTwoWeekLow  *RawValue `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh *RawValue `json:"fiftyTwoWeekHigh"`
	AverageVolume    *RawValue `json:"averageVolume"`
}

type KeyStatistics struct {
	PriceToSalesTrailing12Months *RawValue `json:"priceToSalesTrailing12Months"`
	PriceToBook                  *RawValue `json:"priceToBook"`
	EnterpriseValue              *RawValue `json:"enterpriseValue"`
	EnterpriseToRevenue          *RawValue `json:"enterpriseToRevenue"`
	EnterpriseToEbitda           *RawValue `json:"enterpriseToEbitda"`
	NetIncomeToCommon            *RawValue `json:"netIncomeToCommon"`
	ProfitMargins                *RawValue `json:"profitMargins"`
}

type FinancialDataModule struct {
	CurrentPrice      *RawValue `json:"currentPrice"`
	TotalRevenue      *RawValue `json:"totalRevenue"`
	RevenuePerShare   *RawValue `json:"revenuePerShare"`
	GrossProfits      *RawValue `json:"grossProfits"`
	Ebitda            *RawValue `json:"ebitda"`
	OperatingMargins  *RawValue `json:"operatingMargins"`
	ReturnOnAssets    *RawValue `json:"returnOnAssets"`
	ReturnOnEquity    *RawValue `json:"returnOnEquity"`
	TargetLowPrice    *RawValue `json:"targetLowPrice"`
	TargetHighPrice   *RawValue `json:"targetHighPrice"`
	TargetMeanPrice   *RawValue `json:"targetMeanPrice"`
	TargetMedianPrice *RawValue `json:"targetMedianPrice"`
	FinancialCurrency string    `json:"financialCurrency"`
}

type BalanceSheetHistory struct {
	BalanceSheetStatements []BalanceSheetStatement `json:"balanceSheetStatements"`
}

type BalanceSheetStatement struct {
	TotalLiab               *RawValue `json:"totalLiab"`
	TotalStockholderEquity  *RawValue `json:"totalStockholderEquity"`
	TotalCurrentAssets      *RawValue `json:"totalCurrentAssets"`
	TotalCurrentLiabilities *RawValue `json:"totalCurrentLiabilities"`
}

type EarningsTrend struct {
	Trend []EarningsTrendPeriod `json:"trend"`
}

type EarningsTrendPeriod struct {
	Period          string `json:"period"`
	RevenueEstimate *struct {
		Growth *RawValue `json:"growth"`
	} `json:"revenueEstimate"`
}

type EarningsHistory struct {
	History []EarningsHistoryEntry `json:"history"`
}

type EarningsHistoryEntry struct {
	Quarter         *FormattedDate `json:"quarter"`
	EpsActual       *RawValue      `json:"epsActual"`
	EpsEstimate     *RawValue      `json:"epsEstimate"`
	EpsDifference   *RawValue      `json:"epsDifference"`
	SurprisePercent *RawValue      `json:"surprisePercent"`
	EndDate         *FormattedDate `json:"endDate"`
}

// FormattedDate is a provider date wrapped as {"raw": unixSeconds, "fmt": "YYYY-MM-DD"}.
type FormattedDate struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// Time returns the date, preferring the raw timestamp over the formatted text.
func (d *FormattedDate) Time() (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	if d.Raw != nil && *d.Raw != 0 {
		return time.Unix(int64(*d.Raw), 0).UTC(), true
	}
	if d.Fmt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", d.Fmt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Label is the formatted text, or the raw date as YYYY-MM-DD when no text was sent.
func (d *FormattedDate) Label() string {
	if d == nil {
		return ""
	}
	if d.Fmt != "" {
		return d.Fmt
	}
	if t, ok := d.Time(); ok {
		return t.Format("2006-01-02")
	}
	return ""
}

func (d *FormattedDate) FmtPtr() *string {
	if d == nil || d.Fmt == "" {
		return nil
	}
	s := d.Fmt
	return &s
}

type RecommendationModule struct {
	Trend []RecommendationEntry `json:"trend"`
}

type RecommendationEntry struct {
	Period       string `json:"period"`
	StrongBuy    int    `json:"strongBuy"`
	Buy          int    `json:"buy"`
	Hold         int    `json:"hold"`
	UnderPerform *int   `json:"underPerform"`
	Sell         int    `json:"sell"`
}

type IncomeStatementModule struct {
	IncomeStatementHistory []IncomeStatement `json:"incomeStatementHistory"`
}

type IncomeStatement struct {
	EndDate      *FormattedDate `json:"endDate"`
	TotalRevenue *RawValue      `json:"totalRevenue"`
	NetIncome    *RawValue      `json:"netIncome"`
}

type CalendarEventsModule struct {
	Earnings *struct {
		EarningsDate []RawValue `json:"earningsDate"`
	} `json:"earnings"`
}

type OwnershipModule struct {
	OwnershipList []Owner `json:"ownershipList"`
}

type Owner struct {
	Organization string    `json:"organization"`
	PctHeld      *RawValue `json:"pctHeld"`
}
