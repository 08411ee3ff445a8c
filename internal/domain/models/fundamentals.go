package models

// Financials is the flattened fundamentals snapshot of a company. Every metric is optional.
type Financials struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Website  string `json:"website,omitempty"`

	MarketCap           *float64 `json:"marketCap"`
	Beta                *float64 `json:"beta"`
	TrailingPE          *float64 `json:"trailingPE"`
	TrailingEps         *float64 `json:"trailingEps"`
	DividendYield       *float64 `json:"dividendYield"`
	FiftyTwoWeekLow     *float64 `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh    *float64 `json:"fiftyTwoWeekHigh"`
	AverageVolume       *float64 `json:"averageVolume"`
	CurrentPrice        *float64 `json:"currentPrice"`
	PriceToSales        *float64 `json:"priceToSales"`
	PriceToBook         *float64 `json:"priceToBook"`
	EnterpriseValue     *float64 `json:"enterpriseValue"`
	EnterpriseToRevenue *float64 `json:"enterpriseToRevenue"`
	EnterpriseToEbitda  *float64 `json:"enterpriseToEbitda"`
	TotalRevenue        *float64 `json:"totalRevenue"`
	RevenuePerShare     *float64 `json:"revenuePerShare"`
	RevenueGrowth       *float64 `json:"revenueGrowth"`
	GrossProfit         *float64 `json:"grossProfit"`
	Ebitda              *float64 `json:"ebitda"`
	NetIncomeToCommon   *float64 `json:"netIncomeToCommon"`
	ProfitMargins       *float64 `json:"profitMargins"`
	OperatingMargins    *float64 `json:"operatingMargins"`
	ReturnOnAssets      *float64 `json:"returnOnAssets"`
	ReturnOnEquity      *float64 `json:"returnOnEquity"`
	TotalDebt           *float64 `json:"totalDebt"`
	DebtToEquity        *float64 `json:"debtToEquity"`
	CurrentRatio        *float64 `json:"currentRatio"`
}
