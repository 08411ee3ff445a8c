package models

// StockPage bundles everything the stock detail view needs.
type StockPage struct {
	Financials *Financials   `json:"financials"`
	Quote      *Quote        `json:"quote"`
	Chart      []SeriesPoint `json:"chart"`
	Research   *Research     `json:"research"`
}

type MoverData struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
}

type PortugueseStock struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	ChangePercent *float64 `json:"changePercent"`
	LogoURL       string   `json:"logoUrl"`
}

// IndexPage is the market overview: US gainers, PT trending and the tracked PT stocks.
type IndexPage struct {
	TopGainers       []MoverData       `json:"topGainers"`
	TrendingPortugal []MoverData       `json:"trendingPortugal"`
	PortugueseStocks []PortugueseStock `json:"portugueseStocks"`
}

// HomepageStock is a mover or PT stock enriched with a logo and a 30 day sparkline.
type HomepageStock struct {
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name"`
	Price         *float64  `json:"price"`
	Change        *float64  `json:"change,omitempty"`
	ChangePercent *float64  `json:"changePercent"`
	LogoURL       string    `json:"logoUrl"`
	Sparkline     []float64 `json:"sparkline"`
}

type Homepage struct {
	PortugueseStocks []HomepageStock `json:"portugueseStocks"`
	TopGainers       []HomepageStock `json:"topGainers"`
}
