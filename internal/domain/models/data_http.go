package models

// DataRequest carries the /api/data query. Since and Limit stay raw strings and are parsed leniently.
type DataRequest struct {
	DataKey string `param:"dataKey"`
	Keys    string `query:"keys"`
	Since   string `query:"since"`
	Limit   string `query:"limit"`
}

type TickerRequest struct {
	Ticker string `param:"ticker" validate:"required,max=32"`
}

// DataResponse is the single-key success body.
type DataResponse struct {
	OK   bool           `json:"ok"`
	Kind ResolutionKind `json:"kind"`
	Key  string         `json:"key"`
	Data any            `json:"data"`
}

// BatchDataResponse is the multi-key body. NotFound is present only when some key failed.
type BatchDataResponse struct {
	OK       bool           `json:"ok"`
	Data     map[string]any `json:"data"`
	NotFound []string       `json:"notFound,omitempty"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}
