package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
	xhttp "DataHub/pkg/http"
	applogger "DataHub/pkg/logger"
)

var _ drepo.MarketProvider = (*Client)(nil)

// ErrNoData is returned when the provider answers without a result for the requested symbol.
var ErrNoData = errors.New("yahoo: empty result")

const (
	quotePath       = "/v7/finance/quote"
	chartPath       = "/v8/finance/chart/"
	quoteSummary    = "/v10/finance/quoteSummary/"
	screenerPath    = "/v1/finance/screener/predefined/saved"
	defaultInterval = "1d"
)

// Client talks to the Yahoo Finance JSON endpoints.
type Client struct {
	http *xhttp.Client
	l    *applogger.Logger
	now  func() time.Time
}

type Option func(*Client)

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.l = l }
}

// WithClock overrides the time source used as the chart end.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(hc *xhttp.Client, opts ...Option) *Client {
	c := &Client{http: hc, l: applogger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type providerError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *providerError) err(op string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("yahoo %s: %s: %s", op, e.Code, e.Description)
}

type quoteEnvelope struct {
	QuoteResponse struct {
		Result []models.ProviderQuote `json:"result"`
		Error  *providerError         `json:"error"`
	} `json:"quoteResponse"`
}

// Quote returns the quote of a single ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.ProviderQuote, error) {
	quotes, err := c.Quotes(ctx, []string{ticker})
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if strings.EqualFold(quotes[i].Symbol, ticker) {
			return &quotes[i], nil
		}
	}
	return nil, fmt.Errorf("quote %s: %w", ticker, ErrNoData)
}

// Quotes returns quotes for tickers in one request. Unknown symbols are simply absent.
func (c *Client) Quotes(ctx context.Context, tickers []string) ([]models.ProviderQuote, error) {
	if len(tickers) == 0 {
		return nil, nil
	}
	var env quoteEnvelope
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL:         quotePath,
		QueryParams: map[string][]string{"symbols": {strings.Join(tickers, ",")}},
	}, &env)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote: %w", err)
	}
	if err := env.QuoteResponse.Error.err("quote"); err != nil {
		return nil, err
	}
	return env.QuoteResponse.Result, nil
}

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *providerError `json:"error"`
	} `json:"chart"`
}

// Chart returns daily bars from `from` until now, oldest first.
func (c *Client) Chart(ctx context.Context, ticker string, from time.Time) ([]models.PriceBar, error) {
	var env chartEnvelope
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL: chartPath + url.PathEscape(ticker),
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(from.Unix(), 10)},
			"period2":  {strconv.FormatInt(c.now().Unix(), 10)},
			"interval": {defaultInterval},
			"events":   {"div,splits"},
		},
	}, &env)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if err := env.Chart.Error.err("chart"); err != nil {
		return nil, err
	}
	if len(env.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: %w", ticker, ErrNoData)
	}

	r := env.Chart.Result[0]
	var closes, adj []*float64
	if len(r.Indicators.Quote) > 0 {
		closes = r.Indicators.Quote[0].Close
	}
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]models.PriceBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		bar := models.PriceBar{Date: time.Unix(ts, 0).UTC()}
		if i < len(closes) {
			bar.Close = closes[i]
		}
		if i < len(adj) {
			bar.AdjClose = adj[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

type summaryEnvelope struct {
	QuoteSummary struct {
		Result []models.QuoteSummary `json:"result"`
		Error  *providerError        `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummary fetches the given summary modules for ticker.
func (c *Client) QuoteSummary(ctx context.Context, ticker string, modules []string) (*models.QuoteSummary, error) {
	var env summaryEnvelope
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL:         quoteSummary + url.PathEscape(ticker),
		QueryParams: map[string][]string{"modules": {strings.Join(modules, ",")}},
	}, &env)
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", ticker, err)
	}
	if err := env.QuoteSummary.Error.err("quoteSummary"); err != nil {
		return nil, err
	}
	if len(env.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary %s: %w", ticker, ErrNoData)
	}
	return &env.QuoteSummary.Result[0], nil
}

type screenerEnvelope struct {
	Finance struct {
		Result []struct {
			Quotes []models.ProviderQuote `json:"quotes"`
		} `json:"result"`
		Error *providerError `json:"error"`
	} `json:"finance"`
}

// Screener runs a predefined screener such as "day_gainers" or "most_actives".
func (c *Client) Screener(ctx context.Context, id string, count int, region string) ([]models.ProviderQuote, error) {
	q := map[string][]string{
		"scrIds": {id},
		"count":  {strconv.Itoa(count)},
	}
	if region != "" {
		q["region"] = []string{region}
	}
	var env screenerEnvelope
	if err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{URL: screenerPath, QueryParams: q}, &env); err != nil {
		return nil, fmt.Errorf("yahoo screener %s: %w", id, err)
	}
	if err := env.Finance.Error.err("screener"); err != nil {
		return nil, err
	}
	if len(env.Finance.Result) == 0 {
		c.l.Debug("screener returned no result", applogger.String("screener", id))
		return nil, nil
	}
	return env.Finance.Result[0].Quotes, nil
}
