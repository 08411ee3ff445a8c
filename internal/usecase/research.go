package usecase

import (
	"context"
	"slices"
	"time"

	"DataHub/internal/domain/models"
	"DataHub/pkg/util"
)

var researchModules = []string{
	"earningsHistory",
	"recommendationTrend",
	"financialData",
	"incomeStatementHistoryQuarterly",
	"calendarEvents",
	"institutionOwnership",
}

const (
	epsQuarters         = 4
	recommendationCount = 4
	revenueQuarters     = 6
	topInstitutions     = 5
)

// ResearchSource serves analyst and earnings data, cached for the research window.
type ResearchSource struct {
	*adapter
	window time.Duration
}

func NewResearchSource(cfg AdapterConfig) *ResearchSource {
	return &ResearchSource{adapter: newAdapter("research", cfg), window: cfg.Windows.Research}
}

func (s *ResearchSource) Get(ctx context.Context, ticker string) (*models.Research, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	key := ResearchKey(t)
	return loadRecord(ctx, s.adapter, key, s.window, func(ctx context.Context) (*models.Research, *models.IndicatorRecord, error) {
		start := time.Now()
		sum, err := s.provider.QuoteSummary(ctx, t, researchModules)
		s.observe("upstream_research", start)
		if err != nil {
			return nil, nil, s.upstream("quote_summary", t, err)
		}

		now := s.now()
		r := buildResearch(sum)
		rec, err := newRecord(key, "research", valueOr(r.PriceTarget.Mean, 0), now, now, r)
		if err != nil {
			return nil, nil, err
		}
		return r, rec, nil
	})
}

func buildResearch(sum *models.QuoteSummary) *models.Research {
	r := &models.Research{
		EpsHistory:             []models.EpsQuarter{},
		Recommendations:        []models.RecommendationTrend{},
		RevenueEarningsHistory: []models.RevenueEarningsPoint{},
		TopInstitutions:        []models.InstitutionalOwner{},
		PriceTarget:            models.PriceTarget{Currency: defaultCurrency},
	}
	if sum == nil {
		return r
	}

	if eh := sum.EarningsHistory; eh != nil {
		history := eh.History
		if len(history) > epsQuarters {
			history = history[len(history)-epsQuarters:]
		}
		for _, h := range history {
			r.EpsHistory = append(r.EpsHistory, models.EpsQuarter{
				Quarter:     h.Quarter.Label(),
				Actual:      h.EpsActual.Ptr(),
				Estimate:    h.EpsEstimate.Ptr(),
				Surprise:    h.EpsDifference.Ptr(),
				SurprisePct: h.SurprisePercent.Ptr(),
				EndDate:     h.EndDate.FmtPtr(),
			})
		}
	}

	if rt := sum.RecommendationTrend; rt != nil {
		for i, tr := range rt.Trend {
			if i == recommendationCount {
				break
			}
			under := 0
			if tr.UnderPerform != nil {
				under = *tr.UnderPerform
			}
			r.Recommendations = append(r.Recommendations, models.RecommendationTrend{
				Period:       tr.Period,
				StrongBuy:    tr.StrongBuy,
				Buy:          tr.Buy,
				Hold:         tr.Hold,
				Underperform: under,
				Sell:         tr.Sell,
			})
		}
	}

	if fd := sum.FinancialData; fd != nil {
		r.PriceTarget = models.PriceTarget{
			Low:          fd.TargetLowPrice.Ptr(),
			High:         fd.TargetHighPrice.Ptr(),
			Mean:         fd.TargetMeanPrice.Ptr(),
			Median:       fd.TargetMedianPrice.Ptr(),
			CurrentPrice: fd.CurrentPrice.Ptr(),
			Currency:     fd.FinancialCurrency,
		}
		if r.PriceTarget.Currency == "" {
			r.PriceTarget.Currency = defaultCurrency
		}
	}

	if is := sum.IncomeStatementHistoryQuarterly; is != nil {
		r.RevenueEarningsHistory = revenueEarnings(is.IncomeStatementHistory)
	}

	if ce := sum.CalendarEvents; ce != nil && ce.Earnings != nil && len(ce.Earnings.EarningsDate) > 0 {
		if ts := ce.Earnings.EarningsDate[0].Ptr(); ts != nil && *ts != 0 {
			d := time.Unix(int64(*ts), 0).UTC()
			r.CalendarEvents.EarningsDate = &d
		}
	}

	if own := sum.InstitutionOwnership; own != nil {
		for i, o := range own.OwnershipList {
			if i == topInstitutions {
				break
			}
			r.TopInstitutions = append(r.TopInstitutions, models.InstitutionalOwner{
				Organization: o.Organization,
				PctHeld:      o.PctHeld.Ptr(),
			})
		}
	}
	return r
}

// revenueEarnings drops quarters missing a date, revenue or earnings and keeps the latest six, oldest first.
func revenueEarnings(stmts []models.IncomeStatement) []models.RevenueEarningsPoint {
	type dated struct {
		at time.Time
		p  models.RevenueEarningsPoint
	}
	rows := make([]dated, 0, len(stmts))
	for _, st := range stmts {
		at, ok := st.EndDate.Time()
		rev, earn := st.TotalRevenue.Ptr(), st.NetIncome.Ptr()
		if !ok || rev == nil || earn == nil {
			continue
		}
		rows = append(rows, dated{at: at, p: models.RevenueEarningsPoint{
			Quarter:  util.QuarterLabel(at),
			Revenue:  *rev,
			Earnings: *earn,
		}})
	}
	slices.SortStableFunc(rows, func(a, b dated) int { return a.at.Compare(b.at) })
	if len(rows) > revenueQuarters {
		rows = rows[len(rows)-revenueQuarters:]
	}

	out := make([]models.RevenueEarningsPoint, 0, len(rows))
	for _, d := range rows {
		out = append(out, d.p)
	}
	return out
}
