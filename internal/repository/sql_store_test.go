package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := OpenSQLStore(context.Background(), DialectSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	res, err := s.Migrate()
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, uint(2), res.To)
	return s
}

func TestSQLStore_IndicatorUpsert(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	got, err := s.GetIndicator(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.PutIndicator(ctx, &models.IndicatorRecord{
		Key: "quote_EDP.LS", Label: "quote", Value: 4.1, UpdatedAt: first,
		Payload: json.RawMessage(`{"latestValue":4.1}`),
	}))
	second := first.Add(time.Minute)
	require.NoError(t, s.PutIndicator(ctx, &models.IndicatorRecord{
		Key: "quote_EDP.LS", Label: "quote", Value: 4.2, Unit: "EUR", UpdatedAt: second,
		Payload: json.RawMessage(`{"latestValue":4.2}`),
	}))

	got, err = s.GetIndicator(ctx, "quote_EDP.LS")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4.2, got.Value)
	assert.Equal(t, "EUR", got.Unit)
	assert.True(t, got.UpdatedAt.Equal(second))
	assert.JSONEq(t, `{"latestValue":4.2}`, string(got.Payload))

	list, err := s.ListIndicators(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "quote_EDP.LS", list[0].Key)
}

func TestSQLStore_IndicatorWithoutPayload(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutIndicator(ctx, &models.IndicatorRecord{
		Key: "unemployment_rate", Value: 6.4, Unit: "%", ReferenceDate: "2026-06-30",
	}))
	got, err := s.GetIndicator(ctx, "unemployment_rate")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Payload)
	assert.True(t, got.UpdatedAt.IsZero())
	assert.Equal(t, "2026-06-30", got.ReferenceDate)
}

func TestSQLStore_PutIndicatorRequiresKey(t *testing.T) {
	s := newTestSQLStore(t)
	err := s.PutIndicator(context.Background(), &models.IndicatorRecord{Value: 1})
	assert.True(t, errs.IsValidation(err))
}

func TestSQLStore_SeriesQueries(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	points := []models.SeriesPoint{
		{Date: "2024-03-01", Value: 3},
		{Date: "2024-01-01", Value: 1},
		{Date: "2024-02-01", Value: 2},
		{Date: "2024-04-01", Value: 4},
	}
	require.NoError(t, s.PutSeriesPoints(ctx, "hicp", points))

	all, err := s.GetSeries(ctx, "hicp", models.SeriesQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-01-01", all[0].Date)
	assert.Equal(t, "2024-04-01", all[3].Date)

	since, err := s.GetSeries(ctx, "hicp", models.SeriesQuery{Since: "2024-02-01"})
	require.NoError(t, err)
	require.Len(t, since, 3)
	assert.Equal(t, "2024-02-01", since[0].Date)

	// limit keeps the earliest rows
	limited, err := s.GetSeries(ctx, "hicp", models.SeriesQuery{Since: "2024-02-01", Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "2024-02-01", limited[0].Date)
	assert.Equal(t, "2024-03-01", limited[1].Date)

	empty, err := s.GetSeries(ctx, "unknown", models.SeriesQuery{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLStore_SeriesUpsertAndLatest(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	_, ok, err := s.LatestSeriesDate(ctx, "gdp")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutSeriesPoints(ctx, "gdp", []models.SeriesPoint{
		{Date: "2025-01-01", Value: 1},
		{Date: "2025-04-01", Value: 2},
	}))
	require.NoError(t, s.PutSeriesPoints(ctx, "gdp", []models.SeriesPoint{
		{Date: "2025-04-01", Value: 2.5},
	}))
	require.NoError(t, s.PutSeriesPoints(ctx, "gdp", nil))

	rows, err := s.GetSeries(ctx, "gdp", models.SeriesQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2.5, rows[1].Value)

	latest, ok, err := s.LatestSeriesDate(ctx, "gdp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2025-04-01", latest)

	stats, err := s.ListSeriesStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, models.SeriesStats{SeriesKey: "gdp", Rows: 2, MinDate: "2025-01-01", MaxDate: "2025-04-01"}, stats[0])
}

func TestSQLStore_SeriesBatchIsAllOrNothing(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	before := []models.SeriesPoint{
		{SeriesKey: "hist_EDP.LS", Date: "2025-01-02", Value: 1},
		{SeriesKey: "hist_EDP.LS", Date: "2025-01-03", Value: 2},
	}
	require.NoError(t, s.PutSeriesPoints(ctx, "hist_EDP.LS", before))

	_, err := s.DB().ExecContext(ctx, `CREATE TRIGGER reject_point BEFORE INSERT ON historical_series
		WHEN NEW.date = '2025-01-06'
		BEGIN SELECT RAISE(ABORT, 'point rejected'); END`)
	require.NoError(t, err)

	err = s.PutSeriesPoints(ctx, "hist_EDP.LS", []models.SeriesPoint{
		{Date: "2025-01-02", Value: 10},
		{Date: "2025-01-03", Value: 20},
		{Date: "2025-01-06", Value: 30},
	})
	require.Error(t, err)
	assert.True(t, errs.IsCacheIO(err))

	rows, err := s.GetSeries(ctx, "hist_EDP.LS", models.SeriesQuery{})
	require.NoError(t, err)
	assert.Equal(t, before, rows)
}

func TestSQLStore_ClosedStoreReturnsCacheIOError(t *testing.T) {
	s := newTestSQLStore(t)
	require.NoError(t, s.Close())

	_, err := s.GetIndicator(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errs.IsCacheIO(err))

	_, err = s.GetSeries(context.Background(), "x", models.SeriesQuery{})
	assert.True(t, errs.IsCacheIO(err))
}

func TestSQLStore_Rebind(t *testing.T) {
	pg := &SQLStore{dialect: DialectPostgres}
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))

	lite := &SQLStore{dialect: DialectSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestMigrateRollback(t *testing.T) {
	s := newTestSQLStore(t)

	res, err := Migrate(s.DB(), DialectSQLite, -1)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = Migrate(s.DB(), DialectSQLite, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.To)

	_, err = s.GetSeries(context.Background(), "x", models.SeriesQuery{})
	assert.True(t, errs.IsCacheIO(err))
}
