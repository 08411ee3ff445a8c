package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	domrepo "DataHub/internal/domain/repository"
	pkgch "DataHub/pkg/clickhouse"
	applogger "DataHub/pkg/logger"
)

var _ domrepo.Store = (*CHStore)(nil)

// CHStore implements Store on ClickHouse ReplacingMergeTree tables.
// Reads use FINAL so the newest version of each row wins.
type CHStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger

	indicators string
	series     string
}

func NewCHStore(ch *pkgch.Client) *CHStore {
	return &CHStore{
		ch:         ch,
		db:         ch.DB(),
		indicators: ch.Database() + ".key_indicators",
		series:     ch.Database() + ".historical_series",
	}
}

// SetLogger injects a structured logger.
func (s *CHStore) SetLogger(l *applogger.Logger) { s.l = l }

// SchemaStatements returns the idempotent DDL for database.
func SchemaStatements(database string) []string {
	return []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, database),
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s.key_indicators (
            indicator_key  String,
            label          String,
            value          Float64,
            unit           String,
            reference_date String,
            updated_at     DateTime64(3, 'UTC'),
            payload        String,
            version        DateTime64(6, 'UTC') DEFAULT now64(6)
        ) ENGINE = ReplacingMergeTree(version)
        ORDER BY indicator_key`, database),
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s.historical_series (
            series_key String,
            date       String,
            value      Float64,
            version    DateTime64(6, 'UTC') DEFAULT now64(6)
        ) ENGINE = ReplacingMergeTree(version)
        ORDER BY (series_key, date)`, database),
	}
}

// InitSchema creates the database and tables.
func (s *CHStore) InitSchema(ctx context.Context) error {
	if err := s.ch.InitSchema(ctx, SchemaStatements(s.ch.Database())); err != nil {
		return errs.CacheIO("init_schema", s.ch.Database(), err)
	}
	return nil
}

func (s *CHStore) GetIndicator(ctx context.Context, key string) (*models.IndicatorRecord, error) {
	q := fmt.Sprintf(`
        SELECT indicator_key, label, value, unit, reference_date, updated_at, payload
        FROM %s FINAL
        WHERE indicator_key = ?
        LIMIT 1
    `, s.indicators)

	var (
		rec     models.IndicatorRecord
		payload string
	)
	err := s.db.QueryRowContext(ctx, q, key).Scan(
		&rec.Key, &rec.Label, &rec.Value, &rec.Unit, &rec.ReferenceDate, &rec.UpdatedAt, &payload,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_indicator query error",
				applogger.String("key", key),
				applogger.Error(err),
			)
		}
		return nil, errs.CacheIO("get_indicator", key, err)
	}
	if payload != "" {
		rec.Payload = []byte(payload)
	}
	if rec.UpdatedAt.Unix() <= 0 {
		rec.UpdatedAt = time.Time{}
	}
	return &rec, nil
}

func (s *CHStore) PutIndicator(ctx context.Context, rec *models.IndicatorRecord) error {
	if rec == nil || rec.Key == "" {
		return errs.Validation("indicator_key", "is required")
	}
	q := fmt.Sprintf(`
        INSERT INTO %s (indicator_key, label, value, unit, reference_date, updated_at, payload, version)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, s.indicators)

	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Unix(0, 0)
	}
	_, err := s.db.ExecContext(ctx, q,
		rec.Key, rec.Label, rec.Value, rec.Unit, rec.ReferenceDate,
		updatedAt.UTC(), string(rec.Payload), time.Now().UTC(),
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse put_indicator exec error",
				applogger.String("key", rec.Key),
				applogger.Error(err),
			)
		}
		return errs.CacheIO("put_indicator", rec.Key, err)
	}
	return nil
}

func (s *CHStore) GetSeries(ctx context.Context, key string, sq models.SeriesQuery) ([]models.SeriesPoint, error) {
	start := time.Now()
	var b strings.Builder
	args := []any{key}
	fmt.Fprintf(&b, `SELECT date, value FROM %s FINAL WHERE series_key = ?`, s.series)
	if sq.Since != "" {
		b.WriteString(` AND date >= ?`)
		args = append(args, sq.Since)
	}
	b.WriteString(` ORDER BY date ASC`)
	if sq.Limit > 0 {
		fmt.Fprintf(&b, ` LIMIT %d`, sq.Limit)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_series query error",
				applogger.String("key", key),
				applogger.String("since", sq.Since),
				applogger.Int("limit", sq.Limit),
				applogger.Error(err),
			)
		}
		return nil, errs.CacheIO("get_series", key, err)
	}
	defer rows.Close()

	out := make([]models.SeriesPoint, 0, 256)
	for rows.Next() {
		p := models.SeriesPoint{SeriesKey: key}
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_series scan error",
					applogger.String("key", key),
					applogger.Error(err),
				)
			}
			return nil, errs.CacheIO("get_series", key, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_series rows error",
				applogger.String("key", key),
				applogger.Error(err),
			)
		}
		return nil, errs.CacheIO("get_series", key, err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse get_series ok",
			applogger.String("key", key),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// PutSeriesPoints sends the batch as one INSERT block.
func (s *CHStore) PutSeriesPoints(ctx context.Context, seriesKey string, points []models.SeriesPoint) error {
	if seriesKey == "" {
		return errs.Validation("series_key", "is required")
	}
	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.seriesWriteError(seriesKey, "begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (series_key, date, value, version)`, s.series))
	if err != nil {
		return s.seriesWriteError(seriesKey, "prepare", err)
	}
	defer stmt.Close()

	version := time.Now().UTC()
	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, seriesKey, p.Date, p.Value, version); err != nil {
			return s.seriesWriteError(seriesKey, "append", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return s.seriesWriteError(seriesKey, "commit", err)
	}
	return nil
}

func (s *CHStore) seriesWriteError(key, stage string, err error) error {
	if s.l != nil {
		s.l.Error("clickhouse put_series "+stage+" error",
			applogger.String("key", key),
			applogger.Error(err),
		)
	}
	return errs.CacheIO("put_series", key, err)
}

func (s *CHStore) LatestSeriesDate(ctx context.Context, key string) (string, bool, error) {
	q := fmt.Sprintf(`SELECT max(date), count() FROM %s FINAL WHERE series_key = ?`, s.series)
	var (
		latest string
		n      uint64
	)
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&latest, &n); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_series_date error",
				applogger.String("key", key),
				applogger.Error(err),
			)
		}
		return "", false, errs.CacheIO("latest_series_date", key, err)
	}
	if n == 0 {
		return "", false, nil
	}
	return latest, true, nil
}

func (s *CHStore) ListIndicators(ctx context.Context) ([]models.IndicatorSummary, error) {
	q := fmt.Sprintf(`
        SELECT indicator_key, value, unit, reference_date
        FROM %s FINAL
        ORDER BY indicator_key
    `, s.indicators)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse list_indicators error", applogger.Error(err))
		}
		return nil, errs.CacheIO("list_indicators", "", err)
	}
	defer rows.Close()

	out := make([]models.IndicatorSummary, 0, 64)
	for rows.Next() {
		var it models.IndicatorSummary
		if err := rows.Scan(&it.Key, &it.Value, &it.Unit, &it.ReferenceDate); err != nil {
			return nil, errs.CacheIO("list_indicators", "", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.CacheIO("list_indicators", "", err)
	}
	return out, nil
}

func (s *CHStore) ListSeriesStats(ctx context.Context) ([]models.SeriesStats, error) {
	q := fmt.Sprintf(`
        SELECT series_key, count(), min(date), max(date)
        FROM %s FINAL
        GROUP BY series_key
        ORDER BY series_key
    `, s.series)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse list_series error", applogger.Error(err))
		}
		return nil, errs.CacheIO("list_series", "", err)
	}
	defer rows.Close()

	out := make([]models.SeriesStats, 0, 64)
	for rows.Next() {
		var (
			st models.SeriesStats
			n  uint64
		)
		if err := rows.Scan(&st.SeriesKey, &n, &st.MinDate, &st.MaxDate); err != nil {
			return nil, errs.CacheIO("list_series", "", err)
		}
		st.Rows = int(n)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.CacheIO("list_series", "", err)
	}
	return out, nil
}

func (s *CHStore) Ping(ctx context.Context) error {
	if err := s.ch.Health(ctx); err != nil {
		return errs.CacheIO("ping", "", err)
	}
	return nil
}

func (s *CHStore) Close() error {
	return s.ch.Close()
}
