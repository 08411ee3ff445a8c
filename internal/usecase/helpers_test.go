package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"DataHub/internal/domain/models"
	"DataHub/internal/domain/repository/mocks"
	"DataHub/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func rv(v float64) *models.RawValue { return &models.RawValue{Value: v, Valid: true} }

func newTestStore(t *testing.T) *repository.SQLStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	s, err := repository.OpenSQLStore(context.Background(), repository.DialectSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	_, err = s.Migrate()
	require.NoError(t, err)
	return s
}

// clock is a settable time source.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newAdapterConfig(t *testing.T) (AdapterConfig, *mocks.MockMarketProvider, *clock) {
	t.Helper()
	p := mocks.NewMockMarketProvider(gomock.NewController(t))
	c := &clock{now: testNow}
	return AdapterConfig{
		Store:    newTestStore(t),
		Provider: p,
		Clock:    c.Now,
		Windows:  DefaultWindows(),
	}, p, c
}

func newProvider(t *testing.T) *mocks.MockMarketProvider {
	t.Helper()
	return mocks.NewMockMarketProvider(gomock.NewController(t))
}
