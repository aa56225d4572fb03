package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_snapshots.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

var errQuotaExceeded = errors.New("quota exceeded")

// flakyStore wraps a store and fails reads or writes on demand.
type flakyStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	failGet  bool
	failSet  bool
	setCalls int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{data: make(map[string][]byte)}
}

func (s *flakyStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failGet {
		return nil, errors.New("storage unavailable")
	}
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key[%s]: %w", key, port.ErrKeyNotFound)
	}
	return v, nil
}

func (s *flakyStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCalls++
	if s.failSet {
		return errQuotaExceeded
	}
	s.data[key] = value
	return nil
}

func (s *flakyStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *flakyStore) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = []byte(value)
}

var bdt = currency.MustParseISO("BDT")

func randomCartLine() domain.CartLine {
	return domain.CartLine{
		ID:            gofakeit.Int64(),
		Name:          gofakeit.ProductName(),
		Price:         randomMoney(),
		OriginalPrice: randomMoney(),
		Image:         gofakeit.URL(),
		Quantity:      gofakeit.IntRange(1, 10),
	}
}

func randomWishlistEntry() domain.WishlistEntry {
	return domain.WishlistEntry{
		ID:            gofakeit.Int64(),
		Name:          gofakeit.ProductName(),
		Price:         randomMoney(),
		OriginalPrice: randomMoney(),
		Image:         gofakeit.URL(),
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func assertEqualCollections[T any](t *testing.T, expected, actual []T) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	diff := cmp.Diff(expected, actual, currencyComparer)
	assert.Empty(t, diff)
}
