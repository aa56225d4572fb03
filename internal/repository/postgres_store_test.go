package repository_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type postgresStoreSuite struct {
	suite.Suite

	kv      port.KeyValueStore
	pool    *pgxpool.Pool
	connStr string
}

// entry point to run the tests in the suite
func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container in -short mode")
	}
	suite.Run(t, new(postgresStoreSuite))
}

// before all tests in the suite
func (suite *postgresStoreSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.connStr = connStr

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.kv = repository.NewPostgresStore(suite.pool)
}

// after all tests in the suite
func (suite *postgresStoreSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *postgresStoreSuite) TestContract() {
	defer suite.deleteAll()

	exerciseKeyValueStore(suite.T(), suite.kv)
}

func (suite *postgresStoreSuite) TestMigrationsAreRepeatable() {
	ctx := suite.T().Context()

	suite.Require().NoError(migrations.Up(suite.connStr))
	suite.Require().NoError(migrations.Up(suite.connStr))

	var version int
	err := suite.pool.QueryRow(ctx, "SELECT version FROM schema_migrations").Scan(&version)
	suite.Require().NoError(err)
	suite.Equal(1, version)
}

func (suite *postgresStoreSuite) TestEmptyKey() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.kv.Get(ctx, "")
	require.EqualError(t, err, "key is empty")

	err = suite.kv.Set(ctx, "", []byte("[]"))
	require.EqualError(t, err, "key is empty")
}

func (suite *postgresStoreSuite) TestSnapshotsRoundTrip() {
	defer suite.deleteAll()

	tests := []struct {
		name  string
		lines []domain.CartLine
	}{
		{
			name:  "several lines: ok",
			lines: []domain.CartLine{randomCartLine(), randomCartLine()},
		},
		{
			name:  "empty cart: ok",
			lines: []domain.CartLine{},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			snaps := repository.NewCartSnapshots(suite.kv, repository.SnapshotOptions{Currency: bdt})
			snaps.Save(ctx, tt.lines)

			assertEqualCollections(t, tt.lines, snaps.Load(ctx))
		})
	}
}

func (suite *postgresStoreSuite) TestWithTxRollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txStore := repository.NewPostgresStoreWithTx(tx)
	require.NoError(t, txStore.Set(ctx, "megamart_cart", []byte("[]")))
	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.kv.Get(ctx, "megamart_cart")
	assert.ErrorIs(t, err, port.ErrKeyNotFound)
}

func (suite *postgresStoreSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE snapshots")
	suite.NoError(err)
}
