//go:build integration

package repository

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/amirasaad/corebank/infra/migrations"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutils.SetupPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, migrations.Up(sqlDB), "migrating twice is a no-op")
	return db
}

func TestPostgres_SaveLoadAndConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	repo := NewAccountRepository(db)

	acc := newTestAccount(t, account.Checking, "1000")
	require.NoError(t, repo.Save(ctx, acc, 0))

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := repo.Load(ctx, acc.ID())
			if !assert.NoError(t, err) {
				return
			}
			if _, err := loaded.Withdraw(try("100"), "race"); !assert.NoError(t, err) {
				return
			}
			err = repo.Save(ctx, loaded, loaded.Version())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, domain.ErrConcurrencyConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	stored, err := repo.Load(ctx, acc.ID())
	require.NoError(t, err)
	assert.Equal(t, writers, wins+conflicts)
	assert.GreaterOrEqual(t, wins, 1)
	assert.Len(t, stored.Transactions(), wins)
	assert.Equal(t, int64(1+wins), stored.Version())

	expected, err := try("1000").Subtract(try("100"))
	require.NoError(t, err)
	for i := 1; i < wins; i++ {
		expected, err = expected.Subtract(try("100"))
		require.NoError(t, err)
	}
	assert.True(t, expected.Equals(stored.Balance()), "balance %s, want %s", stored.Balance(), expected)
}

func TestPostgres_LongTransferDescriptionRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newPostgresDB(t))

	from := newTestAccount(t, account.Checking, "500")
	to := newTestAccount(t, account.Savings, "100")
	require.NoError(t, repo.Save(ctx, from, 0))
	require.NoError(t, repo.Save(ctx, to, 0))

	description := strings.Repeat("r", 255)
	result, err := account.Transfer(from, to, try("50"), description)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, from, from.Version()))
	require.NoError(t, repo.Save(ctx, to, to.Version()))

	stored, err := repo.Load(ctx, from.ID())
	require.NoError(t, err)
	tx, ok := stored.Transaction(result.Out.ID)
	require.True(t, ok)
	assert.Greater(t, len(tx.Description), 255)
	assert.True(t, strings.HasSuffix(tx.Description, description))
}
