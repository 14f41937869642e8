package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func try(amount string) money.Money {
	return money.Must(amount, money.TRY)
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() }) //nolint:errcheck
	return db
}

func newTestAccount(t *testing.T, typ account.Type, initial string, opts ...account.Option) *account.Account {
	t.Helper()
	num, err := account.GenerateNumber(typ)
	require.NoError(t, err)
	acc, err := account.Create(num, uuid.New(), "Repository test", typ, try(initial), opts...)
	require.NoError(t, err)
	return acc
}

type AccountRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *gorm.DB
	repo repository.AccountRepository
}

func (s *AccountRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newSQLiteDB(s.T())
	s.repo = NewAccountRepository(s.db)
}

func (s *AccountRepositoryTestSuite) TestSaveAndLoad() {
	acc := newTestAccount(s.T(), account.Savings, "250.50",
		account.WithMinimumBalance(try("100")), account.WithDailyLimit(try("1000")))
	_, err := acc.Deposit(try("49.50"), "salary")
	s.Require().NoError(err)
	_, err = acc.Withdraw(try("20"), "groceries")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Save(s.ctx, acc, 0))
	s.Equal(int64(1), acc.Version())

	loaded, err := s.repo.Load(s.ctx, acc.ID())
	s.Require().NoError(err)
	s.Equal(acc.Number(), loaded.Number())
	s.Equal(acc.CustomerID(), loaded.CustomerID())
	s.Equal(acc.Name(), loaded.Name())
	s.Equal(account.Savings, loaded.Type())
	s.Equal(account.StatusActive, loaded.Status())
	s.Equal("280.00 TRY", loaded.Balance().String())
	s.Require().NotNil(loaded.MinimumBalance())
	s.Equal("100.00 TRY", loaded.MinimumBalance().String())
	s.Require().NotNil(loaded.DailyLimit())
	s.Equal("1000.00 TRY", loaded.DailyLimit().String())
	s.Equal(int64(1), loaded.Version())
	s.WithinDuration(acc.OpenedAt(), loaded.OpenedAt(), time.Millisecond)
	s.Empty(loaded.PendingEvents())

	txs := loaded.Transactions()
	s.Require().Len(txs, 2)
	s.Equal(account.TransactionDeposit, txs[0].Type)
	s.Equal("300.00 TRY", txs[0].BalanceAfter.String())
	s.Equal(account.TransactionWithdrawal, txs[1].Type)
	s.Equal("salary", txs[0].Description)

	acts := loaded.Activities()
	s.Require().Len(acts, 2)
	s.Equal(account.ActivityDeposit, acts[0].Type)
	s.Equal(txs[0].ID.String(), acts[0].Metadata["transaction_id"])
}

func (s *AccountRepositoryTestSuite) TestLoadByAccountNumberAndExists() {
	acc := newTestAccount(s.T(), account.Checking, "0")
	s.Require().NoError(s.repo.Save(s.ctx, acc, 0))

	loaded, err := s.repo.LoadByAccountNumber(s.ctx, acc.Number())
	s.Require().NoError(err)
	s.Equal(acc.ID(), loaded.ID())

	exists, err := s.repo.NumberExists(s.ctx, acc.Number())
	s.Require().NoError(err)
	s.True(exists)

	other, err := account.GenerateNumber(account.Checking)
	s.Require().NoError(err)
	exists, err = s.repo.NumberExists(s.ctx, other)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *AccountRepositoryTestSuite) TestLoadMissing() {
	_, err := s.repo.Load(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.repo.LoadByAccountNumber(s.ctx, "10000000000001")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AccountRepositoryTestSuite) TestStaleVersionIsRejected() {
	acc := newTestAccount(s.T(), account.Checking, "100")
	s.Require().NoError(s.repo.Save(s.ctx, acc, 0))

	first, err := s.repo.Load(s.ctx, acc.ID())
	s.Require().NoError(err)
	second, err := s.repo.Load(s.ctx, acc.ID())
	s.Require().NoError(err)

	_, err = first.Deposit(try("10"), "")
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Save(s.ctx, first, first.Version()))

	_, err = second.Withdraw(try("100"), "")
	s.Require().NoError(err)
	err = s.repo.Save(s.ctx, second, second.Version())
	s.ErrorIs(err, domain.ErrConcurrencyConflict)
	s.Equal(int64(1), second.Version(), "version untouched on conflict")

	stored, err := s.repo.Load(s.ctx, acc.ID())
	s.Require().NoError(err)
	s.Equal("110.00 TRY", stored.Balance().String())
	s.Len(stored.Transactions(), 1)
	s.Equal(int64(2), stored.Version())
}

func (s *AccountRepositoryTestSuite) TestInsertTwiceConflicts() {
	acc := newTestAccount(s.T(), account.Checking, "0")
	s.Require().NoError(s.repo.Save(s.ctx, acc, 0))
	s.ErrorIs(s.repo.Save(s.ctx, acc, 0), domain.ErrConcurrencyConflict)
}

func (s *AccountRepositoryTestSuite) TestDuplicateNumber() {
	acc := newTestAccount(s.T(), account.Checking, "0")
	s.Require().NoError(s.repo.Save(s.ctx, acc, 0))

	clash, err := account.Create(acc.Number(), uuid.New(), "Clashing number", account.Checking, try("0"))
	s.Require().NoError(err)
	s.ErrorIs(s.repo.Save(s.ctx, clash, 0), domain.ErrAlreadyExists)
}

func (s *AccountRepositoryTestSuite) TestPendingTransactionCompletesInPlace() {
	acc := newTestAccount(s.T(), account.Checking, "0")
	pending, err := acc.ScheduleDeposit(try("75"), "wire", "ext-42")
	s.Require().NoError(err)
	_, err = acc.Deposit(try("5"), "cash")
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Save(s.ctx, acc, 0))

	loaded, err := s.repo.Load(s.ctx, acc.ID())
	s.Require().NoError(err)
	s.Require().NoError(loaded.UpdateTransactionStatus(pending.ID, account.TransactionProcessing))
	s.Require().NoError(loaded.UpdateTransactionStatus(pending.ID, account.TransactionCompleted))
	s.Require().NoError(s.repo.Save(s.ctx, loaded, loaded.Version()))

	stored, err := s.repo.Load(s.ctx, acc.ID())
	s.Require().NoError(err)
	s.Equal("80.00 TRY", stored.Balance().String())
	txs := stored.Transactions()
	s.Require().Len(txs, 2)
	s.Equal(pending.ID, txs[0].ID)
	s.Equal(account.TransactionCompleted, txs[0].Status)
	s.Equal("ext-42", txs[0].ExternalReference)
	s.Len(stored.Activities(), 4)
}

func (s *AccountRepositoryTestSuite) TestTransferLegsKeepTheirLink() {
	from := newTestAccount(s.T(), account.Checking, "1000")
	to := newTestAccount(s.T(), account.Checking, "0")
	res, err := account.Transfer(from, to, try("400"), "rent")
	s.Require().NoError(err)

	uow := NewUoW(s.db)
	err = uow.Do(s.ctx, func(u repository.UnitOfWork) error {
		repo, err := u.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Save(s.ctx, from, 0); err != nil {
			return err
		}
		return repo.Save(s.ctx, to, 0)
	})
	s.Require().NoError(err)

	loaded, err := s.repo.Load(s.ctx, to.ID())
	s.Require().NoError(err)
	in, ok := loaded.Transaction(res.In.ID)
	s.Require().True(ok)
	s.Require().NotNil(in.RelatedTransactionID)
	s.Equal(res.Out.ID, *in.RelatedTransactionID)
}

func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryTestSuite))
}

func TestUoW_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	uow := NewUoW(db)
	acc := newTestAccount(t, account.Checking, "10")
	boom := errors.New("boom")

	err := uow.Do(ctx, func(u repository.UnitOfWork) error {
		repo, err := u.AccountRepository()
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, acc, 0))
		outbox, err := u.OutboxRepository()
		require.NoError(t, err)
		require.NoError(t, outbox.Append(ctx, acc.PendingEvents()))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewAccountRepository(db).Load(ctx, acc.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	pending, err := NewOutboxRepository(db).Pending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRepository(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := newSQLiteDB(t)
	outbox := NewOutboxRepository(db)

	acc := newTestAccount(t, account.Checking, "0")
	_, err := acc.Deposit(try("10"), "")
	require.NoError(err)
	require.NoError(acc.Freeze("review"))
	evts := acc.PullEvents()
	require.Len(evts, 3)

	require.NoError(outbox.Append(ctx, evts))
	require.NoError(outbox.Append(ctx, nil))

	pending, err := outbox.Pending(ctx, 10)
	require.NoError(err)
	require.Len(pending, 3)
	for i, rec := range pending {
		assert.Equal(t, evts[i].EventID(), rec.Event.EventID())
		assert.Equal(t, evts[i].Type(), rec.Event.Type())
	}
	deposited, ok := pending[1].Event.(events.MoneyDeposited)
	require.True(ok)
	assert.Equal(t, "10.00 TRY", deposited.Amount.String())

	limited, err := outbox.Pending(ctx, 1)
	require.NoError(err)
	assert.Len(t, limited, 1)

	require.NoError(outbox.MarkFailed(ctx, evts[0].EventID(), errors.New("broker down")))
	require.NoError(outbox.MarkFailed(ctx, evts[0].EventID(), errors.New("broker still down")))
	pending, err = outbox.Pending(ctx, 10)
	require.NoError(err)
	assert.Equal(t, 2, pending[0].Attempts)
	assert.Equal(t, "broker still down", pending[0].LastError)

	require.NoError(outbox.MarkDispatched(ctx, []uuid.UUID{evts[0].EventID(), evts[1].EventID()}))
	require.NoError(outbox.MarkDispatched(ctx, nil))
	pending, err = outbox.Pending(ctx, 10)
	require.NoError(err)
	require.Len(pending, 1)
	assert.Equal(t, evts[2].EventID(), pending[0].Event.EventID())
}

func TestAccountRepository_Save_PostgresConflict(t *testing.T) {
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	acc := newTestAccount(t, account.Checking, "0")
	acc.SetVersion(3)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewAccountRepository(db).Save(context.Background(), acc, 3)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, int64(3), acc.Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Save_PostgresValueTooLong(t *testing.T) {
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	acc := newTestAccount(t, account.Checking, "0")
	acc.SetVersion(3)
	_, err = acc.Deposit(try("10"), strings.Repeat("d", 300))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "transactions" (.+)`).
		WillReturnError(&pgconn.PgError{
			Code:    "22001",
			Message: "value too long for type character varying(255)",
		})
	mock.ExpectRollback()

	err = NewAccountRepository(db).Save(context.Background(), acc, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(3), acc.Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}
