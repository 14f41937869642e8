package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a gorm backed repository.AccountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Load implements repository.AccountRepository.
func (r *accountRepository) Load(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.load(ctx, "id = ?", id)
}

// LoadByAccountNumber implements repository.AccountRepository.
func (r *accountRepository) LoadByAccountNumber(
	ctx context.Context,
	number account.Number,
) (*account.Account, error) {
	return r.load(ctx, "number = ?", number.String())
}

// NumberExists implements repository.AccountRepository.
func (r *accountRepository) NumberExists(ctx context.Context, number account.Number) (bool, error) {
	var count int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Account{}).Where("number = ?", number.String()).Count(&count).Error
	})
	return count > 0, err
}

func (r *accountRepository) load(ctx context.Context, query string, arg any) (*account.Account, error) {
	db := r.db.WithContext(ctx)

	var row Account
	if err := WrapError(func() error { return db.Where(query, arg).First(&row).Error }); err != nil {
		return nil, err
	}
	var txs []Transaction
	if err := db.Where("account_id = ?", row.ID).Order("position").Find(&txs).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	var acts []Activity
	if err := db.Where("account_id = ?", row.ID).Order("position").Find(&acts).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}

	snapshot, err := toSnapshot(row, txs, acts)
	if err != nil {
		return nil, err
	}
	return account.Restore(snapshot)
}

// Save implements repository.AccountRepository. The account row is written
// first under a version check so a losing writer touches nothing else.
func (r *accountRepository) Save(ctx context.Context, acc *account.Account, expectedVersion int64) error {
	if acc == nil {
		return domain.InvalidInputf("account is required")
	}
	snapshot := acc.Snapshot()
	next := expectedVersion + 1
	row := toAccountModel(snapshot, next)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expectedVersion == 0 {
			if err := insertAccount(tx, row); err != nil {
				return err
			}
		} else if err := updateAccount(tx, row, expectedVersion); err != nil {
			return err
		}
		return saveChildren(tx, snapshot)
	})
	if err != nil {
		return err
	}
	acc.SetVersion(next)
	return nil
}

func insertAccount(tx *gorm.DB, row Account) error {
	var count int64
	if err := tx.Model(&Account{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account %s already stored", domain.ErrConcurrencyConflict, row.ID)
	}
	return WrapError(func() error { return tx.Create(&row).Error })
}

func updateAccount(tx *gorm.DB, row Account, expectedVersion int64) error {
	res := tx.Model(&Account{}).
		Where("id = ? AND version = ?", row.ID, expectedVersion).
		Updates(map[string]any{
			"name":                row.Name,
			"status":              row.Status,
			"balance":             row.Balance,
			"minimum_balance":     row.MinimumBalance,
			"daily_limit":         row.DailyLimit,
			"last_transaction_at": row.LastTransactionAt,
			"version":             row.Version,
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf(
			"%w: account %s is no longer at version %d",
			domain.ErrConcurrencyConflict, row.ID, expectedVersion,
		)
	}
	return nil
}

// saveChildren upserts the ledger (status and balance of a pending entry can
// change) and appends activities, which never change once written.
func saveChildren(tx *gorm.DB, s account.Snapshot) error {
	if len(s.Transactions) > 0 {
		rows := make([]Transaction, len(s.Transactions))
		for i, t := range s.Transactions {
			rows[i] = toTransactionModel(t, i)
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "balance_after", "updated_at", "position"}),
		}).CreateInBatches(&rows, 100).Error
		if err != nil {
			return MapGormErrorToDomain(err)
		}
	}
	if len(s.Activities) > 0 {
		rows := make([]Activity, len(s.Activities))
		for i, a := range s.Activities {
			rows[i] = toActivityModel(a, i)
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 100).Error
		if err != nil {
			return MapGormErrorToDomain(err)
		}
	}
	return nil
}
