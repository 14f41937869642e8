package account

import (
	"time"

	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
)

// Transaction is one entry of an account's ledger. Once recorded only its
// Status (and the timestamps that go with it) may change.
type Transaction struct {
	ID                   uuid.UUID
	AccountID            uuid.UUID
	Type                 TransactionType
	Status               TransactionStatus
	Amount               money.Money // always positive
	BalanceAfter         money.Money // balance snapshot once the entry took effect
	Description          string
	ExternalReference    string
	RelatedTransactionID *uuid.UUID // the other leg of a transfer
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsDebit reports whether the entry reduces the balance.
func (t Transaction) IsDebit() bool {
	return t.Type.IsDebit()
}

func (t Transaction) clone() Transaction {
	if t.RelatedTransactionID != nil {
		id := *t.RelatedTransactionID
		t.RelatedTransactionID = &id
	}
	return t
}

func (a *Account) newTransaction(
	typ TransactionType,
	status TransactionStatus,
	amount money.Money,
	description string,
) Transaction {
	now := a.now()
	return Transaction{
		ID:           uuid.New(),
		AccountID:    a.id,
		Type:         typ,
		Status:       status,
		Amount:       amount,
		BalanceAfter: a.balance,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
