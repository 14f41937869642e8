package account

import (
	"maps"
	"time"

	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
)

// ActivityType names an audit log entry.
type ActivityType string

// Activity types
const (
	ActivityDeposit          ActivityType = "Deposit"
	ActivityWithdrawal       ActivityType = "Withdrawal"
	ActivityTransferIn       ActivityType = "TransferIn"
	ActivityTransferOut      ActivityType = "TransferOut"
	ActivityFeeCharged       ActivityType = "FeeCharged"
	ActivityInterestCredited ActivityType = "InterestCredited"
	ActivityDepositScheduled ActivityType = "DepositScheduled"
	ActivityStatusChanged    ActivityType = "TransactionStatusChanged"
	ActivityNameUpdated      ActivityType = "NameUpdated"
	ActivityFrozen           ActivityType = "Frozen"
	ActivityUnfrozen         ActivityType = "Unfrozen"
	ActivityClosed           ActivityType = "Closed"
)

var postingActivities = map[TransactionType]ActivityType{
	TransactionDeposit:     ActivityDeposit,
	TransactionWithdrawal:  ActivityWithdrawal,
	TransactionTransferIn:  ActivityTransferIn,
	TransactionTransferOut: ActivityTransferOut,
	TransactionFee:         ActivityFeeCharged,
	TransactionInterest:    ActivityInterestCredited,
}

// Activity is an immutable audit record of something that happened to an account.
type Activity struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Type          ActivityType
	Description   string
	Amount        *money.Money
	BalanceBefore money.Money
	BalanceAfter  money.Money
	Metadata      map[string]string
	CreatedAt     time.Time
}

func (a Activity) clone() Activity {
	if a.Amount != nil {
		amt := *a.Amount
		a.Amount = &amt
	}
	a.Metadata = maps.Clone(a.Metadata)
	return a
}

func (a *Account) recordActivity(
	typ ActivityType,
	description string,
	amount *money.Money,
	before money.Money,
	metadata map[string]string,
) {
	a.activities = append(a.activities, Activity{
		ID:            uuid.New(),
		AccountID:     a.id,
		Type:          typ,
		Description:   description,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  a.balance,
		Metadata:      metadata,
		CreatedAt:     a.now(),
	})
}
