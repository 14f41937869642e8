package account

import (
	"fmt"
	"strings"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/domain/rules"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
)

// Deposit credits amount to the account.
func (a *Account) Deposit(amount money.Money, description string) (Transaction, error) {
	if err := a.checkCredit(amount); err != nil {
		return Transaction{}, err
	}
	return a.postWithEvent(a.newTransaction(TransactionDeposit, TransactionCompleted, amount, description))
}

// Withdraw debits amount from the account. The available balance must cover
// it and the daily limit, when set, must not be exceeded.
func (a *Account) Withdraw(amount money.Money, description string) (Transaction, error) {
	if err := a.checkDebit(amount); err != nil {
		return Transaction{}, err
	}
	return a.postWithEvent(a.newTransaction(TransactionWithdrawal, TransactionCompleted, amount, description))
}

// ChargeFee debits a fee. Fees obey the same limits as withdrawals.
func (a *Account) ChargeFee(amount money.Money, description string) (Transaction, error) {
	if err := a.checkDebit(amount); err != nil {
		return Transaction{}, err
	}
	return a.postWithEvent(a.newTransaction(TransactionFee, TransactionCompleted, amount, description))
}

// CreditInterest credits interest to a Savings or Investment account.
func (a *Account) CreditInterest(amount money.Money, description string) (Transaction, error) {
	if err := a.checkCredit(amount); err != nil {
		return Transaction{}, err
	}
	if !a.accountType.EarnsInterest() {
		return Transaction{}, domain.InvalidInputf("%s accounts do not earn interest", a.accountType)
	}
	return a.postWithEvent(a.newTransaction(TransactionInterest, TransactionCompleted, amount, description))
}

// ScheduleDeposit records a pending deposit that takes effect once it is
// moved to Completed with UpdateTransactionStatus. The balance is unchanged.
func (a *Account) ScheduleDeposit(amount money.Money, description, externalRef string) (Transaction, error) {
	if err := a.checkCredit(amount); err != nil {
		return Transaction{}, err
	}
	if err := rules.ExternalReference(externalRef).Err(); err != nil {
		return Transaction{}, err
	}
	tx := a.newTransaction(TransactionDeposit, TransactionPending, amount, description)
	tx.ExternalReference = externalRef

	a.transactions = append(a.transactions, tx)
	a.lastTransactionAt = tx.CreatedAt
	a.recordActivity(ActivityDepositScheduled, description, &tx.Amount, a.balance, map[string]string{
		"transaction_id":     tx.ID.String(),
		"external_reference": externalRef,
	})
	a.raise(events.DepositScheduled{
		Meta:              a.meta(),
		TransactionID:     tx.ID,
		Amount:            amount,
		ExternalReference: externalRef,
	})
	return tx.clone(), nil
}

// UpdateTransactionStatus moves a ledger entry along
// Pending -> Processing -> Completed|Failed|Cancelled. Completing an entry
// posts it: the balance changes and the matching event is queued.
func (a *Account) UpdateTransactionStatus(id uuid.UUID, status TransactionStatus) error {
	i := a.transactionIndex(id)
	if i < 0 {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	tx := a.transactions[i]
	if err := checkTransition(tx.Status, status); err != nil {
		return err
	}

	if status != TransactionCompleted {
		before := tx.Status
		tx.Status = status
		tx.UpdatedAt = a.now()
		a.transactions[i] = tx
		a.recordActivity(ActivityStatusChanged, fmt.Sprintf("%s %s -> %s", tx.Type, before, status), nil, a.balance,
			map[string]string{"transaction_id": tx.ID.String(), "from": before.String(), "to": status.String()})
		return nil
	}

	if tx.Type == TransactionTransferIn || tx.Type == TransactionTransferOut {
		return fmt.Errorf("%w: transfer legs are completed by the transfer", domain.ErrInvalidTransition)
	}
	var err error
	if tx.IsDebit() {
		err = a.checkDebit(tx.Amount)
	} else {
		err = a.checkCredit(tx.Amount)
	}
	if err != nil {
		return err
	}
	after, err := a.nextBalance(tx.Type, tx.Amount)
	if err != nil {
		return err
	}

	tx.Status = TransactionCompleted
	tx.UpdatedAt = a.now()
	a.post(tx, after, i)
	return nil
}

// UpdateName renames the account.
func (a *Account) UpdateName(name string) error {
	if err := rules.Enforce(
		rules.AccountName(name),
		rules.AccountActive(a.IsActive(), a.status.String()),
	); err != nil {
		return err
	}
	old := a.name
	a.name = strings.TrimSpace(name)
	a.recordActivity(ActivityNameUpdated, fmt.Sprintf("Name changed from %q to %q", old, a.name), nil, a.balance,
		map[string]string{"old_name": old, "new_name": a.name})
	a.raise(events.AccountNameUpdated{Meta: a.meta(), OldName: old, NewName: a.name})
	return nil
}

// Freeze blocks all operations until Unfreeze.
func (a *Account) Freeze(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.InvalidInputf("freeze reason must not be blank")
	}
	if err := rules.AccountActive(a.IsActive(), a.status.String()).Err(); err != nil {
		return err
	}
	a.status = StatusFrozen
	a.recordActivity(ActivityFrozen, "Account frozen: "+reason, nil, a.balance,
		map[string]string{"reason": reason})
	a.raise(events.AccountFrozen{Meta: a.meta(), Reason: reason})
	return nil
}

// Unfreeze returns a frozen account to Active.
func (a *Account) Unfreeze() error {
	if a.status != StatusFrozen {
		return fmt.Errorf("%w: account is %s, not %s", domain.ErrInvalidTransition, a.status, StatusFrozen)
	}
	a.status = StatusActive
	a.recordActivity(ActivityUnfrozen, "Account unfrozen", nil, a.balance, nil)
	a.raise(events.AccountUnfrozen{Meta: a.meta()})
	return nil
}

// Close moves an Active account with no in-flight transactions to the
// terminal Closed status. The balance must be zero, or at most the minimum
// balance when one is set; AccountClosed carries that residual balance.
func (a *Account) Close() error {
	if err := rules.Enforce(
		rules.AccountActive(a.IsActive(), a.status.String()),
		rules.ClosureEligibility(a.balance, a.minimumBalance, a.inFlightCount()),
	); err != nil {
		return err
	}
	a.status = StatusClosed
	a.recordActivity(ActivityClosed, "Account closed", nil, a.balance, nil)
	a.raise(events.AccountClosed{Meta: a.meta(), FinalBalance: a.balance})
	return nil
}

func (a *Account) checkCredit(amount money.Money) error {
	return rules.Enforce(
		rules.TransactionAmountPositive(amount),
		rules.AccountActive(a.IsActive(), a.status.String()),
		rules.CurrencyMatch(a.Currency(), amount),
	)
}

func (a *Account) checkDebit(amount money.Money) error {
	if err := a.checkCredit(amount); err != nil {
		return err
	}
	return rules.Enforce(
		rules.SufficientBalance(a.AvailableBalance(), amount),
		rules.DailyLimit(a.TodayDebitTotal(), amount, a.dailyLimit),
	)
}

func (a *Account) nextBalance(typ TransactionType, amount money.Money) (money.Money, error) {
	if typ.IsDebit() {
		return a.balance.Subtract(amount)
	}
	return a.balance.Add(amount)
}

// postWithEvent applies a completed entry and queues its event.
func (a *Account) postWithEvent(tx Transaction) (Transaction, error) {
	after, err := a.nextBalance(tx.Type, tx.Amount)
	if err != nil {
		return Transaction{}, err
	}
	return a.post(tx, after, -1), nil
}

// post commits a checked entry: balance, ledger, audit trail and event. A
// non-negative at replaces the entry at that ledger position.
// Transfer legs queue no event here; Transfer raises one for both sides.
func (a *Account) post(tx Transaction, after money.Money, at int) Transaction {
	before := a.balance
	a.balance = after
	tx.BalanceAfter = after
	if at >= 0 {
		a.transactions[at] = tx
	} else {
		a.transactions = append(a.transactions, tx)
	}
	a.lastTransactionAt = tx.UpdatedAt

	meta := map[string]string{"transaction_id": tx.ID.String()}
	if tx.RelatedTransactionID != nil {
		meta["related_transaction_id"] = tx.RelatedTransactionID.String()
	}
	if tx.ExternalReference != "" {
		meta["external_reference"] = tx.ExternalReference
	}
	amount := tx.Amount
	a.recordActivity(postingActivities[tx.Type], tx.Description, &amount, before, meta)

	changed := events.BalanceChanged{
		Meta:          a.meta(),
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Balance:       after,
		Description:   tx.Description,
	}
	switch tx.Type {
	case TransactionDeposit:
		a.raise(events.MoneyDeposited{BalanceChanged: changed})
	case TransactionWithdrawal:
		a.raise(events.MoneyWithdrawn{BalanceChanged: changed})
	case TransactionFee:
		a.raise(events.FeeCharged{BalanceChanged: changed})
	case TransactionInterest:
		a.raise(events.InterestCredited{BalanceChanged: changed})
	}
	return tx.clone()
}
