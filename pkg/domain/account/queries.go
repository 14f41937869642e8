package account

import (
	"errors"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/rules"
	"github.com/amirasaad/corebank/pkg/money"
)

// AvailableBalance is the balance minus the minimum balance, floored at zero.
func (a *Account) AvailableBalance() money.Money {
	if a.minimumBalance == nil {
		return a.balance
	}
	available, err := a.balance.Subtract(*a.minimumBalance)
	if err != nil {
		return money.Zero(a.Currency())
	}
	return available
}

// TodayDebitTotal sums the completed debit transactions dated today (UTC).
func (a *Account) TodayDebitTotal() money.Money {
	total := money.Zero(a.Currency())
	y, m, d := a.now().Date()
	for _, tx := range a.transactions {
		if !tx.IsDebit() || tx.Status != TransactionCompleted {
			continue
		}
		ty, tm, td := tx.CreatedAt.UTC().Date()
		if ty != y || tm != m || td != d {
			continue
		}
		if sum, err := total.Add(tx.Amount); err == nil {
			total = sum
		}
	}
	return total
}

// HasSufficientBalance reports whether the available balance covers amount.
func (a *Account) HasSufficientBalance(amount money.Money) bool {
	return rules.SufficientBalance(a.AvailableBalance(), amount).Passed()
}

// IsDailyLimitExceeded reports whether debiting amount today would break the daily limit.
func (a *Account) IsDailyLimitExceeded(amount money.Money) bool {
	err := rules.DailyLimit(a.TodayDebitTotal(), amount, a.dailyLimit).Err()
	return errors.Is(err, domain.ErrDailyLimitExceeded)
}
