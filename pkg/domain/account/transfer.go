package account

import (
	"fmt"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/domain/rules"
	"github.com/amirasaad/corebank/pkg/money"
)

// TransferResult holds the two ledger entries a transfer produced.
type TransferResult struct {
	Out Transaction // TransferOut on the source account
	In  Transaction // TransferIn on the destination account
}

// Transfer moves amount from one account to another. Every check runs before
// either account is touched, so on error both are unchanged. The caller
// persists both accounts atomically. A single MoneyTransferred event is
// queued on the source account.
func Transfer(from, to *Account, amount money.Money, description string) (TransferResult, error) {
	if err := validateTransfer(from, to, amount); err != nil {
		return TransferResult{}, err
	}

	fromAfter, err := from.balance.Subtract(amount)
	if err != nil {
		return TransferResult{}, err
	}
	toAfter, err := to.balance.Add(amount)
	if err != nil {
		return TransferResult{}, err
	}

	out := from.newTransaction(TransactionTransferOut, TransactionCompleted, amount,
		transferDescription("Transfer to", to.number, description))
	in := to.newTransaction(TransactionTransferIn, TransactionCompleted, amount,
		transferDescription("Transfer from", from.number, description))
	outID, inID := out.ID, in.ID
	out.RelatedTransactionID = &inID
	in.RelatedTransactionID = &outID

	out = from.post(out, fromAfter, -1)
	in = to.post(in, toAfter, -1)

	from.raise(events.MoneyTransferred{
		Meta:              from.meta(),
		FromAccountID:     from.id,
		ToAccountID:       to.id,
		FromTransactionID: out.ID,
		ToTransactionID:   in.ID,
		Amount:            amount,
		FromBalance:       fromAfter,
		ToBalance:         toAfter,
		Description:       description,
	})
	return TransferResult{Out: out, In: in}, nil
}

func validateTransfer(from, to *Account, amount money.Money) error {
	if from == nil || to == nil {
		return domain.InvalidInputf("transfer requires both accounts")
	}
	if from.id == to.id {
		return domain.ErrSameAccount
	}
	if err := rules.Enforce(
		rules.TransactionAmountPositive(amount),
		rules.AccountActive(from.IsActive(), from.status.String()),
		rules.AccountActive(to.IsActive(), to.status.String()),
	); err != nil {
		return err
	}
	if from.accountType != to.accountType || from.Currency() != to.Currency() {
		return fmt.Errorf("%w: %s %s -> %s %s", domain.ErrTypeOrCurrencyMismatch,
			from.accountType, from.Currency(), to.accountType, to.Currency())
	}
	return rules.Enforce(
		rules.CurrencyMatch(from.Currency(), amount),
		rules.SufficientBalance(from.AvailableBalance(), amount),
		rules.DailyLimit(from.TodayDebitTotal(), amount, from.dailyLimit),
	)
}

func transferDescription(prefix string, counterparty Number, description string) string {
	if description == "" {
		return fmt.Sprintf("%s %s", prefix, counterparty)
	}
	return fmt.Sprintf("%s %s: %s", prefix, counterparty, description)
}
