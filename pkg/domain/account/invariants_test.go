package account_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomAmount returns 0.00 to 400.00 TRY, zero included on purpose.
func randomAmount(r *rand.Rand) money.Money {
	return money.Must(decimal.New(r.Int64N(40001), -2).String(), money.TRY)
}

// TestInvariants_RandomOperations drives accounts through random operation
// sequences and checks the invariants after every step, whether or not the
// step succeeded.
func TestInvariants_RandomOperations(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			r := rand.New(rand.NewPCG(seed, seed*31))
			c := &clock{t: day}
			opts := []account.Option{account.WithClock(c.now)}
			if r.IntN(2) == 0 {
				opts = append(opts, account.WithMinimumBalance(randomAmount(r)))
			}
			if r.IntN(2) == 0 {
				opts = append(opts, account.WithDailyLimit(try("500")))
			}
			acc := newAccount(t, account.Savings, "100", opts...)
			peer := newAccount(t, account.Savings, "1000")
			var pending []uuid.UUID

			for step := 0; step < 200; step++ {
				before := acc.Snapshot()
				var err error
				switch r.IntN(10) {
				case 0, 1:
					_, err = acc.Deposit(randomAmount(r), "deposit")
				case 2, 3:
					_, err = acc.Withdraw(randomAmount(r), "withdraw")
				case 4:
					_, err = acc.ChargeFee(randomAmount(r), "fee")
				case 5:
					_, err = account.Transfer(acc, peer, randomAmount(r), "out")
				case 6:
					_, err = account.Transfer(peer, acc, randomAmount(r), "in")
				case 7:
					var tx account.Transaction
					tx, err = acc.ScheduleDeposit(randomAmount(r), "scheduled", "")
					if err == nil {
						pending = append(pending, tx.ID)
					}
				case 8:
					if len(pending) > 0 {
						id := pending[r.IntN(len(pending))]
						statuses := []account.TransactionStatus{
							account.TransactionProcessing, account.TransactionCompleted,
							account.TransactionFailed, account.TransactionCancelled,
						}
						err = acc.UpdateTransactionStatus(id, statuses[r.IntN(len(statuses))])
					}
				case 9:
					switch r.IntN(4) {
					case 0:
						err = acc.Freeze("random")
					case 1:
						err = acc.Unfreeze()
					case 2:
						c.advance(time.Duration(r.IntN(30)) * time.Hour)
					case 3:
						err = acc.Close()
					}
				}

				bal := acc.Balance()
				require.False(t, bal.Amount().IsNegative(), "step %d: negative balance %s", step, bal)
				require.Equal(t, money.TRY, bal.Currency(), "step %d: currency changed", step)
				if limit := acc.DailyLimit(); limit != nil {
					within, cmpErr := acc.TodayDebitTotal().LessOrEqual(*limit)
					require.NoError(t, cmpErr)
					require.True(t, within, "step %d: daily limit exceeded", step)
				}
				if err != nil {
					require.Equal(t, before.Balance, acc.Balance(), "step %d: failed op moved balance: %v", step, err)
					require.Len(t, acc.Transactions(), len(before.Transactions), "step %d: failed op appended", step)
					require.Equal(t, before.Status, acc.Status(), "step %d", step)
				}
				if before.Status == account.StatusClosed {
					require.Equal(t, account.StatusClosed, acc.Status(), "step %d: closed is terminal", step)
				}
			}
		})
	}
}

func TestInvariants_PostingsMatchEvents(t *testing.T) {
	acc := newAccount(t, account.Investment, "1000")
	ops := []func() error{
		func() error { _, err := acc.Deposit(try("10"), ""); return err },
		func() error { _, err := acc.Withdraw(try("5"), ""); return err },
		func() error { _, err := acc.ChargeFee(try("1"), ""); return err },
		func() error { _, err := acc.CreditInterest(try("2"), ""); return err },
	}
	for _, op := range ops {
		txBefore := len(acc.Transactions())
		require.NoError(t, op())
		assert.Len(t, acc.Transactions(), txBefore+1)
		assert.Len(t, acc.PullEvents(), 1)
	}
	assert.Equal(t, "1006.00 TRY", acc.Balance().String())
}

func TestGenerateNumber(t *testing.T) {
	for _, typ := range []account.Type{account.Checking, account.Savings, account.Investment, account.Credit} {
		n, err := account.GenerateNumber(typ)
		require.NoError(t, err)
		assert.Len(t, n.String(), account.NumberLength)
		assert.Equal(t, typ, n.Type())

		parsed, err := account.ParseNumber(n.String())
		require.NoError(t, err)
		assert.Equal(t, n, parsed)
	}
	_, err := account.GenerateNumber(account.Type("Nope"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransactionStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to account.TransactionStatus
		ok       bool
	}{
		{account.TransactionPending, account.TransactionProcessing, true},
		{account.TransactionPending, account.TransactionCancelled, true},
		{account.TransactionPending, account.TransactionCompleted, false},
		{account.TransactionProcessing, account.TransactionCompleted, true},
		{account.TransactionProcessing, account.TransactionFailed, true},
		{account.TransactionProcessing, account.TransactionCancelled, true},
		{account.TransactionCompleted, account.TransactionFailed, false},
		{account.TransactionCancelled, account.TransactionPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
