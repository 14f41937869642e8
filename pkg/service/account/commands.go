package account

import (
	"fmt"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateCommand opens an account. The currency of InitialBalance becomes the
// account currency.
type CreateCommand struct {
	CustomerID     uuid.UUID    `validate:"required"`
	Name           string       `validate:"required,max=100"`
	Type           account.Type `validate:"required,oneof=Checking Savings Investment Credit"`
	InitialBalance money.Money
	MinimumBalance *money.Money
	DailyLimit     *money.Money
}

// MoneyCommand moves Amount into or out of one account.
type MoneyCommand struct {
	AccountID   uuid.UUID `validate:"required"`
	Amount      money.Money
	Description string `validate:"max=255"`
}

// ScheduleDepositCommand records a deposit that settles later.
type ScheduleDepositCommand struct {
	AccountID         uuid.UUID `validate:"required"`
	Amount            money.Money
	Description       string `validate:"max=255"`
	ExternalReference string `validate:"max=128"`
}

// TransferCommand moves Amount between two accounts.
type TransferCommand struct {
	FromAccountID uuid.UUID `validate:"required"`
	ToAccountID   uuid.UUID `validate:"required"`
	Amount        money.Money
	Description   string `validate:"max=255"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateCommand checks the shape of cmd. Business rules stay with the
// aggregate.
func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}
