// Command cli drives the account service against the configured database.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/corebank/infra/initializer"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	accountsvc "github.com/amirasaad/corebank/pkg/service/account"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	labelColor = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
)

const usage = `Usage: cli <command> [arguments]
Commands:
  create <customer_id> <type> <currency> <initial_balance> <name...>
  deposit <account_id> <amount> [description...]
  withdraw <account_id> <amount> [description...]
  fee <account_id> <amount> [description...]
  interest <account_id> <amount> [description...]
  transfer <from_id> <to_id> <amount> [description...]
  rename <account_id> <name...>
  freeze <account_id> <reason...>
  unfreeze <account_id>
  close <account_id>
  show <account_id|account_number>`

type command struct {
	minArgs int
	run     func(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error
}

var commands = map[string]command{
	"create":   {4, runCreate},
	"deposit":  {2, moneyCommand((*accountsvc.Service).Deposit)},
	"withdraw": {2, moneyCommand((*accountsvc.Service).Withdraw)},
	"fee":      {2, moneyCommand((*accountsvc.Service).ChargeFee)},
	"interest": {2, moneyCommand((*accountsvc.Service).CreditInterest)},
	"transfer": {3, runTransfer},
	"rename":   {2, runRename},
	"freeze":   {2, runFreeze},
	"unfreeze": {1, lifecycleCommand((*accountsvc.Service).Unfreeze)},
	"close":    {1, lifecycleCommand((*accountsvc.Service).Close)},
	"show":     {1, runShow},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cmd, ok := commands[os.Args[1]]
	if !ok || len(os.Args)-2 < cmd.minArgs {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		errColor.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		errColor.Fprintln(os.Stderr, "Failed to initialize:", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	err = cmd.run(context.Background(), a.AccountService, os.Args[2:], os.Stdout)
	cleanup()
	if err != nil {
		errColor.Fprintf(os.Stderr, "✗ %s: %s\n", errorKind(err), err)
		os.Exit(1)
	}
}

func runCreate(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
	customerID, err := uuid.Parse(args[0])
	if err != nil {
		return domain.InvalidInputf("customer id: %v", err)
	}
	typ, err := account.ParseType(args[1])
	if err != nil {
		return err
	}
	initial, err := money.Parse(args[3], money.Code(strings.ToUpper(args[2])))
	if err != nil {
		return err
	}
	acc, err := svc.Create(ctx, accountsvc.CreateCommand{
		CustomerID:     customerID,
		Name:           strings.Join(args[4:], " "),
		Type:           typ,
		InitialBalance: initial,
	})
	if err != nil {
		return err
	}
	okColor.Fprintln(out, "✓ Account created")
	printAccount(out, acc)
	return nil
}

type moneyOp func(*accountsvc.Service, context.Context, accountsvc.MoneyCommand) (account.Transaction, error)

func moneyCommand(op moneyOp) func(context.Context, *accountsvc.Service, []string, io.Writer) error {
	return func(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
		acc, err := loadAccount(ctx, svc, args[0])
		if err != nil {
			return err
		}
		amount, err := money.Parse(args[1], acc.Currency())
		if err != nil {
			return err
		}
		tx, err := op(svc, ctx, accountsvc.MoneyCommand{
			AccountID:   acc.ID(),
			Amount:      amount,
			Description: strings.Join(args[2:], " "),
		})
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "✓ %s %s\n", tx.Type, tx.Amount)
		fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("Balance:"), tx.BalanceAfter)
		return nil
	}
}

func runTransfer(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
	from, err := loadAccount(ctx, svc, args[0])
	if err != nil {
		return err
	}
	to, err := loadAccount(ctx, svc, args[1])
	if err != nil {
		return err
	}
	amount, err := money.Parse(args[2], from.Currency())
	if err != nil {
		return err
	}
	res, err := svc.Transfer(ctx, accountsvc.TransferCommand{
		FromAccountID: from.ID(),
		ToAccountID:   to.ID(),
		Amount:        amount,
		Description:   strings.Join(args[3:], " "),
	})
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "✓ Transferred %s\n", amount)
	fmt.Fprintf(out, "%s %s (%s)\n", labelColor.Sprint("From:"), from.Number(), res.Out.BalanceAfter)
	fmt.Fprintf(out, "%s %s (%s)\n", labelColor.Sprint("To:  "), to.Number(), res.In.BalanceAfter)
	return nil
}

func runRename(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
	return lifecycle(ctx, svc, args[0], out, func(id uuid.UUID) (*account.Account, error) {
		return svc.Rename(ctx, id, strings.Join(args[1:], " "))
	})
}

func runFreeze(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
	return lifecycle(ctx, svc, args[0], out, func(id uuid.UUID) (*account.Account, error) {
		return svc.Freeze(ctx, id, strings.Join(args[1:], " "))
	})
}

type lifecycleOp func(*accountsvc.Service, context.Context, uuid.UUID) (*account.Account, error)

func lifecycleCommand(op lifecycleOp) func(context.Context, *accountsvc.Service, []string, io.Writer) error {
	return func(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
		return lifecycle(ctx, svc, args[0], out, func(id uuid.UUID) (*account.Account, error) {
			return op(svc, ctx, id)
		})
	}
}

func lifecycle(
	ctx context.Context,
	svc *accountsvc.Service,
	ref string,
	out io.Writer,
	fn func(uuid.UUID) (*account.Account, error),
) error {
	acc, err := loadAccount(ctx, svc, ref)
	if err != nil {
		return err
	}
	acc, err = fn(acc.ID())
	if err != nil {
		return err
	}
	okColor.Fprintln(out, "✓ Done")
	printAccount(out, acc)
	return nil
}

func runShow(ctx context.Context, svc *accountsvc.Service, args []string, out io.Writer) error {
	acc, err := loadAccount(ctx, svc, args[0])
	if err != nil {
		return err
	}
	printAccount(out, acc)
	txs := acc.Transactions()
	if len(txs) == 0 {
		return nil
	}
	labelColor.Fprintln(out, "Transactions:")
	for _, tx := range txs {
		fmt.Fprintf(out, "  %s %-11s %-10s %12s  %s %s\n",
			tx.CreatedAt.Format("2006-01-02 15:04"), tx.Type, tx.Status, tx.Amount,
			tx.Description, dimColor.Sprint(tx.ID))
	}
	return nil
}

// loadAccount accepts either an account id or an account number.
func loadAccount(ctx context.Context, svc *accountsvc.Service, ref string) (*account.Account, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return svc.GetAccount(ctx, id)
	}
	return svc.GetAccountByNumber(ctx, ref)
}

func printAccount(out io.Writer, acc *account.Account) {
	row := func(label string, value any) {
		fmt.Fprintf(out, "%s %v\n", labelColor.Sprintf("%-10s", label+":"), value)
	}
	row("ID", acc.ID())
	row("Number", acc.Number())
	row("Name", acc.Name())
	row("Type", acc.Type())
	row("Status", statusColor(acc.Status()).Sprint(acc.Status()))
	row("Balance", acc.Balance())
	row("Available", acc.AvailableBalance())
	row("Version", acc.Version())
}

func statusColor(s account.Status) *color.Color {
	switch s {
	case account.StatusActive:
		return okColor
	case account.StatusFrozen:
		return color.New(color.FgYellow, color.Bold)
	default:
		return dimColor
	}
}

// errorKind names the domain error category for the summary line.
func errorKind(err error) string {
	kinds := []struct {
		target error
		name   string
	}{
		{domain.ErrInvalidInput, "invalid input"},
		{domain.ErrNotFound, "not found"},
		{domain.ErrNotActive, "account not active"},
		{domain.ErrInsufficientFunds, "insufficient funds"},
		{domain.ErrDailyLimitExceeded, "daily limit exceeded"},
		{domain.ErrClosureNotAllowed, "closure not allowed"},
		{domain.ErrInvalidTransition, "invalid transition"},
		{domain.ErrConcurrencyConflict, "concurrent update"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.name
		}
	}
	return "error"
}
