package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

// Ledger is a leave.Ledger stored in the leave_balance table.
// Balances are created lazily from the allowances; reservations are a single conditional UPDATE,
// so concurrent reservations of the same balance are serialised by Postgres row locks.
type Ledger struct {
	exec       core.DBExecutor
	allowances leave.Allowances
}

var _ leave.Ledger = (*Ledger)(nil) // interface compliance check

func NewLedger(exec core.DBExecutor, allowances leave.Allowances) *Ledger {
	if allowances == nil {
		allowances = leave.DefaultAllowances
	}
	return &Ledger{exec: exec, allowances: allowances}
}

// ensure inserts the opening balance of (requesterID, cat) unless it already exists.
func (l Ledger) ensure(ctx context.Context, exec core.DBExecutor, requesterID string, cat leave.Category) error {
	opening := l.allowances.Opening(cat)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO leave_balance (requester_id, category, remaining, unlimited)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (requester_id, category) DO NOTHING`,
		requesterID, string(cat), opening.Days, opening.Unlimited,
	)
	return errors.Wrap(err, "inserting opening balance")
}

func (l Ledger) get(ctx context.Context, exec core.DBExecutor, requesterID string, cat leave.Category) (leave.Balance, error) {
	var bal leave.Balance
	err := exec.QueryRowContext(ctx,
		`SELECT remaining, unlimited FROM leave_balance WHERE requester_id = $1 AND category = $2`,
		requesterID, string(cat),
	).Scan(&bal.Days, &bal.Unlimited)
	if err != nil {
		return leave.Balance{}, errors.Wrap(err, "selecting balance")
	}
	return bal, nil
}

func (l Ledger) Available(ctx context.Context, requesterID string, cat leave.Category) (leave.Balance, error) {
	cat = cat.LedgerCategory()
	if err := l.ensure(ctx, l.exec, requesterID, cat); err != nil {
		return leave.Balance{}, err
	}
	return l.get(ctx, l.exec, requesterID, cat)
}

func (l Ledger) Reserve(ctx context.Context, requesterID string, cat leave.Category, days float64) (leave.Balance, error) {
	if days <= 0 {
		return leave.Balance{}, errors.Errorf("reserving %g day(s): days must be positive", days)
	}
	cat = cat.LedgerCategory()
	if err := l.ensure(ctx, l.exec, requesterID, cat); err != nil {
		return leave.Balance{}, err
	}

	var bal leave.Balance
	err := l.exec.QueryRowContext(ctx, `
		UPDATE leave_balance
		SET remaining = CASE WHEN unlimited THEN remaining ELSE remaining - $3 END
		WHERE requester_id = $1 AND category = $2 AND (unlimited OR remaining >= $3)
		RETURNING remaining, unlimited`,
		requesterID, string(cat), days,
	).Scan(&bal.Days, &bal.Unlimited)
	if err == nil {
		return bal, nil
	}
	if trapNoRowsErr(err, leave.ErrInsufficientBalance) != leave.ErrInsufficientBalance {
		return leave.Balance{}, errors.Wrap(err, "reserving balance")
	}
	if bal, err = l.get(ctx, l.exec, requesterID, cat); err != nil {
		return leave.Balance{}, err
	}
	return bal, leave.ErrInsufficientBalance
}

func (l Ledger) Release(ctx context.Context, requesterID string, cat leave.Category, days float64) (leave.Balance, error) {
	if days <= 0 {
		return leave.Balance{}, errors.Errorf("releasing %g day(s): days must be positive", days)
	}
	cat = cat.LedgerCategory()
	if err := l.ensure(ctx, l.exec, requesterID, cat); err != nil {
		return leave.Balance{}, err
	}

	var bal leave.Balance
	err := l.exec.QueryRowContext(ctx, `
		UPDATE leave_balance
		SET remaining = CASE WHEN unlimited THEN remaining ELSE remaining + $3 END
		WHERE requester_id = $1 AND category = $2
		RETURNING remaining, unlimited`,
		requesterID, string(cat), days,
	).Scan(&bal.Days, &bal.Unlimited)
	if err != nil {
		return leave.Balance{}, errors.Wrap(err, "releasing balance")
	}
	return bal, nil
}

func (l Ledger) Set(ctx context.Context, requesterID string, cat leave.Category, bal leave.Balance) error {
	if !bal.Unlimited && bal.Days < 0 {
		return errors.Errorf("setting balance: %g day(s) is negative", bal.Days)
	}
	_, err := l.exec.ExecContext(ctx, `
		INSERT INTO leave_balance (requester_id, category, remaining, unlimited)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (requester_id, category) DO UPDATE SET remaining = EXCLUDED.remaining, unlimited = EXCLUDED.unlimited`,
		requesterID, string(cat.LedgerCategory()), bal.Days, bal.Unlimited,
	)
	return errors.Wrap(err, "setting balance")
}
