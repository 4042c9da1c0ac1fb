package main

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

func parseBalance(days string) (leave.Balance, error) {
	days = core.CleanString(days, true /* lower */)
	if days == "unlimited" {
		return leave.Unlimited, nil
	}
	d, err := strconv.ParseFloat(days, 64)
	if err != nil || d < 0 {
		return leave.Balance{}, fmt.Errorf("days must be a non-negative number or \"unlimited\" (got %q)", days)
	}
	// balances are stored with one decimal place
	if math.Abs(d*10-math.Round(d*10)) > 1e-9 {
		return leave.Balance{}, fmt.Errorf("days must have at most one decimal place (got %q)", days)
	}
	return leave.Days(d), nil
}

// grant replaces a requester's balance, or tops it up when add is set.
func (cli *commandLine) grant(requesterID, category, days string, add bool) error {
	ctx := context.Background()
	requesterID = core.CleanString(requesterID)
	cat := leave.Category(core.CleanString(category, true /* lower */))
	if !cat.IsValid() {
		return fmt.Errorf("unknown leave category %q", category)
	}
	bal, err := parseBalance(days)
	if err != nil {
		return err
	}

	if add {
		if bal.Unlimited {
			return errors.New("unlimited balances cannot be added, omit -add")
		}
		if bal.Days == 0 {
			return errors.New("-add needs a positive number of days")
		}
		if bal, err = cli.ledger.Release(ctx, requesterID, cat, bal.Days); err != nil {
			return errors.Wrap(err, "adding days")
		}
	} else if err = cli.ledger.Set(ctx, requesterID, cat, bal); err != nil {
		return errors.Wrap(err, "setting balance")
	}

	fmt.Fprintf(cli.out, "%s %s leave: %s\n", requesterID, cat.LedgerCategory(), bal)
	return nil
}

func (cli *commandLine) balance(requesterID string) error {
	ctx := context.Background()
	requesterID = core.CleanString(requesterID)
	for _, cat := range leave.AllCategories {
		if cat.LedgerCategory() != cat {
			continue
		}
		bal, err := cli.ledger.Available(ctx, requesterID, cat)
		if err != nil {
			return errors.Wrapf(err, "getting %s balance", cat)
		}
		fmt.Fprintf(cli.out, "%-10s %s\n", cat, bal)
	}
	return nil
}

func (cli *commandLine) countDays(start, end string, excludeWeekends bool) error {
	s, err := calendar.ParseDate(start)
	if err != nil {
		return err
	}
	e, err := calendar.ParseDate(end)
	if err != nil {
		return err
	}
	n, err := cli.counter.CountDays(s, e, excludeWeekends)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, n)
	return nil
}
