package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sql.DB
	ledger  leave.Ledger
	counter calendar.Counter
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  grant -requester ID -category CATEGORY -days N|unlimited [-add] - set or top up a leave balance")
	fmt.Fprintln(cli.out, "  balance -requester ID - print a requester's leave balances")
	fmt.Fprintln(cli.out, "  countdays -start YYYY-MM-DD -end YYYY-MM-DD [-exclude-weekends] - count the days of a date range")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	grantCmd := cli.newFlagSet("grant")
	grantRequester := grantCmd.String("requester", "", "The requester's ID.")
	grantCategory := grantCmd.String("category", "", "The leave category (half-day grants casual leave).")
	grantDays := grantCmd.String("days", "", "The number of days, or \"unlimited\".")
	grantAdd := grantCmd.Bool("add", false, "Add the days to the current balance instead of replacing it.")

	balanceCmd := cli.newFlagSet("balance")
	balanceRequester := balanceCmd.String("requester", "", "The requester's ID.")

	countDaysCmd := cli.newFlagSet("countdays")
	countDaysStart := countDaysCmd.String("start", "", "The first day of the range (YYYY-MM-DD).")
	countDaysEnd := countDaysCmd.String("end", "", "The last day of the range (YYYY-MM-DD).")
	countDaysExclude := countDaysCmd.Bool("exclude-weekends", false, "Skip weekends and school holidays.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "grant":
		if err := grantCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *grantRequester == "" || *grantCategory == "" || *grantDays == "" {
			grantCmd.Usage()
			return errHelp
		}
		return cli.grant(*grantRequester, *grantCategory, *grantDays, *grantAdd)
	case "balance":
		if err := balanceCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *balanceRequester == "" {
			balanceCmd.Usage()
			return errHelp
		}
		return cli.balance(*balanceRequester)
	case "countdays":
		if err := countDaysCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *countDaysStart == "" || *countDaysEnd == "" {
			countDaysCmd.Usage()
			return errHelp
		}
		return cli.countDays(*countDaysStart, *countDaysEnd, *countDaysExclude)
	default:
		cli.printUsage()
		return errHelp
	}
}
