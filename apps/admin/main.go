package main

import (
	"context"
	"log"
	"os"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/leave"
	"github.com/muhammadsami84343/ecampus/storage/database"
	sqlxrepos "github.com/muhammadsami84343/ecampus/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	holidays, err := calendar.HolidaysFrom(conf.Calendar.Holidays)
	errAndDie(err)

	// set up DB
	db, err := database.Open(context.Background(), conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := commandLine{
		db:      db.DB,
		ledger:  sqlxrepos.NewLedger(db, leave.AllowancesFrom(conf.Leave.Allowances)),
		counter: calendar.Counter{Holidays: holidays},
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
