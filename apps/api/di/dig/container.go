package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/muhammadsami84343/ecampus/apps/api/echo"
	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/dashboard"
	"github.com/muhammadsami84343/ecampus/core/leave"
	"github.com/muhammadsami84343/ecampus/core/report"
	logsvc "github.com/muhammadsami84343/ecampus/services/logger"
	metricsvc "github.com/muhammadsami84343/ecampus/services/metrics"
	notifysvc "github.com/muhammadsami84343/ecampus/services/notify"
	"github.com/muhammadsami84343/ecampus/storage/database"
	sqlxrepos "github.com/muhammadsami84343/ecampus/storage/database/sqlx"
	mongostore "github.com/muhammadsami84343/ecampus/storage/mongo"
)

const feedSize = 100

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		ctx := context.Background()
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, err
		}

		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(ctx, db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newMongoStore(conf *core.Config, loggerParam DBLoggerParam) *mongostore.Store {
	store, err := mongostore.Open(context.Background(), conf.Mongo)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("connecting to mongo: %v", err), err)
	}
	return store
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := core.NewValidator(translator)
	leave.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)
	return validate
}

func newCounter(conf *core.Config, logger core.Logger) calendar.Counter {
	holidays, err := calendar.HolidaysFrom(conf.Calendar.Holidays)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading holidays: %v", err), err)
	}
	return calendar.Counter{Holidays: holidays}
}

// newRedisNotifier returns nil when no redis address is configured.
func newRedisNotifier(conf *core.Config, logger core.Logger) *notifysvc.RedisNotifier {
	if conf.Redis.Address == "" {
		return nil
	}
	return notifysvc.NewRedisNotifier(notifysvc.NewRedisClient(conf.Redis.Address), conf.Redis.NotifyKey, logger)
}

// newNotificationReader serves notifications from redis when configured, shared across instances.
func newNotificationReader(feed *notifysvc.Feed, rn *notifysvc.RedisNotifier) notifysvc.Reader {
	if rn != nil {
		return rn
	}
	return feed.Reader()
}

func newNotifier(logger core.Logger, feed *notifysvc.Feed, rn *notifysvc.RedisNotifier) core.Notifier {
	notifiers := notifysvc.Multi{notifysvc.NewLogNotifier(logger), feed}
	if rn != nil {
		notifiers = append(notifiers, rn)
	}
	return notifiers
}

func newLedger(conf *core.Config, db *sqlx.DB) leave.Ledger {
	return sqlxrepos.NewLedger(db, leave.AllowancesFrom(conf.Leave.Allowances))
}

func newLeaveService(
	conf *core.Config,
	repo leave.Repository,
	ledger leave.Ledger,
	validate *validator.Validate,
	counter calendar.Counter,
	notifier core.Notifier,
	m *metricsvc.Metrics,
) leave.Service {
	svc := leave.NewService(repo, ledger, validate, leave.Options{
		ReasonMinLength: conf.Leave.ReasonMinLength,
		Counter:         counter,
		Notifier:        notifier,
	})
	return m.LeaveService(svc)
}

func newAttendanceService(
	repo attendance.Repository,
	validate *validator.Validate,
	notifier core.Notifier,
	m *metricsvc.Metrics,
) attendance.Service {
	return m.AttendanceService(attendance.NewService(repo, validate, notifier))
}

func newDashboardService(store *mongostore.Store, leaveSvc leave.Service, attendSvc attendance.Service) dashboard.Service {
	return dashboard.NewService(store, leaveSvc, attendSvc)
}

type ServerParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Validate      *validator.Validate
	Translator    ut.Translator
	DB            *sqlx.DB
	Mongo         *mongostore.Store
	Redis         *notifysvc.RedisNotifier
	LeaveSvc      leave.Service
	AttendanceSvc attendance.Service
	DashboardSvc  dashboard.Service
	Counter       calendar.Counter
	Notifications notifysvc.Reader
	Metrics       *metricsvc.Metrics
}

func newServer(p ServerParams) *echoapi.Server {
	checks := map[string]echoapi.HealthCheck{
		"database": func(ctx context.Context) error { return p.DB.PingContext(ctx) },
		"mongo":    p.Mongo.Ping,
	}
	if p.Redis != nil {
		checks["redis"] = p.Redis.Ping
	}

	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		Validate:      p.Validate,
		Translator:    p.Translator,
		LeaveSvc:      p.LeaveSvc,
		AttendanceSvc: p.AttendanceSvc,
		DashboardSvc:  p.DashboardSvc,
		Counter:       p.Counter,
		Exporter:      report.Exporter{Title: p.Conf.AppName + " Attendance Report"},
		Notifications: p.Notifications,
		Metrics:       p.Metrics,
		HealthChecks:  checks,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newMongoStore))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newCounter))
	must(c.Provide(metricsvc.New))
	must(c.Provide(func() *notifysvc.Feed { return notifysvc.NewFeed(feedSize) }))
	must(c.Provide(newRedisNotifier))
	must(c.Provide(newNotifier))
	must(c.Provide(newNotificationReader))
	must(c.Provide(sqlxrepos.NewAttendanceRepository))
	must(c.Provide(sqlxrepos.NewLeaveRepository))
	must(c.Provide(newLedger))
	must(c.Provide(newLeaveService))
	must(c.Provide(newAttendanceService))
	must(c.Provide(newDashboardService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
