package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/muhammadsami84343/ecampus/apps/api/echo"
	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/dashboard"
	"github.com/muhammadsami84343/ecampus/core/leave"
	"github.com/muhammadsami84343/ecampus/core/report"
	"github.com/muhammadsami84343/ecampus/services/logger"
	"github.com/muhammadsami84343/ecampus/services/metrics"
	"github.com/muhammadsami84343/ecampus/services/notify"
	"github.com/muhammadsami84343/ecampus/storage/database/inmem"
	"github.com/muhammadsami84343/ecampus/tests"
)

type fixture struct {
	app        *Server
	attendRepo attendance.Repository
	leaveSvc   leave.Service
	feed       *notifysvc.Feed
}

type fakeDirectory struct{}

func (fakeDirectory) Counts(_ context.Context) (dashboard.Counts, error) {
	return dashboard.Counts{Students: 120, Staff: 14, Classes: 6}, nil
}

func setup(t *testing.T) fixture {
	t.Helper()
	conf := &core.Config{
		Env:      "TEST",
		AppName:  "E-Campus",
		TestMode: true,
		Build:    "test",
		Server:   core.ServerConfig{DisableReqLogs: true},
		Pagination: core.PaginationConfig{
			DefaultSize: 10,
			MaxSize:     50,
		},
	}
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	leave.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	// set up DB & repos
	db := inmemdb.Open()
	attendRepo := inmemdb.NewAttendanceRepository(db)
	leaveRepo := inmemdb.NewLeaveRepository(db)

	holidays := calendar.NewHolidays(map[time.Time]string{
		time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC): "Mashujaa Day",
	})
	counter := calendar.Counter{Holidays: holidays}

	// set up services
	feed := notifysvc.NewFeed(10)
	m := metricsvc.New()
	leaveSvc := m.LeaveService(leave.NewService(leaveRepo, leave.NewMemoryLedger(leave.DefaultAllowances), validate, leave.Options{
		Counter:  counter,
		Notifier: feed,
	}))
	attendSvc := m.AttendanceService(attendance.NewService(attendRepo, validate, feed))

	// set up server
	app := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		LeaveSvc:      leaveSvc,
		AttendanceSvc: attendSvc,
		DashboardSvc:  dashboard.NewService(fakeDirectory{}, leaveSvc, attendSvc),
		Counter:       counter,
		Exporter:      report.Exporter{Title: "Attendance Report"},
		Notifications: feed.Reader(),
		Metrics:       m,
		HealthChecks: map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		},
	})
	return fixture{app: app, attendRepo: attendRepo, leaveSvc: leaveSvc, feed: feed}
}

func seedRecords(t *testing.T, repo attendance.Repository) {
	// 96.7%, 80% and 50%
	testutil.CreateRecord(t, repo, "S001", "Amani Njoroge", "Grade 5", "female", 30, 29)
	testutil.CreateRecord(t, repo, "S002", "Brian Otieno", "Grade 5", "male", 30, 24)
	testutil.CreateRecord(t, repo, "S003", "Cynthia Wanjiru", "Grade 6", "female", 20, 10)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (fx fixture) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	fx.app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("json.Unmarshal(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqualValues(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, fx fixture, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fx.do(tt.method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
