// Package metricsvc exposes Prometheus metrics for the API and the leave and attendance services.
package metricsvc

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

const namespace = "ecampus"

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.HistogramVec
	leaveRequests   *prometheus.CounterVec
	leaveDays       *prometheus.CounterVec
	attendanceMarks *prometheus.CounterVec
}

// New registers every collector on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		leaveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leave_requests_total",
			Help:      "Leave requests by category and resulting status.",
		}, []string{"category", "status"}),
		leaveDays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leave_days_approved_total",
			Help:      "Leave days approved by category.",
		}, []string{"category"}),
		attendanceMarks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_marks_total",
			Help:      "Daily attendance marks by status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.leaveRequests, m.leaveDays, m.attendanceMarks,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

func (m *Metrics) countLeave(req leave.Request) {
	m.leaveRequests.WithLabelValues(string(req.Category), string(req.Status)).Inc()
	if req.Status == leave.StatusApproved {
		m.leaveDays.WithLabelValues(string(req.Category)).Add(req.Duration)
	}
}

// LeaveService counts successful submissions and decisions of next.
func (m *Metrics) LeaveService(next leave.Service) leave.Service {
	return &leaveService{Service: next, m: m}
}

type leaveService struct {
	leave.Service
	m *Metrics
}

func (svc *leaveService) Submit(ctx context.Context, nr leave.NewRequest) (leave.Request, error) {
	req, err := svc.Service.Submit(ctx, nr)
	if err == nil {
		svc.m.countLeave(req)
	}
	return req, err
}

func (svc *leaveService) Approve(ctx context.Context, id string, d leave.Decision) (leave.Request, error) {
	req, err := svc.Service.Approve(ctx, id, d)
	if err == nil {
		svc.m.countLeave(req)
	}
	return req, err
}

func (svc *leaveService) Reject(ctx context.Context, id string, d leave.Decision) (leave.Request, error) {
	req, err := svc.Service.Reject(ctx, id, d)
	if err == nil {
		svc.m.countLeave(req)
	}
	return req, err
}

// AttendanceService counts the marks of next's successful MarkDay calls.
func (m *Metrics) AttendanceService(next attendance.Service) attendance.Service {
	return &attendanceService{Service: next, m: m}
}

type attendanceService struct {
	attendance.Service
	m *Metrics
}

func (svc *attendanceService) MarkDay(ctx context.Context, mark attendance.DailyMark) ([]attendance.Record, error) {
	records, err := svc.Service.MarkDay(ctx, mark)
	if err == nil {
		for _, sm := range mark.Marks {
			svc.m.attendanceMarks.WithLabelValues(string(sm.Status)).Inc()
		}
	}
	return records, err
}
