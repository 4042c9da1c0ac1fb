package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/query"
)

func mustDate(t *testing.T, s string) time.Time {
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func dateRange(t *testing.T, from, to string) query.DateRange {
	return query.DateRange{From: mustDate(t, from), To: mustDate(t, to)}
}

func TestRequest_Transition(t *testing.T) {
	now := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr error
	}{
		{name: "pending to approved", from: StatusPending, to: StatusApproved},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected},
		{name: "pending to pending", from: StatusPending, to: StatusPending, wantErr: ErrInvalidDecision},
		{name: "approved is terminal", from: StatusApproved, to: StatusRejected, wantErr: ErrNotPending},
		{name: "rejected is terminal", from: StatusRejected, to: StatusApproved, wantErr: ErrNotPending},
		{name: "approved twice", from: StatusApproved, to: StatusApproved, wantErr: ErrNotPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{Status: tt.from}
			err := req.Transition(tt.to, Decision{DecidedBy: " admin ", Remarks: "ok"}, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, req.Status)
				assert.Nil(t, req.DecidedAt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, req.Status)
			assert.Equal(t, "admin", req.DecidedBy)
			require.NotNil(t, req.DecidedAt)
			assert.Equal(t, now, *req.DecidedAt)
		})
	}
}

func TestRequest_Overlaps(t *testing.T) {
	req := Request{StartDate: mustDate(t, "2025-10-14"), EndDate: mustDate(t, "2025-10-16")}
	tests := []struct {
		start, end string
		want       bool
	}{
		{"2025-10-10", "2025-10-13", false},
		{"2025-10-10", "2025-10-14", true},
		{"2025-10-15", "2025-10-15", true},
		{"2025-10-16", "2025-10-20", true},
		{"2025-10-17", "2025-10-20", false},
		{"2025-10-01", "2025-10-31", true},
	}
	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			assert.Equal(t, tt.want, req.Overlaps(mustDate(t, tt.start), mustDate(t, tt.end)))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryHalfDay.IsValid())
	assert.False(t, Category("vacation").IsValid())
	assert.Equal(t, CategoryCasual, CategoryHalfDay.LedgerCategory())
	assert.Equal(t, CategorySick, CategorySick.LedgerCategory())
}

func TestDuration(t *testing.T) {
	counter := calendar.Counter{Holidays: calendar.NewHolidays(map[time.Time]string{
		mustDate(t, "2025-10-20"): "Mashujaa Day",
	})}
	tests := []struct {
		name       string
		category   Category
		start, end string
		want       float64
		wantErr    error
		wantField  string
	}{
		{name: "single day", category: CategoryCasual, start: "2025-10-14", end: "2025-10-14", want: 1},
		{name: "across a weekend", category: CategorySick, start: "2025-10-14", end: "2025-10-17", want: 4},
		{name: "holiday skipped", category: CategoryEarned, start: "2025-10-14", end: "2025-10-21", want: 5},
		{name: "half day", category: CategoryHalfDay, start: "2025-10-14", end: "2025-10-14", want: 0.5},
		{name: "half day over two days", category: CategoryHalfDay, start: "2025-10-14", end: "2025-10-15", wantField: "end_date"},
		{name: "half day on saturday", category: CategoryHalfDay, start: "2025-10-18", end: "2025-10-18", wantField: "start_date"},
		{name: "half day on holiday", category: CategoryHalfDay, start: "2025-10-20", end: "2025-10-20", wantField: "start_date"},
		{name: "weekend only", category: CategoryCasual, start: "2025-10-18", end: "2025-10-19", wantField: "start_date"},
		{name: "inverted", category: CategoryCasual, start: "2025-10-20", end: "2025-10-14", wantField: "end_date", wantErr: calendar.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Duration(counter, tt.category, mustDate(t, tt.start), mustDate(t, tt.end))
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.NotEmpty(t, vErr.Fields)
			assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	requests := []Request{
		{ID: "1", RequesterID: "T-01", Category: CategorySick, Status: StatusPending, Reason: "Flu and fever",
			StartDate: mustDate(t, "2025-10-14"), EndDate: mustDate(t, "2025-10-15")},
		{ID: "2", RequesterID: "T-02", Category: CategoryCasual, Status: StatusApproved, Reason: "Family wedding",
			StartDate: mustDate(t, "2025-11-03"), EndDate: mustDate(t, "2025-11-04")},
		{ID: "3", RequesterID: "T-01", Category: CategoryCasual, Status: StatusRejected, Reason: "Wedding abroad",
			StartDate: mustDate(t, "2025-12-01"), EndDate: mustDate(t, "2025-12-05")},
	}
	ids := func(reqs []Request) []string {
		res := make([]string, 0, len(reqs))
		for _, r := range reqs {
			res = append(res, r.ID)
		}
		return res
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "empty query", query: Query{}, want: []string{"1", "2", "3"}},
		{name: "requester", query: Query{RequesterID: "T-01"}, want: []string{"1", "3"}},
		{name: "category and status", query: Query{Category: CategoryCasual, Status: StatusRejected}, want: []string{"3"}},
		{name: "search is case insensitive", query: Query{Search: "WEDDING"}, want: []string{"2", "3"}},
		{name: "date overlap", query: Query{Dates: dateRange(t, "2025-10-15", "2025-11-03")}, want: []string{"1", "2"}},
		{name: "no match", query: Query{RequesterID: "T-02", Status: StatusPending}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(requests, tt.query)))
		})
	}
}
