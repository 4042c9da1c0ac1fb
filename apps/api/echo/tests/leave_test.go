package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadsami84343/ecampus/core/leave"
	"github.com/muhammadsami84343/ecampus/core/query"
)

func newLeaveBody(t *testing.T, requester, category, start, end, reason string) []byte {
	return marchallObj(t, leave.NewRequest{
		RequesterID: requester,
		Category:    leave.Category(category),
		StartDate:   start,
		EndDate:     end,
		Reason:      reason,
	})
}

func submitLeave(t *testing.T, fx fixture, body []byte) leave.Request {
	t.Helper()
	rec := fx.do(http.MethodPost, "/v1/leave", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var req leave.Request
	unmarshal(t, rec, &req)
	return req
}

func TestLeaveAPI_submit(t *testing.T) {
	fx := setup(t)

	t.Run("business days without the holiday", func(t *testing.T) {
		req := submitLeave(t, fx, newLeaveBody(t, "T01", "casual", "2025-10-14", "2025-10-20", "Family function upcountry"))
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, leave.StatusPending, req.Status)
		assert.Equal(t, 4.0, req.Duration)
		assert.Equal(t, "2025-10-14", req.StartDate.Format("2006-01-02"))
	})

	t.Run("half day", func(t *testing.T) {
		req := submitLeave(t, fx, newLeaveBody(t, "T02", "half-day", "2025-10-22", "", "Dentist appointment in town"))
		assert.Equal(t, 0.5, req.Duration)
		assert.True(t, req.EndDate.Equal(req.StartDate))
	})

	runHTTPTests(t, fx, []httpTest{
		{
			name:     "unknown category",
			method:   http.MethodPost,
			path:     "/v1/leave",
			body:     newLeaveBody(t, "T03", "vacation", "2025-10-14", "2025-10-15", "Family function upcountry"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"category":"category must be one of casual, sick, earned, unpaid, maternity, paternity or half-day"}`),
		},
		{
			name:     "short reason",
			method:   http.MethodPost,
			path:     "/v1/leave",
			body:     newLeaveBody(t, "T03", "sick", "2025-10-14", "2025-10-15", "flu"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"reason":"reason must be at least 10 characters long"}`),
		},
		{
			name:     "inverted range",
			method:   http.MethodPost,
			path:     "/v1/leave",
			body:     newLeaveBody(t, "T03", "sick", "2025-10-20", "2025-10-14", "Recovering from surgery"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"end_date":"end date must not be before start date"}`),
		},
		{
			name:     "weekend only",
			method:   http.MethodPost,
			path:     "/v1/leave",
			body:     newLeaveBody(t, "T03", "sick", "2025-10-18", "2025-10-19", "Recovering from surgery"),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"start_date":"leave range contains no working day"}`),
		},
		{
			name:     "insufficient balance",
			method:   http.MethodPost,
			path:     "/v1/leave",
			body:     newLeaveBody(t, "T03", "casual", "2025-11-03", "2025-11-21", "Extended family travel abroad"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: leave.ErrInsufficientBalance.Error()}),
		},
	})

	t.Run("overlap", func(t *testing.T) {
		rec := fx.do(http.MethodPost, "/v1/leave", newLeaveBody(t, "T01", "sick", "2025-10-16", "2025-10-17", "Recovering from surgery"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"start_date"`)
	})
}

func TestLeaveAPI_decide(t *testing.T) {
	fx := setup(t)
	req := submitLeave(t, fx, newLeaveBody(t, "T01", "casual", "2025-10-14", "2025-10-20", "Family function upcountry"))
	other := submitLeave(t, fx, newLeaveBody(t, "T02", "sick", "2025-10-14", "2025-10-15", "Recovering from surgery"))

	t.Run("approve", func(t *testing.T) {
		rec := fx.do(http.MethodPost, "/v1/leave/"+req.ID+"/approve", []byte(`{"decided_by":"HR01","remarks":"ok"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got leave.Request
		unmarshal(t, rec, &got)
		assert.Equal(t, leave.StatusApproved, got.Status)
		assert.Equal(t, "HR01", got.DecidedBy)
		assert.NotNil(t, got.DecidedAt)
	})

	t.Run("reject without body", func(t *testing.T) {
		rec := fx.do(http.MethodPost, "/v1/leave/"+other.ID+"/reject")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got leave.Request
		unmarshal(t, rec, &got)
		assert.Equal(t, leave.StatusRejected, got.Status)
	})

	notPending := marchallObj(t, httpErr{Error: leave.ErrNotPending.Error()})
	runHTTPTests(t, fx, []httpTest{
		{
			name:     "approve twice",
			method:   http.MethodPost,
			path:     "/v1/leave/" + req.ID + "/approve",
			wantCode: http.StatusConflict,
			wantData: notPending,
		},
		{
			name:     "reject approved",
			method:   http.MethodPost,
			path:     "/v1/leave/" + req.ID + "/reject",
			wantCode: http.StatusConflict,
			wantData: notPending,
		},
		{
			name:     "unknown request",
			method:   http.MethodPost,
			path:     "/v1/leave/nope/approve",
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error":"leave request not found"}`),
		},
		{
			name:     "get unknown request",
			method:   http.MethodGet,
			path:     "/v1/leave/nope",
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error":"leave request not found"}`),
		},
		{
			name:     "balances",
			method:   http.MethodGet,
			path:     "/v1/leave/balances/T01",
			wantCode: http.StatusOK,
			wantData: []byte(`{
				"requester_id": "T01",
				"balances": {
					"casual": {"days": 8, "unlimited": false},
					"sick": {"days": 10, "unlimited": false},
					"earned": {"days": 15, "unlimited": false},
					"unpaid": {"days": 0, "unlimited": true},
					"maternity": {"days": 90, "unlimited": false},
					"paternity": {"days": 15, "unlimited": false}
				}
			}`),
		},
	})

	t.Run("get", func(t *testing.T) {
		rec := fx.do(http.MethodGet, "/v1/leave/"+req.ID)
		require.Equal(t, http.StatusOK, rec.Code)
		var got leave.Request
		unmarshal(t, rec, &got)
		assert.Equal(t, req.ID, got.ID)
		assert.Equal(t, leave.StatusApproved, got.Status)
	})
}

func TestLeaveAPI_query(t *testing.T) {
	fx := setup(t)
	for i, start := range []string{"2025-10-06", "2025-10-13", "2025-10-27"} {
		submitLeave(t, fx, newLeaveBody(t, fmt.Sprintf("T0%d", i+1), "sick", start, start, "Medical check up appointment"))
	}
	submitLeave(t, fx, newLeaveBody(t, "T04", "earned", "2025-10-06", "2025-10-07", "Visiting relatives abroad"))

	tests := []struct {
		name      string
		path      string
		wantItems int
		wantTotal int
		wantPages int
	}{
		{name: "first page", path: "/v1/leave?page_size=2", wantItems: 2, wantTotal: 4, wantPages: 2},
		{name: "last page", path: "/v1/leave?page=2&page_size=2", wantItems: 2, wantTotal: 4, wantPages: 2},
		{name: "beyond last page", path: "/v1/leave?page=3&page_size=2", wantItems: 0, wantTotal: 4, wantPages: 2},
		{name: "category", path: "/v1/leave?category=SICK", wantItems: 3, wantTotal: 3, wantPages: 1},
		{name: "requester", path: "/v1/leave?requester_id=T04", wantItems: 1, wantTotal: 1, wantPages: 1},
		{name: "date range", path: "/v1/leave?from=2025-10-07&to=2025-10-13", wantItems: 2, wantTotal: 2, wantPages: 1},
		{name: "no match", path: "/v1/leave?status=approved", wantItems: 0, wantTotal: 0, wantPages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fx.do(http.MethodGet, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var page query.Page[leave.Request]
			unmarshal(t, rec, &page)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantTotal, page.TotalItems)
			assert.Equal(t, tt.wantPages, page.TotalPages)
		})
	}

	runHTTPTests(t, fx, []httpTest{
		{
			name:     "invalid page",
			method:   http.MethodGet,
			path:     "/v1/leave?page=0",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"page":"page must be at least 1"}`),
		},
		{
			name:     "page size too big",
			method:   http.MethodGet,
			path:     "/v1/leave?page_size=500",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"page_size":"page_size must be between 1 and 50"}`),
		},
		{
			name:     "malformed page",
			method:   http.MethodGet,
			path:     "/v1/leave?page=two",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"page":"invalid value \"two\""}`),
		},
		{
			name:     "malformed date",
			method:   http.MethodGet,
			path:     "/v1/leave?from=14-10-2025",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"from":"invalid value \"14-10-2025\""}`),
		},
	})
}
