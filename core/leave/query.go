package leave

import (
	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/query"
)

type Query struct {
	RequesterID string          `query:"requester_id"`
	Category    Category        `query:"category"`
	Status      Status          `query:"status"`
	Search      string          `query:"search"`
	Dates       query.DateRange `query:"-"`
}

func (q *Query) Clean() {
	q.RequesterID = core.CleanString(q.RequesterID)
	q.Category = Category(core.CleanString(string(q.Category), true /* lower */))
	q.Status = Status(core.CleanString(string(q.Status), true /* lower */))
	q.Search = core.CleanString(q.Search)
}

// Predicates returns one predicate per set field; Dates matches requests overlapping the range.
func (q Query) Predicates() []query.Predicate[Request] {
	var preds []query.Predicate[Request]
	if q.RequesterID != "" {
		preds = append(preds, func(r Request) bool { return r.RequesterID == q.RequesterID })
	}
	if q.Category != "" {
		preds = append(preds, func(r Request) bool { return r.Category == q.Category })
	}
	if q.Status != "" {
		preds = append(preds, func(r Request) bool { return r.Status == q.Status })
	}
	if q.Search != "" {
		preds = append(preds, func(r Request) bool { return query.FoldContains(r.Reason, q.Search) })
	}
	if !q.Dates.IsZero() {
		preds = append(preds, func(r Request) bool { return q.Dates.Overlaps(r.StartDate, r.EndDate) })
	}
	return preds
}

func Filter(requests []Request, q Query) []Request {
	return query.Filter(requests, q.Predicates()...)
}
