package attendance

import (
	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/query"
)

// Query is a conjunction of optional record predicates; zero fields match everything.
type Query struct {
	Class  string          `query:"class"`
	Gender string          `query:"gender"`
	Status Status          `query:"status"`
	Bucket Bucket          `query:"bucket"`
	Search string          `query:"search"`
	Dates  query.DateRange `query:"-"`
}

func (q *Query) Clean() {
	q.Class = core.CleanString(q.Class)
	q.Gender = core.CleanString(q.Gender, true /* lower */)
	q.Status = Status(core.CleanString(string(q.Status), true /* lower */))
	q.Bucket = Bucket(core.CleanString(string(q.Bucket), true /* lower */))
	q.Search = core.CleanString(q.Search)
}

// Predicates returns one predicate per set field.
// Class and search are case-insensitive, gender, status and bucket are exact.
func (q Query) Predicates() []query.Predicate[Record] {
	var preds []query.Predicate[Record]
	if q.Class != "" {
		preds = append(preds, func(r Record) bool { return query.FoldEqual(r.Class, q.Class) })
	}
	if q.Gender != "" {
		preds = append(preds, func(r Record) bool { return r.Gender == q.Gender })
	}
	if q.Status != "" {
		preds = append(preds, func(r Record) bool { return r.Status == q.Status })
	}
	if q.Bucket != "" {
		preds = append(preds, func(r Record) bool {
			b, ok := r.Bucket()
			return ok && b == q.Bucket
		})
	}
	if q.Search != "" {
		preds = append(preds, func(r Record) bool {
			return query.FoldContains(r.Name, q.Search) ||
				query.FoldContains(r.StudentID, q.Search) ||
				query.FoldContains(r.AdmissionNo, q.Search)
		})
	}
	if !q.Dates.IsZero() {
		preds = append(preds, func(r Record) bool { return !r.Date.IsZero() && q.Dates.Contains(r.Date) })
	}
	return preds
}

// Filter returns the records matching q in their original order.
func Filter(records []Record, q Query) []Record {
	return query.Filter(records, q.Predicates()...)
}
