// Package query filters and paginates in-memory record collections.
package query

import (
	"strings"
	"time"
)

// Predicate reports whether an item matches one field of a query.
type Predicate[T any] func(item T) bool

// Filter returns the items matching every predicate, in their original order.
// No predicate matches everything.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	res := make([]T, 0, len(items))
outer:
	for _, item := range items {
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				continue outer
			}
		}
		res = append(res, item)
	}
	return res
}

// FoldContains does a case-insensitive substring match. An empty needle always matches.
func FoldContains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FoldEqual does a case-insensitive comparison of trimmed strings.
func FoldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DateRange is an inclusive range of calendar days; a zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains reports whether t's calendar day is within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := truncate(t)
	if !r.From.IsZero() && day.Before(truncate(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(truncate(r.To)) {
		return false
	}
	return true
}

// Overlaps reports whether [start, end] shares at least one day with the range.
func (r DateRange) Overlaps(start, end time.Time) bool {
	if !r.From.IsZero() && truncate(end).Before(truncate(r.From)) {
		return false
	}
	if !r.To.IsZero() && truncate(start).After(truncate(r.To)) {
		return false
	}
	return true
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
