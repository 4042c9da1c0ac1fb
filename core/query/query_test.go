package query

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type student struct {
	name   string
	class  string
	gender string
}

var students = []student{
	{name: "Amani", class: "Grade 5A", gender: "female"},
	{name: "Baraka", class: "grade 5a", gender: "male"},
	{name: "Chausiku", class: "Grade 6B", gender: "female"},
	{name: "Dalila", class: "Grade 5A", gender: "female"},
	{name: "Erasto", class: "Grade 6B", gender: "male"},
}

func byClass(class string) Predicate[student] {
	return func(s student) bool { return FoldEqual(s.class, class) }
}

func byGender(gender string) Predicate[student] {
	return func(s student) bool { return s.gender == gender }
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		preds []Predicate[student]
		want  []string
	}{
		{name: "no predicates", want: []string{"Amani", "Baraka", "Chausiku", "Dalila", "Erasto"}},
		{name: "nil predicate ignored", preds: []Predicate[student]{nil}, want: []string{"Amani", "Baraka", "Chausiku", "Dalila", "Erasto"}},
		{name: "class (case-insensitive)", preds: []Predicate[student]{byClass("GRADE 5A")}, want: []string{"Amani", "Baraka", "Dalila"}},
		{name: "class and gender", preds: []Predicate[student]{byClass("grade 5a"), byGender("female")}, want: []string{"Amani", "Dalila"}},
		{name: "gender is exact", preds: []Predicate[student]{byGender("Male")}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(students, tt.preds...)
			names := make([]string, 0, len(got))
			for _, s := range got {
				names = append(names, s.name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilter_idempotent(t *testing.T) {
	preds := []Predicate[student]{byClass("grade 6b"), byGender("male")}
	once := Filter(students, preds...)
	assert.Equal(t, once, Filter(once, preds...))
}

func TestFilter_empty(t *testing.T) {
	got := Filter[student](nil, byGender("male"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 5, TotalPages(5, 1))
	assert.Panics(t, func() { TotalPages(5, 0) })
	assert.Panics(t, func() { Paginate(students, 1, -1) })
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		wantLen   int
		wantTotal int
	}{
		{name: "first page", page: 1, size: 2, wantLen: 2, wantTotal: 3},
		{name: "last partial page", page: 3, size: 2, wantLen: 1, wantTotal: 3},
		{name: "beyond last page", page: 4, size: 2, wantLen: 0, wantTotal: 3},
		{name: "page zero", page: 0, size: 2, wantLen: 0, wantTotal: 3},
		{name: "single page", page: 1, size: 50, wantLen: 5, wantTotal: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(students, tt.page, tt.size)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantTotal, p.TotalPages)
			assert.Equal(t, len(students), p.TotalItems)
		})
	}
}

func TestPaginate_empty(t *testing.T) {
	p := Paginate([]student{}, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}

func TestPaginate_roundTrip(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	for size := 1; size <= 30; size++ {
		t.Run("size="+strconv.Itoa(size), func(t *testing.T) {
			var rebuilt []int
			total := TotalPages(len(items), size)
			for page := 1; page <= total; page++ {
				rebuilt = append(rebuilt, Paginate(items, page, size).Items...)
			}
			assert.Equal(t, items, rebuilt)
		})
	}
}

func TestPaginate_itemsCannotGrowIntoNextPage(t *testing.T) {
	items := []int{1, 2, 3, 4}
	p := Paginate(items, 1, 2)
	_ = append(p.Items, 99)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}

func TestDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC) }
	r := DateRange{From: day(10), To: day(20)}

	assert.True(t, DateRange{}.IsZero())
	assert.True(t, r.Contains(day(10)))
	assert.True(t, r.Contains(day(20).Add(23*time.Hour)))
	assert.False(t, r.Contains(day(21)))
	assert.True(t, DateRange{From: day(10)}.Contains(day(30)))

	assert.True(t, r.Overlaps(day(5), day(10)))
	assert.False(t, r.Overlaps(day(1), day(9)))
	assert.True(t, r.Overlaps(day(1), day(30)))
}

func TestFoldContains(t *testing.T) {
	assert.True(t, FoldContains("Grade 5A", "5a"))
	assert.True(t, FoldContains("anything", "  "))
	assert.False(t, FoldContains("Grade 5A", "6b"))
}
