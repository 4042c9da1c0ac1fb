package leave

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// ErrInsufficientBalance is returned when a reservation exceeds a bounded balance.
var ErrInsufficientBalance = errors.New("insufficient leave balance")

// Balance is the remaining allowance of a (requester, category) pair.
type Balance struct {
	Days      float64 `json:"days"`
	Unlimited bool    `json:"unlimited"`
}

var Unlimited = Balance{Unlimited: true}

func Days(d float64) Balance { return Balance{Days: d} }

// Covers reports whether days can be taken from the balance.
func (b Balance) Covers(days float64) bool {
	return b.Unlimited || days <= b.Days
}

func (b Balance) String() string {
	if b.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%g day(s)", b.Days)
}

// Allowances are the opening balances of each ledger category.
type Allowances map[Category]Balance

// DefaultAllowances are the yearly allowances of the school's staff handbook.
var DefaultAllowances = Allowances{
	CategoryCasual:    Days(12),
	CategorySick:      Days(10),
	CategoryEarned:    Days(15),
	CategoryUnpaid:    Unlimited,
	CategoryMaternity: Days(90),
	CategoryPaternity: Days(15),
}

// AllowancesFrom overrides DefaultAllowances with {category: days}; negative days mean unlimited.
func AllowancesFrom(overrides map[string]float64) Allowances {
	res := make(Allowances, len(DefaultAllowances))
	for cat, bal := range DefaultAllowances {
		res[cat] = bal
	}
	for name, days := range overrides {
		cat := Category(name).LedgerCategory()
		if !cat.IsValid() {
			continue
		}
		if days < 0 {
			res[cat] = Unlimited
		} else {
			res[cat] = Days(days)
		}
	}
	return res
}

// Opening returns the allowance of cat; unknown categories start empty.
func (a Allowances) Opening(cat Category) Balance {
	return a[cat.LedgerCategory()]
}

// Ledger tracks the remaining leave days per requester and category.
// Reserve must be atomic per (requester, category): concurrent reservations never over-commit a balance.
type Ledger interface {
	Available(ctx context.Context, requesterID string, cat Category) (Balance, error)
	// Reserve takes days from the balance and returns what is left.
	// It fails with ErrInsufficientBalance, leaving the balance untouched, when days exceed a bounded balance.
	Reserve(ctx context.Context, requesterID string, cat Category, days float64) (Balance, error)
	// Release gives days back.
	Release(ctx context.Context, requesterID string, cat Category, days float64) (Balance, error)
	Set(ctx context.Context, requesterID string, cat Category, bal Balance) error
}

type ledgerKey struct {
	requesterID string
	category    Category
}

type ledgerEntry struct {
	sync.Mutex
	bal Balance
}

// MemoryLedger is an in-process Ledger serialising updates with one lock per (requester, category).
type MemoryLedger struct {
	allowances Allowances

	mu      sync.Mutex // guards entries
	entries map[ledgerKey]*ledgerEntry
}

var _ Ledger = (*MemoryLedger)(nil)

func NewMemoryLedger(allowances Allowances) *MemoryLedger {
	if allowances == nil {
		allowances = DefaultAllowances
	}
	return &MemoryLedger{
		allowances: allowances,
		entries:    make(map[ledgerKey]*ledgerEntry),
	}
}

func (l *MemoryLedger) entry(requesterID string, cat Category) *ledgerEntry {
	cat = cat.LedgerCategory()
	key := ledgerKey{requesterID: requesterID, category: cat}

	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &ledgerEntry{bal: l.allowances.Opening(cat)}
		l.entries[key] = e
	}
	return e
}

func (l *MemoryLedger) Available(_ context.Context, requesterID string, cat Category) (Balance, error) {
	e := l.entry(requesterID, cat)
	e.Lock()
	defer e.Unlock()
	return e.bal, nil
}

func (l *MemoryLedger) Reserve(_ context.Context, requesterID string, cat Category, days float64) (Balance, error) {
	if days <= 0 {
		return Balance{}, errors.Errorf("reserving %g day(s): days must be positive", days)
	}
	e := l.entry(requesterID, cat)
	e.Lock()
	defer e.Unlock()

	if !e.bal.Covers(days) {
		return e.bal, ErrInsufficientBalance
	}
	if !e.bal.Unlimited {
		e.bal.Days -= days
	}
	return e.bal, nil
}

func (l *MemoryLedger) Release(_ context.Context, requesterID string, cat Category, days float64) (Balance, error) {
	if days <= 0 {
		return Balance{}, errors.Errorf("releasing %g day(s): days must be positive", days)
	}
	e := l.entry(requesterID, cat)
	e.Lock()
	defer e.Unlock()

	if !e.bal.Unlimited {
		e.bal.Days += days
	}
	return e.bal, nil
}

func (l *MemoryLedger) Set(_ context.Context, requesterID string, cat Category, bal Balance) error {
	if !bal.Unlimited && bal.Days < 0 {
		return errors.Errorf("setting balance: %g day(s) is negative", bal.Days)
	}
	e := l.entry(requesterID, cat)
	e.Lock()
	defer e.Unlock()
	e.bal = bal
	return nil
}
