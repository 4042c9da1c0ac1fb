package leave

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger_Reserve(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opening Balance
		days    float64
		want    Balance
		wantErr error
	}{
		{name: "within balance", opening: Days(5), days: 3, want: Days(2)},
		{name: "whole balance", opening: Days(3), days: 3, want: Days(0)},
		{name: "half day", opening: Days(1), days: 0.5, want: Days(0.5)},
		{name: "exceeds balance", opening: Days(2), days: 3, want: Days(2), wantErr: ErrInsufficientBalance},
		{name: "unlimited", opening: Unlimited, days: 365, want: Unlimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewMemoryLedger(nil)
			require.NoError(t, ledger.Set(ctx, "T-01", CategoryCasual, tt.opening))

			got, err := ledger.Reserve(ctx, "T-01", CategoryCasual, tt.days)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)

			avail, err := ledger.Available(ctx, "T-01", CategoryCasual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, avail)
		})
	}
}

func TestMemoryLedger_Reserve_insufficientLeavesBalanceUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger(nil)
	require.NoError(t, ledger.Set(ctx, "T-01", CategorySick, Days(2)))

	_, err := ledger.Reserve(ctx, "T-01", CategorySick, 3)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	bal, err := ledger.Available(ctx, "T-01", CategorySick)
	require.NoError(t, err)
	assert.Equal(t, Days(2), bal)
}

func TestMemoryLedger_Reserve_invalidDays(t *testing.T) {
	ledger := NewMemoryLedger(nil)
	for _, days := range []float64{0, -1} {
		_, err := ledger.Reserve(context.Background(), "T-01", CategoryCasual, days)
		assert.Error(t, err)
	}
}

func TestMemoryLedger_Reserve_concurrent(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger(nil)
	require.NoError(t, ledger.Set(ctx, "T-01", CategoryEarned, Days(10)))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		granted  int
		rejected int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Reserve(ctx, "T-01", CategoryEarned, 1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				granted++
			} else {
				assert.ErrorIs(t, err, ErrInsufficientBalance)
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, granted)
	assert.Equal(t, 40, rejected)
	bal, err := ledger.Available(ctx, "T-01", CategoryEarned)
	require.NoError(t, err)
	assert.Equal(t, Days(0), bal)
}

func TestMemoryLedger_keys(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger(Allowances{CategoryCasual: Days(12), CategorySick: Days(10)})

	_, err := ledger.Reserve(ctx, "T-01", CategoryHalfDay, 0.5)
	require.NoError(t, err)

	casual, _ := ledger.Available(ctx, "T-01", CategoryCasual)
	assert.Equal(t, Days(11.5), casual, "half days draw from casual leave")
	sick, _ := ledger.Available(ctx, "T-01", CategorySick)
	assert.Equal(t, Days(10), sick)
	other, _ := ledger.Available(ctx, "T-02", CategoryCasual)
	assert.Equal(t, Days(12), other)
	unknown, _ := ledger.Available(ctx, "T-01", CategoryEarned)
	assert.Equal(t, Days(0), unknown)
}

func TestMemoryLedger_Release(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger(nil)

	bal, err := ledger.Reserve(ctx, "T-01", CategoryCasual, 4)
	require.NoError(t, err)
	assert.Equal(t, Days(8), bal)

	bal, err = ledger.Release(ctx, "T-01", CategoryCasual, 4)
	require.NoError(t, err)
	assert.Equal(t, Days(12), bal)

	bal, err = ledger.Release(ctx, "T-01", CategoryUnpaid, 4)
	require.NoError(t, err)
	assert.Equal(t, Unlimited, bal)
}

func TestMemoryLedger_Set_negative(t *testing.T) {
	err := NewMemoryLedger(nil).Set(context.Background(), "T-01", CategoryCasual, Days(-1))
	assert.Error(t, err)
}

func TestAllowancesFrom(t *testing.T) {
	a := AllowancesFrom(map[string]float64{"casual": 14, "sick": -1, "half-day": 3, "bogus": 9})

	assert.Equal(t, Days(3), a[CategoryCasual], "half-day overrides apply to casual")
	assert.Equal(t, Unlimited, a[CategorySick])
	assert.Equal(t, Days(15), a[CategoryEarned])
	assert.NotContains(t, a, Category("bogus"))
	assert.Equal(t, Days(12), DefaultAllowances[CategoryCasual], "defaults are not modified")
}

func TestBalance(t *testing.T) {
	assert.True(t, Days(2).Covers(2))
	assert.False(t, Days(2).Covers(2.5))
	assert.True(t, Unlimited.Covers(1000))
	assert.Equal(t, "1.5 day(s)", Days(1.5).String())
	assert.Equal(t, "unlimited", Unlimited.String())
}
