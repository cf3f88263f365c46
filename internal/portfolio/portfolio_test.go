package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPrices quotes every asset at a constant price.
type fixedPrices map[string]string

func (f fixedPrices) Price(_ context.Context, asset string, _ time.Time) (decimal.Decimal, error) {
	return decimal.NewFromString(f[asset])
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	t0 = time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 = t0.Add(24 * time.Hour)
	t2 = t0.Add(48 * time.Hour)
)

func TestAddAsset(t *testing.T) {
	p := New(fixedPrices{})

	require.NoError(t, p.AddAsset("USD", dec("10000"), t0))
	assert.True(t, p.Holdings()["USD"].Equal(dec("10000")))

	history := p.History()
	require.Len(t, history, 1)
	assert.Equal(t, "USD", history[0].Asset)
	assert.True(t, history[0].Amount.Equal(dec("10000")))

	err := p.AddAsset("USD", dec("-1"), t0)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestNewWithAssets(t *testing.T) {
	p, err := NewWithAssets(fixedPrices{}, map[string]decimal.Decimal{
		"USD": dec("10000"),
	}, t0)
	require.NoError(t, err)

	v, err := p.Value(context.Background(), t0)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("10000")))
}

func TestValueBackdates(t *testing.T) {
	ctx := context.Background()
	prices := fixedPrices{"BTC": "1000", "ETH": "10"}

	p, err := NewWithAssets(prices, map[string]decimal.Decimal{"USD": dec("10000")}, t0)
	require.NoError(t, err)
	require.NoError(t, p.AddAsset("BTC", dec("2"), t1))
	require.NoError(t, p.AddAsset("ETH", dec("100"), t2))

	// Before any crypto was added, only the seed USD counts.
	v, err := p.Value(ctx, t0)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("10000")), "value at t0 = %s", v)

	// After BTC but before ETH.
	v, err = p.Value(ctx, t1)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("12000")), "value at t1 = %s", v)

	// Everything.
	v, err = p.Value(ctx, t2)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("13000")), "value at t2 = %s", v)
}

func TestAssetValue(t *testing.T) {
	ctx := context.Background()
	prices := fixedPrices{"BTC": "1000"}

	p := New(prices)
	require.NoError(t, p.AddAsset("BTC", dec("2"), t1))

	v, err := p.AssetValue(ctx, "BTC", t1)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("2000")))

	// BTC did not exist at t0.
	_, err = p.AssetValue(ctx, "BTC", t0)
	assert.Error(t, err)
}

func TestRemoveAsset(t *testing.T) {
	p := New(fixedPrices{})
	require.NoError(t, p.AddAsset("USD", dec("100"), t0))

	require.NoError(t, p.RemoveAsset("USD", dec("40"), t1))
	assert.True(t, p.Holdings()["USD"].Equal(dec("60")))

	err := p.RemoveAsset("USD", dec("100"), t1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	err = p.RemoveAsset("USD", dec("-5"), t1)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestRemoveAssetChecksBackdatedHoldings(t *testing.T) {
	p := New(fixedPrices{})
	require.NoError(t, p.AddAsset("USD", dec("100"), t2))

	// At t1 the deposit has not happened yet.
	err := p.RemoveAsset("USD", dec("50"), t1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestTrade(t *testing.T) {
	ctx := context.Background()
	prices := fixedPrices{"BTC": "1000"}

	p, err := NewWithAssets(prices, map[string]decimal.Decimal{"USD": dec("5000")}, t0)
	require.NoError(t, err)

	// 2000 USD buys 2 BTC at 1000 USD/BTC.
	require.NoError(t, p.Trade(ctx, dec("2000"), "USD", "BTC", t1))
	assert.True(t, p.Holdings()["USD"].Equal(dec("3000")))
	assert.True(t, p.Holdings()["BTC"].Equal(dec("2")))

	// Selling 1 BTC returns 1000 USD.
	require.NoError(t, p.Trade(ctx, dec("1"), "BTC", "USD", t2))
	assert.True(t, p.Holdings()["USD"].Equal(dec("4000")))
	assert.True(t, p.Holdings()["BTC"].Equal(dec("1")))
}

func TestHistoricalValue(t *testing.T) {
	ctx := context.Background()
	prices := fixedPrices{"BTC": "1000"}

	p, err := NewWithAssets(prices, map[string]decimal.Decimal{"USD": dec("1000")}, t0)
	require.NoError(t, err)
	require.NoError(t, p.AddAsset("BTC", dec("1"), t1))

	points, err := p.HistoricalValue(ctx, t0, t2, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.True(t, points[0].Value.Equal(dec("1000")))
	assert.True(t, points[1].Value.Equal(dec("2000")))
	assert.True(t, points[2].Value.Equal(dec("2000")))

	_, err = p.HistoricalValue(ctx, t0, t2, 0)
	assert.Error(t, err)
}
