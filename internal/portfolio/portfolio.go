// Package portfolio tracks a mock portfolio of assets with an append-only
// trade history, so its value can be computed at any past instant by
// rewinding trades newer than the requested time.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is valued at face and needs no price lookup.
const BaseCurrency = "USD"

var (
	// ErrNegativeAmount is returned when a trade amount is negative.
	ErrNegativeAmount = errors.New("portfolio: asset amount must not be negative")

	// ErrInsufficientFunds is returned when a removal exceeds the holdings
	// at the trade's timestamp.
	ErrInsufficientFunds = errors.New("portfolio: insufficient holdings")
)

// PriceSource quotes an asset in the base currency at a point in time.
type PriceSource interface {
	Price(ctx context.Context, asset string, at time.Time) (decimal.Decimal, error)
}

// Trade is one signed history entry; removals carry negative amounts.
type Trade struct {
	Timestamp time.Time
	Asset     string
	Amount    decimal.Decimal
}

// ValuePoint is one sample of the portfolio's historical value.
type ValuePoint struct {
	Time  time.Time
	Value decimal.Decimal
}

// Portfolio is the mutable bookkeeping state. It is not safe for concurrent
// mutation; valuation methods only read.
type Portfolio struct {
	assets    map[string]decimal.Decimal
	history   []Trade
	createdAt time.Time
	prices    PriceSource
}

// New returns an empty portfolio quoting prices from src.
func New(src PriceSource) *Portfolio {
	return &Portfolio{
		assets:    map[string]decimal.Decimal{BaseCurrency: decimal.Zero},
		createdAt: time.Now(),
		prices:    src,
	}
}

// NewWithAssets returns a portfolio seeded with the given holdings, recorded
// as trades at the creation time.
func NewWithAssets(src PriceSource, assets map[string]decimal.Decimal, at time.Time) (*Portfolio, error) {
	p := New(src)
	p.createdAt = at

	// Deterministic seeding order.
	names := make([]string, 0, len(assets))
	for asset := range assets {
		names = append(names, asset)
	}
	sort.Strings(names)
	for _, asset := range names {
		if err := p.AddAsset(asset, assets[asset], at); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddAsset credits amount of asset at the given time.
func (p *Portfolio) AddAsset(asset string, amount decimal.Decimal, at time.Time) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeAmount, amount)
	}
	p.assets[asset] = p.assets[asset].Add(amount)
	p.history = append(p.history, Trade{Timestamp: at, Asset: asset, Amount: amount})
	return nil
}

// RemoveAsset debits amount of asset at the given time. The removal is
// checked against the holdings as of that time, not the current ones.
func (p *Portfolio) RemoveAsset(asset string, amount decimal.Decimal, at time.Time) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeAmount, amount)
	}
	held := p.holdingsAt(at)[asset]
	if held.LessThan(amount) {
		return fmt.Errorf("%w: removal of %s %s requested but only %s held", ErrInsufficientFunds, amount, asset, held)
	}
	p.assets[asset] = p.assets[asset].Sub(amount)
	p.history = append(p.history, Trade{Timestamp: at, Asset: asset, Amount: amount.Neg()})
	return nil
}

// Trade exchanges amount of fromAsset for toAsset at the exchange rate in
// effect at the given time.
func (p *Portfolio) Trade(ctx context.Context, amount decimal.Decimal, fromAsset, toAsset string, at time.Time) error {
	rate, err := p.exchangeRate(ctx, fromAsset, toAsset, at)
	if err != nil {
		return err
	}
	if err := p.RemoveAsset(fromAsset, amount, at); err != nil {
		return err
	}
	return p.AddAsset(toAsset, amount.Mul(rate), at)
}

// exchangeRate returns how many units of toAsset one unit of fromAsset buys.
func (p *Portfolio) exchangeRate(ctx context.Context, fromAsset, toAsset string, at time.Time) (decimal.Decimal, error) {
	if fromAsset == toAsset {
		return decimal.NewFromInt(1), nil
	}
	from := decimal.NewFromInt(1)
	if fromAsset != BaseCurrency {
		price, err := p.prices.Price(ctx, fromAsset, at)
		if err != nil {
			return decimal.Zero, err
		}
		from = price
	}
	to := decimal.NewFromInt(1)
	if toAsset != BaseCurrency {
		price, err := p.prices.Price(ctx, toAsset, at)
		if err != nil {
			return decimal.Zero, err
		}
		to = price
	}
	if to.IsZero() {
		return decimal.Zero, fmt.Errorf("portfolio: zero price for %s at %s", toAsset, at)
	}
	return from.Div(to), nil
}

// Value prices the whole portfolio at the given time.
func (p *Portfolio) Value(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	value := decimal.Zero
	holdings := p.holdingsAt(at)

	names := make([]string, 0, len(holdings))
	for asset := range holdings {
		names = append(names, asset)
	}
	sort.Strings(names)

	for _, asset := range names {
		v, err := p.assetValue(ctx, asset, holdings[asset], at)
		if err != nil {
			return decimal.Zero, err
		}
		value = value.Add(v)
	}
	return value, nil
}

// AssetValue prices a single holding at the given time.
func (p *Portfolio) AssetValue(ctx context.Context, asset string, at time.Time) (decimal.Decimal, error) {
	holdings := p.holdingsAt(at)
	amount, ok := holdings[asset]
	if !ok {
		return decimal.Zero, fmt.Errorf("portfolio: does not contain %s at %s", asset, at)
	}
	return p.assetValue(ctx, asset, amount, at)
}

func (p *Portfolio) assetValue(ctx context.Context, asset string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if asset == BaseCurrency {
		return amount, nil
	}
	price, err := p.prices.Price(ctx, asset, at)
	if err != nil {
		return decimal.Zero, fmt.Errorf("portfolio: pricing %s: %w", asset, err)
	}
	return price.Mul(amount), nil
}

// HistoricalValue samples the portfolio value every step between start and
// end, inclusive of start.
func (p *Portfolio) HistoricalValue(ctx context.Context, start, end time.Time, step time.Duration) ([]ValuePoint, error) {
	if step <= 0 {
		return nil, errors.New("portfolio: step must be positive")
	}
	var points []ValuePoint
	for at := start; !at.After(end); at = at.Add(step) {
		v, err := p.Value(ctx, at)
		if err != nil {
			return nil, err
		}
		points = append(points, ValuePoint{Time: at, Value: v})
	}
	return points, nil
}

// holdingsAt rewinds the trade history to the holdings in effect at the
// given time.
func (p *Portfolio) holdingsAt(at time.Time) map[string]decimal.Decimal {
	holdings := make(map[string]decimal.Decimal, len(p.assets))
	for asset, amount := range p.assets {
		holdings[asset] = amount
	}
	for i := len(p.history) - 1; i >= 0; i-- {
		trade := p.history[i]
		if trade.Timestamp.After(at) {
			remaining := holdings[trade.Asset].Sub(trade.Amount)
			if remaining.IsZero() {
				delete(holdings, trade.Asset)
			} else {
				holdings[trade.Asset] = remaining
			}
		}
	}
	return holdings
}

// Holdings returns a copy of the current holdings.
func (p *Portfolio) Holdings() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(p.assets))
	for asset, amount := range p.assets {
		out[asset] = amount
	}
	return out
}

// History returns a copy of the trade history in insertion order.
func (p *Portfolio) History() []Trade {
	out := make([]Trade, len(p.history))
	copy(out, p.history)
	return out
}
