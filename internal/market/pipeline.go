package market

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// MaxCandles is the largest number of candles the API returns per request.
// Ranges needing more are partitioned into multiple windows.
const MaxCandles = 200

// Window is one (start, end) slice of a partitioned date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// HistoricRatesPipeline fetches a candle range too large for a single
// request. Windows are fetched newest-first, matching the API's newest-first
// row order within each response.
type HistoricRatesPipeline struct {
	client      *Client
	product     string
	start, end  time.Time
	granularity int
}

// NewHistoricRatesPipeline describes a candle fetch for product over
// [start, end] at granularity seconds per candle.
func NewHistoricRatesPipeline(client *Client, product string, start, end time.Time, granularity int) *HistoricRatesPipeline {
	return &HistoricRatesPipeline{
		client:      client,
		product:     product,
		start:       start,
		end:         end,
		granularity: granularity,
	}
}

// RequestCount returns how many API calls the range needs. An empty
// range or a non-positive granularity needs none.
func (p *HistoricRatesPipeline) RequestCount() int {
	candles := p.end.Unix() - p.start.Unix()
	if candles <= 0 || p.granularity <= 0 {
		return 0
	}
	candles /= int64(p.granularity)
	count := candles / MaxCandles
	if candles%MaxCandles != 0 {
		count++
	}
	return int(count)
}

// Partition splits the range into windows of at most MaxCandles candles,
// newest window first.
func (p *HistoricRatesPipeline) Partition() []Window {
	count := p.RequestCount()
	interval := time.Duration(MaxCandles*p.granularity) * time.Second

	windows := make([]Window, 0, count)
	cursor := p.start
	for i := 0; i < count; i++ {
		windowEnd := cursor.Add(interval)
		if !windowEnd.Before(p.end) {
			windowEnd = p.end
		}
		// Prepend so the newest window leads.
		windows = append([]Window{{Start: cursor, End: windowEnd}}, windows...)
		cursor = cursor.Add(interval)
	}
	return windows
}

// Slice fetches every window and accumulates all candles in memory.
func (p *HistoricRatesPipeline) Slice(ctx context.Context) ([]Candle, error) {
	var out []Candle
	err := p.each(ctx, func(batch []Candle) error {
		out = append(out, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteCSV streams every window to w as CSV rows of
// time,low,high,open,close,volume without holding the full range in memory.
func (p *HistoricRatesPipeline) WriteCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	err := p.each(ctx, func(batch []Candle) error {
		for _, c := range batch {
			row := []string{
				strconv.FormatInt(c.Time.Unix(), 10),
				formatFloat(c.Low),
				formatFloat(c.High),
				formatFloat(c.Open),
				formatFloat(c.Close),
				formatFloat(c.Volume),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("market: writing csv row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (p *HistoricRatesPipeline) each(ctx context.Context, fn func([]Candle) error) error {
	windows := p.Partition()
	p.client.log.Info().
		Str("product", p.product).
		Int("requests", len(windows)).
		Int("granularity", p.granularity).
		Msg("fetching historic rates")

	for i, w := range windows {
		batch, err := p.client.HistoricRates(ctx, p.product, w.Start, w.End, p.granularity)
		if err != nil {
			return fmt.Errorf("market: window %d/%d: %w", i+1, len(windows), err)
		}
		p.client.log.Debug().
			Int("window", i+1).
			Int("windows", len(windows)).
			Int("candles", len(batch)).
			Msg("received data partition")
		if err := fn(batch); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
