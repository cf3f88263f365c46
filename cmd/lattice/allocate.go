package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/latticelabs/go-lattice/internal/allocate"
	"github.com/latticelabs/go-lattice/internal/market"
)

var (
	allocateProducts []string
	allocateStart    string
	allocateEnd      string
	allocatePoints   int
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Search for efficient portfolio allocations",
	Long: `Fetch daily closes for the given products, estimate expected
returns and their covariance, and print portfolio allocations along the
efficient frontier from minimum variance to maximum return.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse(time.RFC3339, allocateStart)
		if err != nil {
			return fmt.Errorf("parsing --start: %w", err)
		}
		end := time.Now().UTC()
		if allocateEnd != "" {
			end, err = time.Parse(time.RFC3339, allocateEnd)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}
		}

		client := market.NewClient(market.WithLogger(log))

		// One close series per product, oldest observation first.
		series := make([][]float64, len(allocateProducts))
		for i, product := range allocateProducts {
			pipeline := market.NewHistoricRatesPipeline(client, product, start, end, 86400)
			candles, err := pipeline.Slice(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching %s: %w", product, err)
			}
			sort.Slice(candles, func(a, b int) bool { return candles[a].Time.Before(candles[b].Time) })
			closes := make([]float64, len(candles))
			for j, c := range candles {
				closes[j] = c.Close
			}
			series[i] = closes
		}

		prices, err := alignSeries(series)
		if err != nil {
			return err
		}

		problem, err := allocate.Statistics(prices)
		if err != nil {
			return err
		}
		frontier, err := allocate.EfficientFrontier(problem, allocatePoints)
		if err != nil {
			return err
		}

		fmt.Println(strings.Join(allocateProducts, "\t") + "\treturn\trisk")
		for _, a := range frontier {
			for _, w := range a.Weights {
				fmt.Printf("%.2f%%\t", w*100)
			}
			fmt.Printf("%.6f\t%.6f\n", a.Return, a.Risk)
		}
		return nil
	},
}

// alignSeries trims every close series to the shared most recent
// observations and packs them into a column-per-asset price matrix.
// Return estimation needs at least three aligned observations; shorter
// series (including an empty fetch for a future start date) are an error.
func alignSeries(series [][]float64) (*mat.Dense, error) {
	minLen := -1
	for _, closes := range series {
		if minLen < 0 || len(closes) < minLen {
			minLen = len(closes)
		}
	}
	if minLen < 3 {
		return nil, fmt.Errorf("allocate: only %d shared observations, need at least 3", minLen)
	}

	prices := mat.NewDense(minLen, len(series), nil)
	for j, closes := range series {
		offset := len(closes) - minLen
		for i := 0; i < minLen; i++ {
			prices.Set(i, j, closes[offset+i])
		}
	}
	return prices, nil
}

func init() {
	allocateCmd.Flags().StringSliceVar(&allocateProducts, "products",
		[]string{"BTC-USD", "ETH-USD", "LTC-USD"}, "products to allocate across")
	allocateCmd.Flags().StringVar(&allocateStart, "start", "", "range start (RFC 3339)")
	allocateCmd.Flags().StringVar(&allocateEnd, "end", "", "range end (RFC 3339), defaults to now")
	allocateCmd.Flags().IntVar(&allocatePoints, "points", 6, "number of frontier points")
	allocateCmd.MarkFlagRequired("start")
}
