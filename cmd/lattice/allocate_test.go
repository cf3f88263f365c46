package main

import (
	"testing"
)

func TestAlignSeriesEmptyFetch(t *testing.T) {
	// A future start date yields zero candles for every product; the
	// alignment must refuse instead of building a zero-row matrix.
	_, err := alignSeries([][]float64{{}, {}, {}})
	if err == nil {
		t.Fatal("alignSeries accepted empty series")
	}
}

func TestAlignSeriesTooShort(t *testing.T) {
	_, err := alignSeries([][]float64{{1, 2}, {3, 4, 5}})
	if err == nil {
		t.Fatal("alignSeries accepted a two-observation series")
	}
}

func TestAlignSeriesTrimsToSharedTail(t *testing.T) {
	prices, err := alignSeries([][]float64{
		{10, 11, 12, 13},
		{20, 21, 22},
	})
	if err != nil {
		t.Fatalf("alignSeries failed: %v", err)
	}

	rows, cols := prices.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("dims = (%d, %d), want (3, 2)", rows, cols)
	}
	// The longer series loses its oldest observation.
	if got := prices.At(0, 0); got != 11 {
		t.Fatalf("prices[0][0] = %v, want 11", got)
	}
	if got := prices.At(2, 1); got != 22 {
		t.Fatalf("prices[2][1] = %v, want 22", got)
	}
}
