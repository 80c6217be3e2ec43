package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCAGR(t *testing.T) {
	assert.InDelta(t, 10.0, CAGR(100, 110, 1), 1e-9)
	assert.InDelta(t, 10.0, CAGR(100, 121, 2), 1e-9)
	assert.InDelta(t, -50.0, CAGR(1, 0.5, 1), 1e-9)

	assert.Zero(t, CAGR(0, 110, 1))
	assert.Zero(t, CAGR(100, 0, 1))
	assert.Zero(t, CAGR(100, 110, 0))
	assert.Zero(t, CAGR(100, 110, -1))
}

func TestSharpeRatio(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Zero(t, SharpeRatio(nil, 0.055))
	})

	t.Run("zero deviation", func(t *testing.T) {
		assert.Zero(t, SharpeRatio([]float64{0.25, 0.25, 0.25}, 0.055))
	})

	t.Run("annualized against monthly risk free", func(t *testing.T) {
		returns := []float64{0.02, -0.01, 0.03, 0.00}
		// mean 0.01, population variance 0.00025
		rfm := math.Pow(1.055, 1.0/12) - 1
		want := (0.01 - rfm) / math.Sqrt(0.00025) * math.Sqrt(12)
		assert.InDelta(t, want, SharpeRatio(returns, 0.055), 1e-9)
	})

	t.Run("zero risk free", func(t *testing.T) {
		returns := []float64{0.1, -0.1}
		assert.InDelta(t, 0, SharpeRatio(returns, 0), 1e-12)
	})
}

func TestYearsBetween(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1461)
	assert.InDelta(t, 4.0, YearsBetween(start, end), 1e-9)
	assert.Zero(t, YearsBetween(start, start))
}
