package services

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const daysPerYear = 365.25

// CAGR is the compound annual growth rate in percent. Non-positive inputs yield 0.
func CAGR(begin, end, years float64) float64 {
	if begin <= 0 || end <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(end/begin, 1/years) - 1) * 100
}

// SharpeRatio annualizes the Sharpe ratio of monthly returns against an annual
// risk free rate, using the population standard deviation.
func SharpeRatio(monthlyReturns []float64, annualRiskFreeRate float64) float64 {
	if len(monthlyReturns) == 0 {
		return 0
	}
	mean, variance := stat.PopMeanVariance(monthlyReturns, nil)
	stdDev := math.Sqrt(variance)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return 0
	}
	monthlyRiskFree := math.Pow(1+annualRiskFreeRate, 1.0/12) - 1
	return (mean - monthlyRiskFree) / stdDev * math.Sqrt(12)
}

// YearsBetween is the span between two dates in years of 365.25 days.
func YearsBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24 / daysPerYear
}
