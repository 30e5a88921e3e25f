// Package estimatortest provides a scripted Calculator and a sample result
// for tests of packages built on the estimator.
package estimatortest

import (
	"context"
	"sync"

	"mining-cost-calculator/internal/estimator"
)

// SampleResult is the result used across tests for the 110 TH/s, 3250 W,
// $0.08/kWh, $5000 scenario.
var SampleResult = estimator.ResultData{
	DailyCost:         6.24,
	MonthlyCost:       187.2,
	YearlyCost:        2277.6,
	DailyRevenueUSD:   10.5,
	MonthlyRevenueUSD: 315,
	YearlyRevenueUSD:  3832.5,
	DailyProfitUSD:    4.26,
	MonthlyProfitUSD:  127.8,
	YearlyProfitUSD:   1554.9,
	BreakevenTimeline: 39.2,
	CostToMine:        28500,
}

// FakeCalculator records calls and answers with Result or Err. When Block is
// set, each call waits for it to be closed or for ctx to end.
type FakeCalculator struct {
	Result estimator.ResultData
	Err    error
	Block  chan struct{}

	mu       sync.Mutex
	requests []estimator.CalculateRequest
}

func (f *FakeCalculator) Calculate(ctx context.Context, req estimator.CalculateRequest) (estimator.ResultData, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return estimator.ResultData{}, ctx.Err()
		}
	}

	if f.Err != nil {
		return estimator.ResultData{}, f.Err
	}
	return f.Result, nil
}

// Requests returns a copy of every request received so far.
func (f *FakeCalculator) Requests() []estimator.CalculateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]estimator.CalculateRequest(nil), f.requests...)
}
