package upstream

import (
	"fmt"

	"mining-cost-calculator/internal/estimator"
	"mining-cost-calculator/internal/jsonx"
)

// wireResult mirrors estimator.ResultData with pointer fields so that absent
// and null values can be told apart from zero.
type wireResult struct {
	DailyCost         *float64 `json:"dailyCost"`
	MonthlyCost       *float64 `json:"monthlyCost"`
	YearlyCost        *float64 `json:"yearlyCost"`
	DailyRevenueUSD   *float64 `json:"dailyRevenueUSD"`
	MonthlyRevenueUSD *float64 `json:"monthlyRevenueUSD"`
	YearlyRevenueUSD  *float64 `json:"yearlyRevenueUSD"`
	DailyProfitUSD    *float64 `json:"dailyProfitUSD"`
	MonthlyProfitUSD  *float64 `json:"monthlyProfitUSD"`
	YearlyProfitUSD   *float64 `json:"yearlyProfitUSD"`
	BreakevenTimeline *float64 `json:"breakevenTimeline"`
	CostToMine        *float64 `json:"costToMine"`
}

// DecodeResult parses a /calculate response body. Every one of the eleven
// result fields must be present and numeric; unknown keys are ignored.
// Failures wrap estimator.ErrMalformedResponse.
func DecodeResult(body []byte) (estimator.ResultData, error) {
	var w wireResult
	if err := jsonx.Unmarshal(body, &w); err != nil {
		return estimator.ResultData{}, fmt.Errorf("%w: %v", estimator.ErrMalformedResponse, err)
	}

	var r estimator.ResultData
	fields := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"dailyCost", w.DailyCost, &r.DailyCost},
		{"monthlyCost", w.MonthlyCost, &r.MonthlyCost},
		{"yearlyCost", w.YearlyCost, &r.YearlyCost},
		{"dailyRevenueUSD", w.DailyRevenueUSD, &r.DailyRevenueUSD},
		{"monthlyRevenueUSD", w.MonthlyRevenueUSD, &r.MonthlyRevenueUSD},
		{"yearlyRevenueUSD", w.YearlyRevenueUSD, &r.YearlyRevenueUSD},
		{"dailyProfitUSD", w.DailyProfitUSD, &r.DailyProfitUSD},
		{"monthlyProfitUSD", w.MonthlyProfitUSD, &r.MonthlyProfitUSD},
		{"yearlyProfitUSD", w.YearlyProfitUSD, &r.YearlyProfitUSD},
		{"breakevenTimeline", w.BreakevenTimeline, &r.BreakevenTimeline},
		{"costToMine", w.CostToMine, &r.CostToMine},
	}

	for _, f := range fields {
		if f.src == nil {
			return estimator.ResultData{}, fmt.Errorf("%w: missing numeric field %q", estimator.ErrMalformedResponse, f.name)
		}
		*f.dst = *f.src
	}

	return r, nil
}
