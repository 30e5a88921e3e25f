package estimator

import (
	"fmt"
	"math"
	"time"

	"github.com/hako/durafmt"
)

// FieldInput is the view model for one labeled numeric input.
type FieldInput struct {
	Label string
	ID    string
	Name  string
	Value string
}

// ResultCard is the view model for one labeled result value. Value is
// already formatted for display.
type ResultCard struct {
	Title string
	Value string
	Icon  string
	Color string
	Hint  string
}

var fieldLabels = map[Field]string{
	FieldHashRate:          "Hash Rate (in TH/s)",
	FieldPowerConsumption:  "Power Consumption (in W)",
	FieldElectricityCost:   "Electricity Cost (per kWh)",
	FieldInitialInvestment: "Initial Investment (in USD)",
}

// FieldInputs returns the four inputs in form order, carrying the raw values
// from in.
func FieldInputs(in InputData) []FieldInput {
	inputs := make([]FieldInput, 0, len(Fields))
	for _, f := range Fields {
		inputs = append(inputs, FieldInput{
			Label: fieldLabels[f],
			ID:    string(f),
			Name:  string(f),
			Value: in.Get(f),
		})
	}
	return inputs
}

const (
	colorCost      = "text-indigo-600"
	colorGain      = "text-green-600"
	colorBreakeven = "text-blue-600"
	colorMine      = "text-red-600"
)

// ResultCards returns the eleven result cards in display order.
func ResultCards(r ResultData) []ResultCard {
	return []ResultCard{
		{Title: "Daily Cost", Value: usd(r.DailyCost), Icon: "💸", Color: colorCost},
		{Title: "Monthly Cost", Value: usd(r.MonthlyCost), Icon: "💰", Color: colorCost},
		{Title: "Yearly Cost", Value: usd(r.YearlyCost), Icon: "📅", Color: colorCost},
		{Title: "Daily Revenue (USD)", Value: usd(r.DailyRevenueUSD), Icon: "🔥", Color: colorGain},
		{Title: "Monthly Revenue (USD)", Value: usd(r.MonthlyRevenueUSD), Icon: "💵", Color: colorGain},
		{Title: "Yearly Revenue (USD)", Value: usd(r.YearlyRevenueUSD), Icon: "💲", Color: colorGain},
		{Title: "Daily Profit (USD)", Value: usd(r.DailyProfitUSD), Icon: "📈", Color: colorGain},
		{Title: "Monthly Profit (USD)", Value: usd(r.MonthlyProfitUSD), Icon: "💹", Color: colorGain},
		{Title: "Yearly Profit (USD)", Value: usd(r.YearlyProfitUSD), Icon: "🤑", Color: colorGain},
		{
			Title: "Breakeven Timeline",
			Value: fmt.Sprintf("%.2f months", r.BreakevenTimeline),
			Icon:  "📆",
			Color: colorBreakeven,
			Hint:  BreakevenHint(r.BreakevenTimeline),
		},
		{Title: "Cost to Mine 1 BTC", Value: usd(r.CostToMine), Icon: "⛏️", Color: colorMine},
	}
}

func usd(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// daysPerMonth matches the 30-day month the remote calculator bills with.
const daysPerMonth = 30

// maxHintMonths is 200 years. time.Duration tops out near 292 years, past
// which the conversion wraps and durafmt renders "-".
const maxHintMonths = 12 * 200

// BreakevenHint renders a breakeven timeline in months as a rough human
// duration such as "3 years 14 weeks". It returns "" for timelines that never
// break even or are too large to be meaningful.
func BreakevenHint(months float64) string {
	if math.IsNaN(months) || months <= 0 || months > maxHintMonths {
		return ""
	}

	d := time.Duration(months * daysPerMonth * float64(24*time.Hour))
	return durafmt.Parse(d).LimitFirstN(2).String()
}
