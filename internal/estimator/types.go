package estimator

// Field names one of the four mining parameters collected by the form.
type Field string

const (
	FieldHashRate          Field = "hash_rate"
	FieldPowerConsumption  Field = "power_consumption"
	FieldElectricityCost   Field = "electricity_cost"
	FieldInitialInvestment Field = "initial_investment"
)

// Fields lists the form fields in display and validation order.
var Fields = []Field{
	FieldHashRate,
	FieldPowerConsumption,
	FieldElectricityCost,
	FieldInitialInvestment,
}

// ParseField returns the Field for a form name, or false if it is not one of
// the four known parameters.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// InputData holds the raw strings exactly as typed by the user.
type InputData struct {
	HashRate          string `json:"hash_rate"`
	PowerConsumption  string `json:"power_consumption"`
	ElectricityCost   string `json:"electricity_cost"`
	InitialInvestment string `json:"initial_investment"`
}

// Get returns the raw value of f.
func (in InputData) Get(f Field) string {
	switch f {
	case FieldHashRate:
		return in.HashRate
	case FieldPowerConsumption:
		return in.PowerConsumption
	case FieldElectricityCost:
		return in.ElectricityCost
	case FieldInitialInvestment:
		return in.InitialInvestment
	}
	return ""
}

// With returns a copy of in with f set to value.
func (in InputData) With(f Field, value string) InputData {
	switch f {
	case FieldHashRate:
		in.HashRate = value
	case FieldPowerConsumption:
		in.PowerConsumption = value
	case FieldElectricityCost:
		in.ElectricityCost = value
	case FieldInitialInvestment:
		in.InitialInvestment = value
	}
	return in
}

// CalculateRequest is the JSON body sent to the remote /calculate endpoint.
type CalculateRequest struct {
	HashRate          float64 `json:"hash_rate"`
	PowerConsumption  float64 `json:"power_consumption"`
	ElectricityCost   float64 `json:"electricity_cost"`
	InitialInvestment float64 `json:"initial_investment"`
}

// ResultData is the remote calculation result. All amounts are USD except
// BreakevenTimeline, which is in months.
type ResultData struct {
	DailyCost         float64 `json:"dailyCost"`
	MonthlyCost       float64 `json:"monthlyCost"`
	YearlyCost        float64 `json:"yearlyCost"`
	DailyRevenueUSD   float64 `json:"dailyRevenueUSD"`
	MonthlyRevenueUSD float64 `json:"monthlyRevenueUSD"`
	YearlyRevenueUSD  float64 `json:"yearlyRevenueUSD"`
	DailyProfitUSD    float64 `json:"dailyProfitUSD"`
	MonthlyProfitUSD  float64 `json:"monthlyProfitUSD"`
	YearlyProfitUSD   float64 `json:"yearlyProfitUSD"`
	BreakevenTimeline float64 `json:"breakevenTimeline"`
	CostToMine        float64 `json:"costToMine"`
}
