package estimator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports the first form field that is blank, not a number,
// or not strictly positive.
type ValidationError struct {
	Field Field
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Please enter a valid positive number for %s", strings.Replace(string(e.Field), "_", " ", 1))
}

// Validate checks every field in order and converts the input into the
// request body sent upstream. It stops at the first invalid field.
func Validate(in InputData) (CalculateRequest, error) {
	values := make(map[Field]float64, len(Fields))

	for _, f := range Fields {
		raw := in.Get(f)
		v, ok := parsePositive(raw)
		if !ok {
			return CalculateRequest{}, &ValidationError{Field: f, Value: raw}
		}
		values[f] = v
	}

	return CalculateRequest{
		HashRate:          values[FieldHashRate],
		PowerConsumption:  values[FieldPowerConsumption],
		ElectricityCost:   values[FieldElectricityCost],
		InitialInvestment: values[FieldInitialInvestment],
	}, nil
}

func parsePositive(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	// ParseFloat also reads hex floats such as "0x1p4"; only decimal is valid.
	if digits := strings.TrimLeft(s, "+-"); strings.HasPrefix(strings.ToLower(digits), "0x") {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
