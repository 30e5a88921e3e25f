package upstream

import (
	"errors"
	"strings"
	"testing"

	"mining-cost-calculator/internal/estimator"
)

const sampleBody = `{"dailyCost":6.24,"monthlyCost":187.2,"yearlyCost":2277.6,` +
	`"dailyRevenueUSD":10.5,"monthlyRevenueUSD":315,"yearlyRevenueUSD":3832.5,` +
	`"dailyProfitUSD":4.26,"monthlyProfitUSD":127.8,"yearlyProfitUSD":1554.9,` +
	`"breakevenTimeline":39.2,"costToMine":28500}`

var resultKeys = []string{
	"dailyCost", "monthlyCost", "yearlyCost",
	"dailyRevenueUSD", "monthlyRevenueUSD", "yearlyRevenueUSD",
	"dailyProfitUSD", "monthlyProfitUSD", "yearlyProfitUSD",
	"breakevenTimeline", "costToMine",
}

func TestDecodeResultReadsAllFields(t *testing.T) {
	r, err := DecodeResult([]byte(sampleBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := estimator.ResultData{
		DailyCost: 6.24, MonthlyCost: 187.2, YearlyCost: 2277.6,
		DailyRevenueUSD: 10.5, MonthlyRevenueUSD: 315, YearlyRevenueUSD: 3832.5,
		DailyProfitUSD: 4.26, MonthlyProfitUSD: 127.8, YearlyProfitUSD: 1554.9,
		BreakevenTimeline: 39.2, CostToMine: 28500,
	}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestDecodeResultIgnoresExtraKeys(t *testing.T) {
	body := strings.Replace(sampleBody, "{", `{"dailyRevenueBTC":0.00015,"monthlyRevenueBTC":0.0045,`, 1)

	r, err := DecodeResult([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.CostToMine != 28500 {
		t.Fatalf("expected cost to mine 28500, got %g", r.CostToMine)
	}
}

func TestDecodeResultAcceptsZeroAndNegativeValues(t *testing.T) {
	body := strings.Replace(sampleBody, `"dailyProfitUSD":4.26`, `"dailyProfitUSD":-1.5`, 1)
	body = strings.Replace(body, `"dailyCost":6.24`, `"dailyCost":0`, 1)

	r, err := DecodeResult([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DailyProfitUSD != -1.5 || r.DailyCost != 0 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestDecodeResultMissingFieldIsMalformed(t *testing.T) {
	for _, key := range resultKeys {
		t.Run(key, func(t *testing.T) {
			body := removeKey(t, sampleBody, key)

			_, err := DecodeResult([]byte(body))
			if !errors.Is(err, estimator.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("expected error to name %q, got %v", key, err)
			}
		})
	}
}

func TestDecodeResultNonNumericFieldIsMalformed(t *testing.T) {
	for _, key := range resultKeys {
		for _, v := range []string{`"6.24"`, `null`, `true`, `{}`} {
			t.Run(key+"="+v, func(t *testing.T) {
				body := removeKey(t, sampleBody, key)
				body = strings.Replace(body, "{", `{"`+key+`":`+v+`,`, 1)

				_, err := DecodeResult([]byte(body))
				if !errors.Is(err, estimator.ErrMalformedResponse) {
					t.Fatalf("expected ErrMalformedResponse, got %v", err)
				}
			})
		}
	}
}

func TestDecodeResultRejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `[]`, `42`, `not json`, `{"dailyCost":`} {
		if _, err := DecodeResult([]byte(body)); !errors.Is(err, estimator.ErrMalformedResponse) {
			t.Fatalf("DecodeResult(%q): expected ErrMalformedResponse, got %v", body, err)
		}
	}
}

// removeKey drops "key":value from the flat sample body.
func removeKey(t *testing.T, body, key string) string {
	t.Helper()

	start := strings.Index(body, `"`+key+`":`)
	if start < 0 {
		t.Fatalf("key %q not in body", key)
	}
	end := strings.IndexAny(body[start:], ",}")
	out := body[:start] + body[start+end:]
	out = strings.Replace(out, "{,", "{", 1)
	out = strings.Replace(out, ",,", ",", 1)
	out = strings.Replace(out, ",}", "}", 1)
	return out
}
