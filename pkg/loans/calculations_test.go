package loans

import (
	"errors"
	"math"
	"testing"
)

// mortgageTerms is the 1400k 5.5% 30 year loan with 4k extra for 5 years.
func mortgageTerms() LoanTerms {
	return LoanTerms{
		Principal:          1400,
		PeriodicRate:       0.055 / 12,
		NumPeriods:         360,
		NumEarlyPeriods:    60,
		EarlyPaymentAmount: 4,
	}
}

func TestCalculatePeriodicPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		periodicRate  float64
		numPeriods    int
		expectedRange []float64 // [min, max] expected range
	}{
		{
			name:          "Standard 30-year mortgage",
			principal:     240000,
			periodicRate:  0.06 / 12,
			numPeriods:    360,
			expectedRange: []float64{1438, 1440}, // Around $1438.92
		},
		{
			name:          "5-year car loan",
			principal:     20000,
			periodicRate:  0.04 / 12,
			numPeriods:    60,
			expectedRange: []float64{368, 369}, // Around $368.33
		},
		{
			name:          "High interest loan",
			principal:     10000,
			periodicRate:  0.18 / 12,
			numPeriods:    36,
			expectedRange: []float64{361, 362}, // Around $361.52
		},
		{
			name:          "Mortgage in thousands",
			principal:     1400,
			periodicRate:  0.055 / 12,
			numPeriods:    360,
			expectedRange: []float64{7.94, 7.96}, // Around 7.949
		},
		{
			name:          "Single period",
			principal:     1000,
			periodicRate:  0.01,
			numPeriods:    1,
			expectedRange: []float64{1009.99, 1010.01}, // Principal plus one period of interest
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePeriodicPayment(tt.principal, tt.periodicRate, tt.numPeriods)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculatePeriodicPayment() = %.4f, expected range [%.4f, %.4f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestLoanTermsValidate(t *testing.T) {
	valid := mortgageTerms()

	tests := []struct {
		name      string
		modify    func(*LoanTerms)
		wantError bool
	}{
		{name: "Valid terms", modify: func(*LoanTerms) {}},
		{name: "No early window", modify: func(lt *LoanTerms) { lt.NumEarlyPeriods = 0; lt.EarlyPaymentAmount = 0 }},
		{name: "Early window covers term", modify: func(lt *LoanTerms) { lt.NumEarlyPeriods = lt.NumPeriods }},
		{name: "Zero principal", modify: func(lt *LoanTerms) { lt.Principal = 0 }, wantError: true},
		{name: "Negative principal", modify: func(lt *LoanTerms) { lt.Principal = -1 }, wantError: true},
		{name: "NaN principal", modify: func(lt *LoanTerms) { lt.Principal = math.NaN() }, wantError: true},
		{name: "Zero rate", modify: func(lt *LoanTerms) { lt.PeriodicRate = 0 }, wantError: true},
		{name: "Negative rate", modify: func(lt *LoanTerms) { lt.PeriodicRate = -0.01 }, wantError: true},
		{name: "Infinite rate", modify: func(lt *LoanTerms) { lt.PeriodicRate = math.Inf(1) }, wantError: true},
		{name: "Zero periods", modify: func(lt *LoanTerms) { lt.NumPeriods = 0; lt.NumEarlyPeriods = 0 }, wantError: true},
		{name: "Negative early periods", modify: func(lt *LoanTerms) { lt.NumEarlyPeriods = -1 }, wantError: true},
		{name: "Early periods exceed term", modify: func(lt *LoanTerms) { lt.NumEarlyPeriods = 361 }, wantError: true},
		{name: "Negative early amount", modify: func(lt *LoanTerms) { lt.EarlyPaymentAmount = -4 }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := valid
			tt.modify(&terms)
			err := terms.Validate()
			if tt.wantError {
				if !errors.Is(err, ErrInvalidLoanTerms) {
					t.Errorf("Validate() error = %v, expected ErrInvalidLoanTerms", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestZeroRateIsRejected(t *testing.T) {
	terms := LoanTerms{Principal: 100, PeriodicRate: 0, NumPeriods: 12}

	if _, err := terms.Payment(); !errors.Is(err, ErrInvalidLoanTerms) {
		t.Errorf("Payment() error = %v, expected ErrInvalidLoanTerms", err)
	}
	if _, err := ComputeCumulative(terms); !errors.Is(err, ErrInvalidLoanTerms) {
		t.Errorf("ComputeCumulative() error = %v, expected ErrInvalidLoanTerms", err)
	}
	if _, err := ComputePeriodic(terms); !errors.Is(err, ErrInvalidLoanTerms) {
		t.Errorf("ComputePeriodic() error = %v, expected ErrInvalidLoanTerms", err)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name              string
		balance           float64
		early             bool
		expectedInterest  float64
		expectedPrincipal float64
		expectedBalance   float64
	}{
		{
			name:              "Regular period",
			balance:           1000,
			expectedInterest:  10,
			expectedPrincipal: 40,
			expectedBalance:   960,
		},
		{
			name:              "Early period adds extra principal",
			balance:           1000,
			early:             true,
			expectedInterest:  10,
			expectedPrincipal: 140,
			expectedBalance:   860,
		},
		{
			name:              "Overshoot is not clamped",
			balance:           100,
			early:             true,
			expectedInterest:  1,
			expectedPrincipal: 149,
			expectedBalance:   -49,
		},
		{
			name:              "Zero balance pays nothing",
			balance:           0,
			early:             true,
			expectedInterest:  0,
			expectedPrincipal: 0,
			expectedBalance:   0,
		},
		{
			name:              "Negative balance is held",
			balance:           -49,
			expectedInterest:  0,
			expectedPrincipal: 0,
			expectedBalance:   -49,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interest, principal, balance := Step(tt.balance, 0.01, 50, tt.early, 100)

			if math.Abs(interest-tt.expectedInterest) > 1e-9 {
				t.Errorf("Step() interest = %.4f, expected %.4f", interest, tt.expectedInterest)
			}
			if math.Abs(principal-tt.expectedPrincipal) > 1e-9 {
				t.Errorf("Step() principal = %.4f, expected %.4f", principal, tt.expectedPrincipal)
			}
			if math.Abs(balance-tt.expectedBalance) > 1e-9 {
				t.Errorf("Step() balance = %.4f, expected %.4f", balance, tt.expectedBalance)
			}
		})
	}
}

func TestComputeCumulativeShape(t *testing.T) {
	terms := mortgageTerms()
	schedule, err := ComputeCumulative(terms)
	if err != nil {
		t.Fatalf("ComputeCumulative() error = %v", err)
	}

	for name, series := range map[string]CumulativeSeries{"standard": schedule.Standard, "adjusted": schedule.Adjusted} {
		for field, values := range map[string][]float64{
			"interest":  series.Interest,
			"principal": series.Principal,
			"totalPaid": series.TotalPaid,
			"balance":   series.Balance,
		} {
			if len(values) != terms.NumPeriods+1 {
				t.Errorf("%s %s has %d entries, expected %d", name, field, len(values), terms.NumPeriods+1)
			}
		}
		if series.Interest[0] != 0 || series.Principal[0] != 0 || series.TotalPaid[0] != 0 {
			t.Errorf("%s period 0 should have nothing paid", name)
		}
		if series.Balance[0] != terms.Principal {
			t.Errorf("%s period 0 balance = %.2f, expected %.2f", name, series.Balance[0], terms.Principal)
		}
	}
}

func TestComputePeriodicShape(t *testing.T) {
	terms := mortgageTerms()
	schedule, err := ComputePeriodic(terms)
	if err != nil {
		t.Fatalf("ComputePeriodic() error = %v", err)
	}

	for name, series := range map[string]PeriodicSeries{"standard": schedule.Standard, "adjusted": schedule.Adjusted} {
		if len(series.Interest) != terms.NumPeriods || len(series.Principal) != terms.NumPeriods ||
			len(series.Total) != terms.NumPeriods {
			t.Errorf("%s series should have %d entries", name, terms.NumPeriods)
		}
	}
}

func TestStandardScheduleAmortizesToZero(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{name: "30-year mortgage", terms: mortgageTerms()},
		{name: "15-year mortgage", terms: LoanTerms{Principal: 250000, PeriodicRate: 0.04 / 12, NumPeriods: 180}},
		{name: "Short high-rate loan", terms: LoanTerms{Principal: 5000, PeriodicRate: 0.24 / 12, NumPeriods: 12}},
		{name: "Tiny rate", terms: LoanTerms{Principal: 100, PeriodicRate: 1e-6, NumPeriods: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := ComputeCumulative(tt.terms)
			if err != nil {
				t.Fatalf("ComputeCumulative() error = %v", err)
			}
			_, _, _, balance := schedule.Standard.Final()
			if math.Abs(balance) > tt.terms.Principal*1e-4 {
				t.Errorf("final standard balance = %.6f, expected within 0.01%% of %.2f", balance, tt.terms.Principal)
			}
		})
	}
}

func TestNoEarlyPaymentsMatchesStandard(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{name: "Empty early window", terms: LoanTerms{Principal: 1400, PeriodicRate: 0.055 / 12, NumPeriods: 360}},
		{name: "Empty window with amount", terms: LoanTerms{Principal: 1400, PeriodicRate: 0.055 / 12, NumPeriods: 360, EarlyPaymentAmount: 4}},
		{name: "Short loan", terms: LoanTerms{Principal: 10000, PeriodicRate: 0.01, NumPeriods: 24}},
	}

	const tolerance = 1e-9

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cumulative, err := ComputeCumulative(tt.terms)
			if err != nil {
				t.Fatalf("ComputeCumulative() error = %v", err)
			}
			periodic, err := ComputePeriodic(tt.terms)
			if err != nil {
				t.Fatalf("ComputePeriodic() error = %v", err)
			}

			assertClose(t, "cumulative interest", cumulative.Standard.Interest, cumulative.Adjusted.Interest, tolerance)
			assertClose(t, "cumulative principal", cumulative.Standard.Principal, cumulative.Adjusted.Principal, tolerance)
			assertClose(t, "cumulative total", cumulative.Standard.TotalPaid, cumulative.Adjusted.TotalPaid, tolerance)
			assertClose(t, "cumulative balance", cumulative.Standard.Balance, cumulative.Adjusted.Balance, tolerance)
			assertClose(t, "periodic interest", periodic.Standard.Interest, periodic.Adjusted.Interest, tolerance)
			assertClose(t, "periodic principal", periodic.Standard.Principal, periodic.Adjusted.Principal, tolerance)
			assertClose(t, "periodic total", periodic.Standard.Total, periodic.Adjusted.Total, tolerance)
		})
	}
}

func TestCumulativeDifferencesMatchPeriodic(t *testing.T) {
	terms := mortgageTerms()
	cumulative, err := ComputeCumulative(terms)
	if err != nil {
		t.Fatalf("ComputeCumulative() error = %v", err)
	}
	periodic, err := ComputePeriodic(terms)
	if err != nil {
		t.Fatalf("ComputePeriodic() error = %v", err)
	}

	const tolerance = 1e-9

	tracks := []struct {
		name       string
		cumulative CumulativeSeries
		periodic   PeriodicSeries
	}{
		{name: "standard", cumulative: cumulative.Standard, periodic: periodic.Standard},
		{name: "adjusted", cumulative: cumulative.Adjusted, periodic: periodic.Adjusted},
	}

	for _, track := range tracks {
		t.Run(track.name, func(t *testing.T) {
			for i := 1; i <= terms.NumPeriods; i++ {
				if d := track.cumulative.Interest[i] - track.cumulative.Interest[i-1]; math.Abs(d-track.periodic.Interest[i-1]) > tolerance {
					t.Fatalf("period %d interest: cumulative difference %.9f != periodic %.9f", i, d, track.periodic.Interest[i-1])
				}
				if d := track.cumulative.Principal[i] - track.cumulative.Principal[i-1]; math.Abs(d-track.periodic.Principal[i-1]) > tolerance {
					t.Fatalf("period %d principal: cumulative difference %.9f != periodic %.9f", i, d, track.periodic.Principal[i-1])
				}
				if d := track.cumulative.TotalPaid[i] - track.cumulative.TotalPaid[i-1]; math.Abs(d-track.periodic.Total[i-1]) > tolerance {
					t.Fatalf("period %d total: cumulative difference %.9f != periodic %.9f", i, d, track.periodic.Total[i-1])
				}
			}
		})
	}
}

func TestAdjustedScheduleStopsAfterPayoff(t *testing.T) {
	terms := mortgageTerms()
	cumulative, err := ComputeCumulative(terms)
	if err != nil {
		t.Fatalf("ComputeCumulative() error = %v", err)
	}
	periodic, err := ComputePeriodic(terms)
	if err != nil {
		t.Fatalf("ComputePeriodic() error = %v", err)
	}

	payoff := -1
	for i := 1; i < len(cumulative.Adjusted.Balance); i++ {
		if cumulative.Adjusted.Balance[i] <= 0 {
			payoff = i
			break
		}
	}
	if payoff < 0 {
		t.Fatal("adjusted schedule never paid off")
	}
	if payoff >= terms.NumPeriods {
		t.Fatalf("adjusted schedule paid off at period %d, expected before %d", payoff, terms.NumPeriods)
	}

	held := cumulative.Adjusted.Balance[payoff]
	for i := payoff + 1; i < len(cumulative.Adjusted.Balance); i++ {
		if cumulative.Adjusted.Balance[i] != held {
			t.Fatalf("balance moved after payoff: period %d = %.6f, held %.6f", i, cumulative.Adjusted.Balance[i], held)
		}
	}
	for i := payoff; i < terms.NumPeriods; i++ {
		if periodic.Adjusted.Interest[i] != 0 || periodic.Adjusted.Principal[i] != 0 || periodic.Adjusted.Total[i] != 0 {
			t.Fatalf("period %d should pay nothing after payoff, got interest %.6f principal %.6f",
				i+1, periodic.Adjusted.Interest[i], periodic.Adjusted.Principal[i])
		}
	}

	if got := periodic.Adjusted.EffectiveNumPeriods(); got != payoff {
		t.Errorf("EffectiveNumPeriods() = %d, expected %d", got, payoff)
	}
}

func TestMortgageScenario(t *testing.T) {
	terms := mortgageTerms()

	payment, err := terms.Payment()
	if err != nil {
		t.Fatalf("Payment() error = %v", err)
	}
	if math.Abs(payment-7.949) > 0.001 {
		t.Errorf("Payment() = %.4f, expected about 7.949", payment)
	}

	cumulative, err := ComputeCumulative(terms)
	if err != nil {
		t.Fatalf("ComputeCumulative() error = %v", err)
	}
	_, _, _, balance := cumulative.Standard.Final()
	if math.Abs(balance) > 0.5 {
		t.Errorf("standard final balance = %.4f, expected about 0", balance)
	}

	periodic, err := ComputePeriodic(terms)
	if err != nil {
		t.Fatalf("ComputePeriodic() error = %v", err)
	}
	if n := periodic.Standard.EffectiveNumPeriods(); n != 360 {
		t.Errorf("standard EffectiveNumPeriods() = %d, expected 360", n)
	}
	effective := periodic.Adjusted.EffectiveNumPeriods()
	if effective >= 360 {
		t.Errorf("adjusted EffectiveNumPeriods() = %d, expected fewer than 360", effective)
	}

	standardInterest, _, _, _ := cumulative.Standard.Final()
	adjustedInterest, _, _, _ := cumulative.Adjusted.Final()
	if adjustedInterest >= standardInterest {
		t.Errorf("early payments should save interest: adjusted %.2f >= standard %.2f", adjustedInterest, standardInterest)
	}
}

func TestEarlyPaymentOvershootIsFlooredNextPeriod(t *testing.T) {
	// The second extra payment takes the balance below zero.
	terms := LoanTerms{
		Principal:          100,
		PeriodicRate:       0.01,
		NumPeriods:         12,
		NumEarlyPeriods:    12,
		EarlyPaymentAmount: 60,
	}

	cumulative, err := ComputeCumulative(terms)
	if err != nil {
		t.Fatalf("ComputeCumulative() error = %v", err)
	}

	if cumulative.Adjusted.Balance[2] >= 0 {
		t.Fatalf("expected overshoot below zero at period 2, got %.4f", cumulative.Adjusted.Balance[2])
	}
	for i := 3; i < len(cumulative.Adjusted.Balance); i++ {
		if cumulative.Adjusted.Balance[i] != cumulative.Adjusted.Balance[2] {
			t.Errorf("period %d balance = %.4f, expected held at %.4f", i, cumulative.Adjusted.Balance[i], cumulative.Adjusted.Balance[2])
		}
	}
	_, principal, _, _ := cumulative.Adjusted.Final()
	if principal <= terms.Principal {
		t.Errorf("cumulative principal %.4f should include the overshoot beyond %.2f", principal, terms.Principal)
	}
}

func TestEffectiveNumPeriods(t *testing.T) {
	tests := []struct {
		name     string
		totals   []float64
		expected int
	}{
		{name: "Empty", totals: nil, expected: 0},
		{name: "All positive", totals: []float64{1, 2, 3}, expected: 3},
		{name: "Trailing zeros", totals: []float64{5, 5, 0, 0}, expected: 2},
		{name: "Negative ignored", totals: []float64{5, -1, 0}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := PeriodicSeries{Total: tt.totals}
			if got := series.EffectiveNumPeriods(); got != tt.expected {
				t.Errorf("EffectiveNumPeriods() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func assertClose(t *testing.T, name string, want, got []float64, tolerance float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: length %d != %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(want[i]-got[i]) > tolerance {
			t.Fatalf("%s[%d] = %.12f, expected %.12f", name, i, got[i], want[i])
		}
	}
}
