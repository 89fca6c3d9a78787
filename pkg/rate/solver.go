// Package rate solves the periodic interest rate implied by a realized
// payment stream and converts it to an effective annual rate.
package rate

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

const (
	seriesCutoff    = 1e-8
	maxStepHalvings = 60
)

var (
	// ErrInvalidRateInput is returned when the solver preconditions do not hold.
	ErrInvalidRateInput = errors.New("invalid rate solver input")

	// ErrNumericConvergence is returned when Newton iteration fails to settle
	// on a rate.
	ErrNumericConvergence = errors.New("rate solver did not converge")
)

// Result is the output of Solve.
type Result struct {
	// AveragePayment is (interest + principal) / periods.
	AveragePayment float64
	// PeriodicRate is the solved rate per payment period, as a decimal.
	PeriodicRate float64
	// APR is PeriodicRate * 12.
	APR float64
	// EAR is (1 + APR/12)^12 - 1.
	EAR float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
}

// SolveEffectiveAnnualRate returns the effective annual rate, as a decimal,
// of an ordinary annuity repaying totalPrincipal with effectiveNumPeriods
// equal payments summing to totalInterest + totalPrincipal.
func SolveEffectiveAnnualRate(effectiveNumPeriods int, totalInterest, totalPrincipal float64) (float64, error) {
	res, err := Solve(effectiveNumPeriods, totalInterest, totalPrincipal)
	if err != nil {
		return 0, err
	}
	return res.EAR, nil
}

// Solve is SolveEffectiveAnnualRate returning every intermediate value.
func Solve(effectiveNumPeriods int, totalInterest, totalPrincipal float64) (Result, error) {
	switch {
	case effectiveNumPeriods <= 0:
		return Result{}, fmt.Errorf("%w: effective number of periods must be positive, got %d",
			ErrInvalidRateInput, effectiveNumPeriods)
	case math.IsNaN(totalPrincipal) || math.IsInf(totalPrincipal, 0) || totalPrincipal <= 0:
		return Result{}, fmt.Errorf("%w: total principal must be positive, got %v", ErrInvalidRateInput, totalPrincipal)
	case math.IsNaN(totalInterest) || math.IsInf(totalInterest, 0):
		return Result{}, fmt.Errorf("%w: total interest must be finite, got %v", ErrInvalidRateInput, totalInterest)
	}

	payment := (totalInterest + totalPrincipal) / float64(effectiveNumPeriods)
	if payment <= 0 {
		return Result{}, fmt.Errorf("%w: average payment %v cannot repay principal", ErrNumericConvergence, payment)
	}

	r, iterations, err := solvePeriodicRate(effectiveNumPeriods, payment, totalPrincipal)
	if err != nil {
		return Result{}, err
	}

	apr := r * constants.MonthsPerYear
	ear := math.Pow(1+apr/constants.MonthsPerYear, constants.MonthsPerYear) - 1

	return Result{
		AveragePayment: payment,
		PeriodicRate:   r,
		APR:            apr,
		EAR:            ear,
		Iterations:     iterations,
	}, nil
}

// PresentValue discounts n payments of pmt made at the end of each period.
func PresentValue(r float64, n int, pmt float64) float64 {
	a, _ := annuityFactor(r, n)
	return pmt * a
}

// solvePeriodicRate finds r such that pmt * a(r, n) == pv via Newton-Raphson.
func solvePeriodicRate(n int, pmt, pv float64) (float64, int, error) {
	r := initialGuess(n, pmt, pv)

	for iter := 0; iter < constants.RateSolverMaxIterations; iter++ {
		a, da := annuityFactor(r, n)
		f := pmt*a - pv
		df := pmt * da

		if math.Abs(df) < 1e-300 || math.IsNaN(df) {
			return r, iter + 1, fmt.Errorf("%w: derivative vanished at iteration %d", ErrNumericConvergence, iter)
		}

		// Halve the step until the iterate stays above -100%.
		step := f / df
		for halvings := 0; r-step <= -1 && halvings < maxStepHalvings; halvings++ {
			step /= 2
		}
		r -= step

		if math.IsNaN(r) || math.IsInf(r, 0) || r <= -1 {
			return r, iter + 1, fmt.Errorf("%w: iterate left the domain at iteration %d", ErrNumericConvergence, iter)
		}
		if math.Abs(step) < constants.RateSolverTolerance {
			return r, iter + 1, nil
		}
	}

	return r, constants.RateSolverMaxIterations, fmt.Errorf("%w: no convergence after %d iterations",
		ErrNumericConvergence, constants.RateSolverMaxIterations)
}

// initialGuess uses the constant-ratio approximation r ≈ 2I / (P(n+1)).
func initialGuess(n int, pmt, pv float64) float64 {
	interest := pmt*float64(n) - pv
	guess := 2 * interest / (pv * float64(n+1))
	if guess <= -0.5 {
		guess = -0.5
	}
	return guess
}

// annuityFactor returns a(r) = (1 - (1+r)^-n) / r and its derivative.
//
//	a'(r) = (n r (1+r)^(-n-1) - (1 - (1+r)^-n)) / r^2
//
// (1+r)^-n is evaluated through Log1p and Expm1 so the numerator keeps its
// precision for small r. Below the series cutoff the third-order Taylor
// expansion is used.
func annuityFactor(r float64, n int) (float64, float64) {
	nf := float64(n)
	if math.Abs(r) < seriesCutoff {
		c1 := nf * (nf + 1) / 2
		c2 := c1 * (nf + 2) / 3
		c3 := c2 * (nf + 3) / 4
		a := nf - c1*r + c2*r*r - c3*r*r*r
		da := -c1 + 2*c2*r - 3*c3*r*r
		return a, da
	}
	l := -nf * math.Log1p(r)
	oneMinusV := -math.Expm1(l)
	v := math.Exp(l)
	a := oneMinusV / r
	da := (nf*r*v/(1+r) - oneMinusV) / (r * r)
	return a, da
}
