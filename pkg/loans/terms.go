// Package loans computes amortization schedules for fixed-rate installment
// loans, both for the standard repayment plan and for a plan with extra
// principal payments during an initial window of the term.
package loans

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLoanTerms is returned when LoanTerms are outside the domain the
// amortization formulas are defined on, including a zero periodic rate.
var ErrInvalidLoanTerms = errors.New("invalid loan terms")

// LoanTerms holds the inputs shared by both amortization engines.
type LoanTerms struct {
	Principal          float64
	PeriodicRate       float64
	NumPeriods         int
	NumEarlyPeriods    int
	EarlyPaymentAmount float64
}

// Validate checks the LoanTerms invariants.
func (t LoanTerms) Validate() error {
	switch {
	case !isFinite(t.Principal) || t.Principal <= 0:
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidLoanTerms, t.Principal)
	case !isFinite(t.PeriodicRate) || t.PeriodicRate < 0:
		return fmt.Errorf("%w: periodic rate must be non-negative, got %v", ErrInvalidLoanTerms, t.PeriodicRate)
	case t.PeriodicRate == 0:
		return fmt.Errorf("%w: periodic rate of zero leaves the payment formula undefined", ErrInvalidLoanTerms)
	case t.NumPeriods <= 0:
		return fmt.Errorf("%w: number of periods must be positive, got %d", ErrInvalidLoanTerms, t.NumPeriods)
	case t.NumEarlyPeriods < 0 || t.NumEarlyPeriods > t.NumPeriods:
		return fmt.Errorf("%w: early periods must be within [0, %d], got %d",
			ErrInvalidLoanTerms, t.NumPeriods, t.NumEarlyPeriods)
	case !isFinite(t.EarlyPaymentAmount) || t.EarlyPaymentAmount < 0:
		return fmt.Errorf("%w: early payment amount must be non-negative, got %v",
			ErrInvalidLoanTerms, t.EarlyPaymentAmount)
	}
	return nil
}

// Payment returns the constant periodic payment that fully amortizes the
// principal over NumPeriods at PeriodicRate.
func (t LoanTerms) Payment() (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	return CalculatePeriodicPayment(t.Principal, t.PeriodicRate, t.NumPeriods), nil
}

// CalculatePeriodicPayment applies the closed-form annuity formula. It does no
// validation; a zero rate yields NaN.
func CalculatePeriodicPayment(principal, periodicRate float64, numPeriods int) float64 {
	return periodicRate * principal / (1 - math.Pow(1+periodicRate, -float64(numPeriods)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
