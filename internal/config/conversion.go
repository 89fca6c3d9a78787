// Package config defines conversion utilities for configuration objects.
package config

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
)

// Terms converts the loan into the per-period terms the amortization engines
// work with: the annual percentage becomes a monthly decimal rate and years
// become months.
func (loan Loan) Terms() (loans.LoanTerms, error) {
	if err := loan.Validate(); err != nil {
		return loans.LoanTerms{}, err
	}
	return loans.LoanTerms{
		Principal:          loan.Amount,
		PeriodicRate:       PeriodicRate(loan.AnnualInterestRate),
		NumPeriods:         loan.TermYears * constants.MonthsPerYear,
		NumEarlyPeriods:    loan.EarlyPaymentTermYears * constants.MonthsPerYear,
		EarlyPaymentAmount: loan.EarlyPaymentAmount,
	}, nil
}

// PeriodicRate converts an annual percentage rate into a monthly decimal rate.
func PeriodicRate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}
