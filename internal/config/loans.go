package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a loan as entered by the user cannot be
// turned into loan terms.
var ErrInvalidInput = errors.New("invalid input")

// Loan is a loan as entered by the user: an amount in any currency unit, an
// annual percentage rate and terms in whole years.
type Loan struct {
	Amount                float64 `json:"amount" yaml:"amount"`
	AnnualInterestRate    float64 `json:"annualInterestRate" yaml:"annualInterestRate"` // percent
	TermYears             int     `json:"termYears" yaml:"termYears"`
	EarlyPaymentTermYears int     `json:"earlyPaymentTermYears" yaml:"earlyPaymentTermYears"`
	EarlyPaymentAmount    float64 `json:"earlyPaymentAmount" yaml:"earlyPaymentAmount"`
}

// Validate rejects values outside the loan domain. A zero interest rate is
// accepted here and rejected by the amortization engines.
func (loan Loan) Validate() error {
	switch {
	case math.IsNaN(loan.Amount) || math.IsInf(loan.Amount, 0) || loan.Amount <= 0:
		return fmt.Errorf("%w: loan amount must be a positive number", ErrInvalidInput)
	case math.IsNaN(loan.AnnualInterestRate) || math.IsInf(loan.AnnualInterestRate, 0) || loan.AnnualInterestRate < 0:
		return fmt.Errorf("%w: annual interest rate must be a non-negative number", ErrInvalidInput)
	case loan.TermYears <= 0:
		return fmt.Errorf("%w: loan term must be at least one year", ErrInvalidInput)
	case loan.EarlyPaymentTermYears < 0:
		return fmt.Errorf("%w: early payment term cannot be negative", ErrInvalidInput)
	case loan.EarlyPaymentTermYears > loan.TermYears:
		return fmt.Errorf("%w: early payment term of %d years exceeds loan term of %d years",
			ErrInvalidInput, loan.EarlyPaymentTermYears, loan.TermYears)
	case math.IsNaN(loan.EarlyPaymentAmount) || math.IsInf(loan.EarlyPaymentAmount, 0) || loan.EarlyPaymentAmount < 0:
		return fmt.Errorf("%w: early payment amount must be a non-negative number", ErrInvalidInput)
	}
	return nil
}
