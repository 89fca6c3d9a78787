// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
)

// ValidateEarlyPayments flags early-payment settings that are legal but
// probably not what the user meant.
func ValidateEarlyPayments(loanName string, termYears, earlyTermYears int, earlyAmount float64) []string {
	var warnings []string

	if earlyTermYears > 0 && earlyAmount == 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has an early payment term of %d years but no early payment amount",
			loanName, earlyTermYears))
	}

	if earlyTermYears == 0 && earlyAmount > 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has an early payment amount of %.2f but no early payment term",
			loanName, earlyAmount))
	}

	if earlyTermYears > 0 && earlyTermYears == termYears {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' early payment term covers the whole loan term (%d years)",
			loanName, termYears))
	}

	return warnings
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

type ScenarioConfig struct {
	Name   string
	Active bool
	Loan   LoanConfig
}

type LoanConfig struct {
	TermYears             int
	EarlyPaymentTermYears int
	EarlyPaymentAmount    float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	active := 0
	seen := make(map[string]bool)
	for _, scenario := range cv.Scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue
		}
		active++

		loanWarnings := ValidateEarlyPayments(fmt.Sprintf("Scenario '%s'", scenario.Name),
			scenario.Loan.TermYears, scenario.Loan.EarlyPaymentTermYears, scenario.Loan.EarlyPaymentAmount)
		warnings = append(warnings, loanWarnings...)
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios configured - nothing will be calculated")
	}

	return warnings
}
