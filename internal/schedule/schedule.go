// Package schedule runs the amortization engines and the effective rate
// solver for configured loans and collects everything a caller displays.
package schedule

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/rate"
	"go.uber.org/zap"
)

// Schedule holds all results for one loan.
type Schedule struct {
	Name             string
	Loan             config.Loan
	Terms            loans.LoanTerms
	Payment          float64
	Cumulative       loans.CumulativeSchedule
	Periodic         loans.PeriodicSchedule
	EffectivePeriods int
	Rate             rate.Result
	Savings          Savings
}

// Savings compares the early-payment plan against the standard plan.
type Savings struct {
	Interest        float64
	InterestPercent float64
	Periods         int
}

// HasEarlyPayments reports whether the loan has an early payment window.
func (s Schedule) HasEarlyPayments() bool {
	return s.Terms.NumEarlyPeriods > 0
}

// GetSchedules computes a Schedule for every active scenario.
func GetSchedules(logger *zap.Logger, conf config.Configuration) ([]Schedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Schedule
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "schedule.GetSchedules"),
			)
			continue
		}

		result, err := Calculate(logger, scenario.Name, scenario.Loan)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// Calculate converts the loan into terms, runs both engines and solves the
// effective annual rate of the early-payment track.
func Calculate(logger *zap.Logger, name string, loan config.Loan) (Schedule, error) {
	terms, err := loan.Terms()
	if err != nil {
		return Schedule{}, err
	}
	return CalculateTerms(logger, name, loan, terms)
}

// CalculateTerms is Calculate for terms that were already converted.
func CalculateTerms(logger *zap.Logger, name string, loan config.Loan, terms loans.LoanTerms) (Schedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	payment, err := terms.Payment()
	if err != nil {
		return Schedule{}, err
	}

	cumulative, err := loans.ComputeCumulative(terms)
	if err != nil {
		return Schedule{}, err
	}

	periodic, err := loans.ComputePeriodic(terms)
	if err != nil {
		return Schedule{}, err
	}

	effective := periodic.Adjusted.EffectiveNumPeriods()
	adjustedInterest, _, _, _ := cumulative.Adjusted.Final()
	standardInterest, _, _, standardBalance := cumulative.Standard.Final()

	if !mathutil.WithinTolerance(standardBalance, 0, terms.Principal*1e-4) {
		logger.Warn(fmt.Sprintf("standard schedule for %s leaves a balance of %.6f", name, standardBalance),
			zap.String("op", "schedule.Calculate"),
		)
	}

	result, err := rate.Solve(effective, adjustedInterest, terms.Principal)
	if err != nil {
		return Schedule{}, fmt.Errorf("effective rate: %w", err)
	}

	saved := standardInterest - adjustedInterest
	s := Schedule{
		Name:             name,
		Loan:             loan,
		Terms:            terms,
		Payment:          payment,
		Cumulative:       cumulative,
		Periodic:         periodic,
		EffectivePeriods: effective,
		Rate:             result,
		Savings: Savings{
			Interest:        saved,
			InterestPercent: mathutil.Round(mathutil.Percentage(saved, standardInterest)),
			Periods:         terms.NumPeriods - effective,
		},
	}

	logger.Debug(fmt.Sprintf("computed schedule %s: payment %.4f, payoff after %d of %d periods, effective annual rate %.6f",
		name, payment, effective, terms.NumPeriods, result.EAR),
		zap.String("op", "schedule.Calculate"),
		zap.Int("solverIterations", result.Iterations),
	)

	return s, nil
}
