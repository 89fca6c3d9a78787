package loans

// PeriodicSeries holds per-period amounts for one track, NumPeriods entries each.
type PeriodicSeries struct {
	Interest  []float64
	Principal []float64
	Total     []float64
}

// PeriodicSchedule pairs the standard and early-payment tracks.
type PeriodicSchedule struct {
	Standard PeriodicSeries
	Adjusted PeriodicSeries
}

// ComputePeriodic produces the per-period interest, principal and total
// payment for both tracks.
func ComputePeriodic(t LoanTerms) (PeriodicSchedule, error) {
	standard, adjusted, err := amortize(t)
	if err != nil {
		return PeriodicSchedule{}, err
	}
	return PeriodicSchedule{
		Standard: perPeriod(standard),
		Adjusted: perPeriod(adjusted),
	}, nil
}

func perPeriod(periods []period) PeriodicSeries {
	s := PeriodicSeries{
		Interest:  make([]float64, len(periods)),
		Principal: make([]float64, len(periods)),
		Total:     make([]float64, len(periods)),
	}
	for i, p := range periods {
		s.Interest[i] = p.interest
		s.Principal[i] = p.principal
		s.Total[i] = p.principal + p.interest
	}
	return s
}

// EffectiveNumPeriods counts the periods with a positive total payment, i.e.
// the payoff-shortened term.
func (s PeriodicSeries) EffectiveNumPeriods() int {
	count := 0
	for _, total := range s.Total {
		if total > 0 {
			count++
		}
	}
	return count
}
