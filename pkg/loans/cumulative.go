package loans

// CumulativeSeries holds running totals for one track. Every slice has
// NumPeriods+1 entries; index 0 is the state before the first payment.
type CumulativeSeries struct {
	Interest  []float64
	Principal []float64
	TotalPaid []float64
	Balance   []float64
}

// CumulativeSchedule pairs the standard and early-payment tracks.
type CumulativeSchedule struct {
	Standard CumulativeSeries
	Adjusted CumulativeSeries
}

// ComputeCumulative produces running-total interest, principal, total paid and
// remaining balance for both tracks.
func ComputeCumulative(t LoanTerms) (CumulativeSchedule, error) {
	standard, adjusted, err := amortize(t)
	if err != nil {
		return CumulativeSchedule{}, err
	}
	return CumulativeSchedule{
		Standard: accumulate(t.Principal, standard),
		Adjusted: accumulate(t.Principal, adjusted),
	}, nil
}

func accumulate(principal float64, periods []period) CumulativeSeries {
	n := len(periods) + 1
	s := CumulativeSeries{
		Interest:  make([]float64, 1, n),
		Principal: make([]float64, 1, n),
		TotalPaid: make([]float64, 1, n),
		Balance:   make([]float64, 1, n),
	}
	s.Balance[0] = principal

	for i, p := range periods {
		interest := s.Interest[i] + p.interest
		paid := s.Principal[i] + p.principal
		s.Interest = append(s.Interest, interest)
		s.Principal = append(s.Principal, paid)
		s.TotalPaid = append(s.TotalPaid, interest+paid)
		s.Balance = append(s.Balance, p.balance)
	}
	return s
}

// Final returns the last entry of each series.
func (s CumulativeSeries) Final() (interest, principal, totalPaid, balance float64) {
	last := len(s.Balance) - 1
	if last < 0 {
		return 0, 0, 0, 0
	}
	return s.Interest[last], s.Principal[last], s.TotalPaid[last], s.Balance[last]
}
