package loans

// period is one row of an amortization track.
type period struct {
	interest  float64
	principal float64
	balance   float64
}

// Step advances the early-payment track by one period. Once the balance is at
// or below zero nothing more is paid and the balance is held. Otherwise the
// regular payment is split into interest and principal, and during the early
// window the extra amount is added to principal. The result is not clamped, so
// a period may overshoot below zero; the next call floors it.
func Step(balance, rate, payment float64, early bool, extra float64) (interest, principal, next float64) {
	if balance <= 0 {
		return 0, 0, balance
	}
	interest = balance * rate
	principal = payment - interest
	if early {
		principal += extra
	}
	return interest, principal, balance - principal
}

// standardStep advances the standard track by one period with no floor.
func standardStep(balance, rate, payment float64) (interest, principal, next float64) {
	interest = balance * rate
	principal = payment - interest
	return interest, principal, balance - principal
}

// amortize walks both tracks for every period of the term.
func amortize(t LoanTerms) (standard, adjusted []period, err error) {
	payment, err := t.Payment()
	if err != nil {
		return nil, nil, err
	}

	standard = make([]period, t.NumPeriods)
	adjusted = make([]period, t.NumPeriods)

	balance := t.Principal
	for i := 0; i < t.NumPeriods; i++ {
		interest, principal, next := standardStep(balance, t.PeriodicRate, payment)
		standard[i] = period{interest: interest, principal: principal, balance: next}
		balance = next
	}

	balance = t.Principal
	for i := 0; i < t.NumPeriods; i++ {
		interest, principal, next := Step(balance, t.PeriodicRate, payment, i < t.NumEarlyPeriods, t.EarlyPaymentAmount)
		adjusted[i] = period{interest: interest, principal: principal, balance: next}
		balance = next
	}

	return standard, adjusted, nil
}
