// Package output provides utilities for formatting and displaying amortization results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/schedule"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns the payoff summary lines for one schedule.
func Summary(s schedule.Schedule) []string {
	if !s.HasEarlyPayments() {
		return []string{
			fmt.Sprintf("Monthly payment: %s, total payment amount: %s",
				format.Currency(s.Payment), format.Currency(mathutil.Last(s.Cumulative.Standard.TotalPaid))),
		}
	}
	lines := []string{
		fmt.Sprintf("Original: payout after %d months, monthly payment: %s",
			s.Terms.NumPeriods, format.Currency(s.Payment)),
		fmt.Sprintf("Adjusted: payout after %d months, effective interest rate: %s",
			s.EffectivePeriods, format.Percent(s.Rate.EAR)),
	}
	if !mathutil.IsZero(s.Savings.Interest) {
		lines = append(lines, fmt.Sprintf("Interest saved: %s (%.2f%%), paid off %d months sooner",
			format.Currency(s.Savings.Interest), s.Savings.InterestPercent, s.Savings.Periods))
	}
	return lines
}

// SummaryFormat outputs only the payoff summary of each schedule.
func SummaryFormat(results []schedule.Schedule) {
	for _, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)
		for _, line := range Summary(result) {
			fmt.Println(line)
		}
		if len(results) > 1 {
			fmt.Printf("\n")
		}
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []schedule.Schedule) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)
		for _, line := range Summary(result) {
			fmt.Println(line)
		}
		fmt.Printf("Month | Interest | Principal | Payment | Balance")
		if result.HasEarlyPayments() {
			fmt.Printf(" | Adjusted Interest | Adjusted Principal | Adjusted Payment | Adjusted Balance")
		}
		fmt.Printf("\n")
		fmt.Printf("_____ | ________ | _________ | _______ | _______")
		if result.HasEarlyPayments() {
			fmt.Printf(" | _________________ | __________________ | ________________ | ________________")
		}
		fmt.Printf("\n")

		standard, adjusted := result.Periodic.Standard, result.Periodic.Adjusted
		for i := range standard.Total {
			_, _ = p.Printf("%d | %.2f | %.2f | %.2f | %.2f", i+1,
				standard.Interest[i], standard.Principal[i], standard.Total[i],
				result.Cumulative.Standard.Balance[i+1])
			if result.HasEarlyPayments() {
				_, _ = p.Printf(" | %.2f | %.2f | %.2f | %.2f",
					adjusted.Interest[i], adjusted.Principal[i], adjusted.Total[i],
					result.Cumulative.Adjusted.Balance[i+1])
			}
			fmt.Printf("\n")
		}
		if len(results) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []schedule.Schedule) {
	fmt.Print(CsvString(results))
}

// CsvString renders every schedule as CSV rows, one row per scenario and
// month. Month 0 carries the opening balance.
func CsvString(results []schedule.Schedule) string {
	var b strings.Builder
	b.WriteString(`"scenario","month",`)
	b.WriteString(`"interest","principal","payment","cumulative interest","cumulative principal","cumulative paid","balance",`)
	b.WriteString(`"adjusted interest","adjusted principal","adjusted payment","adjusted cumulative interest",`)
	b.WriteString(`"adjusted cumulative principal","adjusted cumulative paid","adjusted balance"`)
	b.WriteString("\n")

	for _, result := range results {
		standard, adjusted := result.Cumulative.Standard, result.Cumulative.Adjusted
		for month := range standard.Balance {
			var interest, principal, payment, adjInterest, adjPrincipal, adjPayment float64
			if month > 0 {
				i := month - 1
				interest = result.Periodic.Standard.Interest[i]
				principal = result.Periodic.Standard.Principal[i]
				payment = result.Periodic.Standard.Total[i]
				adjInterest = result.Periodic.Adjusted.Interest[i]
				adjPrincipal = result.Periodic.Adjusted.Principal[i]
				adjPayment = result.Periodic.Adjusted.Total[i]
			}
			fmt.Fprintf(&b, `"%s","%d"`, strings.ReplaceAll(result.Name, `"`, `""`), month)
			fmt.Fprintf(&b, `,"%.4f","%.4f","%.4f","%.4f","%.4f","%.4f","%.4f"`,
				interest, principal, payment,
				standard.Interest[month], standard.Principal[month], standard.TotalPaid[month], standard.Balance[month])
			fmt.Fprintf(&b, `,"%.4f","%.4f","%.4f","%.4f","%.4f","%.4f","%.4f"`,
				adjInterest, adjPrincipal, adjPayment,
				adjusted.Interest[month], adjusted.Principal[month], adjusted.TotalPaid[month], adjusted.Balance[month])
			b.WriteString("\n")
		}
	}
	return b.String()
}
