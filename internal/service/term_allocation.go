package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DefaultTermCount is the number of evenly priced terms tuition is split into.
	DefaultTermCount = 3
	// TermCompleted is reported as the current term once every term is paid.
	TermCompleted = "Terminé"
)

// TermAllocation splits a paid amount between the registration and tuition buckets
// and decides which terms are settled.
type TermAllocation struct {
	RegistrationPaid decimal.Decimal
	TuitionPaid      decimal.Decimal
	PerTermPrice     decimal.Decimal
	PaidTerms        []string
	PendingTerms     []string
	CurrentTerm      string
}

// TermLabels returns "Semestre 1".."Semestre n".
func TermLabels(n int) []string {
	if n <= 0 {
		n = DefaultTermCount
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Semestre %d", i+1)
	}
	return labels
}

// AllocateTerms applies the registration-first allocation rule. The registration bucket
// is capped at the registration fee and the remainder pays terms priced at
// round(tuition / termCount). Overpayment never creates an extra term.
func AllocateTerms(totalPaid decimal.Decimal, fees ResolvedFees, termCount int) TermAllocation {
	if termCount <= 0 {
		termCount = DefaultTermCount
	}
	if totalPaid.IsNegative() {
		totalPaid = decimal.Zero
	}

	registrationPaid := decimal.Max(decimal.Zero, decimal.Min(totalPaid, fees.RegistrationFee))
	tuitionPaid := decimal.Max(decimal.Zero, totalPaid.Sub(fees.RegistrationFee))
	perTerm := fees.TuitionFee.Div(decimal.NewFromInt(int64(termCount))).Round(0)

	paidCount := termCount
	// Rounding the term price up can leave the last term short by a unit even when
	// the full tuition is paid, so full payment settles every term outright.
	// Nothing paid towards tuition settles nothing, even when the tuition is zero.
	switch {
	case tuitionPaid.IsZero():
		paidCount = 0
	case perTerm.IsPositive() && tuitionPaid.LessThan(fees.TuitionFee):
		paidCount = int(tuitionPaid.Div(perTerm).Floor().IntPart())
		if paidCount > termCount {
			paidCount = termCount
		}
	}

	labels := TermLabels(termCount)
	paid := append([]string{}, labels[:paidCount]...)
	pending := append([]string{}, labels[paidCount:]...)

	current := TermCompleted
	if len(pending) > 0 {
		current = pending[0]
	}

	return TermAllocation{
		RegistrationPaid: registrationPaid,
		TuitionPaid:      tuitionPaid,
		PerTermPrice:     perTerm,
		PaidTerms:        paid,
		PendingTerms:     pending,
		CurrentTerm:      current,
	}
}
