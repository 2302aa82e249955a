package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func defaultFees() ResolvedFees {
	return ResolvedFees{
		RegistrationFee:    decimal.NewFromInt(50000),
		TuitionFee:         decimal.NewFromInt(885000),
		RegistrationSource: FeeSourceDefault,
		TuitionSource:      FeeSourceDefault,
	}
}

func TestAllocateTermsNothingPaid(t *testing.T) {
	alloc := AllocateTerms(decimal.Zero, defaultFees(), 3)

	assert.Empty(t, alloc.PaidTerms)
	assert.NotNil(t, alloc.PaidTerms)
	assert.Equal(t, []string{"Semestre 1", "Semestre 2", "Semestre 3"}, alloc.PendingTerms)
	assert.Equal(t, "Semestre 1", alloc.CurrentTerm)
}

func TestAllocateTermsRegistrationOnly(t *testing.T) {
	alloc := AllocateTerms(decimal.NewFromInt(50000), defaultFees(), 3)

	assert.True(t, alloc.RegistrationPaid.Equal(decimal.NewFromInt(50000)))
	assert.True(t, alloc.TuitionPaid.IsZero())
	assert.Empty(t, alloc.PaidTerms)
	assert.Len(t, alloc.PendingTerms, 3)
}

func TestAllocateTermsPartialRegistration(t *testing.T) {
	alloc := AllocateTerms(decimal.NewFromInt(20000), defaultFees(), 3)

	assert.True(t, alloc.RegistrationPaid.Equal(decimal.NewFromInt(20000)))
	assert.True(t, alloc.TuitionPaid.IsZero())
	assert.Empty(t, alloc.PaidTerms)
}

func TestAllocateTermsOneTermPaid(t *testing.T) {
	alloc := AllocateTerms(decimal.NewFromInt(345000), defaultFees(), 3)

	assert.True(t, alloc.PerTermPrice.Equal(decimal.NewFromInt(295000)))
	assert.Equal(t, []string{"Semestre 1"}, alloc.PaidTerms)
	assert.Equal(t, []string{"Semestre 2", "Semestre 3"}, alloc.PendingTerms)
	assert.Equal(t, "Semestre 2", alloc.CurrentTerm)
}

func TestAllocateTermsJustBelowOneTerm(t *testing.T) {
	alloc := AllocateTerms(decimal.NewFromInt(344999), defaultFees(), 3)

	assert.Empty(t, alloc.PaidTerms)
	assert.Equal(t, "Semestre 1", alloc.CurrentTerm)
}

func TestAllocateTermsOverpaymentAbsorbed(t *testing.T) {
	alloc := AllocateTerms(decimal.NewFromInt(2000000), defaultFees(), 3)

	assert.Len(t, alloc.PaidTerms, 3)
	assert.Empty(t, alloc.PendingTerms)
	assert.Equal(t, TermCompleted, alloc.CurrentTerm)
}

func TestAllocateTermsFullPaymentWithRoundedTermPrice(t *testing.T) {
	// 100001 / 3 rounds to 33334, three of which exceed the tuition.
	fees := ResolvedFees{RegistrationFee: decimal.NewFromInt(1000), TuitionFee: decimal.NewFromInt(100001)}
	alloc := AllocateTerms(decimal.NewFromInt(101001), fees, 3)

	assert.Len(t, alloc.PaidTerms, 3)
	assert.Equal(t, TermCompleted, alloc.CurrentTerm)
}

func TestAllocateTermsZeroTuition(t *testing.T) {
	fees := ResolvedFees{RegistrationFee: decimal.NewFromInt(50000), TuitionFee: decimal.Zero}
	alloc := AllocateTerms(decimal.Zero, fees, 3)

	assert.Empty(t, alloc.PaidTerms)
	assert.Equal(t, TermLabels(3), alloc.PendingTerms)
	assert.Equal(t, "Semestre 1", alloc.CurrentTerm)
}

func TestAllocateTermsZeroTuitionPaidBeyondRegistration(t *testing.T) {
	fees := ResolvedFees{RegistrationFee: decimal.NewFromInt(50000), TuitionFee: decimal.Zero}
	alloc := AllocateTerms(decimal.NewFromInt(60000), fees, 3)

	assert.Len(t, alloc.PaidTerms, 3)
	assert.Equal(t, TermCompleted, alloc.CurrentTerm)
}

func TestAllocateTermsPreservesTermCount(t *testing.T) {
	for _, paid := range []int64{0, 1, 50000, 344999, 345000, 640000, 935000, 10_000_000} {
		alloc := AllocateTerms(decimal.NewFromInt(paid), defaultFees(), 3)
		assert.Equal(t, 3, len(alloc.PaidTerms)+len(alloc.PendingTerms), "paid=%d", paid)
	}
}

func TestAllocateTermsCustomTermCount(t *testing.T) {
	fees := ResolvedFees{RegistrationFee: decimal.NewFromInt(0), TuitionFee: decimal.NewFromInt(400000)}
	alloc := AllocateTerms(decimal.NewFromInt(200000), fees, 2)

	assert.Equal(t, []string{"Semestre 1"}, alloc.PaidTerms)
	assert.Equal(t, []string{"Semestre 2"}, alloc.PendingTerms)
}

func TestAllocateTermsNegativePaidTreatedAsZero(t *testing.T) {
	alloc := AllocateTerms(decimal.NewFromInt(-10), defaultFees(), 3)

	assert.True(t, alloc.RegistrationPaid.IsZero())
	assert.Empty(t, alloc.PaidTerms)
}
