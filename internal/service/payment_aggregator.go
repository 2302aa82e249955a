package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/config"
)

type paymentTotalsRepository interface {
	SumByStudent(ctx context.Context, studentID string) (decimal.Decimal, error)
	SumByIdentity(ctx context.Context, identity models.StudentIdentity) (decimal.Decimal, error)
}

// PaymentAggregator sums the non-rejected payments recorded for a student.
//
// In identity mode, the default, an inscription matches on email or on last and first
// name together, so inscriptions created before the student account still count; each
// matching inscription is counted once. In foreign key mode only inscriptions linked to
// the student count.
type PaymentAggregator struct {
	repo paymentTotalsRepository
	mode string
}

// NewPaymentAggregator constructs a PaymentAggregator for the given match mode.
func NewPaymentAggregator(repo paymentTotalsRepository, mode string) *PaymentAggregator {
	if mode != config.PaymentMatchForeignKey {
		mode = config.PaymentMatchIdentity
	}
	return &PaymentAggregator{repo: repo, mode: mode}
}

// Mode returns the active match mode.
func (a *PaymentAggregator) Mode() string {
	return a.mode
}

// TotalPaid returns the amount paid by the student.
func (a *PaymentAggregator) TotalPaid(ctx context.Context, identity models.StudentIdentity) (decimal.Decimal, error) {
	if a.mode == config.PaymentMatchIdentity {
		identity.Email = strings.TrimSpace(identity.Email)
		identity.FirstName = strings.TrimSpace(identity.FirstName)
		identity.LastName = strings.TrimSpace(identity.LastName)
		if identity.Email == "" && (identity.FirstName == "" || identity.LastName == "") {
			return decimal.Zero, nil
		}
		total, err := a.repo.SumByIdentity(ctx, identity)
		if err != nil {
			return decimal.Zero, fmt.Errorf("sum payments by identity: %w", err)
		}
		return total, nil
	}

	if identity.StudentID == "" {
		return decimal.Zero, nil
	}
	total, err := a.repo.SumByStudent(ctx, identity.StudentID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by student: %w", err)
	}
	return total, nil
}
