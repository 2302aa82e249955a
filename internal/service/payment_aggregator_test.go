package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/config"
)

type fakePaymentTotals struct {
	byStudent   decimal.Decimal
	byIdentity  decimal.Decimal
	err         error
	studentArgs []string
	identities  []models.StudentIdentity
}

func (f *fakePaymentTotals) SumByStudent(_ context.Context, studentID string) (decimal.Decimal, error) {
	f.studentArgs = append(f.studentArgs, studentID)
	return f.byStudent, f.err
}

func (f *fakePaymentTotals) SumByIdentity(_ context.Context, identity models.StudentIdentity) (decimal.Decimal, error) {
	f.identities = append(f.identities, identity)
	return f.byIdentity, f.err
}

func TestPaymentAggregatorForeignKeyMode(t *testing.T) {
	repo := &fakePaymentTotals{byStudent: decimal.NewFromInt(120000), byIdentity: decimal.NewFromInt(999)}
	agg := NewPaymentAggregator(repo, config.PaymentMatchForeignKey)

	total, err := agg.TotalPaid(context.Background(), models.StudentIdentity{StudentID: "stu-1", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, config.PaymentMatchForeignKey, agg.Mode())
	assert.True(t, total.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, []string{"stu-1"}, repo.studentArgs)
	assert.Empty(t, repo.identities)
}

func TestPaymentAggregatorDefaultsCountUnlinkedInscriptions(t *testing.T) {
	t.Setenv("FEES_PAYMENT_MATCH_MODE", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	// The inscription predates the student account, so nothing is linked by student_id.
	repo := &fakePaymentTotals{byStudent: decimal.Zero, byIdentity: decimal.NewFromInt(345000)}
	agg := NewPaymentAggregator(repo, cfg.Fees.PaymentMatchMode)

	total, err := agg.TotalPaid(context.Background(), models.StudentIdentity{StudentID: "stu-1", Email: "awa@school.test", FirstName: "Awa", LastName: "Diop"})
	require.NoError(t, err)
	assert.Equal(t, config.PaymentMatchIdentity, agg.Mode())
	assert.True(t, total.Equal(decimal.NewFromInt(345000)))
	assert.Empty(t, repo.studentArgs)
}

func TestPaymentAggregatorUnknownModeUsesIdentity(t *testing.T) {
	repo := &fakePaymentTotals{byIdentity: decimal.NewFromInt(10000)}
	agg := NewPaymentAggregator(repo, "")

	total, err := agg.TotalPaid(context.Background(), models.StudentIdentity{StudentID: "stu-1", LastName: "Diop", FirstName: "Awa"})
	require.NoError(t, err)
	assert.Equal(t, config.PaymentMatchIdentity, agg.Mode())
	assert.True(t, total.Equal(decimal.NewFromInt(10000)))
}

func TestPaymentAggregatorIdentityModeTrimsInput(t *testing.T) {
	repo := &fakePaymentTotals{byIdentity: decimal.NewFromInt(50000)}
	agg := NewPaymentAggregator(repo, config.PaymentMatchIdentity)

	total, err := agg.TotalPaid(context.Background(), models.StudentIdentity{StudentID: "stu-1", Email: " awa@school.test ", FirstName: "Awa", LastName: "Diop"})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(50000)))
	require.Len(t, repo.identities, 1)
	assert.Equal(t, "awa@school.test", repo.identities[0].Email)
}

func TestPaymentAggregatorIdentityModeWithoutIdentity(t *testing.T) {
	repo := &fakePaymentTotals{byIdentity: decimal.NewFromInt(50000)}
	agg := NewPaymentAggregator(repo, config.PaymentMatchIdentity)

	total, err := agg.TotalPaid(context.Background(), models.StudentIdentity{StudentID: "stu-1", LastName: "Diop"})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Empty(t, repo.identities)
}

func TestPaymentAggregatorWrapsErrors(t *testing.T) {
	agg := NewPaymentAggregator(&fakePaymentTotals{err: errors.New("timeout")}, config.PaymentMatchForeignKey)

	_, err := agg.TotalPaid(context.Background(), models.StudentIdentity{StudentID: "stu-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum payments by student")
}
