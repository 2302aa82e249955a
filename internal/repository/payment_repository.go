package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const paymentColumns = `p.id, p.inscription_id, p.montant, p.date_paiement, p.mode_paiement, p.reference, p.status, p.created_at`

// PaymentRepository persists payments and computes payment totals.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment. A missing inscription surfaces as a pq foreign key violation.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO paiements (id, inscription_id, montant, date_paiement, mode_paiement, reference, status, created_at)
VALUES (:id, :inscription_id, :montant, :date_paiement, :mode_paiement, :reference, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindByID fetches a payment by id.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM paiements p WHERE p.id = $1"
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByStudent returns payments of inscriptions linked to the student, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	query := "SELECT " + paymentColumns + ` FROM paiements p
JOIN inscriptions i ON i.id = p.inscription_id
WHERE i.student_id = $1 ORDER BY p.date_paiement DESC, p.id ASC`
	payments := []models.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("list payments by student: %w", err)
	}
	return payments, nil
}

// UpdateStatus changes the status of a payment. sql.ErrNoRows is returned when it does not exist.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	const query = `UPDATE paiements SET status = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment status rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SumByStudent totals non-rejected payments of inscriptions linked to the student.
func (r *PaymentRepository) SumByStudent(ctx context.Context, studentID string) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(p.montant), 0) FROM paiements p
JOIN inscriptions i ON i.id = p.inscription_id
WHERE i.student_id = $1 AND p.status <> $2`
	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, studentID, models.PaymentStatusRejected); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by student: %w", err)
	}
	return total, nil
}

// SumByIdentity totals non-rejected payments of inscriptions matching the student's
// email, or last and first name together. Each matching inscription counts once even
// when it matches on both rules.
func (r *PaymentRepository) SumByIdentity(ctx context.Context, identity models.StudentIdentity) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(p.montant), 0) FROM paiements p
WHERE p.status <> $4 AND p.inscription_id IN (
    SELECT i.id FROM inscriptions i
    WHERE ($1 <> '' AND LOWER(i.email) = LOWER($1))
       OR ($2 <> '' AND $3 <> '' AND i.last_name = $2 AND i.first_name = $3)
)`
	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, identity.Email, identity.LastName, identity.FirstName, models.PaymentStatusRejected); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments by identity: %w", err)
	}
	return total, nil
}
