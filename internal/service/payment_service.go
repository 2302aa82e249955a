package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) error
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.StudentRecord, error)
}

type financeInvalidator interface {
	InvalidateFinance(ctx context.Context)
}

// CreatePaymentRequest records money received against an inscription. Status is
// inferred from the reference prefix when omitted.
type CreatePaymentRequest struct {
	InscriptionID string               `json:"inscription_id" validate:"required"`
	Montant       decimal.Decimal      `json:"montant"`
	DatePaiement  *time.Time           `json:"date_paiement"`
	ModePaiement  string               `json:"mode_paiement" validate:"required,max=50"`
	Reference     string               `json:"reference" validate:"max=100"`
	Status        models.PaymentStatus `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

// UpdatePaymentStatusRequest approves or rejects a payment.
type UpdatePaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

// PaymentService records payments and keeps cached finance views fresh.
type PaymentService struct {
	repo        paymentRepository
	students    studentFinder
	invalidator financeInvalidator
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(repo paymentRepository, students studentFinder, invalidator financeInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		repo:        repo,
		students:    students,
		invalidator: invalidator,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// Create records a payment. No idempotency key is enforced; a retried request records twice.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*models.Payment, error) {
	req.InscriptionID = strings.TrimSpace(req.InscriptionID)
	req.ModePaiement = strings.TrimSpace(req.ModePaiement)
	req.Reference = strings.TrimSpace(req.Reference)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if !req.Montant.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "montant must be positive")
	}

	status := req.Status
	if status == "" {
		status = models.PaymentStatusFromReference(req.Reference)
	}
	paidAt := s.now().UTC()
	if req.DatePaiement != nil {
		paidAt = req.DatePaiement.UTC()
	}

	payment := &models.Payment{
		ID:            uuid.NewString(),
		InscriptionID: req.InscriptionID,
		Montant:       req.Montant,
		DatePaiement:  paidAt,
		ModePaiement:  req.ModePaiement,
		Reference:     req.Reference,
		Status:        status,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inscription not found")
		}
		return nil, appErrors.Internal(err, "failed to record payment")
	}

	s.metrics.RecordPayment(string(payment.Status))
	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("inscription_id", payment.InscriptionID),
		zap.String("status", string(payment.Status)),
	)
	s.invalidate(ctx)
	return payment, nil
}

// Get returns a payment by id.
func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Internal(err, "failed to load payment")
	}
	return payment, nil
}

// ListByStudent returns the payments of inscriptions linked to the student, newest first.
func (s *PaymentService) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	payments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list payments")
	}
	return payments, nil
}

// UpdateStatus moves a payment to a new approval state.
func (s *PaymentService) UpdateStatus(ctx context.Context, id string, req UpdatePaymentStatusRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status == req.Status {
		return payment, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Internal(err, "failed to update payment status")
	}
	s.logger.Info("payment status changed",
		zap.String("payment_id", id),
		zap.String("from", string(payment.Status)),
		zap.String("to", string(req.Status)),
	)
	payment.Status = req.Status
	s.invalidate(ctx)
	return payment, nil
}

func (s *PaymentService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateFinance(ctx)
	}
}
