package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type inscriptionRepository interface {
	Create(ctx context.Context, inscription *models.Inscription) error
	FindByID(ctx context.Context, id string) (*models.Inscription, error)
	List(ctx context.Context, filter models.InscriptionFilter) ([]models.Inscription, int, error)
	LinkStudent(ctx context.Context, id, studentID string) error
}

type studentEmailLookup interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
}

// CreateInscriptionRequest captures an admission.
type CreateInscriptionRequest struct {
	FirstName        string          `json:"first_name" validate:"required,max=100"`
	LastName         string          `json:"last_name" validate:"required,max=100"`
	Email            string          `json:"email" validate:"required,email"`
	FraisInscription decimal.Decimal `json:"frais_inscription"`
	FiliereID        *int64          `json:"filiere_id"`
	VagueID          *string         `json:"vague_id"`
}

// LinkStudentRequest attaches an inscription to a student account.
type LinkStudentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// EnrollmentService manages inscriptions and their link to student accounts.
type EnrollmentService struct {
	repo        inscriptionRepository
	students    studentEmailLookup
	invalidator financeInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo inscriptionRepository, students studentEmailLookup, invalidator financeInvalidator, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, invalidator: invalidator, validator: validate, logger: logger}
}

// Create stores an inscription in EN_ATTENTE. When a student account already uses the
// email the inscription is linked to it immediately.
func (s *EnrollmentService) Create(ctx context.Context, req CreateInscriptionRequest) (*models.Inscription, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inscription payload")
	}
	if req.FraisInscription.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "frais_inscription cannot be negative")
	}

	inscription := &models.Inscription{
		ID:               uuid.NewString(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		FraisInscription: req.FraisInscription,
		FiliereID:        req.FiliereID,
		VagueID:          req.VagueID,
		Status:           models.InscriptionStatusPending,
	}

	studentID, err := s.students.FindIDByEmail(ctx, req.Email)
	switch {
	case err == nil:
		inscription.StudentID = &studentID
	case !errors.Is(err, sql.ErrNoRows):
		return nil, appErrors.Internal(err, "failed to match student by email")
	}

	if err := s.repo.Create(ctx, inscription); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown filiere or vague")
		}
		return nil, appErrors.Internal(err, "failed to create inscription")
	}

	s.logger.Info("inscription created",
		zap.String("inscription_id", inscription.ID),
		zap.Bool("linked", inscription.StudentID != nil),
	)
	if inscription.StudentID != nil {
		s.invalidate(ctx)
	}
	return inscription, nil
}

// Get returns an inscription by id.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Inscription, error) {
	inscription, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inscription not found")
		}
		return nil, appErrors.Internal(err, "failed to load inscription")
	}
	return inscription, nil
}

// List returns inscriptions with pagination metadata.
func (s *EnrollmentService) List(ctx context.Context, filter models.InscriptionFilter) ([]models.Inscription, *models.Pagination, error) {
	if filter.Status != "" && !validInscriptionStatus(filter.Status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid inscription status")
	}
	inscriptions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list inscriptions")
	}
	return inscriptions, newPagination(filter.Page, filter.PageSize, total), nil
}

// LinkStudent sets the student an inscription belongs to.
func (s *EnrollmentService) LinkStudent(ctx context.Context, id string, req LinkStudentRequest) (*models.Inscription, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid link payload")
	}
	inscription, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.LinkStudent(ctx, id, req.StudentID); err != nil {
		switch {
		case database.IsForeignKeyViolation(err):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inscription not found")
		}
		return nil, appErrors.Internal(err, "failed to link inscription")
	}
	inscription.StudentID = &req.StudentID
	s.logger.Info("inscription linked", zap.String("inscription_id", id), zap.String("student_id", req.StudentID))
	s.invalidate(ctx)
	return inscription, nil
}

func (s *EnrollmentService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateFinance(ctx)
	}
}

func validInscriptionStatus(status models.InscriptionStatus) bool {
	switch status {
	case models.InscriptionStatusPending, models.InscriptionStatusValidated, models.InscriptionStatusRejected:
		return true
	}
	return false
}

func newPagination(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
