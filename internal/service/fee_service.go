package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type feeAdminRepository interface {
	UpsertConfiguration(ctx context.Context, cfg *models.FeeConfiguration) error
	UpsertSchedule(ctx context.Context, schedule *models.TuitionSchedule) error
	ListSchedules(ctx context.Context, filiereID *int64, vagueID string) ([]models.TuitionSchedule, error)
}

// UpsertFeeConfigurationRequest sets a flat fee amount.
type UpsertFeeConfigurationRequest struct {
	Montant decimal.Decimal `json:"montant"`
}

// UpsertTuitionScheduleRequest sets the tuition for a program/cohort pair.
type UpsertTuitionScheduleRequest struct {
	FiliereID      int64           `json:"filiere_id" validate:"required,gt=0"`
	VagueID        string          `json:"vague_id" validate:"required"`
	FraisScolarite decimal.Decimal `json:"frais_scolarite"`
	Active         *bool           `json:"active"`
}

// FeeService administers fee configuration and exposes fee resolution.
type FeeService struct {
	repo        feeAdminRepository
	resolver    feeResolver
	invalidator financeInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewFeeService constructs a FeeService.
func NewFeeService(repo feeAdminRepository, resolver feeResolver, invalidator financeInvalidator, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{repo: repo, resolver: resolver, invalidator: invalidator, validator: validate, logger: logger, now: time.Now}
}

// ResolveFor reports the fees that apply to a program/cohort pair and where they come from.
func (s *FeeService) ResolveFor(ctx context.Context, filiereID *int64, vagueID *string) (*dto.ResolvedFeesResponse, error) {
	fees, err := s.resolver.Resolve(ctx, filiereID, vagueID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to resolve fees")
	}
	return &dto.ResolvedFeesResponse{
		FiliereID:             filiereID,
		VagueID:               vagueID,
		FraisInscription:      fees.RegistrationFee,
		FraisScolarite:        fees.TuitionFee,
		RegistrationFeeSource: string(fees.RegistrationSource),
		TuitionFeeSource:      string(fees.TuitionSource),
	}, nil
}

// UpsertConfiguration creates or replaces the flat fee stored under key.
func (s *FeeService) UpsertConfiguration(ctx context.Context, key string, req UpsertFeeConfigurationRequest) (*models.FeeConfiguration, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fee key is required")
	}
	if req.Montant.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "montant cannot be negative")
	}
	cfg := &models.FeeConfiguration{TypeFrais: key, Montant: req.Montant, UpdatedAt: s.now().UTC()}
	if err := s.repo.UpsertConfiguration(ctx, cfg); err != nil {
		return nil, appErrors.Internal(err, "failed to save fee configuration")
	}
	s.logger.Info("fee configuration saved", zap.String("key", key), zap.String("montant", cfg.Montant.String()))
	s.invalidate(ctx)
	return cfg, nil
}

// UpsertSchedule creates or replaces the tuition schedule of a program/cohort pair.
func (s *FeeService) UpsertSchedule(ctx context.Context, req UpsertTuitionScheduleRequest) (*models.TuitionSchedule, error) {
	req.VagueID = strings.TrimSpace(req.VagueID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tuition schedule payload")
	}
	if req.FraisScolarite.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "frais_scolarite cannot be negative")
	}

	status := models.TuitionScheduleActive
	if req.Active != nil && !*req.Active {
		status = models.TuitionScheduleInactive
	}
	schedule := &models.TuitionSchedule{
		ID:             uuid.NewString(),
		FiliereID:      req.FiliereID,
		VagueID:        req.VagueID,
		FraisScolarite: req.FraisScolarite,
		Statut:         status,
		UpdatedAt:      s.now().UTC(),
	}
	if err := s.repo.UpsertSchedule(ctx, schedule); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "filiere or vague not found")
		}
		return nil, appErrors.Internal(err, "failed to save tuition schedule")
	}
	s.logger.Info("tuition schedule saved",
		zap.Int64("filiere_id", schedule.FiliereID),
		zap.String("vague_id", schedule.VagueID),
		zap.String("statut", string(schedule.Statut)),
	)
	s.invalidate(ctx)
	return schedule, nil
}

// ListSchedules returns tuition schedules, optionally narrowed to a program or cohort.
func (s *FeeService) ListSchedules(ctx context.Context, filiereID *int64, vagueID string) ([]models.TuitionSchedule, error) {
	schedules, err := s.repo.ListSchedules(ctx, filiereID, strings.TrimSpace(vagueID))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list tuition schedules")
	}
	return schedules, nil
}

func (s *FeeService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateFinance(ctx)
	}
}
