package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type programRepository interface {
	Create(ctx context.Context, program *models.Program) error
	FindByID(ctx context.Context, id int64) (*models.Program, error)
	List(ctx context.Context) ([]models.Program, error)
}

// CreateProgramRequest creates a filière. Duration is a label such as "3 ans" or "18 mois".
type CreateProgramRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Duration string `json:"duration" validate:"required,max=50"`
}

var durationPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*(\pL+)$`)

var durationUnits = map[string]int64{
	"an": 12, "ans": 12, "annee": 12, "annees": 12, "année": 12, "années": 12,
	"year": 12, "years": 12,
	"semestre": 6, "semestres": 6, "semester": 6, "semesters": 6,
	"mois": 1, "month": 1, "months": 1,
}

// ParseDurationMonths converts a duration label to whole months.
func ParseDurationMonths(label string) (int, error) {
	match := durationPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(label)))
	if match == nil {
		return 0, fmt.Errorf("unrecognised duration %q", label)
	}
	factor, ok := durationUnits[match[2]]
	if !ok {
		return 0, fmt.Errorf("unknown duration unit %q", match[2])
	}
	value, err := decimal.NewFromString(strings.Replace(match[1], ",", ".", 1))
	if err != nil {
		return 0, fmt.Errorf("parse duration amount: %w", err)
	}
	months := value.Mul(decimal.NewFromInt(factor)).Round(0).IntPart()
	if months <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", label)
	}
	return int(months), nil
}

// ProgramService manages filières.
type ProgramService struct {
	repo      programRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgramService constructs ProgramService.
func NewProgramService(repo programRepository, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{repo: repo, validator: validate, logger: logger}
}

// Create stores a program with its duration resolved to months.
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (*models.Program, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Duration = strings.TrimSpace(req.Duration)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program payload")
	}
	months, err := ParseDurationMonths(req.Duration)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program duration")
	}

	program := &models.Program{Name: req.Name, Duration: req.Duration, DurationMonths: months}
	if err := s.repo.Create(ctx, program); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "program name already exists")
		}
		return nil, appErrors.Internal(err, "failed to create program")
	}
	s.logger.Info("program created", zap.Int64("filiere_id", program.ID), zap.Int("duration_months", months))
	return program, nil
}

// Get returns a program by id.
func (s *ProgramService) Get(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Internal(err, "failed to load program")
	}
	return program, nil
}

// List returns every program ordered by name.
func (s *ProgramService) List(ctx context.Context) ([]models.Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list programs")
	}
	return programs, nil
}
