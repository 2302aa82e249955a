package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

// UnassignedLabel names a missing program or cohort in summaries.
const UnassignedLabel = "Non assigné"

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentRecord, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRecord, int, error)
}

type feeResolver interface {
	Resolve(ctx context.Context, filiereID *int64, vagueID *string) (ResolvedFees, error)
}

type paidTotaler interface {
	TotalPaid(ctx context.Context, identity models.StudentIdentity) (decimal.Decimal, error)
}

// SummaryServiceConfig tunes balance summaries.
type SummaryServiceConfig struct {
	TermCount            int
	Concurrency          int
	FallbackOnFailure    bool
	FallbackRegistration decimal.Decimal
	FallbackTuition      decimal.Decimal
}

// SummaryService assembles per-student balance summaries.
type SummaryService struct {
	students studentReader
	fees     feeResolver
	payments paidTotaler
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      SummaryServiceConfig
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(students studentReader, fees feeResolver, payments paidTotaler, metrics *MetricsService, logger *zap.Logger, cfg SummaryServiceConfig) *SummaryService {
	if cfg.TermCount <= 0 {
		cfg.TermCount = DefaultTermCount
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{
		students: students,
		fees:     fees,
		payments: payments,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// TermCount returns the number of terms tuition is split into.
func (s *SummaryService) TermCount() int {
	return s.cfg.TermCount
}

// Summarize computes the balance of one student. A missing student is NOT_FOUND; any
// lookup failure after that is CALCULATION_FAILED.
func (s *SummaryService) Summarize(ctx context.Context, studentID string) (*dto.BalanceSummary, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	summary, err := s.compute(ctx, *student)
	if err != nil {
		s.metrics.RecordSummary(SummaryOutcomeError)
		return nil, err
	}
	s.metrics.RecordSummary(SummaryOutcomeOK)
	return summary, nil
}

// SummarizeOrFallback behaves like Summarize but, when fallback is enabled, replaces a
// calculation failure with the degraded default summary. NOT_FOUND is never replaced.
func (s *SummaryService) SummarizeOrFallback(ctx context.Context, studentID string) (*dto.BalanceSummary, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) || !s.cfg.FallbackOnFailure {
			return nil, err
		}
		s.logger.Warn("student lookup failed, serving fallback balance", zap.String("student_id", studentID), zap.Error(err))
		s.metrics.RecordSummary(SummaryOutcomeFallback)
		return s.fallback(models.StudentRecord{Student: models.Student{ID: studentID}}, "student lookup failed"), nil
	}
	return s.summarizeRecord(ctx, *student)
}

// SummarizeMany lists students matching filter and summarizes each of them with bounded
// concurrency. Results keep the order of the listing.
func (s *SummaryService) SummarizeMany(ctx context.Context, filter models.StudentFilter) ([]dto.BalanceSummary, *models.Pagination, error) {
	students, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list students")
	}

	summaries := make([]dto.BalanceSummary, len(students))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range students {
		i := i
		g.Go(func() error {
			summary, err := s.summarizeRecord(gctx, students[i])
			if err != nil {
				return err
			}
			summaries[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return summaries, newPagination(filter.Page, filter.PageSize, total), nil
}

func (s *SummaryService) summarizeRecord(ctx context.Context, student models.StudentRecord) (*dto.BalanceSummary, error) {
	summary, err := s.compute(ctx, student)
	if err == nil {
		s.metrics.RecordSummary(SummaryOutcomeOK)
		return summary, nil
	}
	if !s.cfg.FallbackOnFailure {
		s.metrics.RecordSummary(SummaryOutcomeError)
		return nil, err
	}
	s.logger.Warn("balance calculation failed, serving fallback",
		zap.String("student_id", student.ID),
		zap.Error(err),
	)
	s.metrics.RecordSummary(SummaryOutcomeFallback)
	return s.fallback(student, appErrors.FromError(err).Message), nil
}

func (s *SummaryService) loadStudent(ctx context.Context, studentID string) (*models.StudentRecord, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrCalculationFailed.Code, appErrors.ErrCalculationFailed.Status, "failed to load student")
	}
	return student, nil
}

func (s *SummaryService) compute(ctx context.Context, student models.StudentRecord) (*dto.BalanceSummary, error) {
	start := time.Now()
	fees, err := s.fees.Resolve(ctx, student.FiliereID, student.VagueID)
	s.metrics.ObserveBalanceStep(BalanceStepResolveFees, time.Since(start))
	if err != nil {
		return nil, calculationFailed(err, "failed to resolve fees")
	}

	start = time.Now()
	paid, err := s.payments.TotalPaid(ctx, student.Identity())
	s.metrics.ObserveBalanceStep(BalanceStepTotalPaid, time.Since(start))
	if err != nil {
		return nil, calculationFailed(err, "failed to aggregate payments")
	}

	return buildSummary(student, fees, paid, s.cfg.TermCount), nil
}

func (s *SummaryService) fallback(student models.StudentRecord, reason string) *dto.BalanceSummary {
	fees := ResolvedFees{
		RegistrationFee:    s.cfg.FallbackRegistration,
		TuitionFee:         s.cfg.FallbackTuition,
		RegistrationSource: FeeSourceDefault,
		TuitionSource:      FeeSourceDefault,
	}
	summary := buildSummary(student, fees, decimal.Zero, s.cfg.TermCount)
	summary.Degraded = true
	summary.FallbackReason = reason
	return summary
}

func calculationFailed(err error, message string) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrCalculationFailed.Code, appErrors.ErrCalculationFailed.Status, message)
}

func buildSummary(student models.StudentRecord, fees ResolvedFees, paid decimal.Decimal, termCount int) *dto.BalanceSummary {
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	allocation := AllocateTerms(paid, fees, termCount)
	totalDue := fees.Total()
	remaining := totalDue.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &dto.BalanceSummary{
		StudentID:              student.ID,
		StudentName:            student.FullName(),
		Email:                  student.Email,
		Filiere:                labelOrUnassigned(student.FiliereName),
		Vague:                  labelOrUnassigned(student.VagueName),
		FraisInscription:       fees.RegistrationFee,
		FraisScolarite:         fees.TuitionFee,
		RegistrationFeeSource:  string(fees.RegistrationSource),
		TuitionFeeSource:       string(fees.TuitionSource),
		TotalSchoolFees:        totalDue,
		PaidAmount:             paid,
		MontantInscriptionPaye: allocation.RegistrationPaid,
		MontantScolaritePaye:   allocation.TuitionPaid,
		RemainingAmount:        remaining,
		PaidSemesters:          allocation.PaidTerms,
		PendingSemesters:       allocation.PendingTerms,
		CurrentSemester:        allocation.CurrentTerm,
	}
}

func labelOrUnassigned(name *string) string {
	if name == nil || *name == "" {
		return UnassignedLabel
	}
	return *name
}
