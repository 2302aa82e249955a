package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
)

const financeCachePattern = "dash:finance:*"

type balanceLister interface {
	SummarizeMany(ctx context.Context, filter models.StudentFilter) ([]dto.BalanceSummary, *models.Pagination, error)
}

// FinanceFilter narrows the finance dashboard to a program and/or cohort.
type FinanceFilter struct {
	FiliereID *int64
	VagueID   string
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL  time.Duration
	TermCount int
	PageSize  int
}

// DashboardService composes the accountant finance dashboard from balance summaries.
type DashboardService struct {
	balances balanceLister
	cache    *CacheService
	logger   *zap.Logger
	cfg      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(balances balanceLister, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.TermCount <= 0 {
		cfg.TermCount = DefaultTermCount
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		cfg.PageSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{balances: balances, cache: cache, logger: logger, cfg: cfg}
}

// Finance returns the finance dashboard and whether it was served from cache.
// Dashboards containing degraded summaries are not cached.
func (s *DashboardService) Finance(ctx context.Context, filter FinanceFilter) (*dto.FinanceDashboardResponse, bool, error) {
	key := financeCacheKey(filter)
	if s.cache != nil {
		var cached dto.FinanceDashboardResponse
		hit, err := s.cache.Get(ctx, key, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.composeFinance(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	if summary.DegradedCount == 0 {
		s.persistCache(ctx, key, summary)
	}
	return summary, false, nil
}

// InvalidateFinance drops every cached finance dashboard.
func (s *DashboardService) InvalidateFinance(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, financeCachePattern); err != nil {
		s.logger.Warn("finance dashboard invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) composeFinance(ctx context.Context, filter FinanceFilter) (*dto.FinanceDashboardResponse, error) {
	summary := &dto.FinanceDashboardResponse{
		FiliereID:      filter.FiliereID,
		VagueID:        filter.VagueID,
		TotalDue:       decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	termCounts := map[string]int{}

	for page := 1; ; page++ {
		balances, pagination, err := s.balances.SummarizeMany(ctx, models.StudentFilter{
			FiliereID: filter.FiliereID,
			VagueID:   filter.VagueID,
			Page:      page,
			PageSize:  s.cfg.PageSize,
		})
		if err != nil {
			return nil, err
		}
		for _, balance := range balances {
			summary.StudentCount++
			if balance.Degraded {
				summary.DegradedCount++
				continue
			}
			summary.TotalDue = summary.TotalDue.Add(balance.TotalSchoolFees)
			summary.TotalPaid = summary.TotalPaid.Add(balance.PaidAmount)
			summary.TotalRemaining = summary.TotalRemaining.Add(balance.RemainingAmount)
			if balance.RemainingAmount.IsZero() {
				summary.FullyPaidCount++
			}
			termCounts[balance.CurrentSemester]++
		}
		if len(balances) == 0 || pagination == nil || page*s.cfg.PageSize >= pagination.TotalCount {
			break
		}
	}

	if summary.TotalDue.IsPositive() {
		collected := summary.TotalDue.Sub(summary.TotalRemaining)
		summary.CollectionRate, _ = collected.Div(summary.TotalDue).Round(4).Float64()
	}

	labels := append(TermLabels(s.cfg.TermCount), TermCompleted)
	summary.ByCurrentTerm = make([]dto.TermHeadcount, 0, len(labels))
	for _, label := range labels {
		summary.ByCurrentTerm = append(summary.ByCurrentTerm, dto.TermHeadcount{Term: label, Count: termCounts[label]})
	}
	return summary, nil
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func financeCacheKey(filter FinanceFilter) string {
	filiere := "all"
	if filter.FiliereID != nil {
		filiere = strconv.FormatInt(*filter.FiliereID, 10)
	}
	vague := "all"
	if filter.VagueID != "" {
		vague = filter.VagueID
	}
	return fmt.Sprintf("dash:finance:%s:%s", filiere, vague)
}
