package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// FeeSource records where a resolved fee came from.
type FeeSource string

const (
	FeeSourceUniversal FeeSource = "UNIVERSAL"
	FeeSourceKeyMatch  FeeSource = "KEY_MATCH"
	FeeSourceSchedule  FeeSource = "SCHEDULE"
	FeeSourceDefault   FeeSource = "DEFAULT"
)

// registrationKeyFragment is searched for when the universal registration key is absent.
const registrationKeyFragment = "INSCRIPTION"

type feeLookupRepository interface {
	FindConfiguration(ctx context.Context, key string) (*models.FeeConfiguration, error)
	FindConfigurationContaining(ctx context.Context, fragment string) (*models.FeeConfiguration, error)
	FindActiveSchedule(ctx context.Context, filiereID int64, vagueID string) (*models.TuitionSchedule, error)
}

// ResolvedFees is the registration and tuition fee applicable to a student.
type ResolvedFees struct {
	RegistrationFee    decimal.Decimal
	TuitionFee         decimal.Decimal
	RegistrationSource FeeSource
	TuitionSource      FeeSource
}

// Total is registration plus tuition. Other fee categories are not part of the balance.
func (f ResolvedFees) Total() decimal.Decimal {
	return f.RegistrationFee.Add(f.TuitionFee)
}

// FeeResolverConfig holds the hard defaults used when no row applies.
type FeeResolverConfig struct {
	RegistrationKey     string
	DefaultRegistration decimal.Decimal
	DefaultTuition      decimal.Decimal
}

// FeeResolver looks up the fees for a program/cohort pair.
type FeeResolver struct {
	repo feeLookupRepository
	cfg  FeeResolverConfig
}

// NewFeeResolver constructs a FeeResolver.
func NewFeeResolver(repo feeLookupRepository, cfg FeeResolverConfig) *FeeResolver {
	if cfg.RegistrationKey == "" {
		cfg.RegistrationKey = "INSCRIPTION_UNIVERSEL"
	}
	return &FeeResolver{repo: repo, cfg: cfg}
}

// Defaults returns the fees used when nothing is configured.
func (r *FeeResolver) Defaults() ResolvedFees {
	return ResolvedFees{
		RegistrationFee:    r.cfg.DefaultRegistration,
		TuitionFee:         r.cfg.DefaultTuition,
		RegistrationSource: FeeSourceDefault,
		TuitionSource:      FeeSourceDefault,
	}
}

// Resolve returns the registration fee (universal key, then any key containing
// INSCRIPTION, then the default) and the tuition fee (active schedule for the exact
// pair when both ids are known, else the default). Absent rows are not errors;
// lookup failures are returned to the caller.
func (r *FeeResolver) Resolve(ctx context.Context, filiereID *int64, vagueID *string) (ResolvedFees, error) {
	fees := r.Defaults()

	cfg, err := r.repo.FindConfiguration(ctx, r.cfg.RegistrationKey)
	switch {
	case err == nil:
		fees.RegistrationFee = cfg.Montant
		fees.RegistrationSource = FeeSourceUniversal
	case errors.Is(err, sql.ErrNoRows):
		cfg, err = r.repo.FindConfigurationContaining(ctx, registrationKeyFragment)
		switch {
		case err == nil:
			fees.RegistrationFee = cfg.Montant
			fees.RegistrationSource = FeeSourceKeyMatch
		case !errors.Is(err, sql.ErrNoRows):
			return ResolvedFees{}, fmt.Errorf("lookup registration fee by fragment: %w", err)
		}
	default:
		return ResolvedFees{}, fmt.Errorf("lookup registration fee: %w", err)
	}

	if filiereID == nil || vagueID == nil || *vagueID == "" {
		return fees, nil
	}

	schedule, err := r.repo.FindActiveSchedule(ctx, *filiereID, *vagueID)
	switch {
	case err == nil:
		fees.TuitionFee = schedule.FraisScolarite
		fees.TuitionSource = FeeSourceSchedule
	case !errors.Is(err, sql.ErrNoRows):
		return ResolvedFees{}, fmt.Errorf("lookup tuition schedule: %w", err)
	}
	return fees, nil
}
