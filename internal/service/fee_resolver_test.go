package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
)

type fakeFeeRepo struct {
	configs   map[string]decimal.Decimal
	schedules map[string]decimal.Decimal
	err       error

	mu    sync.Mutex
	calls int
}

func (f *fakeFeeRepo) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeFeeRepo) FindConfiguration(_ context.Context, key string) (*models.FeeConfiguration, error) {
	f.count()
	if f.err != nil {
		return nil, f.err
	}
	amount, ok := f.configs[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.FeeConfiguration{TypeFrais: key, Montant: amount}, nil
}

func (f *fakeFeeRepo) FindConfigurationContaining(_ context.Context, fragment string) (*models.FeeConfiguration, error) {
	f.count()
	for key, amount := range f.configs {
		if strings.Contains(key, fragment) {
			return &models.FeeConfiguration{TypeFrais: key, Montant: amount}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeFeeRepo) FindActiveSchedule(_ context.Context, filiereID int64, vagueID string) (*models.TuitionSchedule, error) {
	f.count()
	amount, ok := f.schedules[scheduleKey(filiereID, vagueID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.TuitionSchedule{FiliereID: filiereID, VagueID: vagueID, FraisScolarite: amount, Statut: models.TuitionScheduleActive}, nil
}

func scheduleKey(filiereID int64, vagueID string) string {
	return strconv.FormatInt(filiereID, 10) + "/" + vagueID
}

func newTestResolver(repo *fakeFeeRepo) *FeeResolver {
	return NewFeeResolver(repo, FeeResolverConfig{
		RegistrationKey:     "INSCRIPTION_UNIVERSEL",
		DefaultRegistration: decimal.NewFromInt(50000),
		DefaultTuition:      decimal.NewFromInt(885000),
	})
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

func TestFeeResolverDefaultsWhenNothingConfigured(t *testing.T) {
	resolver := newTestResolver(&fakeFeeRepo{})

	fees, err := resolver.Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, fees.RegistrationFee.Equal(decimal.NewFromInt(50000)))
	assert.True(t, fees.TuitionFee.Equal(decimal.NewFromInt(885000)))
	assert.Equal(t, FeeSourceDefault, fees.RegistrationSource)
	assert.Equal(t, FeeSourceDefault, fees.TuitionSource)
}

func TestFeeResolverUniversalKeyWins(t *testing.T) {
	repo := &fakeFeeRepo{configs: map[string]decimal.Decimal{
		"INSCRIPTION_UNIVERSEL": decimal.NewFromInt(75000),
	}}

	fees, err := newTestResolver(repo).Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, fees.RegistrationFee.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, FeeSourceUniversal, fees.RegistrationSource)
}

func TestFeeResolverFallsBackToKeyContainingInscription(t *testing.T) {
	repo := &fakeFeeRepo{configs: map[string]decimal.Decimal{
		"FRAIS_INSCRIPTION_2024": decimal.NewFromInt(60000),
	}}

	fees, err := newTestResolver(repo).Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, fees.RegistrationFee.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, FeeSourceKeyMatch, fees.RegistrationSource)
}

func TestFeeResolverActiveScheduleWinsOverDefault(t *testing.T) {
	repo := &fakeFeeRepo{
		configs:   map[string]decimal.Decimal{"INSCRIPTION_UNIVERSEL": decimal.NewFromInt(50000)},
		schedules: map[string]decimal.Decimal{scheduleKey(1, "v1"): decimal.NewFromInt(600000)},
	}

	fees, err := newTestResolver(repo).Resolve(context.Background(), int64Ptr(1), stringPtr("v1"))
	require.NoError(t, err)
	assert.True(t, fees.TuitionFee.Equal(decimal.NewFromInt(600000)))
	assert.Equal(t, FeeSourceSchedule, fees.TuitionSource)
	assert.True(t, fees.Total().Equal(decimal.NewFromInt(650000)))
}

func TestFeeResolverSkipsScheduleWithoutBothIDs(t *testing.T) {
	repo := &fakeFeeRepo{schedules: map[string]decimal.Decimal{scheduleKey(1, "v1"): decimal.NewFromInt(600000)}}

	fees, err := newTestResolver(repo).Resolve(context.Background(), int64Ptr(1), nil)
	require.NoError(t, err)
	assert.True(t, fees.TuitionFee.Equal(decimal.NewFromInt(885000)))
	assert.Equal(t, FeeSourceDefault, fees.TuitionSource)
	assert.Equal(t, 2, repo.calls)
}

func TestFeeResolverReturnsLookupErrors(t *testing.T) {
	repo := &fakeFeeRepo{err: errors.New("connection reset")}

	_, err := newTestResolver(repo).Resolve(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
