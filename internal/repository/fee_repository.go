package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// FeeRepository persists flat fee configuration and tuition schedules.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs the repository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// FindConfiguration fetches the fee stored under key.
func (r *FeeRepository) FindConfiguration(ctx context.Context, key string) (*models.FeeConfiguration, error) {
	const query = `SELECT type_frais, montant, updated_at FROM configuration_frais WHERE type_frais = $1`
	var cfg models.FeeConfiguration
	if err := r.db.GetContext(ctx, &cfg, query, key); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfigurationContaining fetches the most recently updated fee whose key contains
// fragment, ignoring case.
func (r *FeeRepository) FindConfigurationContaining(ctx context.Context, fragment string) (*models.FeeConfiguration, error) {
	const query = `SELECT type_frais, montant, updated_at FROM configuration_frais
WHERE UPPER(type_frais) LIKE $1 ORDER BY updated_at DESC, type_frais ASC LIMIT 1`
	var cfg models.FeeConfiguration
	if err := r.db.GetContext(ctx, &cfg, query, "%"+strings.ToUpper(fragment)+"%"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindActiveSchedule fetches the active tuition schedule of a program/cohort pair.
func (r *FeeRepository) FindActiveSchedule(ctx context.Context, filiereID int64, vagueID string) (*models.TuitionSchedule, error) {
	const query = `SELECT id, filiere_id, vague_id, frais_scolarite, statut, updated_at FROM frais_formation
WHERE filiere_id = $1 AND vague_id = $2 AND statut = $3 ORDER BY updated_at DESC LIMIT 1`
	var schedule models.TuitionSchedule
	if err := r.db.GetContext(ctx, &schedule, query, filiereID, vagueID, models.TuitionScheduleActive); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// UpsertConfiguration inserts or replaces a flat fee.
func (r *FeeRepository) UpsertConfiguration(ctx context.Context, cfg *models.FeeConfiguration) error {
	const query = `INSERT INTO configuration_frais (type_frais, montant, updated_at)
VALUES (:type_frais, :montant, :updated_at)
ON CONFLICT (type_frais)
DO UPDATE SET montant = EXCLUDED.montant, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("upsert fee configuration: %w", err)
	}
	return nil
}

// UpsertSchedule inserts or replaces the schedule of a program/cohort pair. The id of an
// existing row is kept and written back to schedule.
func (r *FeeRepository) UpsertSchedule(ctx context.Context, schedule *models.TuitionSchedule) error {
	const query = `INSERT INTO frais_formation (id, filiere_id, vague_id, frais_scolarite, statut, updated_at)
VALUES (:id, :filiere_id, :vague_id, :frais_scolarite, :statut, :updated_at)
ON CONFLICT (filiere_id, vague_id)
DO UPDATE SET frais_scolarite = EXCLUDED.frais_scolarite, statut = EXCLUDED.statut, updated_at = EXCLUDED.updated_at
RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, schedule)
	if err != nil {
		return fmt.Errorf("upsert tuition schedule: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&schedule.ID); err != nil {
			return fmt.Errorf("scan tuition schedule id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("upsert tuition schedule: %w", err)
	}
	return nil
}

// ListSchedules returns schedules, optionally narrowed to a program and/or cohort.
func (r *FeeRepository) ListSchedules(ctx context.Context, filiereID *int64, vagueID string) ([]models.TuitionSchedule, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filiereID != nil {
		conditions = append(conditions, fmt.Sprintf("filiere_id = $%d", len(args)+1))
		args = append(args, *filiereID)
	}
	if vagueID != "" {
		conditions = append(conditions, fmt.Sprintf("vague_id = $%d", len(args)+1))
		args = append(args, vagueID)
	}
	query := fmt.Sprintf(`SELECT id, filiere_id, vague_id, frais_scolarite, statut, updated_at FROM frais_formation
WHERE %s ORDER BY filiere_id ASC, vague_id ASC`, strings.Join(conditions, " AND "))

	schedules := []models.TuitionSchedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list tuition schedules: %w", err)
	}
	return schedules, nil
}
