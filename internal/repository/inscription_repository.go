package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const inscriptionColumns = `id, student_id, first_name, last_name, email, frais_inscription, filiere_id, vague_id, status, created_at`

// InscriptionRepository persists enrollment records.
type InscriptionRepository struct {
	db *sqlx.DB
}

// NewInscriptionRepository constructs an InscriptionRepository.
func NewInscriptionRepository(db *sqlx.DB) *InscriptionRepository {
	return &InscriptionRepository{db: db}
}

// Create inserts an inscription.
func (r *InscriptionRepository) Create(ctx context.Context, inscription *models.Inscription) error {
	if inscription.CreatedAt.IsZero() {
		inscription.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO inscriptions (id, student_id, first_name, last_name, email, frais_inscription, filiere_id, vague_id, status, created_at)
VALUES (:id, :student_id, :first_name, :last_name, :email, :frais_inscription, :filiere_id, :vague_id, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inscription); err != nil {
		return fmt.Errorf("create inscription: %w", err)
	}
	return nil
}

// FindByID fetches an inscription by id.
func (r *InscriptionRepository) FindByID(ctx context.Context, id string) (*models.Inscription, error) {
	query := "SELECT " + inscriptionColumns + " FROM inscriptions WHERE id = $1"
	var inscription models.Inscription
	if err := r.db.GetContext(ctx, &inscription, query, id); err != nil {
		return nil, err
	}
	return &inscription, nil
}

// List returns inscriptions matching filter, newest first.
func (r *InscriptionRepository) List(ctx context.Context, filter models.InscriptionFilter) ([]models.Inscription, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.FiliereID != nil {
		conditions = append(conditions, fmt.Sprintf("filiere_id = $%d", len(args)+1))
		args = append(args, *filter.FiliereID)
	}
	if filter.VagueID != "" {
		conditions = append(conditions, fmt.Sprintf("vague_id = $%d", len(args)+1))
		args = append(args, filter.VagueID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Unlinked {
		conditions = append(conditions, "student_id IS NULL")
	}
	where := "WHERE " + strings.Join(conditions, " AND ")
	size, offset := pageBounds(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT %s FROM inscriptions %s ORDER BY created_at DESC, id ASC LIMIT %d OFFSET %d", inscriptionColumns, where, size, offset)
	inscriptions := []models.Inscription{}
	if err := r.db.SelectContext(ctx, &inscriptions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inscriptions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM inscriptions "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count inscriptions: %w", err)
	}
	return inscriptions, total, nil
}

// LinkStudent sets the student of an inscription. sql.ErrNoRows is returned when the
// inscription does not exist.
func (r *InscriptionRepository) LinkStudent(ctx context.Context, id, studentID string) error {
	const query = `UPDATE inscriptions SET student_id = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, studentID)
	if err != nil {
		return fmt.Errorf("link inscription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("link inscription rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
