package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const studentRecordColumns = `SELECT s.id, s.person_id, s.filiere_id, s.vague_id, s.created_at,
        p.first_name, p.last_name, p.email, f.name AS filiere_name, v.name AS vague_name`

const studentRecordFrom = `FROM students s
        JOIN persons p ON p.id = s.person_id
        LEFT JOIN filieres f ON f.id = s.filiere_id
        LEFT JOIN vagues v ON v.id = s.vague_id`

// StudentRepository reads student accounts joined with their person, program and cohort.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters ordered by name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRecord, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.FiliereID != nil {
		conditions = append(conditions, fmt.Sprintf("s.filiere_id = $%d", len(args)+1))
		args = append(args, *filter.FiliereID)
	}
	if filter.VagueID != "" {
		conditions = append(conditions, fmt.Sprintf("s.vague_id = $%d", len(args)+1))
		args = append(args, filter.VagueID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(p.first_name || ' ' || p.last_name) LIKE $%d OR LOWER(p.email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	where := "WHERE " + strings.Join(conditions, " AND ")
	size, offset := pageBounds(filter.Page, filter.PageSize)

	query := fmt.Sprintf("%s\n        %s %s ORDER BY p.last_name ASC, p.first_name ASC, s.id ASC LIMIT %d OFFSET %d",
		studentRecordColumns, studentRecordFrom, where, size, offset)

	var students []models.StudentRecord
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", studentRecordFrom, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student record. sql.ErrNoRows is returned unwrapped when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	query := studentRecordColumns + "\n        " + studentRecordFrom + " WHERE s.id = $1"
	var record models.StudentRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindIDByEmail returns the oldest student whose person uses email.
func (r *StudentRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	const query = `SELECT s.id FROM students s JOIN persons p ON p.id = s.person_id
        WHERE LOWER(p.email) = LOWER($1) ORDER BY s.created_at ASC LIMIT 1`
	var id string
	if err := r.db.GetContext(ctx, &id, query, email); err != nil {
		return "", err
	}
	return id, nil
}

func pageBounds(page, pageSize int) (size, offset int) {
	if page < 1 {
		page = 1
	}
	size = pageSize
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return size, (page - 1) * size
}
