package models

import "time"

// Program is an academic track (filière). Duration keeps the label entered by staff,
// DurationMonths is derived from it once when the program is written.
type Program struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Duration       string    `db:"duration" json:"duration"`
	DurationMonths int       `db:"duration_months" json:"duration_months"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Cohort is an intake wave (vague).
type Cohort struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
}
