package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InscriptionStatus is the lifecycle state of an enrollment record.
type InscriptionStatus string

const (
	InscriptionStatusPending   InscriptionStatus = "EN_ATTENTE"
	InscriptionStatusValidated InscriptionStatus = "VALIDEE"
	InscriptionStatusRejected  InscriptionStatus = "REJETEE"
)

// Inscription is the enrollment record created at admission. StudentID is the explicit
// link to the student account; it is nil until a student is matched or linked.
type Inscription struct {
	ID               string            `db:"id" json:"id"`
	StudentID        *string           `db:"student_id" json:"student_id,omitempty"`
	FirstName        string            `db:"first_name" json:"first_name"`
	LastName         string            `db:"last_name" json:"last_name"`
	Email            string            `db:"email" json:"email"`
	FraisInscription decimal.Decimal   `db:"frais_inscription" json:"frais_inscription"`
	FiliereID        *int64            `db:"filiere_id" json:"filiere_id,omitempty"`
	VagueID          *string           `db:"vague_id" json:"vague_id,omitempty"`
	Status           InscriptionStatus `db:"status" json:"status"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
}

// InscriptionFilter narrows inscription listings.
type InscriptionFilter struct {
	FiliereID *int64
	VagueID   string
	Status    InscriptionStatus
	Unlinked  bool
	Page      int
	PageSize  int
}
