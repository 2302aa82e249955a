package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeConfiguration is a global flat fee keyed by fee type, e.g. INSCRIPTION_UNIVERSEL.
type FeeConfiguration struct {
	TypeFrais string          `db:"type_frais" json:"type_frais"`
	Montant   decimal.Decimal `db:"montant" json:"montant"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// TuitionScheduleStatus marks whether a tuition schedule applies.
type TuitionScheduleStatus string

const (
	TuitionScheduleActive   TuitionScheduleStatus = "ACTIF"
	TuitionScheduleInactive TuitionScheduleStatus = "INACTIF"
)

// TuitionSchedule is the tuition fee for a (program, cohort) pair.
type TuitionSchedule struct {
	ID             string                `db:"id" json:"id"`
	FiliereID      int64                 `db:"filiere_id" json:"filiere_id"`
	VagueID        string                `db:"vague_id" json:"vague_id"`
	FraisScolarite decimal.Decimal       `db:"frais_scolarite" json:"frais_scolarite"`
	Statut         TuitionScheduleStatus `db:"statut" json:"statut"`
	UpdatedAt      time.Time             `db:"updated_at" json:"updated_at"`
}
