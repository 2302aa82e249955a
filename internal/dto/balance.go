package dto

import "github.com/shopspring/decimal"

// BalanceSummary is the per-student tuition reconciliation record.
type BalanceSummary struct {
	StudentID              string          `json:"studentId"`
	StudentName            string          `json:"studentName"`
	Email                  string          `json:"email"`
	Filiere                string          `json:"filiere"`
	Vague                  string          `json:"vague"`
	FraisInscription       decimal.Decimal `json:"fraisInscription"`
	FraisScolarite         decimal.Decimal `json:"fraisScolarite"`
	RegistrationFeeSource  string          `json:"fraisInscriptionSource"`
	TuitionFeeSource       string          `json:"fraisScolariteSource"`
	TotalSchoolFees        decimal.Decimal `json:"totalSchoolFees"`
	PaidAmount             decimal.Decimal `json:"paidAmount"`
	MontantInscriptionPaye decimal.Decimal `json:"montantInscriptionPaye"`
	MontantScolaritePaye   decimal.Decimal `json:"montantScolaritePaye"`
	RemainingAmount        decimal.Decimal `json:"remainingAmount"`
	PaidSemesters          []string        `json:"paidSemesters"`
	PendingSemesters       []string        `json:"pendingSemesters"`
	CurrentSemester        string          `json:"currentSemester"`
	Degraded               bool            `json:"degraded"`
	FallbackReason         string          `json:"fallbackReason,omitempty"`
}

// ResolvedFeesResponse exposes the fee resolution for a program/cohort pair.
type ResolvedFeesResponse struct {
	FiliereID             *int64          `json:"filiereId,omitempty"`
	VagueID               *string         `json:"vagueId,omitempty"`
	FraisInscription      decimal.Decimal `json:"fraisInscription"`
	FraisScolarite        decimal.Decimal `json:"fraisScolarite"`
	RegistrationFeeSource string          `json:"fraisInscriptionSource"`
	TuitionFeeSource      string          `json:"fraisScolariteSource"`
}
