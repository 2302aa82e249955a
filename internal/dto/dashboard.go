package dto

import "github.com/shopspring/decimal"

// FinanceDashboardResponse aggregates balances for the accountant dashboard.
type FinanceDashboardResponse struct {
	FiliereID      *int64          `json:"filiereId,omitempty"`
	VagueID        string          `json:"vagueId,omitempty"`
	StudentCount   int             `json:"studentCount"`
	FullyPaidCount int             `json:"fullyPaidCount"`
	DegradedCount  int             `json:"degradedCount"`
	TotalDue       decimal.Decimal `json:"totalDue"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	CollectionRate float64         `json:"collectionRate"`
	ByCurrentTerm  []TermHeadcount `json:"byCurrentSemester"`
}

// TermHeadcount counts students whose current term is Term.
type TermHeadcount struct {
	Term  string `json:"semester"`
	Count int    `json:"count"`
}
