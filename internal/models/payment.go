package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the approval state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRejected PaymentStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// Legacy reference prefixes that used to encode approval state.
const (
	referencePrefixManual   = "MAN-"
	referencePrefixApproved = "APP-"
	referencePrefixRejected = "REJ-"
)

// PaymentStatusFromReference maps a legacy reference prefix to a status.
// References without a known prefix are staff-recorded and count as approved.
func PaymentStatusFromReference(reference string) PaymentStatus {
	ref := strings.ToUpper(strings.TrimSpace(reference))
	switch {
	case strings.HasPrefix(ref, referencePrefixManual):
		return PaymentStatusPending
	case strings.HasPrefix(ref, referencePrefixApproved):
		return PaymentStatusApproved
	case strings.HasPrefix(ref, referencePrefixRejected):
		return PaymentStatusRejected
	default:
		return PaymentStatusApproved
	}
}

// Payment is money received against an inscription.
type Payment struct {
	ID            string          `db:"id" json:"id"`
	InscriptionID string          `db:"inscription_id" json:"inscription_id"`
	Montant       decimal.Decimal `db:"montant" json:"montant"`
	DatePaiement  time.Time       `db:"date_paiement" json:"date_paiement"`
	ModePaiement  string          `db:"mode_paiement" json:"mode_paiement"`
	Reference     string          `db:"reference" json:"reference"`
	Status        PaymentStatus   `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
