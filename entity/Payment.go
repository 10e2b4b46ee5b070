package entity

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	RentalID uint    `gorm:"uniqueIndex;not null" json:"rentalId"`
	Rental   *Rental `json:"rental,omitempty"`

	PaymentMethod PaymentMethod `gorm:"size:30;not null;default:promptpay" json:"paymentMethod"`
	Amount        float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	PaymentStatus PaymentStatus `gorm:"size:30;not null;default:pending;index" json:"paymentStatus"`
	TransactionID string        `gorm:"size:100" json:"transactionId,omitempty"`
	ProofImage    string        `json:"proofImage,omitempty"`

	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy   *uint      `json:"verifiedBy,omitempty"`
	RejectReason string     `json:"rejectReason,omitempty"`
	RefundedAt   *time.Time `json:"refundedAt,omitempty"`
	RefundNote   string     `json:"refundNote,omitempty"`
}
