package entity

import (
	"time"

	"gorm.io/gorm"
)

// Rental is one booking of one car. RentalStatus and PaymentStatus move
// independently; PaymentStatus mirrors the Payment row.
type Rental struct {
	gorm.Model
	CarID      uint `gorm:"index;not null" json:"carId"`
	Car        *Car `json:"car,omitempty"`
	CustomerID uint `gorm:"index;not null" json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`
	ShopID     uint `gorm:"index;not null" json:"shopId"`
	Shop       User `gorm:"foreignKey:ShopID" json:"-"`

	StartDate      time.Time `gorm:"not null;index" json:"startDate"`
	EndDate        time.Time `gorm:"not null;index" json:"endDate"`
	PickupLocation string    `json:"pickupLocation"`
	ReturnLocation string    `json:"returnLocation"`
	Note           string    `gorm:"type:text" json:"note,omitempty"`

	RentalStatus  RentalStatus  `gorm:"size:20;not null;default:pending;index" json:"rentalStatus"`
	PaymentStatus PaymentStatus `gorm:"size:30;not null;default:pending;index" json:"paymentStatus"`

	Days          int     `json:"days"`
	DailyRate     float64 `gorm:"type:decimal(10,2)" json:"dailyRate"`
	InsuranceRate float64 `gorm:"type:decimal(10,2)" json:"insuranceRate"`
	WithInsurance bool    `json:"withInsurance"`
	TotalAmount   float64 `gorm:"type:decimal(12,2)" json:"totalAmount"`
	DepositAmount float64 `gorm:"type:decimal(10,2)" json:"depositAmount"`

	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	PickedUpAt         *time.Time `json:"pickedUpAt,omitempty"`
	ReturnRequestedAt  *time.Time `json:"returnRequestedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        Role       `gorm:"size:20" json:"cancelledBy,omitempty"`
	CancelReason       string     `json:"cancelReason,omitempty"`
	ShopAcknowledgedAt *time.Time `json:"shopAcknowledgedAt,omitempty"` // shop has seen the cancellation

	Payment *Payment `json:"payment,omitempty"`
	Review  *Review  `json:"review,omitempty"`
}
