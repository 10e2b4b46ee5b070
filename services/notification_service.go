package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/repository"
)

// Event is what gets pushed to a connected user.
type Event struct {
	Type     string    `json:"type"`
	RentalID uint      `json:"rentalId"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}

const (
	EventRentalCreated         = "rental.created"
	EventRentalConfirmed       = "rental.confirmed"
	EventRentalStarted         = "rental.started"
	EventRentalReturnRequested = "rental.return_requested"
	EventRentalCompleted       = "rental.completed"
	EventRentalCancelled       = "rental.cancelled"
	EventPaymentSubmitted      = "payment.submitted"
	EventPaymentVerified       = "payment.verified"
	EventPaymentRejected       = "payment.rejected"
	EventPaymentRefunded       = "payment.refunded"
	EventPaymentRefundDenied   = "payment.refund_denied"
)

// Notifier delivers events to online users. Implementations must not block.
type Notifier interface {
	Notify(userID uint, ev Event)
}

type NopNotifier struct{}

func (NopNotifier) Notify(uint, Event) {}

type ShopCounts struct {
	PendingBookings       int64 `json:"pendingBookings"`
	PendingPayments       int64 `json:"pendingPayments"`
	UnacknowledgedCancels int64 `json:"unacknowledgedCancels"`
	ReturnRequests        int64 `json:"returnRequests"`
	Total                 int64 `json:"total"`
}

type CustomerCounts struct {
	ConfirmedRentals int64 `json:"confirmedRentals"`
	RejectedPayments int64 `json:"rejectedPayments"`
	AwaitingReview   int64 `json:"awaitingReview"`
	Total            int64 `json:"total"`
}

// NotificationService computes badge counts; the websocket push is only a
// hint to refresh them.
type NotificationService struct {
	rentals  *repository.RentalRepository
	payments *repository.PaymentRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		rentals:  repository.NewRentalRepository(db),
		payments: repository.NewPaymentRepository(db),
	}
}

func (s *NotificationService) ShopCounts(ctx context.Context, shopID uint) (*ShopCounts, error) {
	var out ShopCounts
	var err error
	if out.PendingBookings, err = s.rentals.CountForShop(ctx, shopID, "rental_status = ?", entity.RentalPending); err != nil {
		return nil, err
	}
	if out.PendingPayments, err = s.payments.CountForShop(ctx, shopID, entity.PaymentPendingVerification); err != nil {
		return nil, err
	}
	if out.UnacknowledgedCancels, err = s.rentals.CountForShop(ctx, shopID,
		"rental_status = ? AND shop_acknowledged_at IS NULL", entity.RentalCancelled); err != nil {
		return nil, err
	}
	if out.ReturnRequests, err = s.rentals.CountForShop(ctx, shopID,
		"rental_status = ? AND return_requested_at IS NOT NULL", entity.RentalOngoing); err != nil {
		return nil, err
	}
	out.Total = out.PendingBookings + out.PendingPayments + out.UnacknowledgedCancels + out.ReturnRequests
	return &out, nil
}

func (s *NotificationService) CustomerCounts(ctx context.Context, customerID uint) (*CustomerCounts, error) {
	var out CustomerCounts
	var err error
	if out.ConfirmedRentals, err = s.rentals.CountForCustomer(ctx, customerID, "rental_status = ?", entity.RentalConfirmed); err != nil {
		return nil, err
	}
	if out.RejectedPayments, err = s.rentals.CountForCustomer(ctx, customerID,
		"payment_status = ? AND rental_status <> ?", entity.PaymentRejected, entity.RentalCancelled); err != nil {
		return nil, err
	}
	if out.AwaitingReview, err = s.rentals.CountUnreviewedCompleted(ctx, customerID); err != nil {
		return nil, err
	}
	out.Total = out.ConfirmedRentals + out.RejectedPayments + out.AwaitingReview
	return &out, nil
}
