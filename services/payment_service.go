package services

import (
	"context"
	"mime/multipart"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

// PaymentService runs the slip-verification flow. Every decision updates
// the payment row and its rental's payment_status in one transaction.
type PaymentService struct {
	db       *gorm.DB
	payments *repository.PaymentRepository
	rentals  *repository.RentalRepository
	storage  *utils.Storage
	notifier Notifier

	Now func() time.Time
}

func NewPaymentService(db *gorm.DB, storage *utils.Storage, notifier Notifier) *PaymentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PaymentService{
		db:       db,
		payments: repository.NewPaymentRepository(db),
		rentals:  repository.NewRentalRepository(db),
		storage:  storage,
		notifier: notifier,
		Now:      time.Now,
	}
}

type ProofInput struct {
	File          *multipart.FileHeader
	Method        entity.PaymentMethod
	TransactionID string
}

// SubmitProof stores the slip and moves the payment to
// pending_verification. A rejected payment can be resubmitted.
func (s *PaymentService) SubmitProof(ctx context.Context, customerID, rentalID uint, in ProofInput) (*entity.Payment, error) {
	if in.File == nil {
		return nil, apperr.Validation("payment proof is required")
	}
	if in.Method != "" && !in.Method.IsValid() {
		return nil, apperr.Validation("invalid payment method")
	}
	rental, err := s.rentals.FindForCustomer(ctx, customerID, rentalID)
	if err != nil {
		return nil, apperr.FromDB(err, "rental not found")
	}
	if rental.RentalStatus.IsTerminal() {
		return nil, apperr.InvalidState("rental is " + string(rental.RentalStatus))
	}

	existing := rental.Payment
	from := entity.PaymentPending
	if existing != nil {
		from = existing.PaymentStatus
	}
	to, err := NextPaymentStatus(from, PaymentSubmitProof)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveImage("proof", utils.PaymentsDir, in.File)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := s.payments.WithTx(tx)
		if existing == nil {
			method := in.Method
			if method == "" {
				method = entity.MethodPromptPay
			}
			if err := payments.Create(ctx, &entity.Payment{
				RentalID:      rental.ID,
				PaymentMethod: method,
				Amount:        rental.TotalAmount,
				PaymentDate:   &now,
				PaymentStatus: to,
				TransactionID: strings.TrimSpace(in.TransactionID),
				ProofImage:    url,
			}); err != nil {
				return err
			}
		} else {
			fields := map[string]any{
				"payment_status": to,
				"proof_image":    url,
				"payment_date":   now,
				"transaction_id": strings.TrimSpace(in.TransactionID),
				"reject_reason":  "",
			}
			if in.Method != "" {
				fields["payment_method"] = in.Method
			}
			n, err := payments.UpdateStatusGuard(ctx, existing.ID, from, fields)
			if err != nil {
				return err
			}
			if n == 0 {
				return apperr.InvalidState("invalid state or already updated")
			}
		}
		return s.rentals.WithTx(tx).SetPaymentStatus(ctx, rental.ID, to)
	})
	if err != nil {
		_ = s.storage.Remove(url)
		return nil, err
	}
	if existing != nil && existing.ProofImage != "" {
		_ = s.storage.Remove(existing.ProofImage)
	}

	s.publish(rental.ShopID, EventPaymentSubmitted, rental.ID, to)
	return s.payments.GetByRentalID(ctx, rental.ID)
}

func (s *PaymentService) ListForShop(ctx context.Context, shopID uint, status entity.PaymentStatus, p repository.Page) ([]entity.Payment, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, apperr.Validation("invalid payment status")
	}
	return s.payments.ListForShop(ctx, shopID, status, p)
}

func (s *PaymentService) ListRefunds(ctx context.Context, shopID uint, p repository.Page) ([]entity.Payment, int64, error) {
	return s.payments.ListRefundable(ctx, shopID, p)
}

func (s *PaymentService) Verify(ctx context.Context, shopID, paymentID uint) (*entity.Payment, error) {
	p, err := s.loadForShop(ctx, shopID, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Rental.RentalStatus == entity.RentalCancelled {
		return nil, apperr.InvalidState("rental was cancelled")
	}
	return s.decide(ctx, p, PaymentVerify, EventPaymentVerified, map[string]any{
		"verified_at": s.Now(),
		"verified_by": shopID,
	})
}

func (s *PaymentService) Reject(ctx context.Context, shopID, paymentID uint, reason string) (*entity.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("reject reason is required")
	}
	p, err := s.loadForShop(ctx, shopID, paymentID)
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, p, PaymentReject, EventPaymentRejected, map[string]any{"reject_reason": reason})
}

// ApproveRefund and DenyRefund only apply to cancelled rentals whose
// payment was paid or still awaiting verification.
func (s *PaymentService) ApproveRefund(ctx context.Context, shopID, paymentID uint, note string) (*entity.Payment, error) {
	p, err := s.loadRefund(ctx, shopID, paymentID)
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, p, PaymentRefund, EventPaymentRefunded, map[string]any{
		"refunded_at": s.Now(),
		"refund_note": strings.TrimSpace(note),
	})
}

func (s *PaymentService) DenyRefund(ctx context.Context, shopID, paymentID uint, reason string) (*entity.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("reason is required")
	}
	p, err := s.loadRefund(ctx, shopID, paymentID)
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, p, PaymentDenyRefund, EventPaymentRefundDenied, map[string]any{"reject_reason": reason})
}

func (s *PaymentService) loadForShop(ctx context.Context, shopID, paymentID uint) (*entity.Payment, error) {
	p, err := s.payments.FindForShop(ctx, shopID, paymentID)
	if err != nil {
		return nil, apperr.FromDB(err, "payment not found")
	}
	if p.Rental == nil {
		return nil, apperr.NotFound("payment not found")
	}
	return p, nil
}

func (s *PaymentService) loadRefund(ctx context.Context, shopID, paymentID uint) (*entity.Payment, error) {
	p, err := s.loadForShop(ctx, shopID, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Rental.RentalStatus != entity.RentalCancelled {
		return nil, apperr.InvalidState("refunds apply to cancelled rentals only")
	}
	if !slices.Contains(repository.RefundableStatuses(), p.PaymentStatus) {
		return nil, apperr.InvalidState("nothing to refund on a " + string(p.PaymentStatus) + " payment")
	}
	return p, nil
}

func (s *PaymentService) decide(ctx context.Context, p *entity.Payment, act PaymentAction, event string, extra map[string]any) (*entity.Payment, error) {
	to, err := NextPaymentStatus(p.PaymentStatus, act)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{"payment_status": to}
	for k, v := range extra {
		fields[k] = v
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.payments.WithTx(tx).UpdateStatusGuard(ctx, p.ID, p.PaymentStatus, fields)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.InvalidState("invalid state or already updated")
		}
		return s.rentals.WithTx(tx).SetPaymentStatus(ctx, p.RentalID, to)
	})
	if err != nil {
		return nil, err
	}
	s.publish(p.Rental.CustomerID, event, p.RentalID, to)
	return s.payments.FindForShop(ctx, p.Rental.ShopID, p.ID)
}

func (s *PaymentService) publish(userID uint, typ string, rentalID uint, status entity.PaymentStatus) {
	s.notifier.Notify(userID, Event{Type: typ, RentalID: rentalID, Status: string(status), At: s.Now()})
}
