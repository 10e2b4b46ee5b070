package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: tx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	return Create(r.DB.WithContext(ctx), p)
}

func (r *PaymentRepository) GetByRentalID(ctx context.Context, rentalID uint) (*entity.Payment, error) {
	return FindOne[entity.Payment](r.DB.WithContext(ctx), "rental_id = ?", rentalID)
}

// FindForShop loads a payment together with its rental, scoped to the
// shop that owns the rental.
func (r *PaymentRepository) FindForShop(ctx context.Context, shopID, paymentID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.WithContext(ctx).
		Preload("Rental").
		Joins("JOIN rentals ON rentals.id = payments.rental_id AND rentals.deleted_at IS NULL").
		Where("payments.id = ? AND rentals.shop_id = ?", paymentID, shopID).
		Select("payments.*").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatusGuard writes fields only if the payment is still in from.
func (r *PaymentRepository) UpdateStatusGuard(ctx context.Context, id uint, from entity.PaymentStatus, fields map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Payment{}).
		Where("id = ? AND payment_status = ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *PaymentRepository) ListForShop(ctx context.Context, shopID uint, status entity.PaymentStatus, p Page) ([]entity.Payment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN rentals ON rentals.id = payments.rental_id AND rentals.deleted_at IS NULL").
		Where("rentals.shop_id = ?", shopID)
	if status != "" {
		q = q.Where("payments.payment_status = ?", status)
	}
	return r.page(q, p)
}

// ListRefundable returns paid or unverified payments whose rental was
// cancelled.
func (r *PaymentRepository) ListRefundable(ctx context.Context, shopID uint, p Page) ([]entity.Payment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN rentals ON rentals.id = payments.rental_id AND rentals.deleted_at IS NULL").
		Where("rentals.shop_id = ? AND rentals.rental_status = ? AND payments.payment_status IN ?",
			shopID, entity.RentalCancelled, RefundableStatuses())
	return r.page(q, p)
}

func (r *PaymentRepository) page(q *gorm.DB, p Page) ([]entity.Payment, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Payment
	err := q.Select("payments.*").
		Preload("Rental").
		Order("payments.id DESC").
		Scopes(Paginate(p)).
		Find(&out).Error
	return out, total, err
}

// CountForShop skips cancelled rentals; those payments sit in the refund
// queue instead.
func (r *PaymentRepository) CountForShop(ctx context.Context, shopID uint, status entity.PaymentStatus) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN rentals ON rentals.id = payments.rental_id AND rentals.deleted_at IS NULL").
		Where("rentals.shop_id = ? AND rentals.rental_status <> ? AND payments.payment_status = ?",
			shopID, entity.RentalCancelled, status).
		Count(&n).Error
	return n, err
}

// RefundableStatuses are the payment states a cancelled rental can be
// refunded from.
func RefundableStatuses() []entity.PaymentStatus {
	return []entity.PaymentStatus{entity.PaymentPaid, entity.PaymentPendingVerification}
}
