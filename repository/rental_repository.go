package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

type RentalRepository struct {
	DB *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{DB: db}
}

func (r *RentalRepository) WithTx(tx *gorm.DB) *RentalRepository {
	return &RentalRepository{DB: tx}
}

type RentalFilter struct {
	RentalStatus  entity.RentalStatus
	PaymentStatus entity.PaymentStatus
	CarID         uint
	Page          Page
}

// ---------------- Rentals (main CRUD) ----------------

func (r *RentalRepository) Create(ctx context.Context, rental *entity.Rental) error {
	return Create(r.DB.WithContext(ctx), rental)
}

func (r *RentalRepository) FindByID(ctx context.Context, id uint) (*entity.Rental, error) {
	return FindByID[entity.Rental](r.DB.WithContext(ctx), id, "Car", "Payment", "Review")
}

// FindForCustomer and FindForShop scope the lookup to the caller so a
// foreign id reads as not found.
func (r *RentalRepository) FindForCustomer(ctx context.Context, customerID, id uint) (*entity.Rental, error) {
	var out entity.Rental
	err := r.DB.WithContext(ctx).
		Preload("Car").Preload("Payment").Preload("Review").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RentalRepository) FindForShop(ctx context.Context, shopID, id uint) (*entity.Rental, error) {
	var out entity.Rental
	err := r.DB.WithContext(ctx).
		Preload("Car").Preload("Payment").Preload("Review").
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RentalRepository) ListForCustomer(ctx context.Context, customerID uint, f RentalFilter) ([]entity.Rental, int64, error) {
	return r.list(ctx, r.DB.WithContext(ctx).Model(&entity.Rental{}).Where("customer_id = ?", customerID), f)
}

func (r *RentalRepository) ListForShop(ctx context.Context, shopID uint, f RentalFilter) ([]entity.Rental, int64, error) {
	return r.list(ctx, r.DB.WithContext(ctx).Model(&entity.Rental{}).Where("shop_id = ?", shopID), f)
}

func (r *RentalRepository) list(_ context.Context, q *gorm.DB, f RentalFilter) ([]entity.Rental, int64, error) {
	if f.RentalStatus != "" {
		q = q.Where("rental_status = ?", f.RentalStatus)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.CarID != 0 {
		q = q.Where("car_id = ?", f.CarID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Rental
	err := q.Preload("Car").Preload("Payment").
		Order("id DESC").
		Scopes(Paginate(f.Page)).
		Find(&out).Error
	return out, total, err
}

// HasOverlap reports an active rental of the car intersecting [start, end).
func (r *RentalRepository) HasOverlap(ctx context.Context, carID uint, start, end time.Time) (bool, error) {
	return Exists[entity.Rental](r.DB.WithContext(ctx),
		"car_id = ? AND rental_status IN ? AND start_date < ? AND end_date > ?",
		carID, entity.ActiveRentalStatuses(), end, start)
}

func (r *RentalRepository) CountActiveForCar(ctx context.Context, carID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Where("car_id = ? AND rental_status IN ?", carID, entity.ActiveRentalStatuses()).
		Count(&n).Error
	return n, err
}

// CountOngoingForCar ignores the rental with excludeID.
func (r *RentalRepository) CountOngoingForCar(ctx context.Context, carID, excludeID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Where("car_id = ? AND rental_status = ? AND id <> ?", carID, entity.RentalOngoing, excludeID).
		Count(&n).Error
	return n, err
}

// UpdateStatusGuard writes fields only if the rental is still in from.
// Zero affected rows means someone else moved it first.
func (r *RentalRepository) UpdateStatusGuard(ctx context.Context, id uint, from entity.RentalStatus, fields map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Where("id = ? AND rental_status = ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *RentalRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	_, err := UpdateFields[entity.Rental](r.DB.WithContext(ctx), id, fields)
	return err
}

func (r *RentalRepository) SetPaymentStatus(ctx context.Context, id uint, status entity.PaymentStatus) error {
	return r.Update(ctx, id, map[string]any{"payment_status": status})
}

// ---------------- Badge counts ----------------

func (r *RentalRepository) CountForShop(ctx context.Context, shopID uint, where string, args ...any) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Where("shop_id = ?", shopID).
		Where(where, args...).
		Count(&n).Error
	return n, err
}

func (r *RentalRepository) CountForCustomer(ctx context.Context, customerID uint, where string, args ...any) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Where("customer_id = ?", customerID).
		Where(where, args...).
		Count(&n).Error
	return n, err
}

// CountUnreviewedCompleted counts completed rentals of the customer that
// have no review yet.
func (r *RentalRepository) CountUnreviewedCompleted(ctx context.Context, customerID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Joins("LEFT JOIN reviews rv ON rv.rental_id = rentals.id AND rv.deleted_at IS NULL").
		Where("rentals.customer_id = ? AND rentals.rental_status = ? AND rv.id IS NULL", customerID, entity.RentalCompleted).
		Count(&n).Error
	return n, err
}
