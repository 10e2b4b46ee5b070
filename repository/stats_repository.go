package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

// StatsRepository holds the read-only aggregates behind the shop dashboard.
type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CarRentalCount struct {
	CarID   uint    `json:"carId"`
	Brand   string  `json:"brand"`
	Model   string  `json:"model"`
	Rentals int64   `json:"rentals"`
	Revenue float64 `json:"revenue"`
}

type ShopCustomer struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Rentals     int64  `json:"rentals"`
	Blacklisted bool   `json:"blacklisted" gorm:"-"`
}

func (r *StatsRepository) CarsByStatus(ctx context.Context, shopID uint) ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.WithContext(ctx).Model(&entity.Car{}).
		Select("status, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("status").
		Scan(&out).Error
	return out, err
}

func (r *StatsRepository) RentalsByStatus(ctx context.Context, shopID uint, from, to time.Time) ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.WithContext(ctx).Model(&entity.Rental{}).
		Select("rental_status AS status, COUNT(*) AS count").
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopID, from, to).
		Group("rental_status").
		Scan(&out).Error
	return out, err
}

// Revenue sums paid payments of the shop whose payment date falls in
// [from, to).
func (r *StatsRepository) Revenue(ctx context.Context, shopID uint, from, to time.Time) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN rentals ON rentals.id = payments.rental_id AND rentals.deleted_at IS NULL").
		Where("rentals.shop_id = ? AND payments.payment_status = ?", shopID, entity.PaymentPaid).
		Where("payments.payment_date >= ? AND payments.payment_date < ?", from, to).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&total).Error
	return total, err
}

// TopCars ranks the shop's cars by rental count in [from, to), cancelled
// rentals excluded.
func (r *StatsRepository) TopCars(ctx context.Context, shopID uint, from, to time.Time, limit int) ([]CarRentalCount, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []CarRentalCount
	err := r.DB.WithContext(ctx).Table("rentals AS r").
		Select("c.id AS car_id, c.brand, c.model, COUNT(r.id) AS rentals, COALESCE(SUM(r.total_amount), 0) AS revenue").
		Joins("JOIN cars c ON c.id = r.car_id").
		Where("r.shop_id = ? AND r.deleted_at IS NULL AND r.rental_status <> ?", shopID, entity.RentalCancelled).
		Where("r.created_at >= ? AND r.created_at < ?", from, to).
		Group("c.id, c.brand, c.model").
		Order("rentals DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// Customers lists everyone who has rented from the shop.
func (r *StatsRepository) Customers(ctx context.Context, shopID uint, p Page) ([]ShopCustomer, int64, error) {
	base := r.DB.WithContext(ctx).Table("rentals AS r").
		Joins("JOIN users u ON u.id = r.customer_id").
		Where("r.shop_id = ? AND r.deleted_at IS NULL", shopID)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("r.customer_id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []ShopCustomer
	err := base.
		Select("u.id, u.username, u.email, u.first_name, u.last_name, u.phone, COUNT(r.id) AS rentals").
		Group("u.id, u.username, u.email, u.first_name, u.last_name, u.phone").
		Order("rentals DESC").
		Scopes(Paginate(p)).
		Scan(&out).Error
	return out, total, err
}
