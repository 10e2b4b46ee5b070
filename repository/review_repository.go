package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// RatingSummary is the {average, count} pair shown next to review lists.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	return Create(r.DB.WithContext(ctx), rv)
}

func (r *ReviewRepository) FindForCustomer(ctx context.Context, customerID, id uint) (*entity.Review, error) {
	return FindOne[entity.Review](r.DB.WithContext(ctx), "id = ? AND customer_id = ?", id, customerID)
}

func (r *ReviewRepository) ExistsForRental(ctx context.Context, rentalID uint) (bool, error) {
	return Exists[entity.Review](r.DB.WithContext(ctx), "rental_id = ?", rentalID)
}

func (r *ReviewRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	_, err := UpdateFields[entity.Review](r.DB.WithContext(ctx), id, fields)
	return err
}

// Delete is a hard delete so the rental can be reviewed again.
func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(&entity.Review{}, id).Error
}

func (r *ReviewRepository) ListByCustomer(ctx context.Context, customerID uint, p Page) ([]entity.Review, error) {
	return r.list(ctx, "customer_id = ?", customerID, p)
}

func (r *ReviewRepository) ListByCar(ctx context.Context, carID uint, p Page) ([]entity.Review, error) {
	return r.list(ctx, "car_id = ?", carID, p)
}

func (r *ReviewRepository) ListByShop(ctx context.Context, shopID uint, p Page) ([]entity.Review, error) {
	return r.list(ctx, "shop_id = ?", shopID, p)
}

func (r *ReviewRepository) list(ctx context.Context, where string, id uint, p Page) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.WithContext(ctx).
		Where(where, id).
		Order("id DESC").
		Scopes(Paginate(p)).
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) SummaryByCar(ctx context.Context, carID uint) (RatingSummary, error) {
	return r.summary(ctx, "car_id = ?", carID)
}

func (r *ReviewRepository) SummaryByShop(ctx context.Context, shopID uint) (RatingSummary, error) {
	return r.summary(ctx, "shop_id = ?", shopID)
}

func (r *ReviewRepository) summary(ctx context.Context, where string, id uint) (RatingSummary, error) {
	var s RatingSummary
	err := r.DB.WithContext(ctx).Model(&entity.Review{}).
		Where(where, id).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&s).Error
	return s, err
}
