package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

type CarRepository struct {
	DB *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{DB: db}
}

func (r *CarRepository) WithTx(tx *gorm.DB) *CarRepository {
	return &CarRepository{DB: tx}
}

// CarFilter drives the public search.
type CarFilter struct {
	Query        string
	CarType      string
	Transmission string
	FuelType     string
	SeatsMin     int
	PriceMin     float64
	PriceMax     float64
	ShopID       uint
	Start, End   *time.Time // both set: exclude cars booked in [Start, End)
	Sort         string
	Page         Page
}

func (r *CarRepository) Create(ctx context.Context, car *entity.Car) error {
	return Create(r.DB.WithContext(ctx), car)
}

func (r *CarRepository) FindByID(ctx context.Context, id uint) (*entity.Car, error) {
	return FindByID[entity.Car](r.DB.WithContext(ctx), id, "Images")
}

// LockByID reads the car with FOR UPDATE where the driver supports it.
// SQLite ignores the locking clause and serialises writers instead.
func (r *CarRepository) LockByID(ctx context.Context, id uint) (*entity.Car, error) {
	var car entity.Car
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&car, id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarRepository) FindForShop(ctx context.Context, shopID, carID uint) (*entity.Car, error) {
	var car entity.Car
	err := r.DB.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND shop_id = ?", carID, shopID).
		First(&car).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	_, err := UpdateFields[entity.Car](r.DB.WithContext(ctx), id, fields)
	return err
}

func (r *CarRepository) UpdateStatus(ctx context.Context, id uint, status entity.CarStatus) error {
	return r.Update(ctx, id, map[string]any{"status": status})
}

// SetStatusIf moves the car only when it is still in from.
func (r *CarRepository) SetStatusIf(ctx context.Context, id uint, from, to entity.CarStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Car{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

// Delete soft-deletes the car and releases its plate for re-registration.
func (r *CarRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Car{}).Where("id = ?", id).Update("plate_key", nil).Error; err != nil {
			return err
		}
		_, err := Delete[entity.Car](tx, id)
		return err
	})
}

func (r *CarRepository) ListByShop(ctx context.Context, shopID uint, status entity.CarStatus, p Page) ([]entity.Car, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Car{}).Where("shop_id = ?", shopID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var cars []entity.Car
	err := q.Order("id DESC").Scopes(Paginate(p)).Find(&cars).Error
	return cars, total, err
}

// Search lists available cars of active shops.
func (r *CarRepository) Search(ctx context.Context, f CarFilter) ([]entity.Car, int64, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Car{}).
		Joins("JOIN users shop ON shop.id = cars.shop_id AND shop.status = ? AND shop.deleted_at IS NULL", entity.UserActive).
		Where("cars.status = ?", entity.CarAvailable)

	if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(cars.brand) LIKE ? OR LOWER(cars.model) LIKE ?", like, like)
	}
	if f.CarType != "" {
		q = q.Where("cars.car_type = ?", f.CarType)
	}
	if f.Transmission != "" {
		q = q.Where("cars.transmission = ?", f.Transmission)
	}
	if f.FuelType != "" {
		q = q.Where("cars.fuel_type = ?", f.FuelType)
	}
	if f.SeatsMin > 0 {
		q = q.Where("cars.seats >= ?", f.SeatsMin)
	}
	if f.PriceMin > 0 {
		q = q.Where("cars.daily_rate >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("cars.daily_rate <= ?", f.PriceMax)
	}
	if f.ShopID != 0 {
		q = q.Where("cars.shop_id = ?", f.ShopID)
	}
	if f.Start != nil && f.End != nil {
		busy := r.DB.Model(&entity.Rental{}).
			Select("car_id").
			Where("rental_status IN ?", entity.ActiveRentalStatuses()).
			Where("start_date < ? AND end_date > ?", *f.End, *f.Start)
		q = q.Where("cars.id NOT IN (?)", busy)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("cars.daily_rate ASC")
	case "price_desc":
		q = q.Order("cars.daily_rate DESC")
	default:
		q = q.Order("cars.id DESC")
	}

	var cars []entity.Car
	err := q.Select("cars.*").Scopes(Paginate(f.Page)).Find(&cars).Error
	return cars, total, err
}

// ---------------- Images ----------------

func (r *CarRepository) CreateImages(ctx context.Context, imgs []entity.CarImage) error {
	if len(imgs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&imgs).Error
}

func (r *CarRepository) ListImages(ctx context.Context, carID uint) ([]entity.CarImage, error) {
	var out []entity.CarImage
	err := r.DB.WithContext(ctx).Where("car_id = ?", carID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *CarRepository) FindImage(ctx context.Context, carID, imageID uint) (*entity.CarImage, error) {
	return FindOne[entity.CarImage](r.DB.WithContext(ctx), "id = ? AND car_id = ?", imageID, carID)
}

func (r *CarRepository) DeleteImage(ctx context.Context, imageID uint) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(&entity.CarImage{}, imageID).Error
}

func (r *CarRepository) HasPrimaryImage(ctx context.Context, carID uint) (bool, error) {
	return Exists[entity.CarImage](r.DB.WithContext(ctx), "car_id = ? AND is_primary = ?", carID, true)
}

// ClearPrimary and MarkPrimary are the two halves of a primary switch;
// callers run them in one transaction.
func (r *CarRepository) ClearPrimary(ctx context.Context, carID uint) error {
	return r.DB.WithContext(ctx).Model(&entity.CarImage{}).
		Where("car_id = ? AND is_primary = ?", carID, true).
		Update("is_primary", false).Error
}

func (r *CarRepository) MarkPrimary(ctx context.Context, carID, imageID uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.CarImage{}).
		Where("id = ? AND car_id = ?", imageID, carID).
		Update("is_primary", true)
	return res.RowsAffected == 1, res.Error
}

func (r *CarRepository) CountPrimary(ctx context.Context, carID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.CarImage{}).
		Where("car_id = ? AND is_primary = ?", carID, true).
		Count(&n).Error
	return n, err
}
