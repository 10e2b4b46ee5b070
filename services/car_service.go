package services

import (
	"context"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type CarService struct {
	db      *gorm.DB
	cars    *repository.CarRepository
	rentals *repository.RentalRepository
	users   *repository.UserRepository
	reviews *repository.ReviewRepository
	storage *utils.Storage
}

func NewCarService(db *gorm.DB, storage *utils.Storage) *CarService {
	return &CarService{
		db:      db,
		cars:    repository.NewCarRepository(db),
		rentals: repository.NewRentalRepository(db),
		users:   repository.NewUserRepository(db),
		reviews: repository.NewReviewRepository(db),
		storage: storage,
	}
}

type CarInput struct {
	Brand         string
	Model         string
	Year          int
	LicensePlate  string
	CarType       string
	Transmission  string
	FuelType      string
	Seats         int
	Color         string
	DailyRate     float64
	InsuranceRate float64
	DepositAmount float64
	Description   string
	Location      string
}

// CarDetail is the public car page.
type CarDetail struct {
	Car    *entity.Car              `json:"car"`
	Shop   ShopSummary              `json:"shop"`
	Rating repository.RatingSummary `json:"rating"`
}

type ShopSummary struct {
	ID          uint   `json:"id"`
	ShopName    string `json:"shopName"`
	ShopAddress string `json:"shopAddress"`
	Phone       string `json:"phone"`
}

func (in CarInput) validate() error {
	switch {
	case strings.TrimSpace(in.Brand) == "" || strings.TrimSpace(in.Model) == "":
		return apperr.Validation("brand and model are required")
	case strings.TrimSpace(in.LicensePlate) == "":
		return apperr.Validation("license plate is required")
	case in.DailyRate <= 0:
		return apperr.Validation("daily rate must be positive")
	case in.InsuranceRate < 0 || in.DepositAmount < 0:
		return apperr.Validation("rates cannot be negative")
	case in.Seats < 0:
		return apperr.Validation("seats cannot be negative")
	}
	return nil
}

func (in CarInput) normalized() CarInput {
	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	in.LicensePlate = strings.ToUpper(strings.TrimSpace(in.LicensePlate))
	in.CarType = strings.TrimSpace(in.CarType)
	in.Transmission = strings.TrimSpace(in.Transmission)
	in.FuelType = strings.TrimSpace(in.FuelType)
	in.Color = strings.TrimSpace(in.Color)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	return in
}

func (in CarInput) fields() map[string]any {
	in = in.normalized()
	return map[string]any{
		"brand":          in.Brand,
		"model":          in.Model,
		"year":           in.Year,
		"license_plate":  in.LicensePlate,
		"plate_key":      in.LicensePlate,
		"car_type":       in.CarType,
		"transmission":   in.Transmission,
		"fuel_type":      in.FuelType,
		"seats":          in.Seats,
		"color":          in.Color,
		"daily_rate":     in.DailyRate,
		"insurance_rate": in.InsuranceRate,
		"deposit_amount": in.DepositAmount,
		"description":    in.Description,
		"location":       in.Location,
	}
}

// ---------------- Public ----------------

func (s *CarService) Search(ctx context.Context, f repository.CarFilter) ([]entity.Car, int64, error) {
	if (f.Start == nil) != (f.End == nil) {
		return nil, 0, apperr.Validation("start_date and end_date go together")
	}
	if f.Start != nil && !f.End.After(*f.Start) {
		return nil, 0, apperr.Validation("end date must be after start date")
	}
	if f.PriceMin > 0 && f.PriceMax > 0 && f.PriceMin > f.PriceMax {
		return nil, 0, apperr.Validation("price_min is greater than price_max")
	}
	return s.cars.Search(ctx, f)
}

// Detail shows any non-hidden car; hidden cars only to their own shop.
func (s *CarService) Detail(ctx context.Context, carID, viewerID uint) (*CarDetail, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, apperr.FromDB(err, "car not found")
	}
	if car.Status == entity.CarHidden && car.ShopID != viewerID {
		return nil, apperr.NotFound("car not found")
	}
	shop, err := s.users.FindByID(ctx, car.ShopID)
	if err != nil {
		return nil, apperr.FromDB(err, "shop not found")
	}
	rating, err := s.reviews.SummaryByCar(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	return &CarDetail{
		Car:    car,
		Shop:   ShopSummary{ID: shop.ID, ShopName: shop.ShopName, ShopAddress: shop.ShopAddress, Phone: shop.Phone},
		Rating: rating,
	}, nil
}

// ---------------- Shop ----------------

func (s *CarService) Create(ctx context.Context, shopID uint, in CarInput) (*entity.Car, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	in = in.normalized()
	car := &entity.Car{
		ShopID:        shopID,
		Brand:         in.Brand,
		CarModel:      in.Model,
		Year:          in.Year,
		LicensePlate:  in.LicensePlate,
		CarType:       in.CarType,
		Transmission:  in.Transmission,
		FuelType:      in.FuelType,
		Seats:         in.Seats,
		Color:         in.Color,
		DailyRate:     in.DailyRate,
		InsuranceRate: in.InsuranceRate,
		DepositAmount: in.DepositAmount,
		Status:        entity.CarAvailable,
		Description:   in.Description,
		Location:      in.Location,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("license plate already registered")
		}
		return nil, err
	}
	return car, nil
}

func (s *CarService) Update(ctx context.Context, shopID, carID uint, in CarInput) (*entity.Car, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetOwned(ctx, shopID, carID); err != nil {
		return nil, err
	}
	if err := s.cars.Update(ctx, carID, in.fields()); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("license plate already registered")
		}
		return nil, err
	}
	return s.GetOwned(ctx, shopID, carID)
}

// SetStatus lets a shop take a car off the market. rented is driven by the
// rental lifecycle, and a car out on a rental stays rented.
func (s *CarService) SetStatus(ctx context.Context, shopID, carID uint, status entity.CarStatus) (*entity.Car, error) {
	if !status.ShopSettable() {
		return nil, apperr.Validation("status must be available, maintenance or hidden")
	}
	car, err := s.GetOwned(ctx, shopID, carID)
	if err != nil {
		return nil, err
	}
	ongoing, err := s.rentals.CountOngoingForCar(ctx, car.ID, 0)
	if err != nil {
		return nil, err
	}
	if ongoing > 0 {
		return nil, apperr.InvalidState("car is currently rented")
	}
	if err := s.cars.UpdateStatus(ctx, car.ID, status); err != nil {
		return nil, err
	}
	car.Status = status
	return car, nil
}

func (s *CarService) Delete(ctx context.Context, shopID, carID uint) error {
	car, err := s.GetOwned(ctx, shopID, carID)
	if err != nil {
		return err
	}
	active, err := s.rentals.CountActiveForCar(ctx, car.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperr.Conflict("car has active rentals")
	}
	return s.cars.Delete(ctx, car.ID)
}

func (s *CarService) GetOwned(ctx context.Context, shopID, carID uint) (*entity.Car, error) {
	car, err := s.cars.FindForShop(ctx, shopID, carID)
	return car, apperr.FromDB(err, "car not found")
}

func (s *CarService) ListForShop(ctx context.Context, shopID uint, status entity.CarStatus, p repository.Page) ([]entity.Car, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, apperr.Validation("invalid car status")
	}
	return s.cars.ListByShop(ctx, shopID, status, p)
}

// ---------------- Images ----------------

// AddImages stores the files and records them. A car without a primary
// image gets the first upload as primary.
func (s *CarService) AddImages(ctx context.Context, shopID, carID uint, files []*multipart.FileHeader) ([]entity.CarImage, error) {
	car, err := s.GetOwned(ctx, shopID, carID)
	if err != nil {
		return nil, err
	}
	urls, err := s.storage.SaveImages("images", "cars", files)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cars := s.cars.WithTx(tx)
		hasPrimary, err := cars.HasPrimaryImage(ctx, car.ID)
		if err != nil {
			return err
		}
		imgs := make([]entity.CarImage, len(urls))
		for i, u := range urls {
			imgs[i] = entity.CarImage{CarID: car.ID, ImageURL: u, IsPrimary: !hasPrimary && i == 0}
		}
		if err := cars.CreateImages(ctx, imgs); err != nil {
			return err
		}
		if !hasPrimary {
			return cars.Update(ctx, car.ID, map[string]any{"image_url": urls[0]})
		}
		return nil
	})
	if err != nil {
		s.storage.RemoveAll(urls)
		return nil, err
	}
	return s.cars.ListImages(ctx, car.ID)
}

// SetPrimaryImage swaps the primary flag and the car's image_url together,
// leaving exactly one primary image.
func (s *CarService) SetPrimaryImage(ctx context.Context, shopID, carID, imageID uint) ([]entity.CarImage, error) {
	car, err := s.GetOwned(ctx, shopID, carID)
	if err != nil {
		return nil, err
	}
	img, err := s.cars.FindImage(ctx, car.ID, imageID)
	if err != nil {
		return nil, apperr.FromDB(err, "image not found")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.makePrimary(ctx, tx, car.ID, img)
	})
	if err != nil {
		return nil, err
	}
	return s.cars.ListImages(ctx, car.ID)
}

// DeleteImage removes the row and the file. Losing the primary promotes
// the oldest remaining image.
func (s *CarService) DeleteImage(ctx context.Context, shopID, carID, imageID uint) error {
	car, err := s.GetOwned(ctx, shopID, carID)
	if err != nil {
		return err
	}
	img, err := s.cars.FindImage(ctx, car.ID, imageID)
	if err != nil {
		return apperr.FromDB(err, "image not found")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cars := s.cars.WithTx(tx)
		if err := cars.DeleteImage(ctx, img.ID); err != nil {
			return err
		}
		if !img.IsPrimary {
			return nil
		}
		rest, err := cars.ListImages(ctx, car.ID)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return cars.Update(ctx, car.ID, map[string]any{"image_url": ""})
		}
		return s.makePrimary(ctx, tx, car.ID, &rest[0])
	})
	if err != nil {
		return err
	}
	return s.storage.Remove(img.ImageURL)
}

func (s *CarService) makePrimary(ctx context.Context, tx *gorm.DB, carID uint, img *entity.CarImage) error {
	cars := s.cars.WithTx(tx)
	if err := cars.ClearPrimary(ctx, carID); err != nil {
		return err
	}
	ok, err := cars.MarkPrimary(ctx, carID, img.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("image not found")
	}
	return cars.Update(ctx, carID, map[string]any{"image_url": img.ImageURL})
}

func (s *CarService) ListImages(ctx context.Context, carID uint) ([]entity.CarImage, error) {
	return s.cars.ListImages(ctx, carID)
}
