package services

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
)

type ShopService struct {
	users     *repository.UserRepository
	cars      *repository.CarRepository
	reviews   *repository.ReviewRepository
	stats     *repository.StatsRepository
	blacklist *repository.BlacklistRepository

	Now func() time.Time
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{
		users:     repository.NewUserRepository(db),
		cars:      repository.NewCarRepository(db),
		reviews:   repository.NewReviewRepository(db),
		stats:     repository.NewStatsRepository(db),
		blacklist: repository.NewBlacklistRepository(db),
		Now:       time.Now,
	}
}

type ShopProfile struct {
	ID              uint                     `json:"id"`
	ShopName        string                   `json:"shopName"`
	ShopDescription string                   `json:"shopDescription"`
	ShopAddress     string                   `json:"shopAddress"`
	Phone           string                   `json:"phone"`
	Email           string                   `json:"email"`
	Policy          string                   `json:"policy"`
	Cars            []entity.Car             `json:"cars"`
	Rating          repository.RatingSummary `json:"rating"`
}

type MonthRevenue struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

type Dashboard struct {
	Period          string                      `json:"period"`
	From            time.Time                   `json:"from"`
	To              time.Time                   `json:"to"`
	CarsByStatus    []repository.StatusCount    `json:"carsByStatus"`
	RentalsByStatus []repository.StatusCount    `json:"rentalsByStatus"`
	Revenue         float64                     `json:"revenue"`
	MonthlyRevenue  []MonthRevenue              `json:"monthlyRevenue"`
	TopCars         []repository.CarRentalCount `json:"topCars"`
	Rating          repository.RatingSummary    `json:"rating"`
}

// Profile is the public shop page; inactive shops read as missing.
func (s *ShopService) Profile(ctx context.Context, shopID uint) (*ShopProfile, error) {
	shop, err := s.users.FindShop(ctx, shopID)
	if err != nil {
		return nil, apperr.FromDB(err, "shop not found")
	}
	if !shop.IsActive() {
		return nil, apperr.NotFound("shop not found")
	}
	cars, _, err := s.cars.Search(ctx, repository.CarFilter{ShopID: shop.ID, Page: repository.NewPage(1, 100)})
	if err != nil {
		return nil, err
	}
	rating, err := s.reviews.SummaryByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	return &ShopProfile{
		ID:              shop.ID,
		ShopName:        shop.ShopName,
		ShopDescription: shop.ShopDescription,
		ShopAddress:     shop.ShopAddress,
		Phone:           shop.Phone,
		Email:           shop.Email,
		Policy:          shop.Policy,
		Cars:            cars,
		Rating:          rating,
	}, nil
}

func (s *ShopService) Policy(ctx context.Context, shopID uint) (string, error) {
	shop, err := s.users.FindShop(ctx, shopID)
	if err != nil {
		return "", apperr.FromDB(err, "shop not found")
	}
	return shop.Policy, nil
}

func (s *ShopService) UpdatePolicy(ctx context.Context, shopID uint, policy string) (string, error) {
	policy = strings.TrimSpace(policy)
	if err := s.users.Update(ctx, shopID, map[string]any{"policy": policy}); err != nil {
		return "", err
	}
	return policy, nil
}

// PeriodRange returns [from, to) of the current week, month or year.
// Weeks start on Monday.
func PeriodRange(period string, t time.Time) (time.Time, time.Time, error) {
	n := (&now.Config{WeekStartDay: time.Monday, TimeLocation: time.UTC}).With(t.UTC())
	switch period {
	case "week":
		from := n.BeginningOfWeek()
		return from, from.AddDate(0, 0, 7), nil
	case "", "month":
		from := n.BeginningOfMonth()
		return from, from.AddDate(0, 1, 0), nil
	case "year":
		from := n.BeginningOfYear()
		return from, from.AddDate(1, 0, 0), nil
	}
	return time.Time{}, time.Time{}, apperr.Validation("period must be week, month or year")
}

func (s *ShopService) Dashboard(ctx context.Context, shopID uint, period string) (*Dashboard, error) {
	from, to, err := PeriodRange(period, s.Now())
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = "month"
	}
	d := &Dashboard{Period: period, From: from, To: to}

	if d.CarsByStatus, err = s.stats.CarsByStatus(ctx, shopID); err != nil {
		return nil, err
	}
	if d.RentalsByStatus, err = s.stats.RentalsByStatus(ctx, shopID, from, to); err != nil {
		return nil, err
	}
	if d.Revenue, err = s.stats.Revenue(ctx, shopID, from, to); err != nil {
		return nil, err
	}
	if d.TopCars, err = s.stats.TopCars(ctx, shopID, from, to, 5); err != nil {
		return nil, err
	}
	if d.Rating, err = s.reviews.SummaryByShop(ctx, shopID); err != nil {
		return nil, err
	}

	yearStart := now.With(s.Now().UTC()).BeginningOfYear()
	d.MonthlyRevenue = make([]MonthRevenue, 0, 12)
	for m := 0; m < 12; m++ {
		start := yearStart.AddDate(0, m, 0)
		rev, err := s.stats.Revenue(ctx, shopID, start, start.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		d.MonthlyRevenue = append(d.MonthlyRevenue, MonthRevenue{Month: m + 1, Revenue: rev})
	}
	return d, nil
}

// Customers lists everyone who rented from the shop, flagged when
// blacklisted.
func (s *ShopService) Customers(ctx context.Context, shopID uint, p repository.Page) ([]repository.ShopCustomer, int64, error) {
	rows, total, err := s.stats.Customers(ctx, shopID, p)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	banned, err := s.blacklist.BlacklistedIDs(ctx, shopID, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].Blacklisted = banned[rows[i].ID]
	}
	return rows, total, nil
}
