package services

import (
	"context"
	"strings"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
)

type ReviewService struct {
	reviews *repository.ReviewRepository
	rentals *repository.RentalRepository
}

func NewReviewService(reviews *repository.ReviewRepository, rentals *repository.RentalRepository) *ReviewService {
	return &ReviewService{reviews: reviews, rentals: rentals}
}

// ReviewList is a page of reviews with the overall rating.
type ReviewList struct {
	Items   []entity.Review `json:"items"`
	Average float64         `json:"average"`
	Count   int64           `json:"count"`
}

func validRating(r int) error {
	if r < 1 || r > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}
	return nil
}

// Create reviews a completed rental of the customer, once.
func (s *ReviewService) Create(ctx context.Context, customerID, rentalID uint, rating int, comment string) (*entity.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	rental, err := s.rentals.FindForCustomer(ctx, customerID, rentalID)
	if err != nil {
		return nil, apperr.FromDB(err, "rental not found")
	}
	if rental.RentalStatus != entity.RentalCompleted {
		return nil, apperr.InvalidState("only completed rentals can be reviewed")
	}
	exists, err := s.reviews.ExistsForRental(ctx, rental.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("rental already reviewed")
	}

	rv := &entity.Review{
		RentalID:   rental.ID,
		CustomerID: customerID,
		ShopID:     rental.ShopID,
		CarID:      rental.CarID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("rental already reviewed")
		}
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) Update(ctx context.Context, customerID, reviewID uint, rating int, comment string) (*entity.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	rv, err := s.reviews.FindForCustomer(ctx, customerID, reviewID)
	if err != nil {
		return nil, apperr.FromDB(err, "review not found")
	}
	if err := s.reviews.Update(ctx, rv.ID, map[string]any{
		"rating":  rating,
		"comment": strings.TrimSpace(comment),
	}); err != nil {
		return nil, err
	}
	rv.Rating, rv.Comment = rating, strings.TrimSpace(comment)
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, customerID, reviewID uint) error {
	rv, err := s.reviews.FindForCustomer(ctx, customerID, reviewID)
	if err != nil {
		return apperr.FromDB(err, "review not found")
	}
	return s.reviews.Delete(ctx, rv.ID)
}

func (s *ReviewService) ListMine(ctx context.Context, customerID uint, p repository.Page) ([]entity.Review, error) {
	return s.reviews.ListByCustomer(ctx, customerID, p)
}

func (s *ReviewService) ListForCar(ctx context.Context, carID uint, p repository.Page) (*ReviewList, error) {
	items, err := s.reviews.ListByCar(ctx, carID, p)
	if err != nil {
		return nil, err
	}
	sum, err := s.reviews.SummaryByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	return &ReviewList{Items: items, Average: sum.Average, Count: sum.Count}, nil
}

func (s *ReviewService) ListForShop(ctx context.Context, shopID uint, p repository.Page) (*ReviewList, error) {
	items, err := s.reviews.ListByShop(ctx, shopID, p)
	if err != nil {
		return nil, err
	}
	sum, err := s.reviews.SummaryByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &ReviewList{Items: items, Average: sum.Average, Count: sum.Count}, nil
}
