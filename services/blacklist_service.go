package services

import (
	"context"
	"strings"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
)

type BlacklistService struct {
	blacklist *repository.BlacklistRepository
	users     *repository.UserRepository
}

func NewBlacklistService(blacklist *repository.BlacklistRepository, users *repository.UserRepository) *BlacklistService {
	return &BlacklistService{blacklist: blacklist, users: users}
}

// CustomerMatch is a search hit for the blacklist form.
type CustomerMatch struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Blacklisted bool   `json:"blacklisted"`
}

func (s *BlacklistService) List(ctx context.Context, shopID uint) ([]entity.Blacklist, error) {
	return s.blacklist.ListByShop(ctx, shopID)
}

func (s *BlacklistService) Add(ctx context.Context, shopID, customerID uint, reason string) (*entity.Blacklist, error) {
	if customerID == 0 {
		return nil, apperr.Validation("customer_id is required")
	}
	customer, err := s.users.FindCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.FromDB(err, "customer not found")
	}
	exists, err := s.blacklist.Exists(ctx, shopID, customer.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("customer is already blacklisted")
	}

	b := &entity.Blacklist{ShopID: shopID, CustomerID: customer.ID, Reason: strings.TrimSpace(reason)}
	if err := s.blacklist.Create(ctx, b); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("customer is already blacklisted")
		}
		return nil, err
	}
	b.Customer = *customer
	return b, nil
}

func (s *BlacklistService) Remove(ctx context.Context, shopID, customerID uint) error {
	n, err := s.blacklist.Delete(ctx, shopID, customerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("customer is not blacklisted")
	}
	return nil
}

func (s *BlacklistService) Search(ctx context.Context, shopID uint, q string) ([]CustomerMatch, error) {
	if strings.TrimSpace(q) == "" {
		return []CustomerMatch{}, nil
	}
	users, err := s.users.SearchCustomers(ctx, q, 20)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	banned, err := s.blacklist.BlacklistedIDs(ctx, shopID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerMatch, len(users))
	for i, u := range users {
		out[i] = CustomerMatch{
			ID:          u.ID,
			Username:    u.Username,
			Email:       u.Email,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Phone:       u.Phone,
			Blacklisted: banned[u.ID],
		}
	}
	return out, nil
}
