package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

// AuthService handles accounts: register, login and profile upkeep.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	FirstName       string
	LastName        string
	Phone           string
	Role            entity.Role
	ShopName        string
	ShopDescription string
	ShopAddress     string
	PromptPayID     string
}

type ProfileInput struct {
	Email           *string
	FirstName       *string
	LastName        *string
	Phone           *string
	ShopName        *string
	ShopDescription *string
	ShopAddress     *string
	PromptPayID     *string
}

// Register creates the account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = entity.RoleCustomer
	}
	if !in.Role.IsValid() {
		return "", nil, apperr.Validation("invalid role")
	}
	if in.Role == entity.RoleShop && strings.TrimSpace(in.ShopName) == "" {
		return "", nil, apperr.Validation("shop name is required")
	}

	taken, err := s.userRepo.UsernameTaken(ctx, in.Username, 0)
	if err != nil {
		return "", nil, err
	}
	if taken {
		return "", nil, apperr.Conflict("username already registered")
	}
	if taken, err = s.userRepo.EmailTaken(ctx, in.Email, 0); err != nil {
		return "", nil, err
	}
	if taken {
		return "", nil, apperr.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      in.Role,
		Status:    entity.UserActive,
	}
	if in.Role == entity.RoleShop {
		user.ShopName = strings.TrimSpace(in.ShopName)
		user.ShopDescription = strings.TrimSpace(in.ShopDescription)
		user.ShopAddress = strings.TrimSpace(in.ShopAddress)
		user.PromptPayID = strings.TrimSpace(in.PromptPayID)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, apperr.FromDB(err, "")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login accepts a username or an email as identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *entity.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, identifier)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "", nil, apperr.Unauthorized("invalid credentials")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}
	if !user.IsActive() {
		return "", nil, apperr.Forbidden("account is inactive")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	return u, apperr.FromDB(err, "user not found")
}

// UpdateProfile writes only the fields that were sent. Shop fields are
// ignored for customers.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*entity.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			taken, err := s.userRepo.EmailTaken(ctx, email, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("email already registered")
			}
			updates["email"] = email
		}
	}
	setTrimmed(updates, "first_name", in.FirstName)
	setTrimmed(updates, "last_name", in.LastName)
	setTrimmed(updates, "phone", in.Phone)
	if user.Role == entity.RoleShop {
		if in.ShopName != nil && strings.TrimSpace(*in.ShopName) == "" {
			return nil, apperr.Validation("shop name cannot be empty")
		}
		setTrimmed(updates, "shop_name", in.ShopName)
		setTrimmed(updates, "shop_description", in.ShopDescription)
		setTrimmed(updates, "shop_address", in.ShopAddress)
		setTrimmed(updates, "prompt_pay_id", in.PromptPayID)
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, apperr.FromDB(err, "user not found")
		}
	}
	return s.GetProfile(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperr.Validation("current password is incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Update(ctx, userID, map[string]any{"password": string(hashed)})
}

// IsActive backs the auth middleware's per-request account check.
func (s *AuthService) IsActive(ctx context.Context, userID uint) (bool, error) {
	return s.userRepo.IsActive(ctx, userID)
}

func setTrimmed(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = strings.TrimSpace(*v)
	}
}
