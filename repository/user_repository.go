package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

// UserRepository talks to the users table only.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return FindByID[entity.User](r.DB.WithContext(ctx), id)
}

// FindByLogin matches a username or an email.
func (r *UserRepository) FindByLogin(ctx context.Context, identifier string) (*entity.User, error) {
	ident := strings.TrimSpace(identifier)
	return FindOne[entity.User](r.DB.WithContext(ctx),
		"username = ? OR email = ?", ident, strings.ToLower(ident))
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return Create(r.DB.WithContext(ctx), u)
}

func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	_, err := UpdateFields[entity.User](r.DB.WithContext(ctx), id, fields)
	return err
}

// UsernameTaken and EmailTaken ignore the row with excludeID.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return Exists[entity.User](r.DB.WithContext(ctx), "username = ? AND id <> ?", username, excludeID)
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return Exists[entity.User](r.DB.WithContext(ctx), "email = ? AND id <> ?", strings.ToLower(email), excludeID)
}

func (r *UserRepository) IsActive(ctx context.Context, userID uint) (bool, error) {
	return Exists[entity.User](r.DB.WithContext(ctx), "id = ? AND status = ?", userID, entity.UserActive)
}

func (r *UserRepository) FindShop(ctx context.Context, id uint) (*entity.User, error) {
	return FindOne[entity.User](r.DB.WithContext(ctx), "id = ? AND role = ?", id, entity.RoleShop)
}

func (r *UserRepository) FindCustomer(ctx context.Context, id uint) (*entity.User, error) {
	return FindOne[entity.User](r.DB.WithContext(ctx), "id = ? AND role = ?", id, entity.RoleCustomer)
}

// SearchCustomers matches username, email, first or last name.
func (r *UserRepository) SearchCustomers(ctx context.Context, q string, limit int) ([]entity.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	var out []entity.User
	err := r.DB.WithContext(ctx).
		Where("role = ?", entity.RoleCustomer).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like, like).
		Order("username ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
