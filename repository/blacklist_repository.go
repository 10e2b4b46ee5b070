package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

type BlacklistRepository struct {
	DB *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{DB: db}
}

func (r *BlacklistRepository) WithTx(tx *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{DB: tx}
}

func (r *BlacklistRepository) Create(ctx context.Context, b *entity.Blacklist) error {
	return Create(r.DB.WithContext(ctx), b)
}

func (r *BlacklistRepository) Delete(ctx context.Context, shopID, customerID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("shop_id = ? AND customer_id = ?", shopID, customerID).
		Delete(&entity.Blacklist{})
	return res.RowsAffected, res.Error
}

func (r *BlacklistRepository) Exists(ctx context.Context, shopID, customerID uint) (bool, error) {
	return Exists[entity.Blacklist](r.DB.WithContext(ctx), "shop_id = ? AND customer_id = ?", shopID, customerID)
}

func (r *BlacklistRepository) ListByShop(ctx context.Context, shopID uint) ([]entity.Blacklist, error) {
	var out []entity.Blacklist
	err := r.DB.WithContext(ctx).
		Preload("Customer").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// BlacklistedIDs returns the subset of customerIDs the shop has blacklisted.
func (r *BlacklistRepository) BlacklistedIDs(ctx context.Context, shopID uint, customerIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&entity.Blacklist{}).
		Where("shop_id = ? AND customer_id IN ?", shopID, customerIDs).
		Pluck("customer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
