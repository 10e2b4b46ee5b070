package entity

import (
	"time"
)

// Blacklist is keyed by (shop, customer). Rows are hard-deleted on removal
// so the pair can be added again later.
type Blacklist struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ShopID     uint      `gorm:"not null;uniqueIndex:idx_blacklist_pair" json:"shopId"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_blacklist_pair" json:"customerId"`
	Customer   User      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Blacklist) TableName() string { return "blacklist" }
