package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	RentalID   uint   `gorm:"uniqueIndex;not null" json:"rentalId"`
	CustomerID uint   `gorm:"index;not null" json:"customerId"`
	Customer   User   `gorm:"foreignKey:CustomerID" json:"-"`
	ShopID     uint   `gorm:"index;not null" json:"shopId"`
	CarID      uint   `gorm:"index;not null" json:"carId"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `gorm:"type:text" json:"comment"`
}
