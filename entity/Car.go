package entity

import (
	"gorm.io/gorm"
)

type Car struct {
	gorm.Model
	ShopID uint `gorm:"index;not null;uniqueIndex:idx_shop_plate" json:"shopId"`
	Shop   User `gorm:"foreignKey:ShopID" json:"-"`

	Brand         string    `gorm:"size:60;not null" json:"brand"`
	CarModel      string    `gorm:"column:model;size:60;not null" json:"model"`
	Year          int       `json:"year"`
	LicensePlate  string    `gorm:"size:30;not null" json:"licensePlate"`
	PlateKey      *string   `gorm:"size:30;uniqueIndex:idx_shop_plate" json:"-"` // nil once deleted, frees the plate
	CarType       string    `gorm:"size:30" json:"carType"`
	Transmission  string    `gorm:"size:20" json:"transmission"`
	FuelType      string    `gorm:"size:20" json:"fuelType"`
	Seats         int       `json:"seats"`
	Color         string    `gorm:"size:30" json:"color"`
	DailyRate     float64   `gorm:"type:decimal(10,2);not null" json:"dailyRate"`
	InsuranceRate float64   `gorm:"type:decimal(10,2);default:0" json:"insuranceRate"`
	DepositAmount float64   `gorm:"type:decimal(10,2);default:0" json:"depositAmount"`
	Status        CarStatus `gorm:"size:20;not null;default:available;index" json:"status"`
	Description   string    `gorm:"type:text" json:"description"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"imageUrl"` // mirrors the primary CarImage

	Images  []CarImage `json:"images,omitempty"`
	Rentals []Rental   `json:"-"`
}

// BeforeSave keeps the uniqueness key in step with the plate.
func (c *Car) BeforeSave(tx *gorm.DB) error {
	if c.PlateKey == nil && !c.DeletedAt.Valid && c.LicensePlate != "" {
		plate := c.LicensePlate
		c.PlateKey = &plate
	}
	return nil
}

type CarImage struct {
	gorm.Model
	CarID     uint   `gorm:"index;not null" json:"carId"`
	ImageURL  string `gorm:"not null" json:"imageUrl"`
	IsPrimary bool   `gorm:"not null;default:false" json:"isPrimary"`
}
