package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string     `json:"-"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone"`
	Role      Role       `gorm:"size:20;not null;default:customer;index" json:"role"`
	Status    UserStatus `gorm:"size:20;not null;default:active" json:"status"`

	// shop profile, empty for customers
	ShopName        string `json:"shopName,omitempty"`
	ShopDescription string `json:"shopDescription,omitempty"`
	ShopAddress     string `json:"shopAddress,omitempty"`
	PromptPayID     string `json:"promptpayId,omitempty"`
	Policy          string `gorm:"type:text" json:"policy,omitempty"`

	// Relations, preloaded only when needed
	Cars            []Car       `gorm:"foreignKey:ShopID" json:"-"`
	CustomerRentals []Rental    `gorm:"foreignKey:CustomerID" json:"-"`
	Reviews         []Review    `gorm:"foreignKey:CustomerID" json:"-"`
	Blacklist       []Blacklist `gorm:"foreignKey:ShopID" json:"-"`
}

func (u *User) IsActive() bool { return u.Status == UserActive }

// DisplayName prefers the shop name for shops.
func (u *User) DisplayName() string {
	if u.Role == RoleShop && u.ShopName != "" {
		return u.ShopName
	}
	if u.FirstName != "" || u.LastName != "" {
		return trimJoin(u.FirstName, u.LastName)
	}
	return u.Username
}

func trimJoin(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
