package entity

type CarStatus string

const (
	CarAvailable   CarStatus = "available"
	CarRented      CarStatus = "rented"
	CarMaintenance CarStatus = "maintenance"
	CarHidden      CarStatus = "hidden"
)

func (s CarStatus) IsValid() bool {
	switch s {
	case CarAvailable, CarRented, CarMaintenance, CarHidden:
		return true
	}
	return false
}

// ShopSettable reports whether a shop may set this status by hand.
// rented is driven by the rental lifecycle only.
func (s CarStatus) ShopSettable() bool {
	return s == CarAvailable || s == CarMaintenance || s == CarHidden
}
