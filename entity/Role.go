package entity

// Role is the account kind. Routes are registered per role, so handlers
// never compare role strings themselves.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
)

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleShop
}

func (r Role) String() string { return string(r) }

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)
