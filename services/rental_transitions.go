package services

import (
	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
)

type RentalAction string

const (
	RentalConfirm        RentalAction = "confirm"
	RentalStart          RentalAction = "start"
	RentalRequestReturn  RentalAction = "request_return"
	RentalComplete       RentalAction = "complete"
	RentalCustomerCancel RentalAction = "customer_cancel"
	RentalShopCancel     RentalAction = "shop_cancel"
)

// rentalActors says who may perform each action.
var rentalActors = map[RentalAction]entity.Role{
	RentalConfirm:        entity.RoleShop,
	RentalStart:          entity.RoleShop,
	RentalRequestReturn:  entity.RoleCustomer,
	RentalComplete:       entity.RoleShop,
	RentalCustomerCancel: entity.RoleCustomer,
	RentalShopCancel:     entity.RoleShop,
}

// rentalTransitions is the whole rental lifecycle. Anything missing is an
// invalid transition; completed and cancelled have no way out.
var rentalTransitions = map[entity.RentalStatus]map[RentalAction]entity.RentalStatus{
	entity.RentalPending: {
		RentalConfirm:        entity.RentalConfirmed,
		RentalCustomerCancel: entity.RentalCancelled,
		RentalShopCancel:     entity.RentalCancelled,
	},
	entity.RentalConfirmed: {
		RentalStart:      entity.RentalOngoing,
		RentalShopCancel: entity.RentalCancelled,
	},
	entity.RentalOngoing: {
		RentalRequestReturn: entity.RentalOngoing,
		RentalComplete:      entity.RentalCompleted,
	},
}

// NextRentalStatus resolves one step of the lifecycle.
func NextRentalStatus(from entity.RentalStatus, act RentalAction, actor entity.Role) (entity.RentalStatus, error) {
	want, ok := rentalActors[act]
	if !ok {
		return "", apperr.Validation("unknown rental action")
	}
	if actor != want {
		return "", apperr.Forbidden("action not allowed for " + actor.String())
	}
	to, ok := rentalTransitions[from][act]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidState, "cannot %s a %s rental", act, from)
	}
	return to, nil
}
