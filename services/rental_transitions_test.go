package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/services"
)

func TestNextRentalStatus_Table(t *testing.T) {
	statuses := []entity.RentalStatus{
		entity.RentalPending, entity.RentalConfirmed, entity.RentalOngoing,
		entity.RentalCompleted, entity.RentalCancelled,
	}
	actions := map[services.RentalAction]entity.Role{
		services.RentalConfirm:        entity.RoleShop,
		services.RentalStart:          entity.RoleShop,
		services.RentalRequestReturn:  entity.RoleCustomer,
		services.RentalComplete:       entity.RoleShop,
		services.RentalCustomerCancel: entity.RoleCustomer,
		services.RentalShopCancel:     entity.RoleShop,
	}
	allowed := map[entity.RentalStatus]map[services.RentalAction]entity.RentalStatus{
		entity.RentalPending: {
			services.RentalConfirm:        entity.RentalConfirmed,
			services.RentalCustomerCancel: entity.RentalCancelled,
			services.RentalShopCancel:     entity.RentalCancelled,
		},
		entity.RentalConfirmed: {
			services.RentalStart:      entity.RentalOngoing,
			services.RentalShopCancel: entity.RentalCancelled,
		},
		entity.RentalOngoing: {
			services.RentalRequestReturn: entity.RentalOngoing,
			services.RentalComplete:      entity.RentalCompleted,
		},
	}

	for _, from := range statuses {
		for act, actor := range actions {
			to, err := services.NextRentalStatus(from, act, actor)
			want, ok := allowed[from][act]
			if ok {
				require.NoError(t, err, "%s --%s-->", from, act)
				assert.Equal(t, want, to, "%s --%s-->", from, act)
			} else {
				require.Error(t, err, "%s --%s--> should be rejected", from, act)
				assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
			}
		}
	}
}

func TestNextRentalStatus_WrongActor(t *testing.T) {
	_, err := services.NextRentalStatus(entity.RentalPending, services.RentalConfirm, entity.RoleCustomer)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = services.NextRentalStatus(entity.RentalPending, services.RentalCustomerCancel, entity.RoleShop)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestNextRentalStatus_TerminalStatesAreFinal(t *testing.T) {
	for _, s := range []entity.RentalStatus{entity.RentalCompleted, entity.RentalCancelled} {
		assert.True(t, s.IsTerminal())
		_, err := services.NextRentalStatus(s, services.RentalShopCancel, entity.RoleShop)
		assert.True(t, apperr.Is(err, apperr.KindInvalidState))
	}
}
