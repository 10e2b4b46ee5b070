package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/pkg/testutil"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/services"
)

func TestBlacklist(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewBlacklistService(repository.NewBlacklistRepository(db), repository.NewUserRepository(db))
	ctx := context.Background()
	shop := testutil.CreateUser(t, db, entity.RoleShop, "shop")
	other := testutil.CreateUser(t, db, entity.RoleShop, "othershop")
	alice := testutil.CreateUser(t, db, entity.RoleCustomer, "alice")
	testutil.CreateUser(t, db, entity.RoleCustomer, "alan")

	b, err := svc.Add(ctx, shop.ID, alice.ID, " no-show ")
	require.NoError(t, err)
	assert.Equal(t, "no-show", b.Reason)
	assert.Equal(t, "alice", b.Customer.Username)

	_, err = svc.Add(ctx, shop.ID, alice.ID, "again")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	_, err = svc.Add(ctx, shop.ID, other.ID, "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "shops cannot be blacklisted")

	matches, err := svc.Search(ctx, shop.ID, "al")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	flags := map[string]bool{}
	for _, m := range matches {
		flags[m.Username] = m.Blacklisted
	}
	assert.Equal(t, map[string]bool{"alan": false, "alice": true}, flags)

	otherView, err := svc.Search(ctx, other.ID, "alice")
	require.NoError(t, err)
	require.Len(t, otherView, 1)
	assert.False(t, otherView[0].Blacklisted)

	list, err := svc.List(ctx, shop.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Remove(ctx, shop.ID, alice.ID))
	err = svc.Remove(ctx, shop.ID, alice.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Add(ctx, shop.ID, alice.ID, "")
	assert.NoError(t, err, "re-adding after removal")
}
