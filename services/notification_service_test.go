package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/services"
)

func TestNotificationCounts(t *testing.T) {
	f := newRentalFixture(t)
	svc := services.NewNotificationService(f.db)
	ctx := context.Background()

	f.book(t, 1, 2)
	confirmed := f.book(t, 3, 4)
	_, err := f.svc.Confirm(ctx, f.shop.ID, confirmed.ID)
	require.NoError(t, err)
	cancelled := f.book(t, 5, 6)
	_, err = f.svc.CustomerCancel(ctx, f.customer.ID, cancelled.ID, "")
	require.NoError(t, err)
	completedRental(t, f, 0, 1)
	ongoing := f.book(t, 7, 8)
	for _, step := range []func(context.Context, uint, uint) (*entity.Rental, error){f.svc.Confirm, f.svc.Start} {
		_, err := step(ctx, f.shop.ID, ongoing.ID)
		require.NoError(t, err)
	}
	_, err = f.svc.RequestReturn(ctx, f.customer.ID, ongoing.ID)
	require.NoError(t, err)

	shop, err := svc.ShopCounts(ctx, f.shop.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, shop.PendingBookings)
	assert.EqualValues(t, 0, shop.PendingPayments)
	assert.EqualValues(t, 1, shop.UnacknowledgedCancels)
	assert.EqualValues(t, 1, shop.ReturnRequests)
	assert.EqualValues(t, 3, shop.Total)

	_, err = f.svc.Acknowledge(ctx, f.shop.ID, cancelled.ID)
	require.NoError(t, err)
	shop, err = svc.ShopCounts(ctx, f.shop.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, shop.UnacknowledgedCancels)

	cust, err := svc.CustomerCounts(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cust.ConfirmedRentals)
	assert.EqualValues(t, 1, cust.AwaitingReview)
	assert.EqualValues(t, 0, cust.RejectedPayments)
	assert.EqualValues(t, 2, cust.Total)
}
