package services_test

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/pkg/testutil"
	"github.com/n4mp3un9/car-rental-sub001/repository"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

func newCarService(t *testing.T, f *rentalFixture) *services.CarService {
	return services.NewCarService(f.db, utils.NewStorage(t.TempDir(), ""))
}

func pngs(t *testing.T, n int) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, n)
	for i := range out {
		out[i] = testutil.FileHeader(t, "images", "car.png", testutil.PNG)
	}
	return out
}

func primaries(imgs []entity.CarImage) []uint {
	var ids []uint
	for _, img := range imgs {
		if img.IsPrimary {
			ids = append(ids, img.ID)
		}
	}
	return ids
}

func TestCarCreate_DuplicatePlate(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()

	car, err := svc.Create(ctx, f.shop.ID, services.CarInput{Brand: "Honda", Model: "City", LicensePlate: " xy-99 ", DailyRate: 900})
	require.NoError(t, err)
	assert.Equal(t, "XY-99", car.LicensePlate)
	assert.Equal(t, entity.CarAvailable, car.Status)

	_, err = svc.Create(ctx, f.shop.ID, services.CarInput{Brand: "Honda", Model: "Jazz", LicensePlate: "XY-99", DailyRate: 800})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Create(ctx, f.shop.ID, services.CarInput{Brand: "Honda", Model: "Jazz", LicensePlate: "XY-100"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCarImages_FirstUploadBecomesPrimary(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()

	imgs, err := svc.AddImages(ctx, f.shop.ID, f.car.ID, pngs(t, 3))
	require.NoError(t, err)
	require.Len(t, imgs, 3)
	assert.Equal(t, []uint{imgs[0].ID}, primaries(imgs))

	more, err := svc.AddImages(ctx, f.shop.ID, f.car.ID, pngs(t, 1))
	require.NoError(t, err)
	assert.Len(t, more, 4)
	assert.Equal(t, []uint{imgs[0].ID}, primaries(more))

	car, err := svc.GetOwned(ctx, f.shop.ID, f.car.ID)
	require.NoError(t, err)
	assert.Equal(t, imgs[0].ImageURL, car.ImageURL)
}

func TestCarImages_TooMany(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)

	_, err := svc.AddImages(context.Background(), f.shop.ID, f.car.ID, pngs(t, utils.MaxFilesPerRequest+1))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCarImages_SetPrimaryLeavesExactlyOne(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()
	imgs, err := svc.AddImages(ctx, f.shop.ID, f.car.ID, pngs(t, 3))
	require.NoError(t, err)

	after, err := svc.SetPrimaryImage(ctx, f.shop.ID, f.car.ID, imgs[2].ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{imgs[2].ID}, primaries(after))

	n, err := repository.NewCarRepository(f.db).CountPrimary(ctx, f.car.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	car, err := svc.GetOwned(ctx, f.shop.ID, f.car.ID)
	require.NoError(t, err)
	assert.Equal(t, imgs[2].ImageURL, car.ImageURL)

	_, err = svc.SetPrimaryImage(ctx, f.shop.ID, f.car.ID, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCarImages_DeletePrimaryPromotesOldest(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()
	imgs, err := svc.AddImages(ctx, f.shop.ID, f.car.ID, pngs(t, 3))
	require.NoError(t, err)
	_, err = svc.SetPrimaryImage(ctx, f.shop.ID, f.car.ID, imgs[1].ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(ctx, f.shop.ID, f.car.ID, imgs[1].ID))

	left, err := svc.ListImages(ctx, f.car.ID)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, []uint{imgs[0].ID}, primaries(left))
}

func TestCarImages_OtherShopCannotTouch(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	other := testutil.CreateUser(t, f.db, entity.RoleShop, "othershop")

	_, err := svc.AddImages(context.Background(), other.ID, f.car.ID, pngs(t, 1))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCarSetStatus(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, f.shop.ID, f.car.ID, entity.CarRented)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	car, err := svc.SetStatus(ctx, f.shop.ID, f.car.ID, entity.CarMaintenance)
	require.NoError(t, err)
	assert.Equal(t, entity.CarMaintenance, car.Status)

	_, err = svc.SetStatus(ctx, f.shop.ID, f.car.ID, entity.CarAvailable)
	require.NoError(t, err)
	r := f.book(t, 0, 2)
	_, err = f.svc.Confirm(ctx, f.shop.ID, r.ID)
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, f.shop.ID, r.ID)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, f.shop.ID, f.car.ID, entity.CarHidden)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestCarDelete_BlockedByActiveRental(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()
	r := f.book(t, 1, 2)

	err := svc.Delete(ctx, f.shop.ID, f.car.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = f.svc.ShopCancel(ctx, f.shop.ID, r.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, f.shop.ID, f.car.ID))

	_, err = svc.GetOwned(ctx, f.shop.ID, f.car.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCarSearch(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()
	van := testutil.CreateCar(t, f.db, f.shop.ID, "VAN-1", 1500)
	require.NoError(t, f.db.Model(van).Updates(map[string]any{"car_type": "van", "seats": 12}).Error)
	hidden := testutil.CreateCar(t, f.db, f.shop.ID, "HID-1", 700)
	require.NoError(t, f.db.Model(hidden).Update("status", entity.CarHidden).Error)

	all, total, err := svc.Search(ctx, repository.CarFilter{Page: repository.NewPage(1, 20)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	vans, _, err := svc.Search(ctx, repository.CarFilter{CarType: "van", SeatsMin: 10, Page: repository.NewPage(1, 20)})
	require.NoError(t, err)
	require.Len(t, vans, 1)
	assert.Equal(t, van.ID, vans[0].ID)

	cheap, _, err := svc.Search(ctx, repository.CarFilter{PriceMax: 600, Sort: "price_asc", Page: repository.NewPage(1, 20)})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, f.car.ID, cheap[0].ID)

	f.book(t, 2, 4)
	start, end := days(3), days(5)
	free, _, err := svc.Search(ctx, repository.CarFilter{Start: &start, End: &end, Page: repository.NewPage(1, 20)})
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, van.ID, free[0].ID)

	_, _, err = svc.Search(ctx, repository.CarFilter{Start: &start, Page: repository.NewPage(1, 20)})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCarDetail_HiddenOnlyForOwner(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()
	require.NoError(t, f.db.Model(f.car).Update("status", entity.CarHidden).Error)

	_, err := svc.Detail(ctx, f.car.ID, 0)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	d, err := svc.Detail(ctx, f.car.ID, f.shop.ID)
	require.NoError(t, err)
	assert.Equal(t, f.shop.ShopName, d.Shop.ShopName)
	assert.Zero(t, d.Rating.Count)
}

func TestCarDelete_FreesLicensePlate(t *testing.T) {
	f := newRentalFixture(t)
	svc := newCarService(t, f)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.shop.ID, services.CarInput{Brand: "Toyota", Model: "Vios", LicensePlate: f.car.LicensePlate, DailyRate: 700})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, f.shop.ID, f.car.ID))
	again, err := svc.Create(ctx, f.shop.ID, services.CarInput{Brand: "Toyota", Model: "Vios", LicensePlate: f.car.LicensePlate, DailyRate: 700})
	require.NoError(t, err)
	assert.NotEqual(t, f.car.ID, again.ID)
	assert.Equal(t, "Vios", again.CarModel)

	_, err = svc.Create(ctx, f.shop.ID, services.CarInput{Brand: "Toyota", Model: "Vios", LicensePlate: f.car.LicensePlate, DailyRate: 700})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
