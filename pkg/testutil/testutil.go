// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/n4mp3un9/car-rental-sub001/configs"
	"github.com/n4mp3un9/car-rental-sub001/entity"
)

const Password = "secret123"

var dbSeq atomic.Int64

// PNG is the smallest payload the upload sniffer accepts as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// NewDB opens a private in-memory SQLite database with the real schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("test%d_%s", dbSeq.Add(1), strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role entity.Role, username string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		Role:      role,
		Status:    entity.UserActive,
	}
	if role == entity.RoleShop {
		u.ShopName = username + " rentals"
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateCar(t testing.TB, db *gorm.DB, shopID uint, plate string, dailyRate float64) *entity.Car {
	t.Helper()
	c := &entity.Car{
		ShopID:        shopID,
		Brand:         "Toyota",
		CarModel:      "Yaris",
		Year:          2022,
		LicensePlate:  plate,
		CarType:       "sedan",
		Transmission:  "auto",
		FuelType:      "petrol",
		Seats:         5,
		DailyRate:     dailyRate,
		InsuranceRate: 100,
		DepositAmount: 3000,
		Status:        entity.CarAvailable,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// FileHeader builds a multipart file header the way gin hands it out.
func FileHeader(t testing.TB, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, map[string]string{}, field, map[string][]byte{filename: data})
	_, params, _ := strings.Cut(contentType, "boundary=")
	form, err := multipart.NewReader(body, params).ReadForm(32 << 20)
	require.NoError(t, err)
	require.NotEmpty(t, form.File[field])
	return form.File[field][0]
}

// MultipartBody encodes fields and files into a request body and returns
// it with its Content-Type.
func MultipartBody(t testing.TB, fields map[string]string, fileField string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, data := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, name))
		h.Set("Content-Type", "application/octet-stream")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}
