package utils_test

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/pkg/testutil"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

func TestSaveImages(t *testing.T) {
	root := t.TempDir()
	s := utils.NewStorage(root, "")

	urls, err := s.SaveImages("images", "cars", []*multipart.FileHeader{
		testutil.FileHeader(t, "images", "a.png", testutil.PNG),
		testutil.FileHeader(t, "images", "b.bin", testutil.PNG),
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, "/uploads/cars/images-"), u)
		assert.True(t, strings.HasSuffix(u, ".png"), u)
		assert.FileExists(t, filepath.Join(root, "cars", filepath.Base(u)))
	}

	require.NoError(t, s.Remove(urls[0]))
	assert.NoFileExists(t, filepath.Join(root, "cars", filepath.Base(urls[0])))
	assert.NoError(t, s.Remove(urls[0]), "removing twice is fine")
	assert.NoError(t, s.Remove("/uploads/../secret"))
}

func TestSaveImages_RejectsWholeBatch(t *testing.T) {
	root := t.TempDir()
	s := utils.NewStorage(root, "")

	_, err := s.SaveImages("images", "cars", []*multipart.FileHeader{
		testutil.FileHeader(t, "images", "a.png", testutil.PNG),
		testutil.FileHeader(t, "images", "notes.txt", []byte("plain text, not an image")),
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, statErr := os.Stat(filepath.Join(root, "cars"))
	assert.True(t, os.IsNotExist(statErr), "nothing written")

	_, err = s.SaveImages("images", "cars", nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSaveImages_TooLarge(t *testing.T) {
	s := utils.NewStorage(t.TempDir(), "")
	big := append(append([]byte{}, testutil.PNG...), make([]byte, utils.MaxFileSize)...)

	_, err := s.SaveImage("proof", utils.PaymentsDir, testutil.FileHeader(t, "proof", "big.png", big))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestStorage_BaseURL(t *testing.T) {
	root := t.TempDir()
	s := utils.NewStorage(root, "https://cdn.example.com/")

	u, err := s.SaveImage("proof", utils.PaymentsDir, testutil.FileHeader(t, "proof", "p.png", testutil.PNG))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://cdn.example.com/uploads/payments/proof-"), u)

	require.NoError(t, s.Remove(u))
	assert.NoFileExists(t, filepath.Join(root, utils.PaymentsDir, filepath.Base(u)))
}
