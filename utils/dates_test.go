package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n4mp3un9/car-rental-sub001/utils"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-06-01", " 2025-06-01 ", "2025-06-01T13:45:00Z"} {
		got, err := utils.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q -> %v", in, got)
	}

	for _, in := range []string{"", "01/06/2025", "2025-13-01"} {
		_, err := utils.ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestRentalDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, utils.RentalDays(start, start.AddDate(0, 0, 1)))
	assert.Equal(t, 3, utils.RentalDays(start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 3, utils.RentalDays(start.Add(9*time.Hour), start.AddDate(0, 0, 3).Add(2*time.Hour)))
	assert.Equal(t, 0, utils.RentalDays(start, start))
	// month boundary
	assert.Equal(t, 2, utils.RentalDays(time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
}
