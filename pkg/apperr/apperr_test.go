package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"nil", nil, ""},
		{"typed", apperr.Conflict("taken"), apperr.KindConflict},
		{"wrapped", fmt.Errorf("booking: %w", apperr.InvalidState("closed")), apperr.KindInvalidState},
		{"not found sentinel", gorm.ErrRecordNotFound, apperr.KindNotFound},
		{"duplicate sentinel", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), apperr.KindConflict},
		{"plain", errors.New("boom"), apperr.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, apperr.FromDB(nil, "x"))

	err := apperr.FromDB(gorm.ErrRecordNotFound, "car not found")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "car not found", ae.Msg)

	assert.True(t, apperr.Is(apperr.FromDB(gorm.ErrDuplicatedKey, ""), apperr.KindConflict))

	plain := errors.New("connection reset")
	assert.Same(t, plain, apperr.FromDB(plain, "x"))
}
