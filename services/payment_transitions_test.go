package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
	"github.com/n4mp3un9/car-rental-sub001/services"
)

func TestNextPaymentStatus(t *testing.T) {
	cases := []struct {
		from entity.PaymentStatus
		act  services.PaymentAction
		to   entity.PaymentStatus // empty means rejected
	}{
		{entity.PaymentPending, services.PaymentSubmitProof, entity.PaymentPendingVerification},
		{entity.PaymentPending, services.PaymentVoid, entity.PaymentFailed},
		{entity.PaymentPending, services.PaymentVerify, ""},
		{entity.PaymentPendingVerification, services.PaymentSubmitProof, entity.PaymentPendingVerification},
		{entity.PaymentPendingVerification, services.PaymentVerify, entity.PaymentPaid},
		{entity.PaymentPendingVerification, services.PaymentReject, entity.PaymentRejected},
		{entity.PaymentPendingVerification, services.PaymentRefund, ""},
		{entity.PaymentRejected, services.PaymentSubmitProof, entity.PaymentPendingVerification},
		{entity.PaymentRejected, services.PaymentVerify, ""},
		{entity.PaymentPaid, services.PaymentRefund, entity.PaymentRefunded},
		{entity.PaymentPaid, services.PaymentDenyRefund, entity.PaymentRejected},
		{entity.PaymentPaid, services.PaymentSubmitProof, ""},
		{entity.PaymentPaid, services.PaymentVoid, ""},
		{entity.PaymentRefunded, services.PaymentRefund, ""},
		{entity.PaymentFailed, services.PaymentSubmitProof, ""},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_"+string(tc.act), func(t *testing.T) {
			got, err := services.NextPaymentStatus(tc.from, tc.act)
			if tc.to == "" {
				assert.True(t, apperr.Is(err, apperr.KindInvalidState))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.to, got)
		})
	}
}
