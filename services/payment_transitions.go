package services

import (
	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
)

type PaymentAction string

const (
	PaymentSubmitProof PaymentAction = "submit_proof"
	PaymentVerify      PaymentAction = "verify"
	PaymentReject      PaymentAction = "reject"
	PaymentRefund      PaymentAction = "refund"
	PaymentDenyRefund  PaymentAction = "deny_refund"
	PaymentVoid        PaymentAction = "void" // booking cancelled before any proof
)

var paymentTransitions = map[entity.PaymentStatus]map[PaymentAction]entity.PaymentStatus{
	entity.PaymentPending: {
		PaymentSubmitProof: entity.PaymentPendingVerification,
		PaymentVoid:        entity.PaymentFailed,
	},
	entity.PaymentPendingVerification: {
		PaymentSubmitProof: entity.PaymentPendingVerification,
		PaymentVerify:      entity.PaymentPaid,
		PaymentReject:      entity.PaymentRejected,
		PaymentRefund:      entity.PaymentRefunded,
		PaymentDenyRefund:  entity.PaymentRejected,
	},
	entity.PaymentRejected: {
		PaymentSubmitProof: entity.PaymentPendingVerification,
	},
	entity.PaymentPaid: {
		PaymentRefund:     entity.PaymentRefunded,
		PaymentDenyRefund: entity.PaymentRejected,
	},
}

func NextPaymentStatus(from entity.PaymentStatus, act PaymentAction) (entity.PaymentStatus, error) {
	to, ok := paymentTransitions[from][act]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidState, "cannot %s a %s payment", act, from)
	}
	return to, nil
}
