package entity

type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentPaid                PaymentStatus = "paid"
	PaymentRejected            PaymentStatus = "rejected"
	PaymentRefunded            PaymentStatus = "refunded"
	PaymentFailed              PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPendingVerification, PaymentPaid,
		PaymentRejected, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}
