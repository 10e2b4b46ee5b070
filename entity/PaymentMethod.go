package entity

// PaymentMethod is how the customer intends to pay. Proof upload applies
// to the transfer methods; cash is settled at pickup.
type PaymentMethod string

const (
	MethodPromptPay    PaymentMethod = "promptpay"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	return m == MethodPromptPay || m == MethodBankTransfer || m == MethodCash
}
