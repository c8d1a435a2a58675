// Package domain defines instant payment drafts and the steps of the payment workflow.
package domain

// PaymentTypeInstant is the payment type id of an instant payment.
const PaymentTypeInstant = 1

// DefaultReasonForPayment is sent when the user gives no reason.
const DefaultReasonForPayment = "Instant Payment"

// PaymentInput is the user's payment form.
type PaymentInput struct {
	ToCustomer   string  `json:"to_customer"`
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
	Memo         string  `json:"memo"`
}

// PaymentRequest is what the gateway sends to create a draft.
type PaymentRequest struct {
	FromCustomer      string
	ToCustomer        string
	Amount            float64
	CurrencyCode      string
	ValueDate         string
	ReasonForPayment  string
	ExternalReference string
	Memo              string
}

// Draft is a server-side payment awaiting confirmation. Timestamp is the
// concurrency token that must be echoed back on confirm.
type Draft struct {
	PaymentID        string `json:"payment_id"`
	PaymentReference string `json:"payment_reference"`
	Timestamp        string `json:"timestamp"`
}
