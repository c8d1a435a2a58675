package dto

import (
	"time"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

// HistoryRequest holds the query string of GET /v1/payments/history.
type HistoryRequest struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
	Page      int       `form:"page"`
	PageSize  int       `form:"page_size"`
}

// ToDomain converts the request to a payment search.
func (r HistoryRequest) ToDomain() paymentDomain.PaymentSearch {
	return paymentDomain.PaymentSearch{
		ValueDateMin: r.StartDate,
		ValueDateMax: r.EndDate,
		PageIndex:    r.Page,
		PageSize:     r.PageSize,
	}
}

// HistoryResponse is one page of past instant payments.
type HistoryResponse struct {
	Data       []paymentDomain.PaymentRecord `json:"data"`
	TotalCount int                           `json:"total_count"`
	Page       int                           `json:"page"`
	PageSize   int                           `json:"page_size"`
}

// MapHistoryToResponse converts a payment page to the API response.
func MapHistoryToResponse(page *paymentDomain.PaymentPage) HistoryResponse {
	data := page.Payments
	if data == nil {
		data = []paymentDomain.PaymentRecord{}
	}
	return HistoryResponse{
		Data:       data,
		TotalCount: page.TotalCount,
		Page:       page.PageIndex,
		PageSize:   page.PageSize,
	}
}
