package dto

import (
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
)

// HistoryRequest holds the query string of GET /v1/fx/deals.
type HistoryRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ToDomain converts the request to a deal search.
func (r HistoryRequest) ToDomain() fxDomain.DealSearch {
	return fxDomain.DealSearch{PageIndex: r.Page, PageSize: r.PageSize}
}

// HistoryResponse is one page of booked deals.
type HistoryResponse struct {
	Data       []fxDomain.DealRecord `json:"data"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
}

// MapHistoryToResponse converts a deal page to the API response.
func MapHistoryToResponse(page *fxDomain.DealPage) HistoryResponse {
	data := page.Deals
	if data == nil {
		data = []fxDomain.DealRecord{}
	}
	return HistoryResponse{
		Data:       data,
		TotalCount: page.TotalCount,
		Page:       page.PageIndex,
		PageSize:   page.PageSize,
	}
}
