package dto

import (
	"time"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
)

// DateLayout is the format of start_date and end_date query parameters
const DateLayout = "2006-01-02"

// ListRequest represents offset/limit query parameters.
// Out of range values are clamped, never rejected.
type ListRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

// Pagination returns the normalized pagination of the request
func (r ListRequest) Pagination() shared.Pagination {
	return shared.Pagination{Offset: r.Offset, Limit: r.Limit}.Normalize()
}

// KeywordListRequest is a listing filtered by a substring of the name
type KeywordListRequest struct {
	ListRequest
	Keyword *string `form:"keyword"`
}

// Filter returns the keyword filter of the request
func (r KeywordListRequest) Filter() shared.KeywordFilter {
	return shared.KeywordFilter{Keyword: r.Keyword}
}

// DateListRequest is a listing filtered by an inclusive day range
type DateListRequest struct {
	ListRequest
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// Dates returns the date range of the request
func (r DateListRequest) Dates() shared.DateRange {
	return shared.DateRange{Start: r.StartDate, End: r.EndDate}
}

// CustomizedInventoryListRequest filters inventory lines by their receipt context
type CustomizedInventoryListRequest struct {
	DateListRequest
	Currency     *string `form:"currency"`
	StoreName    *string `form:"store_name"`
	StoreAlias   *string `form:"store_alias"`
	ProductName  *string `form:"product_name"`
	ProductAlias *string `form:"product_alias"`
	ProductBrand *string `form:"product_brand"`
}

// Query converts the request to a repository query
func (r CustomizedInventoryListRequest) Query() receipt.InventoryQuery {
	return receipt.InventoryQuery{
		Dates:        r.Dates(),
		Currency:     r.Currency,
		StoreName:    r.StoreName,
		StoreAlias:   r.StoreAlias,
		ProductName:  r.ProductName,
		ProductAlias: r.ProductAlias,
		ProductBrand: r.ProductBrand,
	}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=128"`
	Password string `json:"pwd" binding:"required,max=256"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
