package dto

import (
	"net/http"
	"testing"
	"time"

	"github.com/receipts/backend/internal/domain/receipt"
	"github.com/receipts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		kind     shared.ErrorKind
		expected int
	}{
		{shared.KindConnectivity, http.StatusInternalServerError},
		{shared.KindNotFound, http.StatusNotFound},
		{shared.KindInvalidParameter, http.StatusBadRequest},
		{shared.KindValidation, http.StatusBadRequest},
		{shared.KindResolution, http.StatusConflict},
		{shared.KindPersistence, http.StatusInternalServerError},
		{shared.KindGeneric, http.StatusNotAcceptable},
		{shared.ErrorKind("SOMETHING_ELSE"), http.StatusNotAcceptable},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.kind))
		})
	}
}

func TestGetHTTPStatus_DomainSentinels(t *testing.T) {
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(receipt.ErrCurrencyNameDuplicated.Kind))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(receipt.ErrStoreInvalid.Kind))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(shared.ErrNoRecord.Kind))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(shared.ErrDatabaseConnectionBroken.Kind))
}

func TestNewPageResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a", "b"}, 7, shared.Pagination{Offset: 2, Limit: 2})

	resp := NewPageResponse(page)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	assert.Equal(t, &Meta{Total: 7, Offset: 2, Limit: 2}, resp.Meta)
}

func TestNewDomainErrorResponse(t *testing.T) {
	resp := NewDomainErrorResponse(shared.ErrNoRecord.WithMessage("Receipt not found"), "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, "NO_RECORD", resp.Error.Code)
	assert.Equal(t, "Receipt not found", resp.Error.Message)
	assert.Equal(t, "NOT_FOUND", resp.Error.Kind)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestListRequest_Pagination(t *testing.T) {
	assert.Equal(t, shared.Pagination{Offset: 0, Limit: 20}, ListRequest{Offset: -5, Limit: 0}.Pagination())
	assert.Equal(t, shared.Pagination{Offset: 3, Limit: 100}, ListRequest{Offset: 3, Limit: 10000}.Pagination())
}

func TestCustomizedInventoryListRequest_Query(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	currency := "EUR"
	brand := "Acme"

	req := CustomizedInventoryListRequest{
		DateListRequest: DateListRequest{StartDate: &start, EndDate: &end},
		Currency:        &currency,
		ProductBrand:    &brand,
	}
	q := req.Query()

	assert.Equal(t, &currency, q.Currency)
	assert.Equal(t, &brand, q.ProductBrand)
	assert.Nil(t, q.StoreName)
	_, _, ok := q.Dates.Bounds()
	assert.True(t, ok)
}
