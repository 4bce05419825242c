package dto

import (
	"time"

	"github.com/devfx/currency_converter_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the payload for converting an amount between two currencies.
// Codes are validated for shape here; whether the pair actually exists is the
// rate provider's call.
type ConvertRequest struct {
	From   string          `json:"from" binding:"required,len=3,alpha"`
	To     string          `json:"to" binding:"required,len=3,alpha"`
	Amount decimal.Decimal `json:"amount" binding:"required"` // Positivity enforced by the service
}

// ConversionResponse defines the structure for API responses containing a
// single conversion record.
type ConversionResponse struct {
	ConversionID    int64           `json:"conversionID"`
	Username        string          `json:"username"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToConversionResponse converts a domain.ConversionRecord to ConversionResponse DTO
func ToConversionResponse(record *domain.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		ConversionID:    record.ConversionID,
		Username:        record.Username,
		FromCurrency:    record.FromCurrency,
		ToCurrency:      record.ToCurrency,
		OriginalAmount:  record.OriginalAmount,
		ConvertedAmount: record.ConvertedAmount,
		Rate:            record.Rate,
		CreatedAt:       record.CreatedAt,
	}
}

// ToListConversionResponse converts a slice of domain.ConversionRecord to a
// slice of ConversionResponse DTOs.
func ToListConversionResponse(records []domain.ConversionRecord) []ConversionResponse {
	responses := make([]ConversionResponse, len(records))
	for i := range records {
		responses[i] = ToConversionResponse(&records[i])
	}
	return responses
}
