package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRecord captures a single currency conversion transaction.
// Records are immutable once persisted; the store assigns ConversionID.
type ConversionRecord struct {
	ConversionID    int64           `json:"conversionID"` // Assigned by the store (monotonic)
	UserID          string          `json:"userID"`       // Owner reference
	Username        string          `json:"username"`
	FromCurrency    string          `json:"fromCurrency"` // 3-letter code, uppercase
	ToCurrency      string          `json:"toCurrency"`   // 3-letter code, uppercase
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"` // Multiplier valid at CreatedAt only
	CreatedAt       time.Time       `json:"createdAt"`
}
