package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider fetches the live multiplier for converting one unit of the
// from-currency into the to-currency. The rate is valid only for the pair
// and instant it was fetched.
//
// Implementations classify failures as apperrors.ErrInvalidCurrencyPair
// (provider rejected the pair) or apperrors.ErrProviderUnavailable (any
// other failure) and never retry; retry policy belongs to the caller.
type RateProvider interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}
