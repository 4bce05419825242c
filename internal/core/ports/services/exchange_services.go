package services

import (
	"context"

	"github.com/devfx/currency_converter_api/internal/core/domain"
	"github.com/devfx/currency_converter_api/internal/dto"
)

// ExchangeConverterSvc defines the conversion operation.
type ExchangeConverterSvc interface {
	// Convert fetches the live rate for the requested pair, computes the
	// converted amount and durably records the transaction for the given
	// user. The username is passed explicitly; the engine never reads the
	// caller identity from ambient state.
	Convert(ctx context.Context, username string, req dto.ConvertRequest) (*domain.ConversionRecord, error)
}

// ExchangeHistorySvc defines read operations over conversion history.
type ExchangeHistorySvc interface {
	// GetHistory retrieves all conversion records owned by the given user.
	GetHistory(ctx context.Context, username string) ([]domain.ConversionRecord, error)
}

// ExchangeSvcFacade combines all exchange-related service interfaces
type ExchangeSvcFacade interface {
	ExchangeConverterSvc
	ExchangeHistorySvc
}
