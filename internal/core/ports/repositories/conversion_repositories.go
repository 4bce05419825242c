package repositories

import (
	"context"

	"github.com/devfx/currency_converter_api/internal/core/domain"
)

// ConversionWriter defines write operations for conversion history.
type ConversionWriter interface {
	// SaveConversion appends a record and returns the stored value with the
	// store-assigned ID populated. The append is a single-row insert; the
	// store's row atomicity is the only transactional guarantee required.
	SaveConversion(ctx context.Context, record domain.ConversionRecord) (*domain.ConversionRecord, error)
}

// ConversionReader defines read operations for conversion history.
type ConversionReader interface {
	// FindConversionsByUsername retrieves all records owned by the given
	// username, in chronological order. It must never return a record owned
	// by anyone else.
	FindConversionsByUsername(ctx context.Context, username string) ([]domain.ConversionRecord, error)
}

// ConversionRepositoryFacade combines all conversion-history repository interfaces
type ConversionRepositoryFacade interface {
	ConversionReader
	ConversionWriter
}
