package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devfx/currency_converter_api/internal/apperrors"
	"github.com/devfx/currency_converter_api/internal/core/domain"
	portsprov "github.com/devfx/currency_converter_api/internal/core/ports/providers"
	portsrepo "github.com/devfx/currency_converter_api/internal/core/ports/repositories"
	portssvc "github.com/devfx/currency_converter_api/internal/core/ports/services"
	"github.com/devfx/currency_converter_api/internal/dto"
	"github.com/shopspring/decimal"
)

// convertedScale is the number of decimal places converted amounts are
// rounded to. shopspring's Round is half away from zero, which matches
// HALF_UP for the positive amounts this service accepts.
const convertedScale = 4

// ExchangeService orchestrates a currency conversion: it resolves the
// calling user, fetches the live rate, computes the converted amount and
// appends the resulting record. The append is the only side-effecting write
// and the final step, so no partially-converted state can ever persist.
type ExchangeService struct {
	rateProvider   portsprov.RateProvider
	conversionRepo portsrepo.ConversionRepositoryFacade
	userRepo       portsrepo.UserReader
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(
	rateProvider portsprov.RateProvider,
	conversionRepo portsrepo.ConversionRepositoryFacade,
	userRepo portsrepo.UserReader,
) *ExchangeService {
	return &ExchangeService{
		rateProvider:   rateProvider,
		conversionRepo: conversionRepo,
		userRepo:       userRepo,
	}
}

// Ensure ExchangeService implements the service facade
var _ portssvc.ExchangeSvcFacade = (*ExchangeService)(nil)

// Convert performs the full conversion transaction for the given user.
//
// The user is resolved before any provider call, so a vanished identity
// never wastes an external round trip. A same-currency pair short-circuits
// the provider entirely: rate 1, converted amount identical to the input.
// Provider failures are propagated with their classification unchanged.
func (s *ExchangeService) Convert(ctx context.Context, username string, req dto.ConvertRequest) (*domain.ConversionRecord, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	from := strings.ToUpper(req.From)
	to := strings.ToUpper(req.To)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %q: %w", username, err)
	}

	rate := decimal.NewFromInt(1)
	convertedAmount := req.Amount
	if from != to {
		rate, err = s.rateProvider.GetRate(ctx, from, to)
		if err != nil {
			return nil, err
		}
		convertedAmount = req.Amount.Mul(rate).Round(convertedScale)
	}

	record := domain.ConversionRecord{
		UserID:          user.UserID,
		Username:        user.Username,
		FromCurrency:    from,
		ToCurrency:      to,
		OriginalAmount:  req.Amount,
		ConvertedAmount: convertedAmount,
		Rate:            rate,
		CreatedAt:       time.Now(),
	}

	stored, err := s.conversionRepo.SaveConversion(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record conversion: %w", err)
	}

	return stored, nil
}

// GetHistory retrieves all conversion records owned by the given user.
func (s *ExchangeService) GetHistory(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	records, err := s.conversionRepo.FindConversionsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion history in service: %w", err)
	}
	if records == nil {
		return []domain.ConversionRecord{}, nil
	}
	return records, nil
}
