package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/devfx/currency_converter_api/internal/apperrors"
	"github.com/devfx/currency_converter_api/internal/core/domain"
	portssvc "github.com/devfx/currency_converter_api/internal/core/ports/services"
	"github.com/devfx/currency_converter_api/internal/core/services"
	"github.com/devfx/currency_converter_api/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ConversionRepository ---
type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) (*domain.ConversionRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Allow tests to echo the input back with a store-assigned ID, the way
	// the real repository does via RETURNING.
	if fn, ok := args.Get(0).(func(domain.ConversionRecord) *domain.ConversionRecord); ok {
		return fn(record), args.Error(1)
	}
	return args.Get(0).(*domain.ConversionRecord), args.Error(1)
}

func (m *MockConversionRepository) FindConversionsByUsername(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionRecord), args.Error(1)
}

// --- Mock UserRepository (reader side) ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite ---
type ExchangeServiceTestSuite struct {
	suite.Suite
	mockProvider *MockRateProvider
	mockConvRepo *MockConversionRepository
	mockUserRepo *MockUserReader
	service      portssvc.ExchangeSvcFacade
	testUser     *domain.User
}

func (suite *ExchangeServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.mockConvRepo = new(MockConversionRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewExchangeService(suite.mockProvider, suite.mockConvRepo, suite.mockUserRepo)
	suite.testUser = &domain.User{
		UserID:   uuid.NewString(),
		Username: "joao",
		Role:     domain.RoleUser,
	}
}

// echoStored makes the save mock return its input with the given ID.
func (suite *ExchangeServiceTestSuite) echoStored(id int64) {
	suite.mockConvRepo.On("SaveConversion", mock.Anything, mock.AnythingOfType("domain.ConversionRecord")).
		Return(func(record domain.ConversionRecord) *domain.ConversionRecord {
			record.ConversionID = id
			return &record
		}, nil).Once()
}

// --- Test Cases ---

func (suite *ExchangeServiceTestSuite) TestConvert_MultipliesAndRoundsToScaleFour() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		From:   "USD",
		To:     "EUR",
		Amount: decimal.RequireFromString("100.00"),
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "joao").Return(suite.testUser, nil).Once()
	suite.mockProvider.On("GetRate", ctx, "USD", "EUR").Return(decimal.RequireFromString("0.85"), nil).Once()
	suite.echoStored(1)

	record, err := suite.service.Convert(ctx, "joao", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal(int64(1), record.ConversionID)
	suite.Equal(suite.testUser.UserID, record.UserID)
	suite.Equal("joao", record.Username)
	suite.Equal("USD", record.FromCurrency)
	suite.Equal("EUR", record.ToCurrency)
	suite.True(record.ConvertedAmount.Equal(decimal.RequireFromString("85.0000")), "got %s", record.ConvertedAmount)
	suite.True(record.Rate.Equal(decimal.RequireFromString("0.85")))
	suite.False(record.CreatedAt.IsZero())

	suite.mockProvider.AssertExpectations(suite.T())
	suite.mockConvRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestConvert_RoundsHalfUp() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		From:   "USD",
		To:     "BRL",
		Amount: decimal.RequireFromString("1.00"),
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "joao").Return(suite.testUser, nil).Once()
	suite.mockProvider.On("GetRate", ctx, "USD", "BRL").Return(decimal.RequireFromString("5.33335"), nil).Once()
	suite.echoStored(2)

	record, err := suite.service.Convert(ctx, "joao", req)

	suite.Require().NoError(err)
	// 1.00 * 5.33335 = 5.33335, half-up at 4 places -> 5.3334
	suite.True(record.ConvertedAmount.Equal(decimal.RequireFromString("5.3334")), "got %s", record.ConvertedAmount)
}

func (suite *ExchangeServiceTestSuite) TestConvert_SameCurrencySkipsProvider() {
	ctx := context.Background()
	amount := decimal.RequireFromString("42.42")
	req := dto.ConvertRequest{From: "USD", To: "usd", Amount: amount}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "joao").Return(suite.testUser, nil).Once()
	suite.echoStored(3)

	record, err := suite.service.Convert(ctx, "joao", req)

	suite.Require().NoError(err)
	suite.True(record.Rate.Equal(decimal.NewFromInt(1)))
	suite.True(record.ConvertedAmount.Equal(amount))
	suite.Equal("USD", record.FromCurrency)
	suite.Equal("USD", record.ToCurrency)

	suite.mockProvider.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockConvRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestConvert_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.RequireFromString("-5")} {
		req := dto.ConvertRequest{From: "USD", To: "EUR", Amount: amount}

		record, err := suite.service.Convert(ctx, "joao", req)

		suite.Require().Error(err)
		suite.Nil(record)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}

	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
	suite.mockProvider.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockConvRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ExchangeServiceTestSuite) TestConvert_InvalidPairPropagated() {
	ctx := context.Background()
	req := dto.ConvertRequest{From: "ZZZ", To: "EUR", Amount: decimal.NewFromInt(10)}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "joao").Return(suite.testUser, nil).Once()
	suite.mockProvider.On("GetRate", ctx, "ZZZ", "EUR").
		Return(decimal.Zero, fmt.Errorf("%w: provider rejected pair ZZZ/EUR", apperrors.ErrInvalidCurrencyPair)).Once()

	record, err := suite.service.Convert(ctx, "joao", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrInvalidCurrencyPair)
	suite.Contains(err.Error(), "ZZZ/EUR")
	suite.mockConvRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ExchangeServiceTestSuite) TestConvert_ProviderUnavailablePropagated() {
	ctx := context.Background()
	req := dto.ConvertRequest{From: "USD", To: "EUR", Amount: decimal.NewFromInt(10)}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "joao").Return(suite.testUser, nil).Once()
	suite.mockProvider.On("GetRate", ctx, "USD", "EUR").
		Return(decimal.Zero, fmt.Errorf("%w: failed to reach provider", apperrors.ErrProviderUnavailable)).Once()

	record, err := suite.service.Convert(ctx, "joao", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrProviderUnavailable)
	suite.mockConvRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ExchangeServiceTestSuite) TestConvert_UserMissingSkipsProviderAndAppend() {
	ctx := context.Background()
	req := dto.ConvertRequest{From: "USD", To: "EUR", Amount: decimal.NewFromInt(10)}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	record, err := suite.service.Convert(ctx, "ghost", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// Resolving the user first means no wasted provider call and no append.
	suite.mockProvider.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockConvRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func (suite *ExchangeServiceTestSuite) TestConvert_StorageFailurePropagated() {
	ctx := context.Background()
	req := dto.ConvertRequest{From: "USD", To: "EUR", Amount: decimal.NewFromInt(10)}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "joao").Return(suite.testUser, nil).Once()
	suite.mockProvider.On("GetRate", ctx, "USD", "EUR").Return(decimal.RequireFromString("0.9"), nil).Once()
	suite.mockConvRepo.On("SaveConversion", mock.Anything, mock.AnythingOfType("domain.ConversionRecord")).
		Return(nil, apperrors.NewAppError(500, "failed to save conversion record", fmt.Errorf("connection reset"))).Once()

	record, err := suite.service.Convert(ctx, "joao", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.Contains(err.Error(), "failed to record conversion")
}

func (suite *ExchangeServiceTestSuite) TestGetHistory_ReturnsOwnerRecords() {
	ctx := context.Background()
	now := time.Now()
	expected := []domain.ConversionRecord{
		{ConversionID: 1, Username: "joao", FromCurrency: "USD", ToCurrency: "EUR", CreatedAt: now.Add(-time.Hour)},
		{ConversionID: 2, Username: "joao", FromCurrency: "EUR", ToCurrency: "BRL", CreatedAt: now},
	}

	suite.mockConvRepo.On("FindConversionsByUsername", ctx, "joao").Return(expected, nil).Once()

	records, err := suite.service.GetHistory(ctx, "joao")

	suite.Require().NoError(err)
	suite.Len(records, 2)
	for _, record := range records {
		suite.Equal("joao", record.Username)
	}
}

func (suite *ExchangeServiceTestSuite) TestGetHistory_EmptyNotNil() {
	ctx := context.Background()

	suite.mockConvRepo.On("FindConversionsByUsername", ctx, "joao").Return(nil, nil).Once()

	records, err := suite.service.GetHistory(ctx, "joao")

	suite.Require().NoError(err)
	suite.NotNil(records)
	suite.Empty(records)
}

func TestExchangeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}
