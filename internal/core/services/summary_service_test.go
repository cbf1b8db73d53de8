package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SummaryRepository ---
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) GetSummaryAggregation(ctx context.Context, filter domain.EntryFilter) (domain.SummaryTotals, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.SummaryTotals), args.Error(1)
}

func (m *MockSummaryRepository) ListAllFilteredEntries(ctx context.Context, filter domain.EntryFilter, ascending bool) ([]domain.HydratedEntry, error) {
	args := m.Called(ctx, filter, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HydratedEntry), args.Error(1)
}

func (m *MockSummaryRepository) GetDistinctYearMonths(ctx context.Context) ([]domain.YearMonth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearMonth), args.Error(1)
}

func (m *MockSummaryRepository) GetDistinctYears(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// --- Mock PartyReader ---
type MockPartyReader struct {
	mock.Mock
}

func (m *MockPartyReader) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyReader) SearchParties(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Party, *string, error) {
	args := m.Called(ctx, query, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Party), token, args.Error(2)
}

func (m *MockPartyReader) ListParties(ctx context.Context) ([]domain.Party, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

// --- Mock BankReader ---
type MockBankReader struct {
	mock.Mock
}

func (m *MockBankReader) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankReader) SearchBanks(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Bank, *string, error) {
	args := m.Called(ctx, query, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Bank), token, args.Error(2)
}

func (m *MockBankReader) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

// --- Test Suite ---
type SummaryServiceTestSuite struct {
	suite.Suite
	mockSummaryRepo  *MockSummaryRepository
	mockEntryRepo    *MockEntryRepository
	mockCategoryRepo *MockCategoryReader
	mockPartyRepo    *MockPartyReader
	mockBankRepo     *MockBankReader
	service          portssvc.SummarySvcFacade
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockSummaryRepo = new(MockSummaryRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockCategoryRepo = new(MockCategoryReader)
	suite.mockPartyRepo = new(MockPartyReader)
	suite.mockBankRepo = new(MockBankReader)
	suite.service = services.NewSummaryService(
		suite.mockSummaryRepo,
		suite.mockEntryRepo,
		suite.mockCategoryRepo,
		suite.mockPartyRepo,
		suite.mockBankRepo,
	)
}

// --- Test Cases ---

func (suite *SummaryServiceTestSuite) TestGetFilteredSummaryPaginated_BalanceIdentity() {
	ctx := context.Background()
	filter := domain.EntryFilter{}
	token := "next-token"
	entries := makePage(3)
	totals := domain.SummaryTotals{
		TotalIncome:   decimal.RequireFromString("5000.50"),
		TotalExpenses: decimal.RequireFromString("1250.25"),
	}

	suite.mockEntryRepo.On("ListFilteredEntries", mock.Anything, filter, 20, (*string)(nil)).Return(entries, &token, nil).Once()
	suite.mockSummaryRepo.On("GetSummaryAggregation", mock.Anything, filter).Return(totals, nil).Once()

	result, nextToken, err := suite.service.GetFilteredSummaryPaginated(ctx, filter, 20, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Len(result.Entries, 3)
	suite.Require().NotNil(nextToken)
	suite.Equal(token, *nextToken)
	suite.True(result.Balance.Equal(result.TotalIncome.Sub(result.TotalExpenses)))
	suite.True(result.Balance.Equal(decimal.RequireFromString("3750.25")))
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockSummaryRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetFilteredSummaryPaginated_DetailErrorFailsWhole() {
	ctx := context.Background()
	filter := domain.EntryFilter{}
	expectedErr := assert.AnError

	suite.mockEntryRepo.On("ListFilteredEntries", mock.Anything, filter, 20, (*string)(nil)).Return(nil, nil, expectedErr).Once()
	suite.mockSummaryRepo.On("GetSummaryAggregation", mock.Anything, filter).Return(domain.SummaryTotals{}, nil).Maybe()

	result, nextToken, err := suite.service.GetFilteredSummaryPaginated(ctx, filter, 20, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Nil(nextToken)
	suite.ErrorIs(err, expectedErr)
}

func (suite *SummaryServiceTestSuite) TestGetFilteredSummaryPaginated_AggregationErrorFailsWhole() {
	ctx := context.Background()
	filter := domain.EntryFilter{}
	expectedErr := assert.AnError

	suite.mockEntryRepo.On("ListFilteredEntries", mock.Anything, filter, 20, (*string)(nil)).Return(makePage(1), (*string)(nil), nil).Maybe()
	suite.mockSummaryRepo.On("GetSummaryAggregation", mock.Anything, filter).Return(domain.SummaryTotals{}, expectedErr).Once()

	result, _, err := suite.service.GetFilteredSummaryPaginated(ctx, filter, 20, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, expectedErr)
}

func (suite *SummaryServiceTestSuite) TestGetSummaryAggregation_EmptyScopeIsZero() {
	ctx := context.Background()
	filter := domain.EntryFilter{}

	suite.mockSummaryRepo.On("GetSummaryAggregation", ctx, filter).Return(domain.SummaryTotals{}, nil).Once()

	totals, err := suite.service.GetSummaryAggregation(ctx, filter)

	suite.Require().NoError(err)
	suite.True(totals.TotalIncome.IsZero())
	suite.True(totals.TotalExpenses.IsZero())
	suite.True(totals.Balance().IsZero())
}

func (suite *SummaryServiceTestSuite) TestGetAllDataForExport_CollectsAllSections() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	categories := []domain.Category{{CategoryID: uuid.NewString(), Name: "Housing"}}
	parties := []domain.Party{{PartyID: uuid.NewString(), Name: "Landlord"}}
	banks := []domain.Bank{{BankID: uuid.NewString(), Name: "Checking"}}

	suite.mockSummaryRepo.On("ListAllFilteredEntries", mock.Anything, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.StartDate != nil && f.StartDate.Equal(start) && f.EndDate != nil && f.EndDate.Equal(end)
	}), true).Return(makePage(4), nil).Once()
	suite.mockCategoryRepo.On("ListCategories", mock.Anything).Return(categories, nil).Once()
	suite.mockPartyRepo.On("ListParties", mock.Anything).Return(parties, nil).Once()
	suite.mockBankRepo.On("ListBanks", mock.Anything).Return(banks, nil).Once()

	export, err := suite.service.GetAllDataForExport(ctx, &start, &end, nil, nil, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(export)
	suite.Len(export.Entries, 4)
	suite.Equal(categories, export.Categories)
	suite.Equal(parties, export.Parties)
	suite.Equal(banks, export.Banks)
	suite.mockSummaryRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetAllDataForExport_ReferenceErrorFailsWhole() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockSummaryRepo.On("ListAllFilteredEntries", mock.Anything, mock.Anything, true).Return(makePage(1), nil).Maybe()
	suite.mockCategoryRepo.On("ListCategories", mock.Anything).Return(nil, expectedErr).Once()
	suite.mockPartyRepo.On("ListParties", mock.Anything).Return([]domain.Party{}, nil).Maybe()
	suite.mockBankRepo.On("ListBanks", mock.Anything).Return([]domain.Bank{}, nil).Maybe()

	export, err := suite.service.GetAllDataForExport(ctx, nil, nil, nil, nil, nil)

	suite.Require().Error(err)
	suite.Nil(export)
	suite.ErrorIs(err, expectedErr)
}

func (suite *SummaryServiceTestSuite) TestGetDistinctYearMonths() {
	ctx := context.Background()
	expected := []domain.YearMonth{
		{Year: 2024, Month: time.June},
		{Year: 2024, Month: time.May},
	}

	suite.mockSummaryRepo.On("GetDistinctYearMonths", ctx).Return(expected, nil).Once()

	periods, err := suite.service.GetDistinctYearMonths(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, periods)
}

func (suite *SummaryServiceTestSuite) TestGetDistinctYears() {
	ctx := context.Background()

	suite.mockSummaryRepo.On("GetDistinctYears", ctx).Return([]int{2024, 2023}, nil).Once()

	years, err := suite.service.GetDistinctYears(ctx)

	suite.Require().NoError(err)
	suite.Equal([]int{2024, 2023}, years)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
