package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/core/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.AccountEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountEntry), args.Error(1)
}

func (m *MockEntryRepository) ListFilteredEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.HydratedEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.HydratedEntry), token, args.Error(2)
}

func (m *MockEntryRepository) SearchEntries(ctx context.Context, query string, limit int) ([]domain.HydratedEntry, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HydratedEntry), args.Error(1)
}

func (m *MockEntryRepository) UpsertEntry(ctx context.Context, entry domain.AccountEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) SetEntryPinned(ctx context.Context, entryID string, pinned bool, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, pinned, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) SearchCategories(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Category, *string, error) {
	args := m.Called(ctx, query, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Category), token, args.Error(2)
}

func (m *MockCategoryReader) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Test Suite ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo    *MockEntryRepository
	mockCategoryRepo *MockCategoryReader
	bus              *invalidation.Bus
	service          portssvc.EntrySvcFacade
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockCategoryRepo = new(MockCategoryReader)
	suite.bus = invalidation.NewBus()
	suite.service = services.NewEntryService(suite.mockEntryRepo, suite.mockCategoryRepo, suite.bus)
}

func expenseCategory(id string) *domain.Category {
	return &domain.Category{
		CategoryID:      id,
		Name:            "Housing",
		TransactionType: domain.TransactionTypeExpense,
	}
}

// --- Test Cases ---

func (suite *EntryServiceTestSuite) TestUpsertEntry_CreateSuccess() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.UpsertEntryRequest{
		Title:           "Monthly Rent",
		Amount:          decimal.NewFromInt(1200),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      categoryID,
		TransactionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(expenseCategory(categoryID), nil).Once()
	suite.mockEntryRepo.On("UpsertEntry", ctx, mock.MatchedBy(func(e domain.AccountEntry) bool {
		return e.EntryID != "" && e.Title == req.Title && e.Amount.Equal(req.Amount) &&
			e.TransactionType == domain.TransactionTypeExpense && e.CategoryID == categoryID
	})).Return(nil).Once()

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(req.Title, entry.Title)
	suite.False(entry.CreatedAt.IsZero())
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_BlankTitle() {
	ctx := context.Background()
	req := dto.UpsertEntryRequest{
		Title:           "   ",
		Amount:          decimal.NewFromInt(10),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      uuid.NewString(),
		TransactionDate: time.Now(),
	}

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpsertEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_NegativeAmount() {
	ctx := context.Background()
	req := dto.UpsertEntryRequest{
		Title:           "Refund",
		Amount:          decimal.NewFromInt(-5),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      uuid.NewString(),
		TransactionDate: time.Now(),
	}

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_CategoryNotFound() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.UpsertEntryRequest{
		Title:           "Groceries",
		Amount:          decimal.NewFromInt(80),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      categoryID,
		TransactionDate: time.Now(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForeignKey)
	suite.False(apperrors.IsTransient(err))
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpsertEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_CategoryTypeMismatch() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.UpsertEntryRequest{
		Title:           "Salary",
		Amount:          decimal.NewFromInt(5000),
		TransactionType: "INCOME",
		EntryType:       "BANK",
		CategoryID:      categoryID,
		TransactionDate: time.Now(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(expenseCategory(categoryID), nil).Once()

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpsertEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_BankRefRequiresBankType() {
	ctx := context.Background()
	bankID := uuid.NewString()
	req := dto.UpsertEntryRequest{
		Title:           "Transfer",
		Amount:          decimal.NewFromInt(100),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      uuid.NewString(),
		BankID:          &bankID,
		TransactionDate: time.Now(),
	}

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_UpdatePreservesCreatedAt() {
	ctx := context.Background()
	entryID := uuid.NewString()
	categoryID := uuid.NewString()
	created := time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)
	existing := &domain.AccountEntry{
		EntryID:    entryID,
		Title:      "Old Title",
		CategoryID: categoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     created,
			LastUpdatedAt: created,
		},
	}
	req := dto.UpsertEntryRequest{
		EntryID:         &entryID,
		Title:           "New Title",
		Amount:          decimal.NewFromInt(42),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      categoryID,
		TransactionDate: time.Now(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(expenseCategory(categoryID), nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpsertEntry", ctx, mock.MatchedBy(func(e domain.AccountEntry) bool {
		return e.EntryID == entryID && e.CreatedAt.Equal(created) && e.Title == "New Title"
	})).Return(nil).Once()

	entry, err := suite.service.UpsertEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(entryID, entry.EntryID)
	suite.True(entry.CreatedAt.Equal(created))
	suite.True(entry.LastUpdatedAt.After(created))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestTogglePin_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.AccountEntry{EntryID: entryID, IsPinned: false}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockEntryRepo.On("SetEntryPinned", ctx, entryID, true, mock.AnythingOfType("time.Time")).Return(nil).Once()

	pinned, err := suite.service.TogglePin(ctx, entryID)

	suite.Require().NoError(err)
	suite.True(pinned)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestTogglePin_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	pinned, err := suite.service.TogglePin(ctx, entryID)

	suite.Require().Error(err)
	suite.False(pinned)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_NotFoundPassesThrough() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockEntryRepo.On("DeleteEntry", ctx, entryID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestSearchEntries_BlankQuerySkipsRepo() {
	ctx := context.Background()

	hits, err := suite.service.SearchEntries(ctx, "   ", 10)

	suite.Require().NoError(err)
	suite.Empty(hits)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SearchEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestSearchEntries_Success() {
	ctx := context.Background()
	expected := []domain.HydratedEntry{
		{Entry: domain.AccountEntry{EntryID: uuid.NewString(), Title: "Monthly Rent"}},
	}

	suite.mockEntryRepo.On("SearchEntries", ctx, "rent", 10).Return(expected, nil).Once()

	hits, err := suite.service.SearchEntries(ctx, "rent", 10)

	suite.Require().NoError(err)
	suite.Equal(expected, hits)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
