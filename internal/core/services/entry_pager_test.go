package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/core/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EntryPagerTestSuite struct {
	suite.Suite
	mockEntryRepo    *MockEntryRepository
	mockCategoryRepo *MockCategoryReader
	bus              *invalidation.Bus
}

func (suite *EntryPagerTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockCategoryRepo = new(MockCategoryReader)
	suite.bus = invalidation.NewBus()
}

func (suite *EntryPagerTestSuite) newPager(filter domain.EntryFilter, pageSize int) portssvc.EntryPager {
	svc := services.NewEntryService(suite.mockEntryRepo, suite.mockCategoryRepo, suite.bus)
	return svc.NewPager(filter, pageSize)
}

func makePage(n int) []domain.HydratedEntry {
	page := make([]domain.HydratedEntry, n)
	for i := range page {
		page[i] = domain.HydratedEntry{
			Entry: domain.AccountEntry{EntryID: uuid.NewString()},
		}
	}
	return page
}

func (suite *EntryPagerTestSuite) TestLoadNextWalksEveryPage() {
	ctx := context.Background()
	filter := domain.EntryFilter{}
	token1 := "token-1"
	token2 := "token-2"

	// Five entries at page size two yield three pages.
	suite.mockEntryRepo.On("ListFilteredEntries", ctx, filter, 2, (*string)(nil)).Return(makePage(2), &token1, nil).Once()
	suite.mockEntryRepo.On("ListFilteredEntries", ctx, filter, 2, &token1).Return(makePage(2), &token2, nil).Once()
	suite.mockEntryRepo.On("ListFilteredEntries", ctx, filter, 2, &token2).Return(makePage(1), (*string)(nil), nil).Once()

	pager := suite.newPager(filter, 2)
	defer pager.Close()

	seen := map[string]struct{}{}
	pages := 0
	for pager.HasMore() {
		page, err := pager.LoadNext(ctx)
		suite.Require().NoError(err)
		pages++
		for _, h := range page {
			_, dup := seen[h.Entry.EntryID]
			suite.False(dup, "entry delivered twice across pages")
			seen[h.Entry.EntryID] = struct{}{}
		}
	}

	suite.Equal(3, pages)
	suite.Len(seen, 5)
	suite.False(pager.HasMore())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryPagerTestSuite) TestLoadNextAfterTailIsEmpty() {
	ctx := context.Background()
	filter := domain.EntryFilter{}

	suite.mockEntryRepo.On("ListFilteredEntries", ctx, filter, 10, (*string)(nil)).Return(makePage(3), (*string)(nil), nil).Once()

	pager := suite.newPager(filter, 10)
	defer pager.Close()

	page, err := pager.LoadNext(ctx)
	suite.Require().NoError(err)
	suite.Len(page, 3)
	suite.False(pager.HasMore())

	// Past the tail, no repository call is made.
	page, err = pager.LoadNext(ctx)
	suite.Require().NoError(err)
	suite.Empty(page)
	suite.mockEntryRepo.AssertNumberOfCalls(suite.T(), "ListFilteredEntries", 1)
}

func (suite *EntryPagerTestSuite) TestRefreshRestartsFromHead() {
	ctx := context.Background()
	filter := domain.EntryFilter{}
	token1 := "token-1"

	suite.mockEntryRepo.On("ListFilteredEntries", ctx, filter, 2, (*string)(nil)).Return(makePage(2), &token1, nil).Twice()

	pager := suite.newPager(filter, 2)
	defer pager.Close()

	_, err := pager.LoadNext(ctx)
	suite.Require().NoError(err)

	page, err := pager.Refresh(ctx)
	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.True(pager.HasMore())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryPagerTestSuite) TestWriteSignalsOpenPager() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, categoryID).Return(expenseCategory(categoryID), nil).Once()
	suite.mockEntryRepo.On("UpsertEntry", mock.Anything, mock.AnythingOfType("domain.AccountEntry")).
		Run(func(args mock.Arguments) {
			// The pgsql repository publishes after commit; the mock stands in
			// for that side effect here.
			suite.bus.Publish(invalidation.TableEntries)
		}).Return(nil).Once()

	svc := services.NewEntryService(suite.mockEntryRepo, suite.mockCategoryRepo, suite.bus)
	pager := svc.NewPager(domain.EntryFilter{}, 20)
	defer pager.Close()

	_, err := svc.UpsertEntry(ctx, dto.UpsertEntryRequest{
		Title:           "Monthly Rent",
		Amount:          decimal.NewFromInt(1200),
		TransactionType: "EXPENSE",
		EntryType:       "CASH",
		CategoryID:      categoryID,
		TransactionDate: time.Now(),
	})
	suite.Require().NoError(err)

	select {
	case table := <-pager.Invalidated():
		suite.Equal(invalidation.TableEntries, table)
	case <-time.After(time.Second):
		suite.Fail("expected an invalidation signal after the write")
	}
}

func (suite *EntryPagerTestSuite) TestCloseReleasesSubscription() {
	pager := suite.newPager(domain.EntryFilter{}, 20)

	pager.Close()
	pager.Close() // idempotent

	_, open := <-pager.Invalidated()
	suite.False(open)
}

func TestEntryPagerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryPagerTestSuite))
}
