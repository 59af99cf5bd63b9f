package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

// Ensure MockInventoryRepository implements portsrepo.InventoryRepositoryWithTx
var _ portsrepo.InventoryRepositoryWithTx = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	// Run the unit of work against a nil handle; the mocks below ignore it.
	return fn(nil)
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemByNameForUpdate(ctx context.Context, tx pgx.Tx, branchID, name, unit string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tx, branchID, name, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) CreateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) AppendConsumptionInTx(ctx context.Context, tx pgx.Tx, rec domain.InventoryConsumption) error {
	args := m.Called(ctx, tx, rec)
	return args.Error(0)
}

func (m *MockInventoryRepository) ListItemsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.InventoryItem, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.InventoryItem), returnedNextToken, args.Error(2)
}

func (m *MockInventoryRepository) ListConsumptionsByItem(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryConsumption, *string, error) {
	args := m.Called(ctx, itemID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.InventoryConsumption), returnedNextToken, args.Error(2)
}

// --- Test Suite Setup ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInventoryRepository
	service  portssvc.InventorySvcFacade
	branchID string
	userID   string
	now      time.Time
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	suite.service = services.NewInventoryService(suite.mockRepo)
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.now = time.Now()
}

func (suite *InventoryServiceTestSuite) purchase(name, unit string, qty, totalCost decimal.Decimal) portssvc.InventoryPurchase {
	return portssvc.InventoryPurchase{
		BranchID:  suite.branchID,
		Name:      name,
		Unit:      unit,
		Quantity:  qty,
		TotalCost: totalCost,
		UserID:    suite.userID,
		Now:       suite.now,
	}
}

func (suite *InventoryServiceTestSuite) TestPurchaseInTx_CreatesNewItem() {
	ctx := context.Background()
	p := suite.purchase("Coffee Beans", "kg", decimal.NewFromInt(10), decimal.NewFromInt(500))

	suite.mockRepo.On("FindItemByNameForUpdate", ctx, nil, suite.branchID, "Coffee Beans", "kg").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateItemInTx", ctx, nil, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.BranchID == suite.branchID &&
			item.Name == "Coffee Beans" &&
			item.Unit == "kg" &&
			item.Quantity.Equal(decimal.NewFromInt(10)) &&
			item.CostPerUnit.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()

	itemID, err := suite.service.PurchaseInTx(ctx, nil, p)

	suite.NoError(err)
	suite.NotEmpty(itemID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestPurchaseInTx_MergesWithWeightedAverage() {
	ctx := context.Background()
	existing := &domain.InventoryItem{
		ItemID:      uuid.NewString(),
		BranchID:    suite.branchID,
		Name:        "Coffee Beans",
		Unit:        "kg",
		Quantity:    decimal.NewFromInt(10),
		CostPerUnit: decimal.NewFromInt(50),
	}
	// 10 @ 50 plus 5 for 300 => 15 units at (500+300)/15
	p := suite.purchase("Coffee Beans", "kg", decimal.NewFromInt(5), decimal.NewFromInt(300))
	expectedCost := decimal.NewFromInt(800).DivRound(decimal.NewFromInt(15), 8)

	suite.mockRepo.On("FindItemByNameForUpdate", ctx, nil, suite.branchID, "Coffee Beans", "kg").
		Return(existing, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", ctx, nil, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.ItemID == existing.ItemID &&
			item.Quantity.Equal(decimal.NewFromInt(15)) &&
			item.CostPerUnit.Equal(expectedCost)
	})).Return(nil).Once()

	itemID, err := suite.service.PurchaseInTx(ctx, nil, p)

	suite.NoError(err)
	suite.Equal(existing.ItemID, itemID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestPurchaseInTx_TrimsNaturalKey() {
	ctx := context.Background()
	p := suite.purchase("  Milk ", " l ", decimal.NewFromInt(2), decimal.NewFromInt(6))

	suite.mockRepo.On("FindItemByNameForUpdate", ctx, nil, suite.branchID, "Milk", "l").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateItemInTx", ctx, nil, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.Name == "Milk" && item.Unit == "l"
	})).Return(nil).Once()

	_, err := suite.service.PurchaseInTx(ctx, nil, p)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestConsumeInTx_DecrementsAndAppendsRecord() {
	ctx := context.Background()
	item := &domain.InventoryItem{
		ItemID:      uuid.NewString(),
		BranchID:    suite.branchID,
		Name:        "Coffee Beans",
		Unit:        "kg",
		Quantity:    decimal.NewFromInt(10),
		CostPerUnit: decimal.NewFromInt(50),
	}
	c := portssvc.InventoryConsume{
		BranchID: suite.branchID,
		ItemID:   item.ItemID,
		Quantity: decimal.NewFromInt(4),
		Reason:   "txn-123",
		UserID:   suite.userID,
		Now:      suite.now,
	}

	suite.mockRepo.On("FindItemByIDForUpdate", ctx, nil, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", ctx, nil, mock.MatchedBy(func(updated domain.InventoryItem) bool {
		// Quantity drops, the unit cost does not move on consumption.
		return updated.Quantity.Equal(decimal.NewFromInt(6)) &&
			updated.CostPerUnit.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	suite.mockRepo.On("AppendConsumptionInTx", ctx, nil, mock.MatchedBy(func(rec domain.InventoryConsumption) bool {
		return rec.ItemID == item.ItemID &&
			rec.Quantity.Equal(decimal.NewFromInt(4)) &&
			rec.Unit == "kg" &&
			rec.Reason == "txn-123"
	})).Return(nil).Once()

	err := suite.service.ConsumeInTx(ctx, nil, c)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestConsumeInTx_InsufficientQuantity() {
	ctx := context.Background()
	item := &domain.InventoryItem{
		ItemID:   uuid.NewString(),
		BranchID: suite.branchID,
		Quantity: decimal.NewFromInt(3),
	}

	suite.mockRepo.On("FindItemByIDForUpdate", ctx, nil, item.ItemID).Return(item, nil).Once()

	err := suite.service.ConsumeInTx(ctx, nil, portssvc.InventoryConsume{
		BranchID: suite.branchID,
		ItemID:   item.ItemID,
		Quantity: decimal.NewFromInt(5),
		UserID:   suite.userID,
		Now:      suite.now,
	})

	suite.ErrorIs(err, services.ErrInsufficientQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendConsumptionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestConsumeInTx_ExactQuantityDrainsToZero() {
	ctx := context.Background()
	item := &domain.InventoryItem{
		ItemID:   uuid.NewString(),
		BranchID: suite.branchID,
		Unit:     "pcs",
		Quantity: decimal.NewFromInt(5),
	}

	suite.mockRepo.On("FindItemByIDForUpdate", ctx, nil, item.ItemID).Return(item, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", ctx, nil, mock.MatchedBy(func(updated domain.InventoryItem) bool {
		return updated.Quantity.IsZero()
	})).Return(nil).Once()
	suite.mockRepo.On("AppendConsumptionInTx", ctx, nil, mock.Anything).Return(nil).Once()

	err := suite.service.ConsumeInTx(ctx, nil, portssvc.InventoryConsume{
		BranchID: suite.branchID,
		ItemID:   item.ItemID,
		Quantity: decimal.NewFromInt(5),
		UserID:   suite.userID,
		Now:      suite.now,
	})

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestConsumeInTx_OtherBranchLooksMissing() {
	ctx := context.Background()
	item := &domain.InventoryItem{
		ItemID:   uuid.NewString(),
		BranchID: uuid.NewString(),
		Quantity: decimal.NewFromInt(10),
	}

	suite.mockRepo.On("FindItemByIDForUpdate", ctx, nil, item.ItemID).Return(item, nil).Once()

	err := suite.service.ConsumeInTx(ctx, nil, portssvc.InventoryConsume{
		BranchID: suite.branchID,
		ItemID:   item.ItemID,
		Quantity: decimal.NewFromInt(1),
		UserID:   suite.userID,
		Now:      suite.now,
	})

	// The item exists in another branch but callers must not learn that.
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestRecordConsumption_RejectsNonPositiveQuantity() {
	ctx := context.Background()
	staff := domain.User{
		UserID:   suite.userID,
		Role:     domain.RoleStaff,
		BranchID: &suite.branchID,
	}

	_, err := suite.service.RecordConsumption(ctx, dto.ConsumeInventoryRequest{
		ItemID:   uuid.NewString(),
		Quantity: decimal.Zero,
		Reason:   "spoilage",
	}, staff)

	var validationErrs dto.ValidationErrors
	suite.ErrorAs(err, &validationErrs)
	suite.mockRepo.AssertNotCalled(suite.T(), "WithinTx", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestGetItemByID_EnforcesBranchVisibility() {
	ctx := context.Background()
	item := &domain.InventoryItem{
		ItemID:   uuid.NewString(),
		BranchID: uuid.NewString(),
	}
	otherBranch := suite.branchID
	staff := domain.User{
		UserID:   suite.userID,
		Role:     domain.RoleStaff,
		BranchID: &otherBranch,
	}

	suite.mockRepo.On("FindItemByID", ctx, item.ItemID).Return(item, nil).Once()

	_, err := suite.service.GetItemByID(ctx, item.ItemID, staff)

	suite.ErrorIs(err, services.ErrCrossBranchForbidden)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func TestNewInventoryServiceImplementsFacade(t *testing.T) {
	svc := services.NewInventoryService(new(MockInventoryRepository))
	assert.NotNil(t, svc)
}
