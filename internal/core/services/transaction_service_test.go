package services_test

import (
	"context"
	"errors"
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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

func (m *MockTransactionRepository) CreateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionDeleted(ctx context.Context, transactionID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, transactionID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock InventoryPostingSvc ---
type MockInventoryPostingSvc struct {
	mock.Mock
}

var _ portssvc.InventoryPostingSvc = (*MockInventoryPostingSvc)(nil)

func (m *MockInventoryPostingSvc) PurchaseInTx(ctx context.Context, tx pgx.Tx, p portssvc.InventoryPurchase) (string, error) {
	args := m.Called(ctx, tx, p)
	return args.String(0), args.Error(1)
}

func (m *MockInventoryPostingSvc) ConsumeInTx(ctx context.Context, tx pgx.Tx, c portssvc.InventoryConsume) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

// --- Mock DebtIssuingSvc ---
type MockDebtIssuingSvc struct {
	mock.Mock
}

var _ portssvc.DebtIssuingSvc = (*MockDebtIssuingSvc)(nil)

func (m *MockDebtIssuingSvc) IssueForRemainderInTx(ctx context.Context, tx pgx.Tx, issue portssvc.DebtIssue) (string, error) {
	args := m.Called(ctx, tx, issue)
	return args.String(0), args.Error(1)
}

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

var _ portssvc.AuditRecorder = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) RecordCreate(ctx context.Context, actorID, entityType, entityID string, after any) error {
	args := m.Called(ctx, actorID, entityType, entityID, after)
	return args.Error(0)
}

func (m *MockAuditRecorder) RecordUpdate(ctx context.Context, actorID, entityType, entityID string, before, after any) error {
	args := m.Called(ctx, actorID, entityType, entityID, before, after)
	return args.Error(0)
}

func (m *MockAuditRecorder) RecordDelete(ctx context.Context, actorID, entityType, entityID string, before any) error {
	args := m.Called(ctx, actorID, entityType, entityID, before)
	return args.Error(0)
}

// --- Mock TransactionNotifier ---
type MockTransactionNotifier struct {
	mock.Mock
}

var _ portssvc.TransactionNotifier = (*MockTransactionNotifier)(nil)

func (m *MockTransactionNotifier) NotifyNewTransaction(event portssvc.TransactionEvent) {
	m.Called(event)
}

func (m *MockTransactionNotifier) Close() {
	m.Called()
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockTransactionRepository
	mockInvSvc   *MockInventoryPostingSvc
	mockDebtSvc  *MockDebtIssuingSvc
	mockAudit    *MockAuditRecorder
	mockNotifier *MockTransactionNotifier
	service      portssvc.TransactionSvcFacade
	branchID     string
	staff        domain.User
	admin        domain.User
	now          time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockInvSvc = new(MockInventoryPostingSvc)
	suite.mockDebtSvc = new(MockDebtIssuingSvc)
	suite.mockAudit = new(MockAuditRecorder)
	suite.mockNotifier = new(MockTransactionNotifier)
	suite.service = services.NewTransactionService(
		suite.mockRepo,
		suite.mockInvSvc,
		suite.mockDebtSvc,
		suite.mockAudit,
		suite.mockNotifier,
	)

	suite.branchID = uuid.NewString()
	suite.staff = domain.User{
		UserID:   uuid.NewString(),
		Role:     domain.RoleStaff,
		BranchID: &suite.branchID,
	}
	suite.admin = domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.now = time.Now()
}

func (suite *TransactionServiceTestSuite) hydrated(transactionID string, debtID *string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   transactionID,
		BranchID:        suite.branchID,
		Kind:            domain.Expense,
		TotalAmount:     decimal.NewFromInt(1000),
		PaidAmount:      decimal.NewFromInt(600),
		Category:        "supplies",
		TransactionDate: suite.now,
		DebtID:          debtID,
	}
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_ExpenseWithDebtForRemainder() {
	ctx := context.Background()
	debtID := uuid.NewString()
	paid := decimal.NewFromInt(600)

	req := dto.PostTransactionRequest{
		Kind:                   domain.Expense,
		TotalAmount:            decimal.NewFromInt(1000),
		PaidAmount:             &paid,
		Category:               "supplies",
		Date:                   suite.now,
		CreateDebtForRemainder: true,
		CreditorName:           strPtr("Supplier A"),
	}

	suite.mockRepo.On("WithinTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockDebtSvc.On("IssueForRemainderInTx", ctx, nil, mock.MatchedBy(func(issue portssvc.DebtIssue) bool {
		return issue.BranchID == suite.branchID &&
			issue.CreditorName == "Supplier A" &&
			issue.Amount.Equal(decimal.NewFromInt(400))
	})).Return(debtID, nil).Once()
	suite.mockRepo.On("CreateTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.BranchID == suite.branchID &&
			txn.Kind == domain.Expense &&
			txn.TotalAmount.Equal(decimal.NewFromInt(1000)) &&
			txn.PaidAmount.Equal(decimal.NewFromInt(600)) &&
			txn.DebtID != nil && *txn.DebtID == debtID
	})).Return(nil).Once()
	suite.mockRepo.On("FindTransactionByIDInTx", ctx, nil, mock.AnythingOfType("string")).
		Return(suite.hydrated(uuid.NewString(), &debtID), nil).Once()
	suite.mockAudit.On("RecordCreate", ctx, suite.staff.UserID, "transaction", mock.AnythingOfType("string"), mock.Anything).
		Return(nil).Once()
	suite.mockNotifier.On("NotifyNewTransaction", mock.MatchedBy(func(event portssvc.TransactionEvent) bool {
		return event.BranchID == suite.branchID && event.Kind == domain.Expense
	})).Once()

	posted, err := suite.service.PostTransaction(ctx, req, suite.staff)

	suite.NoError(err)
	suite.NotNil(posted)
	suite.NotNil(posted.DebtID)
	suite.Equal(debtID, *posted.DebtID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockDebtSvc.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockInvSvc.AssertNotCalled(suite.T(), "PurchaseInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_PurchaseLineLinksItem() {
	ctx := context.Background()
	itemID := uuid.NewString()
	totalCost := decimal.NewFromInt(500)
	method := domain.PaymentCash

	req := dto.PostTransactionRequest{
		Kind:          domain.Expense,
		TotalAmount:   decimal.NewFromInt(500),
		Category:      "stock",
		PaymentMethod: &method,
		Date:          suite.now,
		InventoryLine: &dto.InventoryLineItem{
			Operation: domain.OpPurchase,
			Name:      "Coffee Beans",
			Unit:      "kg",
			Quantity:  decimal.NewFromInt(10),
			TotalCost: &totalCost,
		},
	}

	suite.mockRepo.On("WithinTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockInvSvc.On("PurchaseInTx", ctx, nil, mock.MatchedBy(func(p portssvc.InventoryPurchase) bool {
		return p.BranchID == suite.branchID &&
			p.Name == "Coffee Beans" &&
			p.Quantity.Equal(decimal.NewFromInt(10)) &&
			p.TotalCost.Equal(totalCost)
	})).Return(itemID, nil).Once()
	suite.mockRepo.On("CreateTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.InventoryItemID != nil && *txn.InventoryItemID == itemID && txn.DebtID == nil
	})).Return(nil).Once()
	suite.mockRepo.On("FindTransactionByIDInTx", ctx, nil, mock.AnythingOfType("string")).
		Return(&domain.Transaction{
			TransactionID:   uuid.NewString(),
			BranchID:        suite.branchID,
			Kind:            domain.Expense,
			TotalAmount:     decimal.NewFromInt(500),
			PaidAmount:      decimal.NewFromInt(500),
			InventoryItemID: &itemID,
		}, nil).Once()
	suite.mockAudit.On("RecordCreate", ctx, suite.staff.UserID, "transaction", mock.AnythingOfType("string"), mock.Anything).
		Return(nil).Once()
	suite.mockNotifier.On("NotifyNewTransaction", mock.Anything).Once()

	posted, err := suite.service.PostTransaction(ctx, req, suite.staff)

	suite.NoError(err)
	suite.NotNil(posted.InventoryItemID)
	suite.Equal(itemID, *posted.InventoryItemID)
	suite.mockInvSvc.AssertExpectations(suite.T())
	suite.mockDebtSvc.AssertNotCalled(suite.T(), "IssueForRemainderInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_FullyPaidWithDebtFlagSkipsDebt() {
	ctx := context.Background()

	// paidAmount omitted, so paid defaults to total and no remainder is left.
	// The posting must succeed with no debt issued.
	req := dto.PostTransactionRequest{
		Kind:                   domain.Expense,
		TotalAmount:            decimal.NewFromInt(1000),
		Category:               "supplies",
		Date:                   suite.now,
		CreateDebtForRemainder: true,
		CreditorName:           strPtr("Supplier A"),
	}

	suite.mockRepo.On("WithinTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("CreateTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.PaidAmount.Equal(decimal.NewFromInt(1000)) && txn.DebtID == nil
	})).Return(nil).Once()
	suite.mockRepo.On("FindTransactionByIDInTx", ctx, nil, mock.AnythingOfType("string")).
		Return(&domain.Transaction{
			TransactionID: uuid.NewString(),
			BranchID:      suite.branchID,
			Kind:          domain.Expense,
			TotalAmount:   decimal.NewFromInt(1000),
			PaidAmount:    decimal.NewFromInt(1000),
		}, nil).Once()
	suite.mockAudit.On("RecordCreate", ctx, suite.staff.UserID, "transaction", mock.AnythingOfType("string"), mock.Anything).
		Return(nil).Once()
	suite.mockNotifier.On("NotifyNewTransaction", mock.Anything).Once()

	posted, err := suite.service.PostTransaction(ctx, req, suite.staff)

	suite.NoError(err)
	suite.Nil(posted.DebtID)
	suite.mockDebtSvc.AssertNotCalled(suite.T(), "IssueForRemainderInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_AdminWithoutBranchRejected() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Kind:        domain.Expense,
		TotalAmount: decimal.NewFromInt(100),
		Category:    "misc",
		Date:        suite.now,
	}

	_, err := suite.service.PostTransaction(ctx, req, suite.admin)

	suite.ErrorIs(err, services.ErrBranchRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "WithinTx", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_IncomeRequiresPaymentMethod() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Kind:        domain.Income,
		TotalAmount: decimal.NewFromInt(100),
		Category:    "sales",
		Date:        suite.now,
	}

	_, err := suite.service.PostTransaction(ctx, req, suite.staff)

	var validationErrs dto.ValidationErrors
	suite.ErrorAs(err, &validationErrs)
	suite.mockRepo.AssertNotCalled(suite.T(), "WithinTx", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_InventoryFailureAbortsPosting() {
	ctx := context.Background()
	itemID := uuid.NewString()
	req := dto.PostTransactionRequest{
		Kind:        domain.Expense,
		TotalAmount: decimal.NewFromInt(100),
		Category:    "usage",
		Date:        suite.now,
		InventoryLine: &dto.InventoryLineItem{
			Operation: domain.OpConsumption,
			ItemID:    &itemID,
			Quantity:  decimal.NewFromInt(50),
		},
	}

	suite.mockRepo.On("WithinTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockInvSvc.On("ConsumeInTx", ctx, nil, mock.Anything).
		Return(services.ErrInsufficientQuantity).Once()

	_, err := suite.service.PostTransaction(ctx, req, suite.staff)

	suite.ErrorIs(err, services.ErrInsufficientQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "RecordCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyNewTransaction", mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_AuditFailureDoesNotFailPosting() {
	ctx := context.Background()
	method := domain.PaymentCash
	req := dto.PostTransactionRequest{
		Kind:          domain.Income,
		TotalAmount:   decimal.NewFromInt(100),
		Category:      "sales",
		PaymentMethod: &method,
		Date:          suite.now,
	}

	suite.mockRepo.On("WithinTx", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("CreateTransactionInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("FindTransactionByIDInTx", ctx, nil, mock.AnythingOfType("string")).
		Return(&domain.Transaction{
			TransactionID: uuid.NewString(),
			BranchID:      suite.branchID,
			Kind:          domain.Income,
			TotalAmount:   decimal.NewFromInt(100),
			PaidAmount:    decimal.NewFromInt(100),
		}, nil).Once()
	suite.mockAudit.On("RecordCreate", ctx, suite.staff.UserID, "transaction", mock.AnythingOfType("string"), mock.Anything).
		Return(errors.New("audit store down")).Once()
	suite.mockNotifier.On("NotifyNewTransaction", mock.Anything).Once()

	posted, err := suite.service.PostTransaction(ctx, req, suite.staff)

	suite.NoError(err)
	suite.NotNil(posted)
	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_SoftDeletedHidden() {
	ctx := context.Background()
	deletedAt := suite.now
	txn := suite.hydrated(uuid.NewString(), nil)
	txn.DeletedAt = &deletedAt

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, txn.TransactionID, suite.staff)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_CrossBranchRejected() {
	ctx := context.Background()
	txn := suite.hydrated(uuid.NewString(), nil)
	txn.BranchID = uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, txn.TransactionID, suite.staff)

	suite.ErrorIs(err, services.ErrCrossBranchForbidden)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RejectsPaidExceedingTotal() {
	ctx := context.Background()
	txn := suite.hydrated(uuid.NewString(), nil)
	paid := decimal.NewFromInt(2000)

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		PaidAmount: &paid,
	}, suite.staff)

	var validationErrs dto.ValidationErrors
	suite.ErrorAs(err, &validationErrs)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RejectsZeroTotal() {
	ctx := context.Background()
	txn := suite.hydrated(uuid.NewString(), nil)
	zero := decimal.Zero

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		TotalAmount: &zero,
		PaidAmount:  &zero,
	}, suite.staff)

	var validationErrs dto.ValidationErrors
	suite.ErrorAs(err, &validationErrs)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ChangesPaymentMethod() {
	ctx := context.Background()
	txn := suite.hydrated(uuid.NewString(), nil)
	method := "bank wire"

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(updated domain.Transaction) bool {
		return updated.PaymentMethod == "bank wire"
	})).Return(nil).Once()
	suite.mockAudit.On("RecordUpdate", ctx, suite.staff.UserID, "transaction", txn.TransactionID, mock.Anything, mock.Anything).
		Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		PaymentMethod: &method,
	}, suite.staff)

	suite.NoError(err)
	suite.Equal("bank wire", updated.PaymentMethod)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_IncomePaymentMethodConstrained() {
	ctx := context.Background()
	txn := suite.hydrated(uuid.NewString(), nil)
	txn.Kind = domain.Income
	txn.PaidAmount = txn.TotalAmount
	method := "bank wire"

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		PaymentMethod: &method,
	}, suite.staff)

	var validationErrs dto.ValidationErrors
	suite.ErrorAs(err, &validationErrs)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_SoftDeletesAndAudits() {
	ctx := context.Background()
	txn := suite.hydrated(uuid.NewString(), nil)

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockRepo.On("MarkTransactionDeleted", ctx, txn.TransactionID, suite.staff.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockAudit.On("RecordDelete", ctx, suite.staff.UserID, "transaction", txn.TransactionID, mock.Anything).
		Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txn.TransactionID, suite.staff)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
