package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/core/services"
	"github.com/wocademy/utility-backend/internal/dto"
)

// --- Mock CreditTransactionRepository ---
type MockCreditTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.CreditTransactionRepository = (*MockCreditTransactionRepository)(nil)

func (m *MockCreditTransactionRepository) SaveTransaction(ctx context.Context, txn domain.CreditTransaction, transferID string) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, txn, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}

func (m *MockCreditTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}

func (m *MockCreditTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.CreditTransactionFilter, limit int, nextToken *string) ([]domain.CreditTransaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.CreditTransaction), returnedToken, args.Error(2)
}

func (m *MockCreditTransactionRepository) ListTransactionsByUserID(ctx context.Context, userID string) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}

func (m *MockCreditTransactionRepository) ListTransactionsByModule(ctx context.Context, module domain.CreditModule) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}

func (m *MockCreditTransactionRepository) GetTransactionStats(ctx context.Context) (*domain.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionStats), args.Error(1)
}

func (m *MockCreditTransactionRepository) SumModuleCreditsOfCorporate(ctx context.Context, userID string, module *domain.CreditModule) (*domain.CorporateCreditTotal, error) {
	args := m.Called(ctx, userID, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CorporateCreditTotal), args.Error(1)
}

func (m *MockCreditTransactionRepository) SumCreditsByTransferredByIDs(ctx context.Context, transferredByIDs []string) ([]domain.CorporateCreditTotal, error) {
	args := m.Called(ctx, transferredByIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CorporateCreditTotal), args.Error(1)
}

func (m *MockCreditTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.CreditTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockCreditTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock CreditTransferRepository ---
type MockCreditTransferRepository struct {
	mock.Mock
}

var _ portsrepo.CreditTransferRepository = (*MockCreditTransferRepository)(nil)

func (m *MockCreditTransferRepository) SaveTransfer(ctx context.Context, transfer domain.CreditTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockCreditTransferRepository) UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus, failureReason *string) error {
	args := m.Called(ctx, transferID, status, failureReason)
	return args.Error(0)
}

func (m *MockCreditTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.CreditTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransfer), args.Error(1)
}

func (m *MockCreditTransferRepository) ListTransfersByStatus(ctx context.Context, status domain.TransferStatus) ([]domain.CreditTransfer, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransfer), args.Error(1)
}

func (m *MockCreditTransferRepository) MarkStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*portssvc.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.User), args.Error(1)
}

func (m *MockUserService) GetCreditBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUserService) AssignCredit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUserService) DeductCredit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type CreditTransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockCreditTransactionRepository
	mockTransferRepo *MockCreditTransferRepository
	mockUserSvc      *MockUserService
	service          portssvc.CreditTransactionSvcFacade
	ctx              context.Context
	payerID          string
	recipientID      string
	amount           decimal.Decimal
}

func (suite *CreditTransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockCreditTransactionRepository)
	suite.mockTransferRepo = new(MockCreditTransferRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewCreditTransactionService(
		suite.mockTxnRepo,
		suite.mockTransferRepo,
		suite.mockUserSvc,
		15*time.Minute,
	)
	suite.ctx = context.Background()
	suite.payerID = "corp-payer-1"
	suite.recipientID = "corp-recipient-1"
	suite.amount = decimal.NewFromInt(50)
}

func (suite *CreditTransactionServiceTestSuite) pendingIntent(direction domain.TransferDirection) interface{} {
	return mock.MatchedBy(func(t domain.CreditTransfer) bool {
		return t.Direction == direction && t.Status == domain.TransferPending && t.Amount.Equal(suite.amount)
	})
}

// --- Assign ---

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_Success() {
	recipientBalance := decimal.RequireFromString("150.00")
	payerBalance := decimal.RequireFromString("30.50")

	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionAssign)).Return(nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(recipientBalance, nil).Once()
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.payerID, suite.amount).Return(payerBalance, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.CreditTransaction) bool {
		return txn.BalanceTransferredTo.Equal(recipientBalance) &&
			txn.BalanceTransferredBy.Equal(payerBalance) &&
			txn.Amount.Equal(suite.amount) &&
			txn.Module == domain.ModuleWocademy
	}), mock.AnythingOfType("string")).Return(&domain.CreditTransaction{ID: 1}, nil).Once()

	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		TransferredByID: &suite.payerID,
		Amount:          suite.amount,
	})

	suite.Require().NoError(err)
	suite.Equal(201, resp.StatusCode)
	suite.Equal("Assigned credit to corporate Created", resp.Message)
	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_NoPayer_ZeroBalanceAndNoDeductCall() {
	recipientBalance := decimal.RequireFromString("75.00")

	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionAssign)).Return(nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(recipientBalance, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.CreditTransaction) bool {
		return txn.BalanceTransferredBy.IsZero() && txn.TransferredByID == nil
	}), mock.AnythingOfType("string")).Return(&domain.CreditTransaction{ID: 2}, nil).Once()

	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		Amount:          suite.amount,
	})

	suite.Require().NoError(err)
	suite.Equal(201, resp.StatusCode)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "DeductCredit", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_NonPositiveAmountRejected() {
	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		Amount:          decimal.Zero,
	})

	suite.Nil(resp)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "AssignCredit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_SamePayerAndRecipientRejected() {
	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		TransferredByID: &suite.recipientID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_FirstCallFails_IntentFailed() {
	upstreamErr := apperrors.NewAppError(503, apperrors.CodeUpstreamUnavailable, "user service unavailable", apperrors.ErrUpstream)

	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionAssign)).Return(nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(decimal.Zero, upstreamErr).Once()
	suite.mockTransferRepo.On("UpdateTransferStatus", suite.ctx, mock.AnythingOfType("string"), domain.TransferFailed, mock.Anything).Return(nil).Once()

	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		TransferredByID: &suite.payerID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "DeductCredit", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_SecondCallFails_Compensated() {
	recipientBalance := decimal.RequireFromString("150.00")
	deductErr := errors.New("payer deduct exploded")

	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionAssign)).Return(nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(recipientBalance, nil).Once()
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.payerID, suite.amount).Return(decimal.Zero, deductErr).Once()
	// Reversal of the recipient credit.
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.recipientID, suite.amount).Return(decimal.RequireFromString("100.00"), nil).Once()
	suite.mockTransferRepo.On("UpdateTransferStatus", suite.ctx, mock.AnythingOfType("string"), domain.TransferCompensated, mock.Anything).Return(nil).Once()

	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		TransferredByID: &suite.payerID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.Require().Error(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestAssignCredit_ReversalFails_NeedsReconciliation() {
	recipientBalance := decimal.RequireFromString("150.00")

	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionAssign)).Return(nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(recipientBalance, nil).Once()
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.payerID, suite.amount).Return(decimal.Zero, errors.New("deduct failed")).Once()
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.recipientID, suite.amount).Return(decimal.Zero, errors.New("reversal failed too")).Once()
	suite.mockTransferRepo.On("UpdateTransferStatus", suite.ctx, mock.AnythingOfType("string"), domain.TransferNeedsReconciliation, mock.Anything).Return(nil).Once()

	resp, err := suite.service.AssignCreditToCorporate(suite.ctx, dto.AssignCreditRequest{
		TransferredToID: suite.recipientID,
		TransferredByID: &suite.payerID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.Require().Error(err)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

// --- Deduct ---

func (suite *CreditTransactionServiceTestSuite) TestDeductCredit_Success() {
	payerBalance := decimal.RequireFromString("45.00")
	recipientBalance := decimal.RequireFromString("95.00")

	suite.mockUserSvc.On("GetUserByID", suite.ctx, suite.payerID).Return(&portssvc.User{ID: suite.payerID}, nil).Once()
	suite.mockUserSvc.On("GetCreditBalance", suite.ctx, suite.payerID).Return(decimal.RequireFromString("95.00"), nil).Once()
	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionDeduct)).Return(nil).Once()
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.payerID, suite.amount).Return(payerBalance, nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(recipientBalance, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.CreditTransaction) bool {
		return txn.BalanceTransferredBy.Equal(payerBalance) && txn.BalanceTransferredTo.Equal(recipientBalance)
	}), mock.AnythingOfType("string")).Return(&domain.CreditTransaction{ID: 3}, nil).Once()

	resp, err := suite.service.DeductCreditFromCorporate(suite.ctx, dto.DeductCreditRequest{
		TransferredByID: suite.payerID,
		TransferredToID: &suite.recipientID,
		Amount:          suite.amount,
	})

	suite.Require().NoError(err)
	suite.Equal(201, resp.StatusCode)
	suite.Equal("Deducted credit from corporate Created", resp.Message)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestDeductCredit_InsufficientBalance_NoDeductCall() {
	suite.mockUserSvc.On("GetUserByID", suite.ctx, suite.payerID).Return(&portssvc.User{ID: suite.payerID}, nil).Once()
	suite.mockUserSvc.On("GetCreditBalance", suite.ctx, suite.payerID).Return(decimal.RequireFromString("10.00"), nil).Once()

	resp, err := suite.service.DeductCreditFromCorporate(suite.ctx, dto.DeductCreditRequest{
		TransferredByID: suite.payerID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrInsufficientCredits)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "DeductCredit", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CreditTransactionServiceTestSuite) TestDeductCredit_PayerNotFound() {
	notFoundErr := apperrors.NewAppError(404, apperrors.CodeUserNotFound, "user not found", apperrors.ErrNotFound)
	suite.mockUserSvc.On("GetUserByID", suite.ctx, suite.payerID).Return(nil, notFoundErr).Once()

	resp, err := suite.service.DeductCreditFromCorporate(suite.ctx, dto.DeductCreditRequest{
		TransferredByID: suite.payerID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetCreditBalance", mock.Anything, mock.Anything)
}

func (suite *CreditTransactionServiceTestSuite) TestDeductCredit_SecondCallFails_PayerRecredited() {
	payerBalance := decimal.RequireFromString("45.00")

	suite.mockUserSvc.On("GetUserByID", suite.ctx, suite.payerID).Return(&portssvc.User{ID: suite.payerID}, nil).Once()
	suite.mockUserSvc.On("GetCreditBalance", suite.ctx, suite.payerID).Return(decimal.RequireFromString("95.00"), nil).Once()
	suite.mockTransferRepo.On("SaveTransfer", suite.ctx, suite.pendingIntent(domain.DirectionDeduct)).Return(nil).Once()
	suite.mockUserSvc.On("DeductCredit", suite.ctx, suite.payerID, suite.amount).Return(payerBalance, nil).Once()
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.recipientID, suite.amount).Return(decimal.Zero, errors.New("recipient credit failed")).Once()
	// Reversal credits the payer back.
	suite.mockUserSvc.On("AssignCredit", suite.ctx, suite.payerID, suite.amount).Return(decimal.RequireFromString("95.00"), nil).Once()
	suite.mockTransferRepo.On("UpdateTransferStatus", suite.ctx, mock.AnythingOfType("string"), domain.TransferCompensated, mock.Anything).Return(nil).Once()

	resp, err := suite.service.DeductCreditFromCorporate(suite.ctx, dto.DeductCreditRequest{
		TransferredByID: suite.payerID,
		TransferredToID: &suite.recipientID,
		Amount:          suite.amount,
	})

	suite.Nil(resp)
	suite.Require().Error(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

// --- Reads and admin ---

func (suite *CreditTransactionServiceTestSuite) TestListTransactions_InvalidModuleFilter() {
	badModule := "BOGUS"
	resp, err := suite.service.ListTransactions(suite.ctx, dto.ListCreditTransactionsParams{Module: &badModule})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CreditTransactionServiceTestSuite) TestListTransactions_DefaultLimit() {
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, portsrepo.CreditTransactionFilter{}, 10, (*string)(nil)).
		Return([]domain.CreditTransaction{}, nil, nil).Once()

	resp, err := suite.service.ListTransactions(suite.ctx, dto.ListCreditTransactionsParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.Nil(resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestGetTransactionByID_ReturnsStoredRowUnchanged() {
	stored := &domain.CreditTransaction{
		ID:                   12,
		TransferredByID:      &suite.payerID,
		TransferredToID:      &suite.recipientID,
		Module:               domain.ModuleMentorship,
		Amount:               suite.amount,
		BalanceTransferredBy: decimal.RequireFromString("150.00"),
		BalanceTransferredTo: decimal.RequireFromString("200.00"),
		Remarks:              "quarterly top-up",
	}
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, int64(12)).Return(stored, nil).Once()

	txn, err := suite.service.GetTransactionByID(suite.ctx, 12)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(stored.Amount))
	suite.Equal(domain.ModuleMentorship, txn.Module)
	suite.True(txn.BalanceTransferredBy.Equal(stored.BalanceTransferredBy))
	suite.True(txn.BalanceTransferredTo.Equal(stored.BalanceTransferredTo))
	suite.Equal(&suite.payerID, txn.TransferredByID)
	suite.Equal(&suite.recipientID, txn.TransferredToID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestUpdateTransaction_MergesPatchableFieldsOnly() {
	existing := &domain.CreditTransaction{
		ID:                   7,
		Module:               domain.ModuleWocademy,
		Amount:               suite.amount,
		BalanceTransferredBy: decimal.RequireFromString("10.00"),
		BalanceTransferredTo: decimal.RequireFromString("60.00"),
		Remarks:              "before",
	}
	newRemarks := "after"
	newModule := "MENTORSHIP"

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, int64(7)).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(txn domain.CreditTransaction) bool {
		return txn.Remarks == "after" &&
			txn.Module == domain.ModuleMentorship &&
			txn.BalanceTransferredTo.Equal(decimal.RequireFromString("60.00"))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, 7, dto.UpdateCreditTransactionRequest{
		Remarks: &newRemarks,
		Module:  &newModule,
	})

	suite.Require().NoError(err)
	suite.Equal("after", updated.Remarks)
	suite.Equal(domain.ModuleMentorship, updated.Module)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CreditTransactionServiceTestSuite) TestListTransfers_RequiresValidStatus() {
	_, err := suite.service.ListTransfers(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListTransfers(suite.ctx, "NOT_A_STATUS")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CreditTransactionServiceTestSuite) TestReconcileStaleTransfers() {
	suite.mockTransferRepo.On("MarkStalePending", suite.ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	count, err := suite.service.ReconcileStaleTransfers(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func TestCreditTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditTransactionServiceTestSuite))
}
