package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, acc *domain.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) ListAdmins(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepo) Debit(ctx context.Context, id, amount int32) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}
func (m *MockAccountRepo) Credit(ctx context.Context, id, amount int32) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}
func (m *MockAccountRepo) Anonymize(ctx context.Context, id int32, name, email string) error {
	args := m.Called(ctx, id, name, email)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}

// MockHelpRequestRepo
type MockHelpRequestRepo struct {
	mock.Mock
}

func (m *MockHelpRequestRepo) Create(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockHelpRequestRepo) GetByID(ctx context.Context, id int32) (*domain.HelpRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}
func (m *MockHelpRequestRepo) Update(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockHelpRequestRepo) ListByStatus(ctx context.Context, status domain.HelpRequestStatus) ([]domain.HelpRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.HelpRequest), args.Error(1)
}
func (m *MockHelpRequestRepo) CreateVolunteering(ctx context.Context, v *domain.Volunteering) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockHelpRequestRepo) GetVolunteering(ctx context.Context, requestID, userID int32) (*domain.Volunteering, error) {
	args := m.Called(ctx, requestID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Volunteering), args.Error(1)
}
func (m *MockHelpRequestRepo) UpdateVolunteering(ctx context.Context, v *domain.Volunteering) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockHelpRequestRepo) DeleteVolunteering(ctx context.Context, requestID, userID int32) error {
	args := m.Called(ctx, requestID, userID)
	return args.Error(0)
}
func (m *MockHelpRequestRepo) CountVolunteers(ctx context.Context, requestID int32, status domain.VolunteeringStatus) (int32, error) {
	args := m.Called(ctx, requestID, status)
	return args.Get(0).(int32), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLoanRepo) AddParty(ctx context.Context, party *domain.LoanParty) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}
func (m *MockLoanRepo) ListParties(ctx context.Context, loanID int32) ([]domain.LoanParty, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.LoanParty), args.Error(1)
}
func (m *MockLoanRepo) HasOpenLoan(ctx context.Context, borrowerID, itemID int32) (bool, error) {
	args := m.Called(ctx, borrowerID, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoanRepo) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Loan), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.LoanItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.LoanItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanItem), args.Error(1)
}
func (m *MockItemRepo) SetAvailability(ctx context.Context, id int32, availability domain.ItemAvailability) error {
	args := m.Called(ctx, id, availability)
	return args.Error(0)
}

// MockMarketRepo
type MockMarketRepo struct {
	mock.Mock
}

func (m *MockMarketRepo) CreateShop(ctx context.Context, shop *domain.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}
func (m *MockMarketRepo) GetShop(ctx context.Context, id int32) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}
func (m *MockMarketRepo) GetActiveShop(ctx context.Context) (*domain.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}
func (m *MockMarketRepo) SetShopStatus(ctx context.Context, id int32, status domain.ShopStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockMarketRepo) DeactivateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMarketRepo) CreateArticle(ctx context.Context, art *domain.Article) error {
	args := m.Called(ctx, art)
	return args.Error(0)
}
func (m *MockMarketRepo) GetArticle(ctx context.Context, id int32) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}
func (m *MockMarketRepo) DecrementStock(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMarketRepo) CreateSale(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// stubTx bundles the mocks behind the repository.Tx interface.
type stubTx struct {
	accounts     *MockAccountRepo
	ledger       *MockLedgerRepo
	helpRequests *MockHelpRequestRepo
	loans        *MockLoanRepo
	items        *MockItemRepo
	market       *MockMarketRepo
}

func newStubTx() *stubTx {
	return &stubTx{
		accounts:     new(MockAccountRepo),
		ledger:       new(MockLedgerRepo),
		helpRequests: new(MockHelpRequestRepo),
		loans:        new(MockLoanRepo),
		items:        new(MockItemRepo),
		market:       new(MockMarketRepo),
	}
}

func (t *stubTx) Accounts() repository.AccountRepository         { return t.accounts }
func (t *stubTx) Ledger() repository.LedgerRepository            { return t.ledger }
func (t *stubTx) HelpRequests() repository.HelpRequestRepository { return t.helpRequests }
func (t *stubTx) Loans() repository.LoanRepository               { return t.loans }
func (t *stubTx) Items() repository.ItemRepository               { return t.items }
func (t *stubTx) Market() repository.MarketRepository            { return t.market }

// stubRunner runs the atomic unit against the stub transaction without a
// database. Rollback is the callers returning the error untouched.
type stubRunner struct {
	tx *stubTx
}

func (r *stubRunner) RunAtomic(ctx context.Context, fn func(tx repository.Tx) error) error {
	return fn(r.tx)
}
