package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"communicare-backend/internal/domain"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, acc *domain.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}
func (m *mockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *mockAccountRepo) ListAdmins(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *mockAccountRepo) Debit(ctx context.Context, id, amount int32) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}
func (m *mockAccountRepo) Credit(ctx context.Context, id, amount int32) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}
func (m *mockAccountRepo) Anonymize(ctx context.Context, id int32, name, email string) error {
	args := m.Called(ctx, id, name, email)
	return args.Error(0)
}

type mockLoanRepo struct {
	mock.Mock
}

func (m *mockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *mockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *mockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *mockLoanRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockLoanRepo) AddParty(ctx context.Context, party *domain.LoanParty) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}
func (m *mockLoanRepo) ListParties(ctx context.Context, loanID int32) ([]domain.LoanParty, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.LoanParty), args.Error(1)
}
func (m *mockLoanRepo) HasOpenLoan(ctx context.Context, borrowerID, itemID int32) (bool, error) {
	args := m.Called(ctx, borrowerID, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *mockLoanRepo) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Loan), args.Error(1)
}

type mockHelpRequestRepo struct {
	mock.Mock
}

func (m *mockHelpRequestRepo) Create(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *mockHelpRequestRepo) GetByID(ctx context.Context, id int32) (*domain.HelpRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}
func (m *mockHelpRequestRepo) Update(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *mockHelpRequestRepo) ListByStatus(ctx context.Context, status domain.HelpRequestStatus) ([]domain.HelpRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.HelpRequest), args.Error(1)
}
func (m *mockHelpRequestRepo) CreateVolunteering(ctx context.Context, v *domain.Volunteering) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *mockHelpRequestRepo) GetVolunteering(ctx context.Context, requestID, userID int32) (*domain.Volunteering, error) {
	args := m.Called(ctx, requestID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Volunteering), args.Error(1)
}
func (m *mockHelpRequestRepo) UpdateVolunteering(ctx context.Context, v *domain.Volunteering) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *mockHelpRequestRepo) DeleteVolunteering(ctx context.Context, requestID, userID int32) error {
	args := m.Called(ctx, requestID, userID)
	return args.Error(0)
}
func (m *mockHelpRequestRepo) CountVolunteers(ctx context.Context, requestID int32, status domain.VolunteeringStatus) (int32, error) {
	args := m.Called(ctx, requestID, status)
	return args.Get(0).(int32), args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *mockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func newJobRunnerFixture() (*JobRunner, *mockLoanRepo, *mockHelpRequestRepo, *mockAccountRepo, *mockNotificationRepo) {
	loans := new(mockLoanRepo)
	reqs := new(mockHelpRequestRepo)
	accounts := new(mockAccountRepo)
	notes := new(mockNotificationRepo)
	return NewJobRunner(loans, reqs, accounts, notes), loans, reqs, accounts, notes
}

func TestRemindPendingLoanValidations(t *testing.T) {
	jr, loans, _, accounts, notes := newJobRunnerFixture()

	accounts.On("ListAdmins", mock.Anything).
		Return([]domain.Account{{ID: 1, Role: domain.RoleAdmin}, {ID: 2, Role: domain.RoleAdmin}}, nil)
	loans.On("ListByStatus", mock.Anything, domain.LoanStatusRequested).
		Return([]domain.Loan{{ID: 11, BorrowerID: 7, Status: domain.LoanStatusRequested}}, nil)
	loans.On("ListByStatus", mock.Anything, domain.LoanStatusReturnPending).
		Return([]domain.Loan{}, nil)
	notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	jr.RemindPendingLoanValidations()

	// one loan, two admins
	notes.AssertNumberOfCalls(t, "Create", 2)
}

func TestRemindPendingLoanValidations_NoAdmins(t *testing.T) {
	jr, loans, _, accounts, notes := newJobRunnerFixture()

	accounts.On("ListAdmins", mock.Anything).Return([]domain.Account{}, nil)

	jr.RemindPendingLoanValidations()

	loans.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything)
	notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRemindPendingConclusions(t *testing.T) {
	jr, _, reqs, accounts, notes := newJobRunnerFixture()

	accounts.On("ListAdmins", mock.Anything).
		Return([]domain.Account{{ID: 1, Role: domain.RoleAdmin}}, nil)
	reqs.On("ListByStatus", mock.Anything, domain.HelpRequestStatusDone).
		Return([]domain.HelpRequest{{ID: 42, Status: domain.HelpRequestStatusDone}, {ID: 43, Status: domain.HelpRequestStatusDone}}, nil)
	notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	jr.RemindPendingConclusions()

	notes.AssertNumberOfCalls(t, "Create", 2)
}
