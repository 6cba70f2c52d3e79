package repository

import (
	"context"

	"communicare-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, acc *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	ListAdmins(ctx context.Context) ([]domain.Account, error)
	// Debit subtracts amount from the account balance. It fails with
	// domain.ErrInsufficientBalance when the balance is lower than amount
	// at commit time, and never leaves a negative balance.
	Debit(ctx context.Context, id, amount int32) error
	Credit(ctx context.Context, id, amount int32) error
	// Anonymize overwrites the personal fields and deactivates the
	// account. The row and its balance are preserved.
	Anonymize(ctx context.Context, id int32, name, email string) error
}

// LedgerRepository is append-only: entries are never updated or deleted.
type LedgerRepository interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type HelpRequestRepository interface {
	Create(ctx context.Context, req *domain.HelpRequest) error
	GetByID(ctx context.Context, id int32) (*domain.HelpRequest, error)
	Update(ctx context.Context, req *domain.HelpRequest) error
	ListByStatus(ctx context.Context, status domain.HelpRequestStatus) ([]domain.HelpRequest, error)

	CreateVolunteering(ctx context.Context, v *domain.Volunteering) error
	GetVolunteering(ctx context.Context, requestID, userID int32) (*domain.Volunteering, error)
	UpdateVolunteering(ctx context.Context, v *domain.Volunteering) error
	DeleteVolunteering(ctx context.Context, requestID, userID int32) error
	CountVolunteers(ctx context.Context, requestID int32, status domain.VolunteeringStatus) (int32, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	// Delete removes the loan and its party rows. Only valid for loans
	// that were never validated.
	Delete(ctx context.Context, id int32) error
	AddParty(ctx context.Context, party *domain.LoanParty) error
	ListParties(ctx context.Context, loanID int32) ([]domain.LoanParty, error)
	HasOpenLoan(ctx context.Context, borrowerID, itemID int32) (bool, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.LoanItem) error
	GetByID(ctx context.Context, id int32) (*domain.LoanItem, error)
	SetAvailability(ctx context.Context, id int32, availability domain.ItemAvailability) error
}

type MarketRepository interface {
	CreateShop(ctx context.Context, shop *domain.Shop) error
	GetShop(ctx context.Context, id int32) (*domain.Shop, error)
	GetActiveShop(ctx context.Context) (*domain.Shop, error)
	SetShopStatus(ctx context.Context, id int32, status domain.ShopStatus) error
	// DeactivateAll flips every active shop to inactive. Used together
	// with SetShopStatus inside one atomic unit to keep at most one shop
	// active platform-wide.
	DeactivateAll(ctx context.Context) error

	CreateArticle(ctx context.Context, art *domain.Article) error
	GetArticle(ctx context.Context, id int32) (*domain.Article, error)
	// DecrementStock takes one unit off the article's stock. It fails
	// with domain.ErrArticleUnavailable when no stock is left.
	DecrementStock(ctx context.Context, id int32) error

	CreateSale(ctx context.Context, sale *domain.Sale) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// Tx bundles the repositories bound to one database transaction. Every
// operation that touches both a balance and domain state runs against a Tx
// obtained from TxRunner so the whole unit commits or rolls back together.
type Tx interface {
	Accounts() AccountRepository
	Ledger() LedgerRepository
	HelpRequests() HelpRequestRepository
	Loans() LoanRepository
	Items() ItemRepository
	Market() MarketRepository
}

type TxRunner interface {
	// RunAtomic executes fn inside a single database transaction. If fn
	// returns an error the transaction is rolled back and no mutation is
	// observable.
	RunAtomic(ctx context.Context, fn func(tx Tx) error) error
}
