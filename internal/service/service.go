package service

import (
	"context"

	"communicare-backend/internal/domain"
)

type AccountService interface {
	Register(ctx context.Context, name, email string, role domain.Role) (*domain.Account, error)
	GetAccount(ctx context.Context, id int32) (*domain.Account, error)
	// Deactivate anonymizes the account but preserves its balance so
	// open settlements can still complete.
	Deactivate(ctx context.Context, actor domain.Actor, id int32) error
}

type LedgerService interface {
	GetBalance(ctx context.Context, userID int32) (int32, error)
	GetEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type HelpRequestService interface {
	Create(ctx context.Context, actor domain.Actor, description string, hours, headcount int32, schedule string) (*domain.HelpRequest, error)
	Approve(ctx context.Context, actor domain.Actor, requestID int32) (*domain.HelpRequest, error)
	Reject(ctx context.Context, actor domain.Actor, requestID int32) (*domain.HelpRequest, error)
	Volunteer(ctx context.Context, actor domain.Actor, requestID int32) error
	AcceptVolunteer(ctx context.Context, actor domain.Actor, requestID, userID int32) (*domain.HelpRequest, error)
	RejectVolunteer(ctx context.Context, actor domain.Actor, requestID, userID int32) error
	MarkDone(ctx context.Context, actor domain.Actor, requestID int32) (*domain.HelpRequest, error)
	// ValidateConclusion settles the reward to the requester and flips
	// the request to CONCLUDED in one atomic unit.
	ValidateConclusion(ctx context.Context, actor domain.Actor, requestID int32) (*domain.LedgerEntry, error)
}

type LoanService interface {
	ListItem(ctx context.Context, actor domain.Actor, name string, commissionRate int32) (*domain.LoanItem, error)
	Acquire(ctx context.Context, actor domain.Actor, itemIDs []int32) (*domain.Loan, error)
	Validate(ctx context.Context, actor domain.Actor, loanID int32) (*domain.Loan, error)
	Reject(ctx context.Context, actor domain.Actor, loanID int32) error
	MarkReturned(ctx context.Context, actor domain.Actor, loanID int32) (*domain.Loan, error)
	// ValidateReturn settles every item of the loan borrower→owner in one
	// atomic unit; if any item's charge cannot be covered, none settle.
	ValidateReturn(ctx context.Context, actor domain.Actor, loanID int32) ([]domain.LedgerEntry, error)
}

type MarketService interface {
	CreateShop(ctx context.Context, actor domain.Actor, name string) (*domain.Shop, error)
	ActivateShop(ctx context.Context, actor domain.Actor, shopID int32) error
	PublishArticle(ctx context.Context, actor domain.Actor, shopID int32, name string, price, stock int32) (*domain.Article, error)
	Purchase(ctx context.Context, actor domain.Actor, articleIDs []int32) (*domain.Sale, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
