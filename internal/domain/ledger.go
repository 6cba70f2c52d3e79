package domain

import "time"

type EntryKind string

const (
	EntryKindHelp EntryKind = "HELP"
	EntryKindLoan EntryKind = "LOAN"
	EntryKindSale EntryKind = "SALE"
)

// LedgerEntry is an immutable record of one settlement. Exactly one of
// Help, Loan or Sale is set, matching Kind. Entries are append-only:
// corrections are made with compensating entries, never updates.
type LedgerEntry struct {
	ID        int32     `json:"id"`
	Kind      EntryKind `json:"kind"`
	Amount    int32     `json:"amount"` // cares moved, always >= 0
	CreatedOn time.Time `json:"created_on"`

	Help *HelpSettlement `json:"help,omitempty"`
	Loan *LoanSettlement `json:"loan,omitempty"`
	Sale *SaleSettlement `json:"sale,omitempty"`
}

// HelpSettlement credits the requester's reward. System-funded: there is
// no payer account.
type HelpSettlement struct {
	RequestID  int32 `json:"request_id"`
	ReceiverID int32 `json:"receiver_id"`
}

// LoanSettlement transfers the item commission from borrower to owner.
// A loan bundling several items produces one entry per item.
type LoanSettlement struct {
	LoanID     int32 `json:"loan_id"`
	ItemID     int32 `json:"item_id"`
	PayerID    int32 `json:"payer_id"`
	ReceiverID int32 `json:"receiver_id"`
	Hours      int32 `json:"hours"`
}

// SaleSettlement debits the buyer. The shop holds no balance, so sale
// entries have no receiver; the sale row points back at its entry.
type SaleSettlement struct {
	BuyerID      int32 `json:"buyer_id"`
	ArticleCount int32 `json:"article_count"`
}
