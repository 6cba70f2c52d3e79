package domain

import "time"

type LoanStatus string

const (
	LoanStatusRequested     LoanStatus = "REQUESTED"      // awaiting admin validation, StartTime nil
	LoanStatusActive        LoanStatus = "ACTIVE"         // StartTime set
	LoanStatusReturnPending LoanStatus = "RETURN_PENDING" // ReturnTime set, settlement pending
	LoanStatusSettled       LoanStatus = "SETTLED"
)

// Loan is the borrowing of one or more items by a single borrower.
// StartTime is nil until an admin validates the loan; ReturnTime is nil
// until the borrower marks the items returned.
type Loan struct {
	ID         int32      `json:"id"`
	BorrowerID int32      `json:"borrower_id"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	ReturnTime *time.Time `json:"return_time,omitempty"`
	Status     LoanStatus `json:"status"`
	CreatedOn  time.Time  `json:"created_on"`
}

type LoanPartyRole string

const (
	LoanPartyRoleOwner    LoanPartyRole = "OWNER"
	LoanPartyRoleBorrower LoanPartyRole = "BORROWER"
)

// LoanParty ties a user to one item of a loan. Each item carries an OWNER
// row and a BORROWER row; settlement on return validation pairs them up.
type LoanParty struct {
	LoanID int32         `json:"loan_id"`
	ItemID int32         `json:"item_id"`
	UserID int32         `json:"user_id"`
	Role   LoanPartyRole `json:"role"`
}

type ItemAvailability string

const (
	ItemAvailable   ItemAvailability = "AVAILABLE"
	ItemUnavailable ItemAvailability = "UNAVAILABLE"
	// ItemRetired means the owner withdrew the item permanently.
	ItemRetired ItemAvailability = "RETIRED"
)

// LoanItem is a physical object listed for time-based borrowing against a
// per-hour commission in cares.
type LoanItem struct {
	ID             int32            `json:"id"`
	OwnerID        int32            `json:"owner_id"`
	Name           string           `json:"name"`
	CommissionRate int32            `json:"commission_rate"` // cares per hour
	Availability   ItemAvailability `json:"availability"`
	CreatedOn      time.Time        `json:"created_on"`
}
