package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Actor is the authenticated caller identity, produced by the identity
// gate before any service method runs.
type Actor struct {
	UserID int32 `json:"user_id"`
	Role   Role  `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Account holds a user's cares balance. The balance is mutated only by
// ledger settlement; accounts are never deleted, only anonymized.
type Account struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Balance   int32     `json:"balance"` // cares, never negative
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedOn time.Time `json:"created_on"`
}
