package domain

import "errors"

// Settlement and state-machine failures are expected, recoverable
// conditions. Services return them wrapped with context; callers match
// with errors.Is. Infrastructure failures propagate as plain errors.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidState        = errors.New("invalid state for this transition")
	ErrAlreadySettled      = errors.New("already settled")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrForbidden           = errors.New("actor lacks required role")
	ErrInvalidAmount       = errors.New("amount must not be negative")

	ErrDuplicateRequest   = errors.New("duplicate open request")
	ErrDuplicateVolunteer = errors.New("user already volunteered")
	ErrHeadcountReached   = errors.New("volunteer headcount reached")
	ErrSelfAcquisition    = errors.New("cannot borrow own item")
	ErrNotYetConcluded    = errors.New("request not yet marked done")

	ErrItemUnavailable    = errors.New("item unavailable")
	ErrShopInactive       = errors.New("shop is not active")
	ErrArticleUnavailable = errors.New("article unavailable")
)
