package domain

import "time"

type HelpRequestStatus string

const (
	HelpRequestStatusPending    HelpRequestStatus = "PENDING"
	HelpRequestStatusOpen       HelpRequestStatus = "OPEN"
	HelpRequestStatusInProgress HelpRequestStatus = "IN_PROGRESS"
	// HelpRequestStatusDone means the requester marked the work finished
	// and the request is awaiting admin validation.
	HelpRequestStatusDone      HelpRequestStatus = "DONE"
	HelpRequestStatusConcluded HelpRequestStatus = "CONCLUDED"
	HelpRequestStatusRejected  HelpRequestStatus = "REJECTED"
)

type HelpRequest struct {
	ID          int32             `json:"id"`
	RequesterID int32             `json:"requester_id"`
	Description string            `json:"description"`
	Hours       int32             `json:"hours"`
	Headcount   int32             `json:"headcount"`
	Reward      int32             `json:"reward"` // cares, fixed at creation
	Schedule    string            `json:"schedule"`
	Status      HelpRequestStatus `json:"status"`
	CompletedOn *time.Time        `json:"completed_on,omitempty"`
	CreatedOn   time.Time         `json:"created_on"`
}

type VolunteeringStatus string

const (
	VolunteeringStatusPending  VolunteeringStatus = "PENDING"
	VolunteeringStatusAccepted VolunteeringStatus = "ACCEPTED"
)

// Volunteering links a user to a help request. At most one row per
// (request, user) pair.
type Volunteering struct {
	RequestID int32              `json:"request_id"`
	UserID    int32              `json:"user_id"`
	Status    VolunteeringStatus `json:"status"`
	CreatedOn time.Time          `json:"created_on"`
}
