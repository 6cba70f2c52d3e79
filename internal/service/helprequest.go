package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/pricing"
	"communicare-backend/internal/repository"
)

type helpRequestService struct {
	runner      repository.TxRunner
	reqRepo     repository.HelpRequestRepository
	accountRepo repository.AccountRepository
	noteRepo    repository.NotificationRepository
	rewardRate  int32
	now         func() time.Time
}

func NewHelpRequestService(
	runner repository.TxRunner,
	reqRepo repository.HelpRequestRepository,
	accountRepo repository.AccountRepository,
	noteRepo repository.NotificationRepository,
	rewardRate int32,
) HelpRequestService {
	if rewardRate <= 0 {
		rewardRate = pricing.DefaultHelpRewardRate
	}
	return &helpRequestService{
		runner:      runner,
		reqRepo:     reqRepo,
		accountRepo: accountRepo,
		noteRepo:    noteRepo,
		rewardRate:  rewardRate,
		now:         time.Now,
	}
}

func (s *helpRequestService) Create(ctx context.Context, actor domain.Actor, description string, hours, headcount int32, schedule string) (*domain.HelpRequest, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive: %w", domain.ErrInvalidAmount)
	}
	if headcount <= 0 {
		return nil, fmt.Errorf("headcount must be positive: %w", domain.ErrInvalidAmount)
	}

	req := &domain.HelpRequest{
		RequesterID: actor.UserID,
		Description: description,
		Hours:       hours,
		Headcount:   headcount,
		Reward:      pricing.HelpReward(hours, s.rewardRate),
		Schedule:    schedule,
		Status:      domain.HelpRequestStatusPending,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, "New Help Request",
		fmt.Sprintf("Help request %d awaits approval", req.ID),
		map[string]string{"type": "HELP_REQUEST_CREATED", "request_id": fmt.Sprintf("%d", req.ID)})
	return req, nil
}

func (s *helpRequestService) Approve(ctx context.Context, actor domain.Actor, requestID int32) (*domain.HelpRequest, error) {
	req, err := s.adminTransition(ctx, actor, requestID, domain.HelpRequestStatusPending, domain.HelpRequestStatusOpen)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, req.RequesterID, "Help Request Approved",
		fmt.Sprintf("Your help request %d is now open for volunteers", req.ID),
		map[string]string{"type": "HELP_REQUEST_APPROVED", "request_id": fmt.Sprintf("%d", req.ID)})
	return req, nil
}

func (s *helpRequestService) Reject(ctx context.Context, actor domain.Actor, requestID int32) (*domain.HelpRequest, error) {
	req, err := s.adminTransition(ctx, actor, requestID, domain.HelpRequestStatusPending, domain.HelpRequestStatusRejected)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, req.RequesterID, "Help Request Rejected",
		fmt.Sprintf("Your help request %d was rejected", req.ID),
		map[string]string{"type": "HELP_REQUEST_REJECTED", "request_id": fmt.Sprintf("%d", req.ID)})
	return req, nil
}

func (s *helpRequestService) adminTransition(ctx context.Context, actor domain.Actor, requestID int32, from, to domain.HelpRequestStatus) (*domain.HelpRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != from {
		return nil, fmt.Errorf("request %d is %s: %w", requestID, req.Status, domain.ErrInvalidState)
	}
	req.Status = to
	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *helpRequestService) Volunteer(ctx context.Context, actor domain.Actor, requestID int32) error {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.HelpRequestStatusOpen {
		return fmt.Errorf("request %d is %s: %w", requestID, req.Status, domain.ErrInvalidState)
	}

	if _, err := s.reqRepo.GetVolunteering(ctx, requestID, actor.UserID); err == nil {
		return fmt.Errorf("request %d user %d: %w", requestID, actor.UserID, domain.ErrDuplicateVolunteer)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	accepted, err := s.reqRepo.CountVolunteers(ctx, requestID, domain.VolunteeringStatusAccepted)
	if err != nil {
		return err
	}
	if accepted >= req.Headcount {
		return fmt.Errorf("request %d: %w", requestID, domain.ErrHeadcountReached)
	}

	v := &domain.Volunteering{
		RequestID: requestID,
		UserID:    actor.UserID,
		Status:    domain.VolunteeringStatusPending,
	}
	if err := s.reqRepo.CreateVolunteering(ctx, v); err != nil {
		return err
	}

	s.notify(ctx, req.RequesterID, "New Volunteer",
		fmt.Sprintf("User %d volunteered for your help request %d", actor.UserID, requestID),
		map[string]string{"type": "VOLUNTEER_JOINED", "request_id": fmt.Sprintf("%d", requestID)})
	return nil
}

// AcceptVolunteer is idempotent: re-accepting an already-accepted
// volunteer changes nothing. The accepted count is recomputed from rows
// inside the transaction, so a repeat acceptance can never flip the
// request to IN_PROGRESS early.
func (s *helpRequestService) AcceptVolunteer(ctx context.Context, actor domain.Actor, requestID, userID int32) (*domain.HelpRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var req *domain.HelpRequest
	var started bool
	err := s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		var err error
		req, err = tx.HelpRequests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.HelpRequestStatusOpen {
			return fmt.Errorf("request %d is %s: %w", requestID, req.Status, domain.ErrInvalidState)
		}

		v, err := tx.HelpRequests().GetVolunteering(ctx, requestID, userID)
		if err != nil {
			return err
		}
		if v.Status == domain.VolunteeringStatusAccepted {
			return nil
		}

		accepted, err := tx.HelpRequests().CountVolunteers(ctx, requestID, domain.VolunteeringStatusAccepted)
		if err != nil {
			return err
		}
		if accepted >= req.Headcount {
			return fmt.Errorf("request %d: %w", requestID, domain.ErrHeadcountReached)
		}

		v.Status = domain.VolunteeringStatusAccepted
		if err := tx.HelpRequests().UpdateVolunteering(ctx, v); err != nil {
			return err
		}

		if accepted+1 >= req.Headcount {
			req.Status = domain.HelpRequestStatusInProgress
			started = true
			return tx.HelpRequests().Update(ctx, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, userID, "Volunteering Accepted",
		fmt.Sprintf("You were accepted for help request %d", requestID),
		map[string]string{"type": "VOLUNTEER_ACCEPTED", "request_id": fmt.Sprintf("%d", requestID)})
	if started {
		s.notify(ctx, req.RequesterID, "Help Request Started",
			fmt.Sprintf("Your help request %d reached its headcount and is in progress", requestID),
			map[string]string{"type": "HELP_REQUEST_STARTED", "request_id": fmt.Sprintf("%d", requestID)})
	}
	return req, nil
}

func (s *helpRequestService) RejectVolunteer(ctx context.Context, actor domain.Actor, requestID, userID int32) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.reqRepo.DeleteVolunteering(ctx, requestID, userID); err != nil {
		return err
	}

	s.notify(ctx, userID, "Volunteering Rejected",
		fmt.Sprintf("Your volunteering for help request %d was rejected", requestID),
		map[string]string{"type": "VOLUNTEER_REJECTED", "request_id": fmt.Sprintf("%d", requestID)})
	s.notify(ctx, req.RequesterID, "Volunteer Removed",
		fmt.Sprintf("A volunteer was removed from your help request %d", requestID),
		map[string]string{"type": "VOLUNTEER_REJECTED", "request_id": fmt.Sprintf("%d", requestID)})
	return nil
}

func (s *helpRequestService) MarkDone(ctx context.Context, actor domain.Actor, requestID int32) (*domain.HelpRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if req.Status != domain.HelpRequestStatusInProgress {
		return nil, fmt.Errorf("request %d is %s: %w", requestID, req.Status, domain.ErrInvalidState)
	}

	completed := s.now()
	req.Status = domain.HelpRequestStatusDone
	req.CompletedOn = &completed
	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, "Help Request Done",
		fmt.Sprintf("Help request %d awaits conclusion validation", requestID),
		map[string]string{"type": "HELP_REQUEST_DONE", "request_id": fmt.Sprintf("%d", requestID)})
	return req, nil
}

func (s *helpRequestService) ValidateConclusion(ctx context.Context, actor domain.Actor, requestID int32) (*domain.LedgerEntry, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var entry *domain.LedgerEntry
	var requesterID int32
	err := s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		req, err := tx.HelpRequests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		switch req.Status {
		case domain.HelpRequestStatusDone:
			// settle below
		case domain.HelpRequestStatusConcluded:
			return fmt.Errorf("request %d: %w", requestID, domain.ErrAlreadySettled)
		case domain.HelpRequestStatusInProgress:
			return fmt.Errorf("request %d: %w", requestID, domain.ErrNotYetConcluded)
		default:
			return fmt.Errorf("request %d is %s: %w", requestID, req.Status, domain.ErrInvalidState)
		}

		requesterID = req.RequesterID
		entry = &domain.LedgerEntry{
			Kind:   domain.EntryKindHelp,
			Amount: req.Reward,
			Help: &domain.HelpSettlement{
				RequestID:  req.ID,
				ReceiverID: req.RequesterID,
			},
		}
		if err := settle(ctx, tx, entry, nil, &req.RequesterID); err != nil {
			return err
		}

		req.Status = domain.HelpRequestStatusConcluded
		return tx.HelpRequests().Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, requesterID, "Help Request Concluded",
		fmt.Sprintf("Your help request %d concluded, %d cares were credited", requestID, entry.Amount),
		map[string]string{"type": "HELP_REQUEST_CONCLUDED", "request_id": fmt.Sprintf("%d", requestID)})
	return entry, nil
}

func (s *helpRequestService) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string) {
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	})
}

func (s *helpRequestService) notifyAdmins(ctx context.Context, title, message string, attrs map[string]string) {
	admins, err := s.accountRepo.ListAdmins(ctx)
	if err != nil {
		return
	}
	for _, admin := range admins {
		s.notify(ctx, admin.ID, title, message, attrs)
	}
}
