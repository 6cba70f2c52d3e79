package service

import (
	"context"
	"fmt"
	"time"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/pricing"
	"communicare-backend/internal/repository"
)

type loanService struct {
	runner      repository.TxRunner
	loanRepo    repository.LoanRepository
	itemRepo    repository.ItemRepository
	accountRepo repository.AccountRepository
	noteRepo    repository.NotificationRepository
	now         func() time.Time
}

func NewLoanService(
	runner repository.TxRunner,
	loanRepo repository.LoanRepository,
	itemRepo repository.ItemRepository,
	accountRepo repository.AccountRepository,
	noteRepo repository.NotificationRepository,
) LoanService {
	return &loanService{
		runner:      runner,
		loanRepo:    loanRepo,
		itemRepo:    itemRepo,
		accountRepo: accountRepo,
		noteRepo:    noteRepo,
		now:         time.Now,
	}
}

func (s *loanService) ListItem(ctx context.Context, actor domain.Actor, name string, commissionRate int32) (*domain.LoanItem, error) {
	if commissionRate < 0 {
		return nil, fmt.Errorf("commission rate: %w", domain.ErrInvalidAmount)
	}
	item := &domain.LoanItem{
		OwnerID:        actor.UserID,
		Name:           name,
		CommissionRate: commissionRate,
		Availability:   domain.ItemAvailable,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Acquire creates the loan shell and its party rows; no cares move until
// the return is validated. The balance check here is only an eager
// courtesy to the borrower, the authoritative check happens at settlement.
func (s *loanService) Acquire(ctx context.Context, actor domain.Actor, itemIDs []int32) (*domain.Loan, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("no items requested: %w", domain.ErrInvalidState)
	}

	var loan *domain.Loan
	var owners []int32
	err := s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		owners = owners[:0]
		var totalRate int32
		items := make([]*domain.LoanItem, 0, len(itemIDs))
		for _, itemID := range itemIDs {
			item, err := tx.Items().GetByID(ctx, itemID)
			if err != nil {
				return err
			}
			if item.Availability != domain.ItemAvailable {
				return fmt.Errorf("item %d: %w", itemID, domain.ErrItemUnavailable)
			}
			if item.OwnerID == actor.UserID {
				return fmt.Errorf("item %d: %w", itemID, domain.ErrSelfAcquisition)
			}
			open, err := tx.Loans().HasOpenLoan(ctx, actor.UserID, itemID)
			if err != nil {
				return err
			}
			if open {
				return fmt.Errorf("item %d: %w", itemID, domain.ErrDuplicateRequest)
			}
			items = append(items, item)
			totalRate += item.CommissionRate
		}

		borrower, err := tx.Accounts().GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if borrower.Balance < totalRate {
			return fmt.Errorf("first hour costs %d cares: %w", totalRate, domain.ErrInsufficientBalance)
		}

		loan = &domain.Loan{
			BorrowerID: actor.UserID,
			Status:     domain.LoanStatusRequested,
		}
		if err := tx.Loans().Create(ctx, loan); err != nil {
			return err
		}
		for _, item := range items {
			err := tx.Loans().AddParty(ctx, &domain.LoanParty{
				LoanID: loan.ID, ItemID: item.ID, UserID: item.OwnerID, Role: domain.LoanPartyRoleOwner,
			})
			if err != nil {
				return err
			}
			err = tx.Loans().AddParty(ctx, &domain.LoanParty{
				LoanID: loan.ID, ItemID: item.ID, UserID: actor.UserID, Role: domain.LoanPartyRoleBorrower,
			})
			if err != nil {
				return err
			}
			if err := tx.Items().SetAvailability(ctx, item.ID, domain.ItemUnavailable); err != nil {
				return err
			}
			owners = append(owners, item.OwnerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, "New Loan Request",
		fmt.Sprintf("Loan %d awaits validation", loan.ID),
		map[string]string{"type": "LOAN_REQUESTED", "loan_id": fmt.Sprintf("%d", loan.ID)})
	for _, ownerID := range owners {
		s.notify(ctx, ownerID, "Item Requested",
			fmt.Sprintf("User %d requested to borrow your item (loan %d)", actor.UserID, loan.ID),
			map[string]string{"type": "LOAN_REQUESTED", "loan_id": fmt.Sprintf("%d", loan.ID)})
	}
	return loan, nil
}

func (s *loanService) Validate(ctx context.Context, actor domain.Actor, loanID int32) (*domain.Loan, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.StartTime != nil {
		return nil, fmt.Errorf("loan %d already validated: %w", loanID, domain.ErrInvalidState)
	}

	start := s.now()
	loan.StartTime = &start
	loan.Status = domain.LoanStatusActive
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.notify(ctx, loan.BorrowerID, "Loan Validated",
		fmt.Sprintf("Loan %d started, hours are now counted", loanID),
		map[string]string{"type": "LOAN_VALIDATED", "loan_id": fmt.Sprintf("%d", loanID)})
	return loan, nil
}

func (s *loanService) Reject(ctx context.Context, actor domain.Actor, loanID int32) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	var borrowerID int32
	err := s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		loan, err := tx.Loans().GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.StartTime != nil {
			return fmt.Errorf("loan %d already validated: %w", loanID, domain.ErrInvalidState)
		}
		borrowerID = loan.BorrowerID

		parties, err := tx.Loans().ListParties(ctx, loanID)
		if err != nil {
			return err
		}
		for _, p := range parties {
			if p.Role != domain.LoanPartyRoleOwner {
				continue
			}
			if err := tx.Items().SetAvailability(ctx, p.ItemID, domain.ItemAvailable); err != nil {
				return err
			}
		}
		return tx.Loans().Delete(ctx, loanID)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, borrowerID, "Loan Rejected",
		fmt.Sprintf("Loan %d was rejected, the items are available again", loanID),
		map[string]string{"type": "LOAN_REJECTED", "loan_id": fmt.Sprintf("%d", loanID)})
	return nil
}

func (s *loanService) MarkReturned(ctx context.Context, actor domain.Actor, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.BorrowerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if loan.ReturnTime != nil {
		return nil, fmt.Errorf("loan %d already returned: %w", loanID, domain.ErrInvalidState)
	}
	if loan.StartTime == nil {
		return nil, fmt.Errorf("loan %d not yet validated: %w", loanID, domain.ErrInvalidState)
	}

	returned := s.now()
	loan.ReturnTime = &returned
	loan.Status = domain.LoanStatusReturnPending
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, "Loan Returned",
		fmt.Sprintf("Loan %d awaits return validation", loanID),
		map[string]string{"type": "LOAN_RETURNED", "loan_id": fmt.Sprintf("%d", loanID)})
	return loan, nil
}

// ValidateReturn settles each item of the loan with its own owner. The
// whole loan settles in one atomic unit: when any single charge cannot be
// covered, no item settles and the loan stays RETURN_PENDING.
func (s *loanService) ValidateReturn(ctx context.Context, actor domain.Actor, loanID int32) ([]domain.LedgerEntry, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var entries []domain.LedgerEntry
	var borrowerID int32
	var owners []int32
	err := s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		entries = entries[:0]
		owners = owners[:0]

		loan, err := tx.Loans().GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status == domain.LoanStatusSettled {
			return fmt.Errorf("loan %d: %w", loanID, domain.ErrAlreadySettled)
		}
		if loan.StartTime == nil || loan.ReturnTime == nil {
			return fmt.Errorf("loan %d missing start or return time: %w", loanID, domain.ErrInvalidState)
		}
		borrowerID = loan.BorrowerID

		parties, err := tx.Loans().ListParties(ctx, loanID)
		if err != nil {
			return err
		}
		for _, p := range parties {
			if p.Role != domain.LoanPartyRoleOwner {
				continue
			}
			item, err := tx.Items().GetByID(ctx, p.ItemID)
			if err != nil {
				return err
			}
			hours, amount, err := pricing.LoanCharge(*loan.StartTime, *loan.ReturnTime, item.CommissionRate)
			if err != nil {
				return fmt.Errorf("loan %d item %d: %w", loanID, item.ID, err)
			}

			entry := domain.LedgerEntry{
				Kind:   domain.EntryKindLoan,
				Amount: amount,
				Loan: &domain.LoanSettlement{
					LoanID:     loanID,
					ItemID:     item.ID,
					PayerID:    loan.BorrowerID,
					ReceiverID: p.UserID,
					Hours:      hours,
				},
			}
			if err := settle(ctx, tx, &entry, &loan.BorrowerID, &p.UserID); err != nil {
				return fmt.Errorf("item %d: %w", item.ID, err)
			}
			entries = append(entries, entry)
			owners = append(owners, p.UserID)

			if err := tx.Items().SetAvailability(ctx, item.ID, domain.ItemAvailable); err != nil {
				return err
			}
		}

		loan.Status = domain.LoanStatusSettled
		return tx.Loans().Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, borrowerID, "Loan Settled",
		fmt.Sprintf("Loan %d settled across %d item(s)", loanID, len(entries)),
		map[string]string{"type": "LOAN_SETTLED", "loan_id": fmt.Sprintf("%d", loanID)})
	for i, ownerID := range owners {
		s.notify(ctx, ownerID, "Commission Received",
			fmt.Sprintf("You received %d cares for loan %d", entries[i].Amount, loanID),
			map[string]string{"type": "LOAN_SETTLED", "loan_id": fmt.Sprintf("%d", loanID)})
	}
	return entries, nil
}

func (s *loanService) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string) {
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	})
}

func (s *loanService) notifyAdmins(ctx context.Context, title, message string, attrs map[string]string) {
	admins, err := s.accountRepo.ListAdmins(ctx)
	if err != nil {
		return
	}
	for _, admin := range admins {
		s.notify(ctx, admin.ID, title, message, attrs)
	}
}
