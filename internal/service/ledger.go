package service

import (
	"context"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type ledgerService struct {
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
}

func NewLedgerService(accountRepo repository.AccountRepository, ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int32) (int32, error) {
	acc, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (s *ledgerService) GetEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	return s.ledgerRepo.ListByUser(ctx, userID, page, pageSize)
}

// settle moves entry.Amount between the payer and receiver accounts and
// appends the entry, all against the transaction the caller is running.
// Either party may be nil: help settlements have no payer, sale
// settlements no receiver. The caller advances the triggering domain
// entity inside the same transaction, so a failed debit rolls everything
// back together.
func settle(ctx context.Context, tx repository.Tx, entry *domain.LedgerEntry, payerID, receiverID *int32) error {
	if entry.Amount < 0 {
		return fmt.Errorf("settle %s: %w", entry.Kind, domain.ErrInvalidAmount)
	}
	if payerID != nil {
		if err := tx.Accounts().Debit(ctx, *payerID, entry.Amount); err != nil {
			return err
		}
	}
	if receiverID != nil {
		if err := tx.Accounts().Credit(ctx, *receiverID, entry.Amount); err != nil {
			return err
		}
	}
	return tx.Ledger().Append(ctx, entry)
}
