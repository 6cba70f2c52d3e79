package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) Register(ctx context.Context, name, email string, role domain.Role) (*domain.Account, error) {
	if role == "" {
		role = domain.RoleMember
	}
	acc := &domain.Account{Name: name, Email: email, Role: role, Active: true}
	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *accountService) GetAccount(ctx context.Context, id int32) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// Deactivate scrubs the personal fields but keeps the row: the balance
// must survive until every settlement touching the account completes.
func (s *accountService) Deactivate(ctx context.Context, actor domain.Actor, id int32) error {
	if !actor.IsAdmin() && actor.UserID != id {
		return domain.ErrForbidden
	}
	tag := uuid.NewString()
	return s.accountRepo.Anonymize(ctx, id,
		"Deactivated User",
		fmt.Sprintf("deactivated-%s@communicare.invalid", tag),
	)
}
