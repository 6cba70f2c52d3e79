package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type accountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, acc *domain.Account) error {
	query := `INSERT INTO accounts (name, email, balance, role, active)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, acc.Name, acc.Email, acc.Balance, acc.Role, acc.Active).
		Scan(&acc.ID, &acc.CreatedOn)
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	acc := &domain.Account{}
	query := `SELECT id, name, email, balance, role, active, created_on FROM accounts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&acc.ID, &acc.Name, &acc.Email, &acc.Balance, &acc.Role, &acc.Active, &acc.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return acc, nil
}

func (r *accountRepository) ListAdmins(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT id, name, email, balance, role, active, created_on
	          FROM accounts WHERE role = $1 AND active`
	rows, err := r.db.QueryContext(ctx, query, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Email, &acc.Balance, &acc.Role, &acc.Active, &acc.CreatedOn); err != nil {
			return nil, err
		}
		admins = append(admins, acc)
	}
	return admins, rows.Err()
}

// Debit is conditional on the balance covering the amount, so two
// concurrent settlements against the same payer can never both succeed on
// one settlement's worth of balance.
func (r *accountRepository) Debit(ctx context.Context, id, amount int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = balance - $2 WHERE id = $1 AND balance >= $2`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("debit account %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("account %d needs %d cares: %w", id, amount, domain.ErrInsufficientBalance)
}

func (r *accountRepository) Credit(ctx context.Context, id, amount int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $2 WHERE id = $1`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("credit account %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *accountRepository) Anonymize(ctx context.Context, id int32, name, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = $2, email = $3, active = FALSE WHERE id = $1`,
		id, name, email,
	)
	if err != nil {
		return fmt.Errorf("anonymize account %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
