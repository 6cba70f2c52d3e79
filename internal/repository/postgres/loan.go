package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type loanRepository struct {
	db DBTX
}

func NewLoanRepository(db DBTX) repository.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `INSERT INTO loans (borrower_id, start_time, return_time, status)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, loan.BorrowerID, loan.StartTime, loan.ReturnTime, loan.Status).
		Scan(&loan.ID, &loan.CreatedOn)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	loan := &domain.Loan{}
	query := `SELECT id, borrower_id, start_time, return_time, status, created_on FROM loans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&loan.ID, &loan.BorrowerID, &loan.StartTime, &loan.ReturnTime, &loan.Status, &loan.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("loan %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return loan, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE loans SET start_time = $2, return_time = $3, status = $4 WHERE id = $1`,
		loan.ID, loan.StartTime, loan.ReturnTime, loan.Status,
	)
	return err
}

func (r *loanRepository) Delete(ctx context.Context, id int32) error {
	// Party rows cascade with the loan.
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("loan %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *loanRepository) AddParty(ctx context.Context, party *domain.LoanParty) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO loan_parties (loan_id, item_id, user_id, role) VALUES ($1, $2, $3, $4)`,
		party.LoanID, party.ItemID, party.UserID, party.Role,
	)
	return err
}

func (r *loanRepository) ListParties(ctx context.Context, loanID int32) ([]domain.LoanParty, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT loan_id, item_id, user_id, role FROM loan_parties WHERE loan_id = $1 ORDER BY item_id, role`,
		loanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []domain.LoanParty
	for rows.Next() {
		var p domain.LoanParty
		if err := rows.Scan(&p.LoanID, &p.ItemID, &p.UserID, &p.Role); err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (r *loanRepository) HasOpenLoan(ctx context.Context, borrowerID, itemID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
	            SELECT 1 FROM loans lo
	            JOIN loan_parties p ON p.loan_id = lo.id AND p.role = $3
	            WHERE lo.borrower_id = $1 AND p.item_id = $2 AND lo.status <> $4)`
	err := r.db.QueryRowContext(ctx, query, borrowerID, itemID, domain.LoanPartyRoleBorrower, domain.LoanStatusSettled).
		Scan(&exists)
	return exists, err
}

func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, borrower_id, start_time, return_time, status, created_on FROM loans WHERE status = $1 ORDER BY created_on`,
		status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(&loan.ID, &loan.BorrowerID, &loan.StartTime, &loan.ReturnTime, &loan.Status, &loan.CreatedOn); err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}
