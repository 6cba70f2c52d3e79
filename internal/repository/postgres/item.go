package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type itemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.LoanItem) error {
	query := `INSERT INTO loan_items (owner_id, name, commission_rate, availability)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, item.OwnerID, item.Name, item.CommissionRate, item.Availability).
		Scan(&item.ID, &item.CreatedOn)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.LoanItem, error) {
	item := &domain.LoanItem{}
	query := `SELECT id, owner_id, name, commission_rate, availability, created_on FROM loan_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.OwnerID, &item.Name, &item.CommissionRate, &item.Availability, &item.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) SetAvailability(ctx context.Context, id int32, availability domain.ItemAvailability) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE loan_items SET availability = $2 WHERE id = $1`,
		id, availability,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
