package postgres

import (
	"context"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append writes the entry and its kind payload. There are no update or
// delete operations on this repository: the ledger is append-only.
func (r *ledgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO ledger_entries (kind, amount) VALUES ($1, $2) RETURNING id, created_on`,
		entry.Kind, entry.Amount,
	).Scan(&entry.ID, &entry.CreatedOn)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}

	switch entry.Kind {
	case domain.EntryKindHelp:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ledger_help (entry_id, request_id, receiver_id) VALUES ($1, $2, $3)`,
			entry.ID, entry.Help.RequestID, entry.Help.ReceiverID,
		)
	case domain.EntryKindLoan:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ledger_loan (entry_id, loan_id, item_id, payer_id, receiver_id, hours)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, entry.Loan.LoanID, entry.Loan.ItemID, entry.Loan.PayerID, entry.Loan.ReceiverID, entry.Loan.Hours,
		)
	case domain.EntryKindSale:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ledger_sale (entry_id, buyer_id, article_count) VALUES ($1, $2, $3)`,
			entry.ID, entry.Sale.BuyerID, entry.Sale.ArticleCount,
		)
	default:
		return fmt.Errorf("unknown entry kind %q", entry.Kind)
	}
	if err != nil {
		return fmt.Errorf("append %s payload: %w", entry.Kind, err)
	}
	return nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	base := `FROM ledger_entries e
	         LEFT JOIN ledger_help h ON h.entry_id = e.id
	         LEFT JOIN ledger_loan l ON l.entry_id = e.id
	         LEFT JOIN ledger_sale s ON s.entry_id = e.id
	         WHERE h.receiver_id = $1 OR l.payer_id = $1 OR l.receiver_id = $1 OR s.buyer_id = $1`

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT e.id, e.kind, e.amount, e.created_on,
	                 h.request_id, h.receiver_id,
	                 l.loan_id, l.item_id, l.payer_id, l.receiver_id, l.hours,
	                 s.buyer_id, s.article_count ` +
		base + ` ORDER BY e.created_on DESC, e.id DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var (
			e                                   domain.LedgerEntry
			helpRequest, helpReceiver           *int32
			loanID, itemID, payer, owner, hours *int32
			buyer, articleCount                 *int32
		)
		err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.CreatedOn,
			&helpRequest, &helpReceiver,
			&loanID, &itemID, &payer, &owner, &hours,
			&buyer, &articleCount)
		if err != nil {
			return nil, 0, err
		}
		switch e.Kind {
		case domain.EntryKindHelp:
			e.Help = &domain.HelpSettlement{RequestID: *helpRequest, ReceiverID: *helpReceiver}
		case domain.EntryKindLoan:
			e.Loan = &domain.LoanSettlement{LoanID: *loanID, ItemID: *itemID, PayerID: *payer, ReceiverID: *owner, Hours: *hours}
		case domain.EntryKindSale:
			e.Sale = &domain.SaleSettlement{BuyerID: *buyer, ArticleCount: *articleCount}
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
