package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"communicare-backend/internal/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can
// run standalone or inside an atomic unit.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB

	accounts      repository.AccountRepository
	ledger        repository.LedgerRepository
	helpRequests  repository.HelpRequestRepository
	loans         repository.LoanRepository
	items         repository.ItemRepository
	market        repository.MarketRepository
	notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		accounts:      NewAccountRepository(db),
		ledger:        NewLedgerRepository(db),
		helpRequests:  NewHelpRequestRepository(db),
		loans:         NewLoanRepository(db),
		items:         NewItemRepository(db),
		market:        NewMarketRepository(db),
		notifications: NewNotificationRepository(db),
	}
}

func (s *Store) Accounts() repository.AccountRepository          { return s.accounts }
func (s *Store) Ledger() repository.LedgerRepository             { return s.ledger }
func (s *Store) HelpRequests() repository.HelpRequestRepository  { return s.helpRequests }
func (s *Store) Loans() repository.LoanRepository                { return s.loans }
func (s *Store) Items() repository.ItemRepository                { return s.items }
func (s *Store) Market() repository.MarketRepository             { return s.market }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

// txStore binds the same repositories to one *sql.Tx.
type txStore struct {
	accounts     repository.AccountRepository
	ledger       repository.LedgerRepository
	helpRequests repository.HelpRequestRepository
	loans        repository.LoanRepository
	items        repository.ItemRepository
	market       repository.MarketRepository
}

func (t *txStore) Accounts() repository.AccountRepository         { return t.accounts }
func (t *txStore) Ledger() repository.LedgerRepository            { return t.ledger }
func (t *txStore) HelpRequests() repository.HelpRequestRepository { return t.helpRequests }
func (t *txStore) Loans() repository.LoanRepository               { return t.loans }
func (t *txStore) Items() repository.ItemRepository               { return t.items }
func (t *txStore) Market() repository.MarketRepository            { return t.market }

// RunAtomic runs fn inside one database transaction. A rollback after any
// error guarantees no half-applied settlement is ever observable.
func (s *Store) RunAtomic(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	bound := &txStore{
		accounts:     NewAccountRepository(tx),
		ledger:       NewLedgerRepository(tx),
		helpRequests: NewHelpRequestRepository(tx),
		loans:        NewLoanRepository(tx),
		items:        NewItemRepository(tx),
		market:       NewMarketRepository(tx),
	}
	if err := fn(bound); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Migrate brings the schema up to date using the embedded migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
