package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type marketRepository struct {
	db DBTX
}

func NewMarketRepository(db DBTX) repository.MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) CreateShop(ctx context.Context, shop *domain.Shop) error {
	query := `INSERT INTO shops (name, status) VALUES ($1, $2) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, shop.Name, shop.Status).Scan(&shop.ID, &shop.CreatedOn)
}

func (r *marketRepository) GetShop(ctx context.Context, id int32) (*domain.Shop, error) {
	shop := &domain.Shop{}
	query := `SELECT id, name, status, created_on FROM shops WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&shop.ID, &shop.Name, &shop.Status, &shop.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shop %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return shop, nil
}

func (r *marketRepository) GetActiveShop(ctx context.Context) (*domain.Shop, error) {
	shop := &domain.Shop{}
	query := `SELECT id, name, status, created_on FROM shops WHERE status = $1`
	err := r.db.QueryRowContext(ctx, query, domain.ShopStatusActive).
		Scan(&shop.ID, &shop.Name, &shop.Status, &shop.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active shop: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return shop, nil
}

func (r *marketRepository) SetShopStatus(ctx context.Context, id int32, status domain.ShopStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE shops SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("shop %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *marketRepository) DeactivateAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE shops SET status = $1 WHERE status = $2`,
		domain.ShopStatusInactive, domain.ShopStatusActive,
	)
	return err
}

func (r *marketRepository) CreateArticle(ctx context.Context, art *domain.Article) error {
	query := `INSERT INTO articles (shop_id, name, price, stock, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, art.ShopID, art.Name, art.Price, art.Stock, art.Status).
		Scan(&art.ID, &art.CreatedOn)
}

func (r *marketRepository) GetArticle(ctx context.Context, id int32) (*domain.Article, error) {
	art := &domain.Article{}
	query := `SELECT id, shop_id, name, price, stock, status, created_on FROM articles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&art.ID, &art.ShopID, &art.Name, &art.Price, &art.Stock, &art.Status, &art.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return art, nil
}

// DecrementStock is conditional on remaining stock, mirroring the
// conditional balance debit: concurrent purchases cannot oversell.
func (r *marketRepository) DecrementStock(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE articles SET stock = stock - 1 WHERE id = $1 AND stock > 0`,
		id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("article %d: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("article %d out of stock: %w", id, domain.ErrArticleUnavailable)
}

func (r *marketRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sales (buyer_id, entry_id, total) VALUES ($1, $2, $3) RETURNING id, created_on`,
		sale.BuyerID, sale.EntryID, sale.Total,
	).Scan(&sale.ID, &sale.CreatedOn)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, articleID := range sale.ArticleIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO sale_articles (sale_id, article_id) VALUES ($1, $2)`,
			sale.ID, articleID,
		)
		if err != nil {
			return fmt.Errorf("insert sale article %d: %w", articleID, err)
		}
	}
	return nil
}
