package service

import (
	"context"
	"fmt"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/repository"
)

type marketService struct {
	runner     repository.TxRunner
	marketRepo repository.MarketRepository
	noteRepo   repository.NotificationRepository
}

func NewMarketService(
	runner repository.TxRunner,
	marketRepo repository.MarketRepository,
	noteRepo repository.NotificationRepository,
) MarketService {
	return &marketService{runner: runner, marketRepo: marketRepo, noteRepo: noteRepo}
}

func (s *marketService) CreateShop(ctx context.Context, actor domain.Actor, name string) (*domain.Shop, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	shop := &domain.Shop{Name: name, Status: domain.ShopStatusInactive}
	if err := s.marketRepo.CreateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ActivateShop deactivates every other shop and activates the target in
// one atomic unit, so no reader ever observes two active shops.
func (s *marketService) ActivateShop(ctx context.Context, actor domain.Actor, shopID int32) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		if _, err := tx.Market().GetShop(ctx, shopID); err != nil {
			return err
		}
		if err := tx.Market().DeactivateAll(ctx); err != nil {
			return err
		}
		return tx.Market().SetShopStatus(ctx, shopID, domain.ShopStatusActive)
	})
}

func (s *marketService) PublishArticle(ctx context.Context, actor domain.Actor, shopID int32, name string, price, stock int32) (*domain.Article, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if price < 0 || stock < 0 {
		return nil, fmt.Errorf("price and stock must not be negative: %w", domain.ErrInvalidAmount)
	}
	if _, err := s.marketRepo.GetShop(ctx, shopID); err != nil {
		return nil, err
	}

	status := domain.ArticleStatusAvailable
	if stock == 0 {
		status = domain.ArticleStatusUnavailable
	}
	art := &domain.Article{ShopID: shopID, Name: name, Price: price, Stock: stock, Status: status}
	if err := s.marketRepo.CreateArticle(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

// Purchase debits the buyer, appends the sale entry, creates the sale and
// decrements each article's stock in one atomic unit. The shop holds no
// balance: a sale is a pure debit.
func (s *marketService) Purchase(ctx context.Context, actor domain.Actor, articleIDs []int32) (*domain.Sale, error) {
	if len(articleIDs) == 0 {
		return nil, fmt.Errorf("no articles requested: %w", domain.ErrInvalidState)
	}

	var sale *domain.Sale
	err := s.runner.RunAtomic(ctx, func(tx repository.Tx) error {
		activeShop, err := tx.Market().GetActiveShop(ctx)
		if err != nil {
			return fmt.Errorf("%w: no shop is active", domain.ErrShopInactive)
		}

		var total int32
		for _, articleID := range articleIDs {
			art, err := tx.Market().GetArticle(ctx, articleID)
			if err != nil {
				return err
			}
			if art.ShopID != activeShop.ID {
				return fmt.Errorf("article %d belongs to shop %d: %w", articleID, art.ShopID, domain.ErrShopInactive)
			}
			if art.Status != domain.ArticleStatusAvailable || art.Stock <= 0 {
				return fmt.Errorf("article %d: %w", articleID, domain.ErrArticleUnavailable)
			}
			total += art.Price
		}

		entry := &domain.LedgerEntry{
			Kind:   domain.EntryKindSale,
			Amount: total,
			Sale: &domain.SaleSettlement{
				BuyerID:      actor.UserID,
				ArticleCount: int32(len(articleIDs)),
			},
		}
		if err := settle(ctx, tx, entry, &actor.UserID, nil); err != nil {
			return err
		}

		sale = &domain.Sale{
			BuyerID:    actor.UserID,
			EntryID:    entry.ID,
			ArticleIDs: articleIDs,
			Total:      total,
		}
		if err := tx.Market().CreateSale(ctx, sale); err != nil {
			return err
		}

		for _, articleID := range articleIDs {
			if err := tx.Market().DecrementStock(ctx, articleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  actor.UserID,
		Title:   "Purchase Completed",
		Message: fmt.Sprintf("You bought %d article(s) for %d cares", len(sale.ArticleIDs), sale.Total),
		Attributes: map[string]string{
			"type":    "SALE_COMPLETED",
			"sale_id": fmt.Sprintf("%d", sale.ID),
		},
	})
	return sale, nil
}
