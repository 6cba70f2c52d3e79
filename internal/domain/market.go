package domain

import "time"

type ShopStatus string

const (
	ShopStatusActive   ShopStatus = "ACTIVE"
	ShopStatusInactive ShopStatus = "INACTIVE"
)

// Shop sells articles for cares. At most one shop is ACTIVE platform-wide
// at any time; only the active shop can sell.
type Shop struct {
	ID        int32      `json:"id"`
	Name      string     `json:"name"`
	Status    ShopStatus `json:"status"`
	CreatedOn time.Time  `json:"created_on"`
}

type ArticleStatus string

const (
	ArticleStatusAvailable   ArticleStatus = "AVAILABLE"
	ArticleStatusUnavailable ArticleStatus = "UNAVAILABLE"
)

type Article struct {
	ID        int32         `json:"id"`
	ShopID    int32         `json:"shop_id"`
	Name      string        `json:"name"`
	Price     int32         `json:"price"` // cares
	Stock     int32         `json:"stock"`
	Status    ArticleStatus `json:"status"`
	CreatedOn time.Time     `json:"created_on"`
}

// Sale records one purchase. EntryID references the ledger entry created
// in the same atomic unit as the stock decrement and buyer debit.
type Sale struct {
	ID         int32     `json:"id"`
	BuyerID    int32     `json:"buyer_id"`
	EntryID    int32     `json:"entry_id"`
	ArticleIDs []int32   `json:"article_ids"`
	Total      int32     `json:"total"` // cares
	CreatedOn  time.Time `json:"created_on"`
}
