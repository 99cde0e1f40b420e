package queries

import (
	"context"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
)

// Read ports implemented by the remote client.

type TradeReader interface {
	ListTransactions(ctx context.Context, typ trade.TypeFilter) ([]*trade.Trade, error)
}

type ItemReader interface {
	ListUserItems(ctx context.Context, q item.ListQuery) (*item.Page, error)
	GetItemDetailed(ctx context.Context, id item.ID) (*item.Detailed, error)
	SearchItems(ctx context.Context, q item.SearchQuery) (*item.Page, error)
}

type UserReader interface {
	Me(ctx context.Context) (*user.User, error)
	ContactInfo(ctx context.Context, userID *user.ID) ([]user.ContactInfo, error)
}
