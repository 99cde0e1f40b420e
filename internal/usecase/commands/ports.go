package commands

import (
	"context"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
)

// Write ports implemented by the remote client. Every method is exactly one backend call.

type TradeWriter interface {
	StartTransaction(ctx context.Context, itemID item.ID) (*trade.Trade, error)
	AcceptTransaction(ctx context.Context, id trade.ID) (*trade.Trade, error)
	CancelTransaction(ctx context.Context, id trade.ID) (*trade.Trade, error)
	ConfirmTransaction(ctx context.Context, id trade.ID) (*trade.Trade, error)
}

type ItemWriter interface {
	AddItem(ctx context.Context, d item.Draft) (*item.Item, error)
	UpdateItem(ctx context.Context, id item.ID, d item.Draft, state item.State) (*item.Item, error)
	RemoveItem(ctx context.Context, id item.ID) error
}

type UserWriter interface {
	UpdateDescription(ctx context.Context, description string) error
	AddContactInfo(ctx context.Context, c user.ContactInfo) error
	RemoveContactInfo(ctx context.Context, id int64) error
}
