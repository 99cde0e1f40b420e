//go:build unit || e2e

package builder

import (
	"time"

	"market-client/internal/domain/trade"
	"market-client/internal/infra/remote"
)

type TradeBuilder struct {
	ID           int64
	Buyer        *UserBuilder
	Item         *ItemBuilder
	CreatedTime  time.Time
	AcceptedTime *time.Time
	State        trade.State
	CancelReason *trade.CancelReason
}

// NewTradeBuilder starts a pending trade of item 100 between buyer 5 and seller 9.
func NewTradeBuilder() *TradeBuilder {
	return &TradeBuilder{
		ID:          1,
		Buyer:       NewUserBuilder(),
		Item:        NewItemBuilder(),
		CreatedTime: baseTime,
		State:       trade.StatePending,
	}
}

func (b *TradeBuilder) With(mutate func(*TradeBuilder)) *TradeBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *TradeBuilder) BuildDomain() (*trade.Trade, error) {
	buyer, err := b.Buyer.BuildDomain()
	if err != nil {
		return nil, err
	}
	it, err := b.Item.BuildDomain()
	if err != nil {
		return nil, err
	}
	return trade.Reconstruct(trade.Attrs{
		ID:           trade.ID(b.ID),
		Buyer:        buyer,
		Item:         it,
		CreatedTime:  b.CreatedTime,
		AcceptedTime: b.AcceptedTime,
		State:        b.State,
		CancelReason: b.CancelReason,
	})
}

func (b *TradeBuilder) BuildRecord() (remote.TradeRecord, error) {
	t, err := b.BuildDomain()
	if err != nil {
		return remote.TradeRecord{}, err
	}
	return remote.NewTradeRecord(t), nil
}

// Fluent builder methods
func (b *TradeBuilder) WithID(id int64) *TradeBuilder {
	b.ID = id
	return b
}

func (b *TradeBuilder) WithBuyer(id int64) *TradeBuilder {
	b.Buyer.WithID(id)
	return b
}

func (b *TradeBuilder) WithSeller(id int64) *TradeBuilder {
	b.Item.WithSeller(id)
	return b
}

func (b *TradeBuilder) WithItem(id int64) *TradeBuilder {
	b.Item.WithID(id)
	return b
}

func (b *TradeBuilder) WithState(s trade.State) *TradeBuilder {
	b.State = s
	if s == trade.StateProcessing {
		at := b.CreatedTime.Add(time.Hour)
		b.AcceptedTime = &at
	}
	return b
}

func (b *TradeBuilder) Cancelled(reason trade.CancelReason) *TradeBuilder {
	b.State = trade.StateCancelled
	b.CancelReason = &reason
	return b
}
