package queries

import (
	"context"
	"log/slog"

	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/infra/cache"
	"market-client/internal/pkg/errs"
)

var ErrTradeNotFound = errs.NewKind(errs.KindNotFound, "trade_not_found", "trade not found")

//go:generate mockgen -source=trade.go -destination=../../../tests/mock/queries/trade.go -package=queriesmock

type TradeQueries interface {
	List(ctx context.Context, typ trade.TypeFilter) ([]*trade.Trade, error)
	Rows(ctx context.Context, viewer user.ID, role trade.Role, typ trade.TypeFilter) ([]TradeRow, error)
	Watch(typ trade.TypeFilter, fn func(TradeListSnapshot)) *cache.Subscription
	Latest(ctx context.Context, id trade.ID) (*trade.Trade, error)
	Resync(ctx context.Context) error
}

type tradeQueriesImpl struct {
	reader TradeReader
	store  *cache.Store
	logger *slog.Logger
}

func NewTradeQueries(reader TradeReader, store *cache.Store, logger *slog.Logger) TradeQueries {
	return &tradeQueriesImpl{
		reader: reader,
		store:  store,
		logger: logger,
	}
}

func (q *tradeQueriesImpl) List(ctx context.Context, typ trade.TypeFilter) ([]*trade.Trade, error) {
	v, err := q.store.Fetch(ctx, TradeListKey(typ), q.listFetcher(typ), q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	trades, _ := v.([]*trade.Trade)
	return trades, nil
}

// Rows reads the list for typ and applies the role and type filters for viewer. Role
// filtering never touches the network.
func (q *tradeQueriesImpl) Rows(ctx context.Context, viewer user.ID, role trade.Role, typ trade.TypeFilter) ([]TradeRow, error) {
	trades, err := q.List(ctx, typ)
	if err != nil {
		return nil, err
	}
	return toRows(trade.Filter(trades, viewer, role, typ), viewer), nil
}

func (q *tradeQueriesImpl) Watch(typ trade.TypeFilter, fn func(TradeListSnapshot)) *cache.Subscription {
	return q.store.Subscribe(TradeListKey(typ), q.listFetcher(typ), q.store.DefaultOptions(), func(snap cache.Snapshot) {
		trades, _ := cache.Value[[]*trade.Trade](snap)
		fn(TradeListSnapshot{
			Type:         typ,
			Trades:       trades,
			Err:          snap.Err,
			IsLoading:    snap.IsLoading(),
			IsValidating: snap.IsValidating,
			UpdatedAt:    snap.UpdatedAt,
			Version:      snap.Version,
		})
	})
}

// Latest returns the latest known state of a trade. The per-trade entry is filled by
// every list fetch; on a miss the unfiltered list is read through the cache.
func (q *tradeQueriesImpl) Latest(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	v, err := q.store.Fetch(ctx, TradeKey(id), func(ctx context.Context) (any, error) {
		trades, err := q.List(ctx, trade.TypeAll)
		if err != nil {
			return nil, err
		}
		t, ok := trade.Find(trades, id)
		if !ok {
			return nil, ErrTradeNotFound
		}
		return t, nil
	}, q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	t, ok := v.(*trade.Trade)
	if !ok {
		return nil, ErrTradeNotFound
	}
	return t, nil
}

// Resync re-reads every cached transaction list and the unfiltered list, then waits for
// them. Per-trade entries are refreshed as a side effect of the list fetches.
func (q *tradeQueriesImpl) Resync(ctx context.Context) error {
	q.store.InvalidatePrefix(PathTrade)
	if err := q.store.RefreshPrefix(ctx, PathTradeList); err != nil {
		return err
	}
	_, err := q.List(ctx, trade.TypeAll)
	return err
}

func (q *tradeQueriesImpl) listFetcher(typ trade.TypeFilter) cache.Fetcher {
	return func(ctx context.Context) (any, error) {
		trades, err := q.reader.ListTransactions(ctx, typ)
		if err != nil {
			return nil, err
		}
		if trades == nil {
			trades = []*trade.Trade{}
		}
		for _, t := range trades {
			q.remember(t)
		}
		return trades, nil
	}
}

// remember stores t under its per-trade key unless a newer state is already cached.
func (q *tradeQueriesImpl) remember(t *trade.Trade) {
	q.store.Upsert(TradeKey(t.ID()), func(current any, ok bool) (any, bool) {
		if old, isTrade := current.(*trade.Trade); ok && isTrade && !trade.IsForward(old.State(), t.State()) {
			q.logger.Debug("older trade record ignored",
				slog.Int64("trade_id", int64(t.ID())),
				slog.String("cached", old.State().String()),
				slog.String("fetched", t.State().String()))
			return nil, false
		}
		return t, true
	})
}
