package commands

import (
	"context"
	"log/slog"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/infra/cache"
	"market-client/internal/pkg/errs"
	"market-client/internal/usecase/queries"
)

// Purchase gate failures. They are raised before any trade request is sent.
var (
	ErrOwnItem         = errs.NewKind(errs.KindIllegalTransition, "own_item", item.ReasonOwnItem)
	ErrItemSold        = errs.NewKind(errs.KindIllegalTransition, "item_sold", item.ReasonAlreadySold)
	ErrItemUnavailable = errs.NewKind(errs.KindIllegalTransition, "item_unavailable", item.ReasonInvalidState)
)

const stackLines = 8

//go:generate mockgen -source=trade.go -destination=../../../tests/mock/commands/trade.go -package=commandsmock

type TradeCommands interface {
	Start(ctx context.Context, itemID item.ID) (*trade.Trade, error)
	Accept(ctx context.Context, id trade.ID) (*trade.Trade, error)
	Cancel(ctx context.Context, id trade.ID) (*trade.Trade, error)
	Confirm(ctx context.Context, id trade.ID) (*trade.Trade, error)
	Perform(ctx context.Context, id trade.ID, action trade.Action) (*trade.Trade, error)
}

type tradeUseCaseImpl struct {
	writer TradeWriter
	trades queries.TradeQueries
	items  queries.ItemQueries
	users  queries.UserQueries
	store  *cache.Store
	logger *slog.Logger
}

func NewTradeUseCase(
	writer TradeWriter,
	trades queries.TradeQueries,
	items queries.ItemQueries,
	users queries.UserQueries,
	store *cache.Store,
	logger *slog.Logger,
) TradeCommands {
	return &tradeUseCaseImpl{
		writer: writer,
		trades: trades,
		items:  items,
		users:  users,
		store:  store,
		logger: logger,
	}
}

// Start opens a trade on itemID. The viewer and the cached item are checked first; a
// closed gate fails without contacting the trade endpoint.
func (u *tradeUseCaseImpl) Start(ctx context.Context, itemID item.ID) (*trade.Trade, error) {
	viewer, err := u.users.Viewer(ctx)
	if err != nil {
		return nil, err
	}
	if viewer <= 0 {
		return nil, trade.ErrNotAuthenticated
	}

	detail, err := u.items.Detail(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := gateError(detail, viewer); err != nil {
		return nil, err
	}

	t, err := u.writer.StartTransaction(ctx, itemID)
	if err != nil {
		if errs.IsKind(err, errs.KindConflict) {
			u.resync(ctx)
			if _, rerr := u.items.RefreshDetail(ctx, itemID); rerr != nil {
				u.logger.Warn("item detail refresh failed", slog.Int64("item_id", int64(itemID)), slog.Any("error", rerr))
			}
			return nil, err
		}
		return nil, u.fail("start", err)
	}

	u.reconcile(t)
	return t, nil
}

func (u *tradeUseCaseImpl) Accept(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	return u.Perform(ctx, id, trade.ActionAccept)
}

func (u *tradeUseCaseImpl) Cancel(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	return u.Perform(ctx, id, trade.ActionCancel)
}

func (u *tradeUseCaseImpl) Confirm(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	return u.Perform(ctx, id, trade.ActionConfirm)
}

// Perform validates action against the latest known state of the trade, sends it and
// reconciles the cache with the authoritative result.
func (u *tradeUseCaseImpl) Perform(ctx context.Context, id trade.ID, action trade.Action) (*trade.Trade, error) {
	viewer, err := u.users.Viewer(ctx)
	if err != nil {
		return nil, err
	}
	if viewer <= 0 {
		return nil, trade.ErrNotAuthenticated
	}

	current, err := u.trades.Latest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := trade.CheckAction(current, viewer, action); err != nil {
		if errs.IsKind(err, errs.KindConflict) {
			u.resync(ctx)
		}
		return nil, err
	}

	var next *trade.Trade
	switch action {
	case trade.ActionAccept:
		next, err = u.writer.AcceptTransaction(ctx, id)
	case trade.ActionCancel:
		next, err = u.writer.CancelTransaction(ctx, id)
	case trade.ActionConfirm:
		next, err = u.writer.ConfirmTransaction(ctx, id)
	default:
		return nil, trade.ErrUnknownAction
	}
	if err != nil {
		if errs.IsKind(err, errs.KindConflict) {
			u.resync(ctx)
			return nil, err
		}
		return nil, u.fail(string(action), err)
	}

	u.reconcile(next)
	return next, nil
}

// reconcile writes the authoritative trade into every view that holds it, then marks
// everything derived from the trade or its item stale.
func (u *tradeUseCaseImpl) reconcile(t *trade.Trade) {
	u.store.Set(queries.TradeKey(t.ID()), t)
	u.store.MutatePrefix(queries.PathTradeList, func(current any) (any, bool) {
		trades, ok := current.([]*trade.Trade)
		if !ok {
			return nil, false
		}
		return trade.Replace(trades, t)
	})
	u.store.InvalidatePrefix(queries.PathTradeList)
	u.store.Invalidate(queries.ItemDetailKey(t.Item().ID()))
	u.store.InvalidatePrefix(queries.PathItemList)
	u.store.InvalidatePrefix(queries.PathSearch)

	u.logger.Debug("trade reconciled",
		slog.Int64("trade_id", int64(t.ID())),
		slog.String("state", t.State().String()))
}

func (u *tradeUseCaseImpl) resync(ctx context.Context) {
	if err := u.trades.Resync(ctx); err != nil {
		u.logger.Warn("trade resync failed", slog.Any("error", err))
	}
}

// fail logs unclassified failures with their stack and returns err unchanged.
func (u *tradeUseCaseImpl) fail(op string, err error) error {
	if errs.IsKind(err, errs.KindUnknown) {
		u.logger.Error("trade request failed",
			slog.String("op", op),
			slog.String("name", errs.NameOf(err)),
			slog.Any("error", err),
			slog.Any("stack", errs.ExtractStackLines(err, stackLines)))
	}
	return err
}

func gateError(d *item.Detailed, viewer user.ID) error {
	gate := d.PurchaseAvailability(viewer)
	if gate.Enabled() {
		return nil
	}
	switch gate.Reason {
	case item.ReasonOwnItem:
		return ErrOwnItem
	case item.ReasonAlreadySold:
		return ErrItemSold
	default:
		return ErrItemUnavailable
	}
}
