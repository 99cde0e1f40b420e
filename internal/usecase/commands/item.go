package commands

import (
	"context"
	"log/slog"

	"market-client/internal/domain/item"
	"market-client/internal/infra/cache"
	"market-client/internal/pkg/errs"
	"market-client/internal/usecase/queries"
)

const NameInvalidItem = "invalid_item"

//go:generate mockgen -source=item.go -destination=../../../tests/mock/commands/item.go -package=commandsmock

type ItemCommands interface {
	Add(ctx context.Context, d item.Draft) (*item.Item, error)
	Update(ctx context.Context, id item.ID, p item.Patch) (*item.Item, error)
	Remove(ctx context.Context, id item.ID) error
}

type itemUseCaseImpl struct {
	writer ItemWriter
	items  queries.ItemQueries
	store  *cache.Store
	logger *slog.Logger
}

func NewItemUseCase(writer ItemWriter, items queries.ItemQueries, store *cache.Store, logger *slog.Logger) ItemCommands {
	return &itemUseCaseImpl{
		writer: writer,
		items:  items,
		store:  store,
		logger: logger,
	}
}

func (u *itemUseCaseImpl) Add(ctx context.Context, d item.Draft) (*item.Item, error) {
	if err := d.Validate(); err != nil {
		return nil, invalid(err, NameInvalidItem)
	}
	it, err := u.writer.AddItem(ctx, d)
	if err != nil {
		return nil, err
	}
	u.invalidateListings()
	return it, nil
}

// Update merges p into the cached item and resubmits it. An empty patch sends nothing.
func (u *itemUseCaseImpl) Update(ctx context.Context, id item.ID, p item.Patch) (*item.Item, error) {
	detail, err := u.items.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return detail.Item(), nil
	}
	draft, state, err := p.Apply(detail.Item())
	if err != nil {
		if errs.Is(err, item.ErrCannotMarkSold) {
			return nil, errs.WithKind(err, errs.KindIllegalTransition, "cannot_mark_sold", err.Error())
		}
		return nil, invalid(err, NameInvalidItem)
	}

	it, err := u.writer.UpdateItem(ctx, id, draft, state)
	if err != nil {
		return nil, err
	}
	u.store.Invalidate(queries.ItemDetailKey(id))
	u.invalidateListings()
	u.invalidateTrades()
	return it, nil
}

func (u *itemUseCaseImpl) Remove(ctx context.Context, id item.ID) error {
	if err := u.writer.RemoveItem(ctx, id); err != nil {
		return err
	}
	u.store.Invalidate(queries.ItemDetailKey(id))
	u.invalidateListings()
	u.invalidateTrades()
	return nil
}

func (u *itemUseCaseImpl) invalidateListings() {
	n := u.store.InvalidatePrefix(queries.PathItemList)
	n += u.store.InvalidatePrefix(queries.PathSearch)
	u.logger.Debug("item listings invalidated", slog.Int("keys", n))
}

// invalidateTrades marks every cached trade stale; trades embed their item.
func (u *itemUseCaseImpl) invalidateTrades() {
	n := u.store.InvalidatePrefix(queries.PathTradeList)
	n += u.store.InvalidatePrefix(queries.PathTrade)
	u.logger.Debug("trades invalidated after item edit", slog.Int("keys", n))
}

// invalid classifies a local input error.
func invalid(err error, name string) error {
	return errs.WithKind(err, errs.KindValidation, name, err.Error())
}
