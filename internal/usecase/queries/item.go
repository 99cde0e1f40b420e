package queries

import (
	"context"

	"market-client/internal/domain/item"
	"market-client/internal/domain/user"
	"market-client/internal/infra/cache"
	"market-client/internal/pkg/errs"
)

var ErrInvalidSearchMode = errs.NewKind(errs.KindValidation, "invalid_search_mode", "search mode must be name or tags")

//go:generate mockgen -source=item.go -destination=../../../tests/mock/queries/item.go -package=queriesmock

type ItemQueries interface {
	Detail(ctx context.Context, id item.ID) (*item.Detailed, error)
	DetailView(ctx context.Context, id item.ID, viewer user.ID) (*ItemDetailView, error)
	RefreshDetail(ctx context.Context, id item.ID) (*item.Detailed, error)
	UserItems(ctx context.Context, q item.ListQuery) (*item.Page, error)
	Search(ctx context.Context, q item.SearchQuery) (*item.Page, error)
}

type itemQueriesImpl struct {
	reader ItemReader
	store  *cache.Store
}

func NewItemQueries(reader ItemReader, store *cache.Store) ItemQueries {
	return &itemQueriesImpl{
		reader: reader,
		store:  store,
	}
}

func (q *itemQueriesImpl) Detail(ctx context.Context, id item.ID) (*item.Detailed, error) {
	v, err := q.store.Fetch(ctx, ItemDetailKey(id), q.detailFetcher(id), q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return v.(*item.Detailed), nil
}

// DetailView evaluates the purchase gate against the cached detail.
func (q *itemQueriesImpl) DetailView(ctx context.Context, id item.ID, viewer user.ID) (*ItemDetailView, error) {
	d, err := q.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ItemDetailView{
		Detailed:     d,
		Availability: d.PurchaseAvailability(viewer),
	}, nil
}

// RefreshDetail drops the cached detail and waits for a fresh read.
func (q *itemQueriesImpl) RefreshDetail(ctx context.Context, id item.ID) (*item.Detailed, error) {
	q.store.Invalidate(ItemDetailKey(id))
	return q.Detail(ctx, id)
}

func (q *itemQueriesImpl) UserItems(ctx context.Context, lq item.ListQuery) (*item.Page, error) {
	lq.Pagination = lq.Pagination.Normalize()
	v, err := q.store.Fetch(ctx, ItemListKey(lq), func(ctx context.Context) (any, error) {
		return q.reader.ListUserItems(ctx, lq)
	}, q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return v.(*item.Page), nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, sq item.SearchQuery) (*item.Page, error) {
	if !sq.Mode.IsValid() {
		return nil, ErrInvalidSearchMode
	}
	sq.Pagination = sq.Pagination.Normalize()
	v, err := q.store.Fetch(ctx, SearchKey(sq), func(ctx context.Context) (any, error) {
		return q.reader.SearchItems(ctx, sq)
	}, q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return v.(*item.Page), nil
}

func (q *itemQueriesImpl) detailFetcher(id item.ID) cache.Fetcher {
	return func(ctx context.Context) (any, error) {
		return q.reader.GetItemDetailed(ctx, id)
	}
}
