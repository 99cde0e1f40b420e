package remote

import (
	"context"
	"net/url"

	"market-client/internal/domain/item"
	"market-client/internal/pkg/errs"
)

func (cl *Client) SearchItemsByName(ctx context.Context, keyword string, page item.Pagination) (*item.Page, error) {
	return cl.search(ctx, "/search/item/by_name", keyword, page)
}

func (cl *Client) SearchItemsByTags(ctx context.Context, keyword string, page item.Pagination) (*item.Page, error) {
	return cl.search(ctx, "/search/item/by_tags", keyword, page)
}

// SearchItems dispatches on the query mode.
func (cl *Client) SearchItems(ctx context.Context, q item.SearchQuery) (*item.Page, error) {
	switch q.Mode {
	case item.SearchByName:
		return cl.SearchItemsByName(ctx, q.Keyword, q.Pagination)
	case item.SearchByTags:
		return cl.SearchItemsByTags(ctx, q.Keyword, q.Pagination)
	default:
		return nil, errs.NewKind(errs.KindValidation, "invalid_search_mode", "unknown search mode "+string(q.Mode))
	}
}

func (cl *Client) search(ctx context.Context, path, keyword string, page item.Pagination) (*item.Page, error) {
	rec, err := fetch[ItemPageRecord](ctx, cl, post(path, url.Values{"keyword": {keyword}}, page.Normalize()))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}
