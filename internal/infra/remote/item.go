package remote

import (
	"context"
	"net/url"
	"strconv"

	"market-client/internal/domain/item"
)

func (cl *Client) ListUserItems(ctx context.Context, q item.ListQuery) (*item.Page, error) {
	params := url.Values{
		"ignore_sold": {strconv.FormatBool(q.IgnoreSold)},
		"time_desc":   {strconv.FormatBool(q.TimeDesc)},
	}
	if q.UserID != nil {
		params.Set("user_id", strconv.FormatInt(int64(*q.UserID), 10))
	}
	rec, err := fetch[ItemPageRecord](ctx, cl, post("/item", params, paginationRequest{Pagination: q.Pagination.Normalize()}))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) GetItemDetailed(ctx context.Context, id item.ID) (*item.Detailed, error) {
	rec, err := fetch[ItemDetailedRecord](ctx, cl, get("/item/detailed", itemQuery(id)))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) AddItem(ctx context.Context, d item.Draft) (*item.Item, error) {
	rec, err := fetch[ItemRecord](ctx, cl, post("/item/add", nil, draftRequest(0, d, "")))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

// UpdateItem replaces the editable fields of an item. State may only move between valid
// and hidden; the backend rejects anything else.
func (cl *Client) UpdateItem(ctx context.Context, id item.ID, d item.Draft, state item.State) (*item.Item, error) {
	rec, err := fetch[ItemRecord](ctx, cl, post("/item/update", nil, draftRequest(id, d, state)))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) RemoveItem(ctx context.Context, id item.ID) error {
	return exec(ctx, cl, del("/item/remove", itemIDRequest{ItemID: int64(id)}))
}

func itemQuery(id item.ID) url.Values {
	return url.Values{"item_id": {strconv.FormatInt(int64(id), 10)}}
}

func draftRequest(id item.ID, d item.Draft, state item.State) ItemDraftRequest {
	tags := d.TagNames
	if tags == nil {
		tags = []string{}
	}
	return ItemDraftRequest{
		ItemID:      int64(id),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price.Amount(),
		TagNameList: tags,
		State:       string(state),
	}
}
