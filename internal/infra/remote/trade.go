package remote

import (
	"context"
	"net/url"
	"strconv"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
)

func (cl *Client) StartTransaction(ctx context.Context, itemID item.ID) (*trade.Trade, error) {
	rec, err := fetch[TradeRecord](ctx, cl, post("/trade/start", nil, itemIDRequest{ItemID: int64(itemID)}))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) AcceptTransaction(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	rec, err := fetch[TradeRecord](ctx, cl, get("/trade/accept", tradeQuery(id)))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) CancelTransaction(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	rec, err := fetch[TradeRecord](ctx, cl, post("/trade/cancel", nil, tradeIDRequest{TradeID: int64(id)}))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) ConfirmTransaction(ctx context.Context, id trade.ID) (*trade.Trade, error) {
	rec, err := fetch[TradeRecord](ctx, cl, get("/trade/confirm", tradeQuery(id)))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

// ListTransactions returns every trade the viewer is a party to, narrowed by typ.
func (cl *Client) ListTransactions(ctx context.Context, typ trade.TypeFilter) ([]*trade.Trade, error) {
	q := url.Values{}
	for _, f := range typ.Param() {
		q.Add("filter", f)
	}
	recs, err := fetch[[]TradeRecord](ctx, cl, get("/trade/get", q))
	if err != nil {
		return nil, err
	}
	return tradesToDomain(recs)
}

func tradeQuery(id trade.ID) url.Values {
	return url.Values{"trade_id": {strconv.FormatInt(int64(id), 10)}}
}
