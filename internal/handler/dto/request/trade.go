package request

import (
	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
)

type StartTradeRequest struct {
	ItemID int64 `json:"itemId" binding:"required,gt=0"`
}

func (r StartTradeRequest) GetItemID() item.ID {
	return item.ID(r.ItemID)
}

type ListTradesQuery struct {
	Role string `form:"role" binding:"omitempty,oneof=buyer seller"`
	Type string `form:"type" binding:"omitempty,oneof=active pending success completed all"`
}

// Parse resolves the filters. An empty role means both roles; an empty type means all.
func (q ListTradesQuery) Parse() (trade.Role, trade.TypeFilter, error) {
	role, err := trade.ParseRole(q.Role)
	if err != nil {
		return "", "", err
	}
	typ, err := trade.ParseTypeFilter(q.Type)
	if err != nil {
		return "", "", err
	}
	return role, typ, nil
}

type WatchTradesQuery struct {
	Role string `form:"role" binding:"omitempty,oneof=buyer seller"`
	Type string `form:"type" binding:"omitempty,oneof=active pending success completed all"`
}

func (q WatchTradesQuery) Parse() (trade.Role, trade.TypeFilter, error) {
	return ListTradesQuery(q).Parse()
}
