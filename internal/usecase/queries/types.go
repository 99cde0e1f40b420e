package queries

import (
	"time"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
)

// TradeRow is one line of a transaction table as the viewer sees it.
type TradeRow struct {
	Trade   *trade.Trade
	Role    trade.Role
	Actions []trade.Action
}

// TradeListSnapshot is the state of one cached transaction list, delivered to watchers.
type TradeListSnapshot struct {
	Type         trade.TypeFilter
	Trades       []*trade.Trade
	Err          error
	IsLoading    bool
	IsValidating bool
	UpdatedAt    time.Time
	Version      uint64
}

// Rows filters the snapshot for viewer and role. The snapshot itself is never modified.
func (s TradeListSnapshot) Rows(viewer user.ID, role trade.Role) []TradeRow {
	return toRows(trade.Filter(s.Trades, viewer, role, s.Type), viewer)
}

// ItemDetailView is the item detail together with the purchase gate for the viewer.
type ItemDetailView struct {
	Detailed     *item.Detailed
	Availability item.Availability
}

// viewerState wraps the result of /user/me so that "nobody is signed in" is cacheable.
type viewerState struct {
	user *user.User
}

func toRows(trades []*trade.Trade, viewer user.ID) []TradeRow {
	rows := make([]TradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, TradeRow{
			Trade:   t,
			Role:    t.RoleOf(viewer),
			Actions: trade.AvailableActions(t, viewer),
		})
	}
	return rows
}
