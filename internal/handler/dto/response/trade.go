package response

import (
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/errs"
	"market-client/internal/usecase/queries"
)

type TradeResponse struct {
	ID            int64        `json:"id"`
	Buyer         UserResponse `json:"buyer"`
	Item          ItemResponse `json:"item"`
	SellerID      int64        `json:"sellerId"`
	State         string       `json:"state"`
	CancelReason  *string      `json:"cancelReason,omitempty"`
	CreatedTime   int64        `json:"createdTime"`
	AcceptedTime  *int64       `json:"acceptedTime,omitempty"`
	ConfirmedTime *int64       `json:"confirmedTime,omitempty"`
	CompletedTime *int64       `json:"completedTime,omitempty"`
}

type TradeRowResponse struct {
	Trade   TradeResponse `json:"trade"`
	Role    string        `json:"role"`
	Actions []string      `json:"actions"`
}

// TradeListEvent is one server-sent snapshot of a watched transaction list.
type TradeListEvent struct {
	Type         string             `json:"type"`
	Rows         []TradeRowResponse `json:"rows"`
	Error        *ErrorInfo         `json:"error,omitempty"`
	IsLoading    bool               `json:"isLoading"`
	IsValidating bool               `json:"isValidating"`
	UpdatedAt    int64              `json:"updatedAt,omitempty"`
	Version      uint64             `json:"version"`
}

type ErrorInfo struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

func FromTrade(t *trade.Trade) (TradeResponse, error) {
	var r TradeResponse
	if t == nil {
		return r, nil
	}
	if err := copyFrom(&r, t); err != nil {
		return TradeResponse{}, err
	}
	return r, nil
}

func FromTradeRows(rows []queries.TradeRow) ([]TradeRowResponse, error) {
	out := make([]TradeRowResponse, 0, len(rows))
	for _, row := range rows {
		tr, err := FromTrade(row.Trade)
		if err != nil {
			return nil, err
		}
		actions := make([]string, 0, len(row.Actions))
		for _, a := range row.Actions {
			actions = append(actions, string(a))
		}
		out = append(out, TradeRowResponse{
			Trade:   tr,
			Role:    string(row.Role),
			Actions: actions,
		})
	}
	return out, nil
}

// FromTradeListSnapshot never fails: a snapshot that cannot be mapped is reported
// through the event's error field with no rows.
func FromTradeListSnapshot(s queries.TradeListSnapshot, viewer user.ID, role trade.Role) TradeListEvent {
	ev := TradeListEvent{
		Type:         typeName(s.Type),
		IsLoading:    s.IsLoading,
		IsValidating: s.IsValidating,
		Version:      s.Version,
	}
	if !s.UpdatedAt.IsZero() {
		ev.UpdatedAt = clock.ToMillis(s.UpdatedAt)
	}
	rows, err := FromTradeRows(s.Rows(viewer, role))
	if err != nil {
		ev.Rows = []TradeRowResponse{}
		ev.Error = errorInfo(err)
		return ev
	}
	ev.Rows = rows
	if s.Err != nil {
		ev.Error = errorInfo(s.Err)
	}
	return ev
}

func errorInfo(err error) *ErrorInfo {
	return &ErrorInfo{
		Kind: errs.KindOf(err).String(),
		Name: errs.NameOf(err),
	}
}

func typeName(f trade.TypeFilter) string {
	if f == trade.TypeAll {
		return "all"
	}
	return string(f)
}
