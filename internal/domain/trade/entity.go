package trade

import (
	"time"

	"market-client/internal/domain/item"
	"market-client/internal/domain/user"
)

type Trade struct {
	id            ID
	buyer         *user.User
	item          *item.Item
	createdTime   time.Time
	acceptedTime  *time.Time
	confirmedTime *time.Time
	completedTime *time.Time
	state         State
	cancelReason  *CancelReason
}

type Attrs struct {
	ID            ID
	Buyer         *user.User
	Item          *item.Item
	CreatedTime   time.Time
	AcceptedTime  *time.Time
	ConfirmedTime *time.Time
	CompletedTime *time.Time
	State         State
	CancelReason  *CancelReason
}

// Reconstruct builds a trade from an authoritative record and rejects records that
// break the cancel-reason invariant.
func Reconstruct(a Attrs) (*Trade, error) {
	if a.ID <= 0 {
		return nil, ErrInvalidTradeID
	}
	if a.Buyer == nil || a.Item == nil {
		return nil, ErrMissingParty
	}
	if a.Buyer.ID() == a.Item.SellerID() {
		return nil, ErrBuyerIsSeller
	}
	if !a.State.IsValid() {
		return nil, ErrInvalidState
	}
	if a.State == StateCancelled {
		if a.CancelReason == nil {
			return nil, ErrCancelWithoutReason
		}
		if !a.CancelReason.IsValid() {
			return nil, ErrInvalidReason
		}
	} else if a.CancelReason != nil {
		return nil, ErrReasonWithoutCancel
	}

	return &Trade{
		id:            a.ID,
		buyer:         a.Buyer,
		item:          a.Item,
		createdTime:   a.CreatedTime,
		acceptedTime:  a.AcceptedTime,
		confirmedTime: a.ConfirmedTime,
		completedTime: a.CompletedTime,
		state:         a.State,
		cancelReason:  a.CancelReason,
	}, nil
}

// RoleOf derives the viewer's role. The seller is identified through the item owner;
// a viewer who is neither party gets RoleNone.
func (t *Trade) RoleOf(viewer user.ID) Role {
	switch {
	case viewer <= 0:
		return RoleNone
	case t.buyer.ID() == viewer:
		return RoleBuyer
	case t.item.SellerID() == viewer:
		return RoleSeller
	default:
		return RoleNone
	}
}

// UpdatedTime is the latest lifecycle timestamp known for the trade.
func (t *Trade) UpdatedTime() time.Time {
	latest := t.createdTime
	for _, ts := range []*time.Time{t.acceptedTime, t.confirmedTime, t.completedTime} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	return latest
}

func (t *Trade) ID() ID                      { return t.id }
func (t *Trade) Buyer() *user.User           { return t.buyer }
func (t *Trade) Item() *item.Item            { return t.item }
func (t *Trade) SellerID() user.ID           { return t.item.SellerID() }
func (t *Trade) CreatedTime() time.Time      { return t.createdTime }
func (t *Trade) AcceptedTime() *time.Time    { return t.acceptedTime }
func (t *Trade) ConfirmedTime() *time.Time   { return t.confirmedTime }
func (t *Trade) CompletedTime() *time.Time   { return t.completedTime }
func (t *Trade) State() State                { return t.state }
func (t *Trade) CancelReason() *CancelReason { return t.cancelReason }
