package trade

import "errors"

type ID int64

type State string

const (
	StatePending    State = "pending"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StateCancelled  State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateProcessing, StateSuccess, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateCancelled
}

func (s State) IsActive() bool {
	return s == StatePending || s == StateProcessing
}

// rank orders states along the lifecycle; both terminal states share the last rank.
func (s State) rank() int {
	switch s {
	case StatePending:
		return 0
	case StateProcessing:
		return 1
	default:
		return 2
	}
}

type CancelReason string

const (
	ReasonSellerRejected       CancelReason = "seller_rejected"
	ReasonSellerAcceptTimeout  CancelReason = "seller_accept_timeout"
	ReasonCancelledByBuyer     CancelReason = "cancelled_by_buyer"
	ReasonCancelledBySeller    CancelReason = "cancelled_by_seller"
	ReasonSellerConfirmTimeout CancelReason = "seller_confirm_timeout"
)

func (r CancelReason) IsValid() bool {
	switch r {
	case ReasonSellerRejected, ReasonSellerAcceptTimeout, ReasonCancelledByBuyer,
		ReasonCancelledBySeller, ReasonSellerConfirmTimeout:
		return true
	default:
		return false
	}
}

// IsTimeout reports reasons materialized by the backend rather than by a party.
func (r CancelReason) IsTimeout() bool {
	return r == ReasonSellerAcceptTimeout || r == ReasonSellerConfirmTimeout
}

// Role is the viewer's relation to a trade.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleNone   Role = "none"
)

// Action is a transition a party may request.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionCancel  Action = "cancel"
	ActionConfirm Action = "confirm"
)

var (
	ErrInvalidTradeID      = errors.New("invalid trade id")
	ErrInvalidState        = errors.New("invalid trade state")
	ErrInvalidReason       = errors.New("invalid cancel reason")
	ErrReasonWithoutCancel = errors.New("cancel reason present on a trade that is not cancelled")
	ErrCancelWithoutReason = errors.New("cancelled trade is missing its cancel reason")
	ErrMissingParty        = errors.New("trade is missing buyer or item")
	ErrBuyerIsSeller       = errors.New("buyer cannot be the seller of the traded item")
	ErrInvalidRole         = errors.New("invalid role filter")
	ErrInvalidTypeFilter   = errors.New("invalid type filter")
)
