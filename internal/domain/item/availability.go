package item

import "market-client/internal/domain/user"

const (
	LabelBuy  = "buy"
	LabelSold = "sold"

	ReasonOwnItem      = "cannot buy own item"
	ReasonAlreadySold  = "already sold"
	ReasonInvalidState = "invalid state"
)

// Availability drives the purchase action and short-circuits startTransaction.
type Availability struct {
	ActionLabel string `json:"actionLabel"`
	Disabled    bool   `json:"disabled"`
	Reason      string `json:"reason,omitempty"`
}

func (a Availability) Enabled() bool {
	return !a.Disabled
}

// EvaluatePurchase is a pure function of the item state and the viewer/seller relation.
// An anonymous viewer (zero ID) is never the seller; authentication is checked by the caller.
func EvaluatePurchase(state State, viewer, seller user.ID) Availability {
	switch {
	case viewer > 0 && viewer == seller:
		return Availability{ActionLabel: LabelBuy, Disabled: true, Reason: ReasonOwnItem}
	case state == StateSold:
		return Availability{ActionLabel: LabelSold, Disabled: true, Reason: ReasonAlreadySold}
	case state == StateValid:
		return Availability{ActionLabel: LabelBuy}
	default:
		return Availability{ActionLabel: LabelBuy, Disabled: true, Reason: ReasonInvalidState}
	}
}
