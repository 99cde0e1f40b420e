package trade

import (
	"slices"

	"market-client/internal/domain/user"
	"market-client/internal/pkg/errs"
)

// Pre-check failures. Wrong party or premature requests are illegal; a request against a
// trade that has already moved past the action's source state is a conflict, since only
// the counterparty or a backend timeout can have moved it.
var (
	ErrNotAuthenticated = errs.NewKind(errs.KindIllegalTransition, "not_authenticated", "sign in before trading")
	ErrNotParty         = errs.NewKind(errs.KindIllegalTransition, "not_trade_party", "viewer is not a party to this trade")
	ErrRoleNotAllowed   = errs.NewKind(errs.KindIllegalTransition, "role_not_allowed", "viewer's role cannot perform this action")
	ErrNotReady         = errs.NewKind(errs.KindIllegalTransition, "trade_not_ready", "trade has not reached the state this action requires")
	ErrUnknownAction    = errs.NewKind(errs.KindIllegalTransition, "unknown_action", "unknown trade action")
	ErrStaleState       = errs.NewKind(errs.KindConflict, "trade_state_changed", "trade state already changed")
)

var edges = map[State][]State{
	StatePending:    {StateProcessing, StateCancelled},
	StateProcessing: {StateSuccess, StateCancelled},
}

type rule struct {
	from  []State
	roles []Role
}

var rules = map[Action]rule{
	ActionAccept:  {from: []State{StatePending}, roles: []Role{RoleSeller}},
	ActionConfirm: {from: []State{StateProcessing}, roles: []Role{RoleBuyer}},
	ActionCancel:  {from: []State{StatePending, StateProcessing}, roles: []Role{RoleBuyer, RoleSeller}},
}

// CanTransition reports whether to is a direct successor of from.
func CanTransition(from, to State) bool {
	return slices.Contains(edges[from], to)
}

// IsForward reports whether next is from itself or reachable from it. A record that is
// not forward of a cached one is an older read and must not replace it.
func IsForward(from, next State) bool {
	if from == next {
		return true
	}
	for _, s := range edges[from] {
		if IsForward(s, next) {
			return true
		}
	}
	return false
}

// CheckAction validates a transition request against the latest known trade state.
func CheckAction(t *Trade, viewer user.ID, a Action) error {
	r, ok := rules[a]
	if !ok {
		return ErrUnknownAction
	}
	if viewer <= 0 {
		return ErrNotAuthenticated
	}
	role := t.RoleOf(viewer)
	if role == RoleNone {
		return ErrNotParty
	}
	if !slices.Contains(r.roles, role) {
		return ErrRoleNotAllowed
	}
	if slices.Contains(r.from, t.State()) {
		return nil
	}
	if t.State().IsTerminal() || t.State().rank() > maxRank(r.from) {
		return ErrStaleState
	}
	return ErrNotReady
}

// AvailableActions lists what the viewer may request right now, in display order.
func AvailableActions(t *Trade, viewer user.ID) []Action {
	var out []Action
	for _, a := range []Action{ActionAccept, ActionConfirm, ActionCancel} {
		if CheckAction(t, viewer, a) == nil {
			out = append(out, a)
		}
	}
	return out
}

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := rules[a]; !ok {
		return "", ErrUnknownAction
	}
	return a, nil
}

func maxRank(states []State) int {
	m := 0
	for _, s := range states {
		if s.rank() > m {
			m = s.rank()
		}
	}
	return m
}
