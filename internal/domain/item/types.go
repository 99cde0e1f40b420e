package item

import "errors"

type ID int64

type State string

const (
	StateValid  State = "valid"
	StateSold   State = "sold"
	StateHidden State = "hidden"
)

var ErrInvalidState = errors.New("invalid item state")

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateValid, StateSold, StateHidden:
		return true
	default:
		return false
	}
}

func ParseState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", ErrInvalidState
	}
	return state, nil
}
