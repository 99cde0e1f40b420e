package trade

import (
	"strings"

	"market-client/internal/domain/user"
)

// TypeFilter is the type component of a transaction list query. It is also sent to the
// backend as the list filter.
type TypeFilter string

const (
	TypeActive  TypeFilter = "active"
	TypePending TypeFilter = "pending"
	TypeSuccess TypeFilter = "success"
	TypeAll     TypeFilter = ""
)

func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TypeAll, nil
	case "active":
		return TypeActive, nil
	case "pending":
		return TypePending, nil
	case "success", "completed":
		return TypeSuccess, nil
	default:
		return "", ErrInvalidTypeFilter
	}
}

func (f TypeFilter) Matches(s State) bool {
	switch f {
	case TypeActive:
		return s.IsActive()
	case TypePending:
		return s == StatePending
	case TypeSuccess:
		return s == StateSuccess
	case TypeAll:
		return true
	default:
		return false
	}
}

// Param is the backend filter list for this type; TypeAll sends none.
func (f TypeFilter) Param() []string {
	if f == TypeAll {
		return nil
	}
	return []string{string(f)}
}

// ParseRole accepts buyer and seller. Empty means no role filter.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "buyer":
		return RoleBuyer, nil
	case "seller":
		return RoleSeller, nil
	default:
		return "", ErrInvalidRole
	}
}

// Filter applies role and type client-side to an already fetched list. An empty role
// keeps every trade the viewer is a party to.
func Filter(trades []*Trade, viewer user.ID, role Role, typ TypeFilter) []*Trade {
	out := make([]*Trade, 0, len(trades))
	for _, t := range trades {
		r := t.RoleOf(viewer)
		if r == RoleNone {
			continue
		}
		if role != "" && r != role {
			continue
		}
		if !typ.Matches(t.State()) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Replace returns a copy of trades with the entry of the same ID swapped for next.
func Replace(trades []*Trade, next *Trade) ([]*Trade, bool) {
	out := make([]*Trade, len(trades))
	copy(out, trades)
	for i, t := range out {
		if t.ID() == next.ID() {
			out[i] = next
			return out, true
		}
	}
	return out, false
}

func Find(trades []*Trade, id ID) (*Trade, bool) {
	for _, t := range trades {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}
