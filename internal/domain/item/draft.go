package item

import (
	"strings"

	"market-client/internal/pkg/patch"
)

// Draft is what a seller publishes or re-submits.
type Draft struct {
	Name        string
	Description string
	Price       Price
	TagNames    []string
}

func NewDraft(name, description string, price float64, tagNames []string) (Draft, error) {
	p, err := NewPrice(price)
	if err != nil {
		return Draft{}, err
	}
	d := Draft{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       p,
		TagNames:    normalizeTagNames(tagNames),
	}
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (d Draft) Validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	if len([]rune(d.Name)) > MaxNameLength {
		return ErrNameTooLong
	}
	if len([]rune(d.Description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if d.Price.Cents() < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Patch is a partial update. Nil fields keep the current value.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	TagNames    *[]string
	State       *State
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.TagNames == nil && p.State == nil
}

// Apply merges the patch into current. Only valid<->hidden state changes are allowed.
func (p Patch) Apply(current *Item) (Draft, State, error) {
	price := current.Price()
	if p.Price != nil {
		np, err := NewPrice(*p.Price)
		if err != nil {
			return Draft{}, "", err
		}
		price = np
	}

	state := patch.Coalesce(p.State, current.State())
	if patch.Changed(p.State, current.State()) {
		if state == StateSold || current.State() == StateSold {
			return Draft{}, "", ErrCannotMarkSold
		}
		if !state.IsValid() {
			return Draft{}, "", ErrInvalidState
		}
	}

	d := Draft{
		Name:        strings.TrimSpace(patch.Coalesce(p.Name, current.Name())),
		Description: strings.TrimSpace(patch.Coalesce(p.Description, current.Description())),
		Price:       price,
		TagNames:    normalizeTagNames(patch.Coalesce(p.TagNames, current.TagNames())),
	}
	if err := d.Validate(); err != nil {
		return Draft{}, "", err
	}
	return d, state, nil
}

func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
