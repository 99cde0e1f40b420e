//go:build unit || e2e

package builder

import (
	"time"

	"market-client/internal/domain/item"
	"market-client/internal/domain/user"
)

type ItemBuilder struct {
	ID          int64
	SellerID    int64
	Name        string
	Description string
	Price       float64
	CreatedTime time.Time
	State       item.State
	TagNames    []string
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          100,
		SellerID:    9,
		Name:        "bike",
		Description: "city bike, barely used",
		Price:       120.5,
		CreatedTime: baseTime,
		State:       item.StateValid,
		TagNames:    []string{"sport"},
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ItemBuilder) BuildDomain() (*item.Item, error) {
	price, err := item.NewPrice(b.Price)
	if err != nil {
		return nil, err
	}
	tags := make([]item.Tag, 0, len(b.TagNames))
	for i, name := range b.TagNames {
		tag, err := item.NewTag(int64(i+1), "category", name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return item.Reconstruct(item.Attrs{
		ID:          item.ID(b.ID),
		SellerID:    user.ID(b.SellerID),
		Name:        b.Name,
		Description: b.Description,
		Price:       price,
		CreatedTime: b.CreatedTime,
		State:       b.State,
		Tags:        tags,
		TagNames:    b.TagNames,
	})
}

func (b *ItemBuilder) BuildDraft() (item.Draft, error) {
	return item.NewDraft(b.Name, b.Description, b.Price, b.TagNames)
}

// Fluent builder methods
func (b *ItemBuilder) WithID(id int64) *ItemBuilder {
	b.ID = id
	return b
}

func (b *ItemBuilder) WithSeller(id int64) *ItemBuilder {
	b.SellerID = id
	return b
}

func (b *ItemBuilder) WithState(s item.State) *ItemBuilder {
	b.State = s
	return b
}

func (b *ItemBuilder) WithPrice(p float64) *ItemBuilder {
	b.Price = p
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.Name = name
	return b
}
