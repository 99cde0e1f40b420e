package item

import (
	"errors"
	"math"
	"strings"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 2000
	DefaultPageSize      = 20
	MaxPageSize          = 200
)

var (
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrEmptyName          = errors.New("item name cannot be empty")
	ErrNameTooLong        = errors.New("item name exceeds maximum length")
	ErrDescriptionTooLong = errors.New("item description exceeds maximum length")
	ErrEmptyTagName       = errors.New("tag name cannot be empty")
	ErrCannotMarkSold     = errors.New("items become sold only through a completed trade")
	ErrInvalidItemID      = errors.New("invalid item id")
	ErrSellerMismatch     = errors.New("detailed seller does not match item owner")
)

// Price is held in cents; the backend exchanges decimal currency units.
type Price struct {
	cents int64
}

func NewPrice(amount float64) (Price, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Price{}, ErrNegativePrice
	}
	return Price{cents: int64(math.Round(amount * 100))}, nil
}

func PriceFromCents(cents int64) (Price, error) {
	if cents < 0 {
		return Price{}, ErrNegativePrice
	}
	return Price{cents: cents}, nil
}

func (p Price) Cents() int64 {
	return p.cents
}

func (p Price) Amount() float64 {
	return float64(p.cents) / 100.0
}

type Tag struct {
	id      int64
	tagType string
	name    string
}

func NewTag(id int64, tagType, name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrEmptyTagName
	}
	return Tag{id: id, tagType: tagType, name: name}, nil
}

func (t Tag) ID() int64    { return t.id }
func (t Tag) Type() string { return t.tagType }
func (t Tag) Name() string { return t.name }

type Pagination struct {
	Size  int `json:"size"`
	Index int `json:"index"`
}

// Normalize applies the default page size and clamps to MaxPageSize.
func (p Pagination) Normalize() Pagination {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Index < 0 {
		p.Index = 0
	}
	return p
}

type Page struct {
	Total      int
	Pagination Pagination
	Items      []*Item
}
