package item

import (
	"slices"
	"time"

	"market-client/internal/domain/user"
)

type Item struct {
	id          ID
	sellerID    user.ID
	name        string
	description string
	price       Price
	createdTime time.Time
	state       State
	tags        []Tag
	tagNames    []string
}

type Attrs struct {
	ID          ID
	SellerID    user.ID
	Name        string
	Description string
	Price       Price
	CreatedTime time.Time
	State       State
	Tags        []Tag
	TagNames    []string
}

func Reconstruct(a Attrs) (*Item, error) {
	if a.ID <= 0 {
		return nil, ErrInvalidItemID
	}
	if a.SellerID <= 0 {
		return nil, user.ErrInvalidUserID
	}
	if !a.State.IsValid() {
		return nil, ErrInvalidState
	}
	return &Item{
		id:          a.ID,
		sellerID:    a.SellerID,
		name:        a.Name,
		description: a.Description,
		price:       a.Price,
		createdTime: a.CreatedTime,
		state:       a.State,
		tags:        slices.Clone(a.Tags),
		tagNames:    slices.Clone(a.TagNames),
	}, nil
}

func (i *Item) IsSoldBy(viewer user.ID) bool {
	return viewer > 0 && i.sellerID == viewer
}

func (i *Item) ID() ID                 { return i.id }
func (i *Item) SellerID() user.ID      { return i.sellerID }
func (i *Item) Name() string           { return i.name }
func (i *Item) Description() string    { return i.description }
func (i *Item) Price() Price           { return i.price }
func (i *Item) CreatedTime() time.Time { return i.createdTime }
func (i *Item) State() State           { return i.state }
func (i *Item) Tags() []Tag            { return slices.Clone(i.tags) }
func (i *Item) TagNames() []string     { return slices.Clone(i.tagNames) }

// Detailed is the item detail view: the item plus its seller profile.
type Detailed struct {
	item     *Item
	seller   *user.User
	favCount int
}

func NewDetailed(it *Item, seller *user.User, favCount int) (*Detailed, error) {
	if it == nil || seller == nil {
		return nil, ErrSellerMismatch
	}
	if seller.ID() != it.SellerID() {
		return nil, ErrSellerMismatch
	}
	if favCount < 0 {
		favCount = 0
	}
	return &Detailed{item: it, seller: seller, favCount: favCount}, nil
}

func (d *Detailed) Item() *Item        { return d.item }
func (d *Detailed) Seller() *user.User { return d.seller }
func (d *Detailed) FavCount() int      { return d.favCount }

// PurchaseAvailability evaluates the gate for viewer against this item.
func (d *Detailed) PurchaseAvailability(viewer user.ID) Availability {
	return EvaluatePurchase(d.item.State(), viewer, d.seller.ID())
}
