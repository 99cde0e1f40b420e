package remote

import (
	"time"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/errs"
)

// Wire records mirror the backend JSON. Required fields are enforced by the decoder.

type UserRecord struct {
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	Username    string  `json:"username" validate:"required"`
	Description *string `json:"description"`
	CampusID    *int64  `json:"campus_id"`
	CreatedTime int64   `json:"created_time" validate:"required"`
}

type ContactInfoRecord struct {
	ContactInfoID int64  `json:"contact_info_id" validate:"required,gt=0"`
	ContactType   string `json:"contact_type" validate:"required,oneof=email phone qq wechat"`
	ContactInfo   string `json:"contact_info" validate:"required"`
	Verified      bool   `json:"verified"`
}

type TagRecord struct {
	TagID   int64  `json:"tag_id"`
	TagType string `json:"tag_type"`
	Name    string `json:"name" validate:"required"`
}

type ItemRecord struct {
	ItemID      int64       `json:"item_id" validate:"required,gt=0"`
	UserID      int64       `json:"user_id" validate:"required,gt=0"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Price       *float64    `json:"price" validate:"required,gte=0"`
	CreatedTime int64       `json:"created_time" validate:"required"`
	State       string      `json:"state" validate:"required,oneof=valid sold hidden"`
	Tags        []TagRecord `json:"tags" validate:"dive"`
	TagNameList []string    `json:"tag_name_list"`
}

type ItemDetailedRecord struct {
	ItemRecord
	Seller   *UserRecord `json:"seller" validate:"required"`
	FavCount int         `json:"fav_count" validate:"gte=0"`
}

type PaginationRecord struct {
	Size  int `json:"size" validate:"gte=0"`
	Index int `json:"index" validate:"gte=0"`
}

type ItemPageRecord struct {
	Total      int              `json:"total" validate:"gte=0"`
	Pagination PaginationRecord `json:"pagination"`
	Data       []ItemRecord     `json:"data" validate:"dive"`
}

type TradeRecord struct {
	TradeID       int64       `json:"trade_id" validate:"required,gt=0"`
	Buyer         *UserRecord `json:"buyer" validate:"required"`
	Item          *ItemRecord `json:"item" validate:"required"`
	CreatedTime   int64       `json:"created_time" validate:"required"`
	AcceptedTime  *int64      `json:"accepted_time,omitempty"`
	ConfirmedTime *int64      `json:"confirmed_time,omitempty"`
	CompletedTime *int64      `json:"completed_time,omitempty"`
	State         string      `json:"state" validate:"required,oneof=pending processing success cancelled"`
	CancelReason  *string     `json:"cancel_reason,omitempty" validate:"omitempty,oneof=seller_rejected seller_accept_timeout cancelled_by_buyer cancelled_by_seller seller_confirm_timeout"`
}

// Request bodies.

type tradeIDRequest struct {
	TradeID int64 `json:"trade_id"`
}

type itemIDRequest struct {
	ItemID int64 `json:"item_id"`
}

type paginationRequest struct {
	Pagination item.Pagination `json:"pagination"`
}

type ItemDraftRequest struct {
	ItemID      int64    `json:"item_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	TagNameList []string `json:"tag_name_list"`
	State       string   `json:"state,omitempty"`
}

type descriptionRequest struct {
	Description string `json:"description"`
}

type ContactInfoRequest struct {
	ContactInfoID int64  `json:"contact_info_id,omitempty"`
	ContactType   string `json:"contact_type,omitempty"`
	ContactInfo   string `json:"contact_info,omitempty"`
}

// Conversions to domain. A record that passes tag validation but breaks a domain rule
// is just as malformed.

func malformed(err error, what string) error {
	return errs.WithKind(err, errs.KindUnknown, NameMalformedResponse, "malformed "+what+" in response")
}

func (r UserRecord) ToDomain() (*user.User, error) {
	u, err := user.Reconstruct(user.ID(r.UserID), r.Username, r.Description, r.CampusID, clock.FromMillis(r.CreatedTime))
	if err != nil {
		return nil, malformed(err, "user")
	}
	return u, nil
}

func (r ContactInfoRecord) ToDomain() (user.ContactInfo, error) {
	c, err := user.ReconstructContactInfo(r.ContactInfoID, r.ContactType, r.ContactInfo, r.Verified)
	if err != nil {
		return user.ContactInfo{}, malformed(err, "contact info")
	}
	return c, nil
}

func (r ItemRecord) ToDomain() (*item.Item, error) {
	state, err := item.ParseState(r.State)
	if err != nil {
		return nil, malformed(err, "item")
	}
	var amount float64
	if r.Price != nil {
		amount = *r.Price
	}
	price, err := item.NewPrice(amount)
	if err != nil {
		return nil, malformed(err, "item")
	}
	tags := make([]item.Tag, 0, len(r.Tags))
	for _, tr := range r.Tags {
		tag, err := item.NewTag(tr.TagID, tr.TagType, tr.Name)
		if err != nil {
			return nil, malformed(err, "item tag")
		}
		tags = append(tags, tag)
	}
	it, err := item.Reconstruct(item.Attrs{
		ID:          item.ID(r.ItemID),
		SellerID:    user.ID(r.UserID),
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		CreatedTime: clock.FromMillis(r.CreatedTime),
		State:       state,
		Tags:        tags,
		TagNames:    r.TagNameList,
	})
	if err != nil {
		return nil, malformed(err, "item")
	}
	return it, nil
}

func (r ItemDetailedRecord) ToDomain() (*item.Detailed, error) {
	it, err := r.ItemRecord.ToDomain()
	if err != nil {
		return nil, err
	}
	seller, err := r.Seller.ToDomain()
	if err != nil {
		return nil, err
	}
	d, err := item.NewDetailed(it, seller, r.FavCount)
	if err != nil {
		return nil, malformed(err, "item detail")
	}
	return d, nil
}

func (r ItemPageRecord) ToDomain() (*item.Page, error) {
	items := make([]*item.Item, 0, len(r.Data))
	for _, ir := range r.Data {
		it, err := ir.ToDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return &item.Page{
		Total:      r.Total,
		Pagination: item.Pagination{Size: r.Pagination.Size, Index: r.Pagination.Index},
		Items:      items,
	}, nil
}

func (r TradeRecord) ToDomain() (*trade.Trade, error) {
	buyer, err := r.Buyer.ToDomain()
	if err != nil {
		return nil, err
	}
	it, err := r.Item.ToDomain()
	if err != nil {
		return nil, err
	}
	var reason *trade.CancelReason
	if r.CancelReason != nil {
		cr := trade.CancelReason(*r.CancelReason)
		reason = &cr
	}
	t, err := trade.Reconstruct(trade.Attrs{
		ID:            trade.ID(r.TradeID),
		Buyer:         buyer,
		Item:          it,
		CreatedTime:   clock.FromMillis(r.CreatedTime),
		AcceptedTime:  optionalTime(r.AcceptedTime),
		ConfirmedTime: optionalTime(r.ConfirmedTime),
		CompletedTime: optionalTime(r.CompletedTime),
		State:         trade.State(r.State),
		CancelReason:  reason,
	})
	if err != nil {
		return nil, malformed(err, "trade")
	}
	return t, nil
}

func tradesToDomain(records []TradeRecord) ([]*trade.Trade, error) {
	out := make([]*trade.Trade, 0, len(records))
	for _, r := range records {
		t, err := r.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func optionalTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := clock.FromMillis(*ms)
	return &t
}

func optionalMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := clock.ToMillis(*t)
	return &ms
}

// Conversions from domain, used to serve records (gateway fixtures, fake backends).

func NewUserRecord(u *user.User) UserRecord {
	return UserRecord{
		UserID:      int64(u.ID()),
		Username:    u.Username(),
		Description: u.Description(),
		CampusID:    u.CampusID(),
		CreatedTime: clock.ToMillis(u.CreatedTime()),
	}
}

func NewItemRecord(it *item.Item) ItemRecord {
	price := it.Price().Amount()
	tags := make([]TagRecord, 0, len(it.Tags()))
	for _, t := range it.Tags() {
		tags = append(tags, TagRecord{TagID: t.ID(), TagType: t.Type(), Name: t.Name()})
	}
	return ItemRecord{
		ItemID:      int64(it.ID()),
		UserID:      int64(it.SellerID()),
		Name:        it.Name(),
		Description: it.Description(),
		Price:       &price,
		CreatedTime: clock.ToMillis(it.CreatedTime()),
		State:       string(it.State()),
		Tags:        tags,
		TagNameList: it.TagNames(),
	}
}

func NewTradeRecord(t *trade.Trade) TradeRecord {
	buyer := NewUserRecord(t.Buyer())
	it := NewItemRecord(t.Item())
	var reason *string
	if cr := t.CancelReason(); cr != nil {
		s := string(*cr)
		reason = &s
	}
	return TradeRecord{
		TradeID:       int64(t.ID()),
		Buyer:         &buyer,
		Item:          &it,
		CreatedTime:   clock.ToMillis(t.CreatedTime()),
		AcceptedTime:  optionalMillis(t.AcceptedTime()),
		ConfirmedTime: optionalMillis(t.ConfirmedTime()),
		CompletedTime: optionalMillis(t.CompletedTime()),
		State:         string(t.State()),
		CancelReason:  reason,
	}
}
