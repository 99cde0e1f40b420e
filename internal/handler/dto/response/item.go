package response

import (
	"market-client/internal/domain/item"
	"market-client/internal/usecase/queries"
)

type ItemResponse struct {
	ID          int64    `json:"id"`
	SellerID    int64    `json:"sellerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CreatedTime int64    `json:"createdTime"`
	State       string   `json:"state"`
	TagNames    []string `json:"tagNames"`
}

type AvailabilityResponse struct {
	ActionLabel string `json:"actionLabel"`
	Disabled    bool   `json:"disabled"`
	Reason      string `json:"reason,omitempty"`
}

type ItemDetailResponse struct {
	Item         ItemResponse         `json:"item"`
	Seller       UserResponse         `json:"seller"`
	FavCount     int                  `json:"favCount"`
	Availability AvailabilityResponse `json:"availability"`
}

type ItemPageResponse struct {
	Total int            `json:"total"`
	Size  int            `json:"size"`
	Index int            `json:"index"`
	Items []ItemResponse `json:"items"`
}

func FromItem(it *item.Item) (ItemResponse, error) {
	var r ItemResponse
	if it == nil {
		return r, nil
	}
	if err := copyFrom(&r, it); err != nil {
		return ItemResponse{}, err
	}
	if r.TagNames == nil {
		r.TagNames = []string{}
	}
	return r, nil
}

func FromItemDetailView(v *queries.ItemDetailView) (ItemDetailResponse, error) {
	it, err := FromItem(v.Detailed.Item())
	if err != nil {
		return ItemDetailResponse{}, err
	}
	seller, err := FromUser(v.Detailed.Seller())
	if err != nil {
		return ItemDetailResponse{}, err
	}
	return ItemDetailResponse{
		Item:     it,
		Seller:   seller,
		FavCount: v.Detailed.FavCount(),
		Availability: AvailabilityResponse{
			ActionLabel: v.Availability.ActionLabel,
			Disabled:    v.Availability.Disabled,
			Reason:      v.Availability.Reason,
		},
	}, nil
}

func FromItemPage(p *item.Page) (ItemPageResponse, error) {
	items := make([]ItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		r, err := FromItem(it)
		if err != nil {
			return ItemPageResponse{}, err
		}
		items = append(items, r)
	}
	return ItemPageResponse{
		Total: p.Total,
		Size:  p.Pagination.Size,
		Index: p.Pagination.Index,
		Items: items,
	}, nil
}
