package request

import (
	"market-client/internal/domain/item"
	"market-client/internal/domain/user"
)

type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=2000"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	TagNames    []string `json:"tagNames" binding:"omitempty,max=10,dive,required"`
}

func (r CreateItemRequest) ToDomain() (item.Draft, error) {
	var price float64
	if r.Price != nil {
		price = *r.Price
	}
	return item.NewDraft(r.Name, r.Description, price, r.TagNames)
}

// UpdateItemRequest is a partial update; omitted fields keep their value.
type UpdateItemRequest struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	Price       *float64  `json:"price,omitempty" binding:"omitempty,gte=0"`
	TagNames    *[]string `json:"tagNames,omitempty"`
	State       *string   `json:"state,omitempty" binding:"omitempty,oneof=valid hidden sold"`
}

func (r UpdateItemRequest) ToDomain() (item.Patch, error) {
	p := item.Patch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		TagNames:    r.TagNames,
	}
	if r.State != nil {
		s, err := item.ParseState(*r.State)
		if err != nil {
			return item.Patch{}, err
		}
		p.State = &s
	}
	return p, nil
}

type ListItemsQuery struct {
	UserID     *int64 `form:"userId" binding:"omitempty,gt=0"`
	IgnoreSold bool   `form:"ignoreSold"`
	Oldest     bool   `form:"oldest"`
	Size       int    `form:"size" binding:"omitempty,gte=1,lte=200"`
	Index      int    `form:"index" binding:"omitempty,gte=0"`
}

func (q ListItemsQuery) ToDomain() item.ListQuery {
	lq := item.ListQuery{
		IgnoreSold: q.IgnoreSold,
		TimeDesc:   !q.Oldest,
		Pagination: item.Pagination{Size: q.Size, Index: q.Index}.Normalize(),
	}
	if q.UserID != nil {
		id := user.ID(*q.UserID)
		lq.UserID = &id
	}
	return lq
}

type SearchItemsQuery struct {
	Mode    string `form:"mode" binding:"omitempty,oneof=name tags"`
	Keyword string `form:"keyword" binding:"required"`
	Size    int    `form:"size" binding:"omitempty,gte=1,lte=200"`
	Index   int    `form:"index" binding:"omitempty,gte=0"`
}

func (q SearchItemsQuery) ToDomain() item.SearchQuery {
	mode := item.SearchMode(q.Mode)
	if mode == "" {
		mode = item.SearchByName
	}
	return item.SearchQuery{
		Mode:       mode,
		Keyword:    q.Keyword,
		Pagination: item.Pagination{Size: q.Size, Index: q.Index}.Normalize(),
	}
}
