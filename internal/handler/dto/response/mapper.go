package response

import (
	"time"

	"github.com/jinzhu/copier"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/errs"
)

// copyFrom fills dst from the getters of a domain entity. Fields are matched by name;
// the converters cover the value types that have no direct JSON shape.
func copyFrom(dst, src any) error {
	if err := copier.CopyWithOption(dst, src, copier.Option{Converters: converters()}); err != nil {
		return errs.Wrapf(err, "map %T to %T", src, dst)
	}
	return nil
}

func converters() []copier.TypeConverter {
	return []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return clock.ToMillis(src.(time.Time)), nil
			},
		},
		{
			SrcType: (*time.Time)(nil),
			DstType: (*int64)(nil),
			Fn: func(src any) (any, error) {
				t, _ := src.(*time.Time)
				if t == nil {
					return (*int64)(nil), nil
				}
				ms := clock.ToMillis(*t)
				return &ms, nil
			},
		},
		{
			SrcType: item.Price{},
			DstType: float64(0),
			Fn: func(src any) (any, error) {
				return src.(item.Price).Amount(), nil
			},
		},
		{
			SrcType: (*trade.CancelReason)(nil),
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				r, _ := src.(*trade.CancelReason)
				if r == nil {
					return (*string)(nil), nil
				}
				s := string(*r)
				return &s, nil
			},
		},
		{
			SrcType: (*user.User)(nil),
			DstType: UserResponse{},
			Fn: func(src any) (any, error) {
				u, _ := src.(*user.User)
				return FromUser(u)
			},
		},
		{
			SrcType: (*item.Item)(nil),
			DstType: ItemResponse{},
			Fn: func(src any) (any, error) {
				it, _ := src.(*item.Item)
				return FromItem(it)
			},
		},
	}
}
