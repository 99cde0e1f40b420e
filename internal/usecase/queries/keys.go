package queries

import (
	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/infra/cache"
)

// Cache key paths. Lists and details live under distinct paths so prefix invalidation
// can address each family on its own.
const (
	PathMe          = "/user/me"
	PathContactInfo = "/user/contact_info"
	PathTradeList   = "/trade/get"
	PathTrade       = "/trade/record"
	PathItemList    = "/item/list"
	PathItemDetail  = "/item/detailed"
	PathSearch      = "/search/item"
)

func MeKey() cache.Key {
	return cache.NewKey(PathMe)
}

func ContactInfoKey(userID *user.ID) cache.Key {
	if userID == nil {
		return cache.NewKey(PathContactInfo)
	}
	return cache.NewKey(PathContactInfo, int64(*userID))
}

// TradeListKey carries only the type component; role filtering happens on read.
func TradeListKey(typ trade.TypeFilter) cache.Key {
	return cache.NewKey(PathTradeList, typ.Param())
}

func TradeKey(id trade.ID) cache.Key {
	return cache.NewKey(PathTrade, int64(id))
}

func ItemListKey(q item.ListQuery) cache.Key {
	return cache.NewKey(PathItemList, q)
}

func ItemDetailKey(id item.ID) cache.Key {
	return cache.NewKey(PathItemDetail, int64(id))
}

func SearchKey(q item.SearchQuery) cache.Key {
	return cache.NewKey(PathSearch, q)
}
