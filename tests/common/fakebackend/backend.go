//go:build unit || e2e

// Package fakebackend serves the marketplace backend API from memory so the remote
// client, the cache and the trade commands can be exercised end to end.
package fakebackend

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"market-client/internal/infra/remote"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/config"
	"market-client/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const viewerKey = "viewer"

type injected struct {
	status int
	body   string
}

type Backend struct {
	mu       sync.Mutex
	users    map[int64]remote.UserRecord
	items    map[int64]remote.ItemRecord
	trades   map[int64]remote.TradeRecord
	contacts map[int64][]remote.ContactInfoRecord
	nextID   int64
	now      int64
	calls    map[string]int
	inject   map[string]injected

	server *httptest.Server
}

func New(t *testing.T) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		users:    make(map[int64]remote.UserRecord),
		items:    make(map[int64]remote.ItemRecord),
		trades:   make(map[int64]remote.TradeRecord),
		contacts: make(map[int64][]remote.ContactInfoRecord),
		nextID:   1000,
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		calls:    make(map[string]int),
		inject:   make(map[string]injected),
	}
	b.server = httptest.NewServer(b.router())
	t.Cleanup(b.server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

// Client returns a remote client authenticated as userID. Zero means anonymous.
func (b *Backend) Client(t *testing.T, userID int64) *remote.Client {
	t.Helper()
	cfg := config.NewTestConfig(b.URL())
	if userID != 0 {
		cfg.Auth.Token = Token(userID)
	}
	cl, err := remote.NewClient(cfg, clock.NewRealClock(), logger.Discard())
	require.NoError(t, err)
	return cl
}

func Token(userID int64) string {
	return "user-" + strconv.FormatInt(userID, 10)
}

// Calls counts requests received for path, including rejected ones.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

// FailNext makes the next request to path answer status with a raw body.
func (b *Backend) FailNext(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inject[path] = injected{status: status, body: body}
}

// Seeding.

func (b *Backend) AddUser(id int64, username string) remote.UserRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := remote.UserRecord{UserID: id, Username: username, CreatedTime: b.tick()}
	b.users[id] = u
	return u
}

func (b *Backend) AddItem(sellerID int64, name string, price float64, state string) remote.ItemRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	it := remote.ItemRecord{
		ItemID:      b.nextID,
		UserID:      sellerID,
		Name:        name,
		Description: name + " in good condition",
		Price:       &price,
		CreatedTime: b.tick(),
		State:       state,
		Tags:        []remote.TagRecord{},
		TagNameList: []string{},
	}
	b.items[it.ItemID] = it
	return it
}

func (b *Backend) AddTrade(buyerID, itemID int64, state string, reason *string) remote.TradeRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	buyer := b.users[buyerID]
	it := b.items[itemID]
	tr := remote.TradeRecord{
		TradeID:      b.nextID,
		Buyer:        &buyer,
		Item:         &it,
		CreatedTime:  b.tick(),
		State:        state,
		CancelReason: reason,
	}
	b.trades[tr.TradeID] = tr
	return tr
}

// Expire cancels a trade the way the backend's timeout job does.
func (b *Backend) Expire(tradeID int64, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tr := b.trades[tradeID]
	tr.State = "cancelled"
	tr.CancelReason = &reason
	done := b.tick()
	tr.CompletedTime = &done
	b.trades[tradeID] = tr
}

func (b *Backend) Trade(id int64) remote.TradeRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trades[id]
}

func (b *Backend) Item(id int64) remote.ItemRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items[id]
}

func (b *Backend) tick() int64 {
	b.now += 1000
	return b.now
}

// HTTP surface.

func (b *Backend) router() *gin.Engine {
	r := gin.New()
	r.Use(b.count, b.injectFailure, b.authenticate)

	r.GET("/user/me", b.requireViewer, b.me)
	r.POST("/user/description", b.requireViewer, b.updateDescription)
	r.GET("/user/contact_info", b.requireViewer, b.contactInfo)
	r.POST("/user/contact_info/add", b.requireViewer, b.addContactInfo)
	r.DELETE("/user/contact_info/remove", b.requireViewer, b.removeContactInfo)

	r.POST("/item", b.listItems)
	r.GET("/item/detailed", b.itemDetailed)
	r.POST("/item/add", b.requireViewer, b.addItem)
	r.POST("/item/update", b.requireViewer, b.updateItem)
	r.DELETE("/item/remove", b.requireViewer, b.removeItem)
	r.POST("/search/item/by_name", b.search(false))
	r.POST("/search/item/by_tags", b.search(true))

	r.POST("/trade/start", b.requireViewer, b.startTrade)
	r.GET("/trade/accept", b.requireViewer, b.acceptTrade)
	r.POST("/trade/cancel", b.requireViewer, b.cancelTrade)
	r.GET("/trade/confirm", b.requireViewer, b.confirmTrade)
	r.GET("/trade/get", b.requireViewer, b.listTrades)
	return r
}

func (b *Backend) count(c *gin.Context) {
	b.mu.Lock()
	b.calls[c.Request.URL.Path]++
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) injectFailure(c *gin.Context) {
	b.mu.Lock()
	f, ok := b.inject[c.Request.URL.Path]
	delete(b.inject, c.Request.URL.Path)
	b.mu.Unlock()
	if ok {
		c.Data(f.status, "application/json", []byte(f.body))
		c.Abort()
		return
	}
	c.Next()
}

func (b *Backend) authenticate(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		token, _ = c.Cookie("sAccessToken")
	}
	if id, err := strconv.ParseInt(strings.TrimPrefix(token, "user-"), 10, 64); err == nil {
		b.mu.Lock()
		_, known := b.users[id]
		b.mu.Unlock()
		if known {
			c.Set(viewerKey, id)
		}
	}
	c.Next()
}

func (b *Backend) requireViewer(c *gin.Context) {
	if _, ok := c.Get(viewerKey); !ok {
		fail(c, http.StatusUnauthorized, "token_required", "login required")
		return
	}
	c.Next()
}

func viewer(c *gin.Context) int64 {
	return c.GetInt64(viewerKey)
}

func fail(c *gin.Context, status int, name, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": gin.H{"error": true, "name": name, "message": message}})
}

func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", name+" is required")
		return 0, false
	}
	return id, true
}

func (b *Backend) me(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, b.users[viewer(c)])
}

func (b *Backend) updateDescription(c *gin.Context) {
	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[viewer(c)]
	u.Description = &req.Description
	b.users[u.UserID] = u
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) contactInfo(c *gin.Context) {
	id := viewer(c)
	if raw := c.Query("user_id"); raw != "" {
		var ok bool
		if id, ok = queryID(c, "user_id"); !ok {
			return
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.contacts[id]
	if list == nil {
		list = []remote.ContactInfoRecord{}
	}
	c.JSON(http.StatusOK, list)
}

func (b *Backend) addContactInfo(c *gin.Context) {
	var req remote.ContactInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ContactInfo == "" {
		fail(c, http.StatusUnprocessableEntity, "param_error", "contact_info is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := viewer(c)
	b.contacts[id] = append(b.contacts[id], remote.ContactInfoRecord{
		ContactInfoID: b.nextID,
		ContactType:   req.ContactType,
		ContactInfo:   req.ContactInfo,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) removeContactInfo(c *gin.Context) {
	var req remote.ContactInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := viewer(c)
	before := len(b.contacts[id])
	b.contacts[id] = slices.DeleteFunc(b.contacts[id], func(r remote.ContactInfoRecord) bool {
		return r.ContactInfoID == req.ContactInfoID
	})
	if len(b.contacts[id]) == before {
		fail(c, http.StatusNotFound, "contact_info_not_found", "no such contact info")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) page(c *gin.Context, match func(remote.ItemRecord) bool) {
	var req struct {
		Pagination remote.PaginationRecord `json:"pagination"`
		Size       int                     `json:"size"`
		Index      int                     `json:"index"`
	}
	_ = c.ShouldBindJSON(&req)
	p := req.Pagination
	if p.Size == 0 {
		p = remote.PaginationRecord{Size: req.Size, Index: req.Index}
	}
	if p.Size == 0 {
		p.Size = 20
	}

	b.mu.Lock()
	var all []remote.ItemRecord
	for _, it := range b.items {
		if match(it) {
			all = append(all, it)
		}
	}
	b.mu.Unlock()

	slices.SortFunc(all, func(x, y remote.ItemRecord) int {
		if c.Query("time_desc") == "false" {
			return int(x.CreatedTime - y.CreatedTime)
		}
		return int(y.CreatedTime - x.CreatedTime)
	})
	start := min(p.Index*p.Size, len(all))
	end := min(start+p.Size, len(all))
	c.JSON(http.StatusOK, remote.ItemPageRecord{
		Total:      len(all),
		Pagination: p,
		Data:       append([]remote.ItemRecord{}, all[start:end]...),
	})
}

func (b *Backend) listItems(c *gin.Context) {
	owner := viewer(c)
	if raw := c.Query("user_id"); raw != "" {
		var ok bool
		if owner, ok = queryID(c, "user_id"); !ok {
			return
		}
	}
	if owner == 0 {
		fail(c, http.StatusUnauthorized, "token_required", "login required")
		return
	}
	ignoreSold := c.Query("ignore_sold") == "true"
	self := owner == viewer(c)
	b.page(c, func(it remote.ItemRecord) bool {
		if it.UserID != owner {
			return false
		}
		if ignoreSold && it.State == "sold" {
			return false
		}
		return self || it.State != "hidden"
	})
}

func (b *Backend) search(byTags bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		kw := strings.ToLower(c.Query("keyword"))
		b.page(c, func(it remote.ItemRecord) bool {
			if it.State != "valid" {
				return false
			}
			if !byTags {
				return strings.Contains(strings.ToLower(it.Name), kw)
			}
			for _, tag := range it.TagNameList {
				if strings.EqualFold(tag, kw) {
					return true
				}
			}
			return false
		})
	}
}

func (b *Backend) itemDetailed(c *gin.Context) {
	id, ok := queryID(c, "item_id")
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, found := b.items[id]
	if !found || (it.State == "hidden" && it.UserID != viewer(c)) {
		fail(c, http.StatusNotFound, "item_not_found", fmt.Sprintf("item %d not found", id))
		return
	}
	seller := b.users[it.UserID]
	c.JSON(http.StatusOK, remote.ItemDetailedRecord{ItemRecord: it, Seller: &seller})
}

func (b *Backend) addItem(c *gin.Context) {
	var req remote.ItemDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		fail(c, http.StatusUnprocessableEntity, "param_error", "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	price := req.Price
	it := remote.ItemRecord{
		ItemID:      b.nextID,
		UserID:      viewer(c),
		Name:        req.Name,
		Description: req.Description,
		Price:       &price,
		CreatedTime: b.tick(),
		State:       "valid",
		Tags:        []remote.TagRecord{},
		TagNameList: req.TagNameList,
	}
	b.items[it.ItemID] = it
	c.JSON(http.StatusOK, it)
}

func (b *Backend) updateItem(c *gin.Context) {
	var req remote.ItemDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[req.ItemID]
	if !ok {
		fail(c, http.StatusNotFound, "item_not_found", "no such item")
		return
	}
	if it.UserID != viewer(c) {
		fail(c, http.StatusForbidden, "permission_required", "not your item")
		return
	}
	if it.State == "sold" {
		fail(c, http.StatusConflict, "item_unavailable", "sold items cannot be edited")
		return
	}
	price := req.Price
	it.Name, it.Description, it.Price, it.TagNameList = req.Name, req.Description, &price, req.TagNameList
	if req.State == "valid" || req.State == "hidden" {
		it.State = req.State
	}
	b.items[it.ItemID] = it
	c.JSON(http.StatusOK, it)
}

func (b *Backend) removeItem(c *gin.Context) {
	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[req.ItemID]
	if !ok {
		fail(c, http.StatusNotFound, "item_not_found", "no such item")
		return
	}
	if it.UserID != viewer(c) {
		fail(c, http.StatusForbidden, "permission_required", "not your item")
		return
	}
	delete(b.items, req.ItemID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) startTrade(c *gin.Context) {
	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[req.ItemID]
	if !ok {
		fail(c, http.StatusNotFound, "item_not_found", "no such item")
		return
	}
	buyerID := viewer(c)
	if it.UserID == buyerID {
		fail(c, http.StatusForbidden, "permission_required", "cannot buy own item")
		return
	}
	if it.State != "valid" {
		fail(c, http.StatusConflict, "item_unavailable", "item is "+it.State)
		return
	}
	for _, tr := range b.trades {
		if tr.Item.ItemID == it.ItemID && (tr.State == "pending" || tr.State == "processing") {
			fail(c, http.StatusConflict, "item_unavailable", "item already has an active trade")
			return
		}
	}
	b.nextID++
	buyer := b.users[buyerID]
	tr := remote.TradeRecord{TradeID: b.nextID, Buyer: &buyer, Item: &it, CreatedTime: b.tick(), State: "pending"}
	b.trades[tr.TradeID] = tr
	c.JSON(http.StatusOK, tr)
}

// transition loads the trade, checks the actor and the source state, and stores the
// result of apply. A state mismatch is answered 200 with a typed body, as the real
// backend does for trade state errors.
func (b *Backend) transition(c *gin.Context, id int64, actor string, from []string, apply func(*remote.TradeRecord, string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tr, ok := b.trades[id]
	if !ok {
		fail(c, http.StatusNotFound, "trade_not_found", "no such trade")
		return
	}
	me := viewer(c)
	role := ""
	switch me {
	case tr.Buyer.UserID:
		role = "buyer"
	case tr.Item.UserID:
		role = "seller"
	}
	if role == "" || (actor != "" && role != actor) {
		fail(c, http.StatusForbidden, "permission_required", "not allowed for this trade")
		return
	}
	if !slices.Contains(from, tr.State) {
		fail(c, http.StatusOK, "invalid_state", "trade is "+tr.State)
		return
	}
	apply(&tr, role)
	b.trades[id] = tr
	c.JSON(http.StatusOK, tr)
}

func (b *Backend) acceptTrade(c *gin.Context) {
	id, ok := queryID(c, "trade_id")
	if !ok {
		return
	}
	b.transition(c, id, "seller", []string{"pending"}, func(tr *remote.TradeRecord, _ string) {
		at := b.tick()
		tr.State = "processing"
		tr.AcceptedTime = &at
	})
}

func (b *Backend) confirmTrade(c *gin.Context) {
	id, ok := queryID(c, "trade_id")
	if !ok {
		return
	}
	b.transition(c, id, "buyer", []string{"processing"}, func(tr *remote.TradeRecord, _ string) {
		at := b.tick()
		tr.State = "success"
		tr.ConfirmedTime = &at
		tr.CompletedTime = &at
		it := b.items[tr.Item.ItemID]
		it.State = "sold"
		b.items[it.ItemID] = it
		tr.Item = &it
	})
}

func (b *Backend) cancelTrade(c *gin.Context) {
	var req struct {
		TradeID int64 `json:"trade_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "param_error", err.Error())
		return
	}
	b.transition(c, req.TradeID, "", []string{"pending", "processing"}, func(tr *remote.TradeRecord, role string) {
		var reason string
		switch {
		case role == "buyer":
			reason = "cancelled_by_buyer"
		case tr.State == "pending":
			reason = "seller_rejected"
		default:
			reason = "cancelled_by_seller"
		}
		at := b.tick()
		tr.State = "cancelled"
		tr.CancelReason = &reason
		tr.CompletedTime = &at
	})
}

func (b *Backend) listTrades(c *gin.Context) {
	filters := c.QueryArray("filter")
	me := viewer(c)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []remote.TradeRecord{}
	for _, tr := range b.trades {
		if tr.Buyer.UserID != me && tr.Item.UserID != me {
			continue
		}
		if len(filters) > 0 && !matchesAny(filters, tr.State) {
			continue
		}
		// trades are joined with the current item row
		if it, ok := b.items[tr.Item.ItemID]; ok {
			tr.Item = &it
		}
		out = append(out, tr)
	}
	slices.SortFunc(out, func(x, y remote.TradeRecord) int { return int(x.TradeID - y.TradeID) })
	c.JSON(http.StatusOK, out)
}

func matchesAny(filters []string, state string) bool {
	for _, f := range filters {
		switch f {
		case "active":
			if state == "pending" || state == "processing" {
				return true
			}
		default:
			if f == state {
				return true
			}
		}
	}
	return false
}
