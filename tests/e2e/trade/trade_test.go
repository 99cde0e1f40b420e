//go:build e2e

package trade_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"market-client/internal/handler/dto/request"
	"market-client/internal/handler/dto/response"
	"market-client/internal/handler/middleware"
	"market-client/tests/common/httptest"
	"market-client/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tradesURL      = "/api/trades"
	tradeActionURL = "/api/trades/%d/%s"
	itemURL        = "/api/items/%d"
	eventsURL      = "/api/trades/events?role=buyer&type=active"

	buyerID  int64 = 5
	sellerID int64 = 9
	otherID  int64 = 12
)

type TradeSuite struct {
	e2e.SharedSuite
}

func TestTradeSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TradeSuite))
}

func (s *TradeSuite) seedUsers() {
	s.Backend.AddUser(buyerID, "buyer")
	s.Backend.AddUser(sellerID, "seller")
	s.Backend.AddUser(otherID, "other")
}

// =============================================================================
// TestTradeLifecycle - a purchase from start to completion across two sessions
// =============================================================================

func (s *TradeSuite) TestTradeLifecycle() {
	s.Run("Normal case: buyer starts, seller accepts, buyer confirms", func() {
		t := s.T()
		s.seedUsers()
		bike := s.Backend.AddItem(sellerID, "bike", 120, "valid")
		buyer := s.Gateway(buyerID)
		seller := s.Gateway(sellerID)

		w := httptest.PerformRequest(t, buyer, http.MethodPost, tradesURL, request.StartTradeRequest{ItemID: bike.ItemID}, "")
		var started response.TradeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &started)
		assert.Equal(t, "pending", started.State)
		assert.Equal(t, buyerID, started.Buyer.ID)
		assert.Equal(t, sellerID, started.SellerID)

		// the seller's list shows the trade with accept and cancel
		w = httptest.PerformRequest(t, seller, http.MethodGet, tradesURL+"?role=seller&type=pending", nil, "")
		var rows []response.TradeRowResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, "seller", rows[0].Role)
		assert.Equal(t, []string{"accept", "cancel"}, rows[0].Actions)

		w = httptest.PerformRequest(t, seller, http.MethodPost, fmt.Sprintf(tradeActionURL, started.ID, "accept"), nil, "")
		var accepted response.TradeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &accepted)
		assert.Equal(t, "processing", accepted.State)
		require.NotNil(t, accepted.AcceptedTime)

		// the buyer's list is read fresh and picks up the accept
		w = httptest.PerformRequest(t, buyer, http.MethodGet, tradesURL+"?role=buyer&type=all", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, "processing", rows[0].Trade.State)
		assert.Equal(t, []string{"confirm", "cancel"}, rows[0].Actions)

		w = httptest.PerformRequest(t, buyer, http.MethodPost, fmt.Sprintf(tradeActionURL, started.ID, "confirm"), nil, "")
		var confirmed response.TradeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		assert.Equal(t, "success", confirmed.State)
		require.NotNil(t, confirmed.CompletedTime)

		// the buyer's item view was invalidated and now shows the sold gate
		w = httptest.PerformRequest(t, buyer, http.MethodGet, fmt.Sprintf(itemURL, bike.ItemID), nil, "")
		var detail response.ItemDetailResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &detail)
		assert.Equal(t, "sold", detail.Item.State)
		assert.True(t, detail.Availability.Disabled)
	})

	s.Run("Error case: buyer cannot accept their own purchase", func() {
		t := s.T()
		s.seedUsers()
		bike := s.Backend.AddItem(sellerID, "bike", 120, "valid")
		rec := s.Backend.AddTrade(buyerID, bike.ItemID, "pending", nil)
		buyer := s.Gateway(buyerID)

		w := httptest.PerformRequest(t, buyer, http.MethodPost, fmt.Sprintf(tradeActionURL, rec.TradeID, "accept"), nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "role_not_allowed")
		assert.Zero(t, s.Backend.Calls("/trade/accept"), "gate failures never reach the backend")
	})

	s.Run("Error case: own item is rejected before any trade request", func() {
		t := s.T()
		s.seedUsers()
		desk := s.Backend.AddItem(sellerID, "desk", 60, "valid")
		seller := s.Gateway(sellerID)

		w := httptest.PerformRequest(t, seller, http.MethodPost, tradesURL, request.StartTradeRequest{ItemID: desk.ItemID}, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "own_item")
		assert.Zero(t, s.Backend.Calls("/trade/start"))
	})

	s.Run("Error case: anonymous sessions must sign in", func() {
		t := s.T()
		s.seedUsers()
		anon := s.Gateway(0)

		w := httptest.PerformRequest(t, anon, http.MethodGet, tradesURL, nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "token_required")
	})
}

// =============================================================================
// TestStaleState - the other party moved the trade since it was cached
// =============================================================================

func (s *TradeSuite) TestStaleState() {
	s.Run("Conflict resyncs the list so the next read is current", func() {
		t := s.T()
		s.seedUsers()
		bike := s.Backend.AddItem(sellerID, "bike", 120, "valid")
		rec := s.Backend.AddTrade(buyerID, bike.ItemID, "pending", nil)
		buyer := s.Gateway(buyerID)
		seller := s.Gateway(sellerID)

		// buyer caches the trade as pending
		w := httptest.PerformRequest(t, buyer, http.MethodGet, tradesURL+"?type=all", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, seller, http.MethodPost, fmt.Sprintf(tradeActionURL, rec.TradeID, "cancel"), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, buyer, http.MethodPost, fmt.Sprintf(tradeActionURL, rec.TradeID, "cancel"), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "invalid_state")

		w = httptest.PerformRequest(t, buyer, http.MethodGet, tradesURL+"?type=all", nil, "")
		var rows []response.TradeRowResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, "cancelled", rows[0].Trade.State)
		require.NotNil(t, rows[0].Trade.CancelReason)
		assert.Equal(t, "seller_rejected", *rows[0].Trade.CancelReason)
		assert.Empty(t, rows[0].Actions)
	})
}

// =============================================================================
// TestEvents - the watched list is pushed as server-sent events
// =============================================================================

func (s *TradeSuite) TestEvents() {
	s.Run("Normal case: first snapshot carries the buyer's active trades", func() {
		t := s.T()
		s.seedUsers()
		bike := s.Backend.AddItem(sellerID, "bike", 120, "valid")
		s.Backend.AddTrade(buyerID, bike.ItemID, "pending", nil)
		buyer := s.Gateway(buyerID)

		w := httptest.PerformStream(t, buyer, eventsURL, 300*time.Millisecond)

		assert.Equal(t, http.StatusOK, w.Code)
		httptest.AssertHeaders(t, w.ResponseRecorder, map[string]string{
			"Cache-Control":     "no-cache",
			"X-Accel-Buffering": "no",
		})
		assert.Contains(t, w.Body.String(), "event:trades")
		assert.Contains(t, w.Body.String(), `"state":"pending"`)
	})
}

// =============================================================================
// TestRequestID - every response carries a request id
// =============================================================================

func (s *TradeSuite) TestRequestID() {
	s.Run("Incoming id is echoed back", func() {
		t := s.T()
		s.seedUsers()
		buyer := s.Gateway(buyerID)
		id := uuid.NewString()

		w := httptest.PerformRequestWithHeaders(t, buyer, http.MethodGet, "/api/me", nil, map[string]string{
			middleware.RequestIDHeader: id,
		})

		require.Equal(t, http.StatusOK, w.Code)
		httptest.AssertHeaders(t, w, map[string]string{middleware.RequestIDHeader: id})

		var me response.MeResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &me))
		require.NotNil(t, me.User)
		assert.Equal(t, buyerID, me.User.ID)
	})

	s.Run("Malformed id is replaced", func() {
		t := s.T()
		s.seedUsers()
		buyer := s.Gateway(buyerID)

		w := httptest.PerformRequestWithHeaders(t, buyer, http.MethodGet, "/health", nil, map[string]string{
			middleware.RequestIDHeader: "not-a-uuid",
		})

		got := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEqual(t, "not-a-uuid", got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})
}
