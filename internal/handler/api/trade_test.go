//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	"market-client/internal/handler/api"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/handler/middleware"
	"market-client/internal/infra/cache"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/errs"
	"market-client/internal/pkg/logger"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"
	"market-client/tests/common/builder"
	"market-client/tests/common/httptest"
	"market-client/tests/common/testutil"
	commandsmock "market-client/tests/mock/commands"
	queriesmock "market-client/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	buyerID  int64 = 5
	sellerID int64 = 9
)

type TradeHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTradeCommands
	mockQueries  *queriesmock.MockTradeQueries
	mockUsers    *queriesmock.MockUserQueries
	handler      *api.TradeHandler
}

func (s *TradeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTradeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTradeQueries(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewTradeHandler(s.mockCommands, s.mockQueries)

	viewer := middleware.NewViewerMiddleware(s.mockUsers)

	trades := s.router.Group("/trades", viewer.RequireViewer())
	trades.GET("", s.handler.List)
	trades.GET("/events", s.handler.Events)
	trades.POST("", s.handler.Start)
	trades.POST("/:id/:action", s.handler.Perform)
}

func (s *TradeHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTradeHandlerSuite(t *testing.T) {
	suite.Run(t, new(TradeHandlerTestSuite))
}

func (s *TradeHandlerTestSuite) signedIn(id int64) {
	s.mockUsers.EXPECT().Viewer(gomock.Any()).Return(user.ID(id), nil).Times(1)
}

func pendingTrade() *trade.Trade {
	return builder.Must(builder.NewTradeBuilder().BuildDomain())
}

// ================================================================================
// TestList
// ================================================================================

func (s *TradeHandlerTestSuite) TestList() {
	t := pendingTrade()
	rows := []queries.TradeRow{{
		Trade:   t,
		Role:    trade.RoleSeller,
		Actions: trade.AvailableActions(t, user.ID(sellerID)),
	}}

	s.Run("success: rows carry role and actions", func() {
		s.signedIn(sellerID)
		s.mockQueries.EXPECT().Rows(gomock.Any(), user.ID(sellerID), trade.RoleSeller, trade.TypeActive).
			Return(rows, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/trades?role=seller&type=active", nil, "")

		var body []resdto.TradeRowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("seller", body[0].Role)
		s.Equal([]string{"accept", "cancel"}, body[0].Actions)
		s.Equal(int64(1), body[0].Trade.ID)
		s.Equal("pending", body[0].Trade.State)
		s.Equal(buyerID, body[0].Trade.Buyer.ID)
		s.Equal(sellerID, body[0].Trade.SellerID)
	})

	s.Run("success: empty filters mean both roles and every state", func() {
		s.signedIn(buyerID)
		s.mockQueries.EXPECT().Rows(gomock.Any(), user.ID(buyerID), trade.Role(""), trade.TypeAll).
			Return([]queries.TradeRow{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/trades", nil, "")

		var body []resdto.TradeRowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: 400 on unknown filters", func() {
		for _, path := range []string{"/trades?role=owner", "/trades?type=stale"} {
			s.signedIn(buyerID)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
		}
	})

	s.Run("error: 401 when nobody is signed in", func() {
		s.signedIn(0)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/trades", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "token_required")
	})

	s.Run("error: backend unreachable is 502", func() {
		s.signedIn(buyerID)
		s.mockQueries.EXPECT().Rows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.WithKind(errors.New("dial tcp: refused"), errs.KindNetwork, "network_error", "backend unreachable")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/trades", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "network_error")
	})
}

// ================================================================================
// TestStart
// ================================================================================

func (s *TradeHandlerTestSuite) TestStart() {
	reqBody := map[string]any{"itemId": 100}

	s.Run("success: returns 201 with the new trade", func() {
		s.signedIn(buyerID)
		s.mockCommands.EXPECT().Start(gomock.Any(), item.ID(100)).Return(pendingTrade(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades", reqBody, "")

		var body resdto.TradeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(100), body.Item.ID)
		s.Equal("pending", body.State)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing itemId", mutate: testutil.Field("itemId", nil)},
			{name: "zero itemId", mutate: testutil.Field("itemId", 0)},
			{name: "negative itemId", mutate: testutil.Field("itemId", -3)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.signedIn(buyerID)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades",
					testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name         string
			err          error
			expectStatus int
			expectName   string
		}{
			{name: "own item", err: commands.ErrOwnItem, expectStatus: http.StatusUnprocessableEntity, expectName: "own_item"},
			{name: "sold item", err: commands.ErrItemSold, expectStatus: http.StatusUnprocessableEntity, expectName: "item_sold"},
			{name: "taken by someone else", err: errs.FromResponse(errs.KindConflict, http.StatusConflict, "item_unavailable", "item is no longer available"), expectStatus: http.StatusConflict, expectName: "item_unavailable"},
			{name: "unclassified", err: errors.New("boom"), expectStatus: http.StatusInternalServerError, expectName: "internal_error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.signedIn(buyerID)
				s.mockCommands.EXPECT().Start(gomock.Any(), item.ID(100)).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades", reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectStatus, tc.expectName)
			})
		}
	})

	s.Run("error: unclassified failures do not leak their message", func() {
		s.signedIn(buyerID)
		s.mockCommands.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: password authentication failed")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades", reqBody, "")
		s.NotContains(rec.Body.String(), "password")
	})
}

// ================================================================================
// TestPerform
// ================================================================================

func (s *TradeHandlerTestSuite) TestPerform() {
	accepted := builder.Must(builder.NewTradeBuilder().WithState(trade.StateProcessing).BuildDomain())

	s.Run("success: accept returns the authoritative trade", func() {
		s.signedIn(sellerID)
		s.mockCommands.EXPECT().Perform(gomock.Any(), trade.ID(1), trade.ActionAccept).Return(accepted, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades/1/accept", nil, "")

		var body resdto.TradeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("processing", body.State)
		s.Require().NotNil(body.AcceptedTime)
		s.Equal(clock.ToMillis(*accepted.AcceptedTime()), *body.AcceptedTime)
	})

	s.Run("error: unknown action never reaches the usecase", func() {
		s.signedIn(sellerID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades/1/refund", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "unknown_action")
	})

	s.Run("error: 400 on a malformed id", func() {
		s.signedIn(sellerID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades/abc/accept", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name         string
			err          error
			expectStatus int
			expectName   string
		}{
			{name: "state moved on", err: trade.ErrStaleState, expectStatus: http.StatusConflict, expectName: "trade_state_changed"},
			{name: "wrong party", err: trade.ErrRoleNotAllowed, expectStatus: http.StatusUnprocessableEntity, expectName: "role_not_allowed"},
			{name: "unknown trade", err: queries.ErrTradeNotFound, expectStatus: http.StatusNotFound, expectName: "trade_not_found"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.signedIn(buyerID)
				s.mockCommands.EXPECT().Perform(gomock.Any(), trade.ID(1), trade.ActionConfirm).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/trades/1/confirm", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectStatus, tc.expectName)
			})
		}
	})
}

// ================================================================================
// TestEvents
// ================================================================================

func (s *TradeHandlerTestSuite) TestEvents() {
	s.Run("success: streams list snapshots as server-sent events", func() {
		s.signedIn(buyerID)

		store := cache.NewStore(cache.DefaultOptions(), clock.NewRealClock(), logger.Discard())
		s.T().Cleanup(store.Close)

		t := pendingTrade()
		s.mockQueries.EXPECT().Watch(trade.TypeActive, gomock.Any()).
			DoAndReturn(func(typ trade.TypeFilter, fn func(queries.TradeListSnapshot)) *cache.Subscription {
				fn(queries.TradeListSnapshot{Type: typ, Trades: []*trade.Trade{t}, Version: 3, UpdatedAt: time.Now()})
				return store.Subscribe(queries.TradeListKey(typ), func(context.Context) (any, error) {
					return []*trade.Trade{t}, nil
				}, store.DefaultOptions(), func(cache.Snapshot) {})
			}).Times(1)

		rec := httptest.PerformStream(s.T(), s.router, "/trades/events?type=active&role=buyer", 200*time.Millisecond)

		body := rec.Body.String()
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(body, "event:trades")
		s.Contains(body, `"type":"active"`)
		s.Contains(body, `"role":"buyer"`)
		s.Contains(body, `"actions":["cancel"]`)
		s.Equal(1, strings.Count(body, "event:trades"))
	})
}
