//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"market-client/internal/domain/item"
	"market-client/internal/domain/user"
	"market-client/internal/handler/api"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/handler/middleware"
	"market-client/internal/pkg/errs"
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

type ItemHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockItemCommands
	mockQueries  *queriesmock.MockItemQueries
	mockUsers    *queriesmock.MockUserQueries
	handler      *api.ItemHandler
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockItemCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockItemQueries(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewItemHandler(s.mockCommands, s.mockQueries)

	viewer := middleware.NewViewerMiddleware(s.mockUsers)

	items := s.router.Group("/items", viewer.OptionalViewer())
	items.GET("", s.handler.List)
	items.GET("/:id", s.handler.Get)
	items.POST("", viewer.RequireViewer(), s.handler.Create)
	items.PUT("/:id", viewer.RequireViewer(), s.handler.Update)
	items.DELETE("/:id", viewer.RequireViewer(), s.handler.Delete)
	s.router.GET("/search/items", s.handler.Search)
}

func (s *ItemHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

// viewerCalls expects n viewer lookups; mutations resolve the viewer twice.
func (s *ItemHandlerTestSuite) viewerCalls(id int64, n int) {
	s.mockUsers.EXPECT().Viewer(gomock.Any()).Return(user.ID(id), nil).Times(n)
}

func detailView(viewer int64) *queries.ItemDetailView {
	it := builder.Must(builder.NewItemBuilder().BuildDomain())
	seller := builder.Must(builder.NewUserBuilder().WithID(sellerID).WithUsername("bob").BuildDomain())
	d := builder.Must(item.NewDetailed(it, seller, 4))
	return &queries.ItemDetailView{Detailed: d, Availability: d.PurchaseAvailability(user.ID(viewer))}
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ItemHandlerTestSuite) TestGet() {
	s.Run("success: buyer sees an enabled purchase action", func() {
		s.viewerCalls(buyerID, 1)
		s.mockQueries.EXPECT().DetailView(gomock.Any(), item.ID(100), user.ID(buyerID)).
			Return(detailView(buyerID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/100", nil, "")

		var body resdto.ItemDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(100), body.Item.ID)
		s.Equal(120.5, body.Item.Price)
		s.Equal("bob", body.Seller.Username)
		s.Equal(4, body.FavCount)
		s.Equal("buy", body.Availability.ActionLabel)
		s.False(body.Availability.Disabled)
	})

	s.Run("success: seller sees the own-item reason", func() {
		s.viewerCalls(sellerID, 1)
		s.mockQueries.EXPECT().DetailView(gomock.Any(), item.ID(100), user.ID(sellerID)).
			Return(detailView(sellerID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/100", nil, "")

		var body resdto.ItemDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Availability.Disabled)
		s.Equal(item.ReasonOwnItem, body.Availability.Reason)
	})

	s.Run("success: anonymous viewer is evaluated as nobody", func() {
		s.viewerCalls(0, 1)
		s.mockQueries.EXPECT().DetailView(gomock.Any(), item.ID(100), user.ID(0)).
			Return(detailView(0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/100", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 when the item is gone", func() {
		s.viewerCalls(buyerID, 1)
		s.mockQueries.EXPECT().DetailView(gomock.Any(), item.ID(7), gomock.Any()).
			Return(nil, errs.FromResponse(errs.KindNotFound, http.StatusNotFound, "item_not_found", "item not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/7", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "item_not_found")
	})
}

// ================================================================================
// TestList and TestSearch
// ================================================================================

func (s *ItemHandlerTestSuite) TestList() {
	page := &item.Page{
		Total:      1,
		Pagination: item.Pagination{Size: 10, Index: 0},
		Items:      []*item.Item{builder.Must(builder.NewItemBuilder().BuildDomain())},
	}

	s.Run("success: query parameters reach the usecase", func() {
		s.viewerCalls(buyerID, 1)
		seller := user.ID(sellerID)
		want := item.ListQuery{
			UserID:     &seller,
			IgnoreSold: true,
			TimeDesc:   true,
			Pagination: item.Pagination{Size: 10, Index: 2},
		}
		s.mockQueries.EXPECT().UserItems(gomock.Any(), want).Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items?userId=9&ignoreSold=true&size=10&index=2", nil, "")

		var body resdto.ItemPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Total)
		s.Require().Len(body.Items, 1)
		s.Equal([]string{"sport"}, body.Items[0].TagNames)
	})

	s.Run("error: 400 on an oversized page", func() {
		s.viewerCalls(buyerID, 1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items?size=1000", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
	})
}

func (s *ItemHandlerTestSuite) TestSearch() {
	s.Run("success: tag search", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), item.SearchQuery{
			Mode:       item.SearchByTags,
			Keyword:    "sport",
			Pagination: item.Pagination{}.Normalize(),
		}).Return(&item.Page{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/search/items?mode=tags&keyword=sport", nil, "")

		var body resdto.ItemPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotNil(body.Items)
	})

	s.Run("error: 400 without a keyword or with an unknown mode", func() {
		for _, path := range []string{"/search/items?mode=name", "/search/items?mode=price&keyword=x"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
		}
	})
}

// ================================================================================
// TestCreate, TestUpdate and TestDelete
// ================================================================================

func (s *ItemHandlerTestSuite) TestCreate() {
	reqBody := map[string]any{
		"name":        "bike",
		"description": "city bike",
		"price":       120.5,
		"tagNames":    []string{"sport"},
	}
	created := builder.Must(builder.NewItemBuilder().WithSeller(buyerID).BuildDomain())

	s.Run("success: returns 201 Created", func() {
		s.viewerCalls(buyerID, 2)
		s.mockCommands.EXPECT().Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d item.Draft) (*item.Item, error) {
				s.Equal("bike", d.Name)
				s.Equal(int64(12050), d.Price.Cents())
				return created, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", reqBody, "")

		var body resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(buyerID, body.SellerID)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "blank name", mutate: testutil.Field("name", "   ")},
			{name: "name too long", mutate: testutil.Field("name", strings.Repeat("a", 101))},
			{name: "missing price", mutate: testutil.Field("price", nil)},
			{name: "negative price", mutate: testutil.Field("price", -1)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.viewerCalls(buyerID, 2)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items",
					testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
			})
		}
	})

	s.Run("error: 401 when nobody is signed in", func() {
		s.viewerCalls(0, 2)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "token_required")
	})
}

func (s *ItemHandlerTestSuite) TestUpdate() {
	updated := builder.Must(builder.NewItemBuilder().WithState(item.StateHidden).BuildDomain())

	s.Run("success: partial update", func() {
		s.viewerCalls(sellerID, 2)
		hidden := item.StateHidden
		s.mockCommands.EXPECT().Update(gomock.Any(), item.ID(100), item.Patch{State: &hidden}).
			Return(updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/items/100", map[string]any{"state": "hidden"}, "")

		var body resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("hidden", body.State)
	})

	s.Run("error: marking sold is an illegal transition", func() {
		s.viewerCalls(sellerID, 2)
		s.mockCommands.EXPECT().Update(gomock.Any(), item.ID(100), gomock.Any()).
			Return(nil, errs.WithKind(item.ErrCannotMarkSold, errs.KindIllegalTransition, "cannot_mark_sold", "items are sold through a trade")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/items/100", map[string]any{"state": "sold"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "cannot_mark_sold")
	})

	s.Run("error: 400 on an unknown state", func() {
		s.viewerCalls(sellerID, 2)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/items/100", map[string]any{"state": "gone"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_param")
	})
}

func (s *ItemHandlerTestSuite) TestDelete() {
	s.Run("success: returns 204", func() {
		s.viewerCalls(sellerID, 2)
		s.mockCommands.EXPECT().Remove(gomock.Any(), item.ID(100)).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/items/100", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 for someone else's item", func() {
		s.viewerCalls(buyerID, 2)
		s.mockCommands.EXPECT().Remove(gomock.Any(), item.ID(100)).
			Return(errs.FromResponse(errs.KindPermissionDenied, http.StatusForbidden, "permission_denied", "not your item")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/items/100", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "permission_denied")
	})
}
