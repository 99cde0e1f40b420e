//go:build unit

package response_test

import (
	"testing"
	"time"

	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/pkg/clock"
	"market-client/internal/usecase/queries"
	"market-client/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestFromTrade(t *testing.T) {
	t.Run("every getter lands in its field", func(t *testing.T) {
		accepted := created.Add(time.Hour)
		tr := builder.Must(builder.NewTradeBuilder().
			With(func(b *builder.TradeBuilder) { b.AcceptedTime = &accepted }).
			Cancelled(trade.ReasonCancelledByBuyer).
			BuildDomain())

		got, err := resdto.FromTrade(tr)
		require.NoError(t, err)

		want := resdto.TradeResponse{
			ID: 1,
			Buyer: resdto.UserResponse{
				ID:          5,
				Username:    "alice",
				CreatedTime: clock.ToMillis(created),
			},
			Item: resdto.ItemResponse{
				ID:          100,
				SellerID:    9,
				Name:        "bike",
				Description: "city bike, barely used",
				Price:       120.5,
				CreatedTime: clock.ToMillis(created),
				State:       "valid",
				TagNames:    []string{"sport"},
			},
			SellerID:     9,
			State:        "cancelled",
			CancelReason: ptr("cancelled_by_buyer"),
			CreatedTime:  clock.ToMillis(created),
			AcceptedTime: ptr(clock.ToMillis(accepted)),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("FromTrade mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent times and reason stay nil", func(t *testing.T) {
		got, err := resdto.FromTrade(builder.Must(builder.NewTradeBuilder().BuildDomain()))
		require.NoError(t, err)

		assert.Nil(t, got.CancelReason)
		assert.Nil(t, got.AcceptedTime)
		assert.Nil(t, got.ConfirmedTime)
		assert.Nil(t, got.CompletedTime)
	})

	t.Run("nil trade", func(t *testing.T) {
		got, err := resdto.FromTrade(nil)
		require.NoError(t, err)
		assert.Equal(t, resdto.TradeResponse{}, got)
	})
}

func TestFromUser(t *testing.T) {
	u := builder.Must(builder.NewUserBuilder().WithDescription("hello").WithCampus(2).BuildDomain())

	got, err := resdto.FromUser(u)
	require.NoError(t, err)

	assert.Equal(t, int64(5), got.ID)
	require.NotNil(t, got.Description)
	assert.Equal(t, "hello", *got.Description)
	require.NotNil(t, got.CampusID)
	assert.Equal(t, int64(2), *got.CampusID)

	me, err := resdto.FromMe(nil)
	require.NoError(t, err)
	assert.Nil(t, me.User)
}

func TestFromTradeListSnapshot(t *testing.T) {
	tr := builder.Must(builder.NewTradeBuilder().BuildDomain())
	snap := queries.TradeListSnapshot{
		Type:    trade.TypeAll,
		Trades:  []*trade.Trade{tr},
		Version: 2,
	}

	asSeller := resdto.FromTradeListSnapshot(snap, user.ID(9), trade.RoleSeller)
	asBuyerFilter := resdto.FromTradeListSnapshot(snap, user.ID(9), trade.RoleBuyer)

	assert.Equal(t, "all", asSeller.Type)
	require.Len(t, asSeller.Rows, 1)
	assert.Equal(t, []string{"accept", "cancel"}, asSeller.Rows[0].Actions)
	assert.Empty(t, asBuyerFilter.Rows)
	assert.Zero(t, asSeller.UpdatedAt)
	assert.Nil(t, asSeller.Error)
}
