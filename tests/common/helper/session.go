//go:build unit || e2e

package helper

import (
	"testing"

	"market-client/internal/infra/cache"
	"market-client/internal/infra/remote"
	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/logger"
	"market-client/internal/usecase/commands"
	"market-client/internal/usecase/queries"
	"market-client/tests/common/fakebackend"
)

// Session is one signed-in client: its own cache, queries and commands over a shared
// fake backend. Two sessions of different users model the two parties of a trade.
type Session struct {
	Client      *remote.Client
	Store       *cache.Store
	Revalidator *cache.Revalidator

	Trades queries.TradeQueries
	Items  queries.ItemQueries
	Users  queries.UserQueries

	TradeCmds commands.TradeCommands
	ItemCmds  commands.ItemCommands
	UserCmds  commands.UserCommands
}

func NewSession(t *testing.T, fb *fakebackend.Backend, userID int64) *Session {
	t.Helper()
	return NewSessionWithOptions(t, fb, userID, cache.DefaultOptions())
}

func NewSessionWithOptions(t *testing.T, fb *fakebackend.Backend, userID int64, opts cache.Options) *Session {
	t.Helper()
	log := logger.Discard()
	cl := fb.Client(t, userID)
	store := cache.NewStore(opts, clock.NewRealClock(), log)
	t.Cleanup(store.Close)

	trades := queries.NewTradeQueries(cl, store, log)
	items := queries.NewItemQueries(cl, store)
	users := queries.NewUserQueries(cl, store)

	return &Session{
		Client:      cl,
		Store:       store,
		Revalidator: cache.NewRevalidator(store, 0, log),
		Trades:      trades,
		Items:       items,
		Users:       users,
		TradeCmds:   commands.NewTradeUseCase(cl, trades, items, users, store, log),
		ItemCmds:    commands.NewItemUseCase(cl, items, store, log),
		UserCmds:    commands.NewUserUseCase(cl, store),
	}
}
