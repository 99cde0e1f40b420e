package main

import (
	"context"
	"strconv"

	"market-client/internal/domain/item"
	"market-client/internal/domain/trade"
	"market-client/internal/domain/user"
	resdto "market-client/internal/handler/dto/response"
	"market-client/internal/pkg/errs"
	"market-client/internal/usecase/queries"

	"github.com/urfave/cli/v2"
)

var roleFlag = &cli.StringFlag{
	Name:  "role",
	Usage: "buyer or seller; both when omitted",
}

var typeFlag = &cli.StringFlag{
	Name:  "type",
	Usage: "active, pending, success or all",
	Value: "active",
}

var meCmd = &cli.Command{
	Name:  "me",
	Usage: "show the signed-in user",
	Action: func(cctx *cli.Context) error {
		return withSession(cctx, func(ctx context.Context, s session) error {
			me, err := s.Users.Me(ctx)
			if err != nil {
				return err
			}
			out, err := resdto.FromMe(me)
			if err != nil {
				return err
			}
			return printJSON(cctx.App.Writer, out)
		})
	},
}

var itemCmd = &cli.Command{
	Name:  "item",
	Usage: "inspect items",
	Subcommands: []*cli.Command{
		{
			Name:      "show",
			Usage:     "show an item with the purchase action as the signed-in user sees it",
			ArgsUsage: "<item id>",
			Action: func(cctx *cli.Context) error {
				id, err := argID(cctx)
				if err != nil {
					return err
				}
				return withSession(cctx, func(ctx context.Context, s session) error {
					viewer, err := s.Users.Viewer(ctx)
					if err != nil {
						return err
					}
					view, err := s.Items.DetailView(ctx, item.ID(id), viewer)
					if err != nil {
						return err
					}
					out, err := resdto.FromItemDetailView(view)
					if err != nil {
						return err
					}
					return printJSON(cctx.App.Writer, out)
				})
			},
		},
	},
}

var tradesCmd = &cli.Command{
	Name:  "trades",
	Usage: "list the signed-in user's transactions",
	Flags: []cli.Flag{roleFlag, typeFlag},
	Action: func(cctx *cli.Context) error {
		role, typ, err := parseFilters(cctx)
		if err != nil {
			return err
		}
		return withSession(cctx, func(ctx context.Context, s session) error {
			viewer, err := requireViewer(ctx, s)
			if err != nil {
				return err
			}
			rows, err := s.Trades.Rows(ctx, viewer, role, typ)
			if err != nil {
				return err
			}
			out, err := resdto.FromTradeRows(rows)
			if err != nil {
				return err
			}
			return printJSON(cctx.App.Writer, out)
		})
	},
}

var tradeCmd = &cli.Command{
	Name:  "trade",
	Usage: "start or move a transaction",
	Subcommands: []*cli.Command{
		{
			Name:      "start",
			Usage:     "start buying an item",
			ArgsUsage: "<item id>",
			Action: func(cctx *cli.Context) error {
				id, err := argID(cctx)
				if err != nil {
					return err
				}
				return withSession(cctx, func(ctx context.Context, s session) error {
					t, err := s.TradeCmds.Start(ctx, item.ID(id))
					if err != nil {
						return err
					}
					out, err := resdto.FromTrade(t)
					if err != nil {
						return err
					}
					return printJSON(cctx.App.Writer, out)
				})
			},
		},
		actionCmd(trade.ActionAccept, "accept a pending transaction as the seller"),
		actionCmd(trade.ActionCancel, "cancel a pending or processing transaction"),
		actionCmd(trade.ActionConfirm, "confirm receipt as the buyer"),
	},
}

func actionCmd(action trade.Action, usage string) *cli.Command {
	return &cli.Command{
		Name:      string(action),
		Usage:     usage,
		ArgsUsage: "<trade id>",
		Action: func(cctx *cli.Context) error {
			id, err := argID(cctx)
			if err != nil {
				return err
			}
			return withSession(cctx, func(ctx context.Context, s session) error {
				t, err := s.TradeCmds.Perform(ctx, trade.ID(id), action)
				if err != nil {
					return err
				}
				out, err := resdto.FromTrade(t)
				if err != nil {
					return err
				}
				return printJSON(cctx.App.Writer, out)
			})
		},
	}
}

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "print every snapshot of a transaction list until interrupted",
	Flags: []cli.Flag{roleFlag, typeFlag},
	Action: func(cctx *cli.Context) error {
		role, typ, err := parseFilters(cctx)
		if err != nil {
			return err
		}
		return withSession(cctx, func(ctx context.Context, s session) error {
			viewer, err := requireViewer(ctx, s)
			if err != nil {
				return err
			}

			// latest snapshot wins; the listener must never block the store
			events := make(chan resdto.TradeListEvent, 1)
			sub := s.Trades.Watch(typ, func(snap queries.TradeListSnapshot) {
				ev := resdto.FromTradeListSnapshot(snap, viewer, role)
				select {
				case <-events:
				default:
				}
				events <- ev
			})
			defer sub.Unsubscribe()

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev := <-events:
					if err := printJSON(cctx.App.Writer, ev); err != nil {
						return err
					}
				}
			}
		})
	},
}

var errNoViewer = errs.NewKind(errs.KindAuthRequired, "token_required", "sign in first: set AUTH_TOKEN or AUTH_SESSION_COOKIE")

func requireViewer(ctx context.Context, s session) (user.ID, error) {
	viewer, err := s.Users.Viewer(ctx)
	if err != nil {
		return 0, err
	}
	if viewer <= 0 {
		return 0, errNoViewer
	}
	return viewer, nil
}

func parseFilters(cctx *cli.Context) (trade.Role, trade.TypeFilter, error) {
	role, err := trade.ParseRole(cctx.String(roleFlag.Name))
	if err != nil {
		return "", "", err
	}
	typ, err := trade.ParseTypeFilter(cctx.String(typeFlag.Name))
	if err != nil {
		return "", "", err
	}
	return role, typ, nil
}

func argID(cctx *cli.Context) (int64, error) {
	if cctx.NArg() != 1 {
		return 0, cli.Exit("expected exactly one id argument", 2)
	}
	id, err := strconv.ParseInt(cctx.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit("id must be a positive integer", 2)
	}
	return id, nil
}
