package queries

import (
	"context"

	"market-client/internal/domain/user"
	"market-client/internal/infra/cache"
	"market-client/internal/infra/remote"
	"market-client/internal/pkg/errs"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock

type UserQueries interface {
	// Me returns the signed-in user, or nil when nobody is signed in.
	Me(ctx context.Context) (*user.User, error)
	// Viewer is the ID of the signed-in user; zero when anonymous.
	Viewer(ctx context.Context) (user.ID, error)
	ContactInfo(ctx context.Context, userID *user.ID) ([]user.ContactInfo, error)
}

type userQueriesImpl struct {
	reader UserReader
	store  *cache.Store
}

func NewUserQueries(reader UserReader, store *cache.Store) UserQueries {
	return &userQueriesImpl{
		reader: reader,
		store:  store,
	}
}

func (q *userQueriesImpl) Me(ctx context.Context) (*user.User, error) {
	v, err := q.store.Fetch(ctx, MeKey(), q.meFetcher, q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return v.(viewerState).user, nil
}

func (q *userQueriesImpl) Viewer(ctx context.Context) (user.ID, error) {
	u, err := q.Me(ctx)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, nil
	}
	return u.ID(), nil
}

func (q *userQueriesImpl) ContactInfo(ctx context.Context, userID *user.ID) ([]user.ContactInfo, error) {
	v, err := q.store.Fetch(ctx, ContactInfoKey(userID), func(ctx context.Context) (any, error) {
		infos, err := q.reader.ContactInfo(ctx, userID)
		if err != nil {
			return nil, err
		}
		if infos == nil {
			infos = []user.ContactInfo{}
		}
		return infos, nil
	}, q.store.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return v.([]user.ContactInfo), nil
}

// meFetcher turns token_required into an anonymous viewer. Other auth failures, such as
// a locally expired token, stay errors.
func (q *userQueriesImpl) meFetcher(ctx context.Context) (any, error) {
	u, err := q.reader.Me(ctx)
	if err != nil {
		if errs.IsKind(err, errs.KindAuthRequired) && errs.NameOf(err) == remote.NameTokenRequired {
			return viewerState{}, nil
		}
		return nil, err
	}
	return viewerState{user: u}, nil
}
