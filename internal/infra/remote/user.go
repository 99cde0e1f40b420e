package remote

import (
	"context"
	"net/url"
	"strconv"

	"market-client/internal/domain/user"
)

// Me returns the signed-in user. Without a session the backend answers 401 with
// token_required, which surfaces as errs.KindAuthRequired.
func (cl *Client) Me(ctx context.Context) (*user.User, error) {
	rec, err := fetch[UserRecord](ctx, cl, get("/user/me", nil))
	if err != nil {
		return nil, err
	}
	return rec.ToDomain()
}

func (cl *Client) UpdateDescription(ctx context.Context, description string) error {
	return exec(ctx, cl, post("/user/description", nil, descriptionRequest{Description: description}))
}

// ContactInfo lists contact entries of userID, or of the viewer when userID is nil.
func (cl *Client) ContactInfo(ctx context.Context, userID *user.ID) ([]user.ContactInfo, error) {
	q := url.Values{}
	if userID != nil {
		q.Set("user_id", strconv.FormatInt(int64(*userID), 10))
	}
	recs, err := fetch[[]ContactInfoRecord](ctx, cl, get("/user/contact_info", q))
	if err != nil {
		return nil, err
	}
	out := make([]user.ContactInfo, 0, len(recs))
	for _, r := range recs {
		c, err := r.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (cl *Client) AddContactInfo(ctx context.Context, c user.ContactInfo) error {
	return exec(ctx, cl, post("/user/contact_info/add", nil, ContactInfoRequest{
		ContactType: string(c.Type()),
		ContactInfo: c.Value(),
	}))
}

func (cl *Client) RemoveContactInfo(ctx context.Context, id int64) error {
	return exec(ctx, cl, del("/user/contact_info/remove", ContactInfoRequest{ContactInfoID: id}))
}
