package response

import "market-client/internal/domain/user"

type UserResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Description *string `json:"description,omitempty"`
	CampusID    *int64  `json:"campusId,omitempty"`
	CreatedTime int64   `json:"createdTime"`
}

// MeResponse wraps the session user; User is null when nobody is signed in.
type MeResponse struct {
	User *UserResponse `json:"user"`
}

type ContactInfoResponse struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Verified bool   `json:"verified"`
}

func FromUser(u *user.User) (UserResponse, error) {
	var r UserResponse
	if u == nil {
		return r, nil
	}
	if err := copyFrom(&r, u); err != nil {
		return UserResponse{}, err
	}
	return r, nil
}

func FromMe(u *user.User) (MeResponse, error) {
	if u == nil {
		return MeResponse{}, nil
	}
	r, err := FromUser(u)
	if err != nil {
		return MeResponse{}, err
	}
	return MeResponse{User: &r}, nil
}

func FromContactInfos(infos []user.ContactInfo) []ContactInfoResponse {
	out := make([]ContactInfoResponse, 0, len(infos))
	for _, c := range infos {
		out = append(out, ContactInfoResponse{
			ID:       c.ID(),
			Type:     string(c.Type()),
			Value:    c.Value(),
			Verified: c.Verified(),
		})
	}
	return out
}
