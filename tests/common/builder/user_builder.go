//go:build unit || e2e

package builder

import (
	"time"

	"market-client/internal/domain/user"
	"market-client/internal/infra/remote"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type UserBuilder struct {
	ID          int64
	Username    string
	Description *string
	CampusID    *int64
	CreatedTime time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:          5,
		Username:    "alice",
		CreatedTime: baseTime,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	return user.Reconstruct(user.ID(u.ID), u.Username, u.Description, u.CampusID, u.CreatedTime)
}

func (u *UserBuilder) BuildRecord() remote.UserRecord {
	return remote.UserRecord{
		UserID:      u.ID,
		Username:    u.Username,
		Description: u.Description,
		CampusID:    u.CampusID,
		CreatedTime: u.CreatedTime.UnixMilli(),
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id int64) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithUsername(name string) *UserBuilder {
	u.Username = name
	return u
}

func (u *UserBuilder) WithDescription(d string) *UserBuilder {
	u.Description = &d
	return u
}

func (u *UserBuilder) WithCampus(id int64) *UserBuilder {
	u.CampusID = &id
	return u
}

// Must unwraps a builder result in tests where construction cannot fail.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
