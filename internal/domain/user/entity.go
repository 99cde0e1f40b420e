package user

import (
	"strings"
	"time"
)

// ID is the backend's numeric user identifier. Zero means "no user".
type ID int64

type User struct {
	id          ID
	username    string
	description *string
	campusID    *int64
	createdTime time.Time
}

func Reconstruct(id ID, username string, description *string, campusID *int64, createdTime time.Time) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	return &User{
		id:          id,
		username:    username,
		description: description,
		campusID:    campusID,
		createdTime: createdTime,
	}, nil
}

// WithDescription returns a copy; cached users are never mutated in place.
func (u *User) WithDescription(description string) *User {
	cp := *u
	cp.description = &description
	return &cp
}

func (u *User) Is(id ID) bool {
	return u != nil && id > 0 && u.id == id
}

func (u *User) ID() ID                 { return u.id }
func (u *User) Username() string       { return u.username }
func (u *User) Description() *string   { return u.description }
func (u *User) CampusID() *int64       { return u.campusID }
func (u *User) CreatedTime() time.Time { return u.createdTime }
