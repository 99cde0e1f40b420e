package user

import (
	"errors"
	"regexp"
	"strings"
)

const MaxDescriptionLength = 500

var (
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrInvalidContactType = errors.New("invalid contact type")
	ErrEmptyContactInfo   = errors.New("contact info cannot be empty")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type ContactType string

const (
	ContactEmail  ContactType = "email"
	ContactPhone  ContactType = "phone"
	ContactQQ     ContactType = "qq"
	ContactWechat ContactType = "wechat"
)

func (t ContactType) IsValid() bool {
	switch t {
	case ContactEmail, ContactPhone, ContactQQ, ContactWechat:
		return true
	default:
		return false
	}
}

type ContactInfo struct {
	id          int64
	contactType ContactType
	value       string
	verified    bool
}

func NewContactInfo(contactType, value string) (ContactInfo, error) {
	return ReconstructContactInfo(0, contactType, value, false)
}

func ReconstructContactInfo(id int64, contactType, value string, verified bool) (ContactInfo, error) {
	ct := ContactType(strings.ToLower(strings.TrimSpace(contactType)))
	if !ct.IsValid() {
		return ContactInfo{}, ErrInvalidContactType
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ContactInfo{}, ErrEmptyContactInfo
	}
	if ct == ContactEmail && !emailRegex.MatchString(value) {
		return ContactInfo{}, ErrInvalidEmail
	}
	return ContactInfo{id: id, contactType: ct, value: value, verified: verified}, nil
}

func (c ContactInfo) ID() int64         { return c.id }
func (c ContactInfo) Type() ContactType { return c.contactType }
func (c ContactInfo) Value() string     { return c.value }
func (c ContactInfo) Verified() bool    { return c.verified }

func ValidateDescription(s string) error {
	if len([]rune(s)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
