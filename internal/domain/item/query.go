package item

import "market-client/internal/domain/user"

// ListQuery selects a user's published items. A nil UserID means the viewer.
type ListQuery struct {
	UserID     *user.ID
	IgnoreSold bool
	TimeDesc   bool
	Pagination Pagination
}

func DefaultListQuery() ListQuery {
	return ListQuery{TimeDesc: true, Pagination: Pagination{}.Normalize()}
}

type SearchMode string

const (
	SearchByName SearchMode = "name"
	SearchByTags SearchMode = "tags"
)

func (m SearchMode) IsValid() bool {
	return m == SearchByName || m == SearchByTags
}

type SearchQuery struct {
	Mode       SearchMode
	Keyword    string
	Pagination Pagination
}
