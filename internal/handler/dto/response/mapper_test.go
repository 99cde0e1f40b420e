//go:build unit

package response

import (
	"testing"

	"market-client/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom(t *testing.T) {
	u := builder.Must(builder.NewUserBuilder().BuildDomain())

	t.Run("pointer destination is filled", func(t *testing.T) {
		var r UserResponse
		require.NoError(t, copyFrom(&r, u))
		assert.Equal(t, int64(5), r.ID)
	})

	t.Run("non-pointer destination is an error", func(t *testing.T) {
		err := copyFrom(UserResponse{}, u)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "map *user.User to response.UserResponse")
	})

	t.Run("nil source is an error", func(t *testing.T) {
		var r UserResponse
		require.Error(t, copyFrom(&r, nil))
	})
}

func TestErrorInfo(t *testing.T) {
	info := errorInfo(copyFrom(UserResponse{}, nil))

	require.NotNil(t, info)
	assert.Equal(t, "UNKNOWN", info.Kind)
}
