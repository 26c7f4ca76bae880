package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbspend360/dbspend360/pkg/types"
)

func TestNewPage(t *testing.T) {
	t.Run("rounds total_pages up", func(t *testing.T) {
		p := types.NewPage(make([]int, 50), 101, 1, 50)

		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrevious)
	})

	t.Run("exact multiple does not round up", func(t *testing.T) {
		p := types.NewPage(make([]int, 50), 100, 2, 50)

		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrevious)
	})

	t.Run("middle page has both neighbors", func(t *testing.T) {
		p := types.NewPage(make([]int, 10), 30, 2, 10)

		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrevious)
	})

	t.Run("empty result set", func(t *testing.T) {
		p := types.NewPage[int](nil, 0, 1, 50)

		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrevious)
	})

	t.Run("page past the end is still well formed", func(t *testing.T) {
		p := types.NewPage[int](nil, 20, 9, 10)

		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrevious)
		assert.Empty(t, p.Data)
	})

	t.Run("nil data marshals as empty array", func(t *testing.T) {
		b, err := json.Marshal(types.NewPage[int](nil, 0, 1, 50))
		require.NoError(t, err)
		assert.Contains(t, string(b), `"data":[]`)
	})
}
