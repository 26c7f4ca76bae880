package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dbspend360/dbspend360/internal/cache"
	"github.com/dbspend360/dbspend360/pkg/types"
)

func TestSummaryKey(t *testing.T) {
	dr := types.NewDateRange(types.NewDate(2025, time.June, 1), types.NewDate(2025, time.June, 30))
	assert.Equal(t, "summary:2025-06-01:2025-06-30", cache.SummaryKey(dr))

	t.Run("distinct ranges get distinct keys", func(t *testing.T) {
		other := types.NewDateRange(types.NewDate(2025, time.June, 1), types.NewDate(2025, time.June, 29))
		assert.NotEqual(t, cache.SummaryKey(dr), cache.SummaryKey(other))
	})
}
