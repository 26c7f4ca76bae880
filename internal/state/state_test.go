package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbspend360/dbspend360/internal/state"
	"github.com/dbspend360/dbspend360/pkg/types"
)

func initialState() state.State {
	return state.NewState(types.NewDateRange(
		types.NewDate(2025, time.June, 1),
		types.NewDate(2025, time.June, 30),
	))
}

func TestNewState(t *testing.T) {
	s := initialState()

	assert.Equal(t, 1, s.Page)
	assert.Equal(t, types.DefaultPerPage, s.PerPage)
	assert.Equal(t, state.SortTotalCost, s.SortColumn)
	assert.True(t, s.SortDesc)
	assert.Empty(t, s.Expanded)
	assert.Nil(t, s.Selected)
	assert.Equal(t, uint64(0), s.Generation)
}

func TestReduceFilters(t *testing.T) {
	t.Run("range change resets page and bumps generation", func(t *testing.T) {
		s := initialState()
		s = state.Reduce(s, state.SetPage{Page: 4})
		require.Equal(t, 4, s.Page)

		gen := s.Generation
		s = state.Reduce(s, state.SetRange{Range: types.NewDateRange(
			types.NewDate(2025, time.July, 1),
			types.NewDate(2025, time.July, 31),
		)})

		assert.Equal(t, 1, s.Page)
		assert.Equal(t, gen+1, s.Generation)
	})

	t.Run("job filter change resets page", func(t *testing.T) {
		s := state.Reduce(initialState(), state.SetPage{Page: 3})
		s = state.Reduce(s, state.SetJobFilter{Name: "etl"})

		assert.Equal(t, "etl", s.JobFilter)
		assert.Equal(t, 1, s.Page)
	})

	t.Run("per_page change resets page", func(t *testing.T) {
		s := state.Reduce(initialState(), state.SetPage{Page: 3})
		s = state.Reduce(s, state.SetPerPage{PerPage: 100})

		assert.Equal(t, 100, s.PerPage)
		assert.Equal(t, 1, s.Page)
	})

	t.Run("out-of-bound per_page is ignored", func(t *testing.T) {
		s := initialState()
		for _, pp := range []int{0, -1, types.MaxPerPage + 1} {
			next := state.Reduce(s, state.SetPerPage{PerPage: pp})
			assert.Equal(t, s, next, "per_page %d", pp)
		}
	})

	t.Run("page below 1 is ignored", func(t *testing.T) {
		s := initialState()
		next := state.Reduce(s, state.SetPage{Page: 0})
		assert.Equal(t, s, next)
	})
}

func TestReduceSupersession(t *testing.T) {
	s := initialState()
	inFlight := s.Generation

	// A filter change lands while the page-1 fetch is still in flight.
	s = state.Reduce(s, state.SetJobFilter{Name: "etl"})

	assert.False(t, s.Accepts(inFlight))
	assert.True(t, s.Accepts(s.Generation))
}

func TestReduceExpand(t *testing.T) {
	s := initialState()

	s = state.Reduce(s, state.ToggleExpand{JobID: "J1"})
	assert.True(t, s.IsExpanded("J1"))

	s = state.Reduce(s, state.ToggleExpand{JobID: "J1"})
	assert.False(t, s.IsExpanded("J1"))

	t.Run("does not mutate the previous state", func(t *testing.T) {
		before := state.Reduce(initialState(), state.ToggleExpand{JobID: "J1"})
		_ = state.Reduce(before, state.ToggleExpand{JobID: "J2"})
		assert.False(t, before.IsExpanded("J2"))
	})
}

func TestReduceSelection(t *testing.T) {
	s := initialState()

	s = state.Reduce(s, state.SelectRun{Key: state.RunKey{JobID: "J1", RunID: "R1"}})
	require.NotNil(t, s.Selected)
	assert.Equal(t, "R1", s.Selected.RunID)

	s = state.Reduce(s, state.ClearSelection{})
	assert.Nil(t, s.Selected)
}

func TestReduceSort(t *testing.T) {
	t.Run("new column starts descending", func(t *testing.T) {
		s := state.Reduce(initialState(), state.ToggleSort{Column: state.SortUsageDate})

		assert.Equal(t, state.SortUsageDate, s.SortColumn)
		assert.True(t, s.SortDesc)
	})

	t.Run("repeat click flips direction", func(t *testing.T) {
		s := state.Reduce(initialState(), state.ToggleSort{Column: state.SortTotalCost})
		assert.False(t, s.SortDesc)

		s = state.Reduce(s, state.ToggleSort{Column: state.SortTotalCost})
		assert.True(t, s.SortDesc)
	})

	t.Run("sort change resets page and bumps generation", func(t *testing.T) {
		s := state.Reduce(initialState(), state.SetPage{Page: 2})
		gen := s.Generation

		s = state.Reduce(s, state.ToggleSort{Column: state.SortComputeCost})

		assert.Equal(t, 1, s.Page)
		assert.Equal(t, gen+1, s.Generation)
	})
}
