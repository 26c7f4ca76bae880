// Package state models the dashboard client's view state as an explicit,
// serializable value plus a pure reducer. Every user interaction is an
// Action; Reduce returns the next state without mutating the previous one,
// so transitions are testable without a running UI.
package state

import (
	"github.com/dbspend360/dbspend360/pkg/types"
)

// SortColumn identifies a sortable table column.
type SortColumn string

const (
	SortTotalCost    SortColumn = "total_cost"
	SortComputeCost  SortColumn = "compute_cost"
	SortPlatformCost SortColumn = "platform_cost"
	SortJobID        SortColumn = "job_id"
	SortUsageDate    SortColumn = "usage_date"
	SortRunCount     SortColumn = "run_count"
)

// RunKey identifies a run for the detail view.
type RunKey struct {
	JobID string `json:"job_id"`
	RunID string `json:"run_id"`
}

// State is the complete dashboard view state. Expanded is keyed by job_id;
// Generation counts filter changes so a response for a superseded request can
// be recognized and dropped.
type State struct {
	Range      types.DateRange `json:"range"`
	JobFilter  string          `json:"job_filter"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	SortColumn SortColumn      `json:"sort_column"`
	SortDesc   bool            `json:"sort_desc"`
	Expanded   map[string]bool `json:"expanded"`
	Selected   *RunKey         `json:"selected,omitempty"`
	Generation uint64          `json:"generation"`
}

// NewState returns the initial state for a date range: first page, default
// page size, total cost descending, nothing expanded or selected.
func NewState(dr types.DateRange) State {
	return State{
		Range:      dr,
		Page:       1,
		PerPage:    types.DefaultPerPage,
		SortColumn: SortTotalCost,
		SortDesc:   true,
		Expanded:   map[string]bool{},
	}
}

// Accepts reports whether a response carrying the given request generation
// is still current. Stale responses must be dropped, not rendered.
func (s State) Accepts(generation uint64) bool {
	return generation == s.Generation
}

// IsExpanded reports whether the job's run list is expanded.
func (s State) IsExpanded(jobID string) bool {
	return s.Expanded[jobID]
}

// Action is a dashboard state transition.
type Action interface {
	isAction()
}

// SetRange changes the active date range.
type SetRange struct {
	Range types.DateRange
}

// SetJobFilter changes the job-name filter text.
type SetJobFilter struct {
	Name string
}

// SetPage moves to another page of the current result set.
type SetPage struct {
	Page int
}

// SetPerPage changes the page size.
type SetPerPage struct {
	PerPage int
}

// ToggleExpand flips a job row's expansion. The run list for an expanded job
// is already present in the fetched rollup, so no refetch is implied.
type ToggleExpand struct {
	JobID string
}

// SelectRun opens the detail view for a run.
type SelectRun struct {
	Key RunKey
}

// ClearSelection closes the detail view.
type ClearSelection struct{}

// ToggleSort sorts by a column: a repeat click flips direction, a new column
// starts descending.
type ToggleSort struct {
	Column SortColumn
}

func (SetRange) isAction()       {}
func (SetJobFilter) isAction()   {}
func (SetPage) isAction()        {}
func (SetPerPage) isAction()     {}
func (ToggleExpand) isAction()   {}
func (SelectRun) isAction()      {}
func (ClearSelection) isAction() {}
func (ToggleSort) isAction()     {}

// Reduce applies an action and returns the next state. Filter changes reset
// the page to 1 and bump the request generation; pagination across a changed
// filter is a defect this prevents.
func Reduce(s State, a Action) State {
	next := s
	next.Expanded = copySet(s.Expanded)

	switch act := a.(type) {
	case SetRange:
		next.Range = act.Range
		next.Page = 1
		next.Generation++

	case SetJobFilter:
		next.JobFilter = act.Name
		next.Page = 1
		next.Generation++

	case SetPage:
		if act.Page >= 1 {
			next.Page = act.Page
			next.Generation++
		}

	case SetPerPage:
		if act.PerPage >= 1 && act.PerPage <= types.MaxPerPage {
			next.PerPage = act.PerPage
			next.Page = 1
			next.Generation++
		}

	case ToggleExpand:
		if next.Expanded[act.JobID] {
			delete(next.Expanded, act.JobID)
		} else {
			next.Expanded[act.JobID] = true
		}

	case SelectRun:
		key := act.Key
		next.Selected = &key

	case ClearSelection:
		next.Selected = nil

	case ToggleSort:
		if s.SortColumn == act.Column {
			next.SortDesc = !s.SortDesc
		} else {
			next.SortColumn = act.Column
			next.SortDesc = true
		}
		next.Page = 1
		next.Generation++
	}

	return next
}

func copySet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
