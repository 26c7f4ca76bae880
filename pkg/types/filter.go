package types

import "fmt"

// Pagination bounds for spend queries.
const (
	DefaultPerPage = 50
	MaxPerPage     = 500
)

// SpendFilter is the validated filter for run-cost and grouped-job queries.
type SpendFilter struct {
	Range   DateRange
	JobName string // substring match on job name/id, empty means no filter
	Page    int    // 1-based
	PerPage int
}

// Validate fails fast before any warehouse read is issued. Out-of-bound
// pagination is rejected, not clamped; a page past the last page is valid and
// simply yields an empty result.
func (f SpendFilter) Validate() error {
	if err := f.Range.Validate(); err != nil {
		return err
	}
	if f.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidPage, f.Page)
	}
	if f.PerPage < 1 || f.PerPage > MaxPerPage {
		return fmt.Errorf("%w: per_page must be in [1,%d], got %d", ErrInvalidPage, MaxPerPage, f.PerPage)
	}
	return nil
}

// Offset converts the 1-based page into a row offset.
func (f SpendFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}
