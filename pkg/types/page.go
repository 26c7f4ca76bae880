package types

// Page is a paginated result set. Invariants are enforced by NewPage:
// total_pages = ceil(total_count / per_page), has_next = page < total_pages,
// has_previous = page > 1.
type Page[T any] struct {
	Data        []T  `json:"data"`
	TotalCount  int  `json:"total_count"`
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage builds a Page with its derived metadata. A nil data slice is
// normalized to an empty one so the JSON "data" field is always an array.
func NewPage[T any](data []T, totalCount, page, perPage int) Page[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := totalCount / perPage
	if totalCount%perPage > 0 {
		totalPages++
	}

	return Page[T]{
		Data:        data,
		TotalCount:  totalCount,
		Page:        page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
