package models

// PagedResult is one page of a larger result set. TotalCount is the full
// matching-set cardinality, computed independently of the page slice.
type PagedResult[T any] struct {
	Items        []T
	TotalCount   int
	ItemsPerPage int
	CurrentPage  int
}

func (p PagedResult[T]) TotalPages() int {
	if p.ItemsPerPage <= 0 {
		return 0
	}
	return (p.TotalCount + p.ItemsPerPage - 1) / p.ItemsPerPage
}

type PageRequest struct {
	Page     int
	PageSize int
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)
