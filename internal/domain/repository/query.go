// Package repository defines the interfaces for the persistence layer.
package repository

// Page requests one page of a result set. Page is 1-based.
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps the page request to the contract's minimums.
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
}

// PagedResult is the uniform paginated-query envelope returned by every
// gateway, on both the durable and the volatile path.
type PagedResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices an already-filtered, already-sorted sequence into one page.
// A nil page request returns the full sequence as a single page. Requests
// past the last page yield an empty data slice, never an error.
func Paginate[T any](items []T, page *Page) PagedResult[T] {
	if page == nil {
		return PagedResult[T]{
			Data:       items,
			Total:      len(items),
			Page:       1,
			PageSize:   len(items),
			TotalPages: 1,
		}
	}

	page.Normalize()

	start := (page.Page - 1) * page.PageSize
	end := start + page.PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return NewPagedResult(items[start:end], len(items), page)
}

// NewPagedResult assembles the pagination metadata for a page of data whose
// total is already known. The durable path uses it after COUNT + OFFSET/LIMIT
// so both execution paths report identical metadata.
func NewPagedResult[T any](data []T, total int, page *Page) PagedResult[T] {
	if page == nil {
		return PagedResult[T]{
			Data:       data,
			Total:      total,
			Page:       1,
			PageSize:   len(data),
			TotalPages: 1,
		}
	}

	page.Normalize()
	totalPages := (total + page.PageSize - 1) / page.PageSize

	return PagedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	}
}
