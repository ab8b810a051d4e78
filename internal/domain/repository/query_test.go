package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_NilPageReturnsEverything(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	result := Paginate(items, nil)

	assert.Equal(t, items, result.Data)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 5, result.PageSize)
	assert.Equal(t, 1, result.TotalPages)
}

func TestPaginate_BeyondLastPageIsEmptyNotError(t *testing.T) {
	items := []int{1, 2, 3}

	result := Paginate(items, &Page{Page: 9, PageSize: 2})

	assert.Empty(t, result.Data)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 9, result.Page)
	assert.Equal(t, 2, result.TotalPages)
}

func TestPaginate_PartialLastPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	result := Paginate(items, &Page{Page: 3, PageSize: 2})

	assert.Equal(t, []string{"e"}, result.Data)
	assert.Equal(t, 3, result.TotalPages)
}

func TestPaginate_ClampsInvalidPageRequest(t *testing.T) {
	items := []int{1, 2, 3}

	result := Paginate(items, &Page{Page: 0, PageSize: 0})

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PageSize)
	assert.Equal(t, []int{1}, result.Data)
}

// Concatenating every page must reconstruct the sequence exactly once per
// element, for any page size.
func TestPaginate_PagesReconstructSequence(t *testing.T) {
	const n = 17
	items := make([]int, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, i)
	}

	for pageSize := 1; pageSize <= n+2; pageSize++ {
		var rebuilt []int
		totalPages := (n + pageSize - 1) / pageSize

		for page := 1; page <= totalPages; page++ {
			result := Paginate(items, &Page{Page: page, PageSize: pageSize})
			require.Equal(t, n, result.Total)
			require.Equal(t, totalPages, result.TotalPages)
			rebuilt = append(rebuilt, result.Data...)
		}

		assert.Equal(t, items, rebuilt, "pageSize %d", pageSize)
	}
}

func TestNewPagedResult_MatchesPaginateMetadata(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	page := &Page{Page: 2, PageSize: 3}

	sliced := Paginate(items, page)
	assembled := NewPagedResult(items[3:6], len(items), &Page{Page: 2, PageSize: 3})

	assert.Equal(t, sliced, assembled)
}
