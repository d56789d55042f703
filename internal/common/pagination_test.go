package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		totalItems int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of several", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last page", 3, 10, 25, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty result", 1, 10, 0, 0, false, false},
		{"out of range page", 5, 10, 25, 3, false, true},
		{"single item", 1, 1, 1, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.totalItems)
			assert.Equal(t, tt.totalPages, p.TotalPages, "total_pages")
			assert.Equal(t, tt.hasNext, p.HasNext, "has_next")
			assert.Equal(t, tt.hasPrev, p.HasPrev, "has_prev")
			assert.Equal(t, tt.totalItems, p.TotalItems, "total_items")
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PerPage: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, PerPage: 10}.Offset())
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&per_page=25", nil)
	page, perPage := PageParams(r)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, perPage)

	r = httptest.NewRequest("GET", "/", nil)
	page, perPage = PageParams(r)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPerPage, perPage)

	r = httptest.NewRequest("GET", "/?page=-1&per_page=5000", nil)
	page, perPage = PageParams(r)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPerPage, perPage)
}
