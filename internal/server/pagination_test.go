package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		total      int
		totalPages int
		hasPrev    bool
		hasNext    bool
	}{
		{"first of three", 1, 25, 3, false, true},
		{"middle", 2, 25, 3, true, true},
		{"last", 3, 25, 3, true, false},
		{"past the end", 4, 25, 3, true, false},
		{"exact multiple", 2, 20, 2, true, false},
		{"empty", 1, 0, 0, false, false},
		{"page below one is clamped", 0, 5, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.page, 10, tt.total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasPrev, p.HasPrev())
			assert.Equal(t, tt.hasNext, p.HasNext())
		})
	}
}

func TestPageParam(t *testing.T) {
	for query, want := range map[string]int{
		"page=3":      3,
		"page=0":      1,
		"page=-2":     1,
		"page=banana": 1,
		"":            1,
	} {
		r := httptest.NewRequest(http.MethodGet, "/pagination?"+query, nil)
		assert.Equal(t, want, pageParam(r), query)
	}
}
