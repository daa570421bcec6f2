package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", 0, 0, 1, 20, 0},
		{"clamped size", 2, 500, 2, 100, 100},
		{"regular", 3, 10, 3, 10, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantSize, p.Limit())
			assert.Equal(t, tc.wantOffset, p.Offset())
		})
	}
}

func TestNewPagedResult(t *testing.T) {
	r := NewPagedResult([]int{1, 2, 3}, 23, NewPagination(1, 10))
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, int64(23), r.Total)
	assert.Len(t, r.Items, 3)

	empty := NewPagedResult([]int{}, 0, NewPagination(1, 10))
	assert.Zero(t, empty.TotalPages)
}
