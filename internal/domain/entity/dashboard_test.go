package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{name: "empty", page: 1, limit: 12, total: 0, want: Pagination{Page: 1, Limit: 12}},
		{name: "middle page", page: 2, limit: 12, total: 30, want: Pagination{Page: 2, Limit: 12, TotalCount: 30, TotalPages: 3, HasNext: true, HasPrev: true}},
		{name: "last page", page: 3, limit: 12, total: 30, want: Pagination{Page: 3, Limit: 12, TotalCount: 30, TotalPages: 3, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestPagination_WireKeysAreSnakeCase(t *testing.T) {
	data, err := json.Marshal(NewPagination(2, 12, 30))
	require.NoError(t, err)

	assert.JSONEq(t, `{"page":2,"limit":12,"total_count":30,"total_pages":3,"has_next":true,"has_prev":true}`, string(data))
}
