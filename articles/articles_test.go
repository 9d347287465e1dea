package articles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		page  int
		limit int
		want  Pagination
	}{
		{
			"first of several",
			42, 1, 10,
			Pagination{CurrentPage: 1, TotalPages: 5, TotalArticles: 42, HasNext: true, HasPrev: false},
		},
		{
			"middle page",
			42, 3, 10,
			Pagination{CurrentPage: 3, TotalPages: 5, TotalArticles: 42, HasNext: true, HasPrev: true},
		},
		{
			"last page",
			42, 5, 10,
			Pagination{CurrentPage: 5, TotalPages: 5, TotalArticles: 42, HasNext: false, HasPrev: true},
		},
		{
			"exact multiple",
			40, 4, 10,
			Pagination{CurrentPage: 4, TotalPages: 4, TotalArticles: 40, HasNext: false, HasPrev: true},
		},
		{
			"no articles",
			0, 1, 10,
			Pagination{CurrentPage: 1, TotalPages: 0, TotalArticles: 0, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildPagination(tt.total, tt.page, tt.limit))
		})
	}
}

func TestNormalizeArticleUpdate(t *testing.T) {
	update := normalizeArticleUpdate(map[string]any{
		"articleid":   "a-forged",
		"_id":         "abc",
		"title":       "New Title",
		"bandId":      "b1",
		"imageUrl":    "cover.jpg",
		"publishDate": "2026-01-01T00:00:00Z",
		"readTime":    7,
	})

	assert.Equal(t, map[string]any{
		"title":       "New Title",
		"bandid":      "b1",
		"imageurl":    "cover.jpg",
		"publishdate": "2026-01-01T00:00:00Z",
		"readtime":    7,
	}, update)
}

func TestNormalizeArticleUpdateAllManaged(t *testing.T) {
	assert.Empty(t, normalizeArticleUpdate(map[string]any{"articleid": "x", "_id": "y"}))
}
