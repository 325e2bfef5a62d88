package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siahsang/news/internal/validator"
)

func TestWhere(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			values:    map[string]string{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "topic only",
			values:    map[string]string{"topic": "cats"},
			wantWhere: " WHERE a.topic = $1",
			wantArgs:  []any{"cats"},
		},
		{
			name:      "topic and author keep allow-list order",
			values:    map[string]string{"author": "rogersop", "topic": "mitch"},
			wantWhere: " WHERE a.topic = $1 AND a.author = $2",
			wantArgs:  []any{"mitch", "rogersop"},
		},
		{
			name:      "unknown keys are ignored",
			values:    map[string]string{"colour": "red", "author": "lurker"},
			wantWhere: " WHERE a.author = $1",
			wantArgs:  []any{"lurker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := Where(tt.values, ArticleEqualityFields, nil)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestWhereContinuesPlaceholderNumbering(t *testing.T) {
	where, args := Where(map[string]string{"topic": "paper"}, ArticleEqualityFields, []any{42})
	assert.Equal(t, " WHERE a.topic = $2", where)
	assert.Equal(t, []any{42, "paper"}, args)
}

func TestBuildArticleListDefaults(t *testing.T) {
	query, args := BuildArticleList(NewArticleQuery())

	assert.Contains(t, query, "LEFT JOIN comments c ON c.article_id = a.article_id")
	assert.Contains(t, query, "GROUP BY a.article_id")
	assert.Contains(t, query, "ORDER BY a.created_at DESC, a.article_id DESC")
	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestBuildArticleListSortAndPaging(t *testing.T) {
	q := NewArticleQuery()
	q.Equals["topic"] = "mitch"
	q.SortBy = "comment_count"
	q.Order = "asc"
	q.Filter = NewFilter(5, 3)

	query, args := BuildArticleList(q)

	assert.Contains(t, query, "WHERE a.topic = $1")
	assert.Contains(t, query, "ORDER BY comment_count ASC, a.article_id ASC")
	assert.True(t, strings.HasSuffix(query, "LIMIT $2 OFFSET $3"), query)
	assert.Equal(t, []any{"mitch", int64(5), int64(10)}, args)
}

func TestBuildArticleCount(t *testing.T) {
	q := NewArticleQuery()
	q.Equals["author"] = "butter_bridge"
	q.Filter = NewFilter(10, 2)

	query, args := BuildArticleCount(q)

	assert.Equal(t, "SELECT COUNT(*) FROM articles a WHERE a.author = $1", query)
	assert.Equal(t, []any{"butter_bridge"}, args)
}

func TestValidateArticleQuery(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *ArticleQuery)
		wantKey string
	}{
		{name: "defaults are valid", mutate: func(q *ArticleQuery) {}},
		{name: "bad sort column", mutate: func(q *ArticleQuery) { q.SortBy = "body" }, wantKey: "sort_by"},
		{name: "bad order", mutate: func(q *ArticleQuery) { q.Order = "sideways" }, wantKey: "order"},
		{name: "limit too large", mutate: func(q *ArticleQuery) { q.Filter.Limit = 101 }, wantKey: "limit"},
		{name: "page zero", mutate: func(q *ArticleQuery) { q.Filter.Page = 0 }, wantKey: "p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewArticleQuery()
			tt.mutate(&q)

			v := validator.New()
			ValidateArticleQuery(v, q)

			if tt.wantKey == "" {
				assert.True(t, v.IsValid(), v.Errors)
				return
			}
			assert.Contains(t, v.Errors, tt.wantKey)
		})
	}
}

func TestFilterOffset(t *testing.T) {
	assert.Equal(t, int64(0), NewFilter(0, 4).Offset())
	assert.Equal(t, int64(0), NewFilter(10, 1).Offset())
	assert.Equal(t, int64(20), NewFilter(10, 3).Offset())
}
