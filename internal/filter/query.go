package filter

import (
	"strings"

	"github.com/siahsang/news/internal/utils/collectionutils"
	"github.com/siahsang/news/internal/utils/stringutils"
	"github.com/siahsang/news/internal/validator"
)

// Field maps a query-string parameter onto the column it filters or sorts by.
type Field struct {
	Param  string
	Column string
}

// ArticleEqualityFields is the allow-list of equality filters on the article
// listing, in the order their predicates are emitted.
var ArticleEqualityFields = []Field{
	{Param: "topic", Column: "a.topic"},
	{Param: "author", Column: "a.author"},
}

var ArticleSortFields = []Field{
	{Param: "created_at", Column: "a.created_at"},
	{Param: "votes", Column: "a.votes"},
	{Param: "title", Column: "a.title"},
	{Param: "author", Column: "a.author"},
	{Param: "topic", Column: "a.topic"},
	{Param: "article_id", Column: "a.article_id"},
	{Param: "comment_count", Column: "comment_count"},
}

const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
)

type ArticleQuery struct {
	Equals map[string]string
	SortBy string
	Order  string
	Filter Filter
}

func NewArticleQuery() ArticleQuery {
	return ArticleQuery{
		Equals: map[string]string{},
		SortBy: DefaultSortBy,
		Order:  DefaultOrder,
		Filter: NewFilter(0, 1),
	}
}

func ValidateArticleQuery(v *validator.Validator, q ArticleQuery) {
	sortParams := collectionutils.Map(ArticleSortFields, func(f Field) string { return f.Param })
	v.CheckPermittedValue(q.SortBy, "sort_by", sortParams...)
	v.CheckPermittedValue(q.Order, "order", "asc", "desc")
	ValidateFilters(v, q.Filter)
}

// Where renders a conjunction of equality predicates for the recognized keys
// of values. Unknown keys are ignored and an empty result means no WHERE
// clause. Placeholders are numbered from len(args)+1.
func Where(values map[string]string, allowed []Field, args []any) (string, []any) {
	var predicates []string
	for _, field := range allowed {
		value, ok := values[field.Param]
		if !ok {
			continue
		}
		args = append(args, value)
		predicates = append(predicates, field.Column+" = "+stringutils.Placeholder(len(args)))
	}

	if len(predicates) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(predicates, " AND "), args
}

func sortColumn(param string) string {
	for _, f := range ArticleSortFields {
		if f.Param == param {
			return f.Column
		}
	}
	return "a.created_at"
}

// BuildArticleList renders the listing query: articles left-joined to their
// comments, grouped per article with a comment_count, filtered by q.Equals.
func BuildArticleList(q ArticleQuery) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes, a.article_img_url,
       COUNT(c.comment_id) AS comment_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id`)

	where, args := Where(q.Equals, ArticleEqualityFields, nil)
	sb.WriteString(where)
	sb.WriteString("\nGROUP BY a.article_id")

	dir := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		dir = "ASC"
	}
	sb.WriteString("\nORDER BY " + sortColumn(q.SortBy) + " " + dir + ", a.article_id " + dir)

	if q.Filter.Limit > 0 {
		args = append(args, q.Filter.Limit)
		sb.WriteString("\nLIMIT " + stringutils.Placeholder(len(args)))
		args = append(args, q.Filter.Offset())
		sb.WriteString(" OFFSET " + stringutils.Placeholder(len(args)))
	}

	return sb.String(), args
}

// BuildArticleCount counts the rows BuildArticleList would return without paging.
func BuildArticleCount(q ArticleQuery) (string, []any) {
	where, args := Where(q.Equals, ArticleEqualityFields, nil)
	return "SELECT COUNT(*) FROM articles a" + where, args
}
