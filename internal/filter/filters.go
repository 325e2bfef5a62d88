package filter

import "github.com/siahsang/news/internal/validator"

// Filter carries paging. A zero Limit means the listing is not paged.
type Filter struct {
	Limit int64
	Page  int64
}

type Metadata struct {
	TotalCount int64
}

func NewFilter(limit, page int64) Filter {
	return Filter{
		Limit: limit,
		Page:  page,
	}
}

func (f Filter) Offset() int64 {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

func ValidateFilters(v *validator.Validator, filters Filter) {
	v.Check(filters.Limit >= 0, "limit", "must be greater than or equal to 0")
	v.Check(filters.Limit <= 100, "limit", "must be a maximum of 100")
	v.Check(filters.Page >= 1, "p", "must be greater than 0")
	v.Check(filters.Page <= 10_000_000, "p", "must be a maximum of 10_000_000")
}
