package models

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageQuery carries validated pagination parameters parsed from a request.
type PageQuery struct {
	Page     int
	PageSize int
}

func parseIntParam(values url.Values, key string, def int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// ParsePageQuery parses and validates page/page_size query parameters.
// Page starts at 1; page_size is capped at 100.
func ParsePageQuery(values url.Values) (PageQuery, error) {
	page, err := parseIntParam(values, "page", defaultPage)
	if err != nil {
		return PageQuery{}, err
	}
	size, err := parseIntParam(values, "page_size", defaultPageSize)
	if err != nil {
		return PageQuery{}, err
	}
	if page < 1 {
		return PageQuery{}, fmt.Errorf("page must be >= 1")
	}
	if size < 1 || size > maxPageSize {
		return PageQuery{}, fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
	}
	return PageQuery{Page: page, PageSize: size}, nil
}

// Offset returns the zero-based offset of the first item on the page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Limit returns the maximum number of items on the page.
func (q PageQuery) Limit() int {
	return q.PageSize
}

// Meta builds pagination metadata for a result set of the given total size.
func (q PageQuery) Meta(total int) PaginationMeta {
	return PaginationMeta{
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		HasNext:  q.Page*q.PageSize < total,
	}
}
