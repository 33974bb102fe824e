package repository

import "strconv"

// Defaults applied when page or limit query parameters are missing or
// unparsable.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageQuery carries 1-based pagination parameters.
type PageQuery struct {
	Page  int
	Limit int
}

// Offset converts the 1-based page into a row offset.
func (q PageQuery) Offset() int { return (q.Page - 1) * q.Limit }

// ParsePage builds a PageQuery from raw query-string values. Empty,
// non-numeric or sub-1 input falls back to the defaults instead of
// being rejected.
func ParsePage(pageStr, limitStr string) PageQuery {
	q := PageQuery{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		q.Page = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n >= 1 {
		q.Limit = n
	}
	return q
}

// Meta describes one page of a larger result set.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta computes pagination metadata; totalPages is ceil(total/limit).
func NewMeta(total int64, q PageQuery) Meta {
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return Meta{Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}

// Page is the envelope every paginated endpoint responds with.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPage wraps rows and metadata, normalizing nil slices so the JSON
// body always carries an array.
func NewPage[T any](rows []T, total int64, q PageQuery) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{Data: rows, Meta: NewMeta(total, q)}
}
