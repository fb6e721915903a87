package hub

import (
	"net/url"
	"strconv"
)

// QueryParams represents the query parameters accepted by list endpoints.
type QueryParams struct {
	// Limit is the page size.
	Limit int

	// Offset is the index of the first item to return.
	Offset int

	// Q is the search expression, e.g. "name:my-project".
	Q string

	// Sort orders the result set, e.g. "projectName ASC".
	Sort string

	// Filters render as repeated filter=key:value parameters.
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithOffset sets the offset.
func (q *QueryParams) WithOffset(offset int) *QueryParams {
	q.Offset = offset

	return q
}

// WithQ sets the search expression.
func (q *QueryParams) WithQ(query string) *QueryParams {
	q.Q = query

	return q
}

// WithSort sets the sort expression.
func (q *QueryParams) WithSort(sort string) *QueryParams {
	q.Sort = sort

	return q
}

// WithFilter appends values to a filter key.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// ToValues converts the parameters to url.Values. Filters become one
// filter=key:value entry per value.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}

	if q.Q != "" {
		values.Set("q", q.Q)
	}

	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	for key, filterValues := range q.Filters {
		for _, value := range filterValues {
			values.Add("filter", key+":"+value)
		}
	}

	return values
}

// Clone returns a copy safe to mutate independently.
func (q *QueryParams) Clone() *QueryParams {
	if q == nil {
		return NewQueryParams()
	}

	clone := &QueryParams{
		Limit:   q.Limit,
		Offset:  q.Offset,
		Q:       q.Q,
		Sort:    q.Sort,
		Filters: make(map[string][]string, len(q.Filters)),
	}

	for key, values := range q.Filters {
		clone.Filters[key] = append([]string(nil), values...)
	}

	return clone
}
