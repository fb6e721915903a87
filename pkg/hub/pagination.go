package hub

import (
	"context"

	"github.com/fivetwenty-io/hubapi/internal/constants"
)

// PaginationOptions controls the pagination helpers.
type PaginationOptions struct {
	// PageSize is the limit used per request.
	PageSize int

	// MaxItems caps the total number of items fetched. Zero means no cap.
	MaxItems int
}

// PageIterator walks a paged collection item by item, fetching pages lazily.
type PageIterator[T any] struct {
	ctx     context.Context
	client  PagedClient[T]
	path    string
	params  *QueryParams
	items   []T
	index   int
	offset  int
	total   int
	fetched bool
	err     error
}

// NewPageIterator creates an iterator over the collection at path.
func NewPageIterator[T any](ctx context.Context, client PagedClient[T], path string, params *QueryParams) *PageIterator[T] {
	iterator := &PageIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params.Clone(),
	}

	if iterator.params.Limit <= 0 {
		iterator.params.Limit = constants.DefaultPageLimit
	}

	return iterator
}

// HasNext reports whether another item is available.
func (it *PageIterator[T]) HasNext() bool {
	if it.err != nil {
		return false
	}

	if it.index < len(it.items) {
		return true
	}

	if !it.fetched {
		return true
	}

	return it.offset < it.total
}

// Next returns the next item, fetching the next page when needed.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.err != nil {
		return zero, it.err
	}

	if it.index >= len(it.items) {
		err := it.fetchPage()
		if err != nil {
			it.err = err

			return zero, err
		}

		if len(it.items) == 0 {
			return zero, ErrNoMoreItems
		}
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// All drains the iterator and returns every remaining item.
func (it *PageIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *PageIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchPage() error {
	params := it.params.Clone()
	params.Offset = it.offset

	response, err := it.client.ListWithPath(it.ctx, it.path, params)
	if err != nil {
		return err
	}

	it.items = response.Items
	it.index = 0
	it.offset += len(response.Items)
	it.total = response.TotalCount
	it.fetched = true

	return nil
}

// FetchAllItems retrieves every item in a paged collection.
func FetchAllItems[T any](ctx context.Context, client PagedClient[T], path string, params *QueryParams, options *PaginationOptions) ([]T, error) {
	pageSize := constants.DefaultPageLimit
	maxItems := 0

	if options != nil {
		if options.PageSize > 0 {
			pageSize = options.PageSize
		}

		maxItems = options.MaxItems
	}

	requestParams := params.Clone()
	requestParams.Limit = pageSize

	var all []T

	offset := 0

	for {
		requestParams.Offset = offset

		response, err := client.ListWithPath(ctx, path, requestParams)
		if err != nil {
			return all, err
		}

		all = append(all, response.Items...)

		if maxItems > 0 && len(all) >= maxItems {
			return all[:maxItems], nil
		}

		offset += len(response.Items)
		if len(response.Items) == 0 || offset >= response.TotalCount {
			return all, nil
		}
	}
}

// PageResult is one page delivered by StreamItems.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamItems fetches pages in the background and delivers them on a channel.
// The channel closes after the last page or the first error.
func StreamItems[T any](ctx context.Context, client PagedClient[T], path string, params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	pageSize := constants.DefaultPageLimit
	if options != nil && options.PageSize > 0 {
		pageSize = options.PageSize
	}

	go func() {
		defer close(results)

		requestParams := params.Clone()
		requestParams.Limit = pageSize

		offset := 0

		for {
			requestParams.Offset = offset

			response, err := client.ListWithPath(ctx, path, requestParams)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: response.Items}:
			case <-ctx.Done():
				return
			}

			offset += len(response.Items)
			if len(response.Items) == 0 || offset >= response.TotalCount {
				return
			}
		}
	}()

	return results
}
