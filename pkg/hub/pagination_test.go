package hub

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPageFetch = errors.New("page fetch failed")

// pagedStub serves a fixed item list in pages and counts requests.
type pagedStub struct {
	items    []string
	failFrom int
	calls    int
}

func (s *pagedStub) ListWithPath(_ context.Context, _ string, params *QueryParams) (*PagedResponse[string], error) {
	s.calls++

	if s.failFrom > 0 && s.calls >= s.failFrom {
		return nil, errPageFetch
	}

	end := params.Offset + params.Limit
	if end > len(s.items) {
		end = len(s.items)
	}

	var items []string
	if params.Offset < len(s.items) {
		items = s.items[params.Offset:end]
	}

	return &PagedResponse[string]{
		TotalCount: len(s.items),
		Items:      items,
	}, nil
}

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = string(rune('a' + i))
	}

	return items
}

func TestPageIteratorAll(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(5)}
	iterator := NewPageIterator[string](context.Background(), stub, "/api/projects", NewQueryParams().WithLimit(2))

	all, err := iterator.All()
	require.NoError(t, err)
	assert.Equal(t, makeItems(5), all)
	assert.Equal(t, 3, stub.calls)
}

func TestPageIteratorNext(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(3)}
	iterator := NewPageIterator[string](context.Background(), stub, "/api/projects", NewQueryParams().WithLimit(2))

	for i := 0; i < 3; i++ {
		require.True(t, iterator.HasNext())

		item, err := iterator.Next()
		require.NoError(t, err)
		assert.Equal(t, makeItems(3)[i], item)
	}

	assert.False(t, iterator.HasNext())
}

func TestPageIteratorEmpty(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{}
	iterator := NewPageIterator[string](context.Background(), stub, "/api/projects", nil)

	assert.True(t, iterator.HasNext())

	_, err := iterator.Next()
	require.ErrorIs(t, err, ErrNoMoreItems)
}

func TestPageIteratorError(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(5), failFrom: 2}
	iterator := NewPageIterator[string](context.Background(), stub, "/api/projects", NewQueryParams().WithLimit(2))

	_, err := iterator.Next()
	require.NoError(t, err)

	_, err = iterator.Next()
	require.NoError(t, err)

	_, err = iterator.Next()
	require.ErrorIs(t, err, errPageFetch)
	assert.False(t, iterator.HasNext())
}

func TestPageIteratorForEach(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(4)}
	iterator := NewPageIterator[string](context.Background(), stub, "/api/projects", NewQueryParams().WithLimit(3))

	var seen []string

	err := iterator.ForEach(func(item string) error {
		seen = append(seen, item)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, makeItems(4), seen)
}

func TestFetchAllItems(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(7)}

	all, err := FetchAllItems[string](context.Background(), stub, "/api/projects", nil, &PaginationOptions{PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, makeItems(7), all)
	assert.Equal(t, 3, stub.calls)
}

func TestFetchAllItemsMaxItems(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(10)}

	all, err := FetchAllItems[string](context.Background(), stub, "/api/projects", nil, &PaginationOptions{
		PageSize: 4,
		MaxItems: 5,
	})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStreamItems(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(6)}

	var all []string

	for result := range StreamItems[string](context.Background(), stub, "/api/projects", nil, &PaginationOptions{PageSize: 2}) {
		require.NoError(t, result.Err)

		all = append(all, result.Items...)
	}

	assert.Equal(t, makeItems(6), all)
}

func TestStreamItemsError(t *testing.T) {
	t.Parallel()

	stub := &pagedStub{items: makeItems(6), failFrom: 2}

	var lastErr error

	for result := range StreamItems[string](context.Background(), stub, "/api/projects", nil, &PaginationOptions{PageSize: 2}) {
		if result.Err != nil {
			lastErr = result.Err
		}
	}

	require.ErrorIs(t, lastErr, errPageFetch)
}
