package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/hubapi/pkg/hubclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCopyrights(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/versions/1/components":
			_, _ = w.Write([]byte(`{
				"totalCount": 2,
				"items": [
					{
						"componentName": "alpha",
						"componentVersionName": "1.0.0",
						"_meta": {"links": [{"rel": "origins", "href": "/api/components/alpha/origins"}]}
					},
					{
						"componentName": "beta",
						"componentVersionName": "2.0.0",
						"origins": [{"name": "beta-src", "_meta": {"href": "/api/origins/2"}}]
					}
				]
			}`))
		case "/api/components/alpha/origins":
			_, _ = w.Write([]byte(`{
				"totalCount": 1,
				"items": [{"originName": "alpha-src", "_meta": {"href": "/api/origins/1"}}]
			}`))
		case "/api/origins/1/copyrights":
			_, _ = w.Write([]byte(`{
				"totalCount": 1,
				"items": [{"active": true, "updatedCopyright": "Copyright (c) A\nAll rights reserved"}]
			}`))
		case "/api/origins/2/copyrights":
			_, _ = w.Write([]byte(`{
				"totalCount": 2,
				"items": [
					{"active": true, "kbCopyright": "Copyright (c) B"},
					{"active": false, "kbCopyright": "Copyright (c) retired"}
				]
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := hubclient.NewWithBearerToken(context.Background(), server.URL, "bearer")
	require.NoError(t, err)

	rows, err := collectCopyrights(context.Background(), client, "/api/versions/1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// A component without embedded origins covers every origin fetched
	// through the component endpoint.
	assert.Equal(t, "alpha", rows[0].Component)
	assert.Equal(t, "alpha-src", rows[0].Origin)
	assert.Equal(t, "Copyright (c) A All rights reserved", rows[0].Copyright)

	assert.Equal(t, "beta", rows[1].Component)
	assert.Equal(t, "beta-src", rows[1].Origin)
	assert.Equal(t, "Copyright (c) B", rows[1].Copyright)
}
