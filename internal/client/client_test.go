package client

import (
	"net/http/httptest"

	internalhttp "github.com/fivetwenty-io/hubapi/internal/http"
)

// newTestClient builds a client against a test server with no authentication.
func newTestClient(server *httptest.Server) *Client {
	return New(internalhttp.NewClient(server.URL, nil))
}
