package hubclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := New(ctx, nil)
	require.ErrorIs(t, err, hub.ErrConfigRequired)

	_, err = New(ctx, &hub.Config{})
	require.ErrorIs(t, err, hub.ErrServerURLRequired)

	_, err = New(ctx, &hub.Config{ServerURL: "hub.example.com"})
	require.ErrorIs(t, err, hub.ErrTokenRequired)
}

func TestNewWithBearerToken(t *testing.T) {
	t.Parallel()

	client, err := NewWithBearerToken(context.Background(), "hub.example.com", "bearer")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NotNil(t, client.Projects())
	assert.NotNil(t, client.Copyrights())
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "bare hostname", in: "hub.example.com", want: "https://hub.example.com"},
		{name: "trailing slash", in: "https://hub.example.com/", want: "https://hub.example.com"},
		{name: "http preserved", in: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "whitespace trimmed", in: "  hub.example.com  ", want: "https://hub.example.com"},
		{name: "no host", in: "https://", wantErr: hub.ErrNoHostInURL},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalizeEndpoint(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateConnection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/current-user", r.URL.Path)
		assert.Equal(t, "Bearer bearer", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"userName": "sysadmin", "active": true}`))
	}))
	defer server.Close()

	client, err := NewWithBearerToken(context.Background(), server.URL, "bearer")
	require.NoError(t, err)

	user, err := ValidateConnection(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "sysadmin", user.UserName)
}

func TestValidateConnectionRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessage":"invalid token"}`))
	}))
	defer server.Close()

	client, err := NewWithBearerToken(context.Background(), server.URL, "bad")
	require.NoError(t, err)

	_, err = ValidateConnection(context.Background(), client)
	require.Error(t, err)
	assert.True(t, hub.IsUnauthorized(err))
}

func TestNewWithCache(t *testing.T) {
	t.Parallel()

	client, err := New(context.Background(), &hub.Config{
		ServerURL:   "hub.example.com",
		BearerToken: "bearer",
		Cache: &hub.CacheConfig{
			Type:   hub.CacheTypeMemory,
			Memory: &hub.MemoryCacheConfig{MaxSize: 100},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, client)
}
