package repogithub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fabien-marty/github-push-release/internal/app/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(ClientOptions{
		Token:     "secret",
		UserAgent: "acme",
		BaseURL:   server.URL,
	})
	require.Nil(t, err)
	return client
}

func TestRequestHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "acme", r.Header.Get("User-Agent"))
		assert.Equal(t, "/repos/acme/widgets/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`[{"name":"v1.0.0"}]`))
	})
	resp, err := client.Request(context.Background(), http.MethodGet, "repos/acme/widgets/tags", nil)
	require.Nil(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsJSON())
	assert.Equal(t, []any{map[string]any{"name": "v1.0.0"}}, resp.Body)
}

func TestRequestNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	})
	resp, err := client.Request(context.Background(), http.MethodDelete, "repos/acme/widgets/releases/1", nil)
	require.Nil(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.False(t, resp.IsJSON())
	assert.Equal(t, "", resp.Body)
}

func TestRequestRawText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"looks":"like json"}`))
	})
	resp, err := client.Request(context.Background(), http.MethodGet, "foo", nil)
	require.Nil(t, err)
	assert.False(t, resp.IsJSON())
	assert.Equal(t, `{"looks":"like json"}`, resp.Body)
	var v map[string]string
	assert.NotNil(t, resp.Decode(&v))
}

func TestRequestAPIError(t *testing.T) {
	for _, status := range []int{400, 401, 404, 422, 429, 500, 503} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		})
		resp, err := client.Request(context.Background(), http.MethodGet, "repos/acme/widgets/tags", nil)
		var apiErr *repo.APIError
		require.True(t, errors.As(err, &apiErr), status)
		assert.Equal(t, status, apiErr.StatusCode)
		assert.Equal(t, status, resp.StatusCode)
		assert.Equal(t, http.MethodGet, apiErr.Method)
		assert.Contains(t, apiErr.URL, "/repos/acme/widgets/tags")
		assert.Equal(t, map[string]any{"message": "boom"}, apiErr.Body)
		assert.Contains(t, apiErr.Error(), "responded code")
	}
}

func TestRequestAPIErrorWithBadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})
	_, err := client.Request(context.Background(), http.MethodGet, "foo", nil)
	var apiErr *repo.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 502, apiErr.StatusCode)
	assert.Equal(t, "<html>bad gateway</html>", apiErr.Body)
}

func TestRequestBinaryBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		assert.Equal(t, int64(5), r.ContentLength)
		data, err := io.ReadAll(r.Body)
		assert.Nil(t, err)
		assert.Equal(t, "hello", string(data))
		w.WriteHeader(http.StatusCreated)
	})
	resp, err := client.Request(context.Background(), http.MethodPost, "upload", BinaryBody([]byte("hello")))
	require.Nil(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestRequestJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		assert.Nil(t, err)
		assert.JSONEq(t, `{"foo":"bar"}`, string(data))
		w.WriteHeader(http.StatusCreated)
	})
	_, err := client.Request(context.Background(), http.MethodPost, "create", JSONBody(map[string]string{"foo": "bar"}))
	require.Nil(t, err)
}

func TestRequestBodyBuilderError(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	_, err := client.Request(context.Background(), http.MethodPost, "create", func(req *http.Request) error {
		return errors.New("can't build")
	})
	assert.NotNil(t, err)
	assert.False(t, called)
}
