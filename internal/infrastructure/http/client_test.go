package httpinfra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
	"github.com/soulstoneaddons/bepinex-installer/internal/logging"
)

const testAgent = "Mozilla/5.0 (compatible; Googlebot/2.1)"

func newTestClient() *Client {
	return NewClient(testAgent, 0, logging.Nop())
}

func TestGet_SendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := newTestClient().Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, testAgent, gotAgent)
}

func TestGet_ForbiddenIsRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, domain.IsRateLimited(err))
}

func TestGet_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)

	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
	assert.ErrorContains(t, err, "500")
}

func TestGet_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient().Get(context.Background(), url)

	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestGetJSON_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "not a list"}`))
	}))
	defer server.Close()

	var out []string
	err := newTestClient().GetJSON(context.Background(), server.URL, &out)

	assert.Equal(t, domain.KindDecode, domain.KindOf(err))
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "file.bin")
	n, err := newTestClient().Download(context.Background(), server.URL, path)

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDownload_MissingDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "missing", "file.bin")
	_, err := newTestClient().Download(context.Background(), server.URL, path)

	assert.Equal(t, domain.KindIO, domain.KindOf(err))
}

func TestGet_TooManyRequestsIsRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)

	assert.True(t, domain.IsRateLimited(err))
}
