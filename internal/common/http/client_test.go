// internal/common/http/client_test.go
package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNewClientSetsTimeout(t *testing.T) {
	c := NewClient(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Underlying().Timeout)
}

func TestWrap(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	assert.Same(t, hc, Wrap(hc).Underlying())
}
