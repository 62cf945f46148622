package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerTransport(t *testing.T, handler http.HandlerFunc) (*resendTransport, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &resendTransport{
		apiKey:   "re_test",
		endpoint: srv.URL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}, srv
}

func TestResendTransport_Send(t *testing.T) {
	msg := Message{
		From:    "Reports <reports@example.com>",
		To:      []string{"admin@example.com"},
		Subject: "New submission",
		HTML:    "<p>doc</p>",
	}

	t.Run("success", func(t *testing.T) {
		tr, _ := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Reports <reports@example.com>", body["from"])
			assert.Equal(t, []any{"admin@example.com"}, body["to"])
			assert.Equal(t, "New submission", body["subject"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"msg-abc"}`))
		})

		id, err := tr.Send(context.Background(), msg)

		assert.NoError(t, err)
		assert.Equal(t, "msg-abc", id)
	})

	t.Run("provider error body decoded", func(t *testing.T) {
		tr, _ := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"statusCode":403,"name":"validation_error","message":"The example.com domain is not verified."}`))
		})

		id, err := tr.Send(context.Background(), msg)

		assert.Empty(t, id)
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, http.StatusForbidden, pe.StatusCode)
		assert.Equal(t, "validation_error", pe.Name)
		assert.Contains(t, pe.Message, "not verified")
	})

	t.Run("non-JSON error body yields a status message", func(t *testing.T) {
		tr, _ := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream blew up"))
		})

		_, err := tr.Send(context.Background(), msg)

		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, http.StatusBadGateway, pe.StatusCode)
		assert.Contains(t, pe.Message, "502")
	})

	t.Run("network failure is wrapped, not a ProviderError", func(t *testing.T) {
		tr, srv := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		_, err := tr.Send(context.Background(), msg)

		require.Error(t, err)
		var pe *ProviderError
		assert.False(t, errors.As(err, &pe))
		assert.Contains(t, err.Error(), "provider request failed")
	})
}
