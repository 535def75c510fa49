package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyMarketplace/pkg/logger"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Beauty", req.From)
		assert.Equal(t, "+15550001", req.To)

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"sms_1","status":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "Beauty", time.Second, logger.NewNop())
	id, err := client.Send(context.Background(), "+15550001", "Reminder")
	require.NoError(t, err)
	assert.Equal(t, "sms_1", id)
}

func TestSend_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "Beauty", time.Second, logger.NewNop())
	_, err := client.Send(context.Background(), "+15550001", "Reminder")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.Send(context.Background(), "", "Reminder")
	assert.ErrorIs(t, err, ErrNoRecipient)
}
