package afs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/tripbooking/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(config.AFSConfig{BaseURL: url, APIKey: "test-key", TimeoutSeconds: 2})
}

func TestCancelFlight_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings/cancel", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "REF123", req["bookingReference"])
		assert.Equal(t, "Smith", req["lastName"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"CANCELLED","bookingReference":"REF123"}`))
	}))
	defer srv.Close()

	confirmation, err := newTestClient(srv.URL).CancelFlight(context.Background(), "REF123", "Smith")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"CANCELLED","bookingReference":"REF123"}`, string(confirmation))
}

func TestCancelFlight_BusinessRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Booking already cancelled"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CancelFlight(context.Background(), "REF123", "Smith")
	require.Error(t, err)

	rejection := IsBusinessRejection(err)
	require.NotNil(t, rejection)
	assert.Equal(t, "Booking already cancelled", rejection.Message)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestCancelFlight_BadRequestWithoutBodyIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CancelFlight(context.Background(), "REF123", "Smith")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Nil(t, IsBusinessRejection(err))
}

func TestCancelFlight_ServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CancelFlight(context.Background(), "REF123", "Smith")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCancelFlight_ConnectionErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).CancelFlight(context.Background(), "REF123", "Smith")
	assert.ErrorIs(t, err, ErrUpstream)
}
