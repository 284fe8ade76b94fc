package channel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhook_DeliverPostsPayload(t *testing.T) {
	var (
		got     WebhookPayload
		headers http.Header
		method  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.Client(), WebhookOpts{
		UserAgent: "Expirus/test",
		EventName: "Subscription Expiry",
		Username:  "Subscription Monitor",
	})

	err := wh.Deliver(context.Background(), srv.URL, notification.Message{
		Body:   "Netflix expires in 3 days",
		Status: notification.StatusReminder,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "Expirus/test", headers.Get("User-Agent"))
	assert.Equal(t, WebhookPayload{
		EventName: "Subscription Expiry",
		Message:   "Netflix expires in 3 days",
		Status:    "success",
		Username:  "Subscription Monitor",
	}, got)
}

func TestWebhook_MessageEventOverridesDefault(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.Client(), WebhookOpts{EventName: "default"})
	require.NoError(t, wh.Deliver(context.Background(), srv.URL, notification.Message{Event: "custom"}))
	assert.Equal(t, "custom", got.EventName)
}

func TestWebhook_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.Client(), WebhookOpts{})
	err := wh.Deliver(context.Background(), srv.URL, notification.Message{Body: "x"})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Body)
	assert.Equal(t, "webhook status 500: boom", err.Error())
}

func TestWebhook_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	wh := NewWebhook(srv.Client(), WebhookOpts{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := wh.Deliver(ctx, srv.URL, notification.Message{Body: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWebhook_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	wh := NewWebhook(nil, WebhookOpts{})
	err := wh.Deliver(context.Background(), url, notification.Message{Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook post")
}
