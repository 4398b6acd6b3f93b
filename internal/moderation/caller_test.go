package moderation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

func testCaller(delay time.Duration) *Caller {
	return &Caller{
		Client:       http.DefaultClient,
		MaxAttempts:  3,
		InitialDelay: delay,
		Logger:       logger.NewNop(),
	}
}

func TestCallSuccess(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := testCaller(time.Millisecond).Call(context.Background(), srv.URL,
		map[string]string{"inputs": "hi"}, map[string]string{"Authorization": "Bearer token"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.EqualValues(t, 1, attempts)
}

func TestCallRetriesOnTooManyRequests(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	body, err := testCaller(5*time.Millisecond).Call(context.Background(), srv.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.EqualValues(t, 3, attempts)
}

func TestCallRateLimitExhaustion(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := testCaller(10*time.Millisecond).Call(context.Background(), srv.URL, nil, nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)
	assert.EqualValues(t, 3, attempts, "exactly maxAttempts attempts")
	// Backoff doubles: 10ms + 20ms between the three attempts.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestCallDoesNotRetryOtherErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testCaller(time.Millisecond).Call(context.Background(), srv.URL, nil, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrRateLimited)
	assert.EqualValues(t, 1, attempts)
}

func TestCallHonorsContextDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testCaller(time.Minute).Call(ctx, srv.URL, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
