package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

func classifierServer(t *testing.T, scores []LabelScore) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NoError(t, json.NewEncoder(w).Encode([][]LabelScore{scores}))
	}))
}

func newTestGate(url string) *Gate {
	c := testCaller(time.Millisecond)
	return NewGate(c, url, "secret")
}

func TestEvaluateCleanContent(t *testing.T) {
	srv := classifierServer(t, []LabelScore{
		{Label: "toxic", Score: 0.1},
		{Label: "threat", Score: 0.5}, // at the threshold, not above it
	})
	defer srv.Close()

	content, err := newTestGate(srv.URL).Evaluate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestEvaluateFlaggedContent(t *testing.T) {
	srv := classifierServer(t, []LabelScore{{Label: "threat", Score: 0.9}})
	defer srv.Close()

	content, err := newTestGate(srv.URL).Evaluate(context.Background(), "I will hurt you")
	require.NoError(t, err)
	assert.Equal(t, Placeholder, content)
}

func TestEvaluateIgnoresUnknownLabels(t *testing.T) {
	srv := classifierServer(t, []LabelScore{{Label: "spam", Score: 0.99}})
	defer srv.Close()

	content, err := newTestGate(srv.URL).Evaluate(context.Background(), "buy now")
	require.NoError(t, err)
	assert.Equal(t, "buy now", content)
}

func TestClassifyMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := newTestGate(srv.URL).Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrModerationFailed)
}

func TestClassifyEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestGate(srv.URL).Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrModerationFailed)
}

func TestClassifyTransportErrorWrapsModerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestGate(srv.URL).Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrModerationFailed)
}

func TestClassifyKeepsRateLimitError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestGate(srv.URL).Classify(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)
	assert.NotErrorIs(t, err, apperrors.ErrModerationFailed)
}

func TestFlaggedDecisionRule(t *testing.T) {
	cases := []struct {
		name    string
		scores  []LabelScore
		flagged bool
	}{
		{"all low", []LabelScore{{"toxic", 0.2}, {"obscene", 0.3}}, false},
		{"single above threshold", []LabelScore{{"identity_hate", 0.51}}, true},
		{"exactly at threshold", []LabelScore{{"severe_toxic", 0.5}}, false},
		{"unknown label high", []LabelScore{{"sarcasm", 0.9}}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.flagged, Flagged(tc.scores))
		})
	}
}
