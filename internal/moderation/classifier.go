package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

// Placeholder replaces message content the classifier flags as inappropriate.
const Placeholder = "Message contains inappropriate or offensive content"

// flaggedLabels are the classifier labels that block content when their
// score exceeds the threshold.
var flaggedLabels = map[string]struct{}{
	"toxic":         {},
	"obscene":       {},
	"insult":        {},
	"severe_toxic":  {},
	"identity_hate": {},
	"threat":        {},
}

const flagThreshold = 0.5

// LabelScore is one label/score pair from the classification response.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Gate classifies candidate message content against an external toxicity
// endpoint and decides whether it may be stored as-is.
type Gate struct {
	caller *Caller
	url    string
	token  string
}

func NewGate(caller *Caller, url, token string) *Gate {
	return &Gate{caller: caller, url: url, token: token}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// Classify returns the raw label scores for text. A rate-limit exhaustion
// keeps ErrRateLimited in the chain; every other failure wraps
// ErrModerationFailed so callers never fall back to storing unmoderated
// content.
func (g *Gate) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + g.token,
	}
	body, err := g.caller.Call(ctx, g.url, classifyRequest{Inputs: text}, headers)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateLimited) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrModerationFailed, err)
	}

	var results [][]LabelScore
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: malformed classification response: %v", apperrors.ErrModerationFailed, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: empty classification response", apperrors.ErrModerationFailed)
	}
	return results[0], nil
}

// Evaluate classifies text and returns the content that may be stored:
// the original text when clean, the placeholder when flagged.
func (g *Gate) Evaluate(ctx context.Context, text string) (string, error) {
	scores, err := g.Classify(ctx, text)
	if err != nil {
		return "", err
	}
	if Flagged(scores) {
		return Placeholder, nil
	}
	return text, nil
}

// Flagged reports whether any blocking label scored above the threshold.
func Flagged(scores []LabelScore) bool {
	for _, s := range scores {
		if _, ok := flaggedLabels[s.Label]; ok && s.Score > flagThreshold {
			return true
		}
	}
	return false
}
