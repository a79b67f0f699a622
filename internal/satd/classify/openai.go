// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const classificationPrompt = `You are reviewing a source code comment to decide whether it is
Self-Admitted Technical Debt (SATD): an explicit acknowledgement by the
author that the code is incomplete, incorrect, or otherwise suboptimal.

Comment:
%s

Surrounding code:
%s

Respond with ONLY valid JSON, no markdown: {"is_satd": bool, "confidence": 0.0-1.0}`

// OpenAIConfig configures OpenAIClassifier.
type OpenAIConfig struct {
	Model string
	// RequestsPerSecond bounds the pacing between classifier calls
	// (spec §4.2: "mandatory inter-request pacing delay").
	RequestsPerSecond float64
	// Timeout is the per-request deadline (spec §5, default 60s).
	Timeout time.Duration
	// MaxRetries bounds exponential backoff retries on rate limits
	// (spec §7: "up to 3 retries").
	MaxRetries int
}

// DefaultOpenAIConfig returns the spec's documented defaults.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:             openai.GPT4oMini,
		RequestsPerSecond: 5,
		Timeout:           60 * time.Second,
		MaxRetries:        3,
	}
}

// OpenAIClassifier is the production CommentClassifier implementation
// (spec C3): it calls a remote LLM, rate-limited and with exponential
// backoff on rate-limit responses, and treats timeouts as negative
// classifications rather than pipeline failures (spec §5, §7).
//
// # Thread Safety
//
// OpenAIClassifier is safe for concurrent use; its rate limiter
// serializes the pacing of outbound requests across goroutines.
type OpenAIClassifier struct {
	client  *openai.Client
	cfg     OpenAIConfig
	limiter *rate.Limiter
}

// NewOpenAIClassifier builds a classifier using apiKey for auth.
func NewOpenAIClassifier(apiKey string, cfg OpenAIConfig) *OpenAIClassifier {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &OpenAIClassifier{
		client:  openai.NewClient(apiKey),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Classify implements Classifier.
func (c *OpenAIClassifier) Classify(ctx context.Context, comment, surroundingContext string) (Result, error) {
	if strings.TrimSpace(comment) == "" {
		return Result{IsSATD: false}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(callCtx); err != nil {
			return negativeFor(err), nil
		}

		res, err := c.callOnce(callCtx, comment, surroundingContext)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !isRateLimitErr(err) {
			return Result{IsSATD: false, Confidence: 0, Err: err.Error()}, nil
		}
		if attempt == c.cfg.MaxRetries {
			break
		}
		slog.Warn("classify: rate limited, backing off", "attempt", attempt, "backoff", backoff)
		select {
		case <-time.After(backoff):
		case <-callCtx.Done():
			return negativeFor(callCtx.Err()), nil
		}
		backoff *= 2
	}
	return Result{IsSATD: false, Confidence: 0, Err: lastErr.Error()}, nil
}

func negativeFor(err error) Result {
	return Result{IsSATD: false, Confidence: 0, Err: err.Error()}
}

func (c *OpenAIClassifier) callOnce(ctx context.Context, comment, codeContext string) (Result, error) {
	prompt := fmt.Sprintf(classificationPrompt, comment, codeContext)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return Result{}, err
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("classify: empty response")
	}

	var parsed struct {
		IsSATD     bool    `json:"is_satd"`
		Confidence float64 `json:"confidence"`
	}
	content := extractJSONObject(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Result{}, fmt.Errorf("classify: parsing response: %w", err)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return Result{IsSATD: parsed.IsSATD, Confidence: parsed.Confidence}, nil
}

// extractJSONObject trims any surrounding prose/markdown fencing a
// model might add around the JSON payload.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

func isRateLimitErr(err error) bool {
	var apiErr *openai.APIError
	if err == nil {
		return false
	}
	if ok := asAPIError(err, &apiErr); ok {
		return apiErr.HTTPStatusCode == 429
	}
	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}

func asAPIError(err error, target **openai.APIError) bool {
	if e, ok := err.(*openai.APIError); ok {
		*target = e
		return true
	}
	return false
}

// BatchClassify implements Classifier. Items run concurrently up to
// the batch size, each paced by the shared rate limiter (spec §4.2:
// "classifier calls are issued in batches ... with a mandatory
// inter-request pacing delay").
func (c *OpenAIClassifier) BatchClassify(ctx context.Context, items []Item, threshold float64) (map[string]Result, error) {
	results := make(map[string]Result, len(items))
	resCh := make(chan struct {
		id  string
		res Result
	}, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for _, it := range items {
		it := it
		g.Go(func() error {
			res, err := c.Classify(gctx, it.Comment, it.Context)
			if err != nil {
				res = negativeFor(err)
			}
			resCh <- struct {
				id  string
				res Result
			}{it.ID, res}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resCh)
	}()

	for entry := range resCh {
		results[entry.id] = entry.res
	}
	return results, nil
}
