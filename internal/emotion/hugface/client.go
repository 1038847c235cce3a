package hugface

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/metrics"
)

const (
	// requestTimeout leaves headroom inside the 300ms per-classification
	// budget for ensemble math and response assembly.
	requestTimeout = 250 * time.Millisecond
	// maxInputBytes truncates oversized inputs before they hit the wire;
	// transformer context windows make longer text useless anyway.
	maxInputBytes = 2000
)

// inferenceRequest is the HuggingFace inference API request body.
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Client calls a HuggingFace-style text-classification endpoint.
type Client struct {
	baseURL   string
	modelID   string
	apiToken  string
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	flight    singleflight.Group
	lifecycle *Lifecycle
}

// NewClient builds a model client. baseURL is the inference API root (e.g.
// https://api-inference.huggingface.co), modelID the hosted model (e.g.
// j-hartmann/emotion-english-distilroberta-base).
func NewClient(baseURL, modelID, apiToken string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "emotion-model",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Model circuit breaker state changed", "from", from.String(), "to", to.String())
			metrics.ModelBreakerStateChanges.WithLabelValues(to.String()).Inc()
			metrics.ModelBreakerState.Set(breakerStateToFloat(to))
		},
	})

	c := &Client{
		baseURL:  baseURL,
		modelID:  modelID,
		apiToken: apiToken,
		http:     &http.Client{},
		breaker:  breaker,
	}
	c.lifecycle = newLifecycle(c)
	return c
}

func breakerStateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return -1
}

// Name implements domain.ModelClassifier.
func (c *Client) Name() string {
	return c.modelID
}

// Warm triggers the one-time model load. See Lifecycle.
func (c *Client) Warm(ctx context.Context) error {
	return c.lifecycle.Warm(ctx)
}

// Ready reports whether warm-up succeeded.
func (c *Client) Ready() bool {
	return c.lifecycle.Ready()
}

// Scores implements domain.ModelClassifier. Concurrent calls with identical
// text share one in-flight request.
func (c *Client) Scores(ctx context.Context, text string) ([]domain.LabelScore, error) {
	if err := c.lifecycle.Warm(ctx); err != nil {
		return nil, err
	}

	if len(text) > maxInputBytes {
		text = text[:maxInputBytes]
	}

	key := contentKey(text)
	ch := c.flight.DoChan(key, func() (any, error) {
		// The shared request must not inherit any single caller's
		// cancellation; requestTimeout bounds it on its own.
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requestTimeout)
		defer cancel()
		return c.breaker.Execute(func() (any, error) {
			return c.infer(reqCtx, text)
		})
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.LabelScore), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) infer(ctx context.Context, text string) ([]domain.LabelScore, error) {
	timer := prometheus.NewTimer(metrics.ModelRequestDuration)
	defer timer.ObserveDuration()

	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("inference request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.ModelRequestsTotal.WithLabelValues("error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	scores, err := decodeScores(resp.Body)
	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ModelRequestsTotal.WithLabelValues("success").Inc()
	return scores, nil
}

// decodeScores accepts both response shapes the inference API produces:
// [[{label,score},...]] for single inputs and [{label,score},...] for some
// self-hosted deployments.
func decodeScores(r io.Reader) ([]domain.LabelScore, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	var nested [][]domain.LabelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}

	var flat []domain.LabelScore
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	return nil, fmt.Errorf("unexpected inference response shape: %.120s", raw)
}

// StatusError is a non-200 inference API response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference API returned %d: %s", e.Code, e.Body)
}

func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}
