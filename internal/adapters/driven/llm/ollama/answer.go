// Package ollama provides an answer-generation adapter using Ollama.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/archirag-cli/internal/core/domain"
	"github.com/custodia-labs/archirag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/archirag-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driven.AnswerService = (*AnswerService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second

	maxAttempts = 5
)

// retryBaseDelay doubles with each retry. Variable so tests can shorten it.
var retryBaseDelay = 2 * time.Second

// Config holds configuration for the Ollama answer service.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the answer model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// AnswerService generates grounded answers using Ollama.
type AnswerService struct {
	client  *http.Client
	baseURL string
	model   string
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	System  string   `json:"system,omitempty"`
	Format  string   `json:"format,omitempty"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// answerPayload is the structured reply requested from the model.
type answerPayload struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	FollowUps  []string `json:"followUpQuestions"`
}

// NewAnswerService creates a new Ollama answer service.
func NewAnswerService(cfg Config) *AnswerService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &AnswerService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// GenerateAnswer answers the query using only the supplied ranked chunks.
// Overloaded-backend responses (429, 503) are retried with exponential
// backoff; other failures are returned immediately.
func (s *AnswerService) GenerateAnswer(
	ctx context.Context, query string, results []domain.SearchResult, cfg domain.Config,
) (*domain.Answer, error) {
	if len(results) == 0 {
		return &domain.Answer{
			Text:       "I could not find anything relevant in the ingested documents.",
			Confidence: 0,
		}, nil
	}

	model := cfg.AnswerModel
	if model == "" {
		model = s.model
	}

	reqBody := generateRequest{
		Model:  model,
		Prompt: buildPrompt(query, results),
		System: buildSystemPrompt(cfg.Strictness, cfg.AnswerDepth),
		Format: "json",
		Stream: false,
		Options: &options{
			Temperature: cfg.Temperature,
		},
	}

	raw, err := s.generateWithRetry(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	var payload answerPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Answer == "" {
		// Some models ignore the format hint; treat the raw text as the answer.
		return &domain.Answer{Text: strings.TrimSpace(raw), Confidence: 0.5}, nil
	}

	if payload.Confidence < 0 {
		payload.Confidence = 0
	}
	if payload.Confidence > 1 {
		payload.Confidence = 1
	}

	return &domain.Answer{
		Text:       strings.TrimSpace(payload.Answer),
		Confidence: payload.Confidence,
		FollowUps:  payload.FollowUps,
	}, nil
}

// generateWithRetry posts to /api/generate, retrying retryable statuses.
func (s *AnswerService) generateWithRetry(ctx context.Context, reqBody generateRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-2))
			logger.Debug("Retrying answer generation in %s (attempt %d/%d)", delay, attempt, maxAttempts)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		text, retryable, err := s.generate(ctx, jsonBody)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", fmt.Errorf("answer generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// generate performs a single /api/generate call. The second return value
// reports whether the failure is worth retrying.
func (s *AnswerService) generate(ctx context.Context, jsonBody []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = []byte("failed to read response")
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode == http.StatusServiceUnavailable
		return "", retryable, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}

	return genResp.Response, false, nil
}

// buildPrompt frames the ranked chunks as numbered context blocks.
func buildPrompt(query string, results []domain.SearchResult) string {
	var b strings.Builder

	b.WriteString("Context from the user's documents:\n\n")
	for i, result := range results {
		fmt.Fprintf(&b, "[CHUNK %d] Source: %s", i+1, result.Chunk.Metadata.SourceFileName)
		if result.Chunk.Metadata.PageNumber > 0 {
			fmt.Fprintf(&b, ", Page: %d", result.Chunk.Metadata.PageNumber)
		}
		b.WriteString("\n")
		b.WriteString(result.Chunk.Text)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Question: %s\n\n", query)
	b.WriteString(`Reply with a JSON object of the form
{"answer": "...", "confidence": 0.0, "followUpQuestions": ["..."]}
where confidence is your evidence strength between 0 and 1.`)

	return b.String()
}

// buildSystemPrompt translates strictness and depth settings into
// model instructions.
func buildSystemPrompt(strictness domain.Strictness, depth domain.AnswerDepth) string {
	var b strings.Builder

	b.WriteString("You answer questions about the user's documents. ")

	switch strictness {
	case domain.StrictnessFactual:
		b.WriteString("Use ONLY the provided context. If the context does not contain the answer, say so. ")
	case domain.StrictnessCreative:
		b.WriteString("Ground your answer in the provided context, but you may extrapolate where it helps. ")
	default:
		b.WriteString("Prefer the provided context; note clearly when you go beyond it. ")
	}

	switch depth {
	case domain.DepthConcise:
		b.WriteString("Answer in one or two sentences.")
	case domain.DepthDetailed:
		b.WriteString("Give a thorough answer covering every relevant detail from the context.")
	default:
		b.WriteString("Give a clear answer of moderate length.")
	}

	return b.String()
}

// ModelName returns the name of the configured answer model.
func (s *AnswerService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (s *AnswerService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
