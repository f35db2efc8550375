// Package gemini implements the grading.Grader interface on top of Google's
// Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"github.com/rillka/wordbank-api/internal/config"
	"github.com/rillka/wordbank-api/internal/grading"
	"google.golang.org/genai"
)

// promptTemplateText asks the model to judge one sentence and answer in a
// strict JSON shape so the verdict can be parsed mechanically.
const promptTemplateText = `You are grading a language learner's writing exercise.
The learner was asked to use the {{.Language}} word "{{.Word}}" (meaning: "{{.Translation}}") in a sentence.

The learner wrote:
{{.Sentence}}

Judge whether the sentence uses the word correctly and is grammatically acceptable.
Respond with only a JSON object in this exact shape:
{"correct": "yes" or "no", "feedback": "one or two short sentences for the learner"}`

// responseSchema is the JSON shape the model is instructed to return.
type responseSchema struct {
	Correct  string `json:"correct"`
	Feedback string `json:"feedback"`
}

// GeminiGrader implements the grading.Grader interface using Google's
// Gemini API to judge free-form written answers.
type GeminiGrader struct {
	logger         *slog.Logger
	config         config.GraderConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

var _ grading.Grader = (*GeminiGrader)(nil)

// NewGeminiGrader creates a new GeminiGrader with the provided dependencies.
func NewGeminiGrader(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.GraderConfig,
) (*GeminiGrader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", grading.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", grading.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("grading").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			grading.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			grading.ErrInvalidConfig, err)
	}

	return &GeminiGrader{
		logger:         logger.With(slog.String("component", "gemini_grader")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.Model,
	}, nil
}

// Grade implements grading.Grader.
func (g *GeminiGrader) Grade(ctx context.Context, sub grading.Submission) (*grading.Verdict, error) {
	prompt, err := g.createPrompt(ctx, sub)
	if err != nil {
		return nil, err
	}

	response, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseVerdict(response), nil
}

// createPrompt renders the grading prompt for one submission.
func (g *GeminiGrader) createPrompt(ctx context.Context, sub grading.Submission) (string, error) {
	if strings.TrimSpace(sub.Sentence) == "" {
		return "", grading.ErrEmptySubmission
	}

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, sub); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	prompt := promptBuffer.String()
	g.logger.DebugContext(ctx, "grading prompt rendered",
		"word", sub.Word,
		"prompt_length", len(prompt))

	return prompt, nil
}

// callGeminiWithRetry calls the Gemini API with exponential backoff and
// jitter. Permanent errors (blocked content, unparseable responses) are
// returned immediately; only transient failures retry.
func (g *GeminiGrader) callGeminiWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	attempt := 0
	for attempt <= maxRetries {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		var response *responseSchema
		var isTransientError bool

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			isTransientError = true
			g.logger.ErrorContext(ctx, "Gemini API call error",
				"error", err,
				"attempt", attemptNum)
		} else if resp == nil {
			err = fmt.Errorf("%w: nil response", grading.ErrInvalidResponse)
		} else if len(resp.Candidates) == 0 {
			err = fmt.Errorf("%w: no content generated", grading.ErrInvalidResponse)
		} else if resp.Candidates[0].Content == nil {
			err = fmt.Errorf("%w: empty content in response", grading.ErrInvalidResponse)
		} else if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			err = fmt.Errorf("%w: content blocked by safety filters", grading.ErrContentBlocked)
		} else {
			text := ""
			for _, part := range resp.Candidates[0].Content.Parts {
				if part != nil {
					text += part.Text
				}
			}

			var parsed responseSchema
			if err = json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil {
				err = fmt.Errorf("%w: failed to parse JSON response: %v", grading.ErrInvalidResponse, err)
			} else {
				response = &parsed
			}
		}

		if err == nil {
			return response, nil
		}

		if errors.Is(err, grading.ErrContentBlocked) || errors.Is(err, grading.ErrInvalidResponse) {
			g.logger.WarnContext(ctx, "permanent error from Gemini, not retrying", "error", err)
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				grading.ErrTransientFailure, maxRetries)
		}

		if !isTransientError {
			return nil, err
		}

		// delay = baseDelay * 2^attempt * jitter in [0.5, 1.0)
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.DebugContext(ctx, "retrying Gemini call after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", grading.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}

	return nil, fmt.Errorf("%w: failed after %d attempts", grading.ErrTransientFailure, attempt)
}

// parseVerdict maps the model's answer onto a Verdict. Anything that is not
// a clear "no" counts as correct: the grader gives the learner the benefit
// of the doubt when the model answers off-script.
func parseVerdict(response *responseSchema) *grading.Verdict {
	verdict := &grading.Verdict{Feedback: response.Feedback}

	switch strings.ToLower(strings.TrimSpace(response.Correct)) {
	case "yes", "true", "correct":
		verdict.IsCorrect = true
	case "no", "false", "incorrect":
		verdict.IsCorrect = false
	default:
		verdict.IsCorrect = true
		verdict.Ambiguous = true
	}
	return verdict
}

// extractJSON strips markdown code fences the model sometimes wraps around
// its JSON answer.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
