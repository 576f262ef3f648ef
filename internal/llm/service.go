// Package llm is the adapter boundary to the text-generation model. It turns
// a structured GenerationRequest into a prompt, normalizes model errors, and
// orchestrates the credit-check / generate / record-history flow.
package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/copycraft-ai/copycraft/internal/credit"
	"github.com/copycraft-ai/copycraft/internal/history"
	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const systemInstruction = `You are a professional AI Copywriting & Content Generator assistant. Your role is to create high-quality, engaging, and conversion-focused content across multiple formats.

INSTRUCTIONS:
1. Generate content based on the user's specified topic, content type, and requirements
2. Adapt tone and style according to user preferences
3. Ensure all content is original, SEO-friendly (where applicable), and ready to publish
4. Keep formatting clean and professional
5. Include relevant keywords naturally for blog posts and articles

OUTPUT FORMAT:
- Always provide clean, ready-to-use content
- Use markdown formatting for readability
- Include a brief note about key selling points or angles used
- For social media: Include relevant hashtags and emojis where appropriate
- For blog posts: Include a suggested title, intro, body, and conclusion`

const defaultTimeout = 60 * time.Second

// listMarker matches leading bullets, numbers and punctuation on suggestion
// lines so "1. Title" and "- Title" both clean up to "Title".
var listMarker = regexp.MustCompile(`^[-*•\d\s.)]+`)

// Model is the slice of the langchaingo client the service needs; tests
// substitute a fake.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Service talks to the model and owns the generate flow.
type Service struct {
	model   Model
	ledger  *credit.Ledger
	history *history.Store
	logger  *zap.Logger
	timeout time.Duration
	encoder *tiktoken.Tiktoken
}

// New builds a Service backed by an OpenAI-compatible endpoint.
func New(baseURL, token, model string, ledger *credit.Ledger, hist *history.Store, logger *zap.Logger) (*Service, error) {
	client, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return NewWithModel(client, ledger, hist, logger), nil
}

// NewWithModel wires the service onto an existing model client.
func NewWithModel(model Model, ledger *credit.Ledger, hist *history.Store, logger *zap.Logger) *Service {
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		// Token counts are informational only; keep going without them.
		logger.Warn("token encoder unavailable", zap.Error(err))
		encoder = nil
	}
	return &Service{
		model:   model,
		ledger:  ledger,
		history: hist,
		logger:  logger,
		timeout: defaultTimeout,
		encoder: encoder,
	}
}

// BuildPrompt renders the request fields into the instruction sent to the
// model alongside the fixed system directive.
func BuildPrompt(req models.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Content Type: %s\n", req.ContentType)
	fmt.Fprintf(&b, "Target Audience: %s\n", req.Audience)
	fmt.Fprintf(&b, "Tone: %s\n", req.Tone)
	if req.WordCount != "" {
		fmt.Fprintf(&b, "Word Count/Length: %s\n", req.WordCount)
	}
	if req.SpecialRequirements != "" {
		fmt.Fprintf(&b, "Special Requirements: %s\n", req.SpecialRequirements)
	}
	b.WriteString("\nBased on all the above specifications, generate the content now. Make it engaging, professional, and ready to publish immediately.")
	return b.String()
}

func (s *Service) promptTokens(prompt string) int {
	if s.encoder == nil {
		return 0
	}
	return len(s.encoder.Encode(prompt, nil, nil))
}

// Generate calls the model once and returns the produced text verbatim.
// There are no retries: a transport error or an empty completion is a
// terminal ErrGenerationFailed for this action.
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	prompt := BuildPrompt(req)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Debug("calling generation model",
		zap.String("contentType", string(req.ContentType)),
		zap.Int("promptTokens", s.promptTokens(prompt)))

	resp, err := s.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemInstruction),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", fmt.Errorf("%w: model returned no text", ErrGenerationFailed)
	}
	return resp.Choices[0].Content, nil
}

// SuggestTopics asks the model for four short variations of the seed topic.
// Suggestions are a non-critical enhancement: every failure path returns an
// empty slice instead of an error, and an empty seed never reaches the model.
func (s *Service) SuggestTopics(ctx context.Context, seed string) []string {
	if strings.TrimSpace(seed) == "" {
		return []string{}
	}

	prompt := fmt.Sprintf(`You are a professional content strategist. The user is brainstorming a topic: %q.

Generate 4 engaging, high-potential variations or specific angles for this topic.
They should be catchy titles or clear subject lines that are ready to use.

Return ONLY the 4 variations as a plain text list, separated by newlines. Do not use numbers or bullets.`, seed)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}, llms.WithTemperature(0.7))
	if err != nil {
		s.logger.Warn("topic suggestion failed", zap.Error(err))
		return []string{}
	}
	if len(resp.Choices) == 0 {
		return []string{}
	}
	return cleanSuggestions(resp.Choices[0].Content)
}

// cleanSuggestions strips list markers and drops lines too short to be a
// title or that look like a preamble.
func cleanSuggestions(raw string) []string {
	suggestions := make([]string, 0, 4)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if len(line) <= 5 {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "here are") {
			continue
		}
		suggestions = append(suggestions, line)
	}
	return suggestions
}

// GenerateContent runs the full user action: validate, gate on the daily
// balance, call the model, then consume one credit and record history. A
// successful model call is the sole trigger for the decrement; a history
// write failure afterwards is logged but does not fail the action, so the
// user still gets their content.
func (s *Service) GenerateContent(ctx context.Context, userID string, req models.GenerationRequest) (*models.HistoryEntry, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check credits: %w", err)
	}
	if balance <= 0 {
		return nil, 0, ErrInsufficientCredit
	}

	content, err := s.Generate(ctx, req)
	if err != nil {
		return nil, balance, err
	}

	if newBalance, err := s.ledger.Consume(ctx, userID, 1); err != nil {
		// The user already has their content; report the stale balance.
		s.logger.Error("failed to consume credit after generation",
			zap.String("userId", userID), zap.Error(err))
	} else {
		balance = newBalance
	}

	entry, err := s.history.Append(ctx, userID, content, req)
	if err != nil {
		s.logger.Error("failed to record history entry",
			zap.String("userId", userID), zap.Error(err))
		entry = &models.HistoryEntry{
			UserID:    userID,
			Content:   content,
			Params:    req,
			Timestamp: time.Now().UnixMilli(),
		}
	}
	return entry, balance, nil
}
