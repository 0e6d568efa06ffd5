package trends

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "你是一位专业的产品设计师和市场分析师。请严格按照要求只输出JSON。"

type llmFailureClass int

const (
	failureNone llmFailureClass = iota
	failureTimeout
	failureRateLimit
	failureServer
	failureClient
)

// TextGenerator is the text-completion collaborator. Implementations own
// their retry policy; callers make exactly one logical request.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicCallerFromEnv builds the production caller from
// ANTHROPIC_API_KEY and the optional ANTHROPIC_BASE_URL override for
// third-party gateways.
func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if base := strings.TrimSpace(os.Getenv("ANTHROPIC_BASE_URL")); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &AnthropicCaller{
		client: anthropic.NewClient(opts...),
		model:  anthropic.ModelClaudeSonnet4_20250514,
	}, nil
}

// GenerateText streams one completion and accumulates it into a single
// buffer. Transient transport failures (timeout, rate limit, 5xx) are
// retried up to twice with a short backoff.
func (a *AnthropicCaller) GenerateText(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	}
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		text, err := a.streamOnce(ctx, params)
		if err == nil {
			return text, nil
		}
		lastErr = err
		class := classifyTransportError(err)
		if (class == failureTimeout || class == failureRateLimit || class == failureServer) && attempt < 3 {
			time.Sleep(backoffDelay(attempt))
			continue
		}
		break
	}
	return "", lastErr
}

func (a *AnthropicCaller) streamOnce(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	stream := a.client.Messages.NewStreaming(ctx, params)
	msg := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return "", err
		}
	}
	if err := stream.Err(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

func classifyTransportError(err error) llmFailureClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}
