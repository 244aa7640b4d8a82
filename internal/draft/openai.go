package draft

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/topic"
)

const (
	// DefaultModel is used when the config does not name one.
	DefaultModel = openai.GPT4oMini

	// DefaultRequestTimeout bounds a single generation exchange.
	DefaultRequestTimeout = 60 * time.Second
)

// wordTargets maps a length class to the word-count guidance given to
// the model.
var wordTargets = map[topic.LengthClass]string{
	topic.LengthShort:  "50-80 words",
	topic.LengthMedium: "120-180 words",
	topic.LengthLong:   "250-400 words",
}

// OpenAIService generates drafts through the OpenAI chat completion API.
type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService creates the service. The API key is required; the
// model and timeout fall back to defaults when zero.
func NewOpenAIService(apiKey, model string, timeout time.Duration) (*OpenAIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key (set OPENAI_API_KEY)")
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

// Generate implements Service with a single chat completion exchange.
func (s *OpenAIService) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    buildMessages(req),
		Temperature: 0.7,
	})
	if err != nil {
		return "", errors.NewGenerationFailed(serviceMessage(err))
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewGenerationFailed("generation service returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.NewGenerationFailed("")
	}
	return text, nil
}

// buildMessages turns a Request into the system and user messages for
// the completion call.
func buildMessages(req Request) []openai.ChatCompletionMessage {
	var system strings.Builder
	system.WriteString("You are a social media copywriter. Write a single ready-to-publish post. ")
	system.WriteString("Return only the post text, no preamble or commentary.")
	if req.BrandVoice != "" {
		fmt.Fprintf(&system, " Brand voice: %s.", req.BrandVoice)
	}
	if req.Tone != "" {
		fmt.Fprintf(&system, " Tone: %s.", req.Tone)
	}
	if req.Audience != "" {
		fmt.Fprintf(&system, " Audience: %s.", req.Audience)
	}
	if req.HookStyle != "" {
		fmt.Fprintf(&system, " Open with a %s hook.", req.HookStyle)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Topic: %s\n", req.Topic)
	if len(req.KeyPoints) > 0 {
		user.WriteString("Key points to cover:\n")
		for _, p := range req.KeyPoints {
			fmt.Fprintf(&user, "- %s\n", p)
		}
	}
	if req.CallToAction != "" {
		fmt.Fprintf(&user, "End with this call to action: %s\n", req.CallToAction)
	}
	if len(req.Hashtags) > 0 {
		fmt.Fprintf(&user, "Include these hashtags: #%s\n", strings.Join(req.Hashtags, " #"))
	}
	if target, ok := wordTargets[req.Length]; ok {
		fmt.Fprintf(&user, "Target length: %s.\n", target)
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system.String()},
		{Role: openai.ChatMessageRoleUser, Content: user.String()},
	}
}

// serviceMessage extracts the API's reported error message when one
// is available, so it can be surfaced verbatim.
func serviceMessage(err error) string {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
