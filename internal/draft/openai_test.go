package draft

import (
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hpungsan/planq/internal/topic"
)

func TestNewOpenAIService_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIService("", "", 0); err == nil {
		t.Error("expected error for missing API key")
	}

	svc, err := NewOpenAIService("sk-test", "", 0)
	if err != nil {
		t.Fatalf("NewOpenAIService failed: %v", err)
	}
	if svc.model != DefaultModel {
		t.Errorf("model = %q, want default %q", svc.model, DefaultModel)
	}
}

func TestNewOpenAIService_CustomModelAndTimeout(t *testing.T) {
	svc, err := NewOpenAIService("sk-test", "gpt-4o", 5*time.Second)
	if err != nil {
		t.Fatalf("NewOpenAIService failed: %v", err)
	}
	if svc.model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", svc.model)
	}
}

func TestBuildMessages_AllFields(t *testing.T) {
	msgs := buildMessages(Request{
		Topic:        "Shipping fast",
		Audience:     "engineers",
		Tone:         "direct",
		CallToAction: "Follow for more",
		HookStyle:    "bold claim",
		Hashtags:     []string{"golang", "shipping"},
		BrandVoice:   "dry humor",
		KeyPoints:    []string{"small batches", "fast feedback"},
		Length:       topic.LengthShort,
	})

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want system + user", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem || msgs[1].Role != openai.ChatMessageRoleUser {
		t.Fatalf("roles = %q/%q", msgs[0].Role, msgs[1].Role)
	}

	system := msgs[0].Content
	for _, want := range []string{"dry humor", "direct", "engineers", "bold claim"} {
		if !strings.Contains(system, want) {
			t.Errorf("system message missing %q:\n%s", want, system)
		}
	}

	user := msgs[1].Content
	for _, want := range []string{
		"Shipping fast",
		"- small batches",
		"- fast feedback",
		"Follow for more",
		"#golang #shipping",
		"50-80 words",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q:\n%s", want, user)
		}
	}
}

func TestBuildMessages_MinimalFields(t *testing.T) {
	msgs := buildMessages(Request{Topic: "Just a topic", Length: topic.LengthMedium})

	user := msgs[1].Content
	if !strings.Contains(user, "Just a topic") {
		t.Errorf("user message missing topic:\n%s", user)
	}
	for _, banned := range []string{"Key points", "call to action", "hashtags"} {
		if strings.Contains(user, banned) {
			t.Errorf("user message should omit %q when empty:\n%s", banned, user)
		}
	}
	if !strings.Contains(user, "120-180 words") {
		t.Errorf("user message missing medium target:\n%s", user)
	}
}
