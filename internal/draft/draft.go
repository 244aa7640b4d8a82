// Package draft turns topic parameters into generated post text. The
// Client drives one request/response exchange with a generation
// Service per call and folds the outcome back into the queue.
package draft

import (
	"context"

	"github.com/hpungsan/planq/internal/topic"
)

// Request carries the topic parameters verbatim to the generation
// service. Validation already happened at topic creation; nothing is
// re-checked here.
type Request struct {
	Topic        string            `json:"topic"`
	Audience     string            `json:"audience,omitempty"`
	Tone         string            `json:"tone,omitempty"`
	CallToAction string            `json:"call_to_action,omitempty"`
	HookStyle    string            `json:"hook_style,omitempty"`
	Hashtags     []string          `json:"hashtags,omitempty"`
	BrandVoice   string            `json:"brand_voice,omitempty"`
	KeyPoints    []string          `json:"key_points,omitempty"`
	Length       topic.LengthClass `json:"length"`
}

// Service is the external generation capability: one request, one
// response, no retry. Implementations return the draft text or an
// error carrying the service's reported message.
type Service interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// RequestFor assembles the service request from a topic's fields.
func RequestFor(t *topic.Topic) Request {
	return Request{
		Topic:        t.Text,
		Audience:     t.Audience,
		Tone:         t.Tone,
		CallToAction: t.CallToAction,
		HookStyle:    t.HookStyle,
		Hashtags:     t.Hashtags,
		BrandVoice:   t.BrandVoice,
		KeyPoints:    t.KeyPoints,
		Length:       t.Length,
	}
}
