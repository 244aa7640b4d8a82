package topic

import (
	"strings"
	"time"

	"github.com/hpungsan/planq/internal/errors"
)

// Input contains the raw creation parameters as the caller supplied
// them, before any normalization.
type Input struct {
	Text         string
	Audience     string
	Tone         string
	CallToAction string
	HookStyle    string
	BrandVoice   string
	Hashtags     string // comma-separated, leading '#' tolerated
	KeyPoints    string // newline-separated
	Length       string // short|medium|long, default medium
	ScheduledFor string // YYYY-MM-DD, default today
}

// Fallbacks is the table of preset values applied when the caller
// supplies only whitespace for an optional field.
type Fallbacks struct {
	Audience  string
	Tone      string
	HookStyle string
}

// New validates and normalizes raw creation input into a well-formed
// Topic. It is a pure constructor: no id, no timestamps, no side
// effects. The queue assigns identity and clock values on insert.
func New(input Input, fb Fallbacks, now time.Time) (*Topic, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("topic text is required")
	}

	length := LengthClass(strings.TrimSpace(input.Length))
	if length == "" {
		length = LengthMedium
	}
	if !length.Valid() {
		return nil, errors.NewInvalidRequest("length must be one of: short, medium, long")
	}

	scheduled := strings.TrimSpace(input.ScheduledFor)
	if scheduled == "" {
		scheduled = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, scheduled); err != nil {
		return nil, errors.NewInvalidRequest("scheduled_for must be a YYYY-MM-DD date")
	}

	return &Topic{
		Text:         text,
		Audience:     fallback(input.Audience, fb.Audience),
		Tone:         fallback(input.Tone, fb.Tone),
		CallToAction: strings.TrimSpace(input.CallToAction),
		HookStyle:    fallback(input.HookStyle, fb.HookStyle),
		BrandVoice:   strings.TrimSpace(input.BrandVoice),
		Hashtags:     ParseHashtags(input.Hashtags),
		KeyPoints:    ParseKeyPoints(input.KeyPoints),
		Length:       length,
		ScheduledFor: scheduled,
		Status:       StatusScheduled,
	}, nil
}

// fallback returns the trimmed value, or the preset when the value is
// empty or whitespace-only.
func fallback(value, preset string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return preset
	}
	return v
}

// ParseHashtags splits a comma-separated tag string. Each entry is
// trimmed and stripped of a single leading '#'; empty results are
// dropped. Order is preserved and duplicates are kept, faithful to
// the raw input.
func ParseHashtags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		t = strings.TrimPrefix(t, "#")
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// ParseKeyPoints splits newline-separated lines, trims each, and drops
// empties. Order is preserved.
func ParseKeyPoints(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	points := make([]string, 0, len(lines))
	for _, l := range lines {
		p := strings.TrimSpace(l)
		if p != "" {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return nil
	}
	return points
}
