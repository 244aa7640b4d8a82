package topic

import "time"

// Status tracks where a topic is in its publishing lifecycle.
type Status string

const (
	StatusScheduled Status = "scheduled" // initial state, no successful generation yet
	StatusGenerated Status = "generated" // a draft exists
	StatusPosted    Status = "posted"    // published; toggles back to generated
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusGenerated, StatusPosted:
		return true
	}
	return false
}

// LengthClass is the requested size of the generated draft.
type LengthClass string

const (
	LengthShort  LengthClass = "short"
	LengthMedium LengthClass = "medium"
	LengthLong   LengthClass = "long"
)

// Valid reports whether l is one of the known length classes.
func (l LengthClass) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// DateLayout is the calendar-date form used for ScheduledFor.
// ISO dates sort lexicographically in chronological order.
const DateLayout = "2006-01-02"

// Topic is the unit of planned content: the post parameters, the
// generated draft once one exists, and the lifecycle status.
type Topic struct {
	// ID is a ULID assigned at creation, immutable and never reused
	ID string `json:"id"`

	// Text is the subject of the intended post (never empty)
	Text string `json:"topic"`

	Audience     string   `json:"audience,omitempty"`
	Tone         string   `json:"tone,omitempty"`
	CallToAction string   `json:"call_to_action,omitempty"`
	HookStyle    string   `json:"hook_style,omitempty"`
	BrandVoice   string   `json:"brand_voice,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
	KeyPoints    []string `json:"key_points,omitempty"`

	Length LengthClass `json:"length"`

	// ScheduledFor is the target calendar day in DateLayout form,
	// no time component
	ScheduledFor string `json:"scheduled_for"`

	// Draft is the generated text; empty until a generation succeeds
	Draft string `json:"draft,omitempty"`

	Status Status `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDraft reports whether a generation has ever succeeded for this topic.
func (t *Topic) HasDraft() bool {
	return t.Draft != ""
}

// Less defines the queue ordering: scheduled date ascending, then
// creation time ascending. Ties are left to the caller's stable sort,
// which preserves insertion order.
func Less(a, b *Topic) bool {
	if a.ScheduledFor != b.ScheduledFor {
		return a.ScheduledFor < b.ScheduledFor
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
