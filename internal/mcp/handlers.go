package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/planq/internal/config"
	"github.com/hpungsan/planq/internal/draft"
	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/queue"
	"github.com/hpungsan/planq/internal/topic"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store   *queue.Store
	gen     *draft.Client
	cfg     *config.Config
	baseDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *queue.Store, gen *draft.Client, cfg *config.Config, baseDir string) *Handlers {
	return &Handlers{store: store, gen: gen, cfg: cfg, baseDir: baseDir}
}

// Request types for each tool

// AddRequest represents the arguments for topic_add.
type AddRequest struct {
	Topic        string `json:"topic"`
	Audience     string `json:"audience,omitempty"`
	Tone         string `json:"tone,omitempty"`
	CallToAction string `json:"call_to_action,omitempty"`
	HookStyle    string `json:"hook_style,omitempty"`
	BrandVoice   string `json:"brand_voice,omitempty"`
	Hashtags     string `json:"hashtags,omitempty"`
	KeyPoints    string `json:"key_points,omitempty"`
	Length       string `json:"length,omitempty"`
	ScheduledFor string `json:"scheduled_for,omitempty"`
}

// IDRequest represents arguments for tools addressing a single topic.
type IDRequest struct {
	ID string `json:"id"`
}

// SetStatusRequest represents the arguments for topic_set_status.
type SetStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PathRequest represents the arguments for topic_export and topic_import.
type PathRequest struct {
	Path string `json:"path,omitempty"`
}

// ListOutput is the payload for topic_list and topic_today.
type ListOutput struct {
	Topics      []topic.Topic `json:"topics"`
	Count       int           `json:"count"`
	DraftsReady int           `json:"drafts_ready"`
}

// Handler implementations

// HandleAdd handles the topic_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	created, err := h.store.Add(ctx, topic.Input{
		Text:         input.Topic,
		Audience:     input.Audience,
		Tone:         input.Tone,
		CallToAction: input.CallToAction,
		HookStyle:    input.HookStyle,
		BrandVoice:   input.BrandVoice,
		Hashtags:     input.Hashtags,
		KeyPoints:    input.KeyPoints,
		Length:       input.Length,
		ScheduledFor: input.ScheduledFor,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(created)
}

// HandleFetch handles the topic_fetch tool call.
func (h *Handlers) HandleFetch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	t, err := h.store.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(t)
}

// HandleList handles the topic_list tool call.
func (h *Handlers) HandleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topics := h.store.All()
	return successResult(ListOutput{
		Topics:      topics,
		Count:       len(topics),
		DraftsReady: h.store.DraftsReady(),
	})
}

// HandleToday handles the topic_today tool call.
func (h *Handlers) HandleToday(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topics := h.store.Today()
	return successResult(ListOutput{
		Topics:      topics,
		Count:       len(topics),
		DraftsReady: h.store.DraftsReady(),
	})
}

// HandleReady handles the topic_ready tool call.
func (h *Handlers) HandleReady(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := h.store.All()
	topics := make([]topic.Topic, 0, len(all))
	for _, t := range all {
		if t.Status != topic.StatusPosted && t.HasDraft() {
			topics = append(topics, t)
		}
	}
	return successResult(ListOutput{
		Topics:      topics,
		Count:       len(topics),
		DraftsReady: h.store.DraftsReady(),
	})
}

// HandleGenerate handles the topic_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	text, err := h.gen.Generate(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{
		"id":    input.ID,
		"draft": text,
	})
}

// HandleSetStatus handles the topic_set_status tool call. Only the
// generated/posted toggle is exposed here; scheduled is not a
// reachable target.
func (h *Handlers) HandleSetStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SetStatusRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	switch topic.Status(input.Status) {
	case topic.StatusGenerated, topic.StatusPosted:
	default:
		return errorResult(errors.NewInvalidRequest("status must be generated or posted")), nil
	}

	t, err := h.store.TogglePosted(ctx, input.ID, topic.Status(input.Status) == topic.StatusPosted)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(t)
}

// HandleDelete handles the topic_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	removed, err := h.store.Remove(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{
		"removed": removed,
		"id":      input.ID,
	})
}

// HandleExport handles the topic_export tool call.
func (h *Handlers) HandleExport(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	path := input.Path
	if path == "" {
		path = filepath.Join(h.baseDir, "exports",
			fmt.Sprintf("queue-%s.jsonl", h.store.Now().Format("20060102-150405")))
	}

	f, err := os.Create(path)
	if err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}
	defer f.Close()

	count, err := h.store.Export(f)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{
		"path":     path,
		"exported": count,
	})
}

// HandleImport handles the topic_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PathRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Path == "" {
		return errorResult(errors.NewInvalidRequest("path is required")), nil
	}

	f, err := os.Open(input.Path)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(fmt.Sprintf("cannot open %s: %v", input.Path, err))), nil
	}
	defer f.Close()

	result, err := h.store.Import(ctx, f)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from a PlanqError or plain error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any
	if pErr, ok := err.(*errors.PlanqError); ok {
		errorObj := map[string]any{
			"code":    pErr.Code,
			"message": pErr.Message,
			"status":  pErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if pErr.Code != errors.ErrInternal && pErr.Details != nil {
			errorObj["details"] = pErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
