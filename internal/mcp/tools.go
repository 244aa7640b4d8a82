package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// toolDef aliases the mcp tool type for the registry.
type toolDef = mcp.Tool

func addToolDef() toolDef {
	return mcp.NewTool("topic_add",
		mcp.WithDescription("Add a topic to the content queue. Only topic text is required; audience, tone, and hook style fall back to configured presets."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("What the post should be about")),
		mcp.WithString("audience", mcp.Description("Who the post is for")),
		mcp.WithString("tone", mcp.Description("Writing tone")),
		mcp.WithString("call_to_action", mcp.Description("Closing call to action")),
		mcp.WithString("hook_style", mcp.Description("Style of the opening hook")),
		mcp.WithString("brand_voice", mcp.Description("Brand voice override for this topic")),
		mcp.WithString("hashtags", mcp.Description("Comma-separated hashtags; a leading # is stripped")),
		mcp.WithString("key_points", mcp.Description("Newline-separated points the draft must cover")),
		mcp.WithString("length", mcp.Description("Draft length: short, medium, or long (default medium)")),
		mcp.WithString("scheduled_for", mcp.Description("Target day as YYYY-MM-DD (default today)")),
	)
}

func fetchToolDef() toolDef {
	return mcp.NewTool("topic_fetch",
		mcp.WithDescription("Fetch one topic, including its draft if generated."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Topic id")),
	)
}

func listToolDef() toolDef {
	return mcp.NewTool("topic_list",
		mcp.WithDescription("List the full queue in order (scheduled date, then creation time), with the drafts-ready count."),
	)
}

func todayToolDef() toolDef {
	return mcp.NewTool("topic_today",
		mcp.WithDescription("List today's queue: topics scheduled for the current day that are not yet posted."),
	)
}

func readyToolDef() toolDef {
	return mcp.NewTool("topic_ready",
		mcp.WithDescription("List unposted topics that already have a draft, in queue order."),
	)
}

func generateToolDef() toolDef {
	return mcp.NewTool("topic_generate",
		mcp.WithDescription("Generate (or regenerate) the draft for a topic. Overwrites any existing draft and marks the topic generated."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Topic id")),
	)
}

func setStatusToolDef() toolDef {
	return mcp.NewTool("topic_set_status",
		mcp.WithDescription("Toggle a generated topic between generated and posted."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Topic id")),
		mcp.WithString("status", mcp.Required(), mcp.Description("New status: generated or posted")),
	)
}

func deleteToolDef() toolDef {
	return mcp.NewTool("topic_delete",
		mcp.WithDescription("Remove a topic from the queue. Removing an absent id reports removed=false rather than failing."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Topic id")),
	)
}

func exportToolDef() toolDef {
	return mcp.NewTool("topic_export",
		mcp.WithDescription("Export the queue as JSONL. Defaults to a timestamped file in the exports directory."),
		mcp.WithString("path", mcp.Description("Destination file path (optional)")),
	)
}

func importToolDef() toolDef {
	return mcp.NewTool("topic_import",
		mcp.WithDescription("Import topics from a JSONL file; bad lines and id collisions are skipped."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Source file path")),
	)
}
