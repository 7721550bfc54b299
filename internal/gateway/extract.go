package gateway

import (
	"encoding/json"
	"strings"
)

const fence = "```"

// MarkdownContent strips a fenced code block wrapper from a model reply.
//
// Replies wrapped in a "```markdown" (or plain "```") fence pair yield the
// content between the first opening fence and the next closing fence. A
// reply with no fence, or a single unpaired fence, is returned trimmed as-is.
func MarkdownContent(reply string) string {
	if i := strings.Index(reply, fence+"markdown"); i != -1 {
		rest := reply[i+len(fence+"markdown"):]
		if j := strings.Index(rest, fence); j != -1 {
			return strings.TrimSpace(rest[:j])
		}
		return strings.TrimSpace(reply)
	}

	if strings.Count(reply, fence) >= 2 {
		start := strings.Index(reply, fence) + len(fence)
		if j := strings.Index(reply[start:], fence); j != -1 {
			return strings.TrimSpace(reply[start : start+j])
		}
	}

	return strings.TrimSpace(reply)
}

// decodeJSONObject decodes the JSON object embedded in free text by slicing
// between the first '{' and the last '}'. Model replies routinely wrap JSON
// in prose or fences, so a direct decode is tried as a fallback.
func decodeJSONObject(reply string, v any) error {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(reply[start:end+1]), v); err == nil {
			return nil
		}
	}
	return json.Unmarshal([]byte(reply), v)
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
