package publisher

import (
	"fmt"
	"strings"
)

// buildMarkdown は文書を Markdown に整形します。
// シーンごとに見出し、コードブロックの rawPrompt、タググループの一覧を並べます。
func buildMarkdown(doc Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))

	for _, e := range doc.Entries {
		name := e.SceneName
		if name == "" {
			name = e.SceneID
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", name))
		sb.WriteString("```text\n")
		sb.WriteString(e.Prompt.RawPrompt)
		sb.WriteString("\n```\n\n")

		writeField(&sb, "scene", e.SceneID)
		writeField(&sb, "id", e.Prompt.ID)
		writeField(&sb, "language", e.Prompt.Language)
		writeField(&sb, "subject", e.Prompt.MainSubject)
		writeTags(&sb, "actions", e.Prompt.ActionTags)
		writeTags(&sb, "composition", e.Prompt.CompositionTags)
		writeTags(&sb, "camera", e.Prompt.CameraTags)
		writeTags(&sb, "environment", e.Prompt.EnvironmentTags)
		writeTags(&sb, "style", e.Prompt.StyleTags)
		writeField(&sb, "negative", e.NegativePrompt)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeField(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("- %s: %s\n", key, value))
}

func writeTags(sb *strings.Builder, key string, tags []string) {
	writeField(sb, key, strings.Join(tags, " / "))
}
