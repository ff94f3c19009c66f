package prompts

import (
	"strings"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

const tagSeparator = ", "

// Assemble は主題 → 動作 → 構図 → カメラ → 環境 → スタイル の順に空でないグループを連結します。
// ExtraNegativeTags は含めません。
func Assemble(spec domain.PromptSpec) string {
	var parts []string
	if spec.MainSubject != "" {
		parts = append(parts, spec.MainSubject)
	}
	for _, group := range [][]string{
		spec.ActionTags,
		spec.CompositionTags,
		spec.CameraTags,
		spec.EnvironmentTags,
		spec.StyleTags,
	} {
		if len(group) > 0 {
			parts = append(parts, strings.Join(group, tagSeparator))
		}
	}
	return strings.Join(parts, tagSeparator)
}

// NegativePrompt は外部のネガティブプロンプト機構に渡す文字列を返します。
func NegativePrompt(spec domain.PromptSpec) string {
	return strings.Join(spec.ExtraNegativeTags, tagSeparator)
}
