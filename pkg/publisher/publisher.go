package publisher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/prompts"
)

// Format は出力形式です。
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

const defaultFileName = "prompts"

// ErrUnknownFormat は未対応の出力形式が指定されたことを示します。
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat は文字列を Format に変換します。"md" と "yml" も受け付けます。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension は形式に対応するファイル拡張子を返します。
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".md"
	}
}

// Entry は1シーン分の出力内容です。
type Entry struct {
	SceneID        string            `json:"sceneId" yaml:"sceneId"`
	SceneName      string            `json:"sceneName" yaml:"sceneName"`
	Prompt         domain.PromptSpec `json:"prompt" yaml:"prompt"`
	NegativePrompt string            `json:"negativePrompt" yaml:"negativePrompt"`
}

// NewEntry はシーンとそのプロンプトから Entry を組み立てます。
func NewEntry(scene domain.Scene, spec domain.PromptSpec) Entry {
	return Entry{
		SceneID:        scene.ID,
		SceneName:      scene.Name,
		Prompt:         spec,
		NegativePrompt: prompts.NegativePrompt(spec),
	}
}

// Document は出力全体です。
type Document struct {
	Title   string  `json:"title" yaml:"title"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// PromptPublisher は生成したプロンプトを人が読める形式や機械可読な形式で書き出します。
type PromptPublisher struct {
	format Format
}

// NewPromptPublisher は指定形式の PromptPublisher を生成します。
func NewPromptPublisher(format Format) *PromptPublisher {
	return &PromptPublisher{format: format}
}

// Publish は文書を w に書き出します。
func (p *PromptPublisher) Publish(w io.Writer, doc Document) error {
	switch p.format {
	case FormatMarkdown:
		_, err := io.WriteString(w, buildMarkdown(doc))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("JSON の書き出しに失敗しました: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("YAML の書き出しに失敗しました: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, p.format)
	}
}

// PublishFile は文書を outputDir 配下のファイルに書き出し、そのパスを返します。
func (p *PromptPublisher) PublishFile(outputDir string, doc Document) (string, error) {
	path, err := ResolveOutputPath(outputDir, defaultFileName+p.format.Extension())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := p.Publish(&buf, doc); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("プロンプトファイルの書き込みに失敗しました: %w", err)
	}

	slog.Info("プロンプトを書き出しました", "path", path, "scenes", len(doc.Entries))
	return path, nil
}
