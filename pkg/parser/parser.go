package parser

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

//go:embed schema.json
var schemaJSON []byte

const schemaResource = "project.schema.json"

// Format はプロジェクト文書の形式です。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat は拡張子や指定から形式を判定できなかったことを示します。
var ErrUnsupportedFormat = errors.New("unsupported project format")

// FormatFromPath はファイルの拡張子から形式を判定します。
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parser はプロジェクト文書を解析するためのインターフェースです。
type Parser interface {
	Parse(data []byte, format Format) (*domain.Project, error)
}

// ProjectParser はスキーマ検証付きでプロジェクト文書を読み込みます。
type ProjectParser struct {
	schema *jsonschema.Schema
}

// NewProjectParser は埋め込みスキーマをコンパイルして ProjectParser を初期化します。
func NewProjectParser() (*ProjectParser, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load project schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile project schema: %w", err)
	}
	return &ProjectParser{schema: schema}, nil
}

// Validate は文書がプロジェクトのスキーマに適合するかを検証します。
func (p *ProjectParser) Validate(data []byte, format Format) error {
	doc, err := toJSONDocument(data, format)
	if err != nil {
		return err
	}
	if err := p.schema.Validate(doc); err != nil {
		return fmt.Errorf("project does not match schema: %w", err)
	}
	return nil
}

// Parse は文書を検証したうえで domain.Project に変換します。
func (p *ProjectParser) Parse(data []byte, format Format) (*domain.Project, error) {
	if err := p.Validate(data, format); err != nil {
		return nil, err
	}

	var project domain.Project
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &project); err != nil {
			return nil, fmt.Errorf("failed to decode project JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &project); err != nil {
			return nil, fmt.Errorf("failed to decode project YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &project, nil
}

// LoadFile はファイルを読み込み、拡張子から判定した形式で解析します。
func (p *ProjectParser) LoadFile(path string) (*domain.Project, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトファイルの読み込みに失敗しました: %w", err)
	}
	project, err := p.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return project, nil
}

// Encode はプロジェクトを指定の形式で書き出します。
func Encode(w io.Writer, project *domain.Project, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(project)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(project); err != nil {
			return fmt.Errorf("failed to encode project YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveFile はプロジェクトを拡張子に応じた形式でファイルに保存します。
func SaveFile(path string, project *domain.Project) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, project, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("プロジェクトファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

// toJSONDocument は検証用に、文書を encoding/json が生成するのと同じ型の値に変換します。
// YAML の整数やマップのキーを JSON と揃えるため、一度 JSON を経由します。
func toJSONDocument(data []byte, format Format) (any, error) {
	raw := data
	switch format {
	case FormatJSON:
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode project YAML: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert project YAML: %w", err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode project JSON: %w", err)
	}
	return doc, nil
}
