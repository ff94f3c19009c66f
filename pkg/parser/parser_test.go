package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shouni/go-scene-prompt-kit/examples"
)

func newParser(t *testing.T) *ProjectParser {
	t.Helper()
	p, err := NewProjectParser()
	if err != nil {
		t.Fatalf("スキーマのコンパイルに失敗しました: %v", err)
	}
	return p
}

func TestProjectParser_ParseJSON(t *testing.T) {
	p := newParser(t)

	project, err := p.Parse(examples.ProjectJSON, FormatJSON)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if project.ID != "proj-1" || len(project.Scenes) != 1 {
		t.Errorf("デモプロジェクトが正しく読み込まれていません: %+v", project)
	}
	obj := project.Scenes[0].Geometry.Objects[0]
	if obj.Ref() != "ch-hero" || obj.Action() != "draw_sword" {
		t.Errorf("オブジェクトが正しく読み込まれていません: %+v", obj)
	}
}

func TestProjectParser_YAMLRoundTrip(t *testing.T) {
	p := newParser(t)
	want, err := p.Parse(examples.ProjectJSON, FormatJSON)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, want, FormatYAML); err != nil {
		t.Fatalf("YAML の書き出しに失敗しました: %v", err)
	}
	if !strings.Contains(buf.String(), "focusNodeId: ev-2") {
		t.Errorf("YAML のキー名が JSON と揃っていません:\n%s", buf.String())
	}

	got, err := p.Parse(buf.Bytes(), FormatYAML)
	if err != nil {
		t.Fatalf("YAML の解析に失敗しました: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("往復変換で差分が出ました (-want +got):\n%s", diff)
	}
}

func TestProjectParser_Validate(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name   string
		doc    string
		format Format
	}{
		{
			name:   "scenes がない",
			doc:    `{"id": "p", "name": "n", "characters": []}`,
			format: FormatJSON,
		},
		{
			name: "未知の投影方式",
			doc: `{"id": "p", "name": "n", "characters": [], "scenes": [{"id": "s", "geometry": {"camera":
				{"projection": "fisheye", "eye": {"x": 0, "y": 0, "z": 1}, "target": {"x": 0, "y": 0, "z": 0}}}}]}`,
			format: FormatJSON,
		},
		{
			name: "座標の成分が欠けている",
			doc: `
id: p
name: n
characters: []
scenes:
  - id: s
    geometry:
      camera:
        projection: perspective
        eye: {x: 0, y: 1}
        target: {x: 0, y: 0, z: 0}
`,
			format: FormatYAML,
		},
		{
			name: "負のレイヤー",
			doc: `{"id": "p", "name": "n", "characters": [], "scenes": [{"id": "s", "geometry": {
				"camera": {"projection": "perspective", "eye": {"x": 0, "y": 0, "z": 1}, "target": {"x": 0, "y": 0, "z": 0}},
				"objects": [{"id": "o", "type": "character", "position": {"x": 0, "y": 0, "z": 0}, "layer": -1}]}}]}`,
			format: FormatJSON,
		},
		{
			name:   "キャラクターに role がない",
			doc:    `{"id": "p", "name": "n", "characters": [{"id": "c"}], "scenes": []}`,
			format: FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Validate([]byte(tt.doc), tt.format); err == nil {
				t.Error("検証エラーを期待しました")
			}
			if _, err := p.Parse([]byte(tt.doc), tt.format); err == nil {
				t.Error("Parse もエラーを返すべきです")
			}
		})
	}

	t.Run("レイヤー0は通る", func(t *testing.T) {
		doc := `{"id": "p", "name": "n", "characters": [], "scenes": [{"id": "s", "geometry": {
			"camera": {"projection": "perspective", "eye": {"x": 0, "y": 0, "z": 1}, "target": {"x": 0, "y": 0, "z": 0}},
			"objects": [{"id": "o", "type": "character", "position": {"x": 0, "y": 0, "z": 0}, "layer": 0}]}}]}`
		if err := p.Validate([]byte(doc), FormatJSON); err != nil {
			t.Errorf("予期しないエラー: %v", err)
		}
	})

	t.Run("最小構成の YAML は通る", func(t *testing.T) {
		doc := "id: p\nname: n\ncharacters: []\nscenes: []\n"
		if err := p.Validate([]byte(doc), FormatYAML); err != nil {
			t.Errorf("予期しないエラー: %v", err)
		}
	})
}

func TestFileIO(t *testing.T) {
	p := newParser(t)
	project, err := examples.DefaultProject()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"project.yaml", "project.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveFile(path, project); err != nil {
				t.Fatalf("保存に失敗しました: %v", err)
			}
			got, err := p.LoadFile(path)
			if err != nil {
				t.Fatalf("読み込みに失敗しました: %v", err)
			}
			if diff := cmp.Diff(project, got); diff != "" {
				t.Errorf("差分 (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("未対応の拡張子", func(t *testing.T) {
		path := filepath.Join(dir, "project.toml")
		if err := os.WriteFile(path, []byte("id = 1"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := p.LoadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ErrUnsupportedFormat を期待しました: %v", err)
		}
	})
}
