package domain

import (
	"math"
	"testing"
)

func TestGeometryComposition_Clone(t *testing.T) {
	src := GeometryComposition{
		Camera: CameraSpec{ID: "cam-1", Projection: ProjectionPerspective},
		Objects: []SceneObject{{
			ID:       "obj-hero",
			Type:     ObjectTypeCharacter,
			RefID:    StringPtr("ch-hero"),
			PoseHint: &PoseHint{Facing: "camera", Action: "draw_sword"},
		}},
		Guides: []Guide{{ID: "g1", Type: GuideTypeDiagonal, Meta: map[string]any{"k": "v"}}},
	}

	c := src.Clone()
	*c.Objects[0].RefID = "changed"
	c.Objects[0].PoseHint.Action = "changed"
	c.Guides[0].Meta["k"] = "changed"

	if src.Objects[0].Ref() != "ch-hero" {
		t.Errorf("RefID が共有されています: %s", src.Objects[0].Ref())
	}
	if src.Objects[0].Action() != "draw_sword" {
		t.Errorf("PoseHint が共有されています: %s", src.Objects[0].Action())
	}
	if src.Guides[0].Meta["k"] != "v" {
		t.Errorf("Meta が共有されています: %v", src.Guides[0].Meta["k"])
	}
}

func TestVector3(t *testing.T) {
	d := Vec(0, 0, 0).Sub(Vec(0, 5, 10))
	if got := d.Length(); math.Abs(got-math.Sqrt(125)) > 1e-9 {
		t.Errorf("長さ: 期待値 %f, 実際の値 %f", math.Sqrt(125), got)
	}
	if !d.IsFinite() {
		t.Error("有限値のベクトルが非有限と判定されました")
	}
	if Vec(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN を含むベクトルが有限と判定されました")
	}
}

func TestSceneObject_NilSafeAccessors(t *testing.T) {
	var o SceneObject
	if o.Ref() != "" || o.Action() != "" {
		t.Errorf("ゼロ値のオブジェクトは空文字を返すべきです: %q %q", o.Ref(), o.Action())
	}
	if StringPtr("") != nil {
		t.Error("空文字の StringPtr は nil であるべきです")
	}
}

func TestProject_FindScene(t *testing.T) {
	p := &Project{Scenes: []Scene{{ID: "scene-1", Prompt: PromptSpec{ExtraNegativeTags: []string{"blurry"}}}}}

	s, err := p.FindScene("scene-1")
	if err != nil {
		t.Fatalf("シーンが見つかりませんでした: %v", err)
	}
	s.Prompt.ExtraNegativeTags[0] = "changed"
	if p.Scenes[0].Prompt.ExtraNegativeTags[0] != "blurry" {
		t.Error("スナップショットの変更が元のシーンに波及しました")
	}

	if _, err := p.FindScene("missing"); err != ErrSceneNotFound {
		t.Errorf("ErrSceneNotFound を期待しましたが %v でした", err)
	}
}
