package prompts

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

const demoRawPrompt = "a late teens female, with blue short hair, wearing school uniform, holding a katana, " +
	"drawing a sword, ready to attack, " +
	"eye-level shot, hero on the left, enemy on the right, face-to-face confrontation, " +
	"rule of thirds, hero on left, balanced two-subject composition, " +
	"medium shot, standard lens, " +
	"night city, neon lights, light rain, " +
	"urban fantasy atmosphere"

func demoScene() domain.Scene {
	return domain.Scene{
		ID:       "scene-1",
		Name:     "Rooftop confrontation",
		Geometry: demoGeometry(),
		Prompt: domain.PromptSpec{
			ID:                "prompt-1",
			Language:          "en",
			RawPrompt:         "stale",
			ExtraNegativeTags: []string{"blurry", "extra fingers"},
		},
	}
}

func TestSynthesizePrompt_Demo(t *testing.T) {
	got := SynthesizePrompt(demoScene(), demoProject())

	want := domain.PromptSpec{
		ID:          "prompt-1",
		Language:    "en",
		MainSubject: "a late teens female, with blue short hair, wearing school uniform, holding a katana",
		CompositionTags: []string{
			TagEyeLevel,
			TagHeroLeftEnemyRight,
			TagConfrontation,
			TagHeroLeft,
			TagBalancedTwoSubject,
		},
		ActionTags:        []string{"drawing a sword", "ready to attack"},
		CameraTags:        []string{TagMediumShot, TagStandardLens},
		EnvironmentTags:   []string{"night city", "neon lights", "light rain"},
		StyleTags:         []string{"urban fantasy atmosphere"},
		ExtraNegativeTags: []string{"blurry", "extra fingers"},
		RawPrompt:         demoRawPrompt,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("差分 (-want +got):\n%s", diff)
	}
}

func TestScenePromptBuilder_Synthesize(t *testing.T) {
	builder := NewScenePromptBuilder(nil)
	builder.newID = func() string { return "generated-id" }

	t.Run("同じ入力からは同じ結果になる", func(t *testing.T) {
		scene := demoScene()
		a := builder.Synthesize(scene, demoProject())
		b := builder.Synthesize(scene, demoProject())
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("結果が一致しません (-a +b):\n%s", diff)
		}
	})

	t.Run("入力のシーンを変更しない", func(t *testing.T) {
		scene := demoScene()
		_ = builder.Synthesize(scene, demoProject())
		if scene.Prompt.RawPrompt != "stale" {
			t.Errorf("scene.Prompt が書き換えられました: %q", scene.Prompt.RawPrompt)
		}
	})

	t.Run("ID が空なら採番する", func(t *testing.T) {
		scene := demoScene()
		scene.Prompt.ID = ""
		got := builder.Synthesize(scene, demoProject())
		if got.ID != "generated-id" {
			t.Errorf("期待値 %q, 実際の値 %q", "generated-id", got.ID)
		}
	})

	t.Run("ネガティブタグは引き継ぐがコピーである", func(t *testing.T) {
		scene := demoScene()
		got := builder.Synthesize(scene, demoProject())
		got.ExtraNegativeTags[0] = "changed"
		if scene.Prompt.ExtraNegativeTags[0] != "blurry" {
			t.Error("ExtraNegativeTags が前回の PromptSpec と共有されています")
		}
		if strings.Contains(got.RawPrompt, "blurry") {
			t.Error("RawPrompt にネガティブタグが含まれています")
		}
	})

	t.Run("プロジェクトがない場合も失敗しない", func(t *testing.T) {
		got := builder.Synthesize(demoScene(), nil)
		want := "drawing a sword, ready to attack, eye-level shot, medium shot, standard lens"
		if got.RawPrompt != want {
			t.Errorf("期待値 %q, 実際の値 %q", want, got.RawPrompt)
		}
	})

	t.Run("縮退カメラでも NaN を出さない", func(t *testing.T) {
		scene := demoScene()
		scene.Geometry.Camera.Eye = scene.Geometry.Camera.Target
		got := builder.Synthesize(scene, demoProject())
		if strings.Contains(got.RawPrompt, "NaN") {
			t.Errorf("RawPrompt に NaN が含まれています: %q", got.RawPrompt)
		}
		if diff := cmp.Diff([]string{TagCloseUp, TagStandardLens}, got.CameraTags); diff != "" {
			t.Errorf("差分 (-want +got):\n%s", diff)
		}
	})
}

func TestScenePromptBuilder_CustomGenreStyles(t *testing.T) {
	builder := NewScenePromptBuilder(GenreStyles{{Genre: "urban fantasy", Style: "cyberpunk mood"}})
	project := demoProject()
	got := builder.Derive(demoGeometry(), project)
	if diff := cmp.Diff([]string{"cyberpunk mood"}, got.StyleTags); diff != "" {
		t.Errorf("差分 (-want +got):\n%s", diff)
	}
	if got.ID != "" || got.ExtraNegativeTags != nil {
		t.Errorf("Derive は引き継ぎフィールドを設定しないはずです: %+v", got)
	}
}
