package prompts

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// ScenePromptBuilder はシーンのジオメトリとプロジェクト定義から PromptSpec を構築します。
type ScenePromptBuilder struct {
	genreStyles GenreStyles
	newID       func() string
}

// NewScenePromptBuilder は新しい ScenePromptBuilder を生成します。
// styles が nil の場合は DefaultGenreStyles を使います。
func NewScenePromptBuilder(styles GenreStyles) *ScenePromptBuilder {
	if styles == nil {
		styles = DefaultGenreStyles
	}
	return &ScenePromptBuilder{
		genreStyles: styles,
		newID:       func() string { return uuid.New().String() },
	}
}

// Derive はジオメトリから再生成される部分だけを持つ PromptSpec を返します。
// ID・Language・ExtraNegativeTags は空のままです。
func (pb *ScenePromptBuilder) Derive(geom domain.GeometryComposition, project *domain.Project) domain.PromptSpec {
	var chars domain.Characters
	var world *domain.World
	if project != nil {
		chars = project.Characters
		world = project.World
	}

	cam := ClassifyCamera(geom.Camera)
	if cam.Degenerate {
		slog.Warn("カメラの eye と target が一致しているため、アイレベル・距離0として扱います",
			"camera", geom.Camera.ID)
	}
	comp := AnalyzeComposition(geom, chars)
	subj := BuildSubject(geom.Objects, chars)
	wt := pb.genreStyles.Derive(world)

	composition := make([]string, 0, len(cam.Composition)+len(subj.Composition)+len(comp))
	composition = append(composition, cam.Composition...)
	composition = append(composition, subj.Composition...)
	composition = append(composition, comp...)

	spec := domain.PromptSpec{
		MainSubject:     subj.MainSubject,
		CompositionTags: composition,
		ActionTags:      subj.Actions,
		CameraTags:      cam.Camera,
		EnvironmentTags: wt.Environment,
		StyleTags:       wt.Style,
	}
	spec.RawPrompt = Assemble(spec)
	return spec
}

// Merge は前回の PromptSpec から引き継ぐフィールドを derived に移して返します。
func (pb *ScenePromptBuilder) Merge(prev, derived domain.PromptSpec) domain.PromptSpec {
	out := derived.Clone()
	out.ID = prev.ID
	if out.ID == "" {
		out.ID = pb.newID()
	}
	out.Language = prev.Language
	out.ExtraNegativeTags = []string{}
	out.ExtraNegativeTags = append(out.ExtraNegativeTags, prev.ExtraNegativeTags...)
	return out
}

// Synthesize はシーンのプロンプトを丸ごと再生成します。scene と project は変更しません。
func (pb *ScenePromptBuilder) Synthesize(scene domain.Scene, project *domain.Project) domain.PromptSpec {
	return pb.Merge(scene.Prompt, pb.Derive(scene.Geometry, project))
}

var defaultBuilder = NewScenePromptBuilder(nil)

// SynthesizePrompt は標準設定でシーンのプロンプトを生成する公開エントリポイントです。
func SynthesizePrompt(scene domain.Scene, project *domain.Project) domain.PromptSpec {
	return defaultBuilder.Synthesize(scene, project)
}
