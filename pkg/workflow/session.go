package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/go-scene-prompt-kit/pkg/adapters"
	"github.com/shouni/go-scene-prompt-kit/pkg/director"
	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/generator"
)

var (
	// ErrNodeNotFound はシーンの物語グラフに指定ノードが存在しないことを示します。
	ErrNodeNotFound = errors.New("narrative node not found")
	// ErrUnknownCameraPreset は未知のカメラプリセット名が指定されたことを示します。
	ErrUnknownCameraPreset = errors.New("unknown camera preset")
)

// SessionArgs は Session の構築に必要な依存関係です。
type SessionArgs struct {
	Project  *domain.Project
	Config   Config
	Director *director.Director
	Composer *generator.SceneComposer
}

// Session はプロジェクトを所有し、シーンへの書き込みを直列化するコーディネーターです。
// パイプラインの結果はフィールド単位で丸ごと置き換えます。
type Session struct {
	mu       sync.Mutex
	project  *domain.Project
	director *director.Director
	composer *generator.SceneComposer
}

// NewSession は新しい Session を初期化します。Director と Composer は省略できます。
func NewSession(args SessionArgs) (*Session, error) {
	if args.Project == nil {
		return nil, fmt.Errorf("project は必須です")
	}
	d := args.Director
	if d == nil {
		d = director.NewDirector(nil)
	}
	c := args.Composer
	if c == nil {
		c = generator.NewSceneComposer(nil, generator.ComposerConfig{
			CacheExpiration: args.Config.CacheExpiration,
			MaxParallel:     args.Config.MaxParallel,
		})
	}
	return &Session{project: args.Project, director: d, composer: c}, nil
}

// Scene はシーンのスナップショットを返します。
func (s *Session) Scene(sceneID string) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.FindScene(sceneID)
}

// SceneIDs はシーン ID を定義順に返します。
func (s *Session) SceneIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.SceneIDs()
}

// Project はプロジェクト全体のスナップショットを返します。
func (s *Session) Project() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *s.project
	p.Characters = append(domain.Characters(nil), s.project.Characters...)
	if s.project.World != nil {
		w := *s.project.World
		p.World = &w
	}
	p.Scenes = make([]domain.Scene, len(s.project.Scenes))
	for i, sc := range s.project.Scenes {
		p.Scenes[i] = sc.Clone()
	}
	return &p
}

// Replace はプロジェクトを丸ごと差し替えます。ファイルの再読み込みで使います。
func (s *Session) Replace(project *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = project
}

// ApplyPreset はフォーカスノードの構図プリセットでジオメトリを置き換え、プロンプトを再生成します。
func (s *Session) ApplyPreset(sceneID string) (domain.Scene, error) {
	return s.update(sceneID, func(scene *domain.Scene) error {
		scene.Geometry = s.director.Resolve(*scene, s.project)
		return nil
	})
}

// UpdatePrompt は現在のジオメトリからプロンプトを再生成します。
func (s *Session) UpdatePrompt(sceneID string) (domain.Scene, error) {
	return s.update(sceneID, func(*domain.Scene) error { return nil })
}

// SyncCanvas はエディタの状態からジオメトリを復元して置き換え、プロンプトを再生成します。
func (s *Session) SyncCanvas(sceneID string, state adapters.CanvasState) (domain.Scene, error) {
	return s.update(sceneID, func(scene *domain.Scene) error {
		scene.Geometry = adapters.FromCanvasState(state)
		return nil
	})
}

// SetCameraPreset はカメラプリセットを適用し、プロンプトを再生成します。
func (s *Session) SetCameraPreset(sceneID, preset string) (domain.Scene, error) {
	return s.update(sceneID, func(scene *domain.Scene) error {
		cam, ok := director.ApplyCameraPreset(scene.Geometry.Camera, preset)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCameraPreset, preset)
		}
		scene.Geometry.Camera = cam
		return nil
	})
}

// SetFocus はフォーカスノードを変更します。ジオメトリとプロンプトはそのままです。
func (s *Session) SetFocus(sceneID, nodeID string) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.project.SceneIndex(sceneID)
	if idx < 0 {
		return domain.Scene{}, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, sceneID)
	}
	scene := &s.project.Scenes[idx]
	if scene.NarrativeGraph.FindNode(nodeID) == nil {
		return domain.Scene{}, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	scene.FocusNodeID = nodeID
	return scene.Clone(), nil
}

// SynthesizeAll は全シーンのプロンプトを再生成して書き戻します。
func (s *Session) SynthesizeAll(ctx context.Context) ([]domain.PromptSpec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	specs, err := s.composer.SynthesizeAll(ctx, s.project)
	if err != nil {
		return nil, fmt.Errorf("プロンプトの一括生成に失敗しました: %w", err)
	}
	for i := range s.project.Scenes {
		s.project.Scenes[i].Prompt = specs[i].Clone()
	}
	return specs, nil
}

// update はシーンのスナップショットに mutate を適用し、プロンプトを再生成してから書き戻します。
// mutate がエラーを返した場合は何も書き戻しません。
func (s *Session) update(sceneID string, mutate func(scene *domain.Scene) error) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.project.SceneIndex(sceneID)
	if idx < 0 {
		return domain.Scene{}, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, sceneID)
	}

	scene := s.project.Scenes[idx].Clone()
	if err := mutate(&scene); err != nil {
		return domain.Scene{}, err
	}
	scene.Prompt = s.composer.Synthesize(scene, s.project)

	s.project.Scenes[idx].Geometry = scene.Geometry
	s.project.Scenes[idx].Prompt = scene.Prompt
	slog.Debug("シーンを更新しました", "scene", sceneID, "rawPrompt", scene.Prompt.RawPrompt)
	return scene.Clone(), nil
}
