package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/prompts"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
	defaultMaxParallel     = 4
)

// ComposerConfig は SceneComposer の設定です。
type ComposerConfig struct {
	CacheExpiration time.Duration
	CleanupInterval time.Duration
	// MaxParallel は SynthesizeAll で同時に処理するシーン数の上限です。
	MaxParallel int
}

// DefaultComposerConfig は標準の設定を返します。
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		CacheExpiration: defaultCacheExpiration,
		CleanupInterval: cacheCleanupInterval,
		MaxParallel:     defaultMaxParallel,
	}
}

// SceneComposer はプロンプト導出の結果をキャッシュし、同じ入力の同時計算を1回にまとめます。
// キャッシュするのはジオメトリから導出される部分だけで、ID などの引き継ぎフィールドは毎回マージします。
type SceneComposer struct {
	builder     *prompts.ScenePromptBuilder
	cache       *cache.Cache
	group       singleflight.Group
	maxParallel int
}

// NewSceneComposer は SceneComposer の新しいインスタンスを初期化済みの状態で生成します。
// builder が nil の場合は標準の ScenePromptBuilder を使います。
func NewSceneComposer(builder *prompts.ScenePromptBuilder, cfg ComposerConfig) *SceneComposer {
	if builder == nil {
		builder = prompts.NewScenePromptBuilder(nil)
	}
	if cfg.CacheExpiration <= 0 {
		cfg.CacheExpiration = defaultCacheExpiration
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = cacheCleanupInterval
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = defaultMaxParallel
	}
	return &SceneComposer{
		builder:     builder,
		cache:       cache.New(cfg.CacheExpiration, cfg.CleanupInterval),
		maxParallel: cfg.MaxParallel,
	}
}

// Synthesize はシーンのプロンプトを生成します。scene と project は変更しません。
func (sc *SceneComposer) Synthesize(scene domain.Scene, project *domain.Project) domain.PromptSpec {
	return sc.builder.Merge(scene.Prompt, sc.derive(scene.Geometry, project))
}

// derive はキャッシュを確認し、なければ singleflight 経由で導出します。
func (sc *SceneComposer) derive(geom domain.GeometryComposition, project *domain.Project) domain.PromptSpec {
	key, err := Fingerprint(geom, project)
	if err != nil {
		slog.Debug("キャッシュを使わずに導出します", "error", err)
		return sc.builder.Derive(geom, project)
	}

	if v, ok := sc.cache.Get(key); ok {
		if spec, ok := v.(domain.PromptSpec); ok {
			return spec.Clone()
		}
	}

	v, _, shared := sc.group.Do(key, func() (interface{}, error) {
		// 待機中に他のゴルーチンが導出を終えている可能性があるため、再度キャッシュを確認
		if v, ok := sc.cache.Get(key); ok {
			return v, nil
		}
		spec := sc.builder.Derive(geom, project)
		sc.cache.SetDefault(key, spec)
		return spec, nil
	})
	if shared {
		slog.Debug("同時に要求された導出を共有しました", "fingerprint", key[:12])
	}

	spec, ok := v.(domain.PromptSpec)
	if !ok {
		return sc.builder.Derive(geom, project)
	}
	return spec.Clone()
}

// SynthesizeAll はプロジェクトの全シーンのプロンプトを並列に生成し、シーン順に返します。
// 各シーンはスナップショットに対して処理されるため、project は変更されません。
func (sc *SceneComposer) SynthesizeAll(ctx context.Context, project *domain.Project) ([]domain.PromptSpec, error) {
	if project == nil {
		return nil, fmt.Errorf("project is nil")
	}

	scenes := make([]domain.Scene, len(project.Scenes))
	for i, s := range project.Scenes {
		scenes[i] = s.Clone()
	}
	results := make([]domain.PromptSpec, len(scenes))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(sc.maxParallel)
	for i, scene := range scenes {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("scene %s: %w", scene.ID, err)
			}
			results[i] = sc.Synthesize(scene, project)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("全シーンのプロンプトを生成しました", "project", project.ID, "scenes", len(results))
	return results, nil
}

// Len はキャッシュされている導出結果の数を返します。
func (sc *SceneComposer) Len() int {
	return sc.cache.ItemCount()
}

// Flush はキャッシュをすべて破棄します。
func (sc *SceneComposer) Flush() {
	sc.cache.Flush()
}
