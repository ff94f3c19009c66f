package director

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// Director はシーンのフォーカスノードが要求する構図プリセットからジオメトリを組み立てます。
type Director struct {
	mu     sync.Mutex
	layout *LayoutManager
}

// NewDirector は乱数源を指定して Director を生成します。
// rnd が nil の場合は math/rand/v2 のグローバル乱数を使います。
// rnd は Director 内部で排他制御されるため、スレッドセーフである必要はありません。
func NewDirector(rnd RandSource) *Director {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Director{layout: NewLayoutManager(rnd)}
}

// Resolve はフォーカスノードのプリセットに応じたジオメトリを返します。
// ノードが見つからない場合や未知のプリセットでは、現在のジオメトリのコピーをそのまま返します。
// scene と project は変更しません。
func (d *Director) Resolve(scene domain.Scene, project *domain.Project) domain.GeometryComposition {
	node := scene.FocusNode()
	if node == nil {
		slog.Debug("フォーカスノードが見つからないため、ジオメトリを変更しません",
			"scene", scene.ID, "focusNodeId", scene.FocusNodeID)
		return scene.Geometry.Clone()
	}

	var chars domain.Characters
	if project != nil {
		chars = project.Characters
	}

	preset := node.Preset()
	switch preset {
	case domain.PresetFaceOff:
		return d.faceOff(chars)
	case domain.PresetRushTowards:
		return d.rushTowards(chars)
	case domain.PresetOverheadCrowd:
		return d.overheadCrowd()
	case domain.PresetHeroWalkaway:
		return d.heroWalkaway(chars)
	case domain.PresetNone:
	default:
		slog.Debug("未知の構図プリセットのため、ジオメトリを変更しません",
			"scene", scene.ID, "node", node.ID, "preset", preset)
	}
	return scene.Geometry.Clone()
}

func (d *Director) hero(chars domain.Characters) domain.SceneObject {
	hero := chars.FirstByRole(domain.RoleProtagonist)
	if hero == nil {
		slog.Warn("主人公が見つからないため、プレースホルダーで配置します")
	}
	return d.layout.HeroObject(hero)
}

func (d *Director) faceOff(chars domain.Characters) domain.GeometryComposition {
	enemy := chars.FirstByRole(domain.RoleAntagonist)
	if enemy == nil {
		slog.Warn("敵が見つからないため、プレースホルダーで配置します")
	}
	return domain.GeometryComposition{
		Camera:  faceOffCamera,
		Objects: []domain.SceneObject{d.hero(chars), d.layout.EnemyObject(enemy)},
		Guides:  []domain.Guide{},
	}
}

func (d *Director) rushTowards(chars domain.Characters) domain.GeometryComposition {
	hero := d.hero(chars)
	hero.Position = domain.Vec(0, 0, 0.5)
	hero.Layer = 3
	hero.PoseHint = &domain.PoseHint{Facing: "camera", Action: "rush_forward"}
	return domain.GeometryComposition{
		Camera:  rushCamera,
		Objects: []domain.SceneObject{hero},
		Guides:  []domain.Guide{},
	}
}

func (d *Director) overheadCrowd() domain.GeometryComposition {
	d.mu.Lock()
	objects := d.layout.Crowd()
	d.mu.Unlock()
	return domain.GeometryComposition{
		Camera:  overheadCamera,
		Objects: objects,
		Guides:  []domain.Guide{},
	}
}

func (d *Director) heroWalkaway(chars domain.Characters) domain.GeometryComposition {
	hero := d.hero(chars)
	hero.Position = domain.Vector3{}
	hero.Rotation = domain.Vector3{}
	hero.PoseHint = &domain.PoseHint{Facing: "back", Action: "walk_away"}
	return domain.GeometryComposition{
		Camera:  walkawayCamera,
		Objects: []domain.SceneObject{hero},
		Guides:  []domain.Guide{},
	}
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

var defaultDirector = NewDirector(nil)

// ResolveNarrativeGeometry はグローバル乱数を使う標準の Director でジオメトリを解決します。
func ResolveNarrativeGeometry(scene domain.Scene, project *domain.Project) domain.GeometryComposition {
	return defaultDirector.Resolve(scene, project)
}

// Presets は解決可能な構図プリセット名の一覧です。
func Presets() []string {
	return []string{
		domain.PresetFaceOff,
		domain.PresetRushTowards,
		domain.PresetOverheadCrowd,
		domain.PresetHeroWalkaway,
	}
}
