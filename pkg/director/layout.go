package director

import (
	"fmt"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

const (
	// CrowdSize は overhead_crowd が生成する群衆オブジェクトの数です。
	CrowdSize = 10
	// CrowdSpread は群衆を配置する水平方向の正方形の一辺の長さです。
	CrowdSpread = 6.0

	heroPlaceholder  = "Hero"
	enemyPlaceholder = "Enemy"
	crowdLabel       = "npc"
)

// RandSource は群衆配置に使う [0, 1) の一様乱数源です。
// *rand.Rand (math/rand/v2) をそのまま渡せます。
type RandSource interface {
	Float64() float64
}

// LayoutManager はプリセットごとのオブジェクト配置を組み立てます。
type LayoutManager struct {
	rnd RandSource
}

// NewLayoutManager は乱数源を指定して LayoutManager を生成します。
func NewLayoutManager(rnd RandSource) *LayoutManager {
	return &LayoutManager{rnd: rnd}
}

// HeroObject は主人公のオブジェクトを左側に 30° 内向きで配置します。
// hero が nil の場合はプレースホルダーのラベルと nil 参照で生成します。
func (l *LayoutManager) HeroObject(hero *domain.Character) domain.SceneObject {
	return characterObject("obj-hero", hero, heroPlaceholder, domain.SceneObject{
		Position: domain.Vec(-1, 0, 0),
		Rotation: domain.Vec(0, 30, 0),
		Layer:    1,
		PoseHint: &domain.PoseHint{Facing: "camera", Action: "draw_sword"},
	})
}

// EnemyObject は敵のオブジェクトを主人公と鏡像の位置に配置します。
func (l *LayoutManager) EnemyObject(enemy *domain.Character) domain.SceneObject {
	return characterObject("obj-enemy", enemy, enemyPlaceholder, domain.SceneObject{
		Position: domain.Vec(1, 0, 0),
		Rotation: domain.Vec(0, -30, 0),
		Layer:    2,
		PoseHint: &domain.PoseHint{Facing: "camera", Action: "ready_to_attack"},
	})
}

// Crowd は参照を持たない群衆オブジェクトを CrowdSpread 四方にばらまきます。
// x と z は互いに独立な一様乱数で、呼び出すたびに異なる配置になります。
func (l *LayoutManager) Crowd() []domain.SceneObject {
	objects := make([]domain.SceneObject, 0, CrowdSize)
	for i := range CrowdSize {
		x := (l.rnd.Float64() - 0.5) * CrowdSpread
		z := (l.rnd.Float64() - 0.5) * CrowdSpread
		objects = append(objects, domain.SceneObject{
			ID:       fmt.Sprintf("crowd-%d", i),
			Type:     domain.ObjectTypeCharacter,
			Label:    crowdLabel,
			Position: domain.Vec(x, 0, z),
			Scale:    unitScale(),
			PoseHint: &domain.PoseHint{Facing: "down"},
		})
	}
	return objects
}

func characterObject(id string, ch *domain.Character, placeholder string, base domain.SceneObject) domain.SceneObject {
	obj := base
	obj.ID = id
	obj.Type = domain.ObjectTypeCharacter
	obj.Label = placeholder
	obj.Scale = unitScale()
	if ch != nil {
		obj.RefID = domain.StringPtr(ch.ID)
		if ch.Name != "" {
			obj.Label = ch.Name
		}
	}
	return obj
}

func unitScale() domain.Vector3 {
	return domain.Vec(1, 1, 1)
}
