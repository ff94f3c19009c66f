package adapters

import (
	"maps"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// DefaultCameraID はキャンバスから復元したカメラに付与する ID です。
const DefaultCameraID = "cam-1"

const defaultCharacterLabel = "character"

// EntityKind はキャンバス上のエンティティの種別です。
type EntityKind string

const (
	EntityKindCharacter EntityKind = "character"
	EntityKindGuide     EntityKind = "guide"
)

// CanvasCamera はエディタが保持するカメラです。ID は持ちません。
type CanvasCamera struct {
	Projection domain.Projection `json:"projection" yaml:"projection"`
	Eye        domain.Vector3    `json:"eye" yaml:"eye"`
	Target     domain.Vector3    `json:"target" yaml:"target"`
	Up         domain.Vector3    `json:"up" yaml:"up"`
	FovDeg     float64           `json:"fovDeg,omitempty" yaml:"fovDeg,omitempty"`
}

// EntityMeta はエンティティの属性です。未設定の項目は復元時に既定値で補われます。
type EntityMeta struct {
	CharacterID *string          `json:"characterId,omitempty" yaml:"characterId,omitempty"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Position    *domain.Vector3  `json:"position,omitempty" yaml:"position,omitempty"`
	Rotation    *domain.Vector3  `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale       *domain.Vector3  `json:"scale,omitempty" yaml:"scale,omitempty"`
	Layer       int              `json:"layer,omitempty" yaml:"layer,omitempty"`
	PoseHint    *domain.PoseHint `json:"poseHint,omitempty" yaml:"poseHint,omitempty"`

	GuideType string          `json:"guideType,omitempty" yaml:"guideType,omitempty"`
	P1        *domain.Vector3 `json:"p1,omitempty" yaml:"p1,omitempty"`
	P2        *domain.Vector3 `json:"p2,omitempty" yaml:"p2,omitempty"`
	// Extra はガイドに付随する任意の属性で、Guide.Meta とそのまま対応します。
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Entity はキャンバス上の1要素です。
type Entity struct {
	ID   string     `json:"id" yaml:"id"`
	Kind EntityKind `json:"kind" yaml:"kind"`
	Meta EntityMeta `json:"meta" yaml:"meta"`
}

// CanvasState は2Dエディタの状態です。
type CanvasState struct {
	Camera   CanvasCamera `json:"camera" yaml:"camera"`
	Entities []Entity     `json:"entities" yaml:"entities"`
}

// ToCanvasState はジオメトリをエディタの状態に変換します。
// キャラクター以外のオブジェクトはエディタで扱えないため出力しません。
func ToCanvasState(geom domain.GeometryComposition) CanvasState {
	state := CanvasState{
		Camera: CanvasCamera{
			Projection: geom.Camera.Projection,
			Eye:        geom.Camera.Eye,
			Target:     geom.Camera.Target,
			Up:         geom.Camera.Up,
			FovDeg:     geom.Camera.FovDeg,
		},
		Entities: make([]Entity, 0, len(geom.Objects)+len(geom.Guides)),
	}

	for _, obj := range geom.Objects {
		if obj.Type != domain.ObjectTypeCharacter {
			continue
		}
		obj = cloneObject(obj)
		state.Entities = append(state.Entities, Entity{
			ID:   obj.ID,
			Kind: EntityKindCharacter,
			Meta: EntityMeta{
				CharacterID: obj.RefID,
				Label:       obj.Label,
				Position:    &obj.Position,
				Rotation:    &obj.Rotation,
				Scale:       &obj.Scale,
				Layer:       obj.Layer,
				PoseHint:    obj.PoseHint,
			},
		})
	}

	for _, g := range geom.Guides {
		p1, p2 := g.P1, g.P2
		state.Entities = append(state.Entities, Entity{
			ID:   g.ID,
			Kind: EntityKindGuide,
			Meta: EntityMeta{
				GuideType: g.Type,
				P1:        &p1,
				P2:        &p2,
				Extra:     maps.Clone(g.Meta),
			},
		})
	}

	return state
}

// FromCanvasState はエディタの状態をジオメトリに復元します。
// カメラ ID は DefaultCameraID になり、未知の種別のエンティティは無視します。
func FromCanvasState(state CanvasState) domain.GeometryComposition {
	geom := domain.GeometryComposition{
		Camera: domain.CameraSpec{
			ID:         DefaultCameraID,
			Projection: state.Camera.Projection,
			Eye:        state.Camera.Eye,
			Target:     state.Camera.Target,
			Up:         state.Camera.Up,
			FovDeg:     state.Camera.FovDeg,
		},
		Objects: []domain.SceneObject{},
		Guides:  []domain.Guide{},
	}

	for _, ent := range state.Entities {
		m := ent.Meta
		switch ent.Kind {
		case EntityKindCharacter:
			obj := domain.SceneObject{
				ID:       ent.ID,
				Type:     domain.ObjectTypeCharacter,
				RefID:    m.CharacterID,
				Label:    m.Label,
				Position: deref(m.Position, domain.Vector3{}),
				Rotation: deref(m.Rotation, domain.Vector3{}),
				Scale:    deref(m.Scale, domain.Vec(1, 1, 1)),
				Layer:    m.Layer,
				PoseHint: m.PoseHint,
			}
			if obj.Label == "" {
				obj.Label = defaultCharacterLabel
			}
			geom.Objects = append(geom.Objects, cloneObject(obj))
		case EntityKindGuide:
			g := domain.Guide{
				ID:   ent.ID,
				Type: m.GuideType,
				P1:   deref(m.P1, domain.Vector3{}),
				P2:   deref(m.P2, domain.Vector3{}),
				Meta: maps.Clone(m.Extra),
			}
			if g.Type == "" {
				g.Type = domain.GuideTypeCustom
			}
			geom.Guides = append(geom.Guides, g)
		}
	}

	return geom
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// cloneObject はポインタ項目を複製し、キャンバスとジオメトリが状態を共有しないようにします。
func cloneObject(obj domain.SceneObject) domain.SceneObject {
	if obj.RefID != nil {
		ref := *obj.RefID
		obj.RefID = &ref
	}
	if obj.PoseHint != nil {
		ph := *obj.PoseHint
		obj.PoseHint = &ph
	}
	return obj
}
