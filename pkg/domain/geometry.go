package domain

import "math"

// Projection はカメラの投影方式です。
type Projection string

const (
	ProjectionPerspective  Projection = "perspective"
	ProjectionOrthographic Projection = "orthographic"
)

// ObjectTypeCharacter は現在唯一使われている SceneObject の種別です。
const ObjectTypeCharacter = "character"

// Guide の代表的な種別です。これ以外の値も許容されます。
const (
	GuideTypeDiagonal = "diagonal"
	GuideTypeHorizon  = "horizon"
	GuideTypeCustom   = "custom"
)

// Vector3 は3次元の座標またはベクトルを表します。
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Vec は Vector3 を簡潔に生成するヘルパーです。
func Vec(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Sub は v - o を返します。
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Length はベクトルのユークリッド長を返します。
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite はすべての成分が有限値であるかを判定します。
func (v Vector3) IsFinite() bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// CameraSpec はシーンを撮影するカメラの定義です。
type CameraSpec struct {
	ID         string     `json:"id" yaml:"id"`
	Projection Projection `json:"projection" yaml:"projection"`
	Eye        Vector3    `json:"eye" yaml:"eye"`
	Target     Vector3    `json:"target" yaml:"target"`
	Up         Vector3    `json:"up" yaml:"up"`
	FovDeg     float64    `json:"fovDeg,omitempty" yaml:"fovDeg,omitempty"`
}

// PoseHint はオブジェクトの向きや動作の意図を表す自由形式のタグです。
type PoseHint struct {
	Facing string `json:"facing,omitempty" yaml:"facing,omitempty"`
	Action string `json:"action,omitempty" yaml:"action,omitempty"`
}

// SceneObject はコンポジション内に配置されたオブジェクトです。
// RefID は Character への弱参照で、nil はキャラクター未解決を意味します。
type SceneObject struct {
	ID       string    `json:"id" yaml:"id"`
	Type     string    `json:"type" yaml:"type"`
	RefID    *string   `json:"refId" yaml:"refId"`
	Label    string    `json:"label" yaml:"label"`
	Position Vector3   `json:"position" yaml:"position"`
	Rotation Vector3   `json:"rotation" yaml:"rotation"`
	Scale    Vector3   `json:"scale" yaml:"scale"`
	Layer    int       `json:"layer" yaml:"layer"`
	PoseHint *PoseHint `json:"poseHint,omitempty" yaml:"poseHint,omitempty"`
}

// Ref は RefID の値を返します。未設定なら空文字です。
func (o SceneObject) Ref() string {
	if o.RefID == nil {
		return ""
	}
	return *o.RefID
}

// Action は PoseHint.Action を nil 安全に返します。
func (o SceneObject) Action() string {
	if o.PoseHint == nil {
		return ""
	}
	return o.PoseHint.Action
}

// Guide は構図判定のための参照線です。描画対象ではありません。
type Guide struct {
	ID   string         `json:"id" yaml:"id"`
	Type string         `json:"type" yaml:"type"`
	P1   Vector3        `json:"p1" yaml:"p1"`
	P2   Vector3        `json:"p2" yaml:"p2"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// GeometryComposition はカメラ、オブジェクト、ガイドの組です。
// Scene が排他的に所有し、更新は常に丸ごと置き換えます。
type GeometryComposition struct {
	Camera  CameraSpec    `json:"camera" yaml:"camera"`
	Objects []SceneObject `json:"objects" yaml:"objects"`
	Guides  []Guide       `json:"guides" yaml:"guides"`
}

// Clone は呼び出し元と内部状態を共有しないディープコピーを返します。
func (g GeometryComposition) Clone() GeometryComposition {
	out := GeometryComposition{Camera: g.Camera}
	if g.Objects != nil {
		out.Objects = make([]SceneObject, len(g.Objects))
		for i, o := range g.Objects {
			out.Objects[i] = o.clone()
		}
	}
	if g.Guides != nil {
		out.Guides = make([]Guide, len(g.Guides))
		for i, gd := range g.Guides {
			out.Guides[i] = gd
			if gd.Meta != nil {
				m := make(map[string]any, len(gd.Meta))
				for k, v := range gd.Meta {
					m[k] = v
				}
				out.Guides[i].Meta = m
			}
		}
	}
	return out
}

func (o SceneObject) clone() SceneObject {
	c := o
	if o.RefID != nil {
		ref := *o.RefID
		c.RefID = &ref
	}
	if o.PoseHint != nil {
		ph := *o.PoseHint
		c.PoseHint = &ph
	}
	return c
}

// StringPtr は文字列のポインタを返します。空文字なら nil を返します。
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
