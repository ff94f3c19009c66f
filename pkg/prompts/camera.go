package prompts

import (
	"math"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// 垂直アングルのタグです。いずれか1つだけが必ず出力されます。
const (
	TagHighAngle = "high-angle shot"
	TagLowAngle  = "low-angle shot"
	TagEyeLevel  = "eye-level shot"
)

// 撮影距離とレンズのタグです。
const (
	TagCloseUp          = "close-up"
	TagMediumShot       = "medium shot"
	TagWideShot         = "wide shot"
	TagWideAngleLens    = "wide angle lens"
	TagStandardLens     = "standard lens"
	TagOrthographicView = "orthographic view"
)

const (
	// AngleThresholdDeg を超える俯角・仰角でハイ/ローアングルと判定します。
	AngleThresholdDeg = 35.0
	// CloseUpDistance 未満はクローズアップです。
	CloseUpDistance = 5.0
	// MediumShotDistance 未満はミディアムショット、それ以上はワイドショットです。
	MediumShotDistance = 15.0
	// WideLensFovDeg 以上の画角を広角レンズとみなします。
	WideLensFovDeg = 60.0
	// DefaultFovDeg は FovDeg 未設定時に使う画角です。
	DefaultFovDeg = 45.0

	degenerateEpsilon = 1e-9
)

// CameraTags はカメラ分類の結果です。
type CameraTags struct {
	// Composition には垂直アングルのタグが1つだけ入ります。
	Composition []string
	// Camera には撮影距離タグとレンズタグがこの順で入ります。
	Camera []string

	VerticalAngleDeg float64
	Distance         float64
	// Degenerate は eye と target が一致する、または非有限値を含むカメラだったことを示します。
	Degenerate bool
}

// ClassifyCamera はカメラの幾何からアングル・距離・レンズのタグを導出します。
// 縮退したカメラはアイレベル・距離0として扱い、NaN をタグに持ち込みません。
func ClassifyCamera(cam domain.CameraSpec) CameraTags {
	d := cam.Target.Sub(cam.Eye)
	res := CameraTags{}

	if !cam.Eye.IsFinite() || !cam.Target.IsFinite() || d.Length() < degenerateEpsilon {
		res.Degenerate = true
	} else {
		res.VerticalAngleDeg = math.Atan2(d.Y, math.Hypot(d.X, d.Z)) * 180 / math.Pi
		res.Distance = d.Length()
	}

	res.Composition = []string{classifyVerticalAngle(res.VerticalAngleDeg)}
	res.Camera = []string{classifyDistance(res.Distance), classifyLens(cam)}
	return res
}

func classifyVerticalAngle(deg float64) string {
	switch {
	case deg > AngleThresholdDeg:
		return TagHighAngle
	case deg < -AngleThresholdDeg:
		return TagLowAngle
	default:
		return TagEyeLevel
	}
}

// classifyDistance は投影方式に関係なく eye-target 間の距離で判定します。
func classifyDistance(dist float64) string {
	switch {
	case dist < CloseUpDistance:
		return TagCloseUp
	case dist < MediumShotDistance:
		return TagMediumShot
	default:
		return TagWideShot
	}
}

func classifyLens(cam domain.CameraSpec) string {
	if cam.Projection != domain.ProjectionPerspective {
		return TagOrthographicView
	}
	fov := cam.FovDeg
	if fov == 0 {
		fov = DefaultFovDeg
	}
	if fov >= WideLensFovDeg {
		return TagWideAngleLens
	}
	return TagStandardLens
}
