package director

import "github.com/shouni/go-scene-prompt-kit/pkg/domain"

// エディタから選べるカメラプリセットの名前です。
const (
	CameraPresetOverhead = "overhead"
	CameraPresetEyeLevel = "eyelevel"
)

// プリセットごとのカメラです。
var (
	faceOffCamera = domain.CameraSpec{
		ID:         "cam-faceoff",
		Projection: domain.ProjectionPerspective,
		Eye:        domain.Vec(0, 3, 6),
		Up:         domain.Vec(0, 1, 0),
		FovDeg:     45,
	}
	rushCamera = domain.CameraSpec{
		ID:         "cam-rush",
		Projection: domain.ProjectionPerspective,
		Eye:        domain.Vec(0, 1.5, 3),
		Target:     domain.Vec(0, 1.2, 0),
		Up:         domain.Vec(0, 1, 0),
		FovDeg:     70,
	}
	overheadCamera = domain.CameraSpec{
		ID:         "cam-overhead",
		Projection: domain.ProjectionPerspective,
		Eye:        domain.Vec(0, 15, 0.1),
		Up:         domain.Vec(0, 0, 1),
		FovDeg:     60,
	}
	walkawayCamera = domain.CameraSpec{
		ID:         "cam-walkaway",
		Projection: domain.ProjectionPerspective,
		Eye:        domain.Vec(0, 1.6, -4),
		Target:     domain.Vec(0, 1.4, 0),
		Up:         domain.Vec(0, 1, 0),
		FovDeg:     50,
	}
)

// ApplyCameraPreset はカメラの eye・target・画角だけをプリセット値に置き換えます。
// ID・投影方式・up は維持し、未知のプリセット名ではカメラをそのまま返します。
func ApplyCameraPreset(cam domain.CameraSpec, preset string) (domain.CameraSpec, bool) {
	switch preset {
	case CameraPresetOverhead:
		cam.Eye = domain.Vec(0, 15, 0.1)
		cam.Target = domain.Vector3{}
		cam.FovDeg = 60
	case CameraPresetEyeLevel:
		cam.Eye = domain.Vec(0, 1.6, 8)
		cam.Target = domain.Vector3{}
		cam.FovDeg = 45
	default:
		return cam, false
	}
	return cam, true
}

// CameraPresets はエディタで選べるカメラプリセット名の一覧です。
func CameraPresets() []string {
	return []string{CameraPresetOverhead, CameraPresetEyeLevel}
}
