package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// fingerprintInput はプロンプトの導出結果を左右する入力だけをまとめたものです。
type fingerprintInput struct {
	Geometry   domain.GeometryComposition `json:"geometry"`
	Characters domain.Characters          `json:"characters"`
	World      *domain.World              `json:"world"`
}

// Fingerprint はジオメトリとプロジェクトのキャラクター・世界観から決定論的なハッシュを生成します。
// 同じ入力からは常に同じ値になり、導出結果のキャッシュキーとして使えます。
// NaN や Inf を含むジオメトリは JSON 化できないためエラーを返します。
func Fingerprint(geom domain.GeometryComposition, project *domain.Project) (string, error) {
	in := fingerprintInput{Geometry: geom}
	if project != nil {
		in.Characters = project.Characters
		in.World = project.World
	}
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("fingerprint の生成に失敗しました: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
