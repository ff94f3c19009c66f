package prompts

import (
	"math"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// 画面空間の構図タグです。
const (
	TagHeroLeft            = "rule of thirds, hero on left"
	TagHeroRight           = "rule of thirds, hero on right"
	TagCentered            = "centered composition"
	TagDiagonalComposition = "diagonal composition"
	TagBalancedTwoSubject  = "balanced two-subject composition"
	TagDiagonalGuides      = "strong diagonal guide lines"
	TagHorizonLine         = "clear horizon line"
)

const (
	screenScale  = 0.1
	slopeEpsilon = 1e-6
	slopeMin     = 0.5
	slopeMax     = 2.0
)

// ScreenPoint は 0〜1 に正規化された画面座標です。
type ScreenPoint struct {
	X float64
	Y float64
}

// ProjectToScreen はワールド座標を正規化画面座標に写します。
// カメラの向きや y 成分を無視した簡易近似で、透視除算は行いません。
func ProjectToScreen(pos domain.Vector3) ScreenPoint {
	return ScreenPoint{
		X: 0.5 + pos.X*screenScale,
		Y: 0.5 - pos.Z*screenScale,
	}
}

// AnalyzeComposition は主人公・敵の画面上の配置とガイド線から構図タグを導出します。
// タグはオブジェクト・ガイドの走査順に出力され、重複は除去しません。
func AnalyzeComposition(geom domain.GeometryComposition, chars domain.Characters) []string {
	tags := []string{}

	var characters []domain.SceneObject
	for _, o := range geom.Objects {
		if o.Type == domain.ObjectTypeCharacter {
			characters = append(characters, o)
		}
	}

	heroIdx := chars.FirstObjectWithRole(characters, domain.RoleProtagonist)
	enemyIdx := chars.FirstObjectWithRole(characters, domain.RoleAntagonist)

	if heroIdx >= 0 {
		tags = append(tags, thirdsTag(ProjectToScreen(characters[heroIdx].Position)))
	}

	if heroIdx >= 0 && enemyIdx >= 0 {
		h := ProjectToScreen(characters[heroIdx].Position)
		e := ProjectToScreen(characters[enemyIdx].Position)
		if isDiagonal(h, e) {
			tags = append(tags, TagDiagonalComposition)
		} else {
			tags = append(tags, TagBalancedTwoSubject)
		}
	}

	for _, g := range geom.Guides {
		switch g.Type {
		case domain.GuideTypeDiagonal:
			tags = append(tags, TagDiagonalGuides)
		case domain.GuideTypeHorizon:
			tags = append(tags, TagHorizonLine)
		}
	}

	return tags
}

func thirdsTag(p ScreenPoint) string {
	switch {
	case p.X < 1.0/3.0:
		return TagHeroLeft
	case p.X > 2.0/3.0:
		return TagHeroRight
	default:
		return TagCentered
	}
}

// isDiagonal は2点を結ぶ線の傾きが (0.5, 2) に収まるかを判定します。
// Δx が 0 の場合は 1e-6 に置き換えてゼロ除算を避けます。
func isDiagonal(a, b ScreenPoint) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 {
		dx = slopeEpsilon
	}
	slope := math.Abs(dy / dx)
	return slope > slopeMin && slope < slopeMax
}
