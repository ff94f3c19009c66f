package prompts

import (
	"log/slog"
	"strings"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// 主人公と敵の配置から導くタグです。
const (
	TagHeroLeftEnemyRight = "hero on the left, enemy on the right"
	TagHeroRightEnemyLeft = "hero on the right, enemy on the left"
	TagConfrontation      = "face-to-face confrontation"
)

// 主題文の既定値です。
const (
	genericSubject  = "a character"
	katanaAccessory = "katana"
	katanaClause    = "holding a katana"
)

// actionPhrases は PoseHint.Action から動作フレーズへの対応表です。
var actionPhrases = map[string]string{
	"draw_sword":      "drawing a sword",
	"ready_to_attack": "ready to attack",
	"rush_forward":    "rushing forward",
}

// SubjectTags は主題・動作の導出結果です。
type SubjectTags struct {
	// Composition は画面空間解析より前に並べる補助的な構図タグです。
	Composition []string
	Actions     []string
	MainSubject string
}

// BuildSubject はオブジェクトとキャラクター定義から主題文と動作タグを組み立てます。
func BuildSubject(objects []domain.SceneObject, chars domain.Characters) SubjectTags {
	res := SubjectTags{Composition: []string{}, Actions: []string{}}

	heroIdx := chars.FirstObjectWithRole(objects, domain.RoleProtagonist)
	enemyIdx := chars.FirstObjectWithRole(objects, domain.RoleAntagonist)

	if heroIdx >= 0 && enemyIdx >= 0 {
		if objects[heroIdx].Position.X < objects[enemyIdx].Position.X {
			res.Composition = append(res.Composition, TagHeroLeftEnemyRight)
		} else {
			res.Composition = append(res.Composition, TagHeroRightEnemyLeft)
		}
		res.Composition = append(res.Composition, TagConfrontation)
	}

	for _, obj := range objects {
		action := obj.Action()
		if action == "" {
			continue
		}
		phrase, ok := actionPhrases[action]
		if !ok {
			slog.Debug("未知のアクションは無視します", "object", obj.ID, "action", action)
			continue
		}
		res.Actions = append(res.Actions, phrase)
	}

	if heroIdx >= 0 {
		if ch := chars.Resolve(objects[heroIdx]); ch != nil {
			res.MainSubject = BuildMainSubject(*ch)
		}
	}

	return res
}

// BuildMainSubject はキャラクターの外見を固定順の句に展開し、カンマで連結します。
// 順序は 年齢+性別 → 髪 → 服装 → 持ち物 です。
func BuildMainSubject(ch domain.Character) string {
	v := ch.Visual
	var pieces []string

	switch {
	case v.AgeApprox != "" && v.Gender != "":
		pieces = append(pieces, "a "+v.AgeApprox+" "+v.Gender)
	case v.Gender != "":
		pieces = append(pieces, "a "+v.Gender)
	case v.AgeApprox == "":
		pieces = append(pieces, genericSubject)
	}

	switch {
	case v.HairColor != "" && v.HairStyle != "":
		pieces = append(pieces, "with "+v.HairColor+" "+v.HairStyle+" hair")
	case v.HairColor != "":
		pieces = append(pieces, "with "+v.HairColor+" hair")
	}

	if len(v.ClothingTags) > 0 {
		pieces = append(pieces, "wearing "+strings.Join(v.ClothingTags, ", "))
	}

	if v.HasAccessory(katanaAccessory) {
		pieces = append(pieces, katanaClause)
	}

	return strings.Join(pieces, ", ")
}
