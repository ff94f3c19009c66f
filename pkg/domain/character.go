package domain

import (
	"fmt"
	"slices"
)

// キャラクターの役割です。
const (
	RoleProtagonist = "protagonist"
	RoleAntagonist  = "antagonist"
)

// Visual はキャラクターの外見情報です。プロンプトの主題文に展開されます。
type Visual struct {
	Gender        string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	AgeApprox     string   `json:"ageApprox,omitempty" yaml:"ageApprox,omitempty"`
	HairColor     string   `json:"hairColor,omitempty" yaml:"hairColor,omitempty"`
	HairStyle     string   `json:"hairStyle,omitempty" yaml:"hairStyle,omitempty"`
	EyeColor      string   `json:"eyeColor,omitempty" yaml:"eyeColor,omitempty"`
	ClothingTags  []string `json:"clothingTags,omitempty" yaml:"clothingTags,omitempty"`
	AccessoryTags []string `json:"accessoryTags,omitempty" yaml:"accessoryTags,omitempty"`
}

// Character はプロジェクトに登場するキャラクターの定義を保持します。
// 参照データとして扱い、パイプラインからは変更しません。
type Character struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Visual Visual `json:"visual" yaml:"visual"`
}

// String はキャラクターの情報を文字列で返します。
func (c Character) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// HasAccessory は AccessoryTags に tag が完全一致で含まれるかを返します。
func (v Visual) HasAccessory(tag string) bool {
	return slices.Contains(v.AccessoryTags, tag)
}
