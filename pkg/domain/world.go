package domain

import "slices"

// World はプロジェクト内の全シーンで共有される世界観の定義です。
type World struct {
	ID                   string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name                 string   `json:"name,omitempty" yaml:"name,omitempty"`
	GenreTags            []string `json:"genreTags" yaml:"genreTags"`
	VisualAtmosphereTags []string `json:"visualAtmosphereTags" yaml:"visualAtmosphereTags"`
}

// HasGenre は GenreTags に tag が含まれるかを返します。
func (w World) HasGenre(tag string) bool {
	return slices.Contains(w.GenreTags, tag)
}
