package prompts

import "github.com/shouni/go-scene-prompt-kit/pkg/domain"

// GenreStyle はジャンルタグとスタイルタグの対応です。
type GenreStyle struct {
	Genre string `json:"genre" yaml:"genre" mapstructure:"genre"`
	Style string `json:"style" yaml:"style" mapstructure:"style"`
}

// GenreStyles はジャンル→スタイルの対応表です。表の順にスタイルタグを出力します。
type GenreStyles []GenreStyle

// DefaultGenreStyles は標準の対応表です。
var DefaultGenreStyles = GenreStyles{
	{Genre: "urban fantasy", Style: "urban fantasy atmosphere"},
}

// WorldTags は世界観から導いた環境・スタイルタグです。
type WorldTags struct {
	Environment []string
	Style       []string
}

// DeriveWorldTags は標準の対応表で世界観タグを導出します。
func DeriveWorldTags(w *domain.World) WorldTags {
	return DefaultGenreStyles.Derive(w)
}

// Derive は雰囲気タグをそのまま環境タグにし、対応表に一致したジャンルをスタイルタグにします。
// 対応のないジャンルは単に無視されます。
func (gs GenreStyles) Derive(w *domain.World) WorldTags {
	res := WorldTags{Environment: []string{}, Style: []string{}}
	if w == nil {
		return res
	}
	res.Environment = append(res.Environment, w.VisualAtmosphereTags...)
	for _, m := range gs {
		if w.HasGenre(m.Genre) {
			res.Style = append(res.Style, m.Style)
		}
	}
	return res
}

// With は対応を追加した新しい表を返します。
func (gs GenreStyles) With(genre, style string) GenreStyles {
	out := make(GenreStyles, 0, len(gs)+1)
	out = append(out, gs...)
	return append(out, GenreStyle{Genre: genre, Style: style})
}
