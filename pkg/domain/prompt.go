package domain

// PromptSpec はパイプラインが生成する構造化プロンプトです。
// 毎回丸ごと再生成され、ID・Language・ExtraNegativeTags だけが前回から引き継がれます。
type PromptSpec struct {
	ID                string   `json:"id,omitempty" yaml:"id,omitempty"`
	Language          string   `json:"language,omitempty" yaml:"language,omitempty"`
	MainSubject       string   `json:"mainSubject" yaml:"mainSubject"`
	CompositionTags   []string `json:"compositionTags" yaml:"compositionTags"`
	ActionTags        []string `json:"actionTags" yaml:"actionTags"`
	CameraTags        []string `json:"cameraTags" yaml:"cameraTags"`
	EnvironmentTags   []string `json:"environmentTags" yaml:"environmentTags"`
	StyleTags         []string `json:"styleTags" yaml:"styleTags"`
	ExtraNegativeTags []string `json:"extraNegativeTags" yaml:"extraNegativeTags"`
	RawPrompt         string   `json:"rawPrompt" yaml:"rawPrompt"`
}

// Clone はスライスを共有しないコピーを返します。
func (p PromptSpec) Clone() PromptSpec {
	c := p
	c.CompositionTags = cloneStrings(p.CompositionTags)
	c.ActionTags = cloneStrings(p.ActionTags)
	c.CameraTags = cloneStrings(p.CameraTags)
	c.EnvironmentTags = cloneStrings(p.EnvironmentTags)
	c.StyleTags = cloneStrings(p.StyleTags)
	c.ExtraNegativeTags = cloneStrings(p.ExtraNegativeTags)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
