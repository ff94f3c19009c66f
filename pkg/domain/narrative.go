package domain

// 既知の構図プリセット名です。
const (
	PresetNone          = "none"
	PresetFaceOff       = "face_off"
	PresetRushTowards   = "rush_towards"
	PresetOverheadCrowd = "overhead_crowd"
	PresetHeroWalkaway  = "hero_walkaway"
)

// NarrativeNode は物語グラフ上の出来事です。CompositionPreset で構図を要求できます。
type NarrativeNode struct {
	ID                string `json:"id" yaml:"id"`
	Type              string `json:"type" yaml:"type"`
	Label             string `json:"label" yaml:"label"`
	CompositionPreset string `json:"compositionPreset,omitempty" yaml:"compositionPreset,omitempty"`
}

// Preset は CompositionPreset を返します。未指定なら "none" です。
func (n NarrativeNode) Preset() string {
	if n.CompositionPreset == "" {
		return PresetNone
	}
	return n.CompositionPreset
}

// NarrativeEdge はノード間の関係（時間、因果など）です。
type NarrativeEdge struct {
	ID       string `json:"id" yaml:"id"`
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Relation string `json:"relation" yaml:"relation"`
}

// NarrativeGraph はシーンの物語構造です。
type NarrativeGraph struct {
	Nodes []NarrativeNode `json:"nodes" yaml:"nodes"`
	Edges []NarrativeEdge `json:"edges" yaml:"edges"`
}

// FindNode は ID が一致するノードを返します。見つからなければ nil です。
func (g NarrativeGraph) FindNode(id string) *NarrativeNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			res := g.Nodes[i]
			return &res
		}
	}
	return nil
}
