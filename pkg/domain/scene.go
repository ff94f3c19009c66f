package domain

import "errors"

// ErrSceneNotFound は指定 ID のシーンがプロジェクトに存在しないことを示します。
var ErrSceneNotFound = errors.New("scene not found")

// Scene はジオメトリ、物語グラフ、フォーカスノード、プロンプトを1つずつ所有します。
type Scene struct {
	ID             string              `json:"id" yaml:"id"`
	Name           string              `json:"name" yaml:"name"`
	FocusNodeID    string              `json:"focusNodeId" yaml:"focusNodeId"`
	NarrativeGraph NarrativeGraph      `json:"narrativeGraph" yaml:"narrativeGraph"`
	Geometry       GeometryComposition `json:"geometry" yaml:"geometry"`
	Prompt         PromptSpec          `json:"prompt" yaml:"prompt"`
}

// FocusNode は FocusNodeID が指すノードを返します。存在しなければ nil です。
func (s Scene) FocusNode() *NarrativeNode {
	return s.NarrativeGraph.FindNode(s.FocusNodeID)
}

// Clone はジオメトリやプロンプトを共有しないスナップショットを返します。
func (s Scene) Clone() Scene {
	c := s
	c.Geometry = s.Geometry.Clone()
	c.Prompt = s.Prompt.Clone()
	c.NarrativeGraph = NarrativeGraph{
		Nodes: append([]NarrativeNode(nil), s.NarrativeGraph.Nodes...),
		Edges: append([]NarrativeEdge(nil), s.NarrativeGraph.Edges...),
	}
	return c
}

// Project はキャラクター、世界観、シーンをまとめた静的データです。
type Project struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Version    string     `json:"version,omitempty" yaml:"version,omitempty"`
	Characters Characters `json:"characters" yaml:"characters"`
	World      *World     `json:"world,omitempty" yaml:"world,omitempty"`
	Scenes     []Scene    `json:"scenes" yaml:"scenes"`
}

// SceneIndex は ID が一致するシーンのインデックスを返します。該当がなければ -1 です。
func (p *Project) SceneIndex(id string) int {
	for i := range p.Scenes {
		if p.Scenes[i].ID == id {
			return i
		}
	}
	return -1
}

// FindScene は ID が一致するシーンのスナップショットを返します。
func (p *Project) FindScene(id string) (Scene, error) {
	idx := p.SceneIndex(id)
	if idx < 0 {
		return Scene{}, ErrSceneNotFound
	}
	return p.Scenes[idx].Clone(), nil
}

// SceneIDs はシーン ID を定義順に返します。
func (p *Project) SceneIDs() []string {
	ids := make([]string, 0, len(p.Scenes))
	for _, s := range p.Scenes {
		ids = append(ids, s.ID)
	}
	return ids
}
