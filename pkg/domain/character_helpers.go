package domain

// Characters はプロジェクトのキャラクター一覧です。順序は意味を持ちます。
type Characters []Character

// FindCharacter は ID が一致するキャラクターを返します。見つからなければ nil です。
func (cs Characters) FindCharacter(id string) *Character {
	if id == "" {
		return nil
	}
	for i := range cs {
		if cs[i].ID == id {
			res := cs[i]
			return &res
		}
	}
	return nil
}

// FirstByRole は一覧の先頭から走査して、最初に role が一致したキャラクターを返します。
// 同じ役割が複数いても常に同じ結果になるよう、リスト順を唯一のタイブレークにしています。
func (cs Characters) FirstByRole(role string) *Character {
	for i := range cs {
		if cs[i].Role == role {
			res := cs[i]
			return &res
		}
	}
	return nil
}

// Resolve は SceneObject の参照先キャラクターを返します。
func (cs Characters) Resolve(obj SceneObject) *Character {
	return cs.FindCharacter(obj.Ref())
}

// FirstObjectWithRole は、参照先キャラクターの役割が role である最初のオブジェクトの
// インデックスを返します。該当がなければ -1 です。
func (cs Characters) FirstObjectWithRole(objects []SceneObject, role string) int {
	for i, obj := range objects {
		if ch := cs.Resolve(obj); ch != nil && ch.Role == role {
			return i
		}
	}
	return -1
}
