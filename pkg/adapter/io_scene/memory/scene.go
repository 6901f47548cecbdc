// 指示: miu200521358
// Package memory はテストと統合検証向けのインメモリシーン実装を提供する。
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
	"gonum.org/v1/gonum/spatial/r3"
)

// SceneObject はインメモリシーンへ登録するオブジェクト定義を表す。
type SceneObject struct {
	ObjectID string
	Kind     model.ObjectKind
	// Location はオブジェクトのシーン内配置位置。頂点はローカル座標で持つ。
	Location  r3.Vec
	Positions []r3.Vec
	Faces     [][]int
	Modifiers []moutput.IModifier
	// DuplicateErr を設定すると複製時にそのエラーを返す。
	DuplicateErr error
}

// SceneProvider はインメモリのシーンプロバイダを表す。
type SceneProvider struct {
	mu      sync.Mutex
	objects map[string]SceneObject
	colours map[string]model.Colour
}

// NewSceneProvider はSceneProviderを生成する。
func NewSceneProvider() *SceneProvider {
	return &SceneProvider{
		objects: map[string]SceneObject{},
		colours: map[string]model.Colour{},
	}
}

// AddObject はシーンへオブジェクトを登録する。同一IDは置き換える。
func (p *SceneProvider) AddObject(object SceneObject) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if object.Kind == "" {
		object.Kind = model.OBJECT_KIND_MESH
	}
	p.objects[object.ObjectID] = object
}

// Exists はオブジェクトが登録済みか返す。
func (p *SceneProvider) Exists(objectID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, found := p.objects[objectID]
	return found
}

// Kind はオブジェクトの種別を返す。
func (p *SceneProvider) Kind(objectID string) (model.ObjectKind, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	object, found := p.objects[objectID]
	if !found {
		return "", fmt.Errorf("オブジェクトが登録されていません: %s", objectID)
	}
	return object.Kind, nil
}

// DuplicateToMesh は登録ジオメトリを複製してメッシュバッファを生成する。
func (p *SceneProvider) DuplicateToMesh(objectID string) (*model.MeshBuffer, error) {
	p.mu.Lock()
	object, found := p.objects[objectID]
	p.mu.Unlock()
	if !found {
		return nil, fmt.Errorf("オブジェクトが登録されていません: %s", objectID)
	}
	if object.DuplicateErr != nil {
		return nil, object.DuplicateErr
	}
	positions := make([]r3.Vec, len(object.Positions))
	copy(positions, object.Positions)
	faces := make([][]int, len(object.Faces))
	for index, face := range object.Faces {
		faces[index] = append([]int(nil), face...)
	}
	buffer := model.NewMeshBuffer(objectID, objectID, positions, faces)
	buffer.Location = object.Location
	return buffer, nil
}

// Modifiers はオブジェクトのモディファイア列を定義順で返す。
func (p *SceneProvider) Modifiers(objectID string) ([]moutput.IModifier, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	object, found := p.objects[objectID]
	if !found {
		return nil, fmt.Errorf("オブジェクトが登録されていません: %s", objectID)
	}
	return object.Modifiers, nil
}

// SetDisplayColour はオブジェクトの表示色を記録する。
func (p *SceneProvider) SetDisplayColour(objectID string, colour model.Colour) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, found := p.objects[objectID]; !found {
		return fmt.Errorf("オブジェクトが登録されていません: %s", objectID)
	}
	p.colours[objectID] = colour
	return nil
}

// ClearDisplayColour はオブジェクトの表示色を既定へ戻す。
func (p *SceneProvider) ClearDisplayColour(objectID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, found := p.objects[objectID]; !found {
		return fmt.Errorf("オブジェクトが登録されていません: %s", objectID)
	}
	delete(p.colours, objectID)
	return nil
}

// DisplayColour は記録済みの表示色を返す。
func (p *SceneProvider) DisplayColour(objectID string) (model.Colour, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	colour, found := p.colours[objectID]
	return colour, found
}

// ListObjectIDs は登録済みオブジェクトIDを昇順で返す。
func (p *SceneProvider) ListObjectIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	objectIDs := make([]string, 0, len(p.objects))
	for objectID := range p.objects {
		objectIDs = append(objectIDs, objectID)
	}
	sort.Strings(objectIDs)
	return objectIDs
}

// FuncModifier は関数でジオメトリを加工するモディファイアを表す。
type FuncModifier struct {
	ModifierName  string
	Visible       bool
	RenderEnabled bool
	ApplyFunc     func(buffer *model.MeshBuffer) error
}

// Name はモディファイア名を返す。
func (m *FuncModifier) Name() string { return m.ModifierName }

// IsVisible はビューポート表示中か返す。
func (m *FuncModifier) IsVisible() bool { return m.Visible }

// IsRenderEnabled はレンダー有効か返す。
func (m *FuncModifier) IsRenderEnabled() bool { return m.RenderEnabled }

// Apply はバッファへ加工関数を適用する。
func (m *FuncModifier) Apply(buffer *model.MeshBuffer) error {
	if m.ApplyFunc == nil {
		return nil
	}
	return m.ApplyFunc(buffer)
}
