// 指示: miu200521358
// Package model はメッシュ出力パイプラインのドメインモデルを提供する。
package model

import (
	"fmt"
	"sync/atomic"

	"github.com/tiendc/go-deepcopy"
	"gonum.org/v1/gonum/spatial/r3"
)

// ObjectKind は出力対象オブジェクトの種別を表す。
type ObjectKind string

const (
	// OBJECT_KIND_MESH はメッシュオブジェクトを表す。
	OBJECT_KIND_MESH ObjectKind = "mesh"
	// OBJECT_KIND_CURVE はカーブオブジェクトを表す。メッシュ表現へ変換して出力する。
	OBJECT_KIND_CURVE ObjectKind = "curve"
	// OBJECT_KIND_METABALL はメタボールオブジェクトを表す。メッシュ表現へ変換して出力する。
	OBJECT_KIND_METABALL ObjectKind = "metaball"
)

// IsExportable は出力対象にできる種別か判定する。
func (kind ObjectKind) IsExportable() bool {
	switch kind {
	case OBJECT_KIND_MESH, OBJECT_KIND_CURVE, OBJECT_KIND_METABALL:
		return true
	default:
		return false
	}
}

var (
	bufferAcquireTotal atomic.Int64
	bufferReleaseTotal atomic.Int64
)

// BufferAcquireCount は生成済みメッシュバッファの累計数を返す。
func BufferAcquireCount() int64 {
	return bufferAcquireTotal.Load()
}

// BufferReleaseCount は解放済みメッシュバッファの累計数を返す。
func BufferReleaseCount() int64 {
	return bufferReleaseTotal.Load()
}

// ResetBufferCounters はバッファ取得/解放カウンタを初期化する。
func ResetBufferCounters() {
	bufferAcquireTotal.Store(0)
	bufferReleaseTotal.Store(0)
}

// MeshBuffer は排他所有の一時ジオメトリバッファを表す。
// 所有権はパイプラインの各段で明示的に移動し、所有者は利用後に必ず Release を呼ぶ。
type MeshBuffer struct {
	Name     string
	SourceID string
	// Location はシーン内の配置位置。頂点はローカル座標で持ち、
	// 座標変換の段で頂点へ織り込むか破棄する。
	Location    r3.Vec
	Positions   []r3.Vec
	Faces       [][]int
	FaceNormals []r3.Vec
	released    bool
}

// NewMeshBuffer はメッシュバッファを生成し、面法線を計算する。
func NewMeshBuffer(name string, sourceID string, positions []r3.Vec, faces [][]int) *MeshBuffer {
	buffer := &MeshBuffer{
		Name:      name,
		SourceID:  sourceID,
		Positions: positions,
		Faces:     faces,
	}
	buffer.RecomputeFaceNormals()
	bufferAcquireTotal.Add(1)
	return buffer
}

// PolyCount は面数を返す。
func (buffer *MeshBuffer) PolyCount() int {
	if buffer == nil {
		return 0
	}
	return len(buffer.Faces)
}

// VertexCount は頂点数を返す。
func (buffer *MeshBuffer) VertexCount() int {
	if buffer == nil {
		return 0
	}
	return len(buffer.Positions)
}

// IsReleased は解放済みか判定する。
func (buffer *MeshBuffer) IsReleased() bool {
	return buffer == nil || buffer.released
}

// Release はバッファを解放する。多重呼び出しは無視する。
func (buffer *MeshBuffer) Release() {
	if buffer == nil || buffer.released {
		return
	}
	buffer.released = true
	buffer.Positions = nil
	buffer.Faces = nil
	buffer.FaceNormals = nil
	bufferReleaseTotal.Add(1)
}

// Clone は同一ジオメトリを持つ新しい所有バッファを生成する。
func (buffer *MeshBuffer) Clone(name string) (*MeshBuffer, error) {
	if buffer == nil || buffer.released {
		return nil, fmt.Errorf("解放済みメッシュバッファは複製できません")
	}
	copied := &MeshBuffer{}
	if err := deepcopy.Copy(copied, buffer); err != nil {
		return nil, fmt.Errorf("メッシュバッファの複製に失敗しました: %w", err)
	}
	copied.Name = name
	copied.released = false
	bufferAcquireTotal.Add(1)
	return copied, nil
}

// RecomputeFaceNormals は全面の法線をジオメトリから再計算する。
func (buffer *MeshBuffer) RecomputeFaceNormals() {
	if buffer == nil {
		return
	}
	normals := make([]r3.Vec, len(buffer.Faces))
	for index, face := range buffer.Faces {
		normals[index] = FaceNormal(buffer.Positions, face)
	}
	buffer.FaceNormals = normals
}

// FaceNormal は面の単位法線を計算する。退化面はゼロベクトルを返す。
func FaceNormal(positions []r3.Vec, face []int) r3.Vec {
	if len(face) < 3 {
		return r3.Vec{}
	}
	for _, vertexIndex := range face {
		if vertexIndex < 0 || vertexIndex >= len(positions) {
			return r3.Vec{}
		}
	}
	edge1 := r3.Sub(positions[face[1]], positions[face[0]])
	edge2 := r3.Sub(positions[face[2]], positions[face[0]])
	cross := r3.Cross(edge1, edge2)
	if r3.Norm(cross) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(cross)
}

// ExportUnit はライターへ渡す出力単位を表す。単一メッシュまたはLOD階層グループを保持する。
type ExportUnit struct {
	Name      string
	Buffers   []*MeshBuffer
	Hierarchy bool
}

// NewExportUnit は単一メッシュの出力単位を生成する。
func NewExportUnit(buffer *MeshBuffer) *ExportUnit {
	return &ExportUnit{Name: buffer.Name, Buffers: []*MeshBuffer{buffer}}
}

// NewHierarchyUnit は親子グループとしてまとめた出力単位を生成する。
func NewHierarchyUnit(name string, buffers []*MeshBuffer) *ExportUnit {
	return &ExportUnit{Name: name, Buffers: buffers, Hierarchy: true}
}
