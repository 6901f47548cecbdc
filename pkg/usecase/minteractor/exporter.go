// 指示: miu200521358
// Package minteractor はメッシュ一括出力のユースケースを提供する。
package minteractor

import (
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
)

// MeshExportUsecaseDeps はユースケースの依存を表す。
type MeshExportUsecaseDeps struct {
	Scene       moutput.ISceneProvider
	Writer      moutput.IMeshWriter
	MarkerStore moutput.IMarkerStore
	// Memory は逼迫制御。nil の場合は既定設定で生成する。
	Memory *MemoryPressureController
	// Freshness は鮮度キャッシュ。nil の場合は MarkerStore から生成する。
	Freshness *FreshnessCache
}

// MeshExportUsecase はメッシュ一括出力処理をまとめたユースケースを表す。
type MeshExportUsecase struct {
	scene       moutput.ISceneProvider
	writer      moutput.IMeshWriter
	markerStore moutput.IMarkerStore
	memory      *MemoryPressureController
	freshness   *FreshnessCache
}

// NewMeshExportUsecase はメッシュ出力ユースケースを生成する。
func NewMeshExportUsecase(deps MeshExportUsecaseDeps) *MeshExportUsecase {
	memory := deps.Memory
	if memory == nil {
		memory = NewMemoryPressureController(MemoryPressureConfig{})
	}
	freshness := deps.Freshness
	if freshness == nil {
		freshness = NewFreshnessCache(deps.MarkerStore)
	}
	return &MeshExportUsecase{
		scene:       deps.Scene,
		writer:      deps.Writer,
		markerStore: deps.MarkerStore,
		memory:      memory,
		freshness:   freshness,
	}
}

// Freshness は鮮度キャッシュを返す。
func (uc *MeshExportUsecase) Freshness() *FreshnessCache {
	return uc.freshness
}

// Memory は逼迫制御を返す。
func (uc *MeshExportUsecase) Memory() *MemoryPressureController {
	return uc.memory
}
