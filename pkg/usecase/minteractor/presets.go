// 指示: miu200521358
package minteractor

import (
	"fmt"
	"sort"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

// PresetName は組み込みプリセット名を表す。
type PresetName string

const (
	PRESET_NAME_GODOT  PresetName = "godot"
	PRESET_NAME_UNITY  PresetName = "unity"
	PRESET_NAME_UNREAL PresetName = "unreal"
)

// presetBuilders はゲームエンジンごとの設定生成関数。
var presetBuilders = map[PresetName]func() *model.ExportConfig{
	PRESET_NAME_GODOT:  godotPreset,
	PRESET_NAME_UNITY:  unityPreset,
	PRESET_NAME_UNREAL: unrealPreset,
}

// PresetNames は組み込みプリセット名を昇順で返す。
func PresetNames() []string {
	names := make([]string, 0, len(presetBuilders))
	for name := range presetBuilders {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// PresetConfig は組み込みプリセットの出力設定を返す。
func PresetConfig(name PresetName) (*model.ExportConfig, error) {
	builder, found := presetBuilders[name]
	if !found {
		return nil, model.NewValidationError("", true, fmt.Sprintf("未知のプリセット名です: %s", name))
	}
	return builder(), nil
}

// godotPreset はGodot 4.x向けの設定を返す。Y-up、Z-forward、メートル、snake_case。
func godotPreset() *model.ExportConfig {
	config := DefaultExportPresetBase()
	config.Format = model.EXPORT_FORMAT_GLTF
	config.ForwardAxis = model.AXIS_Z
	config.UpAxis = model.AXIS_Y
	config.Units = model.UNIT_SYSTEM_METER
	config.Naming = model.NAMING_CONVENTION_GODOT
	return config
}

// unityPreset はUnity向けの設定を返す。Y-up、-Z-forward、メートル、Capitalised_Words。
func unityPreset() *model.ExportConfig {
	config := DefaultExportPresetBase()
	config.Format = model.EXPORT_FORMAT_FBX
	config.ForwardAxis = model.AXIS_MINUS_Z
	config.UpAxis = model.AXIS_Y
	config.Units = model.UNIT_SYSTEM_METER
	config.Naming = model.NAMING_CONVENTION_UNITY
	return config
}

// unrealPreset はUnreal Engine向けの設定を返す。Z-up、X-forward、センチメートル、PascalCase。
func unrealPreset() *model.ExportConfig {
	config := DefaultExportPresetBase()
	config.Format = model.EXPORT_FORMAT_FBX
	config.ForwardAxis = model.AXIS_X
	config.UpAxis = model.AXIS_Z
	config.Units = model.UNIT_SYSTEM_CENTIMETER
	config.Naming = model.NAMING_CONVENTION_UNREAL
	return config
}

// DefaultExportPresetBase は全プリセット共通の基礎設定を返す。
func DefaultExportPresetBase() *model.ExportConfig {
	config := model.DefaultExportConfig()
	config.Triangulate = true
	config.TriangulateMethod = model.TRIANGULATE_METHOD_BEAUTY
	config.KeepNormals = true
	config.ZeroLocation = true
	config.GlobalScale = 1.0
	config.ModifierMode = model.MODIFIER_MODE_VISIBLE
	config.LOD = model.LODSpec{
		Enabled:   false,
		Hierarchy: true,
		Levels:    defaultPresetLODLevels(),
	}
	return config
}

// defaultPresetLODLevels はプリセット共通のLOD段定義を返す。
func defaultPresetLODLevels() []model.LODLevel {
	levels := model.DefaultLODLevels()
	sizes := []int{2048, 1024, 512, 256}
	for index := range levels {
		if index < len(sizes) {
			levels[index].TextureMaxSize = sizes[index]
		}
	}
	return levels
}
