// 指示: miu200521358
package model

import (
	"fmt"
	"math"

	"github.com/tiendc/go-deepcopy"
	"gonum.org/v1/gonum/spatial/r3"
)

// ExportFormat は出力ファイル形式を表す。
type ExportFormat string

const (
	EXPORT_FORMAT_OBJ  ExportFormat = "obj"
	EXPORT_FORMAT_FBX  ExportFormat = "fbx"
	EXPORT_FORMAT_GLTF ExportFormat = "gltf"
)

// ModifierMode はモディファイア適用方針を表す。
type ModifierMode string

const (
	// MODIFIER_MODE_NONE はモディファイアを適用しない。
	MODIFIER_MODE_NONE ModifierMode = "none"
	// MODIFIER_MODE_VISIBLE はビューポート表示中のモディファイアのみ適用する。
	MODIFIER_MODE_VISIBLE ModifierMode = "visible"
	// MODIFIER_MODE_RENDER はレンダー有効なモディファイアのみ適用する。
	MODIFIER_MODE_RENDER ModifierMode = "render"
	// MODIFIER_MODE_ALL は全モディファイアを適用する。
	MODIFIER_MODE_ALL ModifierMode = "all"
)

// TriangulateMethod は多角形面の三角形分割方式を表す。
type TriangulateMethod string

const (
	// TRIANGULATE_METHOD_BEAUTY は最小角を最大化する対角線を選ぶ。
	TRIANGULATE_METHOD_BEAUTY TriangulateMethod = "beauty"
	// TRIANGULATE_METHOD_FIXED は先頭頂点から固定順で分割する。
	TRIANGULATE_METHOD_FIXED TriangulateMethod = "fixed"
	// TRIANGULATE_METHOD_FIXED_ALTERNATE は第2頂点から固定順で分割する。
	TRIANGULATE_METHOD_FIXED_ALTERNATE TriangulateMethod = "fixed_alternate"
	// TRIANGULATE_METHOD_SHORTEST_DIAGONAL は短い方の対角線で分割する。
	TRIANGULATE_METHOD_SHORTEST_DIAGONAL TriangulateMethod = "shortest_diagonal"
)

// NamingConvention は出力名の命名規約を表す。
type NamingConvention string

const (
	// NAMING_CONVENTION_DEFAULT は不正文字の置換のみ行う。
	NAMING_CONVENTION_DEFAULT NamingConvention = "default"
	// NAMING_CONVENTION_GODOT は lower_snake_case へ変換する。
	NAMING_CONVENTION_GODOT NamingConvention = "godot"
	// NAMING_CONVENTION_UNITY は区切りごとに先頭大文字の Snake_Case へ変換する。
	NAMING_CONVENTION_UNITY NamingConvention = "unity"
	// NAMING_CONVENTION_UNREAL は既知接頭辞を保持した PascalCase へ変換する。
	NAMING_CONVENTION_UNREAL NamingConvention = "unreal"
)

// UnitSystem は出力単位系を表す。
type UnitSystem string

const (
	// UNIT_SYSTEM_METER はメートル単位で出力する。
	UNIT_SYSTEM_METER UnitSystem = "meter"
	// UNIT_SYSTEM_CENTIMETER はセンチメートル単位で出力する。座標を100倍する。
	UNIT_SYSTEM_CENTIMETER UnitSystem = "centimeter"
)

// ScaleFactor は単位系に対応する座標倍率を返す。
func (unit UnitSystem) ScaleFactor() float64 {
	if unit == UNIT_SYSTEM_CENTIMETER {
		return 100.0
	}
	return 1.0
}

// Axis は座標軸の向きを表す。
type Axis string

const (
	AXIS_X       Axis = "X"
	AXIS_Y       Axis = "Y"
	AXIS_Z       Axis = "Z"
	AXIS_MINUS_X Axis = "-X"
	AXIS_MINUS_Y Axis = "-Y"
	AXIS_MINUS_Z Axis = "-Z"
)

// Vector は軸に対応する単位ベクトルを返す。
func (axis Axis) Vector() (r3.Vec, error) {
	switch axis {
	case AXIS_X:
		return r3.Vec{X: 1}, nil
	case AXIS_Y:
		return r3.Vec{Y: 1}, nil
	case AXIS_Z:
		return r3.Vec{Z: 1}, nil
	case AXIS_MINUS_X:
		return r3.Vec{X: -1}, nil
	case AXIS_MINUS_Y:
		return r3.Vec{Y: -1}, nil
	case AXIS_MINUS_Z:
		return r3.Vec{Z: -1}, nil
	default:
		return r3.Vec{}, fmt.Errorf("未知の軸指定です: %s", axis)
	}
}

// LODLevel は1段分のLOD生成指定を表す。
type LODLevel struct {
	// Ratio は前段に対する面数比率。(0,1] に収める。
	Ratio float64
	// PreserveSymmetry は対称面を跨ぐ辺縮約を抑止するか。
	PreserveSymmetry bool
	// TextureMaxSize はこの段のテクスチャ最大辺長。0 は制限なし。
	TextureMaxSize int
}

// LOD_MAX_LEVELS はLODチェーンの最大段数。
const LOD_MAX_LEVELS = 4

// LODSpec はLODチェーンの生成指定を表す。
type LODSpec struct {
	Enabled bool
	// Hierarchy は全LODを親子グループとして単一ファイルへ出力するか。
	Hierarchy bool
	Levels    []LODLevel
}

// ExportConfig は一回の一括出力の設定を表す。
type ExportConfig struct {
	OutputDir         string
	Format            ExportFormat
	ModifierMode      ModifierMode
	Triangulate       bool
	TriangulateMethod TriangulateMethod
	KeepNormals       bool
	ZeroLocation      bool
	GlobalScale       float64
	Units             UnitSystem
	ForwardAxis       Axis
	UpAxis            Axis
	Naming            NamingConvention
	Prefix            string
	Suffix            string
	LOD               LODSpec
}

// DefaultExportConfig は既定値の出力設定を返す。
func DefaultExportConfig() *ExportConfig {
	return &ExportConfig{
		Format:            EXPORT_FORMAT_OBJ,
		ModifierMode:      MODIFIER_MODE_VISIBLE,
		Triangulate:       false,
		TriangulateMethod: TRIANGULATE_METHOD_BEAUTY,
		KeepNormals:       true,
		ZeroLocation:      true,
		GlobalScale:       1.0,
		Units:             UNIT_SYSTEM_METER,
		ForwardAxis:       AXIS_MINUS_Z,
		UpAxis:            AXIS_Y,
		Naming:            NAMING_CONVENTION_DEFAULT,
	}
}

// DefaultLODLevels は既定のLOD比率列を返す。
func DefaultLODLevels() []LODLevel {
	return []LODLevel{
		{Ratio: 0.75},
		{Ratio: 0.5},
		{Ratio: 0.25},
		{Ratio: 0.1},
	}
}

// Validate は設定値を検証する。
func (config *ExportConfig) Validate() error {
	if config == nil {
		return NewValidationError("", true, "出力設定が未指定です")
	}
	if config.OutputDir == "" {
		return NewValidationError("", true, "出力先ディレクトリが未指定です")
	}
	switch config.Format {
	case EXPORT_FORMAT_OBJ, EXPORT_FORMAT_FBX, EXPORT_FORMAT_GLTF:
	default:
		return NewValidationError("", true, fmt.Sprintf("未知の出力形式です: %s", config.Format))
	}
	switch config.ModifierMode {
	case MODIFIER_MODE_NONE, MODIFIER_MODE_VISIBLE, MODIFIER_MODE_RENDER, MODIFIER_MODE_ALL:
	default:
		return NewValidationError("", true, fmt.Sprintf("未知のモディファイア適用方針です: %s", config.ModifierMode))
	}
	if config.Triangulate {
		switch config.TriangulateMethod {
		case TRIANGULATE_METHOD_BEAUTY, TRIANGULATE_METHOD_FIXED,
			TRIANGULATE_METHOD_FIXED_ALTERNATE, TRIANGULATE_METHOD_SHORTEST_DIAGONAL:
		default:
			return NewValidationError("", true, fmt.Sprintf("未知の三角形分割方式です: %s", config.TriangulateMethod))
		}
	}
	if config.GlobalScale <= 0 || math.IsNaN(config.GlobalScale) || math.IsInf(config.GlobalScale, 0) {
		return NewValidationError("", true, fmt.Sprintf("全体スケールは正の有限値を指定してください: %v", config.GlobalScale))
	}
	switch config.Units {
	case UNIT_SYSTEM_METER, UNIT_SYSTEM_CENTIMETER:
	default:
		return NewValidationError("", true, fmt.Sprintf("未知の単位系です: %s", config.Units))
	}
	switch config.Naming {
	case NAMING_CONVENTION_DEFAULT, NAMING_CONVENTION_GODOT,
		NAMING_CONVENTION_UNITY, NAMING_CONVENTION_UNREAL:
	default:
		return NewValidationError("", true, fmt.Sprintf("未知の命名規約です: %s", config.Naming))
	}
	forward, err := config.ForwardAxis.Vector()
	if err != nil {
		return NewValidationError("", true, err.Error())
	}
	up, err := config.UpAxis.Vector()
	if err != nil {
		return NewValidationError("", true, err.Error())
	}
	if r3.Norm(r3.Cross(forward, up)) == 0 {
		return NewValidationError("", true,
			fmt.Sprintf("前方軸と上方軸が平行です: forward=%s, up=%s", config.ForwardAxis, config.UpAxis))
	}
	if config.LOD.Enabled {
		if len(config.LOD.Levels) == 0 {
			return NewValidationError("", true, "LOD有効時は1段以上の比率を指定してください")
		}
		if len(config.LOD.Levels) > LOD_MAX_LEVELS {
			return NewValidationError("", true,
				fmt.Sprintf("LOD段数は%d以下を指定してください: got=%d", LOD_MAX_LEVELS, len(config.LOD.Levels)))
		}
		for index, level := range config.LOD.Levels {
			if math.IsNaN(level.Ratio) || math.IsInf(level.Ratio, 0) {
				return NewValidationError("", true,
					fmt.Sprintf("LOD比率は有限値を指定してください: level=%d, ratio=%v", index, level.Ratio))
			}
			if level.TextureMaxSize < 0 {
				return NewValidationError("", true,
					fmt.Sprintf("テクスチャ最大辺長は0以上を指定してください: level=%d, size=%d", index, level.TextureMaxSize))
			}
		}
	}
	return nil
}

// Snapshot は設定の深い複製を返す。ジョブ実行中の設定変更から隔離する。
func (config *ExportConfig) Snapshot() (*ExportConfig, error) {
	copied := &ExportConfig{}
	if err := deepcopy.Copy(copied, config); err != nil {
		return nil, fmt.Errorf("出力設定の複製に失敗しました: %w", err)
	}
	return copied, nil
}
