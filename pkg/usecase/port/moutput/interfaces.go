// 指示: miu200521358
// Package moutput はユースケースが依存する外部契約を定義する。
package moutput

import (
	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

// IModifier は出力対象に付随するモディファイアの契約を表す。
type IModifier interface {
	// Name はモディファイア名を返す。
	Name() string
	// IsVisible はビューポート表示中か返す。
	IsVisible() bool
	// IsRenderEnabled はレンダー有効か返す。
	IsRenderEnabled() bool
	// Apply はバッファへモディファイアを適用する。
	Apply(buffer *model.MeshBuffer) error
}

// ISceneProvider はシーン内オブジェクトへの参照契約を表す。
type ISceneProvider interface {
	// Exists はオブジェクトがシーンに存在するか返す。
	Exists(objectID string) bool
	// Kind はオブジェクトの種別を返す。
	Kind(objectID string) (model.ObjectKind, error)
	// DuplicateToMesh はオブジェクトを複製してメッシュバッファを生成する。
	// カーブやメタボールはメッシュ表現へ変換する。呼び出し側がバッファを所有する。
	DuplicateToMesh(objectID string) (*model.MeshBuffer, error)
	// Modifiers はオブジェクトのモディファイア列を定義順で返す。
	Modifiers(objectID string) ([]IModifier, error)
	// SetDisplayColour はオブジェクトの表示色を設定する。
	SetDisplayColour(objectID string, colour model.Colour) error
	// ClearDisplayColour はオブジェクトの表示色を既定へ戻す。
	ClearDisplayColour(objectID string) error
	// ListObjectIDs はシーン内の全オブジェクトIDを返す。
	ListObjectIDs() []string
}

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct {
	// Overwrite は既存ファイルの上書きを許可するか。
	Overwrite bool
}

// IMeshWriter は出力単位のファイル書き出し契約を表す。
type IMeshWriter interface {
	// CanWrite は指定形式を書き出せるか返す。
	CanWrite(format model.ExportFormat) bool
	// Save は出力単位をファイルへ書き出す。
	Save(path string, unit *model.ExportUnit, options SaveOptions) error
}

// IMarkerStore は出力記録の永続化契約を表す。
type IMarkerStore interface {
	// SaveMarker は出力記録を保存する。同一オブジェクトの既存記録は置き換える。
	SaveMarker(marker model.ExportMarker) error
	// LoadMarkers は保存済みの全出力記録を返す。
	LoadMarkers() ([]model.ExportMarker, error)
	// DeleteMarker は指定オブジェクトの出力記録を削除する。
	DeleteMarker(objectID string) error
	// ClearMarkers は全出力記録を削除する。
	ClearMarkers() error
}
