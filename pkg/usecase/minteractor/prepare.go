// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
	"gonum.org/v1/gonum/spatial/r3"
)

// modifierReclaimStride はモディファイア適用中にメモリ回収を確認する間隔。
const modifierReclaimStride = 3

// PrepareTarget は1対象を複製してメッシュバッファを準備する。
// 複製、モディファイア適用、命名規約、三角形分割、座標変換の順に処理し、
// 成功時はバッファの所有権を呼び出し側へ渡す。失敗時は複製済みバッファを
// 解放してから段名付きのエラーを返す。
func (uc *MeshExportUsecase) PrepareTarget(target model.ExportTarget, config *model.ExportConfig, sink IProgressSink) (*model.MeshBuffer, error) {
	if uc.scene == nil {
		return nil, model.NewValidationError(target.ObjectID, true, "シーンプロバイダが設定されていません")
	}
	if !uc.scene.Exists(target.ObjectID) {
		return nil, model.NewProcessingError(target.ObjectID, "duplicate",
			fmt.Sprintf("オブジェクトがシーンに存在しません: %s", target.ObjectID))
	}
	kind, err := uc.scene.Kind(target.ObjectID)
	if err != nil {
		return nil, model.NewProcessingError(target.ObjectID, "duplicate", err.Error())
	}
	if !kind.IsExportable() {
		return nil, model.NewProcessingError(target.ObjectID, "duplicate",
			fmt.Sprintf("出力対象にできない種別です: object=%s, kind=%s", target.ObjectID, kind))
	}

	buffer, err := uc.scene.DuplicateToMesh(target.ObjectID)
	if err != nil {
		return nil, model.NewProcessingError(target.ObjectID, "duplicate", err.Error())
	}
	if buffer == nil || buffer.PolyCount() == 0 {
		buffer.Release()
		return nil, model.NewProcessingError(target.ObjectID, "duplicate",
			fmt.Sprintf("複製結果のメッシュが空です: %s", target.ObjectID))
	}
	reportExportProgress(sink, ExportProgressEvent{
		Type:      ExportProgressEventTypeDuplicated,
		TargetID:  target.ObjectID,
		PolyCount: buffer.PolyCount(),
	})

	if err := uc.applyModifiers(target.ObjectID, buffer, config.ModifierMode); err != nil {
		buffer.Release()
		return nil, err
	}
	reportExportProgress(sink, ExportProgressEvent{
		Type:      ExportProgressEventTypeModifiersApplied,
		TargetID:  target.ObjectID,
		PolyCount: buffer.PolyCount(),
	})

	buffer.Name = ApplyNaming(config, target.ResolveBaseName())
	reportExportProgress(sink, ExportProgressEvent{
		Type:       ExportProgressEventTypeRenamed,
		TargetID:   target.ObjectID,
		OutputName: buffer.Name,
	})

	if config.Triangulate {
		if err := triangulateBuffer(buffer, config.TriangulateMethod, config.KeepNormals); err != nil {
			buffer.Release()
			return nil, err
		}
		reportExportProgress(sink, ExportProgressEvent{
			Type:      ExportProgressEventTypeTriangulated,
			TargetID:  target.ObjectID,
			PolyCount: buffer.PolyCount(),
		})
	}

	if err := transformBuffer(buffer, config); err != nil {
		buffer.Release()
		return nil, err
	}
	reportExportProgress(sink, ExportProgressEvent{
		Type:      ExportProgressEventTypeTransformed,
		TargetID:  target.ObjectID,
		PolyCount: buffer.PolyCount(),
	})
	return buffer, nil
}

// applyModifiers は適用方針に合致するモディファイアを定義順で適用する。
func (uc *MeshExportUsecase) applyModifiers(objectID string, buffer *model.MeshBuffer, mode model.ModifierMode) error {
	if mode == model.MODIFIER_MODE_NONE {
		return nil
	}
	modifiers, err := uc.scene.Modifiers(objectID)
	if err != nil {
		return model.NewProcessingError(objectID, "modifiers", err.Error())
	}
	applied := 0
	for _, modifier := range modifiers {
		if !shouldApplyModifier(modifier, mode) {
			continue
		}
		if err := modifier.Apply(buffer); err != nil {
			return model.NewProcessingError(objectID, "modifiers",
				fmt.Sprintf("モディファイア適用に失敗しました: name=%s: %v", modifier.Name(), err))
		}
		applied++
		if applied%modifierReclaimStride == 0 && uc.memory != nil {
			uc.memory.RequestReclaim(buffer.PolyCount(), false)
		}
	}
	return nil
}

// shouldApplyModifier は適用方針に合致するモディファイアか判定する。
func shouldApplyModifier(modifier moutput.IModifier, mode model.ModifierMode) bool {
	switch mode {
	case model.MODIFIER_MODE_VISIBLE:
		return modifier.IsVisible()
	case model.MODIFIER_MODE_RENDER:
		return modifier.IsRenderEnabled()
	case model.MODIFIER_MODE_ALL:
		return true
	default:
		return false
	}
}

// transformBuffer は配置位置の織り込み、スケール、単位系、座標軸の変換を
// まとめて適用する。ZeroLocation が真の場合は配置位置を捨てて原点基準で
// 出力し、偽の場合はシーン内の配置位置を頂点へ織り込む。
func transformBuffer(buffer *model.MeshBuffer, config *model.ExportConfig) error {
	offset := buffer.Location
	if config.ZeroLocation {
		offset = r3.Vec{}
	}

	scale := config.GlobalScale * config.Units.ScaleFactor()
	basis, err := axisBasis(config.ForwardAxis, config.UpAxis)
	if err != nil {
		return model.NewProcessingError(buffer.SourceID, "transform", err.Error())
	}
	for index, position := range buffer.Positions {
		buffer.Positions[index] = r3.Scale(scale, applyBasis(basis, r3.Add(position, offset)))
	}
	buffer.Location = r3.Vec{}
	buffer.RecomputeFaceNormals()
	return nil
}

// axisBasis は前方軸と上方軸から出力座標系の基底を組み立てる。
// 右方向は前方と上方の外積で決める。
func axisBasis(forwardAxis, upAxis model.Axis) ([3]r3.Vec, error) {
	forward, err := forwardAxis.Vector()
	if err != nil {
		return [3]r3.Vec{}, err
	}
	up, err := upAxis.Vector()
	if err != nil {
		return [3]r3.Vec{}, err
	}
	right := r3.Cross(forward, up)
	if r3.Norm(right) == 0 {
		return [3]r3.Vec{}, fmt.Errorf("前方軸と上方軸が平行です: forward=%s, up=%s", forwardAxis, upAxis)
	}
	return [3]r3.Vec{right, up, forward}, nil
}

// applyBasis は位置ベクトルを基底成分へ射影する。
func applyBasis(basis [3]r3.Vec, position r3.Vec) r3.Vec {
	return r3.Vec{
		X: r3.Dot(position, basis[0]),
		Y: r3.Dot(position, basis[1]),
		Z: r3.Dot(position, basis[2]),
	}
}
