// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

// ExportProgressEventType は出力処理の進捗イベント種別を表す。
type ExportProgressEventType string

const (
	// ExportProgressEventTypeJobStarted はジョブ開始イベントを表す。
	ExportProgressEventTypeJobStarted ExportProgressEventType = "job_started"
	// ExportProgressEventTypeTargetStarted は対象処理開始イベントを表す。
	ExportProgressEventTypeTargetStarted ExportProgressEventType = "target_started"
	// ExportProgressEventTypeDuplicated はメッシュ複製完了イベントを表す。
	ExportProgressEventTypeDuplicated ExportProgressEventType = "duplicated"
	// ExportProgressEventTypeModifiersApplied はモディファイア適用完了イベントを表す。
	ExportProgressEventTypeModifiersApplied ExportProgressEventType = "modifiers_applied"
	// ExportProgressEventTypeRenamed は命名規約適用完了イベントを表す。
	ExportProgressEventTypeRenamed ExportProgressEventType = "renamed"
	// ExportProgressEventTypeTriangulated は三角形分割完了イベントを表す。
	ExportProgressEventTypeTriangulated ExportProgressEventType = "triangulated"
	// ExportProgressEventTypeTransformed は座標変換完了イベントを表す。
	ExportProgressEventTypeTransformed ExportProgressEventType = "transformed"
	// ExportProgressEventTypeLODGenerated はLOD1段生成完了イベントを表す。
	ExportProgressEventTypeLODGenerated ExportProgressEventType = "lod_generated"
	// ExportProgressEventTypeSaved はファイル書き出し完了イベントを表す。
	ExportProgressEventTypeSaved ExportProgressEventType = "saved"
	// ExportProgressEventTypeTargetCompleted は対象処理完了イベントを表す。
	ExportProgressEventTypeTargetCompleted ExportProgressEventType = "target_completed"
	// ExportProgressEventTypeTargetFailed は対象処理失敗イベントを表す。
	ExportProgressEventTypeTargetFailed ExportProgressEventType = "target_failed"
	// ExportProgressEventTypeJobCompleted はジョブ完了イベントを表す。
	ExportProgressEventTypeJobCompleted ExportProgressEventType = "job_completed"
)

// ExportProgressEvent は出力処理の進捗イベントを表す。
type ExportProgressEvent struct {
	Type       ExportProgressEventType
	TargetID   string
	OutputName string
	OutputPath string
	PolyCount  int
	// LODLevel はLOD生成イベントの段番号。1始まり。
	LODLevel int
	Err      error
}

// IProgressSink は出力処理の進捗通知と中断確認の契約を表す。
type IProgressSink interface {
	// ReportExportProgress は出力処理進捗を通知する。
	ReportExportProgress(event ExportProgressEvent)
	// IsCancelled は利用者が中断を要求したか返す。
	IsCancelled() bool
}

// reportExportProgress は出力処理の進捗を通知する。
func reportExportProgress(sink IProgressSink, event ExportProgressEvent) {
	if sink == nil {
		return
	}
	sink.ReportExportProgress(event)
}

// isCancelled は中断要求の有無を確認する。
func isCancelled(sink IProgressSink) bool {
	return sink != nil && sink.IsCancelled()
}

// ExportResult はユースケースが返すジョブ実行結果を表す。
type ExportResult struct {
	Report *model.JobReport
}
