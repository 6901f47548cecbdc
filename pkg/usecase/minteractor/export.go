// 指示: miu200521358
package minteractor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/shared/base/logging"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
)

const exportOutputDirMode = 0o755

const (
	logExportJobStart     = "一括出力開始: job=%s, targets=%d, format=%s"
	logExportTargetDone   = "対象出力完了: object=%s, name=%s, polys=%d, elapsed=%s"
	logExportTargetFailed = "対象出力失敗: object=%s, kind=%s, reason=%v"
	logExportTargetSkip   = "対象スキップ: object=%s, reason=%v"
	logExportCancelled    = "一括出力中断: job=%s, processed=%d"
)

// ExportRequest は一括出力要求を表す。
type ExportRequest struct {
	Config  *model.ExportConfig
	Targets []model.ExportTarget
	// Sink は進捗通知と中断確認。nil を許容する。
	Sink IProgressSink
}

// Run は一括出力ジョブを実行する。対象ごとの失敗は隔離して残りを処理し、
// 設定不備や出力先の確保失敗、中断はジョブ全体を打ち切る。
func (uc *MeshExportUsecase) Run(request ExportRequest) (*ExportResult, error) {
	job, err := model.NewExportJob(request.Config, request.Targets)
	if err != nil {
		return nil, err
	}
	if uc.writer == nil {
		return nil, model.NewValidationError("", true, "メッシュライターが設定されていません")
	}
	if !uc.writer.CanWrite(job.Config.Format) {
		return nil, model.NewValidationError("", true,
			fmt.Sprintf("この出力形式は書き出せません: %s", job.Config.Format))
	}
	if err := os.MkdirAll(job.Config.OutputDir, exportOutputDirMode); err != nil {
		return nil, model.NewResourceError("", true,
			fmt.Sprintf("出力先ディレクトリを作成できません: %s: %v", job.Config.OutputDir, err))
	}

	logExportInfo(logExportJobStart, job.JobID, len(job.Targets), job.Config.Format)
	reportExportProgress(request.Sink, ExportProgressEvent{Type: ExportProgressEventTypeJobStarted})

	report := &model.JobReport{JobID: job.JobID, StartedAt: nowFunc()}
	startedAt := time.Now()
	for index, target := range job.Targets {
		if isCancelled(request.Sink) {
			report.Cancelled = true
			report.FatalErr = model.NewCancelledError("利用者の操作で中断されました")
			logExportInfo(logExportCancelled, job.JobID, index)
			uc.markRemainingSkipped(report, job.Targets[index:])
			break
		}
		result := uc.exportTarget(target, job.Config, request.Sink)
		report.Results = append(report.Results, result)
		if result.Err != nil && model.IsJobFatal(result.Err) {
			report.FatalErr = result.Err
			if model.ErrorKindOf(result.Err) == model.ERROR_KIND_CANCELLED {
				report.Cancelled = true
			}
			uc.markRemainingSkipped(report, job.Targets[index+1:])
			break
		}
	}
	report.Duration = time.Since(startedAt)

	if uc.memory != nil {
		uc.memory.RequestReclaim(0, true)
	}
	logExportInfo("%s", report.Summary())
	reportExportProgress(request.Sink, ExportProgressEvent{Type: ExportProgressEventTypeJobCompleted})
	return &ExportResult{Report: report}, nil
}

// exportTarget は1対象の準備、LOD生成、書き出し、出力記録までを実行する。
func (uc *MeshExportUsecase) exportTarget(target model.ExportTarget, config *model.ExportConfig, sink IProgressSink) model.ProcessingResult {
	startedAt := time.Now()
	result := model.ProcessingResult{Target: target, Status: model.RESULT_STATUS_FAILED}
	reportExportProgress(sink, ExportProgressEvent{
		Type:     ExportProgressEventTypeTargetStarted,
		TargetID: target.ObjectID,
	})

	// 出力対象にできない種別は失敗ではなくスキップとして記録する。
	if uc.scene != nil && uc.scene.Exists(target.ObjectID) {
		if kind, err := uc.scene.Kind(target.ObjectID); err == nil && !kind.IsExportable() {
			result.Status = model.RESULT_STATUS_SKIPPED
			result.Err = model.NewProcessingError(target.ObjectID, "kind",
				fmt.Sprintf("出力対象にできない種別です: kind=%s", kind))
			logExportInfo(logExportTargetSkip, target.ObjectID, result.Err)
			return result
		}
	}

	buffer, err := uc.PrepareTarget(target, config, sink)
	if err != nil {
		return uc.failTarget(result, sink, err)
	}
	result.OutputName = buffer.Name
	result.PolyCount = buffer.PolyCount()

	if config.LOD.Enabled {
		err = uc.exportWithLOD(buffer, config, sink, &result)
	} else {
		err = uc.writeUnit(model.NewExportUnit(buffer), config, sink, &result)
		buffer.Release()
	}
	if err != nil {
		return uc.failTarget(result, sink, err)
	}

	if uc.freshness != nil {
		if err := uc.freshness.Record(target.ObjectID, result.OutputPath); err != nil {
			return uc.failTarget(result, sink, model.NewResourceError(target.ObjectID, false, err.Error()))
		}
	}
	if uc.memory != nil {
		uc.memory.RequestReclaim(result.PolyCount, false)
	}

	result.Status = model.RESULT_STATUS_SUCCEEDED
	result.Duration = time.Since(startedAt)
	logExportInfo(logExportTargetDone, target.ObjectID, result.OutputName, result.PolyCount, result.Duration.Round(time.Millisecond))
	reportExportProgress(sink, ExportProgressEvent{
		Type:       ExportProgressEventTypeTargetCompleted,
		TargetID:   target.ObjectID,
		OutputName: result.OutputName,
		OutputPath: result.OutputPath,
		PolyCount:  result.PolyCount,
	})
	return result
}

// exportWithLOD はLODチェーンを生成して書き出す。
// 階層モードは全段を1ファイルへまとめ、平置きモードは段ごとに
// 書き出してから前段バッファを解放する。
func (uc *MeshExportUsecase) exportWithLOD(base *model.MeshBuffer, config *model.ExportConfig, sink IProgressSink, result *model.ProcessingResult) error {
	if config.LOD.Hierarchy {
		return uc.exportLODHierarchy(base, config, sink, result)
	}
	return uc.exportLODFlat(base, config, sink, result)
}

// exportLODFlat は段ごとに別ファイルへ書き出す。次段の生成を終えた
// 時点で前段バッファを解放し、保持するバッファを常に1段分へ抑える。
func (uc *MeshExportUsecase) exportLODFlat(base *model.MeshBuffer, config *model.ExportConfig, sink IProgressSink, result *model.ProcessingResult) error {
	baseName := base.Name
	current := base
	current.Name = lodLevelName(baseName, 0)
	result.OutputName = current.Name

	for index := 0; ; index++ {
		if isCancelled(sink) {
			current.Release()
			return model.NewCancelledError("利用者の操作で中断されました")
		}
		if err := uc.writeUnit(model.NewExportUnit(current), config, sink, result); err != nil {
			current.Release()
			return err
		}
		result.LODPolyCounts = append(result.LODPolyCounts, current.PolyCount())
		if index >= len(config.LOD.Levels) {
			current.Release()
			return nil
		}

		next, err := uc.decimateLevel(current, config.LOD.Levels[index], lodLevelName(baseName, index+1))
		if err != nil {
			current.Release()
			return err
		}
		current.Release()
		uc.reclaimAfterLevel(next.PolyCount())
		reportExportProgress(sink, ExportProgressEvent{
			Type:      ExportProgressEventTypeLODGenerated,
			TargetID:  result.Target.ObjectID,
			LODLevel:  index + 1,
			PolyCount: next.PolyCount(),
		})
		current = next
	}
}

// exportLODHierarchy は全段を親子グループとして1ファイルへ書き出す。
// 書き出し完了まで全段のバッファを保持する。
func (uc *MeshExportUsecase) exportLODHierarchy(base *model.MeshBuffer, config *model.ExportConfig, sink IProgressSink, result *model.ProcessingResult) error {
	baseName := base.Name
	levels, err := uc.GenerateLODChain(base, config.LOD, sink)
	if err != nil {
		base.Release()
		return err
	}
	base.Name = lodLevelName(baseName, 0)
	buffers := append([]*model.MeshBuffer{base}, levels...)
	releaseAll := func() {
		for _, buffer := range buffers {
			buffer.Release()
		}
	}
	if isCancelled(sink) {
		releaseAll()
		return model.NewCancelledError("利用者の操作で中断されました")
	}

	unit := model.NewHierarchyUnit(baseName, buffers)
	if err := uc.writeUnit(unit, config, sink, result); err != nil {
		releaseAll()
		return err
	}
	result.OutputName = baseName
	for _, buffer := range buffers {
		result.LODPolyCounts = append(result.LODPolyCounts, buffer.PolyCount())
	}
	releaseAll()
	return nil
}

// writeUnit は出力単位をファイルへ書き出し、結果へ出力パスを記録する。
func (uc *MeshExportUsecase) writeUnit(unit *model.ExportUnit, config *model.ExportConfig, sink IProgressSink, result *model.ProcessingResult) error {
	path := buildOutputPath(config, unit.Name)
	options := moutput.SaveOptions{Overwrite: true}
	if err := uc.writer.Save(path, unit, options); err != nil {
		// 出力先ディレクトリ自体が失われている場合は対象単位の失敗では
		// なく、残り対象も書き出せないためジョブ全体を打ち切る。
		if _, statErr := os.Stat(config.OutputDir); statErr != nil {
			return model.NewResourceError(result.Target.ObjectID, true,
				fmt.Sprintf("出力先ディレクトリへアクセスできません: dir=%s: %v", config.OutputDir, statErr))
		}
		return model.NewFormatError(result.Target.ObjectID,
			fmt.Sprintf("書き出しに失敗しました: path=%s: %v", path, err))
	}
	if result.OutputPath == "" {
		result.OutputPath = path
	}
	reportExportProgress(sink, ExportProgressEvent{
		Type:       ExportProgressEventTypeSaved,
		TargetID:   result.Target.ObjectID,
		OutputName: unit.Name,
		OutputPath: path,
	})
	return nil
}

// buildOutputPath は出力単位のファイルパスを組み立てる。
func buildOutputPath(config *model.ExportConfig, name string) string {
	return filepath.Join(config.OutputDir, fmt.Sprintf("%s.%s", name, config.Format))
}

// failTarget は対象の失敗を記録し、進捗とログへ通知する。
func (uc *MeshExportUsecase) failTarget(result model.ProcessingResult, sink IProgressSink, err error) model.ProcessingResult {
	result.Status = model.RESULT_STATUS_FAILED
	result.Err = err
	logExportInfo(logExportTargetFailed, result.Target.ObjectID, model.ErrorKindOf(err), err)
	reportExportProgress(sink, ExportProgressEvent{
		Type:     ExportProgressEventTypeTargetFailed,
		TargetID: result.Target.ObjectID,
		Err:      err,
	})
	return result
}

// markRemainingSkipped は未処理の対象をスキップとして記録する。
func (uc *MeshExportUsecase) markRemainingSkipped(report *model.JobReport, targets []model.ExportTarget) {
	for _, target := range targets {
		report.Results = append(report.Results, model.ProcessingResult{
			Target: target,
			Status: model.RESULT_STATUS_SKIPPED,
		})
	}
}

// logExportInfo は既定ロガーが設定されている場合に情報ログを出力する。
func logExportInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
