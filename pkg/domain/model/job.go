// 指示: miu200521358
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportTarget は一括出力の一対象を表す。
type ExportTarget struct {
	// ObjectID はシーン内オブジェクトの識別子。
	ObjectID string
	// BaseName は変換前の出力名。空の場合はオブジェクトIDを使う。
	BaseName string
}

// ResolveBaseName は出力名の元になる名前を返す。
func (target ExportTarget) ResolveBaseName() string {
	if target.BaseName != "" {
		return target.BaseName
	}
	return target.ObjectID
}

// ExportJob は検証済み設定スナップショットと対象列を持つ一括出力ジョブを表す。
type ExportJob struct {
	JobID   string
	Config  *ExportConfig
	Targets []ExportTarget
}

// NewExportJob は設定を検証してスナップショットし、出力ジョブを生成する。
func NewExportJob(config *ExportConfig, targets []ExportTarget) (*ExportJob, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, NewValidationError("", true, "出力対象が1件もありません")
	}
	snapshot, err := config.Snapshot()
	if err != nil {
		return nil, NewValidationError("", true, err.Error())
	}
	return &ExportJob{
		JobID:   uuid.NewString(),
		Config:  snapshot,
		Targets: targets,
	}, nil
}

// ResultStatus は対象ごとの処理結果区分を表す。
type ResultStatus string

const (
	RESULT_STATUS_SUCCEEDED ResultStatus = "succeeded"
	RESULT_STATUS_FAILED    ResultStatus = "failed"
	RESULT_STATUS_SKIPPED   ResultStatus = "skipped"
)

// ProcessingResult は一対象の処理結果を表す。
type ProcessingResult struct {
	Target     ExportTarget
	Status     ResultStatus
	OutputPath string
	// OutputName は命名規約適用後の出力名。
	OutputName string
	PolyCount  int
	// LODPolyCounts はLOD各段の面数。LOD無効時は空。
	LODPolyCounts []int
	Duration      time.Duration
	Err           error
}

// JobReport は一括出力ジョブ全体の結果を表す。
type JobReport struct {
	JobID     string
	StartedAt time.Time
	Duration  time.Duration
	Results   []ProcessingResult
	// Cancelled は利用者の中断で打ち切られたか。
	Cancelled bool
	// FatalErr は全対象の処理を打ち切ったエラー。
	FatalErr error
}

// SucceededCount は成功した対象数を返す。
func (report *JobReport) SucceededCount() int {
	return report.countByStatus(RESULT_STATUS_SUCCEEDED)
}

// FailedCount は失敗した対象数を返す。
func (report *JobReport) FailedCount() int {
	return report.countByStatus(RESULT_STATUS_FAILED)
}

// SkippedCount はスキップした対象数を返す。
func (report *JobReport) SkippedCount() int {
	return report.countByStatus(RESULT_STATUS_SKIPPED)
}

func (report *JobReport) countByStatus(status ResultStatus) int {
	if report == nil {
		return 0
	}
	count := 0
	for _, result := range report.Results {
		if result.Status == status {
			count++
		}
	}
	return count
}

// Summary はジョブ結果の集計文字列を返す。
func (report *JobReport) Summary() string {
	return fmt.Sprintf(
		"一括出力サマリ: total=%d succeeded=%d failed=%d skipped=%d elapsed=%s",
		len(report.Results),
		report.SucceededCount(),
		report.FailedCount(),
		report.SkippedCount(),
		report.Duration.Round(time.Millisecond),
	)
}
