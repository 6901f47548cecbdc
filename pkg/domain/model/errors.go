// 指示: miu200521358
package model

import (
	"errors"
	"fmt"
)

// ErrorKind は出力エラーの分類を表す。
type ErrorKind string

const (
	// ERROR_KIND_VALIDATION は設定や入力の検証エラーを表す。
	ERROR_KIND_VALIDATION ErrorKind = "validation"
	// ERROR_KIND_RESOURCE はファイルシステムなど外部資源のエラーを表す。
	ERROR_KIND_RESOURCE ErrorKind = "resource"
	// ERROR_KIND_PROCESSING はジオメトリ処理のエラーを表す。
	ERROR_KIND_PROCESSING ErrorKind = "processing"
	// ERROR_KIND_FORMAT は出力形式の書き出しエラーを表す。
	ERROR_KIND_FORMAT ErrorKind = "format"
	// ERROR_KIND_CANCELLED は利用者による中断を表す。
	ERROR_KIND_CANCELLED ErrorKind = "cancelled"
)

// ExportError は分類付きの出力エラーを表す。
type ExportError struct {
	// Kind はエラー分類。
	Kind ErrorKind
	// Stage はエラーが発生したパイプライン段名。空の場合もある。
	Stage string
	// TargetID はエラーが発生した出力対象。ジョブ全体のエラーでは空。
	TargetID string
	// JobFatal は残り対象の処理を打ち切るべきか。
	JobFatal bool
	Message  string
	cause    error
}

// Error は分類とメッセージを結合した文字列を返す。
func (exportError *ExportError) Error() string {
	text := fmt.Sprintf("[%s] %s", exportError.Kind, exportError.Message)
	if exportError.cause != nil {
		text = fmt.Sprintf("%s: %v", text, exportError.cause)
	}
	return text
}

// Unwrap は原因エラーを返す。
func (exportError *ExportError) Unwrap() error {
	return exportError.cause
}

// WithCause は原因エラーを付与した複製を返す。
func (exportError *ExportError) WithCause(cause error) *ExportError {
	copied := *exportError
	copied.cause = cause
	return &copied
}

// NewValidationError は検証エラーを生成する。jobFatal が真の場合は
// 残り対象の処理を打ち切る。
func NewValidationError(targetID string, jobFatal bool, message string) *ExportError {
	return &ExportError{Kind: ERROR_KIND_VALIDATION, TargetID: targetID, JobFatal: jobFatal, Message: message}
}

// NewResourceError は外部資源エラーを生成する。
func NewResourceError(targetID string, jobFatal bool, message string) *ExportError {
	return &ExportError{Kind: ERROR_KIND_RESOURCE, TargetID: targetID, JobFatal: jobFatal, Message: message}
}

// NewProcessingError はジオメトリ処理エラーを生成する。対象単位で隔離する。
func NewProcessingError(targetID string, stage string, message string) *ExportError {
	return &ExportError{Kind: ERROR_KIND_PROCESSING, TargetID: targetID, Stage: stage, Message: message}
}

// NewFormatError は書き出しエラーを生成する。対象単位で隔離する。
func NewFormatError(targetID string, message string) *ExportError {
	return &ExportError{Kind: ERROR_KIND_FORMAT, TargetID: targetID, Message: message}
}

// NewCancelledError は中断エラーを生成する。残り対象の処理を打ち切る。
func NewCancelledError(message string) *ExportError {
	return &ExportError{Kind: ERROR_KIND_CANCELLED, JobFatal: true, Message: message}
}

// ErrorKindOf はエラーの分類を返す。ExportError 以外は処理エラー扱いとする。
func ErrorKindOf(err error) ErrorKind {
	var exportError *ExportError
	if errors.As(err, &exportError) {
		return exportError.Kind
	}
	return ERROR_KIND_PROCESSING
}

// IsJobFatal はジョブ全体を打ち切るべきエラーか判定する。
func IsJobFatal(err error) bool {
	var exportError *ExportError
	if errors.As(err, &exportError) {
		return exportError.JobFatal
	}
	return false
}
