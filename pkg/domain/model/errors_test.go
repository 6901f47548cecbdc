// 指示: miu200521358
package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindOfUnwrapsNestedErrors(t *testing.T) {
	base := NewFormatError("cube", "書き出しに失敗しました")
	wrapped := fmt.Errorf("対象処理に失敗しました: %w", base)

	if got := ErrorKindOf(wrapped); got != ERROR_KIND_FORMAT {
		t.Fatalf("kind mismatch: got=%s", got)
	}
	if IsJobFatal(wrapped) {
		t.Fatalf("format error should not be job fatal")
	}
}

func TestErrorKindOfDefaultsToProcessing(t *testing.T) {
	if got := ErrorKindOf(errors.New("plain")); got != ERROR_KIND_PROCESSING {
		t.Fatalf("plain error should map to processing: got=%s", got)
	}
}

func TestCancelledErrorIsJobFatal(t *testing.T) {
	err := NewCancelledError("中断")
	if !IsJobFatal(err) {
		t.Fatalf("cancelled error should be job fatal")
	}
	if got := ErrorKindOf(err); got != ERROR_KIND_CANCELLED {
		t.Fatalf("kind mismatch: got=%s", got)
	}
}

func TestValidationErrorFatalityFollowsArgument(t *testing.T) {
	if !IsJobFatal(NewValidationError("", true, "設定が不正です")) {
		t.Fatalf("job level validation error should abort the job")
	}
	if IsJobFatal(NewValidationError("cube", false, "対象の検証に失敗しました")) {
		t.Fatalf("per target validation error should not abort the job")
	}
}

func TestWithCauseKeepsKindAndUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := NewResourceError("cube", true, "保存できません").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("cause should unwrap")
	}
	if got := ErrorKindOf(err); got != ERROR_KIND_RESOURCE {
		t.Fatalf("kind mismatch: got=%s", got)
	}
}
