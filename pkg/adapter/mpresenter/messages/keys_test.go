// 指示: miu200521358
package messages

import (
	"strings"
	"testing"
)

func TestMessageStringsAreDefinedAndUnique(t *testing.T) {
	values := []string{
		LabelSceneDir,
		LabelOutputDir,
		LabelPreset,
		LabelFormat,
		LabelTargets,
		LabelLOD,
		LabelHierarchy,
		LabelStatus,
		MessageSceneRequired,
		MessageOutputRequired,
		MessageNoTargets,
		MessageExportFailed,
		MessageJobAborted,
		MessagePartialFailure,
		LogExportStarted,
		LogTargetSuccess,
		LogTargetSkipped,
		LogTargetFailed,
		LogJobSummary,
		LogFreshnessEntry,
		LogFreshnessEmpty,
	}

	seen := map[string]struct{}{}
	for _, value := range values {
		if value == "" {
			t.Fatalf("message should not be empty")
		}
		if _, exists := seen[value]; exists {
			t.Fatalf("message should be unique: %s", value)
		}
		seen[value] = struct{}{}
	}
}

func TestProgressLinesCarryPrefix(t *testing.T) {
	for _, value := range []string{LogExportStarted, LogTargetSuccess, LogTargetSkipped, LogTargetFailed, LogJobSummary, LogFreshnessEntry, LogFreshnessEmpty} {
		if !strings.HasPrefix(value, "[mu_mesh_export] ") {
			t.Fatalf("progress line should carry cli prefix: %s", value)
		}
	}
}
