// 指示: miu200521358
package model

import (
	"errors"
	"testing"
)

func newValidTestConfig() *ExportConfig {
	config := DefaultExportConfig()
	config.OutputDir = "/tmp/export"
	return config
}

func TestValidateAcceptsDefaultConfig(t *testing.T) {
	if err := newValidTestConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(config *ExportConfig)
	}{
		{"missing output dir", func(config *ExportConfig) { config.OutputDir = "" }},
		{"unknown format", func(config *ExportConfig) { config.Format = "stl" }},
		{"unknown modifier mode", func(config *ExportConfig) { config.ModifierMode = "sometimes" }},
		{"unknown triangulate method", func(config *ExportConfig) {
			config.Triangulate = true
			config.TriangulateMethod = "random"
		}},
		{"zero scale", func(config *ExportConfig) { config.GlobalScale = 0 }},
		{"negative scale", func(config *ExportConfig) { config.GlobalScale = -2 }},
		{"unknown units", func(config *ExportConfig) { config.Units = "inch" }},
		{"unknown naming", func(config *ExportConfig) { config.Naming = "kebab" }},
		{"unknown axis", func(config *ExportConfig) { config.ForwardAxis = "W" }},
		{"parallel axes", func(config *ExportConfig) {
			config.ForwardAxis = AXIS_Y
			config.UpAxis = AXIS_MINUS_Y
		}},
		{"lod without levels", func(config *ExportConfig) {
			config.LOD = LODSpec{Enabled: true}
		}},
		{"too many lod levels", func(config *ExportConfig) {
			levels := make([]LODLevel, LOD_MAX_LEVELS+1)
			for index := range levels {
				levels[index].Ratio = 0.5
			}
			config.LOD = LODSpec{Enabled: true, Levels: levels}
		}},
		{"negative texture size", func(config *ExportConfig) {
			config.LOD = LODSpec{Enabled: true, Levels: []LODLevel{{Ratio: 0.5, TextureMaxSize: -1}}}
		}},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			config := newValidTestConfig()
			testCase.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatalf("validation should fail")
			}
			var exportError *ExportError
			if !errors.As(err, &exportError) || exportError.Kind != ERROR_KIND_VALIDATION {
				t.Fatalf("validation error kind mismatch: %v", err)
			}
			if !exportError.JobFatal {
				t.Fatalf("validation error should be job fatal")
			}
		})
	}
}

func TestSnapshotIsolatesLODLevels(t *testing.T) {
	config := newValidTestConfig()
	config.LOD = LODSpec{Enabled: true, Levels: DefaultLODLevels()}

	snapshot, err := config.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	config.LOD.Levels[0].Ratio = 0.9
	config.OutputDir = "/tmp/other"

	if snapshot.LOD.Levels[0].Ratio != 0.75 {
		t.Fatalf("snapshot should keep original ratio: got=%v", snapshot.LOD.Levels[0].Ratio)
	}
	if snapshot.OutputDir != "/tmp/export" {
		t.Fatalf("snapshot should keep original output dir: got=%s", snapshot.OutputDir)
	}
}

func TestUnitSystemScaleFactor(t *testing.T) {
	if got := UNIT_SYSTEM_METER.ScaleFactor(); got != 1.0 {
		t.Fatalf("meter scale mismatch: got=%v", got)
	}
	if got := UNIT_SYSTEM_CENTIMETER.ScaleFactor(); got != 100.0 {
		t.Fatalf("centimeter scale mismatch: got=%v", got)
	}
}
