// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	if len(names) != 3 {
		t.Fatalf("preset count mismatch: %v", names)
	}
	for _, want := range []string{"godot", "unity", "unreal"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("preset missing: %s in %v", want, names)
		}
	}
	for index := 1; index < len(names); index++ {
		if names[index-1] >= names[index] {
			t.Fatalf("preset names should be sorted: %v", names)
		}
	}
}

func TestPresetConfigUnknownName(t *testing.T) {
	if _, err := PresetConfig("blender"); err == nil {
		t.Fatalf("unknown preset should fail")
	}
}

func TestPresetConfigsAreValid(t *testing.T) {
	for _, name := range PresetNames() {
		config, err := PresetConfig(PresetName(name))
		if err != nil {
			t.Fatalf("preset %s failed: %v", name, err)
		}
		config.OutputDir = "out"
		if err := config.Validate(); err != nil {
			t.Fatalf("preset %s should validate: %v", name, err)
		}
		if !config.Triangulate || config.TriangulateMethod != model.TRIANGULATE_METHOD_BEAUTY {
			t.Fatalf("preset %s should triangulate with beauty: %+v", name, config)
		}
		if !config.KeepNormals || !config.ZeroLocation {
			t.Fatalf("preset %s base flags mismatch: %+v", name, config)
		}
		if config.LOD.Enabled {
			t.Fatalf("preset %s should leave lod disabled: %+v", name, config)
		}
		if len(config.LOD.Levels) != 4 {
			t.Fatalf("preset %s lod levels mismatch: %+v", name, config.LOD.Levels)
		}
	}
}

func TestPresetConfigEngineSpecifics(t *testing.T) {
	godot, _ := PresetConfig(PRESET_NAME_GODOT)
	if godot.Format != model.EXPORT_FORMAT_GLTF || godot.Naming != model.NAMING_CONVENTION_GODOT {
		t.Fatalf("godot preset mismatch: %+v", godot)
	}
	if godot.ForwardAxis != model.AXIS_Z || godot.UpAxis != model.AXIS_Y {
		t.Fatalf("godot axes mismatch: %+v", godot)
	}

	unity, _ := PresetConfig(PRESET_NAME_UNITY)
	if unity.Format != model.EXPORT_FORMAT_FBX || unity.Naming != model.NAMING_CONVENTION_UNITY {
		t.Fatalf("unity preset mismatch: %+v", unity)
	}
	if unity.ForwardAxis != model.AXIS_MINUS_Z || unity.UpAxis != model.AXIS_Y {
		t.Fatalf("unity axes mismatch: %+v", unity)
	}

	unreal, _ := PresetConfig(PRESET_NAME_UNREAL)
	if unreal.Format != model.EXPORT_FORMAT_FBX || unreal.Naming != model.NAMING_CONVENTION_UNREAL {
		t.Fatalf("unreal preset mismatch: %+v", unreal)
	}
	if unreal.ForwardAxis != model.AXIS_X || unreal.UpAxis != model.AXIS_Z {
		t.Fatalf("unreal axes mismatch: %+v", unreal)
	}
	if unreal.Units != model.UNIT_SYSTEM_CENTIMETER {
		t.Fatalf("unreal should export in centimeters: %+v", unreal)
	}

	sizes := []int{2048, 1024, 512, 256}
	for index, level := range unreal.LOD.Levels {
		if level.TextureMaxSize != sizes[index] {
			t.Fatalf("lod texture sizes mismatch: %+v", unreal.LOD.Levels)
		}
	}
}
