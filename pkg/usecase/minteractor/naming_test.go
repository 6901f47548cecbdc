// 指示: miu200521358
package minteractor

import (
	"strings"
	"testing"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

func TestTransformNameGodot(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"MyMeshObject", "my_mesh_object"},
		{"my mesh object", "my_mesh_object"},
		{"SM_Rock01", "sm_rock_01"},
		{"HTTPServerMesh", "http_server_mesh"},
		{"Cube.001", "cube_001"},
	}
	for _, testCase := range cases {
		if got := TransformName(testCase.input, model.NAMING_CONVENTION_GODOT); got != testCase.want {
			t.Fatalf("godot mismatch: input=%s got=%s want=%s", testCase.input, got, testCase.want)
		}
	}
}

func TestTransformNameUnity(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"my mesh object", "My_Mesh_Object"},
		{"MyMeshObject", "My_Mesh_Object"},
		{"rock_small_01", "Rock_Small_01"},
	}
	for _, testCase := range cases {
		if got := TransformName(testCase.input, model.NAMING_CONVENTION_UNITY); got != testCase.want {
			t.Fatalf("unity mismatch: input=%s got=%s want=%s", testCase.input, got, testCase.want)
		}
	}
}

func TestTransformNameUnreal(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"my_mesh_name", "MyMeshName"},
		{"SM_my_cool_mesh", "SM_MyCoolMesh"},
		{"T_wood planks", "T_WoodPlanks"},
		{"M_rock", "M_Rock"},
		{"smith mesh", "SmithMesh"},
	}
	for _, testCase := range cases {
		if got := TransformName(testCase.input, model.NAMING_CONVENTION_UNREAL); got != testCase.want {
			t.Fatalf("unreal mismatch: input=%s got=%s want=%s", testCase.input, got, testCase.want)
		}
	}
}

func TestTransformNameDefaultSanitises(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"my mesh/object", "my_mesh_object"},
		{"Cube.001", "Cube.001"},
		{"Cube.end", "Cube_end"},
		{"rock-small_01", "rock-small_01"},
	}
	for _, testCase := range cases {
		if got := TransformName(testCase.input, model.NAMING_CONVENTION_DEFAULT); got != testCase.want {
			t.Fatalf("default mismatch: input=%s got=%s want=%s", testCase.input, got, testCase.want)
		}
	}
}

func TestTransformNameEmptyFallsBack(t *testing.T) {
	if got := TransformName("!!!", model.NAMING_CONVENTION_GODOT); got != "mesh" {
		t.Fatalf("godot fallback mismatch: got=%s", got)
	}
	if got := TransformName("", model.NAMING_CONVENTION_UNREAL); got != "Mesh" {
		t.Fatalf("unreal fallback mismatch: got=%s", got)
	}
}

func TestTransformNameTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("LongSegment", 30)
	for _, convention := range []model.NamingConvention{
		model.NAMING_CONVENTION_DEFAULT,
		model.NAMING_CONVENTION_GODOT,
		model.NAMING_CONVENTION_UNITY,
		model.NAMING_CONVENTION_UNREAL,
	} {
		got := TransformName(long, convention)
		if len([]rune(got)) > namingMaxLength {
			t.Fatalf("truncated name too long: convention=%s len=%d", convention, len([]rune(got)))
		}
		if again := TransformName(got, convention); again != got {
			t.Fatalf("truncated name should be stable: convention=%s first=%s second=%s", convention, got, again)
		}
	}
}

func TestApplyNamingAddsPrefixAndSuffix(t *testing.T) {
	config := model.DefaultExportConfig()
	config.Naming = model.NAMING_CONVENTION_GODOT
	config.Prefix = "prop_"
	config.Suffix = "_low"
	if got := ApplyNaming(config, "OldChair"); got != "prop_old_chair_low" {
		t.Fatalf("naming mismatch: got=%s", got)
	}
}
