// 指示: miu200521358
package objfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
	"gonum.org/v1/gonum/spatial/r3"
)

func newWriteTestBuffer(name string) *model.MeshBuffer {
	positions := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	faces := [][]int{{0, 1, 2}, {0, 2, 3}}
	return model.NewMeshBuffer(name, name, positions, faces)
}

func TestObjRepositoryCanWriteOnlyObj(t *testing.T) {
	repository := NewObjRepository()
	if !repository.CanWrite(model.EXPORT_FORMAT_OBJ) {
		t.Fatalf("obj should be writable")
	}
	if repository.CanWrite(model.EXPORT_FORMAT_FBX) || repository.CanWrite(model.EXPORT_FORMAT_GLTF) {
		t.Fatalf("only obj should be writable")
	}
}

func TestObjRoundTripThroughProvider(t *testing.T) {
	dir := t.TempDir()
	repository := NewObjRepository()
	buffer := newWriteTestBuffer("roundtrip")

	path := filepath.Join(dir, "roundtrip.obj")
	if err := repository.Save(path, model.NewExportUnit(buffer), moutput.SaveOptions{Overwrite: true}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	provider := NewObjSceneProvider(dir)
	if !provider.Exists("roundtrip") {
		t.Fatalf("saved object should exist")
	}
	loaded, err := provider.DuplicateToMesh("roundtrip")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.VertexCount() != buffer.VertexCount() {
		t.Fatalf("vertex count mismatch: got=%d want=%d", loaded.VertexCount(), buffer.VertexCount())
	}
	if loaded.PolyCount() != buffer.PolyCount() {
		t.Fatalf("poly count mismatch: got=%d want=%d", loaded.PolyCount(), buffer.PolyCount())
	}
	for index, face := range loaded.Faces {
		for corner, vertexIndex := range face {
			if vertexIndex != buffer.Faces[index][corner] {
				t.Fatalf("face mismatch: got=%v want=%v", loaded.Faces, buffer.Faces)
			}
		}
	}
	loaded.Release()
	buffer.Release()
}

func TestObjSaveHierarchyWritesAllObjects(t *testing.T) {
	dir := t.TempDir()
	repository := NewObjRepository()
	base := newWriteTestBuffer("terrain_LOD00")
	level := newWriteTestBuffer("terrain_LOD01")

	path := filepath.Join(dir, "terrain.obj")
	unit := model.NewHierarchyUnit("terrain", []*model.MeshBuffer{base, level})
	if err := repository.Save(path, unit, moutput.SaveOptions{Overwrite: true}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "o terrain_LOD00\n") || !strings.Contains(content, "o terrain_LOD01\n") {
		t.Fatalf("hierarchy objects missing: %s", content)
	}
	// 2オブジェクト目の面は頂点番号がオフセットされる。
	if !strings.Contains(content, "f 5//3 6//3 7//3\n") {
		t.Fatalf("second object faces should be offset: %s", content)
	}
	base.Release()
	level.Release()
}

func TestObjSaveWithoutOverwriteFailsOnExisting(t *testing.T) {
	dir := t.TempDir()
	repository := NewObjRepository()
	buffer := newWriteTestBuffer("dup")
	path := filepath.Join(dir, "dup.obj")

	if err := repository.Save(path, model.NewExportUnit(buffer), moutput.SaveOptions{Overwrite: true}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := repository.Save(path, model.NewExportUnit(buffer), moutput.SaveOptions{}); err == nil {
		t.Fatalf("second save without overwrite should fail")
	}
	buffer.Release()
}

func TestObjSaveRejectsReleasedBuffer(t *testing.T) {
	repository := NewObjRepository()
	buffer := newWriteTestBuffer("gone")
	unit := model.NewExportUnit(buffer)
	buffer.Release()
	if err := repository.Save(filepath.Join(t.TempDir(), "gone.obj"), unit, moutput.SaveOptions{Overwrite: true}); err == nil {
		t.Fatalf("released buffer should fail")
	}
}

func TestObjProviderListObjectIDs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"beta.obj", "alpha.obj", "note.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("o x\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	provider := NewObjSceneProvider(dir)
	objectIDs := provider.ListObjectIDs()
	if len(objectIDs) != 2 || objectIDs[0] != "alpha" || objectIDs[1] != "beta" {
		t.Fatalf("object ids mismatch: %v", objectIDs)
	}
}

func TestObjProviderRejectsBrokenFace(t *testing.T) {
	dir := t.TempDir()
	content := "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 9\n"
	if err := os.WriteFile(filepath.Join(dir, "broken.obj"), []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	provider := NewObjSceneProvider(dir)
	if _, err := provider.DuplicateToMesh("broken"); err == nil {
		t.Fatalf("out of range face should fail")
	}
}
