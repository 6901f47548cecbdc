// 指示: miu200521358
package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func newTestQuadBuffer(name string) *MeshBuffer {
	positions := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	faces := [][]int{{0, 1, 2, 3}}
	return NewMeshBuffer(name, name, positions, faces)
}

func TestNewMeshBufferComputesFaceNormals(t *testing.T) {
	ResetBufferCounters()
	buffer := newTestQuadBuffer("quad")

	if got := buffer.PolyCount(); got != 1 {
		t.Fatalf("poly count mismatch: got=%d", got)
	}
	if got := buffer.VertexCount(); got != 4 {
		t.Fatalf("vertex count mismatch: got=%d", got)
	}
	if len(buffer.FaceNormals) != 1 {
		t.Fatalf("face normal count mismatch: got=%d", len(buffer.FaceNormals))
	}
	normal := buffer.FaceNormals[0]
	if math.Abs(normal.Z-1) > 1e-9 || math.Abs(normal.X) > 1e-9 || math.Abs(normal.Y) > 1e-9 {
		t.Fatalf("face normal should point +Z: got=%v", normal)
	}
	if got := BufferAcquireCount(); got != 1 {
		t.Fatalf("acquire count mismatch: got=%d", got)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	ResetBufferCounters()
	buffer := newTestQuadBuffer("quad")

	buffer.Release()
	buffer.Release()
	buffer.Release()

	if !buffer.IsReleased() {
		t.Fatalf("buffer should be released")
	}
	if got := BufferReleaseCount(); got != 1 {
		t.Fatalf("release count should stay 1: got=%d", got)
	}
	if buffer.Positions != nil || buffer.Faces != nil {
		t.Fatalf("released buffer should drop geometry")
	}
}

func TestCloneProducesIndependentBuffer(t *testing.T) {
	ResetBufferCounters()
	source := newTestQuadBuffer("source")

	copied, err := source.Clone("copied")
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	if copied.Name != "copied" {
		t.Fatalf("clone name mismatch: got=%s", copied.Name)
	}
	copied.Positions[0] = r3.Vec{X: 99}
	copied.Faces[0][0] = 3
	if source.Positions[0].X == 99 || source.Faces[0][0] == 3 {
		t.Fatalf("clone should not share geometry with source")
	}
	if got := BufferAcquireCount(); got != 2 {
		t.Fatalf("acquire count mismatch: got=%d", got)
	}
}

func TestCloneFailsForReleasedBuffer(t *testing.T) {
	buffer := newTestQuadBuffer("quad")
	buffer.Release()
	if _, err := buffer.Clone("copied"); err == nil {
		t.Fatalf("clone of released buffer should fail")
	}
}

func TestFaceNormalDegenerateFaceIsZero(t *testing.T) {
	positions := []r3.Vec{{X: 0}, {X: 1}, {X: 2}}
	normal := FaceNormal(positions, []int{0, 1, 2})
	if normal != (r3.Vec{}) {
		t.Fatalf("collinear face should have zero normal: got=%v", normal)
	}
	if got := FaceNormal(positions, []int{0, 1, 9}); got != (r3.Vec{}) {
		t.Fatalf("out of range face should have zero normal: got=%v", got)
	}
}
