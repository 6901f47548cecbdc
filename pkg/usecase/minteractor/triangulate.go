// 指示: miu200521358
package minteractor

import (
	"math"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// triangulateBuffer はバッファ内の多角形面を三角形へ分割する。
// keepNormals が真の場合は分割前の面法線を各三角形へ引き継ぐ。
func triangulateBuffer(buffer *model.MeshBuffer, method model.TriangulateMethod, keepNormals bool) error {
	if buffer == nil || buffer.IsReleased() {
		return model.NewProcessingError("", "triangulate", "分割対象バッファが解放済みです")
	}

	faces := make([][]int, 0, len(buffer.Faces))
	normals := make([]r3.Vec, 0, len(buffer.FaceNormals))
	for faceIndex, face := range buffer.Faces {
		if len(face) < 3 {
			return model.NewProcessingError(buffer.SourceID, "triangulate",
				"頂点数が3未満の面は分割できません")
		}
		var sourceNormal r3.Vec
		if faceIndex < len(buffer.FaceNormals) {
			sourceNormal = buffer.FaceNormals[faceIndex]
		}
		for _, triangle := range splitFace(buffer.Positions, face, method) {
			faces = append(faces, triangle)
			if keepNormals {
				normals = append(normals, sourceNormal)
			} else {
				normals = append(normals, model.FaceNormal(buffer.Positions, triangle))
			}
		}
	}
	buffer.Faces = faces
	buffer.FaceNormals = normals
	return nil
}

// splitFace は1面を三角形列へ分割する。三角形はそのまま返す。
func splitFace(positions []r3.Vec, face []int, method model.TriangulateMethod) [][]int {
	if len(face) == 3 {
		return [][]int{face}
	}
	if len(face) == 4 {
		return splitQuad(positions, face, method)
	}
	return fanSplit(face)
}

// splitQuad は四角形面を2三角形へ分割する。
func splitQuad(positions []r3.Vec, face []int, method model.TriangulateMethod) [][]int {
	switch method {
	case model.TRIANGULATE_METHOD_FIXED:
		return quadByFirstDiagonal(face)
	case model.TRIANGULATE_METHOD_FIXED_ALTERNATE:
		return quadBySecondDiagonal(face)
	case model.TRIANGULATE_METHOD_SHORTEST_DIAGONAL:
		first := diagonalLength(positions, face[0], face[2])
		second := diagonalLength(positions, face[1], face[3])
		if first <= second {
			return quadByFirstDiagonal(face)
		}
		return quadBySecondDiagonal(face)
	default:
		// beauty: 分割後の最小角が大きい方の対角線を選ぶ。
		first := minAngleOfSplit(positions, quadByFirstDiagonal(face))
		second := minAngleOfSplit(positions, quadBySecondDiagonal(face))
		if first >= second {
			return quadByFirstDiagonal(face)
		}
		return quadBySecondDiagonal(face)
	}
}

func quadByFirstDiagonal(face []int) [][]int {
	return [][]int{
		{face[0], face[1], face[2]},
		{face[0], face[2], face[3]},
	}
}

func quadBySecondDiagonal(face []int) [][]int {
	return [][]int{
		{face[1], face[2], face[3]},
		{face[1], face[3], face[0]},
	}
}

// fanSplit は5頂点以上の面を先頭頂点からの扇形で分割する。
func fanSplit(face []int) [][]int {
	triangles := make([][]int, 0, len(face)-2)
	for index := 1; index < len(face)-1; index++ {
		triangles = append(triangles, []int{face[0], face[index], face[index+1]})
	}
	return triangles
}

func diagonalLength(positions []r3.Vec, from, to int) float64 {
	if from < 0 || from >= len(positions) || to < 0 || to >= len(positions) {
		return math.Inf(1)
	}
	return r3.Norm(r3.Sub(positions[to], positions[from]))
}

// minAngleOfSplit は分割候補の全三角形中の最小内角を返す。
func minAngleOfSplit(positions []r3.Vec, triangles [][]int) float64 {
	minAngle := math.Inf(1)
	for _, triangle := range triangles {
		for corner := 0; corner < 3; corner++ {
			angle := cornerAngle(positions, triangle[corner], triangle[(corner+1)%3], triangle[(corner+2)%3])
			if angle < minAngle {
				minAngle = angle
			}
		}
	}
	return minAngle
}

// cornerAngle は頂点 at における内角を返す。
func cornerAngle(positions []r3.Vec, at, toward1, toward2 int) float64 {
	for _, vertexIndex := range []int{at, toward1, toward2} {
		if vertexIndex < 0 || vertexIndex >= len(positions) {
			return 0
		}
	}
	edge1 := r3.Sub(positions[toward1], positions[at])
	edge2 := r3.Sub(positions[toward2], positions[at])
	length1 := r3.Norm(edge1)
	length2 := r3.Norm(edge2)
	if length1 == 0 || length2 == 0 {
		return 0
	}
	cosine := r3.Dot(edge1, edge2) / (length1 * length2)
	cosine = math.Max(-1, math.Min(1, cosine))
	return math.Acos(cosine)
}
