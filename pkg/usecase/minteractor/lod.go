// 指示: miu200521358
package minteractor

import (
	"fmt"
	"math"
	"sort"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// lodMinViableFaceCount は生成結果として許容する最小面数。
	lodMinViableFaceCount = 4
	// lodRatioFloor は比率の下限。0以下の指定はこの値へ丸める。
	lodRatioFloor = 0.01
	// lodForceReclaimPolyCount はこの面数を超える入力の生成後に即時回収する。
	lodForceReclaimPolyCount = 1_000_000
	// symmetryDetectTolerance は対称軸判定で許容する平均鏡映誤差の割合。
	symmetryDetectTolerance = 1e-4
	// symmetryPlaneEpsilon は対称面上とみなす座標の許容幅。
	symmetryPlaneEpsilon = 1e-9
)

// clampLODRatio は比率を (0,1] の範囲へ丸める。
func clampLODRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio <= 0 {
		return lodRatioFloor
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// lodLevelName はLOD段の出力名を返す。段番号は0始まりの2桁で、00が元メッシュ。
func lodLevelName(baseName string, level int) string {
	return fmt.Sprintf("%s_LOD%02d", baseName, level)
}

// GenerateLODChain は元メッシュから連鎖的にLOD列を生成する。
// 各段は前段の結果をさらに削減し、段の区切りごとに中断要求を確認する。
// 元バッファは変更せず、生成した全バッファの所有権を呼び出し側へ渡す。
// 途中で失敗または中断した場合は生成済みバッファを解放してから返す。
func (uc *MeshExportUsecase) GenerateLODChain(base *model.MeshBuffer, spec model.LODSpec, sink IProgressSink) ([]*model.MeshBuffer, error) {
	if base == nil || base.IsReleased() {
		return nil, model.NewProcessingError("", "lod", "LOD生成元バッファが解放済みです")
	}

	levels := make([]*model.MeshBuffer, 0, len(spec.Levels))
	releaseLevels := func() {
		for _, buffer := range levels {
			buffer.Release()
		}
	}
	previous := base
	for index, level := range spec.Levels {
		if isCancelled(sink) {
			releaseLevels()
			return nil, model.NewCancelledError("利用者の操作で中断されました")
		}
		generated, err := uc.decimateLevel(previous, level, lodLevelName(base.Name, index+1))
		if err != nil {
			releaseLevels()
			return nil, err
		}
		levels = append(levels, generated)
		previous = generated
		uc.reclaimAfterLevel(generated.PolyCount())
		reportExportProgress(sink, ExportProgressEvent{
			Type:      ExportProgressEventTypeLODGenerated,
			TargetID:  base.SourceID,
			LODLevel:  index + 1,
			PolyCount: generated.PolyCount(),
		})
	}
	return levels, nil
}

// decimateLevel は前段バッファから1段分の削減メッシュを生成する。
func (uc *MeshExportUsecase) decimateLevel(source *model.MeshBuffer, level model.LODLevel, name string) (*model.MeshBuffer, error) {
	ratio := clampLODRatio(level.Ratio)
	targetFaces := int(math.Round(float64(source.PolyCount()) * ratio))
	if targetFaces < lodMinViableFaceCount {
		return nil, model.NewProcessingError(source.SourceID, "lod",
			fmt.Sprintf("削減後の面数が下限を下回ります: name=%s, target=%d, min=%d",
				name, targetFaces, lodMinViableFaceCount))
	}

	copied, err := source.Clone(name)
	if err != nil {
		return nil, model.NewProcessingError(source.SourceID, "lod", err.Error())
	}
	if ratio >= 1 {
		return copied, nil
	}

	var symmetryAxis int = -1
	if level.PreserveSymmetry {
		symmetryAxis = detectSymmetryAxis(copied.Positions)
	}
	decimateToTarget(copied, targetFaces, symmetryAxis)
	copied.RecomputeFaceNormals()
	return copied, nil
}

// reclaimAfterLevel はLOD1段生成後のメモリ回収を行う。
func (uc *MeshExportUsecase) reclaimAfterLevel(polyCount int) {
	if uc.memory == nil {
		return
	}
	if polyCount > lodForceReclaimPolyCount {
		uc.memory.RequestReclaim(polyCount, true)
		return
	}
	uc.memory.RequestReclaim(polyCount, false)
}

type collapseEdge struct {
	from   int
	to     int
	length float64
}

// decimateToTarget は最短辺の縮約を繰り返して面数を目標まで減らす。
// symmetryAxis が 0 以上の場合、その軸の対称面を跨ぐ縮約を行わない。
func decimateToTarget(buffer *model.MeshBuffer, targetFaces int, symmetryAxis int) {
	for len(buffer.Faces) > targetFaces {
		edges := collectEdges(buffer)
		if len(edges) == 0 {
			return
		}
		sort.Slice(edges, func(i, j int) bool { return edges[i].length < edges[j].length })

		touched := map[int]bool{}
		collapsedAny := false
		for _, edge := range edges {
			if len(buffer.Faces) <= targetFaces {
				break
			}
			if touched[edge.from] || touched[edge.to] {
				continue
			}
			if symmetryAxis >= 0 && crossesSymmetryPlane(buffer.Positions, edge, symmetryAxis) {
				continue
			}
			collapseInto(buffer, edge.from, edge.to)
			touched[edge.from] = true
			touched[edge.to] = true
			collapsedAny = true
		}
		if !collapsedAny {
			return
		}
	}
}

// collectEdges は全面の辺を長さ付きで列挙する。重複辺は1つにまとめる。
func collectEdges(buffer *model.MeshBuffer) []collapseEdge {
	seen := map[[2]int]bool{}
	var edges []collapseEdge
	for _, face := range buffer.Faces {
		for index := range face {
			from := face[index]
			to := face[(index+1)%len(face)]
			if from == to {
				continue
			}
			key := [2]int{from, to}
			if from > to {
				key = [2]int{to, from}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, collapseEdge{
				from:   key[0],
				to:     key[1],
				length: r3.Norm(r3.Sub(buffer.Positions[key[1]], buffer.Positions[key[0]])),
			})
		}
	}
	return edges
}

// collapseInto は頂点 to を from へ吸収し、縮退した面を取り除く。
// 吸収後の頂点は辺の中点へ移動する。
func collapseInto(buffer *model.MeshBuffer, from, to int) {
	midpoint := r3.Scale(0.5, r3.Add(buffer.Positions[from], buffer.Positions[to]))
	buffer.Positions[from] = midpoint

	faces := buffer.Faces[:0]
	for _, face := range buffer.Faces {
		replaced := make([]int, 0, len(face))
		for _, vertexIndex := range face {
			if vertexIndex == to {
				vertexIndex = from
			}
			if len(replaced) > 0 && replaced[len(replaced)-1] == vertexIndex {
				continue
			}
			replaced = append(replaced, vertexIndex)
		}
		if len(replaced) > 1 && replaced[0] == replaced[len(replaced)-1] {
			replaced = replaced[:len(replaced)-1]
		}
		if len(replaced) < 3 {
			continue
		}
		faces = append(faces, replaced)
	}
	buffer.Faces = faces
}

// detectSymmetryAxis は鏡映誤差が最小の対称軸を返す。0=X, 1=Y, 2=Z。
// どの軸も誤差が許容範囲を超える場合は -1 を返す。
func detectSymmetryAxis(positions []r3.Vec) int {
	if len(positions) == 0 {
		return -1
	}
	scale := boundingRadius(positions)
	if scale == 0 {
		return -1
	}
	bestAxis := -1
	bestScore := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		score := mirrorScore(positions, axis) / scale
		if score < bestScore {
			bestScore = score
			bestAxis = axis
		}
	}
	if bestScore > symmetryDetectTolerance {
		return -1
	}
	return bestAxis
}

// mirrorScore は各頂点の鏡映点から最近傍頂点までの平均距離を返す。
func mirrorScore(positions []r3.Vec, axis int) float64 {
	total := 0.0
	for _, position := range positions {
		mirrored := mirrorAcross(position, axis)
		nearest := math.Inf(1)
		for _, candidate := range positions {
			distance := r3.Norm(r3.Sub(candidate, mirrored))
			if distance < nearest {
				nearest = distance
			}
		}
		total += nearest
	}
	return total / float64(len(positions))
}

func mirrorAcross(position r3.Vec, axis int) r3.Vec {
	switch axis {
	case 0:
		return r3.Vec{X: -position.X, Y: position.Y, Z: position.Z}
	case 1:
		return r3.Vec{X: position.X, Y: -position.Y, Z: position.Z}
	default:
		return r3.Vec{X: position.X, Y: position.Y, Z: -position.Z}
	}
}

// crossesSymmetryPlane は辺の両端が対称面の反対側にあるか判定する。
// 面上の頂点はどちら側とも縮約できる。
func crossesSymmetryPlane(positions []r3.Vec, edge collapseEdge, axis int) bool {
	fromCoord := axisCoord(positions[edge.from], axis)
	toCoord := axisCoord(positions[edge.to], axis)
	if math.Abs(fromCoord) <= symmetryPlaneEpsilon || math.Abs(toCoord) <= symmetryPlaneEpsilon {
		return false
	}
	return (fromCoord > 0) != (toCoord > 0)
}

func axisCoord(position r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return position.X
	case 1:
		return position.Y
	default:
		return position.Z
	}
}

func boundingRadius(positions []r3.Vec) float64 {
	radius := 0.0
	for _, position := range positions {
		norm := r3.Norm(position)
		if norm > radius {
			radius = norm
		}
	}
	return radius
}
