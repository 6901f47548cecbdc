// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miu200521358/mu_mesh_export/pkg/adapter/io_scene/memory"
	"github.com/miu200521358/mu_mesh_export/pkg/adapter/io_scene/objfile"
	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/infra/base/mlogging"
	"github.com/miu200521358/mu_mesh_export/pkg/shared/base/logging"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/minteractor"
	"gonum.org/v1/gonum/spatial/r3"
)

const batchOutputDirMode = 0o755

// batchConfig はバッチ出力の実行設定を表す。
type batchConfig struct {
	OutputRoot string
	WithLOD    bool
	FailFast   bool
}

// exportEntry は1プリセット分の出力情報を表す。
type exportEntry struct {
	Index  int
	Preset minteractor.PresetName
	// CaseDir はプリセットごとの出力先ディレクトリ。
	CaseDir string
}

// exportCaseResult は1プリセット分の出力結果を表す。
type exportCaseResult struct {
	Entry    exportEntry
	Status   string
	Duration time.Duration
	Report   *model.JobReport
	Err      error
}

// progressCollector は出力進捗イベントを収集する。
type progressCollector struct {
	eventCounts map[minteractor.ExportProgressEventType]int
}

func newProgressCollector() *progressCollector {
	return &progressCollector{eventCounts: map[minteractor.ExportProgressEventType]int{}}
}

// ReportExportProgress は進捗イベントを種別ごとに集計する。
func (c *progressCollector) ReportExportProgress(event minteractor.ExportProgressEvent) {
	c.eventCounts[event.Type]++
}

// IsCancelled はバッチ検証では常に継続する。
func (c *progressCollector) IsCancelled() bool {
	return false
}

// Summary は収集した進捗イベントの集計文字列を返す。
func (c *progressCollector) Summary() string {
	parts := []string{
		fmt.Sprintf("saved=%d", c.eventCounts[minteractor.ExportProgressEventTypeSaved]),
		fmt.Sprintf("lod=%d", c.eventCounts[minteractor.ExportProgressEventTypeLODGenerated]),
		fmt.Sprintf("failed=%d", c.eventCounts[minteractor.ExportProgressEventTypeTargetFailed]),
	}
	return strings.Join(parts, " ")
}

// main は手続き生成シーンを全組み込みプリセットで一括出力する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括出力を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	logging.SetDefaultLogger(mlogging.NewLogger(nil))

	entries := buildExportEntries(config.OutputRoot)
	results := executeBatchExport(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はCLI引数からバッチ設定を解決する。
func parseBatchConfig() (batchConfig, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", filepath.Join(workDir, "export_out"), "出力結果のルートディレクトリ")
	withLOD := flag.Bool("lod", true, "LODチェーン生成を含めて検証する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, fmt.Errorf("output-root が空です")
	}
	return batchConfig{OutputRoot: trimmedOutputRoot, WithLOD: *withLOD, FailFast: *failFast}, nil
}

// buildExportEntries は全組み込みプリセットの出力計画を組み立てる。
func buildExportEntries(outputRoot string) []exportEntry {
	var entries []exportEntry
	for index, name := range minteractor.PresetNames() {
		entries = append(entries, exportEntry{
			Index:   index + 1,
			Preset:  minteractor.PresetName(name),
			CaseDir: filepath.Join(outputRoot, name),
		})
	}
	return entries
}

// executeBatchExport は出力計画を順に実行する。
func executeBatchExport(config batchConfig, entries []exportEntry) []exportCaseResult {
	scene := buildProceduralScene()
	total := len(entries)
	var results []exportCaseResult
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 出力開始: preset=%s\n", entry.Index, total, entry.Preset)
		result := exportPresetCase(scene, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 出力成功: preset=%s dir=%s elapsed=%s\n",
				entry.Index, total, entry.Preset, entry.CaseDir, result.Duration.Round(time.Millisecond))
		default:
			fmt.Printf("[%d/%d] 出力失敗: preset=%s reason=%v\n", entry.Index, total, entry.Preset, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// exportPresetCase は1プリセット分の一括出力を実行する。
func exportPresetCase(scene *memory.SceneProvider, config batchConfig, entry exportEntry) exportCaseResult {
	result := exportCaseResult{Entry: entry, Status: "failed"}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	presetConfig, err := minteractor.PresetConfig(entry.Preset)
	if err != nil {
		result.Err = err
		return result
	}
	presetConfig.OutputDir = entry.CaseDir
	// OBJライターで全プリセットを検証するため、出力形式はOBJへ固定する。
	presetConfig.Format = model.EXPORT_FORMAT_OBJ
	if config.WithLOD {
		presetConfig.LOD.Enabled = true
	}

	usecase := minteractor.NewMeshExportUsecase(minteractor.MeshExportUsecaseDeps{
		Scene:       scene,
		Writer:      objfile.NewObjRepository(),
		MarkerStore: objfile.NewMarkerStore(filepath.Join(entry.CaseDir, ".export_markers.json")),
	})

	startedAt := time.Now()
	collector := newProgressCollector()
	exportResult, err := usecase.Run(minteractor.ExportRequest{
		Config:  presetConfig,
		Targets: buildTargets(scene),
		Sink:    collector,
	})
	if err != nil {
		result.Err = fmt.Errorf("一括出力に失敗しました: %w", err)
		return result
	}
	result.Report = exportResult.Report
	result.Duration = time.Since(startedAt)
	if exportResult.Report.FailedCount() > 0 || exportResult.Report.FatalErr != nil {
		result.Err = fmt.Errorf("失敗対象があります: failed=%d fatal=%v",
			exportResult.Report.FailedCount(), exportResult.Report.FatalErr)
		return result
	}

	result.Status = "succeeded"
	fmt.Printf("[%d] 進捗集計: preset=%s %s\n", entry.Index, entry.Preset, collector.Summary())
	return result
}

// buildTargets はシーン全体の出力対象列を組み立てる。
func buildTargets(scene *memory.SceneProvider) []model.ExportTarget {
	var targets []model.ExportTarget
	for _, objectID := range scene.ListObjectIDs() {
		targets = append(targets, model.ExportTarget{ObjectID: objectID})
	}
	return targets
}

// printBatchSummary は出力結果の集計を標準出力へ表示する。
func printBatchSummary(results []exportCaseResult) {
	succeeded := 0
	failed := 0
	for _, result := range results {
		if result.Status == "succeeded" {
			succeeded++
		} else {
			failed++
		}
	}
	fmt.Printf("バッチ出力サマリ: total=%d succeeded=%d failed=%d\n", len(results), succeeded, failed)
}

// buildProceduralScene は検証用の手続き生成シーンを組み立てる。
func buildProceduralScene() *memory.SceneProvider {
	scene := memory.NewSceneProvider()
	scene.AddObject(memory.SceneObject{
		ObjectID:  "grid_plane",
		Positions: gridPositions(24, 24, 1.0),
		Faces:     gridFaces(24, 24),
	})
	scene.AddObject(memory.SceneObject{
		ObjectID:  "uv_sphere",
		Positions: spherePositions(20, 20, 1.0),
		Faces:     sphereFaces(20, 20),
	})
	return scene
}

// gridPositions は XY 平面の格子頂点を生成する。
func gridPositions(rows, cols int, spacing float64) []r3.Vec {
	positions := make([]r3.Vec, 0, (rows+1)*(cols+1))
	for row := 0; row <= rows; row++ {
		for col := 0; col <= cols; col++ {
			positions = append(positions, r3.Vec{
				X: float64(col) * spacing,
				Y: float64(row) * spacing,
			})
		}
	}
	return positions
}

// gridFaces は格子の四角形面を生成する。
func gridFaces(rows, cols int) [][]int {
	faces := make([][]int, 0, rows*cols)
	stride := cols + 1
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			base := row*stride + col
			faces = append(faces, []int{base, base + 1, base + 1 + stride, base + stride})
		}
	}
	return faces
}

// spherePositions はUV球の頂点を生成する。
func spherePositions(rings, segments int, radius float64) []r3.Vec {
	positions := make([]r3.Vec, 0, (rings+1)*segments)
	for ring := 0; ring <= rings; ring++ {
		polar := math.Pi * float64(ring) / float64(rings)
		for segment := 0; segment < segments; segment++ {
			azimuth := 2 * math.Pi * float64(segment) / float64(segments)
			positions = append(positions, r3.Vec{
				X: radius * math.Sin(polar) * math.Cos(azimuth),
				Y: radius * math.Cos(polar),
				Z: radius * math.Sin(polar) * math.Sin(azimuth),
			})
		}
	}
	return positions
}

// sphereFaces はUV球の四角形面を生成する。
func sphereFaces(rings, segments int) [][]int {
	var faces [][]int
	for ring := 0; ring < rings; ring++ {
		for segment := 0; segment < segments; segment++ {
			current := ring*segments + segment
			next := ring*segments + (segment+1)%segments
			faces = append(faces, []int{current, next, next + segments, current + segments})
		}
	}
	return faces
}
