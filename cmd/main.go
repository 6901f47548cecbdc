// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miu200521358/mu_mesh_export/pkg/adapter/io_scene/objfile"
	"github.com/miu200521358/mu_mesh_export/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/infra/base/mlogging"
	"github.com/miu200521358/mu_mesh_export/pkg/shared/base/logging"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/minteractor"
)

const markerFileName = ".export_markers.json"

// options はCLI引数を保持する。
type options struct {
	sceneDir   string
	outputDir  string
	preset     string
	format     string
	targets    []string
	lod        bool
	hierarchy  bool
	showStatus bool
}

// main はシーンディレクトリ内のメッシュを一括出力する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}
	logging.SetDefaultLogger(mlogging.NewLogger(nil))

	scene := objfile.NewObjSceneProvider(opts.sceneDir)
	markerStore := objfile.NewMarkerStore(filepath.Join(opts.sceneDir, markerFileName))
	usecase := minteractor.NewMeshExportUsecase(minteractor.MeshExportUsecaseDeps{
		Scene:       scene,
		Writer:      objfile.NewObjRepository(),
		MarkerStore: markerStore,
	})

	if opts.showStatus {
		return printFreshnessStatus(out, usecase)
	}

	config, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	targets := resolveTargets(opts, scene)
	if len(targets) == 0 {
		return fmt.Errorf(messages.MessageNoTargets, opts.sceneDir)
	}

	fmt.Fprintf(out, messages.LogExportStarted, len(targets), config.Format)
	result, err := usecase.Run(minteractor.ExportRequest{Config: config, Targets: targets})
	if err != nil {
		return fmt.Errorf(messages.MessageExportFailed, err)
	}

	for _, processed := range result.Report.Results {
		switch processed.Status {
		case model.RESULT_STATUS_SUCCEEDED:
			fmt.Fprintf(out, messages.LogTargetSuccess,
				processed.Target.ObjectID, processed.OutputPath, processed.PolyCount)
		case model.RESULT_STATUS_SKIPPED:
			fmt.Fprintf(out, messages.LogTargetSkipped, processed.Target.ObjectID)
		default:
			fmt.Fprintf(out, messages.LogTargetFailed,
				processed.Target.ObjectID, processed.Err)
		}
	}
	fmt.Fprintf(out, messages.LogJobSummary, result.Report.Summary())

	if result.Report.FatalErr != nil {
		return fmt.Errorf(messages.MessageJobAborted, result.Report.FatalErr)
	}
	if result.Report.FailedCount() > 0 {
		return fmt.Errorf(messages.MessagePartialFailure, result.Report.FailedCount())
	}
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_mesh_export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	sceneDir := fs.String("scene", "", messages.LabelSceneDir)
	outputDir := fs.String("out", "", messages.LabelOutputDir)
	preset := fs.String("preset", "", messages.LabelPreset+" ("+strings.Join(minteractor.PresetNames(), "/")+")")
	format := fs.String("format", string(model.EXPORT_FORMAT_OBJ), messages.LabelFormat)
	targets := fs.String("targets", "", messages.LabelTargets)
	lod := fs.Bool("lod", false, messages.LabelLOD)
	hierarchy := fs.Bool("lod-hierarchy", false, messages.LabelHierarchy)
	showStatus := fs.Bool("status", false, messages.LabelStatus)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *sceneDir == "" && fs.NArg() > 0 {
		*sceneDir = fs.Arg(0)
	}
	if *sceneDir == "" {
		return options{}, fmt.Errorf(messages.MessageSceneRequired)
	}
	if *outputDir == "" && !*showStatus {
		return options{}, fmt.Errorf(messages.MessageOutputRequired)
	}

	opts := options{
		sceneDir:   *sceneDir,
		outputDir:  *outputDir,
		preset:     strings.ToLower(strings.TrimSpace(*preset)),
		format:     strings.ToLower(strings.TrimSpace(*format)),
		lod:        *lod,
		hierarchy:  *hierarchy,
		showStatus: *showStatus,
	}
	for _, objectID := range strings.Split(*targets, ",") {
		trimmed := strings.TrimSpace(objectID)
		if trimmed != "" {
			opts.targets = append(opts.targets, trimmed)
		}
	}
	return opts, nil
}

// resolveConfig はプリセットとCLI引数から出力設定を組み立てる。
func resolveConfig(opts options) (*model.ExportConfig, error) {
	config := model.DefaultExportConfig()
	if opts.preset != "" {
		presetConfig, err := minteractor.PresetConfig(minteractor.PresetName(opts.preset))
		if err != nil {
			return nil, err
		}
		config = presetConfig
	}
	config.OutputDir = opts.outputDir
	config.Format = model.ExportFormat(opts.format)
	if opts.lod {
		config.LOD.Enabled = true
		config.LOD.Hierarchy = opts.hierarchy
		if len(config.LOD.Levels) == 0 {
			config.LOD.Levels = model.DefaultLODLevels()
		}
	}
	return config, nil
}

// resolveTargets は出力対象列を解決する。指定がなければシーン全体を対象にする。
func resolveTargets(opts options, scene *objfile.ObjSceneProvider) []model.ExportTarget {
	objectIDs := opts.targets
	if len(objectIDs) == 0 {
		objectIDs = scene.ListObjectIDs()
	}
	targets := make([]model.ExportTarget, 0, len(objectIDs))
	for _, objectID := range objectIDs {
		targets = append(targets, model.ExportTarget{ObjectID: objectID})
	}
	return targets
}

// printFreshnessStatus は出力記録の鮮度一覧を表示する。
func printFreshnessStatus(out io.Writer, usecase *minteractor.MeshExportUsecase) error {
	entries := usecase.Freshness().Scan()
	if len(entries) == 0 {
		fmt.Fprintln(out, messages.LogFreshnessEmpty)
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(out, messages.LogFreshnessEntry,
			entry.Marker.ObjectID, entry.Status, entry.Elapsed.Truncate(time.Second), entry.Marker.OutputPath)
	}
	return nil
}
