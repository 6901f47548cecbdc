// 指示: miu200521358
package memory

import (
	"fmt"
	"sync"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
)

// SavedUnit は書き出し要求の記録を表す。
type SavedUnit struct {
	Path string
	Name string
	// PolyCounts は書き出し時点の各バッファの面数。
	PolyCounts []int
	Hierarchy  bool
}

// CapturingWriter は書き出し要求を記録するメッシュライタを表す。
type CapturingWriter struct {
	mu    sync.Mutex
	saved []SavedUnit
	// FailPaths に含まれるパスへの書き出しは失敗させる。
	FailPaths map[string]error
}

// NewCapturingWriter はCapturingWriterを生成する。
func NewCapturingWriter() *CapturingWriter {
	return &CapturingWriter{FailPaths: map[string]error{}}
}

// CanWrite は全形式を書き出せる。
func (w *CapturingWriter) CanWrite(format model.ExportFormat) bool {
	return true
}

// Save は出力単位の内容を記録する。解放済みバッファの混入は失敗にする。
func (w *CapturingWriter) Save(path string, unit *model.ExportUnit, options moutput.SaveOptions) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err, found := w.FailPaths[path]; found {
		return err
	}
	if unit == nil || len(unit.Buffers) == 0 {
		return fmt.Errorf("書き出し対象の出力単位が空です")
	}
	record := SavedUnit{Path: path, Name: unit.Name, Hierarchy: unit.Hierarchy}
	for _, buffer := range unit.Buffers {
		if buffer.IsReleased() {
			return fmt.Errorf("解放済みバッファは書き出せません: unit=%s", unit.Name)
		}
		record.PolyCounts = append(record.PolyCounts, buffer.PolyCount())
	}
	w.saved = append(w.saved, record)
	return nil
}

// Saved は書き出し記録を要求順で返す。
func (w *CapturingWriter) Saved() []SavedUnit {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]SavedUnit(nil), w.saved...)
}
