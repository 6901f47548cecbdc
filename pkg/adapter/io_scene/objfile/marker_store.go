// 指示: miu200521358
package objfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

const markerFileMode = 0o644

// MarkerStore は出力記録をJSONファイルへ永続化する。
type MarkerStore struct {
	mu   sync.Mutex
	path string
}

// NewMarkerStore はMarkerStoreを生成する。
func NewMarkerStore(path string) *MarkerStore {
	return &MarkerStore{path: path}
}

// SaveMarker は出力記録を保存する。同一オブジェクトの既存記録は置き換える。
func (store *MarkerStore) SaveMarker(marker model.ExportMarker) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	markers, err := store.loadLocked()
	if err != nil {
		return err
	}
	replaced := false
	for index := range markers {
		if markers[index].ObjectID == marker.ObjectID {
			markers[index] = marker
			replaced = true
			break
		}
	}
	if !replaced {
		markers = append(markers, marker)
	}
	return store.writeLocked(markers)
}

// LoadMarkers は保存済みの全出力記録をオブジェクトID順で返す。
func (store *MarkerStore) LoadMarkers() ([]model.ExportMarker, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loadLocked()
}

// DeleteMarker は指定オブジェクトの出力記録を削除する。未登録は無視する。
func (store *MarkerStore) DeleteMarker(objectID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	markers, err := store.loadLocked()
	if err != nil {
		return err
	}
	remaining := markers[:0]
	for _, marker := range markers {
		if marker.ObjectID != objectID {
			remaining = append(remaining, marker)
		}
	}
	return store.writeLocked(remaining)
}

// ClearMarkers は全出力記録を削除する。
func (store *MarkerStore) ClearMarkers() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	err := os.Remove(store.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("出力記録ファイルの削除に失敗しました: %s: %w", store.path, err)
	}
	return nil
}

func (store *MarkerStore) loadLocked() ([]model.ExportMarker, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("出力記録ファイルの読み込みに失敗しました: %s: %w", store.path, err)
	}
	var markers []model.ExportMarker
	if err := json.Unmarshal(data, &markers); err != nil {
		return nil, fmt.Errorf("出力記録ファイルの解析に失敗しました: %s: %w", store.path, err)
	}
	return markers, nil
}

func (store *MarkerStore) writeLocked(markers []model.ExportMarker) error {
	sort.Slice(markers, func(i, j int) bool { return markers[i].ObjectID < markers[j].ObjectID })
	data, err := json.MarshalIndent(markers, "", "  ")
	if err != nil {
		return fmt.Errorf("出力記録の変換に失敗しました: %w", err)
	}
	if dir := filepath.Dir(store.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力記録ディレクトリの作成に失敗しました: %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(store.path, data, markerFileMode); err != nil {
		return fmt.Errorf("出力記録ファイルの保存に失敗しました: %s: %w", store.path, err)
	}
	return nil
}
