// 指示: miu200521358
package memory

import (
	"sort"
	"sync"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

// MarkerStore は出力記録をメモリ上に保持する。
type MarkerStore struct {
	mu      sync.Mutex
	markers map[string]model.ExportMarker
}

// NewMarkerStore はMarkerStoreを生成する。
func NewMarkerStore() *MarkerStore {
	return &MarkerStore{markers: map[string]model.ExportMarker{}}
}

// SaveMarker は出力記録を保存する。同一オブジェクトの既存記録は置き換える。
func (store *MarkerStore) SaveMarker(marker model.ExportMarker) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.markers[marker.ObjectID] = marker
	return nil
}

// LoadMarkers は保存済みの全出力記録をオブジェクトID順で返す。
func (store *MarkerStore) LoadMarkers() ([]model.ExportMarker, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	markers := make([]model.ExportMarker, 0, len(store.markers))
	for _, marker := range store.markers {
		markers = append(markers, marker)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].ObjectID < markers[j].ObjectID })
	return markers, nil
}

// DeleteMarker は指定オブジェクトの出力記録を削除する。
func (store *MarkerStore) DeleteMarker(objectID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.markers, objectID)
	return nil
}

// ClearMarkers は全出力記録を削除する。
func (store *MarkerStore) ClearMarkers() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.markers = map[string]model.ExportMarker{}
	return nil
}
