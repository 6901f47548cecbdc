// 指示: miu200521358
package minteractor

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"github.com/miu200521358/mu_mesh_export/pkg/usecase/port/moutput"
)

// nowFunc は現在時刻の取得関数。テストで差し替える。
var nowFunc = time.Now

const (
	// freshnessSnapshotTTL は永続記録の再読込間隔。
	freshnessSnapshotTTL = 10 * time.Second
	// FreshnessPollInterval は表示色更新の推奨ポーリング間隔。
	FreshnessPollInterval = 5 * time.Second
)

// FreshnessCache はオブジェクトごとの最終出力時刻から鮮度を判定するキャッシュを表す。
type FreshnessCache struct {
	mu         sync.Mutex
	store      moutput.IMarkerStore
	markers    map[string]model.ExportMarker
	loadedAt   time.Time
	storeDirty bool
}

// NewFreshnessCache は鮮度キャッシュを生成する。
func NewFreshnessCache(store moutput.IMarkerStore) *FreshnessCache {
	return &FreshnessCache{
		store:   store,
		markers: map[string]model.ExportMarker{},
	}
}

// Record は出力成功を記録し、永続化する。
func (cache *FreshnessCache) Record(objectID string, outputPath string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	marker := model.ExportMarker{
		ObjectID:   objectID,
		OutputPath: outputPath,
		ExportedAt: nowFunc(),
	}
	cache.markers[objectID] = marker
	if cache.store == nil {
		return nil
	}
	if err := cache.store.SaveMarker(marker); err != nil {
		return fmt.Errorf("出力記録の保存に失敗しました: object=%s: %w", objectID, err)
	}
	return nil
}

// StatusOf はオブジェクトの鮮度判定済み記録を返す。未記録は none を返す。
func (cache *FreshnessCache) StatusOf(objectID string) model.FreshnessEntry {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.reloadLocked()
	marker, found := cache.markers[objectID]
	if !found {
		return model.FreshnessEntry{
			Marker: model.ExportMarker{ObjectID: objectID},
			Status: model.FRESHNESS_STATUS_NONE,
		}
	}
	elapsed := nowFunc().Sub(marker.ExportedAt)
	return model.FreshnessEntry{
		Marker:  marker,
		Status:  model.FreshnessStatusOf(elapsed),
		Elapsed: elapsed,
	}
}

// Scan は全記録の鮮度判定結果をオブジェクトID順で返す。
func (cache *FreshnessCache) Scan() []model.FreshnessEntry {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.reloadLocked()
	now := nowFunc()
	entries := make([]model.FreshnessEntry, 0, len(cache.markers))
	for _, marker := range cache.markers {
		elapsed := now.Sub(marker.ExportedAt)
		entries = append(entries, model.FreshnessEntry{
			Marker:  marker,
			Status:  model.FreshnessStatusOf(elapsed),
			Elapsed: elapsed,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Marker.ObjectID < entries[j].Marker.ObjectID
	})
	return entries
}

// ApplyColours は鮮度に応じた表示色をシーンへ反映する。
// fresh は緑、stale は黄。期限切れとシーンに存在しない記録は破棄する。
func (cache *FreshnessCache) ApplyColours(scene moutput.ISceneProvider) error {
	if scene == nil {
		return nil
	}
	var expired []string
	for _, entry := range cache.Scan() {
		objectID := entry.Marker.ObjectID
		if !scene.Exists(objectID) {
			expired = append(expired, objectID)
			continue
		}
		colour, visible := model.StatusColour(entry.Status)
		if !visible {
			if err := scene.ClearDisplayColour(objectID); err != nil {
				return fmt.Errorf("表示色の初期化に失敗しました: object=%s: %w", objectID, err)
			}
			expired = append(expired, objectID)
			continue
		}
		if err := scene.SetDisplayColour(objectID, colour); err != nil {
			return fmt.Errorf("表示色の設定に失敗しました: object=%s: %w", objectID, err)
		}
	}
	return cache.dropMarkers(expired)
}

// dropMarkers は期限切れ記録をキャッシュと永続記録から取り除く。
func (cache *FreshnessCache) dropMarkers(objectIDs []string) error {
	if len(objectIDs) == 0 {
		return nil
	}
	cache.mu.Lock()
	for _, objectID := range objectIDs {
		delete(cache.markers, objectID)
	}
	store := cache.store
	cache.mu.Unlock()

	if store == nil {
		return nil
	}
	for _, objectID := range objectIDs {
		if err := store.DeleteMarker(objectID); err != nil {
			return fmt.Errorf("出力記録の削除に失敗しました: object=%s: %w", objectID, err)
		}
	}
	return nil
}

// ClearAll は全記録を破棄し、シーンの表示色を既定へ戻す。
func (cache *FreshnessCache) ClearAll(scene moutput.ISceneProvider) error {
	cache.mu.Lock()
	objectIDs := make([]string, 0, len(cache.markers))
	for objectID := range cache.markers {
		objectIDs = append(objectIDs, objectID)
	}
	cache.markers = map[string]model.ExportMarker{}
	cache.loadedAt = nowFunc()
	store := cache.store
	cache.mu.Unlock()

	if store != nil {
		if err := store.ClearMarkers(); err != nil {
			return fmt.Errorf("出力記録の全削除に失敗しました: %w", err)
		}
	}
	if scene == nil {
		return nil
	}
	sort.Strings(objectIDs)
	for _, objectID := range objectIDs {
		if !scene.Exists(objectID) {
			continue
		}
		if err := scene.ClearDisplayColour(objectID); err != nil {
			return fmt.Errorf("表示色の初期化に失敗しました: object=%s: %w", objectID, err)
		}
	}
	return nil
}

// reloadLocked は再読込間隔を超えていれば永続記録を読み直す。
func (cache *FreshnessCache) reloadLocked() {
	if cache.store == nil {
		return
	}
	now := nowFunc()
	if !cache.loadedAt.IsZero() && now.Sub(cache.loadedAt) < freshnessSnapshotTTL {
		return
	}
	markers, err := cache.store.LoadMarkers()
	if err != nil {
		// 読み込み失敗時は手元の記録で判定を続ける。
		cache.loadedAt = now
		return
	}
	loaded := make(map[string]model.ExportMarker, len(markers))
	for _, marker := range markers {
		loaded[marker.ObjectID] = marker
	}
	// 永続化前の新しい記録を失わないよう、手元の方が新しければ残す。
	for objectID, marker := range cache.markers {
		if existing, found := loaded[objectID]; !found || marker.ExportedAt.After(existing.ExportedAt) {
			loaded[objectID] = marker
		}
	}
	cache.markers = loaded
	cache.loadedAt = now
}
