// 指示: miu200521358
package minteractor

import (
	"testing"
	"time"

	"github.com/miu200521358/mu_mesh_export/pkg/adapter/io_scene/memory"
	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
)

func withFixedClock(t *testing.T, start time.Time) *time.Time {
	t.Helper()
	current := start
	restore := nowFunc
	nowFunc = func() time.Time { return current }
	t.Cleanup(func() { nowFunc = restore })
	return &current
}

func TestFreshnessCacheTransitionsOverTime(t *testing.T) {
	clock := withFixedClock(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	cache := NewFreshnessCache(memory.NewMarkerStore())

	if err := cache.Record("cube", "/tmp/cube.obj"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if got := cache.StatusOf("cube").Status; got != model.FRESHNESS_STATUS_FRESH {
		t.Fatalf("just recorded should be fresh: got=%s", got)
	}

	*clock = clock.Add(60 * time.Second)
	if got := cache.StatusOf("cube").Status; got != model.FRESHNESS_STATUS_STALE {
		t.Fatalf("after 60s should be stale: got=%s", got)
	}

	*clock = clock.Add(240 * time.Second)
	if got := cache.StatusOf("cube").Status; got != model.FRESHNESS_STATUS_NONE {
		t.Fatalf("after 300s should be none: got=%s", got)
	}
}

func TestFreshnessCacheUnknownObjectIsNone(t *testing.T) {
	cache := NewFreshnessCache(memory.NewMarkerStore())
	entry := cache.StatusOf("ghost")
	if entry.Status != model.FRESHNESS_STATUS_NONE {
		t.Fatalf("unknown object should be none: got=%s", entry.Status)
	}
}

func TestFreshnessCacheSurvivesRestartThroughStore(t *testing.T) {
	clock := withFixedClock(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	store := memory.NewMarkerStore()

	first := NewFreshnessCache(store)
	if err := first.Record("cube", "/tmp/cube.obj"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	*clock = clock.Add(30 * time.Second)
	second := NewFreshnessCache(store)
	if got := second.StatusOf("cube").Status; got != model.FRESHNESS_STATUS_FRESH {
		t.Fatalf("reloaded record should be fresh: got=%s", got)
	}
}

func TestApplyColoursSetsAndClears(t *testing.T) {
	clock := withFixedClock(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	scene := memory.NewSceneProvider()
	scene.AddObject(memory.SceneObject{
		ObjectID:  "cube",
		Positions: []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}},
		Faces:     [][]int{{0, 1, 2}},
	})
	cache := NewFreshnessCache(memory.NewMarkerStore())

	if err := cache.Record("cube", "/tmp/cube.obj"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := cache.ApplyColours(scene); err != nil {
		t.Fatalf("apply colours failed: %v", err)
	}
	colour, found := scene.DisplayColour("cube")
	if !found || colour != model.FreshColour {
		t.Fatalf("fresh colour mismatch: found=%v colour=%v", found, colour)
	}

	*clock = clock.Add(90 * time.Second)
	if err := cache.ApplyColours(scene); err != nil {
		t.Fatalf("apply colours failed: %v", err)
	}
	colour, found = scene.DisplayColour("cube")
	if !found || colour != model.StaleColour {
		t.Fatalf("stale colour mismatch: found=%v colour=%v", found, colour)
	}

	*clock = clock.Add(time.Hour)
	if err := cache.ApplyColours(scene); err != nil {
		t.Fatalf("apply colours failed: %v", err)
	}
	if _, found := scene.DisplayColour("cube"); found {
		t.Fatalf("expired record should clear the colour")
	}
}

func TestApplyColoursDropsExpiredAndMissingRecords(t *testing.T) {
	clock := withFixedClock(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	scene := memory.NewSceneProvider()
	scene.AddObject(memory.SceneObject{
		ObjectID:  "cube",
		Positions: []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}},
		Faces:     [][]int{{0, 1, 2}},
	})
	store := memory.NewMarkerStore()
	cache := NewFreshnessCache(store)

	if err := cache.Record("cube", "/tmp/cube.obj"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := cache.Record("removed", "/tmp/removed.obj"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// シーンに存在しない記録は次の反映で破棄される。
	if err := cache.ApplyColours(scene); err != nil {
		t.Fatalf("apply colours failed: %v", err)
	}
	entries := cache.Scan()
	if len(entries) != 1 || entries[0].Marker.ObjectID != "cube" {
		t.Fatalf("missing object should be pruned: %v", entries)
	}

	// 期限切れの記録は色を戻した上で破棄される。
	*clock = clock.Add(time.Hour)
	if err := cache.ApplyColours(scene); err != nil {
		t.Fatalf("apply colours failed: %v", err)
	}
	if entries := cache.Scan(); len(entries) != 0 {
		t.Fatalf("expired record should be pruned: %v", entries)
	}
	markers, err := store.LoadMarkers()
	if err != nil || len(markers) != 0 {
		t.Fatalf("store should be empty: markers=%v err=%v", markers, err)
	}
}

func TestClearAllRemovesRecordsAndColours(t *testing.T) {
	withFixedClock(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	scene := memory.NewSceneProvider()
	scene.AddObject(memory.SceneObject{
		ObjectID:  "cube",
		Positions: []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}},
		Faces:     [][]int{{0, 1, 2}},
	})
	store := memory.NewMarkerStore()
	cache := NewFreshnessCache(store)

	if err := cache.Record("cube", "/tmp/cube.obj"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := cache.ApplyColours(scene); err != nil {
		t.Fatalf("apply colours failed: %v", err)
	}
	if err := cache.ClearAll(scene); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, found := scene.DisplayColour("cube"); found {
		t.Fatalf("clear should reset the colour")
	}
	if got := cache.StatusOf("cube").Status; got != model.FRESHNESS_STATUS_NONE {
		t.Fatalf("clear should drop the record: got=%s", got)
	}
	markers, err := store.LoadMarkers()
	if err != nil || len(markers) != 0 {
		t.Fatalf("store should be empty: markers=%v err=%v", markers, err)
	}
}
