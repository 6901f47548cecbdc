// 指示: miu200521358
package model

import "time"

// FreshnessStatus は最終出力からの経過時間による鮮度区分を表す。
type FreshnessStatus string

const (
	// FRESHNESS_STATUS_FRESH は最終出力から60秒未満を表す。
	FRESHNESS_STATUS_FRESH FreshnessStatus = "fresh"
	// FRESHNESS_STATUS_STALE は最終出力から60秒以上300秒未満を表す。
	FRESHNESS_STATUS_STALE FreshnessStatus = "stale"
	// FRESHNESS_STATUS_NONE は未出力または300秒以上経過を表す。
	FRESHNESS_STATUS_NONE FreshnessStatus = "none"
)

const (
	// FreshDuration は鮮度 fresh の上限経過時間。
	FreshDuration = 60 * time.Second
	// StaleDuration は鮮度 stale の上限経過時間。
	StaleDuration = 300 * time.Second
)

// FreshnessStatusOf は経過時間から鮮度区分を判定する。
func FreshnessStatusOf(elapsed time.Duration) FreshnessStatus {
	switch {
	case elapsed < 0:
		return FRESHNESS_STATUS_NONE
	case elapsed < FreshDuration:
		return FRESHNESS_STATUS_FRESH
	case elapsed < StaleDuration:
		return FRESHNESS_STATUS_STALE
	default:
		return FRESHNESS_STATUS_NONE
	}
}

// Colour は鮮度区分に対応する表示色を表す。RGBA 各成分 0.0〜1.0。
type Colour [4]float64

var (
	// FreshColour は鮮度 fresh の表示色(緑)。
	FreshColour = Colour{0.2, 0.8, 0.2, 1.0}
	// StaleColour は鮮度 stale の表示色(黄)。
	StaleColour = Colour{0.8, 0.8, 0.2, 1.0}
)

// StatusColour は鮮度区分の表示色を返す。none は表示色を持たない。
func StatusColour(status FreshnessStatus) (Colour, bool) {
	switch status {
	case FRESHNESS_STATUS_FRESH:
		return FreshColour, true
	case FRESHNESS_STATUS_STALE:
		return StaleColour, true
	default:
		return Colour{}, false
	}
}

// ExportMarker は一対象の最終出力記録を表す。永続化して再起動後も復元する。
type ExportMarker struct {
	ObjectID   string    `json:"object_id"`
	OutputPath string    `json:"output_path"`
	ExportedAt time.Time `json:"exported_at"`
}

// FreshnessEntry は鮮度判定済みの出力記録を表す。
type FreshnessEntry struct {
	Marker  ExportMarker
	Status  FreshnessStatus
	Elapsed time.Duration
}
