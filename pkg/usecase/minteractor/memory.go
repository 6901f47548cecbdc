// 指示: miu200521358
package minteractor

import (
	"runtime"
	"sync"
	"time"
)

const (
	// memoryDefaultInterval は逼迫制御の既定の実行間隔。
	memoryDefaultInterval = 5 * time.Second
	// memoryHighPolyThreshold は高負荷とみなす面数。この値を超えると間隔を半減する。
	memoryHighPolyThreshold = 1_000_000
	// memoryMidPolyThreshold は中負荷とみなす面数。この値を超えると間隔を短縮する。
	memoryMidPolyThreshold = 500_000
	// memoryHighIntervalFloor は高負荷時の間隔下限。
	memoryHighIntervalFloor = 2 * time.Second
	// memoryMidIntervalFloor は中負荷時の間隔下限。
	memoryMidIntervalFloor = 3 * time.Second
)

// MemoryPressureConfig は逼迫制御の設定を表す。
type MemoryPressureConfig struct {
	// BaseInterval は回収実行の基本間隔。0以下は既定値を使う。
	BaseInterval time.Duration
	// Adaptive は面数に応じた間隔短縮を行うか。
	Adaptive bool
	// ReclaimFunc は回収処理。nil の場合は runtime.GC を使う。
	ReclaimFunc func()
}

// MemoryPressureController は重いジオメトリ処理中のメモリ回収頻度を制御する。
type MemoryPressureController struct {
	mu            sync.Mutex
	baseInterval  time.Duration
	adaptive      bool
	reclaimFunc   func()
	lastReclaimAt time.Time
	reclaimCount  int
}

// NewMemoryPressureController は逼迫制御を生成する。
func NewMemoryPressureController(config MemoryPressureConfig) *MemoryPressureController {
	interval := config.BaseInterval
	if interval <= 0 {
		interval = memoryDefaultInterval
	}
	reclaimFunc := config.ReclaimFunc
	if reclaimFunc == nil {
		reclaimFunc = runtime.GC
	}
	return &MemoryPressureController{
		baseInterval: interval,
		adaptive:     config.Adaptive,
		reclaimFunc:  reclaimFunc,
	}
}

// EffectiveInterval は面数に応じた実効間隔を返す。
// 適応無効時は常に基本間隔を返す。
func (controller *MemoryPressureController) EffectiveInterval(polyCount int) time.Duration {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.effectiveIntervalLocked(polyCount)
}

func (controller *MemoryPressureController) effectiveIntervalLocked(polyCount int) time.Duration {
	if !controller.adaptive {
		return controller.baseInterval
	}
	switch {
	case polyCount > memoryHighPolyThreshold:
		return maxDuration(memoryHighIntervalFloor, controller.baseInterval/2)
	case polyCount > memoryMidPolyThreshold:
		return maxDuration(memoryMidIntervalFloor, controller.baseInterval*3/4)
	default:
		return controller.baseInterval
	}
}

// RequestReclaim は実効間隔を経過していれば回収を実行する。実行したか返す。
// force 指定時は間隔に関わらず即時に回収し、経過時間を初期化する。
func (controller *MemoryPressureController) RequestReclaim(polyCount int, force bool) bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	now := nowFunc()
	if !force && !controller.lastReclaimAt.IsZero() &&
		now.Sub(controller.lastReclaimAt) < controller.effectiveIntervalLocked(polyCount) {
		return false
	}
	controller.reclaimLocked(now)
	return true
}

func (controller *MemoryPressureController) reclaimLocked(now time.Time) {
	controller.reclaimFunc()
	controller.lastReclaimAt = now
	controller.reclaimCount++
}

// SetAdaptive は適応間隔の有効無効を切り替える。
func (controller *MemoryPressureController) SetAdaptive(enabled bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.adaptive = enabled
}

// ReclaimCount は回収実行回数を返す。
func (controller *MemoryPressureController) ReclaimCount() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.reclaimCount
}

// Reset は経過時間と実行回数を初期化する。多重呼び出しは無害。
func (controller *MemoryPressureController) Reset() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.lastReclaimAt = time.Time{}
	controller.reclaimCount = 0
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
