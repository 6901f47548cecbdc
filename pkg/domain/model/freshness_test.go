// 指示: miu200521358
package model

import (
	"testing"
	"time"
)

func TestFreshnessStatusOfBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    FreshnessStatus
	}{
		{"just exported", 0, FRESHNESS_STATUS_FRESH},
		{"under fresh limit", 59 * time.Second, FRESHNESS_STATUS_FRESH},
		{"at fresh limit", 60 * time.Second, FRESHNESS_STATUS_STALE},
		{"under stale limit", 299 * time.Second, FRESHNESS_STATUS_STALE},
		{"at stale limit", 300 * time.Second, FRESHNESS_STATUS_NONE},
		{"long ago", time.Hour, FRESHNESS_STATUS_NONE},
		{"negative elapsed", -time.Second, FRESHNESS_STATUS_NONE},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := FreshnessStatusOf(testCase.elapsed); got != testCase.want {
				t.Fatalf("status mismatch: elapsed=%s got=%s want=%s", testCase.elapsed, got, testCase.want)
			}
		})
	}
}

func TestStatusColourMapping(t *testing.T) {
	colour, visible := StatusColour(FRESHNESS_STATUS_FRESH)
	if !visible || colour != FreshColour {
		t.Fatalf("fresh colour mismatch: got=%v", colour)
	}
	colour, visible = StatusColour(FRESHNESS_STATUS_STALE)
	if !visible || colour != StaleColour {
		t.Fatalf("stale colour mismatch: got=%v", colour)
	}
	if _, visible := StatusColour(FRESHNESS_STATUS_NONE); visible {
		t.Fatalf("none should not have a colour")
	}
}
