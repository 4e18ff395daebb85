package sim

import (
	"testing"
)

func TestReduceLine(t *testing.T) {
	tests := []struct {
		name           string
		outputs        []int
		wantThroughput int
		wantBottleneck int
		wantTied       bool
	}{
		{"single station", []int{42}, 42, 0, false},
		{"minimum in middle", []int{100, 80, 95}, 80, 1, false},
		{"minimum last", []int{100, 95, 10}, 10, 2, false},
		{"tie picks lowest index", []int{90, 70, 70}, 70, 1, true},
		{"tie at first index", []int{5, 9, 5}, 5, 0, true},
		{"all equal", []int{3, 3, 3}, 3, 0, true},
		{"tie above minimum is not a tie", []int{50, 50, 20}, 20, 2, false},
		{"zero output", []int{12, 0, 7}, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bottleneck, tied := ReduceLine(tt.outputs)
			if got != tt.wantThroughput || bottleneck != tt.wantBottleneck || tied != tt.wantTied {
				t.Errorf("ReduceLine(%v) = (%d, %d, %v), want (%d, %d, %v)",
					tt.outputs, got, bottleneck, tied, tt.wantThroughput, tt.wantBottleneck, tt.wantTied)
			}
		})
	}
}

func TestReduceLine_Empty(t *testing.T) {
	_, bottleneck, tied := ReduceLine(nil)
	if bottleneck != -1 || tied {
		t.Errorf("ReduceLine(nil) bottleneck=%d tied=%v, want -1 false", bottleneck, tied)
	}
}
