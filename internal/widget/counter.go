package widget

import (
	"context"
	"math"
	"time"
)

// Counter animation timings.
const (
	CounterDuration = 1800 * time.Millisecond
	CounterFrame    = 16 * time.Millisecond
)

// CounterFrames returns the values shown while animating 0 to target: the
// floor of a linearly growing value each frame, ending exactly on target.
func CounterFrames(target int) []int {
	if target <= 0 {
		return []int{target}
	}
	step := float64(target) / (float64(CounterDuration) / float64(CounterFrame))
	var frames []int
	current := 0.0
	for {
		current += step
		if current >= float64(target) {
			break
		}
		frames = append(frames, int(math.Floor(current)))
	}
	return append(frames, target)
}

// RunCounter emits each frame value to show, one per CounterFrame.
func RunCounter(ctx context.Context, target int, show func(int)) error {
	ticker := time.NewTicker(CounterFrame)
	defer ticker.Stop()
	for _, v := range CounterFrames(target) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			show(v)
		}
	}
	return nil
}
