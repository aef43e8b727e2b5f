package imgedit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	nw     = Handle{West, North}
	ne     = Handle{East, North}
	sw     = Handle{West, South}
	se     = Handle{East, South}
	top    = Handle{HCenter, North}
	bottom = Handle{HCenter, South}
	left   = Handle{West, VCenter}
	right  = Handle{East, VCenter}

	testBase = Size{Width: 100, Height: 50}
)

func TestResizeCornerWithoutRatio(t *testing.T) {
	tests := []struct {
		name     string
		handle   Handle
		delta    Delta
		expected Size
	}{
		{"south east grows", se, Delta{20, 10}, Size{120, 60}},
		{"south east shrinks", se, Delta{-20, -10}, Size{80, 40}},
		{"north west grows", nw, Delta{-20, -10}, Size{120, 60}},
		{"north east", ne, Delta{15, 5}, Size{115, 45}},
		{"south west", sw, Delta{15, 5}, Size{85, 55}},
		{"no movement", se, Delta{}, testBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Resize(tt.handle, testBase, tt.delta, 0, ResizeOptions{}, false)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResizeSideHandlesKeepOtherAxis(t *testing.T) {
	opts := ResizeOptions{PreserveRatio: true}

	result := Resize(bottom, testBase, Delta{35, 20}, 0, opts, true)
	assert.Equal(t, Size{100, 70}, result)

	result = Resize(top, testBase, Delta{35, 20}, 0, opts, true)
	assert.Equal(t, Size{100, 30}, result)

	result = Resize(right, testBase, Delta{35, 20}, 0, opts, true)
	assert.Equal(t, Size{135, 50}, result)

	result = Resize(left, testBase, Delta{35, 20}, 0, opts, true)
	assert.Equal(t, Size{65, 50}, result)
}

func TestResizeSideHandlesNeverTouchLockedAxis(t *testing.T) {
	for angle := 0.0; angle < 2*math.Pi; angle += 0.5 {
		for _, d := range []Delta{{40, -30}, {-12, 7}, {0, 90}} {
			assert.Equal(t, testBase.Width, Resize(bottom, testBase, d, angle, ResizeOptions{PreserveRatio: true}, true).Width)
			assert.Equal(t, testBase.Width, Resize(top, testBase, d, angle, ResizeOptions{}, false).Width)
			assert.Equal(t, testBase.Height, Resize(right, testBase, d, angle, ResizeOptions{PreserveRatio: true}, false).Height)
			assert.Equal(t, testBase.Height, Resize(left, testBase, d, angle, ResizeOptions{}, true).Height)
		}
	}
}

func TestResizeCornerScenario(t *testing.T) {
	opts := ResizeOptions{PreserveRatio: true}

	// Moving the bottom-right corner diagonally along the ratio.
	result := Resize(se, testBase, Delta{20, 10}, 0, opts, false)
	assert.Equal(t, Size{120, 60}, result)

	// A purely horizontal move: the untouched height bounds the width, the
	// lock never grows a side past its candidate.
	result = Resize(se, testBase, Delta{20, 0}, 0, opts, false)
	assert.Equal(t, Size{100, 50}, result)

	// Height limits the width.
	result = Resize(se, testBase, Delta{40, 5}, 0, opts, false)
	assert.Equal(t, Size{110, 55}, result)

	// Width limits the height.
	result = Resize(se, testBase, Delta{10, 30}, 0, opts, false)
	assert.Equal(t, Size{110, 55}, result)
}

func TestResizeRatioLockedExactly(t *testing.T) {
	bases := []Size{{100, 50}, {640, 480}, {333, 97}, {1, 3}}
	deltas := []Delta{{20, 0}, {0, 20}, {-13.3, 47.1}, {250, -80}, {-60, -60}}
	locked := ResizeOptions{MinWidth: 1, MinHeight: 1, PreserveRatio: true}
	free := ResizeOptions{MinWidth: 1, MinHeight: 1}
	for _, base := range bases {
		ratio := base.Width / base.Height
		for _, h := range []Handle{nw, ne, sw, se} {
			for _, d := range deltas {
				result := Resize(h, base, d, 0.4, locked, false)
				candidate := Resize(h, base, d, 0.4, free, false)
				assert.InEpsilon(t, result.Height*ratio, result.Width, 1e-12, "%v %v %v", base, h, d)
				assert.LessOrEqual(t, result.Width, candidate.Width+1e-9)
				assert.LessOrEqual(t, result.Height, candidate.Height+1e-9)
			}
		}
	}
}

func TestResizeRatioOverride(t *testing.T) {
	result := Resize(se, testBase, Delta{40, 5}, 0, ResizeOptions{}, true)
	assert.Equal(t, Size{110, 55}, result)

	result = Resize(se, testBase, Delta{40, 5}, 0, ResizeOptions{}, false)
	assert.Equal(t, Size{140, 55}, result)
}

func TestResizeDegenerateBaseDisablesRatio(t *testing.T) {
	opts := ResizeOptions{PreserveRatio: true}

	result := Resize(se, Size{100, 0}, Delta{10, 10}, 0, opts, true)
	assert.Equal(t, Size{110, 10}, result)

	result = Resize(se, Size{100, -5}, Delta{10, 10}, 0, opts, true)
	assert.Equal(t, Size{110, 5}, result)

	result = Resize(se, Size{0, 50}, Delta{10, 10}, 0, opts, true)
	assert.Equal(t, Size{10, 60}, result)
}

func TestResizeMinimums(t *testing.T) {
	opts := ResizeOptions{MinWidth: 10, MinHeight: 10}

	result := Resize(nw, testBase, Delta{200, 200}, 0, opts, false)
	assert.Equal(t, Size{10, 10}, result)

	result = Resize(right, testBase, Delta{-500, 0}, 0, opts, false)
	assert.Equal(t, Size{10, 50}, result)
}

func TestResizeRatioWinsOverMinimum(t *testing.T) {
	opts := ResizeOptions{MinWidth: 10, MinHeight: 10, PreserveRatio: true}

	// Both candidates are floored at 10, the 2:1 ratio then derives a height
	// of 5, below MinHeight.
	result := Resize(nw, testBase, Delta{200, 200}, 0, opts, false)
	assert.Equal(t, Size{10, 5}, result)
	assert.Less(t, result.Height, opts.MinHeight)
	assert.GreaterOrEqual(t, result.Width, opts.MinWidth)
}

func TestResizeRotated(t *testing.T) {
	// Image turned a quarter clockwise: its local x axis points down the
	// screen, so dragging down grows the width through the east handle.
	result := Resize(right, testBase, Delta{0, 10}, math.Pi/2, ResizeOptions{}, false)
	assert.InDelta(t, 110, result.Width, 1e-9)
	assert.Equal(t, 50.0, result.Height)

	// Half turn: everything is mirrored.
	result = Resize(se, testBase, Delta{-20, -10}, math.Pi, ResizeOptions{}, false)
	assert.InDelta(t, 120, result.Width, 1e-9)
	assert.InDelta(t, 60, result.Height, 1e-9)
}

func TestResizerDragging(t *testing.T) {
	r := Resizer{}
	ctx := DragContext{
		Handle:   se,
		EditInfo: EditInfo{Width: 100, Height: 50, Angle: 0, LeftPercent: 0.1},
		Options:  ResizeOptions{PreserveRatio: true},
	}

	base := r.OnDragStart(ctx)
	assert.Equal(t, testBase, base)

	info, changed := r.OnDragging(ctx, DragEvent{}, base, 20, 10)
	assert.True(t, changed)
	assert.Equal(t, EditInfo{Width: 120, Height: 60, LeftPercent: 0.1}, info)

	// The context passed in is left alone.
	assert.Equal(t, 100.0, ctx.EditInfo.Width)

	info, changed = r.OnDragging(ctx, DragEvent{}, base, 0, 0)
	assert.False(t, changed)
	assert.Equal(t, ctx.EditInfo, info)
}

func TestResizerDraggingShift(t *testing.T) {
	r := Resizer{}
	ctx := DragContext{Handle: se, EditInfo: EditInfo{Width: 100, Height: 50}}
	base := r.OnDragStart(ctx)

	info, _ := r.OnDragging(ctx, DragEvent{Shift: true}, base, 40, 5)
	assert.Equal(t, Size{110, 55}, info.Size())

	info, _ = r.OnDragging(ctx, DragEvent{}, base, 40, 5)
	assert.Equal(t, Size{140, 55}, info.Size())
}
