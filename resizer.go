package imgedit

import (
	"math"
)

// Resize maps a drag of handle h by d (accumulated since the drag started,
// in editor space) to the new size of an image whose size was base when the
// drag started and which is rotated by angle.
//
// Ratio locking applies to corner handles only, when opts.PreserveRatio or
// ratioOverride is set and base has a positive aspect ratio. Minimums are
// applied before the ratio is enforced, so a locked ratio may take the
// derived side below its minimum.
func Resize(h Handle, base Size, d Delta, angle float64, opts ResizeOptions, ratioOverride bool) Size {
	ratio := base.AspectRatio()
	local := RotateCoordinate(d, angle)

	horizontalOnly := h.X == HCenter
	verticalOnly := h.Y == VCenter
	lockRatio := !(horizontalOnly || verticalOnly) && (opts.PreserveRatio || ratioOverride)

	width := base.Width
	if !horizontalOnly {
		width = math.Max(base.Width+local.X*h.X.sign(), opts.MinWidth)
	}
	height := base.Height
	if !verticalOnly {
		height = math.Max(base.Height+local.Y*h.Y.sign(), opts.MinHeight)
	}

	if lockRatio && ratio > 0 {
		height = math.Min(height, width/ratio)
		width = math.Min(width, height*ratio)

		if width < height*ratio {
			width = height * ratio
		} else {
			height = width / ratio
		}
	}

	return Size{Width: width, Height: height}
}

// sign is the direction in which a positive x delta grows the image.
func (x HorizontalTag) sign() float64 {
	if x == West {
		return -1
	}
	return 1
}

// sign is the direction in which a positive y delta grows the image.
func (y VerticalTag) sign() float64 {
	if y == North {
		return -1
	}
	return 1
}

// DragContext is what a drag handler sees of the session during a gesture.
type DragContext struct {
	Handle   Handle
	EditInfo EditInfo
	Options  ResizeOptions
}

// DragEvent carries the modifier state of a pointer move. Shift forces the
// aspect ratio to be preserved.
type DragEvent struct {
	Shift bool
}

// DragHandler drives one kind of edit (resize, rotate, crop) from a drag
// gesture. OnDragStart snapshots what the gesture needs; OnDragging returns
// the edit info patched for the accumulated delta and whether it changed.
// Callers commit the returned value.
type DragHandler[B any] interface {
	OnDragStart(ctx DragContext) B
	OnDragging(ctx DragContext, e DragEvent, base B, deltaX, deltaY float64) (EditInfo, bool)
}

// Resizer is the resize drag handler.
type Resizer struct{}

var _ DragHandler[Size] = Resizer{}

// OnDragStart snapshots the current size of the edit info.
func (Resizer) OnDragStart(ctx DragContext) Size {
	return ctx.EditInfo.Size()
}

// OnDragging solves the new size for the accumulated delta.
func (Resizer) OnDragging(ctx DragContext, e DragEvent, base Size, deltaX, deltaY float64) (EditInfo, bool) {
	sz := Resize(ctx.Handle, base, Delta{X: deltaX, Y: deltaY}, ctx.EditInfo.Angle, ctx.Options, e.Shift)
	changed := sz != ctx.EditInfo.Size()
	return ctx.EditInfo.WithSize(sz), changed
}
