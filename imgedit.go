package imgedit

import (
	"errors"
	"fmt"
)

const (
	VERSION = "1.0.0"
)

var (
	ErrInvalidHandle      = errors.New("invalid resize handle")
	ErrInvalidOptions     = errors.New("invalid resize options")
	ErrInvalidBorderColor = errors.New("invalid border color")
	ErrNoActiveDrag       = errors.New("no active resize gesture")
	ErrNotDraggable       = errors.New("handle is not draggable")
)

// EditInfo is the working state of one image edit session. Width and Height
// are the current target size, Angle is the rotation of the image about its
// center in radians. The crop percentages are carried along for the other
// editors of the session and are never touched by resizing.
type EditInfo struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`

	LeftPercent   float64 `json:"left_percent,omitempty"`
	RightPercent  float64 `json:"right_percent,omitempty"`
	TopPercent    float64 `json:"top_percent,omitempty"`
	BottomPercent float64 `json:"bottom_percent,omitempty"`
}

// Size returns the width and height of the edit info.
func (ei EditInfo) Size() Size {
	return Size{Width: ei.Width, Height: ei.Height}
}

// WithSize returns a copy of the edit info with its dimensions replaced.
func (ei EditInfo) WithSize(sz Size) EditInfo {
	ei.Width, ei.Height = sz.Width, sz.Height
	return ei
}

// Size is a width/height pair. Taken at drag start it serves as the base
// size of a gesture.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AspectRatio returns width/height, or 0 when either side is not positive.
func (sz Size) AspectRatio() float64 {
	if sz.Width > 0 && sz.Height > 0 {
		return sz.Width / sz.Height
	}
	return 0
}

func (sz Size) String() string {
	return fmt.Sprintf("%gx%g", sz.Width, sz.Height)
}

// Delta is a pointer movement in the editor's unrotated coordinate space.
type Delta struct {
	X float64 `json:"dx"`
	Y float64 `json:"dy"`
}

// ResizeOptions are the per-session constraints of the resize solver.
type ResizeOptions struct {
	MinWidth      float64 `json:"min_width" toml:"min_width" validate:"gte=0"`
	MinHeight     float64 `json:"min_height" toml:"min_height" validate:"gte=0"`
	PreserveRatio bool    `json:"preserve_ratio" toml:"preserve_ratio"`
}

// Validate reports ErrInvalidOptions for negative minimums.
func (o ResizeOptions) Validate() error {
	if o.MinWidth < 0 || o.MinHeight < 0 {
		return fmt.Errorf("%w: minimums must not be negative (got %gx%g)", ErrInvalidOptions, o.MinWidth, o.MinHeight)
	}
	return nil
}
