package imgedit

import (
	"fmt"
)

// HorizontalTag is the horizontal axis position of a handle. HCenter means
// the handle does not constrain the horizontal axis.
type HorizontalTag int

const (
	West HorizontalTag = iota
	HCenter
	East
)

// VerticalTag is the vertical axis position of a handle. VCenter means the
// handle does not constrain the vertical axis.
type VerticalTag int

const (
	South VerticalTag = iota
	VCenter
	North
)

var (
	horizontalTags = []HorizontalTag{West, HCenter, East}
	verticalTags   = []VerticalTag{South, VCenter, North}
)

// Code returns the single letter code of the tag, "" for HCenter.
func (x HorizontalTag) Code() string {
	switch x {
	case West:
		return "w"
	case East:
		return "e"
	default:
		return ""
	}
}

func (x HorizontalTag) Valid() bool {
	return x >= West && x <= East
}

// Code returns the single letter code of the tag, "" for VCenter.
func (y VerticalTag) Code() string {
	switch y {
	case South:
		return "s"
	case North:
		return "n"
	default:
		return ""
	}
}

func (y VerticalTag) Valid() bool {
	return y >= South && y <= North
}

// HandleKind classifies a grid position.
type HandleKind int

const (
	CornerHandle  HandleKind = iota // both axes constrained
	SideHandle                      // exactly one axis constrained
	OutlineHandle                   // center/center, the non-interactive border
)

func (k HandleKind) String() string {
	switch k {
	case CornerHandle:
		return "corner"
	case SideHandle:
		return "side"
	case OutlineHandle:
		return "outline"
	default:
		return fmt.Sprintf("HandleKind(%d)", int(k))
	}
}

// ParseHandleKind parses "corner", "side" or "outline".
func ParseHandleKind(s string) (HandleKind, error) {
	switch s {
	case "corner":
		return CornerHandle, nil
	case "side":
		return SideHandle, nil
	case "outline":
		return OutlineHandle, nil
	}
	return 0, fmt.Errorf("unknown handle kind %q", s)
}

// Handle is one of the nine positions of the 3x3 grid around an image.
type Handle struct {
	X HorizontalTag
	Y VerticalTag
}

// Kind reports whether h is a corner, a side or the center outline.
func (h Handle) Kind() HandleKind {
	hc, vc := h.X == HCenter, h.Y == VCenter
	switch {
	case hc && vc:
		return OutlineHandle
	case hc != vc:
		return SideHandle
	default:
		return CornerHandle
	}
}

// Draggable is false only for the center/center position.
func (h Handle) Draggable() bool {
	return h.Kind() != OutlineHandle
}

// Direction is the vertical code followed by the horizontal code, ie. "nw",
// "s" or "e". It is empty for the outline.
func (h Handle) Direction() string {
	return h.Y.Code() + h.X.Code()
}

// Cursor returns the css cursor of the handle, ie. "nw-resize".
func (h Handle) Cursor() string {
	if !h.Draggable() {
		return ""
	}
	return h.Direction() + "-resize"
}

func (h Handle) String() string {
	if !h.Draggable() {
		return "center"
	}
	return h.Direction()
}

func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Handle) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// AllHandles returns the nine grid positions, horizontal tags outermost in
// West, HCenter, East order and vertical tags in South, VCenter, North order.
func AllHandles() []Handle {
	hs := make([]Handle, 0, len(horizontalTags)*len(verticalTags))
	for _, x := range horizontalTags {
		for _, y := range verticalTags {
			hs = append(hs, Handle{X: x, Y: y})
		}
	}
	return hs
}

// ParseHandle builds a Handle from the data-x/data-y codes ("w", "", "e" and
// "s", "", "n").
func ParseHandle(x, y string) (Handle, error) {
	var h Handle
	switch x {
	case "w":
		h.X = West
	case "":
		h.X = HCenter
	case "e":
		h.X = East
	default:
		return Handle{}, fmt.Errorf("%w: horizontal code %q", ErrInvalidHandle, x)
	}
	switch y {
	case "s":
		h.Y = South
	case "":
		h.Y = VCenter
	case "n":
		h.Y = North
	default:
		return Handle{}, fmt.Errorf("%w: vertical code %q", ErrInvalidHandle, y)
	}
	return h, nil
}

// ParseDirection parses a direction such as "nw", "e" or "center".
func ParseDirection(dir string) (Handle, error) {
	if dir == "center" || dir == "" {
		return Handle{X: HCenter, Y: VCenter}, nil
	}
	var y, x string
	switch dir[0] {
	case 'n', 's':
		y, x = dir[:1], dir[1:]
	default:
		x = dir
	}
	h, err := ParseHandle(x, y)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: direction %q", ErrInvalidHandle, dir)
	}
	return h, nil
}
