package imgedit

import (
	"fmt"
)

// Session is the working state of one image edit. It owns the edit info and
// commits the values returned by the drag handlers and the reconciler.
//
// A Session is not safe for concurrent use.
type Session struct {
	EditInfo EditInfo      `json:"edit_info"`
	Options  ResizeOptions `json:"options"`

	// Active gesture, if any.
	Handle *Handle `json:"handle,omitempty"`
	Base   *Size   `json:"base,omitempty"`

	resizer Resizer
}

// NewSession starts an edit session over info.
func NewSession(info EditInfo, opts ResizeOptions) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Session{EditInfo: info, Options: opts}, nil
}

// Resizing reports whether a resize gesture is in progress.
func (s *Session) Resizing() bool {
	return s.Handle != nil && s.Base != nil
}

func (s *Session) dragContext() DragContext {
	ctx := DragContext{EditInfo: s.EditInfo, Options: s.Options}
	if s.Handle != nil {
		ctx.Handle = *s.Handle
	}
	return ctx
}

// StartResize begins a resize gesture on h and returns the base size
// snapshot the gesture will resize from. A gesture already in progress is
// replaced.
func (s *Session) StartResize(h Handle) (Size, error) {
	if !h.X.Valid() || !h.Y.Valid() {
		return Size{}, fmt.Errorf("%w: %v", ErrInvalidHandle, h)
	}
	if !h.Draggable() {
		return Size{}, fmt.Errorf("%w: %v", ErrNotDraggable, h)
	}
	s.Handle = &h
	base := s.resizer.OnDragStart(s.dragContext())
	s.Base = &base
	return base, nil
}

// Drag applies the delta accumulated since StartResize. ratioOverride forces
// the aspect ratio to be kept on corner handles.
func (s *Session) Drag(d Delta, ratioOverride bool) (bool, error) {
	if !s.Resizing() {
		return false, ErrNoActiveDrag
	}
	info, changed := s.resizer.OnDragging(s.dragContext(), DragEvent{Shift: ratioOverride}, *s.Base, d.X, d.Y)
	s.EditInfo = info
	return changed, nil
}

// ReportLayout reconciles the edit info with the size the image was actually
// rendered at. A non-positive actual size means nothing was rendered and is
// ignored.
func (s *Session) ReportLayout(actualWidth, actualHeight float64) {
	if actualWidth <= 0 || actualHeight <= 0 {
		return
	}
	s.EditInfo = DoubleCheckResize(s.EditInfo, s.Options.PreserveRatio, actualWidth, actualHeight)
}

// EndResize reconciles against the rendered size and ends the gesture.
func (s *Session) EndResize(actualWidth, actualHeight float64) error {
	if !s.Resizing() {
		return ErrNoActiveDrag
	}
	s.ReportLayout(actualWidth, actualHeight)
	s.Handle, s.Base = nil, nil
	return nil
}

// CancelResize abandons the gesture and restores the size it started from.
func (s *Session) CancelResize() error {
	if !s.Resizing() {
		return ErrNoActiveDrag
	}
	s.EditInfo = s.EditInfo.WithSize(*s.Base)
	s.Handle, s.Base = nil, nil
	return nil
}

// Rotate sets the rotation angle of the image, in radians.
func (s *Session) Rotate(angle float64) {
	s.EditInfo.Angle = angle
}
