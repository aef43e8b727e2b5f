package imgedit

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	ResizeHandleSize   = 7
	ResizeHandleMargin = 3

	// ResizeHandleClass is set on every interactive handle element.
	ResizeHandleClass = "imgedit-resize-handle"
)

var namedColorRe = regexp.MustCompile(`^[a-zA-Z]+$`)

// HTMLOptions are the host supplied styling options of the handle markup.
type HTMLOptions struct {
	BorderColor string `json:"border_color" toml:"border_color"`
}

// HandleLayout describes where and how one handle is drawn. The handle is
// anchored on HorizontalSide/VerticalSide of the image and pulled outwards by
// Margin so that it straddles the image boundary.
type HandleLayout struct {
	Handle          Handle `json:"handle"`
	X               string `json:"x"`
	Y               string `json:"y"`
	HorizontalSide  string `json:"horizontal_side"`
	HorizontalValue string `json:"horizontal_value"`
	VerticalSide    string `json:"vertical_side"`
	VerticalValue   string `json:"vertical_value"`
	Cursor          string `json:"cursor,omitempty"`
	Size            int    `json:"size"`
	Margin          int    `json:"margin"`
}

// Layout computes the placement of h.
func (h Handle) Layout() HandleLayout {
	l := HandleLayout{
		Handle:          h,
		X:               h.X.Code(),
		Y:               h.Y.Code(),
		HorizontalSide:  "right",
		HorizontalValue: "0px",
		VerticalSide:    "bottom",
		VerticalValue:   "0px",
		Cursor:          h.Cursor(),
		Size:            ResizeHandleSize,
		Margin:          ResizeHandleMargin,
	}
	if h.X == West {
		l.HorizontalSide = "left"
	}
	if h.X == HCenter {
		l.HorizontalValue = "50%"
	}
	if h.Y == North {
		l.VerticalSide = "top"
	}
	if h.Y == VCenter {
		l.VerticalValue = "50%"
	}
	return l
}

// HandleLayouts returns the layouts of all grid positions of the given kind,
// in AllHandles order.
func HandleLayouts(kind HandleKind) []HandleLayout {
	var ls []HandleLayout
	for _, h := range AllHandles() {
		if h.Kind() == kind {
			ls = append(ls, h.Layout())
		}
	}
	return ls
}

func (l HandleLayout) anchorStyle() string {
	return fmt.Sprintf("position:absolute;%s:%s;%s:%s",
		l.HorizontalSide, l.HorizontalValue, l.VerticalSide, l.VerticalValue)
}

func (l HandleLayout) handleStyle(color string) string {
	return fmt.Sprintf("position:relative;width:%dpx;height:%dpx;background-color:%s;cursor:%s;%s:-%dpx;%s:-%dpx",
		l.Size, l.Size, color, l.Cursor, l.VerticalSide, l.Margin, l.HorizontalSide, l.Margin)
}

var handlesTmpl = template.Must(template.New("handles").Parse(
	`{{range .}}<div style="{{.Anchor}}"><div class="{{.Class}}" data-x="{{.X}}" data-y="{{.Y}}" style="{{.Style}}"></div></div>{{end}}`,
))

var outlineTmpl = template.Must(template.New("outline").Parse(
	`<div style="{{.}}"></div>`,
))

type handleView struct {
	Anchor template.CSS
	Class  string
	X, Y   string
	Style  template.CSS
}

// CornerHandleMarkup renders the four corner handles.
func CornerHandleMarkup(opts HTMLOptions) (template.HTML, error) {
	return handleMarkup(CornerHandle, opts)
}

// SideHandleMarkup renders the four side handles.
func SideHandleMarkup(opts HTMLOptions) (template.HTML, error) {
	return handleMarkup(SideHandle, opts)
}

// OutlineMarkup renders the non-interactive border drawn around the image in
// place of the center/center position.
func OutlineMarkup(opts HTMLOptions) (template.HTML, error) {
	color, err := NormalizeColor(opts.BorderColor)
	if err != nil {
		return "", err
	}
	style := template.CSS(fmt.Sprintf(
		"position:absolute;left:0;right:0;top:0;bottom:0;border:solid 1px %s;pointer-events:none;", color))

	var buf bytes.Buffer
	if err := outlineTmpl.Execute(&buf, style); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Markup renders the markup of the given kind.
func Markup(kind HandleKind, opts HTMLOptions) (template.HTML, error) {
	if kind == OutlineHandle {
		return OutlineMarkup(opts)
	}
	return handleMarkup(kind, opts)
}

func handleMarkup(kind HandleKind, opts HTMLOptions) (template.HTML, error) {
	color, err := NormalizeColor(opts.BorderColor)
	if err != nil {
		return "", err
	}

	layouts := HandleLayouts(kind)
	views := make([]handleView, 0, len(layouts))
	for _, l := range layouts {
		views = append(views, handleView{
			Anchor: template.CSS(l.anchorStyle()),
			Class:  ResizeHandleClass,
			X:      l.X,
			Y:      l.Y,
			Style:  template.CSS(l.handleStyle(color)),
		})
	}

	var buf bytes.Buffer
	if err := handlesTmpl.Execute(&buf, views); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// NormalizeColor validates a css colour token. Hex colours ("#abc",
// "#aabbcc") are returned in lowercase six digit form, named colours are
// returned lowercased. Anything else is rejected since the value ends up
// inside a style attribute.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidBorderColor, s)
		}
		return c.Hex(), nil
	}
	if namedColorRe.MatchString(s) {
		return strings.ToLower(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBorderColor, s)
}
