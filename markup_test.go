package imgedit

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var testHTMLOptions = HTMLOptions{BorderColor: "#DB626C"}

type renderedHandle struct {
	x, y, style string
}

// parseHandles returns the interactive handle elements found in markup.
func parseHandles(t *testing.T, markup template.HTML) []renderedHandle {
	doc, err := html.Parse(strings.NewReader(string(markup)))
	require.NoError(t, err)

	var found []renderedHandle
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			attrs := map[string]string{}
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			if attrs["class"] == ResizeHandleClass {
				found = append(found, renderedHandle{attrs["data-x"], attrs["data-y"], attrs["style"]})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func TestHandleLayoutsPartition(t *testing.T) {
	corners := HandleLayouts(CornerHandle)
	sides := HandleLayouts(SideHandle)
	outline := HandleLayouts(OutlineHandle)
	require.Len(t, corners, 4)
	require.Len(t, sides, 4)
	require.Len(t, outline, 1)

	seen := map[Handle]bool{}
	for _, l := range append(append(corners, sides...), outline...) {
		assert.False(t, seen[l.Handle])
		seen[l.Handle] = true
	}
	assert.Len(t, seen, 9)
	assert.Equal(t, Handle{HCenter, VCenter}, outline[0].Handle)
}

func TestHandleLayoutPlacement(t *testing.T) {
	l := Handle{West, North}.Layout()
	assert.Equal(t, "left", l.HorizontalSide)
	assert.Equal(t, "0px", l.HorizontalValue)
	assert.Equal(t, "top", l.VerticalSide)
	assert.Equal(t, "0px", l.VerticalValue)
	assert.Equal(t, "nw-resize", l.Cursor)
	assert.Equal(t, ResizeHandleSize, l.Size)
	assert.Equal(t, ResizeHandleMargin, l.Margin)

	l = Handle{HCenter, South}.Layout()
	assert.Equal(t, "right", l.HorizontalSide)
	assert.Equal(t, "50%", l.HorizontalValue)
	assert.Equal(t, "bottom", l.VerticalSide)
	assert.Equal(t, "0px", l.VerticalValue)
	assert.Equal(t, "s-resize", l.Cursor)

	l = Handle{East, VCenter}.Layout()
	assert.Equal(t, "right", l.HorizontalSide)
	assert.Equal(t, "0px", l.HorizontalValue)
	assert.Equal(t, "50%", l.VerticalValue)
}

func TestCornerHandleMarkup(t *testing.T) {
	markup, err := CornerHandleMarkup(testHTMLOptions)
	require.NoError(t, err)

	handles := parseHandles(t, markup)
	require.Len(t, handles, 4)

	var got []string
	for _, h := range handles {
		got = append(got, h.x+"/"+h.y)
		assert.Contains(t, h.style, "background-color:#db626c")
		assert.Contains(t, h.style, "width:7px")
		assert.Contains(t, h.style, "-3px")
	}
	assert.Equal(t, []string{"w/s", "w/n", "e/s", "e/n"}, got)
	assert.Contains(t, handles[1].style, "cursor:nw-resize")

	// The outline is rendered on its own.
	assert.NotContains(t, string(markup), "pointer-events:none")
}

func TestSideHandleMarkup(t *testing.T) {
	markup, err := SideHandleMarkup(testHTMLOptions)
	require.NoError(t, err)

	handles := parseHandles(t, markup)
	require.Len(t, handles, 4)

	var got []string
	for _, h := range handles {
		got = append(got, h.x+"/"+h.y)
	}
	assert.Equal(t, []string{"w/", "/s", "/n", "e/"}, got)
	assert.Contains(t, string(markup), "right:50%")
	assert.Contains(t, string(markup), "bottom:50%")
}

func TestOutlineMarkup(t *testing.T) {
	markup, err := OutlineMarkup(HTMLOptions{BorderColor: "Blue"})
	require.NoError(t, err)
	assert.Empty(t, parseHandles(t, markup))
	assert.Contains(t, string(markup), "border:solid 1px blue")
	assert.Contains(t, string(markup), "pointer-events:none")

	m, err := Markup(OutlineHandle, HTMLOptions{BorderColor: "Blue"})
	require.NoError(t, err)
	assert.Equal(t, markup, m)
}

func TestMarkupRejectsBadColor(t *testing.T) {
	for _, c := range []string{"", "red;position:fixed", "#zzzzzz", "url(x)", `"><script>`} {
		_, err := CornerHandleMarkup(HTMLOptions{BorderColor: c})
		assert.ErrorIs(t, err, ErrInvalidBorderColor, c)
		_, err = OutlineMarkup(HTMLOptions{BorderColor: c})
		assert.ErrorIs(t, err, ErrInvalidBorderColor, c)
	}
}

func TestNormalizeColor(t *testing.T) {
	c, err := NormalizeColor("#ABC")
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", c)

	c, err = NormalizeColor(" #DB626C ")
	require.NoError(t, err)
	assert.Equal(t, "#db626c", c)

	c, err = NormalizeColor("Transparent")
	require.NoError(t, err)
	assert.Equal(t, "transparent", c)
}
