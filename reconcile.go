package imgedit

import (
	"math"
)

// DoubleCheckResize aligns info with the size the image actually rendered at.
// A container can clamp a resized image (usually its width), so when the
// ratio has to be preserved and the rendered size differs from the requested
// one, the side that was clamped is trusted and the other side is derived
// from it. Sizes are compared in whole pixels.
func DoubleCheckResize(info EditInfo, preserveRatio bool, actualWidth, actualHeight float64) EditInfo {
	ratio := 0.0
	if info.Height > 0 {
		ratio = info.Width / info.Height
	}

	width, height := math.Trunc(info.Width), math.Trunc(info.Height)
	truncWidth, truncHeight := math.Trunc(actualWidth), math.Trunc(actualHeight)

	info.Width = actualWidth
	info.Height = actualHeight

	if preserveRatio && ratio > 0 && (width != truncWidth || height != truncHeight) {
		if truncWidth < width {
			info.Height = actualWidth / ratio
		} else {
			info.Width = actualHeight * ratio
		}
	}
	return info
}
