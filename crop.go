package imgedit

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidCrop = errors.New("invalid crop")
	ErrInvalidSize = errors.New("invalid size")
)

// ParseSize parses a "WxH" size. Either side may be omitted, "x150" is a
// size with a zero width.
func ParseSize(q string) (Size, error) {
	if q == "" {
		return Size{}, nil
	}

	wh := strings.Split(q, "x")
	if len(wh) != 2 {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, q)
	}

	var sz Size
	var err error
	if wh[0] != "" {
		if sz.Width, err = strconv.ParseFloat(wh[0], 64); err != nil {
			return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, q)
		}
	}
	if wh[1] != "" {
		if sz.Height, err = strconv.ParseFloat(wh[1], 64); err != nil {
			return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, q)
		}
	}
	if sz.Width < 0 || sz.Height < 0 {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, q)
	}
	return sz, nil
}

// CropRect returns the part of an image with the given natural size that
// the crop percentages leave visible, in whole pixels.
func (e EditInfo) CropRect(natural Size) (image.Rectangle, error) {
	for _, p := range []float64{e.LeftPercent, e.RightPercent, e.TopPercent, e.BottomPercent} {
		if p < 0 || p > 1 {
			return image.Rectangle{}, fmt.Errorf("%w: percentage %g out of range", ErrInvalidCrop, p)
		}
	}

	x0 := round(e.LeftPercent * natural.Width)
	y0 := round(e.TopPercent * natural.Height)
	x1 := round((1 - e.RightPercent) * natural.Width)
	y1 := round((1 - e.BottomPercent) * natural.Height)

	if x1 < x0 || y1 < y0 {
		return image.Rectangle{}, fmt.Errorf("%w: crop sides overlap", ErrInvalidCrop)
	}
	return image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}, nil
}

func round(in float64) int {
	if in < 0 {
		return int(math.Ceil(in - 0.5))
	}
	return int(math.Floor(in + 0.5))
}
