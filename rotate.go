package imgedit

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// RotateCoordinate re-expresses an editor-space delta in the local,
// unrotated frame of an image that is displayed rotated by angle radians.
//
// Angles follow the screen convention used by CSS rotate(): the y axis points
// down and a positive angle turns the image clockwise. The delta is therefore
// rotated by -angle:
//
//	dx' = dx*cos(angle) + dy*sin(angle)
//	dy' = dy*cos(angle) - dx*sin(angle)
//
// RotateCoordinate(RotateCoordinate(d, a), -a) returns d.
func RotateCoordinate(d Delta, angle float64) Delta {
	if angle == 0 {
		return d
	}
	v := r2.NewRotation(-angle, r2.Vec{}).Rotate(r2.Vec{X: d.X, Y: d.Y})
	return Delta{X: v.X, Y: v.Y}
}
