package imgedit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateCoordinateZeroAngle(t *testing.T) {
	d := Delta{X: 20, Y: -7}
	assert.Equal(t, d, RotateCoordinate(d, 0))
}

func TestRotateCoordinateQuarterTurn(t *testing.T) {
	// An image turned 90deg clockwise: dragging right on screen moves along
	// the image's local -y axis.
	r := RotateCoordinate(Delta{X: 10, Y: 0}, math.Pi/2)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, -10, r.Y, 1e-9)

	r = RotateCoordinate(Delta{X: 0, Y: 10}, math.Pi/2)
	assert.InDelta(t, 10, r.X, 1e-9)
	assert.InDelta(t, 0, r.Y, 1e-9)
}

func TestRotateCoordinateHalfTurn(t *testing.T) {
	r := RotateCoordinate(Delta{X: 3, Y: 4}, math.Pi)
	assert.InDelta(t, -3, r.X, 1e-9)
	assert.InDelta(t, -4, r.Y, 1e-9)
}

func TestRotateCoordinateMatchesFormula(t *testing.T) {
	for _, angle := range []float64{0.1, 0.7, -1.3, 2.5, 4} {
		d := Delta{X: 12.5, Y: -3.25}
		r := RotateCoordinate(d, angle)
		assert.InDelta(t, d.X*math.Cos(angle)+d.Y*math.Sin(angle), r.X, 1e-9)
		assert.InDelta(t, d.Y*math.Cos(angle)-d.X*math.Sin(angle), r.Y, 1e-9)
	}
}

func TestRotateCoordinateRoundTrip(t *testing.T) {
	deltas := []Delta{{0, 0}, {1, 0}, {0, 1}, {-35.5, 12}, {1e4, -2e3}}
	for _, d := range deltas {
		for angle := -2 * math.Pi; angle <= 2*math.Pi; angle += 0.3 {
			r := RotateCoordinate(RotateCoordinate(d, angle), -angle)
			assert.InDelta(t, d.X, r.X, 1e-6, "angle %v", angle)
			assert.InDelta(t, d.Y, r.Y, 1e-6, "angle %v", angle)
		}
	}
}

func TestRotateCoordinateKeepsLength(t *testing.T) {
	d := Delta{X: 6, Y: 8}
	r := RotateCoordinate(d, 1.1)
	assert.InDelta(t, 10, math.Hypot(r.X, r.Y), 1e-9)
}
