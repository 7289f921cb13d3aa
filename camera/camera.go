// Package camera provides an orbit camera for the 3D particle view.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxPitch keeps the view vector off the vertical axis so the up vector
// stays well defined.
const maxPitch = math.Pi/2 - 0.05

// Orbit circles a target point at a controllable distance and angle.
// Angles are in radians; Pitch is measured from the horizontal plane.
type Orbit struct {
	Target   r3.Vec
	Distance float64
	Yaw      float64
	Pitch    float64

	// Distance constraints
	MinDistance, MaxDistance float64

	// AutoRotateSpeed spins the camera around the target, in radians
	// per second. Zero disables auto-rotation.
	AutoRotateSpeed float64

	homeDistance float64
	homeYaw      float64
	homePitch    float64
}

// New creates an orbit camera looking at target from the given distance.
func New(target r3.Vec, distance float64) *Orbit {
	o := &Orbit{
		Target:      target,
		Distance:    distance,
		Yaw:         0.6,
		Pitch:       0.35,
		MinDistance: distance * 0.25,
		MaxDistance: distance * 4,
	}
	o.homeDistance = o.Distance
	o.homeYaw = o.Yaw
	o.homePitch = o.Pitch
	return o
}

// Rotate adjusts yaw and pitch by the given deltas. Pitch is clamped
// short of the poles.
func (o *Orbit) Rotate(dyaw, dpitch float64) {
	o.Yaw = math.Mod(o.Yaw+dyaw, 2*math.Pi)
	o.Pitch = clamp(o.Pitch+dpitch, -maxPitch, maxPitch)
}

// Dolly moves the camera toward (negative delta) or away from the target,
// clamped to the distance constraints.
func (o *Orbit) Dolly(delta float64) {
	o.Distance = clamp(o.Distance+delta, o.MinDistance, o.MaxDistance)
}

// Update advances auto-rotation by dt seconds.
func (o *Orbit) Update(dt float64) {
	if o.AutoRotateSpeed != 0 {
		o.Rotate(o.AutoRotateSpeed*dt, 0)
	}
}

// Position returns the camera position in world space, Y-up.
func (o *Orbit) Position() r3.Vec {
	cp := math.Cos(o.Pitch)
	return r3.Vec{
		X: o.Target.X + o.Distance*cp*math.Sin(o.Yaw),
		Y: o.Target.Y + o.Distance*math.Sin(o.Pitch),
		Z: o.Target.Z + o.Distance*cp*math.Cos(o.Yaw),
	}
}

// Reset returns the camera to its initial framing.
func (o *Orbit) Reset() {
	o.Distance = o.homeDistance
	o.Yaw = o.homeYaw
	o.Pitch = o.homePitch
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
