package scenefile

import (
	"math"

	"github.com/oati/spline-export/internal/scene"
)

// modifier adapts a ModifierDef to scene.Modifier and applies its
// deformation during shape evaluation.
type modifier struct {
	host *Host
	def  *ModifierDef
}

func (m *modifier) Name() string {
	return m.def.Kind
}

// channelName returns the scalar channel a modifier kind animates through,
// matching the channel names keyframe discovery probes.
func (m *modifier) channelName() string {
	if m.def.Kind == "twist" {
		return "angle"
	}
	return "amount"
}

func (m *modifier) ParamControllers() ([]scene.Controller, error) {
	if len(m.def.Keys) == 0 {
		return nil, nil
	}
	return []scene.Controller{&scalarController{keys: m.def.Keys, tpf: m.host.ticksPerFrame}}, nil
}

func (m *modifier) Channel(name string) (scene.Controller, bool) {
	if name != m.channelName() {
		return nil, false
	}
	if len(m.def.Keys) == 0 {
		return nil, false
	}
	return &scalarController{keys: m.def.Keys, tpf: m.host.ticksPerFrame}, true
}

// value evaluates the modifier's channel at the given frame.
func (m *modifier) value(frame int) float64 {
	return evalScalar(m.def.Keys, frame, m.def.Value)
}

// apply deforms the shape in place at the given frame. Handles are deformed
// with the same mapping as knots, which is the usual approximation for
// nonlinear deformers.
func (m *modifier) apply(shape *scene.Shape, frame int) {
	v := m.value(frame)
	if v == 0 {
		return
	}
	var deform func(scene.Point3) scene.Point3
	switch m.def.Kind {
	case "twist":
		deform = twistDeform(shape, v)
	case "push":
		deform = pushDeform(v)
	default:
		return
	}
	for si := range shape.Splines {
		for ki := range shape.Splines[si].Knots {
			k := &shape.Splines[si].Knots[ki]
			k.Point = deform(k.Point)
			k.InVec = deform(k.InVec)
			k.OutVec = deform(k.OutVec)
		}
	}
}

// twistDeform rotates points about Z, ramping from zero at the shape's lowest
// Z to the full angle (degrees) at its highest. Flat shapes rotate uniformly
// by the full angle.
func twistDeform(shape *scene.Shape, degrees float64) func(scene.Point3) scene.Point3 {
	zMin := math.Inf(1)
	zMax := math.Inf(-1)
	for _, sp := range shape.Splines {
		for _, k := range sp.Knots {
			zMin = math.Min(zMin, k.Point.Z)
			zMax = math.Max(zMax, k.Point.Z)
		}
	}
	extent := zMax - zMin

	return func(p scene.Point3) scene.Point3 {
		frac := 1.0
		if extent > 0 {
			frac = (p.Z - zMin) / extent
		}
		sin, cos := math.Sincos(degrees * frac * math.Pi / 180)
		return scene.Point3{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
			Z: p.Z,
		}
	}
}

// pushDeform moves points radially away from the local Z axis by amount.
// Points on the axis stay put.
func pushDeform(amount float64) func(scene.Point3) scene.Point3 {
	return func(p scene.Point3) scene.Point3 {
		r := math.Hypot(p.X, p.Y)
		if r == 0 {
			return p
		}
		scale := (r + amount) / r
		return scene.Point3{X: p.X * scale, Y: p.Y * scale, Z: p.Z}
	}
}
