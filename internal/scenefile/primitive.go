package scenefile

import (
	"fmt"
	"math"

	"github.com/oati/spline-export/internal/scene"
)

// kappa is the standard handle distance factor for approximating a quarter
// circle with one cubic Bezier segment.
const kappa = 0.5522847498307936

// baseShape generates the object's local-space geometry for its class, with
// the uniform size factor already applied. Planar primitives lie in the XY
// plane; the helix winds along Z.
func baseShape(def *ObjectDef, size float64) (*scene.Shape, error) {
	switch scene.Class(def.Class) {
	case scene.ClassSplineShape, scene.ClassLine:
		return explicitShape(def, size), nil
	case scene.ClassCircle:
		return ellipseShape(def.Radius*size, def.Radius*size), nil
	case scene.ClassEllipse:
		return ellipseShape(def.Length/2*size, def.Width/2*size), nil
	case scene.ClassArc:
		return arcShape(def.Radius*size, def.From, def.To), nil
	case scene.ClassRectangle:
		return rectangleShape(def.Length*size, def.Width*size), nil
	case scene.ClassNGon:
		return polygonShape(ngonPoints(def.Radius*size, def.Sides)), nil
	case scene.ClassStar:
		return polygonShape(starPoints(def.Radius*size, def.Radius2*size, def.PtCount)), nil
	case scene.ClassHelix:
		return helixShape(def.Radius*size, def.Radius2*size, def.Height*size, def.Turns), nil
	}
	return nil, fmt.Errorf("no geometry for class %s", def.Class)
}

func explicitShape(def *ObjectDef, size float64) *scene.Shape {
	shape := &scene.Shape{}
	for _, sp := range def.Splines {
		var knots []scene.Knot
		for _, kd := range sp.Knots {
			k := scene.Knot{Point: scalePoint(toPoint(kd.Point), size)}
			k.InVec = k.Point
			k.OutVec = k.Point
			if kd.In != nil {
				k.InVec = scalePoint(toPoint(*kd.In), size)
			}
			if kd.Out != nil {
				k.OutVec = scalePoint(toPoint(*kd.Out), size)
			}
			knots = append(knots, k)
		}
		shape.Splines = append(shape.Splines, scene.Spline{Knots: knots})
	}
	return shape
}

// ellipseShape builds the four-knot kappa construction with semi-axes rx, ry.
func ellipseShape(rx, ry float64) *scene.Shape {
	kx := kappa * rx
	ky := kappa * ry
	knots := []scene.Knot{
		{
			Point:  scene.Point3{X: rx},
			InVec:  scene.Point3{X: rx, Y: -ky},
			OutVec: scene.Point3{X: rx, Y: ky},
		},
		{
			Point:  scene.Point3{Y: ry},
			InVec:  scene.Point3{X: kx, Y: ry},
			OutVec: scene.Point3{X: -kx, Y: ry},
		},
		{
			Point:  scene.Point3{X: -rx},
			InVec:  scene.Point3{X: -rx, Y: ky},
			OutVec: scene.Point3{X: -rx, Y: -ky},
		},
		{
			Point:  scene.Point3{Y: -ry},
			InVec:  scene.Point3{X: -kx, Y: -ry},
			OutVec: scene.Point3{X: kx, Y: -ry},
		},
	}
	return &scene.Shape{Splines: []scene.Spline{{Knots: knots}}}
}

// arcShape approximates the arc from one angle to another (degrees,
// counter-clockwise) with one knot per at-most-90-degree span.
func arcShape(r, fromDeg, toDeg float64) *scene.Shape {
	from := fromDeg * math.Pi / 180
	to := toDeg * math.Pi / 180
	if to <= from {
		to += 2 * math.Pi
	}
	span := to - from
	segments := int(math.Ceil(span / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := span / float64(segments)
	// Handle length for a circular arc segment of the given sweep.
	handle := 4.0 / 3.0 * math.Tan(step/4) * r

	var knots []scene.Knot
	for i := 0; i <= segments; i++ {
		a := from + float64(i)*step
		sin, cos := math.Sincos(a)
		p := scene.Point3{X: r * cos, Y: r * sin}
		// Unit tangent, counter-clockwise.
		tangent := scene.Point3{X: -sin, Y: cos}
		knots = append(knots, scene.Knot{
			Point:  p,
			InVec:  scene.Point3{X: p.X - tangent.X*handle, Y: p.Y - tangent.Y*handle},
			OutVec: scene.Point3{X: p.X + tangent.X*handle, Y: p.Y + tangent.Y*handle},
		})
	}
	return &scene.Shape{Splines: []scene.Spline{{Knots: knots}}}
}

func rectangleShape(length, width float64) *scene.Shape {
	hx := width / 2
	hy := length / 2
	corners := []scene.Point3{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	}
	return polygonShape(corners)
}

func ngonPoints(r float64, sides int) []scene.Point3 {
	if sides < 3 {
		sides = 3
	}
	pts := make([]scene.Point3, 0, sides)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		sin, cos := math.Sincos(a)
		pts = append(pts, scene.Point3{X: r * cos, Y: r * sin})
	}
	return pts
}

func starPoints(outer, inner float64, points int) []scene.Point3 {
	if points < 3 {
		points = 3
	}
	pts := make([]scene.Point3, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi * float64(i) / float64(points)
		sin, cos := math.Sincos(a)
		pts = append(pts, scene.Point3{X: r * cos, Y: r * sin})
	}
	return pts
}

// polygonShape turns corner points into a linear spline: handles sit on the
// knots.
func polygonShape(pts []scene.Point3) *scene.Shape {
	knots := make([]scene.Knot, 0, len(pts))
	for _, p := range pts {
		knots = append(knots, scene.Knot{Point: p, InVec: p, OutVec: p})
	}
	return &scene.Shape{Splines: []scene.Spline{{Knots: knots}}}
}

// helixShape samples the spiral at four knots per turn and derives smooth
// tangent handles from neighboring samples.
func helixShape(r1, r2, height, turns float64) *scene.Shape {
	if turns <= 0 {
		turns = 1
	}
	n := int(turns*4) + 1
	if n < 2 {
		n = 2
	}
	pts := make([]scene.Point3, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		a := 2 * math.Pi * turns * t
		r := r1 + (r2-r1)*t
		sin, cos := math.Sincos(a)
		pts[i] = scene.Point3{X: r * cos, Y: r * sin, Z: height * t}
	}

	knots := make([]scene.Knot, n)
	for i, p := range pts {
		prev := pts[max(i-1, 0)]
		next := pts[min(i+1, n-1)]
		// Catmull-Rom style tangent, scaled for cubic handles.
		tx := (next.X - prev.X) / 6
		ty := (next.Y - prev.Y) / 6
		tz := (next.Z - prev.Z) / 6
		knots[i] = scene.Knot{
			Point:  p,
			InVec:  scene.Point3{X: p.X - tx, Y: p.Y - ty, Z: p.Z - tz},
			OutVec: scene.Point3{X: p.X + tx, Y: p.Y + ty, Z: p.Z + tz},
		}
	}
	return &scene.Shape{Splines: []scene.Spline{{Knots: knots}}}
}

func toPoint(v [3]float64) scene.Point3 {
	return scene.Point3{X: v[0], Y: v[1], Z: v[2]}
}

func scalePoint(p scene.Point3, s float64) scene.Point3 {
	return scene.Point3{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}
