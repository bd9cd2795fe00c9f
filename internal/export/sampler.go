package export

import (
	"fmt"
	"io"

	"github.com/oati/spline-export/internal/scene"
)

// toTarget remaps a world-space point from the host's Z-up convention to the
// player's right-handed Y-up convention and rounds to output precision.
func toTarget(p scene.Point3) Vec3 {
	return Vec3{
		X: round6(p.X),
		Y: round6(p.Z),
		Z: round6(-p.Y),
	}
}

// SampleFrame reads the object's world-space curve geometry at the host's
// current evaluation time. The full Bezier read is attempted first; if it
// fails for any reason the degraded knot-only read runs instead, and if that
// also fails the frame contributes no segments. The caller's object is never
// permanently altered: conversions happen on a transient snapshot that is
// deleted on every exit path.
func SampleFrame(h scene.Host, obj scene.Object, frame int, w io.Writer) []CurveSegment {
	segs, err := sampleBezier(h, obj)
	if err == nil {
		return segs
	}
	fmt.Fprintf(w, "  Warning: Could not extract Bezier data from %s at frame %d: %v\n", obj.Name(), frame, err)
	return sampleKnotsOnly(obj)
}

func sampleBezier(h scene.Host, obj scene.Object) ([]CurveSegment, error) {
	work := obj
	if obj.Class() != scene.ClassSplineShape {
		snap, err := h.Snapshot(obj)
		if err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		// Snapshot deletion failures are tolerated; leaking a transient
		// object is better than losing the frame.
		defer h.Delete(snap)
		if snap.Class() != scene.ClassSplineShape {
			if err := h.ConvertToSplineShape(snap); err != nil {
				return nil, fmt.Errorf("convert to spline shape: %w", err)
			}
		}
		work = snap
	}

	shape, err := work.Shape()
	if err != nil {
		return nil, err
	}

	tm := work.Transform()
	var segs []CurveSegment
	for i, sp := range shape.Splines {
		points := make([]CurvePoint, 0, len(sp.Knots))
		for _, k := range sp.Knots {
			points = append(points, CurvePoint{
				Knot:      toTarget(tm.MulPoint(k.Point)),
				InHandle:  toTarget(tm.MulPoint(k.InVec)),
				OutHandle: toTarget(tm.MulPoint(k.OutVec)),
			})
		}
		if len(points) > 0 {
			segs = append(segs, CurveSegment{SplineIndex: i + 1, Points: points})
		}
	}
	return segs, nil
}

// sampleKnotsOnly is the degraded path: knot positions with both handles set
// to the knot itself, flattened into a single segment.
func sampleKnotsOnly(obj scene.Object) []CurveSegment {
	knots, err := obj.KnotPoints()
	if err != nil || len(knots) == 0 {
		return nil
	}
	tm := obj.Transform()
	points := make([]CurvePoint, 0, len(knots))
	for _, k := range knots {
		p := toTarget(tm.MulPoint(k))
		points = append(points, CurvePoint{Knot: p, InHandle: p, OutHandle: p})
	}
	return []CurveSegment{{SplineIndex: 1, Points: points}}
}
