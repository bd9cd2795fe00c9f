// Package scene defines the narrow capability surface the exporter needs
// from a 3D host: object enumeration, evaluation-time control, transform
// and controller reads, and transient duplicates. The export pipeline only
// ever talks to these interfaces, so any host (or a test fake) can sit
// behind them.
package scene

import "errors"

// Class identifies the base-object type of a scene object.
type Class string

const (
	ClassSplineShape Class = "SplineShape"
	ClassLine        Class = "Line"
	ClassCircle      Class = "Circle"
	ClassArc         Class = "Arc"
	ClassRectangle   Class = "Rectangle"
	ClassEllipse     Class = "Ellipse"
	ClassNGon        Class = "NGon"
	ClassStar        Class = "Star"
	ClassHelix       Class = "Helix"
)

// ErrNotSplineShape is returned by Object.Shape when the base object has not
// been collapsed to the canonical spline-shape class. Callers are expected to
// snapshot and convert first.
var ErrNotSplineShape = errors.New("base object is not a spline shape")

// Key is a single explicit animation key. Time is in host ticks; divide by
// Host.TicksPerFrame to get a frame index.
type Key struct {
	Time int
}

// Controller is an animation controller slot. Keys may fail for controllers
// that do not expose an explicit key list; such failures are not fatal to
// keyframe discovery.
type Controller interface {
	Keys() ([]Key, error)
}

// Modifier is one entry in an object's modifier stack.
type Modifier interface {
	Name() string

	// ParamControllers returns the controllers driving the modifier's
	// parameter block, in parameter order. Entries may be nil for
	// unanimated parameters.
	ParamControllers() ([]Controller, error)

	// Channel looks up a named scalar channel (such as "angle", "twist"
	// or "amount") and reports whether the modifier has it.
	Channel(name string) (Controller, bool)
}

// Knot is one control point of a spline: the knot position plus the inbound
// and outbound Bezier tangent points, all in object-local space.
type Knot struct {
	Point  Point3
	InVec  Point3
	OutVec Point3
}

// Spline is one curve inside a shape.
type Spline struct {
	Knots []Knot
}

// Shape is the evaluated spline geometry of an object at the host's current
// evaluation time.
type Shape struct {
	Splines []Spline
}

// Object is a live scene object. Geometry and transform reads reflect the
// host's current evaluation time.
type Object interface {
	Name() string
	Class() Class
	Transform() Matrix3

	// Controller slots inspected by keyframe discovery. Any of these may
	// be nil when the slot is not animated.
	TransformController() Controller
	PositionController() Controller
	RotationController() Controller
	ScaleController() Controller
	BaseObjectController() Controller

	Modifiers() []Modifier

	// Shape returns full Bezier geometry. It fails with ErrNotSplineShape
	// until the object is collapsed to the canonical class, and may fail
	// for other host-side reasons.
	Shape() (*Shape, error)

	// KnotPoints is the degraded read: knot positions only, in local
	// space, flattened across all splines in the shape.
	KnotPoints() ([]Point3, error)
}

// Host is the scripting-runtime surface the exporter drives.
type Host interface {
	// Objects enumerates every object in the scene.
	Objects() []Object

	// AnimationRange returns the active frame range, inclusive.
	AnimationRange() (start, end int)

	FrameRate() float64
	TicksPerFrame() int

	// SetTime moves the host's evaluation time to the given frame. All
	// subsequent transform and geometry reads see the scene at that frame.
	SetTime(frame int)

	// Snapshot creates a transient duplicate of the object, baked at the
	// current evaluation time. The caller owns the duplicate and must
	// Delete it.
	Snapshot(o Object) (Object, error)

	// ConvertToSplineShape collapses the object's base class to
	// ClassSplineShape in place.
	ConvertToSplineShape(o Object) error

	// Delete removes an object from the scene. Only ever called on
	// snapshots created by this run.
	Delete(o Object) error
}
