package scenefile

import (
	"fmt"

	"github.com/oati/spline-export/internal/scene"
)

// Host is the file-backed implementation of scene.Host. It is not safe for
// concurrent use, matching the single-threaded scripting runtime it stands
// in for.
type Host struct {
	settings      Settings
	ticksPerFrame int
	objects       []*object
	time          int
	snapshots     int
}

func (h *Host) Objects() []scene.Object {
	out := make([]scene.Object, len(h.objects))
	for i, o := range h.objects {
		out[i] = o
	}
	return out
}

func (h *Host) AnimationRange() (int, int) {
	return h.settings.FrameStart, h.settings.FrameEnd
}

func (h *Host) FrameRate() float64 {
	return h.settings.FrameRate
}

func (h *Host) TicksPerFrame() int {
	return h.ticksPerFrame
}

func (h *Host) SetTime(frame int) {
	h.time = frame
}

// Snapshot bakes the object's geometry and transform at the current
// evaluation time into a transient object the caller must Delete.
func (h *Host) Snapshot(o scene.Object) (scene.Object, error) {
	obj, ok := o.(*object)
	if !ok {
		return nil, fmt.Errorf("snapshot: foreign object %s", o.Name())
	}
	shape, err := obj.evaluate(h.time)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", obj.Name(), err)
	}
	h.snapshots++
	return &object{
		host:           h,
		def:            obj.def,
		class:          obj.class,
		baked:          shape,
		bakedTransform: obj.Transform(),
		transient:      true,
	}, nil
}

func (h *Host) ConvertToSplineShape(o scene.Object) error {
	obj, ok := o.(*object)
	if !ok {
		return fmt.Errorf("convert: foreign object %s", o.Name())
	}
	obj.collapsed = true
	return nil
}

func (h *Host) Delete(o scene.Object) error {
	obj, ok := o.(*object)
	if !ok || !obj.transient {
		return fmt.Errorf("delete: %s is not a transient duplicate", o.Name())
	}
	if obj.deleted {
		return fmt.Errorf("delete: %s already deleted", o.Name())
	}
	obj.deleted = true
	h.snapshots--
	return nil
}

// OpenSnapshots reports transient duplicates that have not been deleted.
// After any export step completes this must be zero.
func (h *Host) OpenSnapshots() int {
	return h.snapshots
}

// object implements scene.Object over an ObjectDef. A transient instance
// carries baked geometry instead of evaluating the definition.
type object struct {
	host  *Host
	def   *ObjectDef
	class scene.Class

	collapsed bool
	transient bool
	deleted   bool

	baked          *scene.Shape
	bakedTransform scene.Matrix3
}

func (o *object) Name() string {
	if o.transient {
		return o.def.Name + "_snapshot"
	}
	return o.def.Name
}

func (o *object) Class() scene.Class {
	if o.collapsed {
		return scene.ClassSplineShape
	}
	return o.class
}

// Transform composes scale, rotation about Z, then translation from the
// evaluated controller values at the host's current time.
func (o *object) Transform() scene.Matrix3 {
	if o.transient {
		return o.bakedTransform
	}
	frame := o.host.time

	baseScale := [3]float64{1, 1, 1}
	if len(o.def.Scale) == 3 {
		copy(baseScale[:], o.def.Scale)
	}
	s := evalVec(o.def.ScaleKeys, frame, baseScale)
	r := evalScalar(o.def.RotationKeys, frame, o.def.Rotation)
	p := evalVec(o.def.PositionKeys, frame, o.def.Position)

	m := scene.Scaling(toPoint(s))
	m = m.Mul(scene.RotationZ(r))
	return m.Mul(scene.Translation(toPoint(p)))
}

func (o *object) TransformController() scene.Controller {
	return nil
}

func (o *object) PositionController() scene.Controller {
	return vecControllerFor(o.def.PositionKeys, o.host.ticksPerFrame)
}

func (o *object) RotationController() scene.Controller {
	return scalarControllerFor(o.def.RotationKeys, o.host.ticksPerFrame)
}

func (o *object) ScaleController() scene.Controller {
	return vecControllerFor(o.def.ScaleKeys, o.host.ticksPerFrame)
}

func (o *object) BaseObjectController() scene.Controller {
	return scalarControllerFor(o.def.BaseKeys, o.host.ticksPerFrame)
}

func (o *object) Modifiers() []scene.Modifier {
	if o.transient {
		// Baked into the snapshot geometry.
		return nil
	}
	out := make([]scene.Modifier, 0, len(o.def.Modifiers))
	for i := range o.def.Modifiers {
		out = append(out, &modifier{host: o.host, def: &o.def.Modifiers[i]})
	}
	return out
}

func (o *object) Shape() (*scene.Shape, error) {
	if o.deleted {
		return nil, fmt.Errorf("shape: %s is deleted", o.Name())
	}
	if o.Class() != scene.ClassSplineShape {
		return nil, scene.ErrNotSplineShape
	}
	if o.transient {
		return o.baked, nil
	}
	return o.evaluate(o.host.time)
}

func (o *object) KnotPoints() ([]scene.Point3, error) {
	if o.deleted {
		return nil, fmt.Errorf("knots: %s is deleted", o.Name())
	}
	var shape *scene.Shape
	if o.transient {
		shape = o.baked
	} else {
		s, err := o.evaluate(o.host.time)
		if err != nil {
			return nil, err
		}
		shape = s
	}
	var pts []scene.Point3
	for _, sp := range shape.Splines {
		for _, k := range sp.Knots {
			pts = append(pts, k.Point)
		}
	}
	return pts, nil
}

// evaluate builds the local-space shape at a frame: base geometry at the
// animated size factor, then the modifier stack in order.
func (o *object) evaluate(frame int) (*scene.Shape, error) {
	size := evalScalar(o.def.BaseKeys, frame, 1)
	shape, err := baseShape(o.def, size)
	if err != nil {
		return nil, err
	}
	for i := range o.def.Modifiers {
		m := &modifier{host: o.host, def: &o.def.Modifiers[i]}
		m.apply(shape, frame)
	}
	return shape, nil
}

// scalarController exposes explicit keys on a scalar channel.
type scalarController struct {
	keys []ScalarKey
	tpf  int
}

func (c *scalarController) Keys() ([]scene.Key, error) {
	out := make([]scene.Key, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, scene.Key{Time: k.Frame * c.tpf})
	}
	return out, nil
}

type vecController struct {
	keys []VecKey
	tpf  int
}

func (c *vecController) Keys() ([]scene.Key, error) {
	out := make([]scene.Key, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, scene.Key{Time: k.Frame * c.tpf})
	}
	return out, nil
}

func scalarControllerFor(keys []ScalarKey, tpf int) scene.Controller {
	if len(keys) == 0 {
		return nil
	}
	return &scalarController{keys: keys, tpf: tpf}
}

func vecControllerFor(keys []VecKey, tpf int) scene.Controller {
	if len(keys) == 0 {
		return nil
	}
	return &vecController{keys: keys, tpf: tpf}
}
