package export

import (
	"errors"

	"github.com/oati/spline-export/internal/scene"
)

// Test doubles for the scene capability interface, with injectable failures
// for every host-side operation the pipeline has to survive.

type fakeController struct {
	keys []scene.Key
	err  error
}

func (c *fakeController) Keys() ([]scene.Key, error) {
	return c.keys, c.err
}

func keysAtFrames(tpf int, frames ...int) *fakeController {
	var keys []scene.Key
	for _, f := range frames {
		keys = append(keys, scene.Key{Time: f * tpf})
	}
	return &fakeController{keys: keys}
}

type fakeModifier struct {
	name     string
	params   []scene.Controller
	paramErr error
	channels map[string]scene.Controller
}

func (m *fakeModifier) Name() string { return m.name }

func (m *fakeModifier) ParamControllers() ([]scene.Controller, error) {
	return m.params, m.paramErr
}

func (m *fakeModifier) Channel(name string) (scene.Controller, bool) {
	c, ok := m.channels[name]
	return c, ok
}

type fakeObject struct {
	name      string
	class     scene.Class
	transform scene.Matrix3

	transformCtrl scene.Controller
	posCtrl       scene.Controller
	rotCtrl       scene.Controller
	scaleCtrl     scene.Controller
	baseCtrl      scene.Controller

	mods []scene.Modifier

	shape    *scene.Shape
	shapeErr error
	knots    []scene.Point3
	knotsErr error
}

func (o *fakeObject) Name() string             { return o.name }
func (o *fakeObject) Class() scene.Class       { return o.class }
func (o *fakeObject) Transform() scene.Matrix3 { return o.transform }

func (o *fakeObject) TransformController() scene.Controller  { return o.transformCtrl }
func (o *fakeObject) PositionController() scene.Controller   { return o.posCtrl }
func (o *fakeObject) RotationController() scene.Controller   { return o.rotCtrl }
func (o *fakeObject) ScaleController() scene.Controller      { return o.scaleCtrl }
func (o *fakeObject) BaseObjectController() scene.Controller { return o.baseCtrl }

func (o *fakeObject) Modifiers() []scene.Modifier { return o.mods }

func (o *fakeObject) Shape() (*scene.Shape, error) {
	if o.class != scene.ClassSplineShape {
		return nil, scene.ErrNotSplineShape
	}
	if o.shapeErr != nil {
		return nil, o.shapeErr
	}
	return o.shape, nil
}

func (o *fakeObject) KnotPoints() ([]scene.Point3, error) {
	if o.knotsErr != nil {
		return nil, o.knotsErr
	}
	return o.knots, nil
}

type fakeHost struct {
	objects    []scene.Object
	start, end int
	rate       float64
	tpf        int

	time int

	snapErr    error
	convertErr error

	snapshots int // live transient duplicates
	deletes   int
}

func newFakeHost(objects ...scene.Object) *fakeHost {
	return &fakeHost{
		objects: objects,
		start:   0,
		end:     100,
		rate:    30,
		tpf:     160,
	}
}

func (h *fakeHost) Objects() []scene.Object    { return h.objects }
func (h *fakeHost) AnimationRange() (int, int) { return h.start, h.end }
func (h *fakeHost) FrameRate() float64         { return h.rate }
func (h *fakeHost) TicksPerFrame() int         { return h.tpf }
func (h *fakeHost) SetTime(frame int)          { h.time = frame }

func (h *fakeHost) Snapshot(o scene.Object) (scene.Object, error) {
	if h.snapErr != nil {
		return nil, h.snapErr
	}
	src := o.(*fakeObject)
	dup := *src
	dup.name = src.name + "_snapshot"
	h.snapshots++
	return &dup, nil
}

func (h *fakeHost) ConvertToSplineShape(o scene.Object) error {
	if h.convertErr != nil {
		return h.convertErr
	}
	o.(*fakeObject).class = scene.ClassSplineShape
	return nil
}

func (h *fakeHost) Delete(o scene.Object) error {
	h.snapshots--
	h.deletes++
	return nil
}

var errHostRead = errors.New("host read failed")

// fourKnotLine is a static open curve used across tests.
func fourKnotLine(name string, class scene.Class) *fakeObject {
	knot := func(x float64) scene.Knot {
		return scene.Knot{
			Point:  scene.Point3{X: x, Y: 1, Z: 2},
			InVec:  scene.Point3{X: x - 1, Y: 1, Z: 2},
			OutVec: scene.Point3{X: x + 1, Y: 1, Z: 2},
		}
	}
	shape := &scene.Shape{Splines: []scene.Spline{{
		Knots: []scene.Knot{knot(0), knot(3), knot(6), knot(9)},
	}}}
	var knots []scene.Point3
	for _, k := range shape.Splines[0].Knots {
		knots = append(knots, k.Point)
	}
	return &fakeObject{
		name:      name,
		class:     class,
		transform: scene.Identity(),
		shape:     shape,
		knots:     knots,
	}
}
