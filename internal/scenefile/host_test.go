package scenefile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/oati/spline-export/internal/scene"
)

func lineDef(name string) ObjectDef {
	return ObjectDef{
		Name:  name,
		Class: "SplineShape",
		Splines: []SplineDef{{Knots: []KnotDef{
			{Point: [3]float64{0, 0, 0}},
			{Point: [3]float64{10, 0, 0}},
		}}},
	}
}

func newTestHost(t *testing.T, objects ...ObjectDef) *Host {
	t.Helper()
	h, err := NewHost(&Document{
		Scene:   Settings{FrameStart: 0, FrameEnd: 100, FrameRate: 30},
		Objects: objects,
	})
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	return h
}

func TestNewHost_TicksPerFrame(t *testing.T) {
	h := newTestHost(t)
	if got := h.TicksPerFrame(); got != 160 {
		t.Fatalf("ticksPerFrame = %d, want 160 at 30 fps", got)
	}
}

func TestNewHost_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "reversed range",
			doc: Document{
				Scene: Settings{FrameStart: 10, FrameEnd: 0, FrameRate: 30},
			},
		},
		{
			name: "unnamed object",
			doc: Document{
				Scene:   Settings{FrameEnd: 10, FrameRate: 30},
				Objects: []ObjectDef{{Class: "Line"}},
			},
		},
		{
			name: "unknown class",
			doc: Document{
				Scene:   Settings{FrameEnd: 10, FrameRate: 30},
				Objects: []ObjectDef{{Name: "x", Class: "Teapot"}},
			},
		},
		{
			name: "unknown modifier",
			doc: Document{
				Scene: Settings{FrameEnd: 10, FrameRate: 30},
				Objects: []ObjectDef{{
					Name: "x", Class: "Line",
					Modifiers: []ModifierDef{{Kind: "melt"}},
				}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHost(&tc.doc); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestPositionControllerExposesKeysInTicks(t *testing.T) {
	def := lineDef("mover")
	def.PositionKeys = []VecKey{
		{Frame: 0, Value: [3]float64{0, 0, 0}},
		{Frame: 50, Value: [3]float64{10, 0, 0}},
	}
	h := newTestHost(t, def)

	obj := h.Objects()[0]
	ctrl := obj.PositionController()
	if ctrl == nil {
		t.Fatal("position controller missing")
	}
	keys, err := ctrl.Keys()
	if err != nil {
		t.Fatalf("Keys(): %v", err)
	}
	if len(keys) != 2 || keys[1].Time != 50*160 {
		t.Fatalf("keys = %+v, want second at tick 8000", keys)
	}

	if obj.RotationController() != nil {
		t.Fatal("unanimated rotation slot should be nil")
	}
}

func TestSetTimeMovesTransform(t *testing.T) {
	def := lineDef("mover")
	def.PositionKeys = []VecKey{
		{Frame: 0, Value: [3]float64{0, 0, 0}},
		{Frame: 100, Value: [3]float64{100, 0, 0}},
	}
	h := newTestHost(t, def)
	obj := h.Objects()[0]

	h.SetTime(0)
	at0 := obj.Transform().MulPoint(scene.Point3{})
	h.SetTime(50)
	at50 := obj.Transform().MulPoint(scene.Point3{})

	if math.Abs(at0.X) > 1e-6 {
		t.Fatalf("frame 0 position = %+v, want origin", at0)
	}
	if math.Abs(at50.X-50) > 0.01 {
		t.Fatalf("frame 50 position x = %g, want ~50", at50.X)
	}
}

func TestShapeRequiresCanonicalClass(t *testing.T) {
	h := newTestHost(t, ObjectDef{Name: "ring", Class: "Circle", Radius: 10})
	obj := h.Objects()[0]

	if _, err := obj.Shape(); !errors.Is(err, scene.ErrNotSplineShape) {
		t.Fatalf("Shape() err = %v, want ErrNotSplineShape", err)
	}

	// The degraded read works regardless of class.
	knots, err := obj.KnotPoints()
	if err != nil {
		t.Fatalf("KnotPoints(): %v", err)
	}
	if len(knots) != 4 {
		t.Fatalf("got %d knot points, want 4", len(knots))
	}
}

func TestSnapshotConvertDeleteLifecycle(t *testing.T) {
	h := newTestHost(t, ObjectDef{Name: "ring", Class: "Circle", Radius: 10})
	obj := h.Objects()[0]

	snap, err := h.Snapshot(obj)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if h.OpenSnapshots() != 1 {
		t.Fatalf("open snapshots = %d, want 1", h.OpenSnapshots())
	}
	if snap.Class() != scene.ClassCircle {
		t.Fatalf("snapshot class = %s, want Circle", snap.Class())
	}

	if err := h.ConvertToSplineShape(snap); err != nil {
		t.Fatalf("ConvertToSplineShape: %v", err)
	}
	if snap.Class() != scene.ClassSplineShape {
		t.Fatalf("converted class = %s", snap.Class())
	}

	shape, err := snap.Shape()
	if err != nil {
		t.Fatalf("Shape after convert: %v", err)
	}
	if len(shape.Splines[0].Knots) != 4 {
		t.Fatalf("snapshot geometry has %d knots, want 4", len(shape.Splines[0].Knots))
	}

	// The original keeps its class.
	if obj.Class() != scene.ClassCircle {
		t.Fatalf("original class changed to %s", obj.Class())
	}

	if err := h.Delete(snap); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if h.OpenSnapshots() != 0 {
		t.Fatalf("open snapshots = %d after delete, want 0", h.OpenSnapshots())
	}
	if err := h.Delete(snap); err == nil {
		t.Fatal("double delete should fail")
	}
	if err := h.Delete(obj); err == nil {
		t.Fatal("deleting a non-transient object should fail")
	}
}

func TestSnapshotBakesModifierState(t *testing.T) {
	def := ObjectDef{
		Name:   "twisted",
		Class:  "Helix",
		Radius: 5, Radius2: 5, Height: 20, Turns: 1,
		Modifiers: []ModifierDef{{
			Kind: "twist",
			Keys: []ScalarKey{{Frame: 0, Value: 0}, {Frame: 100, Value: 180}},
		}},
	}
	h := newTestHost(t, def)
	obj := h.Objects()[0]

	h.SetTime(0)
	snap0, _ := h.Snapshot(obj)
	h.ConvertToSplineShape(snap0)
	shape0, _ := snap0.Shape()

	h.SetTime(100)
	snap100, _ := h.Snapshot(obj)
	h.ConvertToSplineShape(snap100)
	shape100, _ := snap100.Shape()

	top0 := shape0.Splines[0].Knots[4].Point
	top100 := shape100.Splines[0].Knots[4].Point
	if math.Abs(top0.X-top100.X) < 1e-6 && math.Abs(top0.Y-top100.Y) < 1e-6 {
		t.Fatalf("twist animation had no effect: %+v vs %+v", top0, top100)
	}

	h.Delete(snap0)
	h.Delete(snap100)
}

func TestBaseKeysScaleGeometry(t *testing.T) {
	def := ObjectDef{
		Name: "growing", Class: "Circle", Radius: 10,
		BaseKeys: []ScalarKey{{Frame: 0, Value: 1}, {Frame: 100, Value: 2}},
	}
	h := newTestHost(t, def)
	obj := h.Objects()[0]

	if obj.BaseObjectController() == nil {
		t.Fatal("base object controller missing")
	}

	h.SetTime(0)
	k0, _ := obj.KnotPoints()
	h.SetTime(100)
	k100, _ := obj.KnotPoints()

	if math.Abs(k0[0].X-10) > 1e-6 {
		t.Fatalf("frame 0 radius = %g, want 10", k0[0].X)
	}
	if math.Abs(k100[0].X-20) > 1e-6 {
		t.Fatalf("frame 100 radius = %g, want 20", k100[0].X)
	}
}

func TestLoadSceneFile(t *testing.T) {
	src := `
[scene]
frame_start = 0
frame_end = 100
frame_rate = 30.0

[[objects]]
name = "flight_path"
class = "SplineShape"
position = [0.0, 0.0, 0.0]

[[objects.splines]]
[[objects.splines.knots]]
point = [0.0, 0.0, 0.0]
out = [1.0, 0.0, 0.0]
[[objects.splines.knots]]
point = [10.0, 0.0, 0.0]
in = [9.0, 0.0, 0.0]

[[objects.position_keys]]
frame = 50
value = [0.0, 5.0, 0.0]
ease = "quad-out"

[[objects]]
name = "ring"
class = "Circle"
radius = 4.0

[[objects.modifiers]]
kind = "push"
value = 1.0
`
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	objs := h.Objects()
	if len(objs) != 2 {
		t.Fatalf("got %d objects, want 2", len(objs))
	}
	if objs[0].Name() != "flight_path" || objs[0].Class() != scene.ClassSplineShape {
		t.Fatalf("first object = %s (%s)", objs[0].Name(), objs[0].Class())
	}
	if objs[1].Class() != scene.ClassCircle {
		t.Fatalf("second object class = %s", objs[1].Class())
	}
	if len(objs[1].Modifiers()) != 1 || objs[1].Modifiers()[0].Name() != "push" {
		t.Fatalf("modifiers = %+v", objs[1].Modifiers())
	}
	if ctrl := objs[0].PositionController(); ctrl == nil {
		t.Fatal("position keys not loaded")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing scene file")
	}
}
