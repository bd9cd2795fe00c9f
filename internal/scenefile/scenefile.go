// Package scenefile loads a declarative TOML scene document and exposes it
// through the scene.Host capability interface. It stands in for the 3D
// host's live object model: primitive curve classes, animated transform
// controllers with easing, and a small modifier stack that really deforms
// geometry over time.
package scenefile

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/oati/spline-export/internal/scene"
)

// Document is the root of a scene file.
type Document struct {
	Scene   Settings    `toml:"scene"`
	Objects []ObjectDef `toml:"objects"`
}

// Settings holds the animation settings normally read from the host timeline.
type Settings struct {
	FrameStart int     `toml:"frame_start"`
	FrameEnd   int     `toml:"frame_end"`
	FrameRate  float64 `toml:"frame_rate"`
}

// ObjectDef describes one scene object.
type ObjectDef struct {
	Name  string `toml:"name"`
	Class string `toml:"class"`

	// Base transform. Keys, when present, animate away from these.
	Position [3]float64 `toml:"position"`
	Rotation float64    `toml:"rotation"` // degrees about Z
	Scale    []float64  `toml:"scale"`    // empty = [1,1,1]

	PositionKeys []VecKey    `toml:"position_keys"`
	RotationKeys []ScalarKey `toml:"rotation_keys"`
	ScaleKeys    []VecKey    `toml:"scale_keys"`

	// BaseKeys animate a uniform size factor on the base geometry,
	// standing in for animated base-object parameters.
	BaseKeys []ScalarKey `toml:"base_keys"`

	// Explicit geometry for SplineShape and Line classes.
	Splines []SplineDef `toml:"splines"`

	// Parametric dimensions for the primitive classes.
	Radius  float64 `toml:"radius"`  // circle, arc, ngon, helix
	Radius2 float64 `toml:"radius2"` // star inner, helix end
	Length  float64 `toml:"length"`  // rectangle, ellipse
	Width   float64 `toml:"width"`   // rectangle, ellipse
	From    float64 `toml:"from"`    // arc start, degrees
	To      float64 `toml:"to"`      // arc end, degrees
	Sides   int     `toml:"sides"`   // ngon
	PtCount int     `toml:"points"`  // star
	Height  float64 `toml:"height"`  // helix
	Turns   float64 `toml:"turns"`   // helix

	Modifiers []ModifierDef `toml:"modifiers"`
}

// SplineDef is one explicit curve of knots.
type SplineDef struct {
	Knots []KnotDef `toml:"knots"`
}

// KnotDef is one explicit control point. In and Out are absolute tangent
// points; when omitted they default to the knot itself (a corner knot).
type KnotDef struct {
	Point [3]float64  `toml:"point"`
	In    *[3]float64 `toml:"in"`
	Out   *[3]float64 `toml:"out"`
}

// ModifierDef is one stack entry. Kind selects the deformation ("twist" or
// "push"); Keys animate its primary channel.
type ModifierDef struct {
	Kind  string      `toml:"kind"`
	Value float64     `toml:"value"` // static channel value when no keys
	Keys  []ScalarKey `toml:"keys"`
}

// ScalarKey is one key on a scalar channel.
type ScalarKey struct {
	Frame int     `toml:"frame"`
	Value float64 `toml:"value"`
	Ease  string  `toml:"ease"`
}

// VecKey is one key on a three-component channel.
type VecKey struct {
	Frame int        `toml:"frame"`
	Value [3]float64 `toml:"value"`
	Ease  string     `toml:"ease"`
}

// Load parses and validates a scene file and returns a Host over it.
func Load(path string) (*Host, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return NewHost(&doc)
}

// NewHost validates a document and builds a Host over it.
func NewHost(doc *Document) (*Host, error) {
	if doc.Scene.FrameRate <= 0 {
		doc.Scene.FrameRate = 30
	}
	if doc.Scene.FrameEnd < doc.Scene.FrameStart {
		return nil, fmt.Errorf("scene: frame_end %d before frame_start %d", doc.Scene.FrameEnd, doc.Scene.FrameStart)
	}

	h := &Host{
		settings: doc.Scene,
		// The host clock runs at 4800 ticks per second regardless of
		// frame rate, the convention key times are stored in.
		ticksPerFrame: int(4800 / doc.Scene.FrameRate),
		time:          doc.Scene.FrameStart,
	}
	if h.ticksPerFrame < 1 {
		h.ticksPerFrame = 1
	}

	for i := range doc.Objects {
		def := &doc.Objects[i]
		if def.Name == "" {
			return nil, fmt.Errorf("scene: object %d has no name", i)
		}
		cls := scene.Class(def.Class)
		if !knownClass(cls) {
			return nil, fmt.Errorf("scene: object %q: unknown class %q", def.Name, def.Class)
		}
		for _, mod := range def.Modifiers {
			if mod.Kind != "twist" && mod.Kind != "push" {
				return nil, fmt.Errorf("scene: object %q: unknown modifier kind %q", def.Name, mod.Kind)
			}
		}
		h.objects = append(h.objects, &object{host: h, def: def, class: cls})
	}
	return h, nil
}

func knownClass(c scene.Class) bool {
	switch c {
	case scene.ClassSplineShape, scene.ClassLine, scene.ClassCircle,
		scene.ClassArc, scene.ClassRectangle, scene.ClassEllipse,
		scene.ClassNGon, scene.ClassStar, scene.ClassHelix:
		return true
	}
	return false
}
