package export

import "github.com/oati/spline-export/internal/scene"

// exportableClasses is the allow-list of base-object classes the exporter
// understands. Everything else in the scene is ignored.
var exportableClasses = map[scene.Class]bool{
	scene.ClassSplineShape: true,
	scene.ClassLine:        true,
	scene.ClassCircle:      true,
	scene.ClassArc:         true,
	scene.ClassRectangle:   true,
	scene.ClassEllipse:     true,
	scene.ClassNGon:        true,
	scene.ClassStar:        true,
	scene.ClassHelix:       true,
}

// FilterSplines returns the scene objects whose base class is an exportable
// curve primitive, in scene order. The scene is not mutated.
func FilterSplines(h scene.Host) []scene.Object {
	var out []scene.Object
	for _, obj := range h.Objects() {
		if exportableClasses[obj.Class()] {
			out = append(out, obj)
		}
	}
	return out
}
