package export

import (
	"math"
	"time"
)

const (
	schemaVersion = "1.2"
	generatorName = "OATI Spline Exporter (Keyframe Optimized)"
	description   = "Exports Bezier curve data at animation keyframes only for optimized file size and performance. Supports modifier stack animations including Spline Edit and Twist modifiers."
)

// Vec3 is a coordinate triple in the player's convention, rounded to six
// decimal digits.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CurvePoint is one Bezier control point: the knot plus its inbound and
// outbound tangent handles.
type CurvePoint struct {
	Knot      Vec3 `json:"knot"`
	InHandle  Vec3 `json:"inHandle"`
	OutHandle Vec3 `json:"outHandle"`
}

// CurveSegment is one curve within an object's shape. SplineIndex is 1-based.
type CurveSegment struct {
	SplineIndex int          `json:"splineIndex"`
	Points      []CurvePoint `json:"points"`
}

// FrameSample is an object's curve geometry at a single frame.
type FrameSample struct {
	Frame      int            `json:"frame"`
	Time       float64        `json:"time"`
	Curves     []CurveSegment `json:"curves"`
	IsKeyframe bool           `json:"isKeyframe"`
}

// SplineRecord is one exported object: its name and its samples ordered by
// increasing frame.
type SplineRecord struct {
	Name   string        `json:"name"`
	Frames []FrameSample `json:"frames"`
}

// Metadata is the document header consumed by the player.
type Metadata struct {
	Version          string  `json:"version"`
	Generator        string  `json:"generator"`
	FrameStart       int     `json:"frameStart"`
	FrameEnd         int     `json:"frameEnd"`
	ExportType       string  `json:"exportType"`
	FrameRate        float64 `json:"frameRate"`
	Closed           bool    `json:"closed"`
	ExportDate       string  `json:"exportDate"`
	CoordinateSystem string  `json:"coordinateSystem"`
	CurveType        string  `json:"curveType"`
	Description      string  `json:"description"`
}

// Document is the full export file, materialized in memory before writing.
type Document struct {
	Metadata Metadata       `json:"metadata"`
	Splines  []SplineRecord `json:"splines"`
}

// NewMetadata fills the fixed header for the given animation settings.
func NewMetadata(frameStart, frameEnd int, frameRate float64, now time.Time) Metadata {
	return Metadata{
		Version:          schemaVersion,
		Generator:        generatorName,
		FrameStart:       frameStart,
		FrameEnd:         frameEnd,
		ExportType:       "keyframes",
		FrameRate:        frameRate,
		Closed:           false,
		ExportDate:       now.Format(time.RFC3339),
		CoordinateSystem: "threejs",
		CurveType:        "bezier",
		Description:      description,
	}
}

// round6 rounds to the fixed output precision.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
