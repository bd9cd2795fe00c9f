package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/oati/spline-export/internal/scene"
)

// controllerProbe names one animatable channel inspected during keyframe
// discovery. The probe list is data, not control flow, so coverage gaps are
// visible in one place: animation living outside these channels is missed and
// only approximated by the coarse fallback sampling below.
type controllerProbe struct {
	name    string
	resolve func(scene.Object) scene.Controller
}

var objectProbes = []controllerProbe{
	{"transform", func(o scene.Object) scene.Controller { return o.TransformController() }},
	{"position", func(o scene.Object) scene.Controller { return o.PositionController() }},
	{"rotation", func(o scene.Object) scene.Controller { return o.RotationController() }},
	{"scale", func(o scene.Object) scene.Controller { return o.ScaleController() }},
	{"baseObject", func(o scene.Object) scene.Controller { return o.BaseObjectController() }},
}

// modifierChannels are the named scalar channels probed on every modifier, on
// top of its parameter-block controllers.
var modifierChannels = []string{"angle", "twist", "amount"}

// maxFallbackSamples bounds the number of injected frames when no explicit
// keys are found on a modifier-carrying object.
const maxFallbackSamples = 10

// DiscoverKeyframes returns the sorted set of frames at which the object's
// evaluated geometry may differ, always including start and end. A channel
// that cannot be read is skipped, never fatal. Progress lines go to w.
func DiscoverKeyframes(obj scene.Object, start, end, ticksPerFrame int, w io.Writer) []int {
	frames := map[int]bool{start: true, end: true}

	collect := func(ctrl scene.Controller, channel string) {
		if ctrl == nil {
			return
		}
		keys, err := ctrl.Keys()
		if err != nil {
			return
		}
		for _, k := range keys {
			frame := k.Time / ticksPerFrame
			if frame >= start && frame <= end {
				if !frames[frame] {
					fmt.Fprintf(w, "    - Found key at frame %d on %s\n", frame, channel)
				}
				frames[frame] = true
			}
		}
	}

	for _, p := range objectProbes {
		collect(p.resolve(obj), p.name)
	}

	mods := obj.Modifiers()
	if len(mods) > 0 {
		fmt.Fprintf(w, "    - Checking %d modifier(s)\n", len(mods))
	}
	for _, mod := range mods {
		if ctrls, err := mod.ParamControllers(); err == nil {
			for i, ctrl := range ctrls {
				collect(ctrl, fmt.Sprintf("%s.param%d", mod.Name(), i))
			}
		}
		for _, ch := range modifierChannels {
			if ctrl, ok := mod.Channel(ch); ok {
				collect(ctrl, mod.Name()+"."+ch)
			}
		}
	}

	// Only the boundary frames and a modifier stack present: the stack may
	// animate through channels the probe list cannot see, so subsample the
	// range instead of trusting two frames.
	if len(frames) == 2 && len(mods) > 0 {
		span := end - start
		if span > maxFallbackSamples {
			fmt.Fprintf(w, "    - No explicit keyframes found, adding intermediate frames for modifier sampling\n")
			step := span / maxFallbackSamples
			if step < 1 {
				step = 1
			}
			for f := start + step; f < end; f += step {
				frames[f] = true
			}
		}
	}

	out := make([]int, 0, len(frames))
	for f := range frames {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}
