package scenefile

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easings maps scene-file easing names to tween functions. Unknown or empty
// names fall back to linear.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"quad-in":      ease.InQuad,
	"quad-out":     ease.OutQuad,
	"quad-in-out":  ease.InOutQuad,
	"cubic-in":     ease.InCubic,
	"cubic-out":    ease.OutCubic,
	"cubic-in-out": ease.InOutCubic,
	"sine-in":      ease.InSine,
	"sine-out":     ease.OutSine,
	"sine-in-out":  ease.InOutSine,
	"expo-in":      ease.InExpo,
	"expo-out":     ease.OutExpo,
	"expo-in-out":  ease.InOutExpo,
	"back-in":      ease.InBack,
	"back-out":     ease.OutBack,
	"bounce-out":   ease.OutBounce,
	"elastic-out":  ease.OutElastic,
}

func easingFor(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// tween evaluates one eased segment at offset dt into its duration.
func tween(from, to float64, duration, dt int, easing string) float64 {
	tw := gween.New(float32(from), float32(to), float32(duration), easingFor(easing))
	v, _ := tw.Update(float32(dt))
	return float64(v)
}

// evalScalar evaluates a keyed scalar channel at the given frame. Outside the
// key range the boundary value holds; between keys the outgoing key's easing
// applies.
func evalScalar(keys []ScalarKey, frame int, fallback float64) float64 {
	if len(keys) == 0 {
		return fallback
	}
	if frame <= keys[0].Frame {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if frame >= last.Frame {
		return last.Value
	}
	for i := 0; i+1 < len(keys); i++ {
		a, b := keys[i], keys[i+1]
		if frame >= a.Frame && frame < b.Frame {
			return tween(a.Value, b.Value, b.Frame-a.Frame, frame-a.Frame, a.Ease)
		}
	}
	return last.Value
}

// evalVec evaluates a keyed three-component channel at the given frame.
func evalVec(keys []VecKey, frame int, fallback [3]float64) [3]float64 {
	if len(keys) == 0 {
		return fallback
	}
	if frame <= keys[0].Frame {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if frame >= last.Frame {
		return last.Value
	}
	for i := 0; i+1 < len(keys); i++ {
		a, b := keys[i], keys[i+1]
		if frame >= a.Frame && frame < b.Frame {
			var out [3]float64
			for c := 0; c < 3; c++ {
				out[c] = tween(a.Value[c], b.Value[c], b.Frame-a.Frame, frame-a.Frame, a.Ease)
			}
			return out
		}
	}
	return last.Value
}
