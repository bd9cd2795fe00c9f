package export

import (
	"io"
	"reflect"
	"testing"

	"github.com/oati/spline-export/internal/scene"
)

const tpf = 160

func TestDiscoverKeyframes_BoundariesAlwaysPresent(t *testing.T) {
	obj := fourKnotLine("static", scene.ClassSplineShape)

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	want := []int{0, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_ExplicitPositionKey(t *testing.T) {
	obj := fourKnotLine("animated", scene.ClassSplineShape)
	obj.posCtrl = keysAtFrames(tpf, 50)

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	want := []int{0, 50, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_OutOfRangeKeysDropped(t *testing.T) {
	obj := fourKnotLine("clipped", scene.ClassSplineShape)
	obj.posCtrl = keysAtFrames(tpf, 5, 75, 150)

	got := DiscoverKeyframes(obj, 10, 100, tpf, io.Discard)

	want := []int{10, 75, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_AllObjectChannelsProbed(t *testing.T) {
	obj := fourKnotLine("multi", scene.ClassSplineShape)
	obj.transformCtrl = keysAtFrames(tpf, 10)
	obj.posCtrl = keysAtFrames(tpf, 20)
	obj.rotCtrl = keysAtFrames(tpf, 30)
	obj.scaleCtrl = keysAtFrames(tpf, 40)
	obj.baseCtrl = keysAtFrames(tpf, 50)

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	want := []int{0, 10, 20, 30, 40, 50, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_ChannelReadFailureSkipped(t *testing.T) {
	obj := fourKnotLine("flaky", scene.ClassSplineShape)
	obj.posCtrl = &fakeController{err: errHostRead}
	obj.rotCtrl = keysAtFrames(tpf, 25)

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	want := []int{0, 25, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_ModifierChannels(t *testing.T) {
	obj := fourKnotLine("twisted", scene.ClassSplineShape)
	obj.mods = []scene.Modifier{&fakeModifier{
		name:   "twist",
		params: []scene.Controller{keysAtFrames(tpf, 15)},
		channels: map[string]scene.Controller{
			"angle": keysAtFrames(tpf, 60),
		},
	}}

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	want := []int{0, 15, 60, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_ModifierFallbackSampling(t *testing.T) {
	obj := fourKnotLine("modified", scene.ClassSplineShape)
	obj.mods = []scene.Modifier{&fakeModifier{name: "twist"}}

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	// Boundary frames plus nine injected samples at step 10.
	want := []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_NoFallbackForShortRange(t *testing.T) {
	obj := fourKnotLine("short", scene.ClassSplineShape)
	obj.mods = []scene.Modifier{&fakeModifier{name: "twist"}}

	got := DiscoverKeyframes(obj, 0, 8, tpf, io.Discard)

	want := []int{0, 8}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestDiscoverKeyframes_NoFallbackWithoutModifiers(t *testing.T) {
	obj := fourKnotLine("plain", scene.ClassSplineShape)

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	if len(got) != 2 {
		t.Fatalf("frames = %v, want exactly the two boundary frames", got)
	}
}

func TestDiscoverKeyframes_ExplicitKeysSuppressFallback(t *testing.T) {
	obj := fourKnotLine("keyed", scene.ClassSplineShape)
	obj.posCtrl = keysAtFrames(tpf, 50)
	obj.mods = []scene.Modifier{&fakeModifier{name: "twist"}}

	got := DiscoverKeyframes(obj, 0, 100, tpf, io.Discard)

	want := []int{0, 50, 100}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}
