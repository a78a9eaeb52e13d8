package camera

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/thep200/repo-visualizer/pkg/geom"
)

// View names one of the four camera presets.
type View string

const (
	ViewOverview      View = "overview"
	ViewCommitHistory View = "commitHistory"
	ViewLanguages     View = "languages"
	ViewContributors  View = "contributors"
)

// Preset is a fixed camera pose: where the camera sits and what it
// looks at.
type Preset struct {
	Position geom.Vec3 `json:"position"`
	Target   geom.Vec3 `json:"target"`
}

// TransitionDuration is the wall-clock length of every fly-to.
const TransitionDuration = 1000 * time.Millisecond

const defaultFOV = 60 * math.Pi / 180

// presets flank the commit helix at the origin, the contributor field
// at x=-26 and the language donut at x=+26.
var presets = map[View]Preset{
	ViewOverview:      {Position: geom.V(0, 10, 38), Target: geom.V(0, 0, 0)},
	ViewCommitHistory: {Position: geom.V(14, 3, 14), Target: geom.V(0, 0, 0)},
	ViewLanguages:     {Position: geom.V(26, 0, 16), Target: geom.V(26, 0, 0)},
	ViewContributors:  {Position: geom.V(-26, 9, 14), Target: geom.V(-26, 0, 0)},
}

// Views lists the presets in navigation order.
func Views() []View {
	return []View{ViewOverview, ViewCommitHistory, ViewLanguages, ViewContributors}
}

// PresetFor resolves a view name to its pose.
func PresetFor(v View) (Preset, bool) {
	p, ok := presets[v]
	return p, ok
}

// transition is one in-flight fly-to. Transitions are never cancelled;
// a superseded one keeps converging toward its own preset until its
// clock runs out, which is harmless because presets are fixed and
// later transitions are applied after earlier ones on every update.
type transition struct {
	fromPos    geom.Vec3
	fromTarget geom.Vec3
	preset     Preset
	start      time.Time
}

// Director owns the live camera pose and the fly-to animations. All
// entry points are safe for the render loop and the event handlers to
// call from different goroutines.
type Director struct {
	mu          sync.Mutex
	position    geom.Vec3
	target      geom.Vec3
	fov         float64
	aspect      float64
	view        View
	transitions []*transition
}

// NewDirector starts at the overview preset.
func NewDirector() *Director {
	p := presets[ViewOverview]
	return &Director{
		position: p.Position,
		target:   p.Target,
		fov:      defaultFOV,
		aspect:   16.0 / 9.0,
		view:     ViewOverview,
	}
}

// SetViewport updates the aspect ratio on host resize.
func (d *Director) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	d.mu.Lock()
	d.aspect = width / height
	d.mu.Unlock()
}

// FlyTo starts a transition to the named preset. The start pose is
// whatever the camera's live pose is right now, so overlapping
// requests stay continuous instead of teleporting.
func (d *Director) FlyTo(v View, now time.Time) error {
	preset, ok := presets[v]
	if !ok {
		return fmt.Errorf("unknown camera view: %s", v)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.view = v
	d.transitions = append(d.transitions, &transition{
		fromPos:    d.position,
		fromTarget: d.target,
		preset:     preset,
		start:      now,
	})
	return nil
}

// Update advances every in-flight transition and settles the live
// pose. Transitions are applied oldest first, so the newest request
// wins each tick. Finished transitions are dropped after writing their
// exact end pose.
func (d *Director) Update(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.transitions) == 0 {
		return
	}

	remaining := d.transitions[:0]
	for _, tr := range d.transitions {
		progress := float64(now.Sub(tr.start)) / float64(TransitionDuration)
		eased := geom.EaseInOutQuad(progress)
		d.position = tr.fromPos.Lerp(tr.preset.Position, eased)
		d.target = tr.fromTarget.Lerp(tr.preset.Target, eased)
		if progress < 1 {
			remaining = append(remaining, tr)
		}
	}
	d.transitions = remaining
}

// Animating reports whether any fly-to is still in flight.
func (d *Director) Animating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.transitions) > 0
}

// CurrentView returns the most recently requested preset name.
func (d *Director) CurrentView() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Snapshot returns the camera for rendering and picking.
func (d *Director) Snapshot() Camera {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Camera{
		Position: d.position,
		Target:   d.target,
		FOV:      d.fov,
		Aspect:   d.aspect,
	}
}
