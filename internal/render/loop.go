// Package render drives the per-frame heartbeat of the visualization:
// idle animations, camera damping and frame snapshots for the host.
package render

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/thep200/repo-visualizer/internal/camera"
	"github.com/thep200/repo-visualizer/internal/interact"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/geom"
	"github.com/thep200/repo-visualizer/pkg/log"
)

const (
	defaultFPS = 30

	// markerSpinRate is the constant rotation of the central repo
	// marker, radians per second.
	markerSpinRate = 0.6

	particleDriftAmp   = 1.5
	particleDriftSpeed = 0.7

	ribbonPulseSpeed = 0.9
)

// Frame is one rendered tick: everything the host needs to draw the
// scene state without recomputing it.
type Frame struct {
	Elapsed         float64              `json:"elapsed"`
	MarkerRotation  float64              `json:"marker_rotation"`
	RibbonGlow      geom.Color           `json:"ribbon_glow"`
	ParticleOffsets []float64            `json:"particle_offsets"`
	Camera          camera.Camera        `json:"camera"`
	View            camera.View          `json:"view"`
	HoveredID       string               `json:"hovered_id,omitempty"`
	Label           *interact.HoverLabel `json:"label,omitempty"`
	Tooltip         interact.Tooltip     `json:"tooltip"`
}

// Sink receives every produced frame.
type Sink func(*Frame)

// Loop is the continuous per-frame callback. It only stops on
// explicit teardown via context cancellation.
type Loop struct {
	Logger   log.Logger
	Director *camera.Director
	Hover    *interact.Controller

	mu    sync.Mutex
	scene *scene.Scene
	sink  Sink
	fps   int
	start time.Time
}

// NewLoop wires the loop to its scene and controllers. fps <= 0 picks
// the default rate.
func NewLoop(logger log.Logger, s *scene.Scene, director *camera.Director, hover *interact.Controller, fps int) (*Loop, error) {
	if fps <= 0 {
		fps = defaultFPS
	}
	return &Loop{
		Logger:   logger,
		Director: director,
		Hover:    hover,
		scene:    s,
		fps:      fps,
	}, nil
}

// SetSink registers the frame consumer.
func (l *Loop) SetSink(sink Sink) {
	l.mu.Lock()
	l.sink = sink
	l.mu.Unlock()
}

// SetScene swaps in a rebuilt scene; the input data changing always
// discards and rebuilds the whole scene upstream.
func (l *Loop) SetScene(s *scene.Scene) {
	l.mu.Lock()
	l.scene = s
	l.mu.Unlock()
	if l.Hover != nil {
		l.Hover.SetScene(s)
	}
}

// Run ticks until the context is cancelled. All frame work happens on
// this goroutine; pointer and camera input is serialized by its own
// controller.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.start = time.Now()
	interval := time.Second / time.Duration(l.fps)
	l.mu.Unlock()

	l.Logger.Info(ctx, "Render loop started at %d fps", l.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Logger.Info(ctx, "Render loop stopped")
			return ctx.Err()
		case now := <-ticker.C:
			frame := l.Step(now)
			l.mu.Lock()
			sink := l.sink
			l.mu.Unlock()
			if sink != nil {
				sink(frame)
			}
		}
	}
}

// Step advances the idle animations and snapshots one frame at the
// given instant.
func (l *Loop) Step(now time.Time) *Frame {
	l.mu.Lock()
	if l.start.IsZero() {
		l.start = now
	}
	elapsed := now.Sub(l.start).Seconds()
	s := l.scene
	l.mu.Unlock()

	l.Director.Update(now)

	frame := &Frame{
		Elapsed:        elapsed,
		MarkerRotation: math.Mod(elapsed*markerSpinRate, 2*math.Pi),
		RibbonGlow:     ribbonGlow(elapsed),
		Camera:         l.Director.Snapshot(),
		View:           l.Director.CurrentView(),
	}

	if s != nil {
		frame.ParticleOffsets = make([]float64, len(s.Particles))
		for i, p := range s.Particles {
			frame.ParticleOffsets[i] = particleDrift(elapsed, p)
		}
	}

	if l.Hover != nil {
		if hovered := l.Hover.Hovered(); hovered != nil {
			frame.HoveredID = hovered.ID
		}
		frame.Label = l.Hover.Label()
		frame.Tooltip = l.Hover.TooltipState()
	}

	return frame
}

// particleDrift is the sinusoidal vertical drift of one particle,
// seeded by elapsed time and the particle's x position.
func particleDrift(elapsed float64, p scene.Particle) float64 {
	return math.Sin(elapsed*particleDriftSpeed+p.Seed+p.Base.X*0.15) * particleDriftAmp
}

// ribbonGlow pulses the timeline glow through phase-shifted RGB sines.
func ribbonGlow(elapsed float64) geom.Color {
	phase := elapsed * ribbonPulseSpeed
	return geom.Color{
		R: 0.5 + 0.5*math.Sin(phase),
		G: 0.5 + 0.5*math.Sin(phase+2*math.Pi/3),
		B: 0.5 + 0.5*math.Sin(phase+4*math.Pi/3),
	}
}
