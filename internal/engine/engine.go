// Package engine coordinates the telemetry-to-animation pipeline: a
// sampling loop publishing classified frame intervals into the shared
// schedule, and an animation driver consuming them to pace frame emission.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"runcat/internal/assets"
	"runcat/internal/config"
	"runcat/internal/metrics"
	"runcat/internal/schedule"
	"runcat/internal/utils"
)

// stopTimeout bounds how long Stop waits for each loop to exit.
const stopTimeout = 3 * time.Second

// Renderer is the external sink frames are emitted to. Implementations
// must be fast; emit failures are treated as transient.
type Renderer interface {
	Render(frame []byte) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(frame []byte) error

func (f RendererFunc) Render(frame []byte) error { return f(frame) }

// Status is a point-in-time view of the pipeline, served by the status API
// and streamed over the websocket.
type Status struct {
	Metric     metrics.Kind   `json:"metric"`
	Speed      schedule.Speed `json:"speed"`
	Multiplier float64        `json:"multiplier"`
	Usage      float64        `json:"usage_percent"`
	IntervalMS float64        `json:"interval_ms"`
	DarkMode   bool           `json:"dark_mode"`
	SampledAt  time.Time      `json:"sampled_at"`
}

// Options configures an Engine.
type Options struct {
	AssetsDir string
	State     *config.State
	Renderer  Renderer
	Logger    *utils.Logger
	// NewSampler overrides sampler construction, used by tests.
	NewSampler func(metrics.Kind) metrics.Sampler
}

// Engine owns the two background loops and the resources they share. It is
// the single place that starts, reconfigures, and stops the pipeline.
type Engine struct {
	assetsDir  string
	state      *config.State
	renderer   Renderer
	log        *utils.Logger
	sched      *schedule.Schedule
	table      schedule.IntervalTable
	newSampler func(metrics.Kind) metrics.Sampler

	mu       sync.Mutex
	frames   *assets.FrameSet
	stop     chan struct{}
	cancel   context.CancelFunc
	running  bool
	lastSeen Status

	wg sync.WaitGroup

	listenerMu sync.Mutex
	listener   func(Status)
}

// New constructs an Engine from persisted state. The interval table is
// built (and possibly reversed) once here.
func New(opts Options) *Engine {
	newSampler := opts.NewSampler
	if newSampler == nil {
		newSampler = metrics.NewSampler
	}
	return &Engine{
		assetsDir:  opts.AssetsDir,
		state:      opts.State,
		renderer:   opts.Renderer,
		log:        opts.Logger,
		sched:      schedule.New(opts.State.MonitorMode(), opts.State.Speed()),
		table:      schedule.NewIntervalTable(opts.State.PositiveCorrelation()),
		newSampler: newSampler,
	}
}

// Start loads the initial frame set, publishes a starting interval, and
// launches the sampling loop and the animation driver. A frame-set load
// failure here is fatal: the pipeline cannot run without frames.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}

	theme := assets.ThemeForDarkMode(e.state.DarkMode())
	frames, err := assets.LoadFrameSet(e.assetsDir, theme)
	if err != nil {
		return fmt.Errorf("load initial frame set: %w", err)
	}
	e.frames = frames

	// Seed the schedule so the driver never sees a zero interval.
	_, speed := e.sched.Snapshot()
	e.sched.PublishInterval(schedule.Classify(0, e.table, speed.Multiplier()))

	e.stop = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.running = true
	e.wg.Add(2)
	go e.samplingLoop(ctx, e.stop)
	go e.animationLoop(e.stop)

	e.log.Writef("Engine started: metric=%s speed=%s theme=%s", e.state.MonitorMode(), speed, theme)
	return nil
}

// Stop signals both loops, waits a bounded interval for them to exit,
// releases the frame set, and flushes any unsaved configuration. Safe to
// call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stop)
	e.cancel()
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		e.log.Write("Engine: loops did not stop within timeout, proceeding")
	}

	e.mu.Lock()
	e.frames = nil
	e.mu.Unlock()

	e.state.Flush()
	e.log.Write("Engine stopped")
}

// ChangeTheme loads the frame set for the requested theme fully before
// swapping it in, so the driver never observes a torn set. On load failure
// the previous theme stays active.
func (e *Engine) ChangeTheme(dark bool) error {
	theme := assets.ThemeForDarkMode(dark)
	frames, err := assets.LoadFrameSet(e.assetsDir, theme)
	if err != nil {
		e.log.Writef("Theme switch to %s aborted: %v", theme, err)
		return fmt.Errorf("load %s frame set: %w", theme, err)
	}

	e.mu.Lock()
	e.frames = frames
	e.mu.Unlock()

	e.state.SetDarkMode(dark)
	e.log.Writef("Theme changed to %s", theme)
	return nil
}

// ChangeMetric switches the metric source. The sampling loop picks the new
// kind up on its next iteration; the loops keep running.
func (e *Engine) ChangeMetric(kind metrics.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid metric kind %q", kind)
	}
	e.sched.SetMetric(kind)
	if err := e.state.SetMonitorMode(kind); err != nil {
		return err
	}
	e.log.Writef("Metric changed to %s", kind)
	return nil
}

// ChangeSpeed switches the speed preset. Multiplier validity is enforced
// here, at configuration time.
func (e *Engine) ChangeSpeed(sp schedule.Speed) error {
	if !sp.Valid() {
		return fmt.Errorf("invalid speed preset %q", sp)
	}
	e.sched.SetSpeed(sp)
	if err := e.state.SetSpeed(sp); err != nil {
		return err
	}
	e.log.Writef("Speed changed to %s", sp)
	return nil
}

// Status returns the most recent pipeline snapshot.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.lastSeen
	st.Metric, st.Speed = e.sched.Snapshot()
	st.Multiplier = st.Speed.Multiplier()
	st.IntervalMS = float64(e.sched.Interval()) / float64(time.Millisecond)
	st.DarkMode = e.state.DarkMode()
	return st
}

// SetSampleListener registers a callback invoked after each published
// sample. The callback must not block; it runs on the sampling loop.
func (e *Engine) SetSampleListener(fn func(Status)) {
	e.listenerMu.Lock()
	e.listener = fn
	e.listenerMu.Unlock()
}

func (e *Engine) frameSet() *assets.FrameSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *Engine) recordSample(usage float64, interval time.Duration) {
	st := Status{
		Usage:      usage,
		IntervalMS: float64(interval) / float64(time.Millisecond),
		SampledAt:  time.Now(),
	}
	st.Metric, st.Speed = e.sched.Snapshot()
	st.Multiplier = st.Speed.Multiplier()
	st.DarkMode = e.state.DarkMode()

	e.mu.Lock()
	e.lastSeen = st
	e.mu.Unlock()

	e.listenerMu.Lock()
	fn := e.listener
	e.listenerMu.Unlock()
	if fn != nil {
		fn(st)
	}
}
