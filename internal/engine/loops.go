package engine

import (
	"context"
	"time"

	"runcat/internal/metrics"
	"runcat/internal/schedule"
)

// samplePeriod paces the non-blocking samplers between iterations; the CPU
// sampler's measurement window provides the same cadence naturally. It also
// serves as the backoff after a failed sample.
const samplePeriod = time.Second

// samplingLoop repeatedly samples the active metric, classifies the usage
// into a frame interval, and publishes it into the shared schedule. It
// observes the stop channel at least once per iteration and never lets a
// sampling failure escape.
func (e *Engine) samplingLoop(ctx context.Context, stop <-chan struct{}) {
	defer e.wg.Done()

	var sampler metrics.Sampler
	var samplerKind metrics.Kind

	for {
		select {
		case <-stop:
			return
		default:
		}

		kind, speed := e.sched.Snapshot()
		if sampler == nil || kind != samplerKind {
			sampler = e.newSampler(kind)
			samplerKind = kind
		}

		usage, err := sampler.Sample(ctx)
		if ctx.Err() != nil {
			// Shutdown interrupted the measurement window.
			return
		}
		if err != nil {
			e.log.Writef("Sampling %s failed: %v", kind, err)
			usage = 0
		}

		interval := schedule.Classify(usage, e.table, speed.Multiplier())
		e.sched.PublishInterval(interval)
		e.recordSample(usage, interval)

		// Blocking samplers already spent the measurement window; the rest
		// pace here. A failed sample always backs off before retrying.
		if err != nil || !sampler.Blocking() {
			if !e.sleep(stop, samplePeriod) {
				return
			}
		}
	}
}

// animationLoop emits frames to the renderer at the cadence currently
// published in the schedule. The interval read and the frame advance are
// independent; a theme swap mid-cycle is picked up on the next emit.
func (e *Engine) animationLoop(stop <-chan struct{}) {
	defer e.wg.Done()
	index := 0

	for {
		select {
		case <-stop:
			return
		default:
		}

		if frames := e.frameSet(); frames != nil && frames.Len() > 0 {
			if err := e.renderer.Render(frames.Frame(index)); err != nil {
				e.log.Writef("Render frame %d failed: %v", index, err)
			}
			index = (index + 1) % frames.Len()
		}

		if !e.sleep(stop, e.sched.Interval()) {
			return
		}
	}
}

// sleep waits for d or until stop closes, returning false on stop.
func (e *Engine) sleep(stop <-chan struct{}, d time.Duration) bool {
	if d <= 0 {
		d = samplePeriod
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
