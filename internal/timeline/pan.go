package timeline

import "time"

// CancelFunc cancels a scheduled frame callback. Safe to call more than once.
type CancelFunc func()

// FrameScheduler defers work to the next animation-frame tick. The controller
// takes it as an injected capability so drag sessions are testable without a
// real event loop; production callers supply whatever drives their frames.
type FrameScheduler interface {
	Schedule(fn func()) CancelFunc
}

type panState int

const (
	panIdle panState = iota
	panDragging
)

// PanController converts a stream of pointer-drag samples into reference-date
// updates, committing at most once per animation frame. Only the latest
// sample before a frame is honored; intermediate samples are superseded, not
// queued. One controller serves one pointer interaction at a time and is not
// safe for concurrent use.
type PanController struct {
	scheduler FrameScheduler
	commit    func(time.Time)

	state      panState
	originX    float64
	originRef  time.Time
	pixelWidth float64
	duration   time.Duration

	latestX float64
	pending bool
	cancel  CancelFunc
}

func NewPanController(scheduler FrameScheduler, commit func(time.Time)) *PanController {
	return &PanController{scheduler: scheduler, commit: commit}
}

// Begin starts a drag session at pointerX with the window state the drag
// operates against. A non-positive pixel width or duration leaves the
// controller idle: there is no window geometry to pan.
func (p *PanController) Begin(pointerX float64, ref time.Time, pixelWidth float64, duration time.Duration) {
	if pixelWidth <= 0 || duration <= 0 {
		return
	}
	p.End()
	p.state = panDragging
	p.originX = pointerX
	p.originRef = ref
	p.pixelWidth = pixelWidth
	p.duration = duration
	p.latestX = pointerX
}

// Update records a pointer sample. It may arrive many times per frame; the
// state transition happens once per frame in the scheduled flush, against
// whichever sample is latest by then. A no-op outside a drag session.
func (p *PanController) Update(pointerX float64) {
	if p.state != panDragging {
		return
	}
	p.latestX = pointerX
	if p.pending {
		return
	}
	p.pending = true
	p.cancel = p.scheduler.Schedule(p.flush)
}

// End tears down the session, cancelling any pending frame. Idempotent, and
// a no-op without a matching Begin. Nothing is scheduled after End returns.
func (p *PanController) End() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.pending = false
	p.state = panIdle
}

// Dragging reports whether a drag session is active.
func (p *PanController) Dragging() bool {
	return p.state == panDragging
}

func (p *PanController) flush() {
	p.pending = false
	p.cancel = nil
	if p.state != panDragging || p.commit == nil {
		return
	}
	// Dragging right moves the window earlier in time: content follows the
	// pointer.
	deltaX := p.latestX - p.originX
	timeDelta := time.Duration(deltaX / p.pixelWidth * float64(p.duration))
	p.commit(p.originRef.Add(-timeDelta))
}
